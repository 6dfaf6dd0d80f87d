package services

import (
	"context"

	"github.com/google/uuid"

	"tasktracker/domain/dto"
	"tasktracker/domain/models"
)

type UserService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (string, *models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)

	// VerifyAccount confirms that the account behind a validated token still
	// exists and is active. Called by the auth middleware on every request.
	VerifyAccount(ctx context.Context, userID uuid.UUID) error
}
