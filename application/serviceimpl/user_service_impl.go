package serviceimpl

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tasktracker/domain/dto"
	"tasktracker/domain/models"
	"tasktracker/domain/ports"
	"tasktracker/domain/repositories"
	"tasktracker/domain/services"
	"tasktracker/pkg/logger"
	"tasktracker/pkg/utils"
)

// accountCacheTTL bounds how long a disabled account keeps passing
// VerifyAccount through the cache.
const accountCacheTTL = 5 * time.Minute

type UserServiceImpl struct {
	userRepo  repositories.UserRepository
	cache     ports.CachePort // optional, nil disables caching
	jwtSecret string
	jwtTTL    time.Duration
}

func NewUserService(userRepo repositories.UserRepository, cache ports.CachePort, jwtSecret string, jwtTTL time.Duration) services.UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		cache:     cache,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

func (s *UserServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (string, *models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.ErrorContext(ctx, "Failed to check existing email", "error", err)
		return "", nil, err
	}
	if existing != nil {
		logger.WarnContext(ctx, "Signup rejected, email already exists", "email", req.Email)
		return "", nil, services.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return "", nil, err
	}

	user := &models.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Name:      req.Name,
		Password:  string(hashedPassword),
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to create user", "error", err)
		return "", nil, err
	}

	token, err := utils.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate token", "user_id", user.ID, "error", err)
		return "", nil, err
	}

	logger.InfoContext(ctx, "User signed up", "user_id", user.ID, "email", user.Email)

	return token, user, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error for unknown email and wrong password.
			logger.WarnContext(ctx, "Login failed, email not found", "email", req.Email)
			return "", nil, services.ErrInvalidLogin
		}
		logger.ErrorContext(ctx, "Failed to look up user", "error", err)
		return "", nil, err
	}

	if !user.IsActive {
		logger.WarnContext(ctx, "Login failed, account disabled", "user_id", user.ID)
		return "", nil, services.ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.WarnContext(ctx, "Login failed, invalid password", "user_id", user.ID)
		return "", nil, services.ErrInvalidLogin
	}

	token, err := utils.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate token", "user_id", user.ID, "error", err)
		return "", nil, err
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID, "email", user.Email)

	return token, user, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrUserNotFound
		}
		logger.ErrorContext(ctx, "Failed to load profile", "user_id", userID, "error", err)
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) VerifyAccount(ctx context.Context, userID uuid.UUID) error {
	key := "user:active:" + userID.String()

	if s.cache != nil {
		if val, found, err := s.cache.Get(ctx, key); err == nil && found {
			if val == "1" {
				return nil
			}
			return services.ErrAccountDisabled
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.ErrUserNotFound
		}
		logger.ErrorContext(ctx, "Failed to verify account", "user_id", userID, "error", err)
		return err
	}

	if !user.IsActive {
		return services.ErrAccountDisabled
	}

	if s.cache != nil {
		// Cache failures only cost us the shortcut on the next request.
		if err := s.cache.Set(ctx, key, "1", accountCacheTTL); err != nil {
			logger.WarnContext(ctx, "Failed to cache account state", "user_id", userID, "error", err)
		}
	}

	return nil
}
