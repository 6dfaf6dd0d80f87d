package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tasktracker/application/serviceimpl"
	"tasktracker/domain/models"
	"tasktracker/infrastructure/postgres"
	"tasktracker/interfaces/api/handlers"
	"tasktracker/interfaces/api/middleware"
	"tasktracker/interfaces/api/routes"
)

const testSecret = "handler-test-secret"

func setupAPI(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)

	userService := serviceimpl.NewUserService(userRepo, nil, testSecret, time.Hour)
	taskService := serviceimpl.NewTaskService(taskRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})

	h := handlers.NewHandlers(&handlers.Services{
		UserService: userService,
		TaskService: taskService,
	})

	protected := middleware.Protected(testSecret, userService)
	routes.SetupRoutes(app, h, protected)

	return app
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, apiEnvelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("failed to parse response %q: %v", raw, err)
	}

	return resp.StatusCode, envelope
}

func signupUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	status, envelope := doJSON(t, app, "POST", "/api/v1/auth/signup", "", fiber.Map{
		"name":     "Test User",
		"email":    email,
		"password": "supersecret",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("signup status = %d, want 201", status)
	}

	var auth struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(envelope.Data, &auth); err != nil {
		t.Fatalf("failed to parse auth response: %v", err)
	}
	if auth.Token == "" {
		t.Fatal("signup returned empty token")
	}
	return auth.Token
}

type taskPayload struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

func createTask(t *testing.T, app *fiber.App, token string, body fiber.Map) taskPayload {
	t.Helper()

	status, envelope := doJSON(t, app, "POST", "/api/v1/tasks/", token, body)
	if status != fiber.StatusCreated {
		t.Fatalf("create task status = %d, want 201 (error %+v)", status, envelope.Error)
	}

	var task taskPayload
	if err := json.Unmarshal(envelope.Data, &task); err != nil {
		t.Fatalf("failed to parse task: %v", err)
	}
	return task
}

func listTasks(t *testing.T, app *fiber.App, token, query string) []taskPayload {
	t.Helper()

	path := "/api/v1/tasks/"
	if query != "" {
		path += "?" + query
	}

	status, envelope := doJSON(t, app, "GET", path, token, nil)
	if status != fiber.StatusOK {
		t.Fatalf("list tasks status = %d, want 200 (error %+v)", status, envelope.Error)
	}

	var tasks []taskPayload
	if err := json.Unmarshal(envelope.Data, &tasks); err != nil {
		// An empty list serializes with data omitted.
		if len(envelope.Data) == 0 {
			return nil
		}
		t.Fatalf("failed to parse task list %q: %v", envelope.Data, err)
	}
	return tasks
}

func TestTasksRequireAuthentication(t *testing.T) {
	app := setupAPI(t)

	status, envelope := doJSON(t, app, "GET", "/api/v1/tasks/", "", nil)
	if status != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
	if envelope.Error == nil || envelope.Error.Code != "UNAUTHORIZED" {
		t.Errorf("error = %+v, want UNAUTHORIZED", envelope.Error)
	}
}

func TestCreateTask_DefaultsAndValidation(t *testing.T) {
	app := setupAPI(t)
	token := signupUser(t, app, "create@example.com")

	task := createTask(t, app, token, fiber.Map{"title": "Buy milk"})
	if task.Status != models.TaskStatusTodo {
		t.Errorf("task.Status = %q, want todo", task.Status)
	}
	if task.Priority != models.TaskPriorityMedium {
		t.Errorf("task.Priority = %q, want medium", task.Priority)
	}

	// Missing title.
	status, envelope := doJSON(t, app, "POST", "/api/v1/tasks/", token, fiber.Map{"description": "no title"})
	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if envelope.Error == nil || envelope.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", envelope.Error)
	}

	// Whitespace-only title.
	status, envelope = doJSON(t, app, "POST", "/api/v1/tasks/", token, fiber.Map{"title": "   "})
	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if envelope.Error == nil || envelope.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", envelope.Error)
	}

	// Unknown status value.
	status, _ = doJSON(t, app, "POST", "/api/v1/tasks/", token, fiber.Map{"title": "x", "status": "archived"})
	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400 for unknown status", status)
	}
}

func TestListTasks_FilterAndSearch(t *testing.T) {
	app := setupAPI(t)
	token := signupUser(t, app, "list@example.com")

	createTask(t, app, token, fiber.Map{"title": "Buy milk"})
	createTask(t, app, token, fiber.Map{"title": "Walk dog", "status": models.TaskStatusDone})
	createTask(t, app, token, fiber.Map{"title": "Ship release", "status": models.TaskStatusDone})

	if got := len(listTasks(t, app, token, "")); got != 3 {
		t.Errorf("unfiltered list has %d tasks, want 3", got)
	}
	if got := len(listTasks(t, app, token, "status=done")); got != 2 {
		t.Errorf("status=done list has %d tasks, want 2", got)
	}
	if got := len(listTasks(t, app, token, "search=MILK")); got != 1 {
		t.Errorf("search=MILK list has %d tasks, want 1", got)
	}

	status, _ := doJSON(t, app, "GET", "/api/v1/tasks/?status=archived", token, nil)
	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400 for unknown status filter", status)
	}
}

func TestTaskOwnershipOverHTTP(t *testing.T) {
	app := setupAPI(t)
	alice := signupUser(t, app, "alice@example.com")
	bob := signupUser(t, app, "bob@example.com")

	task := createTask(t, app, alice, fiber.Map{"title": "alice only"})

	if got := len(listTasks(t, app, bob, "")); got != 0 {
		t.Errorf("bob's list has %d tasks, want 0", got)
	}

	for _, tc := range []struct {
		method string
		body   any
	}{
		{method: "GET"},
		{method: "PUT", body: fiber.Map{"title": "stolen"}},
		{method: "DELETE"},
	} {
		status, envelope := doJSON(t, app, tc.method, "/api/v1/tasks/"+task.ID, bob, tc.body)
		if status != fiber.StatusNotFound {
			t.Errorf("%s as bob status = %d, want 404", tc.method, status)
		}
		if envelope.Error == nil || envelope.Error.Code != "NOT_FOUND" {
			t.Errorf("%s as bob error = %+v, want NOT_FOUND", tc.method, envelope.Error)
		}
	}
}

func TestUpdateTask_PartialPatch(t *testing.T) {
	app := setupAPI(t)
	token := signupUser(t, app, "patch@example.com")

	task := createTask(t, app, token, fiber.Map{
		"title":       "Write report",
		"description": "quarterly numbers",
		"priority":    models.TaskPriorityHigh,
	})

	status, envelope := doJSON(t, app, "PUT", "/api/v1/tasks/"+task.ID, token,
		fiber.Map{"status": models.TaskStatusDone})
	if status != fiber.StatusOK {
		t.Fatalf("update status = %d, want 200 (error %+v)", status, envelope.Error)
	}

	var updated taskPayload
	if err := json.Unmarshal(envelope.Data, &updated); err != nil {
		t.Fatalf("failed to parse updated task: %v", err)
	}

	if updated.Status != models.TaskStatusDone {
		t.Errorf("updated.Status = %q, want done", updated.Status)
	}
	if updated.Title != "Write report" || updated.Description != "quarterly numbers" || updated.Priority != models.TaskPriorityHigh {
		t.Errorf("status-only patch changed other fields: %+v", updated)
	}

	// Blank patched title is rejected.
	status, _ = doJSON(t, app, "PUT", "/api/v1/tasks/"+task.ID, token, fiber.Map{"title": "  "})
	if status != fiber.StatusBadRequest {
		t.Errorf("blank title patch status = %d, want 400", status)
	}
}

func TestGetProfile_IncludesOwnTaskCount(t *testing.T) {
	app := setupAPI(t)
	alice := signupUser(t, app, "alice-profile@example.com")
	bob := signupUser(t, app, "bob-profile@example.com")

	createTask(t, app, alice, fiber.Map{"title": "one"})
	createTask(t, app, alice, fiber.Map{"title": "two"})
	createTask(t, app, bob, fiber.Map{"title": "not alice's"})

	status, envelope := doJSON(t, app, "GET", "/api/v1/users/profile", alice, nil)
	if status != fiber.StatusOK {
		t.Fatalf("profile status = %d, want 200 (error %+v)", status, envelope.Error)
	}

	var profile struct {
		Email     string `json:"email"`
		TaskCount int64  `json:"taskCount"`
	}
	if err := json.Unmarshal(envelope.Data, &profile); err != nil {
		t.Fatalf("failed to parse profile: %v", err)
	}

	if profile.Email != "alice-profile@example.com" {
		t.Errorf("profile.Email = %q, want alice's", profile.Email)
	}
	if profile.TaskCount != 2 {
		t.Errorf("profile.TaskCount = %d, want 2", profile.TaskCount)
	}
}

func TestDeleteTask_SecondDeleteIs404(t *testing.T) {
	app := setupAPI(t)
	token := signupUser(t, app, "delete@example.com")

	task := createTask(t, app, token, fiber.Map{"title": "ephemeral"})
	path := fmt.Sprintf("/api/v1/tasks/%s", task.ID)

	status, envelope := doJSON(t, app, "DELETE", path, token, nil)
	if status != fiber.StatusOK {
		t.Fatalf("first delete status = %d, want 200 (error %+v)", status, envelope.Error)
	}

	status, envelope = doJSON(t, app, "DELETE", path, token, nil)
	if status != fiber.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", status)
	}
	if envelope.Error == nil || envelope.Error.Code != "NOT_FOUND" {
		t.Errorf("second delete error = %+v, want NOT_FOUND", envelope.Error)
	}

	// Malformed id.
	status, _ = doJSON(t, app, "DELETE", "/api/v1/tasks/not-a-uuid", token, nil)
	if status != fiber.StatusBadRequest {
		t.Errorf("malformed id delete status = %d, want 400", status)
	}
}
