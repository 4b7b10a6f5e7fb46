package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"southside/database"
	"southside/middleware"
	"southside/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret-for-handlers-0123456789abcdef"

// setupTestDB connects to TEST_DATABASE_URL, migrates and truncates all
// tables, and installs the connection as the package singleton. Tests that
// need a database skip when the variable is unset.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	t.Setenv("JWT_SECRET", testJWTSecret)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.AdminUser{},
		&models.Application{},
		&models.MediaItem{},
		&models.Profile{},
		&models.TeamMember{},
		&models.Jersey{},
		&models.Form{},
		&models.FormReply{},
	))
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_applications_one_pending ON applications(user_id) WHERE status = 'pending'")

	db.Exec("TRUNCATE applications, admin_users, images, profiles, team_members, jerseys, form_replies, forms, users RESTART IDENTITY CASCADE")

	database.SetDB(db)
	InitApplicationHandlers()

	return db
}

// newTestApp builds a Fiber app with the routes under test wired the same
// way main does.
func newTestApp() *fiber.App {
	app := fiber.New()

	api := app.Group("/api")
	api.Post("/application/submit", middleware.AuthMiddleware, SubmitApplication)
	api.Get("/application/status", middleware.AuthMiddleware, GetApplicationStatus)
	api.Get("/forms", ListForms)
	api.Get("/forms/:id", GetForm)
	api.Post("/forms", middleware.AuthMiddleware, CreateForm)
	api.Post("/forms/:id/replies", middleware.AuthMiddleware, CreateFormReply)
	api.Delete("/forms/:id", middleware.AuthMiddleware, DeleteForm)
	api.Delete("/forms/:id/replies/:replyId", middleware.AuthMiddleware, DeleteFormReply)
	api.Get("/media", ListMedia)
	api.Get("/media/:id", GetMedia)

	return app
}

// createTestUser inserts a registered user and returns it with a session
// token.
func createTestUser(t *testing.T, db *gorm.DB, username, email string) (models.User, string) {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    &email,
		Password: "x",
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := generateToken(user)
	require.NoError(t, err)

	return user, token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	decoded := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}

	return resp, decoded
}
