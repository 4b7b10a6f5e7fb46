package admin

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"southside/database"
	"southside/middleware"
	"southside/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret-for-admin-0123456789abcdef"

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

func newAdminApp() *fiber.App {
	app := fiber.New()

	api := app.Group("/api")
	api.Get("/admin/check", middleware.AuthMiddleware, Check)

	protected := api.Group("/admin", middleware.AdminAuthMiddleware)
	protected.Get("/applications", GetApplications)
	protected.Get("/applications/:id", GetApplication)
	protected.Put("/applications/:id", UpdateApplication)
	protected.Get("/users", GetUsers)
	protected.Get("/users/:id", GetUser)
	protected.Post("/users/:id/ban", BanUser)
	protected.Delete("/users/:id", DeleteUser)
	protected.Post("/team", CreateTeamMember)
	protected.Put("/team/:id", UpdateTeamMember)
	protected.Delete("/team/:id", DeleteTeamMember)
	protected.Post("/jerseys", CreateJersey)
	protected.Put("/jerseys/:id", UpdateJersey)
	protected.Delete("/jerseys/:id", DeleteJersey)
	protected.Post("/media", CreateMedia)
	protected.Put("/media/:id", UpdateMedia)
	protected.Delete("/media/:id", DeleteMedia)

	return app
}

// createUser inserts a registered user and returns it with a session token
// signed the same way the auth handlers sign them.
func createUser(t *testing.T, db *gorm.DB, username, email string) (models.User, string) {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    &email,
		Password: "x",
	}
	require.NoError(t, db.Create(&user).Error)

	return user, makeToken(t, user)
}

// createAdmin is createUser plus an allow-list row.
func createAdmin(t *testing.T, db *gorm.DB, username, email string) (models.User, string) {
	t.Helper()

	user, token := createUser(t, db, username, email)
	require.NoError(t, db.Create(&models.AdminUser{Email: email, AddedBy: "test"}).Error)

	return user, token
}

func makeToken(t *testing.T, user models.User) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.EmailOrEmpty(),
		"is_guest": user.IsGuest,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	return token
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

func createApplication(t *testing.T, db *gorm.DB, userID uint) models.Application {
	t.Helper()

	app := models.Application{
		UserID:              userID,
		FullName:            "Marko Petrov",
		Age:                 21,
		DiscordNick:         "marko#1234",
		DiscordID:           "123456789012345678",
		SteamProfile:        "https://steamcommunity.com/id/marko",
		FivemHours:          1200,
		WhyMedian:           "Long enough answer about why the applicant wants in.",
		SouthsideMeaning:    "Long enough answer about what southside means to them.",
		AcceptWarningSystem: true,
		AcceptCKPossibility: true,
		AcceptHierarchy:     true,
		Status:              models.ApplicationPending,
	}
	require.NoError(t, db.Create(&app).Error)

	return app
}
