package handlers

import (
	"strings"
	"testing"

	"southside/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmitBody() SubmitApplicationRequest {
	essay := strings.Repeat("I want to join because the city needs me. ", 3)
	return SubmitApplicationRequest{
		FullName:            "Marko Petrov",
		Age:                 21,
		DiscordNick:         "marko#1234",
		DiscordID:           "123456789012345678",
		SteamProfile:        "https://steamcommunity.com/id/marko",
		FivemHours:          1200,
		WhyMedian:           essay,
		SouthsideMeaning:    essay,
		AcceptWarningSystem: true,
		AcceptCKPossibility: true,
		AcceptHierarchy:     true,
	}
}

func TestSubmitApplication(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	user, token := createTestUser(t, db, "marko", "marko@example.com")

	resp, body := doJSON(t, app, "POST", "/api/application/submit", token, validSubmitBody())
	require.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	var count int64
	require.NoError(t, db.Model(&models.Application{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var stored models.Application
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&stored).Error)
	assert.Equal(t, models.ApplicationPending, stored.Status)
	assert.Equal(t, "Marko Petrov", stored.FullName)
}

func TestSubmitApplicationRejectsSecondPending(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	user, token := createTestUser(t, db, "marko", "marko@example.com")

	resp, _ := doJSON(t, app, "POST", "/api/application/submit", token, validSubmitBody())
	require.Equal(t, 201, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/api/application/submit", token, validSubmitBody())
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	var count int64
	require.NoError(t, db.Model(&models.Application{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitApplicationAllowedAfterRejection(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	user, token := createTestUser(t, db, "marko", "marko@example.com")

	resp, _ := doJSON(t, app, "POST", "/api/application/submit", token, validSubmitBody())
	require.Equal(t, 201, resp.StatusCode)

	require.NoError(t, db.Model(&models.Application{}).
		Where("user_id = ?", user.ID).
		Update("status", models.ApplicationRejected).Error)

	resp, _ = doJSON(t, app, "POST", "/api/application/submit", token, validSubmitBody())
	assert.Equal(t, 201, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Application{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestSubmitApplicationValidationFailure(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	_, token := createTestUser(t, db, "marko", "marko@example.com")

	bad := validSubmitBody()
	bad.Age = 12
	bad.WhyMedian = "too short"

	resp, body := doJSON(t, app, "POST", "/api/application/submit", token, bad)
	assert.Equal(t, 400, resp.StatusCode)

	fields, ok := body["fields"].(map[string]interface{})
	require.True(t, ok, "expected fields map in response")
	assert.Contains(t, fields, "age")
	assert.Contains(t, fields, "why_median")

	var count int64
	require.NoError(t, db.Model(&models.Application{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSubmitApplicationRequiresAuth(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	resp, _ := doJSON(t, app, "POST", "/api/application/submit", "", validSubmitBody())
	assert.Equal(t, 401, resp.StatusCode)
}

func TestApplicationStatusRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	_, token := createTestUser(t, db, "marko", "marko@example.com")

	resp, body := doJSON(t, app, "GET", "/api/application/status", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Nil(t, body["application"])

	resp, _ = doJSON(t, app, "POST", "/api/application/submit", token, validSubmitBody())
	require.Equal(t, 201, resp.StatusCode)

	resp, body = doJSON(t, app, "GET", "/api/application/status", token, nil)
	require.Equal(t, 200, resp.StatusCode)

	stored, ok := body["application"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, string(models.ApplicationPending), stored["status"])
}
