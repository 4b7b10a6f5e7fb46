package admin

import (
	"testing"

	"southside/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckReportsAdminStatus(t *testing.T) {
	db := setupTestDB(t)
	app := newAdminApp()

	_, adminToken := createAdmin(t, db, "boss", "boss@example.com")
	_, userToken := createUser(t, db, "pleb", "pleb@example.com")

	resp, body := doJSON(t, app, "GET", "/api/admin/check", adminToken, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, true, body["isAdmin"])

	resp, body = doJSON(t, app, "GET", "/api/admin/check", userToken, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, false, body["isAdmin"])
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	db := setupTestDB(t)
	app := newAdminApp()

	_, userToken := createUser(t, db, "pleb", "pleb@example.com")

	resp, _ := doJSON(t, app, "GET", "/api/admin/applications", userToken, nil)
	assert.Equal(t, 403, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/api/admin/applications", "", nil)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAcceptApplication(t *testing.T) {
	db := setupTestDB(t)
	app := newAdminApp()

	_, adminToken := createAdmin(t, db, "boss", "boss@example.com")
	applicant, _ := createUser(t, db, "marko", "marko@example.com")
	stored := createApplication(t, db, applicant.ID)

	resp, body := doJSON(t, app, "PUT", "/api/admin/applications/1", adminToken,
		map[string]interface{}{"status": "accepted", "admin_notes": "welcome aboard"})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	var after models.Application
	require.NoError(t, db.First(&after, stored.ID).Error)
	assert.Equal(t, models.ApplicationAccepted, after.Status)
	assert.Equal(t, "welcome aboard", after.AdminNotes)
	assert.Equal(t, "boss@example.com", after.ReviewedBy)
	require.NotNil(t, after.ReviewedAt)
}

func TestRejectRequiresNotes(t *testing.T) {
	db := setupTestDB(t)
	app := newAdminApp()

	_, adminToken := createAdmin(t, db, "boss", "boss@example.com")
	applicant, _ := createUser(t, db, "marko", "marko@example.com")
	stored := createApplication(t, db, applicant.ID)

	resp, _ := doJSON(t, app, "PUT", "/api/admin/applications/1", adminToken,
		map[string]interface{}{"status": "rejected"})
	assert.Equal(t, 400, resp.StatusCode)

	var after models.Application
	require.NoError(t, db.First(&after, stored.ID).Error)
	assert.Equal(t, models.ApplicationPending, after.Status)

	resp, _ = doJSON(t, app, "PUT", "/api/admin/applications/1", adminToken,
		map[string]interface{}{"status": "rejected", "admin_notes": "underage"})
	require.Equal(t, 200, resp.StatusCode)

	require.NoError(t, db.First(&after, stored.ID).Error)
	assert.Equal(t, models.ApplicationRejected, after.Status)
	assert.Equal(t, "underage", after.AdminNotes)
}

func TestInvalidStatusRejected(t *testing.T) {
	db := setupTestDB(t)
	app := newAdminApp()

	_, adminToken := createAdmin(t, db, "boss", "boss@example.com")
	applicant, _ := createUser(t, db, "marko", "marko@example.com")
	stored := createApplication(t, db, applicant.ID)

	resp, _ := doJSON(t, app, "PUT", "/api/admin/applications/1", adminToken,
		map[string]interface{}{"status": "archived"})
	assert.Equal(t, 400, resp.StatusCode)

	var after models.Application
	require.NoError(t, db.First(&after, stored.ID).Error)
	assert.Equal(t, models.ApplicationPending, after.Status)
}

func TestDecidedApplicationIsFinal(t *testing.T) {
	db := setupTestDB(t)
	app := newAdminApp()

	_, adminToken := createAdmin(t, db, "boss", "boss@example.com")
	applicant, _ := createUser(t, db, "marko", "marko@example.com")
	stored := createApplication(t, db, applicant.ID)

	resp, _ := doJSON(t, app, "PUT", "/api/admin/applications/1", adminToken,
		map[string]interface{}{"status": "accepted"})
	require.Equal(t, 200, resp.StatusCode)

	resp, _ = doJSON(t, app, "PUT", "/api/admin/applications/1", adminToken,
		map[string]interface{}{"status": "rejected", "admin_notes": "changed my mind"})
	assert.Equal(t, 400, resp.StatusCode)

	var after models.Application
	require.NoError(t, db.First(&after, stored.ID).Error)
	assert.Equal(t, models.ApplicationAccepted, after.Status)
}

func TestApplicationListFilters(t *testing.T) {
	db := setupTestDB(t)
	app := newAdminApp()

	_, adminToken := createAdmin(t, db, "boss", "boss@example.com")
	applicant, _ := createUser(t, db, "marko", "marko@example.com")
	other, _ := createUser(t, db, "jovan", "jovan@example.com")

	createApplication(t, db, applicant.ID)
	rejected := createApplication(t, db, other.ID)
	require.NoError(t, db.Model(&models.Application{}).
		Where("id = ?", rejected.ID).
		Update("status", models.ApplicationRejected).Error)

	resp, body := doJSON(t, app, "GET", "/api/admin/applications?status=pending", adminToken, nil)
	require.Equal(t, 200, resp.StatusCode)
	apps, ok := body["applications"].([]interface{})
	require.True(t, ok)
	assert.Len(t, apps, 1)

	resp, _ = doJSON(t, app, "GET", "/api/admin/applications?status=archived", adminToken, nil)
	assert.Equal(t, 400, resp.StatusCode)
}
