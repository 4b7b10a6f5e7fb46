package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyDescriptionPrefixNeverLeaks(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	// A row written before the media_type column existed: the type lives in
	// the description prefix and the column carries the default. Raw SQL so
	// the save hooks cannot clean it up on the way in.
	require.NoError(t, db.Exec(
		`INSERT INTO images (url, title, description, media_type, created_at, updated_at)
		 VALUES (?, ?, ?, 'image', NOW(), NOW())`,
		"https://youtube.com/watch?v=abc123", "Event recap", "[TYPE:youtube] highlights from the event",
	).Error)

	resp, body := doJSON(t, app, "GET", "/api/media", "", nil)
	require.Equal(t, 200, resp.StatusCode)

	items, ok := body["media"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)

	item, ok := items[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "youtube", item["media_type"])
	assert.Equal(t, "highlights from the event", item["description"])
	assert.NotContains(t, item["description"], "[TYPE:")

	resp, body = doJSON(t, app, "GET", "/api/media/1", "", nil)
	require.Equal(t, 200, resp.StatusCode)

	item, ok = body["media"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "youtube", item["media_type"])
	assert.Equal(t, "highlights from the event", item["description"])
}
