package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscordTestService(t *testing.T, widgetHandler, guildHandler http.HandlerFunc) *DiscordStatsService {
	t.Helper()

	widgetSrv := httptest.NewServer(widgetHandler)
	t.Cleanup(widgetSrv.Close)
	apiSrv := httptest.NewServer(guildHandler)
	t.Cleanup(apiSrv.Close)

	svc := NewDiscordStatsService("test-bot-token", map[string]string{"median": "42"})
	svc.WidgetBaseURL = widgetSrv.URL
	svc.APIBaseURL = apiSrv.URL
	return svc
}

func TestDiscordStatsMergesWidgetAndGuild(t *testing.T) {
	svc := newDiscordTestService(t,
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/42/widget.json", r.URL.Path)
			w.Write([]byte(`{"name":"Median","instant_invite":"https://discord.gg/median","presence_count":17}`))
		},
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/guilds/42", r.URL.Path)
			assert.Equal(t, "true", r.URL.Query().Get("with_counts"))
			assert.Equal(t, "Bot test-bot-token", r.Header.Get("Authorization"))
			w.Write([]byte(`{"name":"Median","approximate_member_count":230,"approximate_presence_count":20}`))
		},
	)

	require.NoError(t, svc.Refresh("median"))

	stats, err := svc.Get("median")
	require.NoError(t, err)
	assert.Equal(t, "Median", stats.Name)
	assert.Equal(t, "https://discord.gg/median", stats.InstantInvite)
	assert.Equal(t, 17, stats.PresenceCount) // widget wins when present
	assert.Equal(t, 230, stats.MemberCount)
	assert.False(t, stats.Stale)
}

func TestDiscordStatsWidgetOnly(t *testing.T) {
	// Guild endpoint down; the widget snapshot alone is acceptable.
	svc := newDiscordTestService(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"name":"Median","presence_count":9}`))
		},
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	)

	require.NoError(t, svc.Refresh("median"))

	stats, err := svc.Get("median")
	require.NoError(t, err)
	assert.Equal(t, 9, stats.PresenceCount)
	assert.Equal(t, 0, stats.MemberCount)
}

func TestDiscordStatsServesStaleSnapshotOnFailure(t *testing.T) {
	healthy := true
	handler := func(payload string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !healthy {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(payload))
		}
	}

	svc := newDiscordTestService(t,
		handler(`{"name":"Median","presence_count":11}`),
		handler(`{"name":"Median","approximate_member_count":100}`),
	)

	require.NoError(t, svc.Refresh("median"))

	healthy = false
	svc.RefreshAll()

	stats, err := svc.Get("median")
	require.NoError(t, err)
	assert.True(t, stats.Stale)
	assert.Equal(t, 11, stats.PresenceCount) // last good data kept
}

func TestDiscordStatsUnknownServer(t *testing.T) {
	svc := NewDiscordStatsService("", map[string]string{"median": "42"})

	_, err := svc.Get("nosuch")
	assert.Error(t, err)

	assert.Error(t, svc.Refresh("nosuch"))
}

func TestDiscordStatsNotFetchedYet(t *testing.T) {
	svc := NewDiscordStatsService("", map[string]string{"median": "42"})

	_, err := svc.Get("median")
	assert.Error(t, err)
}
