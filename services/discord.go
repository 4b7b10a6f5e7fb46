// services/discord.go - Discord guild statistics with periodic revalidation
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DiscordStats is the merged widget + guild-with-counts snapshot served to
// clients.
type DiscordStats struct {
	Server        string    `json:"server"`
	GuildID       string    `json:"guild_id"`
	Name          string    `json:"name"`
	InstantInvite string    `json:"instant_invite,omitempty"`
	PresenceCount int       `json:"presence_count"`
	MemberCount   int       `json:"member_count"`
	FetchedAt     time.Time `json:"fetched_at"`
	Stale         bool      `json:"stale"`
}

type widgetResponse struct {
	Name          string `json:"name"`
	InstantInvite string `json:"instant_invite"`
	PresenceCount int    `json:"presence_count"`
}

type guildResponse struct {
	Name                     string `json:"name"`
	ApproximateMemberCount   int    `json:"approximate_member_count"`
	ApproximatePresenceCount int    `json:"approximate_presence_count"`
}

// DiscordStatsService fetches and caches guild statistics. Every configured
// server is revalidated on a 60 second schedule; on upstream failure the
// last good snapshot is kept and served with stale=true.
type DiscordStatsService struct {
	// Overridable in tests.
	WidgetBaseURL string
	APIBaseURL    string

	client   *http.Client
	botToken string
	guilds   map[string]string // server name -> guild ID

	mu    sync.RWMutex
	cache map[string]*DiscordStats

	cron *cron.Cron
}

var discordStatsService *DiscordStatsService

// InitDiscordStatsService builds the singleton from environment:
// DISCORD_BOT_TOKEN plus DISCORD_GUILDS as "name=id,name=id".
func InitDiscordStatsService() {
	guilds := map[string]string{}
	for _, pair := range strings.Split(os.Getenv("DISCORD_GUILDS"), ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			guilds[parts[0]] = parts[1]
		}
	}

	discordStatsService = NewDiscordStatsService(os.Getenv("DISCORD_BOT_TOKEN"), guilds)
}

// GetDiscordStatsService returns the initialized service.
func GetDiscordStatsService() *DiscordStatsService {
	return discordStatsService
}

func NewDiscordStatsService(botToken string, guilds map[string]string) *DiscordStatsService {
	return &DiscordStatsService{
		WidgetBaseURL: "https://discord.com/api/guilds",
		APIBaseURL:    "https://discord.com/api/v10",
		client:        &http.Client{Timeout: 10 * time.Second},
		botToken:      botToken,
		guilds:        guilds,
		cache:         make(map[string]*DiscordStats),
	}
}

// Start refreshes every guild once, then every 60 seconds.
func (s *DiscordStatsService) Start() {
	s.RefreshAll()

	s.cron = cron.New()
	_, err := s.cron.AddFunc("@every 60s", s.RefreshAll)
	if err != nil {
		log.Printf("Failed to schedule Discord stats refresh: %v", err)
		return
	}
	s.cron.Start()
	log.Println("✅ Discord stats refresh scheduled (60s)")
}

// Stop stops the refresh schedule.
func (s *DiscordStatsService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RefreshAll revalidates every configured guild.
func (s *DiscordStatsService) RefreshAll() {
	for server := range s.guilds {
		if err := s.Refresh(server); err != nil {
			log.Printf("Discord stats refresh failed for %s: %v", server, err)
			s.markStale(server)
		}
	}
}

// Refresh fetches and merges the widget and guild endpoints for one server.
func (s *DiscordStatsService) Refresh(server string) error {
	guildID, ok := s.guilds[server]
	if !ok {
		return fmt.Errorf("unknown discord server %q", server)
	}

	stats := &DiscordStats{
		Server:    server,
		GuildID:   guildID,
		FetchedAt: time.Now(),
	}

	var widget widgetResponse
	widgetErr := s.getJSON(fmt.Sprintf("%s/%s/widget.json", s.WidgetBaseURL, guildID), "", &widget)
	if widgetErr == nil {
		stats.Name = widget.Name
		stats.InstantInvite = widget.InstantInvite
		stats.PresenceCount = widget.PresenceCount
	}

	var guild guildResponse
	var guildErr error
	if s.botToken != "" {
		guildErr = s.getJSON(fmt.Sprintf("%s/guilds/%s?with_counts=true", s.APIBaseURL, guildID), s.botToken, &guild)
		if guildErr == nil {
			if stats.Name == "" {
				stats.Name = guild.Name
			}
			stats.MemberCount = guild.ApproximateMemberCount
			if stats.PresenceCount == 0 {
				stats.PresenceCount = guild.ApproximatePresenceCount
			}
		}
	}

	// Either endpoint alone is an acceptable snapshot; both failing is not.
	if widgetErr != nil && (s.botToken == "" || guildErr != nil) {
		return widgetErr
	}

	s.mu.Lock()
	s.cache[server] = stats
	s.mu.Unlock()
	return nil
}

// Get returns the cached snapshot for server, or an error when the server is
// unknown or has never been fetched successfully.
func (s *DiscordStatsService) Get(server string) (*DiscordStats, error) {
	if _, ok := s.guilds[server]; !ok {
		return nil, fmt.Errorf("unknown discord server %q", server)
	}

	s.mu.RLock()
	stats, ok := s.cache[server]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.New("discord stats not available yet")
	}

	copied := *stats
	return &copied, nil
}

func (s *DiscordStatsService) markStale(server string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stats, ok := s.cache[server]; ok {
		stats.Stale = true
	}
}

func (s *DiscordStatsService) getJSON(url, botToken string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if botToken != "" {
		req.Header.Set("Authorization", "Bot "+botToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("discord returned status %d for %s", resp.StatusCode, url)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
