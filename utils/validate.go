// utils/validate.go - Server-side questionnaire validation
package utils

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// MinEssayLength is the minimum length for the free-text answers.
	MinEssayLength = 50

	minAge = 13
	maxAge = 120
)

// FieldErrors maps field name to a human-readable problem. Empty means valid.
type FieldErrors map[string]string

// ApplicationInput carries the raw questionnaire fields for validation.
// Validation happens here, at the server boundary; whatever a client checked
// before submitting is UX only.
type ApplicationInput struct {
	FullName            string
	Age                 int
	DiscordNick         string
	DiscordID           string
	SteamProfile        string
	FivemHours          int
	WhyMedian           string
	SouthsideMeaning    string
	AcceptWarningSystem bool
	AcceptCKPossibility bool
	AcceptHierarchy     bool
}

// ValidateApplication checks every intake rule and returns all problems at
// once so the client can render them per field.
func ValidateApplication(in ApplicationInput) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(in.FullName) == "" {
		errs["full_name"] = "Full name is required"
	}
	if in.Age < minAge || in.Age > maxAge {
		errs["age"] = "Age must be between 13 and 120"
	}
	if strings.TrimSpace(in.DiscordNick) == "" {
		errs["discord_nick"] = "Discord nickname is required"
	}
	if !isDiscordID(in.DiscordID) {
		errs["discord_id"] = "Discord ID must be numeric"
	}
	if !isSteamProfile(in.SteamProfile) {
		errs["steam_profile"] = "Steam profile link must point to steamcommunity.com"
	}
	if in.FivemHours < 0 {
		errs["fivem_hours"] = "Hours played cannot be negative"
	}
	// Rune count, not bytes, so non-ASCII answers are measured fairly
	if utf8.RuneCountInString(strings.TrimSpace(in.WhyMedian)) < MinEssayLength {
		errs["why_median"] = "Answer must be at least 50 characters"
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.SouthsideMeaning)) < MinEssayLength {
		errs["southside_meaning"] = "Answer must be at least 50 characters"
	}
	if !in.AcceptWarningSystem {
		errs["accept_warning_system"] = "You must accept the warning system"
	}
	if !in.AcceptCKPossibility {
		errs["accept_ck_possibility"] = "You must accept the CK possibility"
	}
	if !in.AcceptHierarchy {
		errs["accept_hierarchy"] = "You must accept the hierarchy"
	}

	return errs
}

// isDiscordID accepts the numeric snowflake form Discord uses.
func isDiscordID(id string) bool {
	id = strings.TrimSpace(id)
	if len(id) < 5 || len(id) > 32 {
		return false
	}
	_, err := strconv.ParseUint(id, 10, 64)
	return err == nil
}

func isSteamProfile(link string) bool {
	link = strings.ToLower(strings.TrimSpace(link))
	if link == "" {
		return false
	}
	return strings.Contains(link, "steamcommunity.com/")
}
