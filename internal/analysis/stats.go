// Package analysis computes descriptive statistics and activity aggregations
// over the canonical record table. Every function treats its input table as
// immutable and works on filtered copies.
package analysis

import (
	"regexp"
	"strings"

	"github.com/conversight/conversight/internal/record"
)

// Stats is the fixed nine-field summary of a chat or a single user's slice
// of it. Field order matches the report layout.
type Stats struct {
	Messages  int `json:"messages"`
	Words     int `json:"words"`
	Media     int `json:"media"`
	Links     int `json:"links"`
	Emojis    int `json:"emojis"`
	Deleted   int `json:"deleted"`
	Edited    int `json:"edited"`
	Contacts  int `json:"contacts"`
	Locations int `json:"locations"`
}

var (
	phonePattern    = regexp.MustCompile(`\+?\d{2,4}[\s-]?\d{10}`)
	locationPattern = regexp.MustCompile(`//maps\.google\.com/\?q=\d+\.\d+,\d+\.\d+`)
)

// Fetch aggregates the stats tuple for the selected user ("" for everyone).
// Media, deleted, and edited detection use the platform profile's marker
// lists with case-insensitive containment. An empty table yields all zeros.
func Fetch(user string, table record.Table, profile record.Profile) Stats {
	rows := table.ForUser(user)

	var s Stats

	s.Messages = len(rows)

	for _, r := range rows {
		s.Words += r.WordCount
		s.Links += r.URLCount
		s.Emojis += r.EmojiCount

		lower := strings.ToLower(r.Message)

		if containsAny(lower, profile.MediaMarkers) {
			s.Media++
		}

		if profile.DeletedMarker != "" && strings.Contains(lower, strings.ToLower(profile.DeletedMarker)) {
			s.Deleted++
		}

		if profile.EditedMarker != "" && strings.Contains(lower, strings.ToLower(profile.EditedMarker)) {
			s.Edited++
		}

		if phonePattern.MatchString(r.Message) || strings.Contains(lower, ".vcf") {
			s.Contacts++
		}

		if locationPattern.MatchString(r.Message) {
			s.Locations++
		}
	}

	return s
}

func containsAny(lower string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}

	return false
}

// Personality labels, in rule priority order.
const (
	PersonalityEmojiHeavy  = "Emoji-heavy"
	PersonalityPhilosopher = "Philosopher"
	PersonalitySecretive   = "Secretive"
	PersonalityStoryteller = "Storyteller"
	PersonalityChill       = "Chill"
)

// Personality classifies a stats tuple into one of five labels. Rules are
// checked in a fixed priority order and the first match wins.
func Personality(s Stats) string {
	messages := s.Messages
	if messages < 1 {
		messages = 1
	}

	switch {
	case float64(s.Emojis) > float64(s.Messages)*0.3:
		return PersonalityEmojiHeavy
	case float64(s.Words)/float64(messages) > 15:
		return PersonalityPhilosopher
	case s.Deleted > 50:
		return PersonalitySecretive
	case float64(s.Media) > float64(s.Messages)*0.5:
		return PersonalityStoryteller
	default:
		return PersonalityChill
	}
}

// FunComments collects independent qualitative remarks about a stats tuple.
// Unlike Personality, the checks are not mutually exclusive.
func FunComments(s Stats) []string {
	var comments []string

	switch {
	case s.Messages > 10000:
		comments = append(comments, "record-breaking message count")
	case s.Messages > 5000:
		comments = append(comments, "message overload")
	default:
		comments = append(comments, "a calm and cozy chat, for now")
	}

	switch {
	case s.Emojis > 3000:
		comments = append(comments, "emoji addiction detected")
	case s.Emojis > 1000:
		comments = append(comments, "strong emoji game")
	}

	if s.Deleted > 100 {
		comments = append(comments, "lots of deleted messages, someone has secrets")
	}

	if s.Media > 1000 {
		comments = append(comments, "a chat full of media")
	}

	messages := s.Messages
	if messages < 1 {
		messages = 1
	}

	if float64(s.Words)/float64(messages) < 3 {
		comments = append(comments, "short and sweet messages")
	}

	return comments
}
