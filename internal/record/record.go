// Package record defines the canonical per-message schema that every
// platform parser produces and every analysis consumes.
package record

import (
	"strings"
	"time"
)

// Period is the time-of-day bucket derived from the hour of a message.
type Period string

const (
	Night     Period = "Night"     // [0, 6)
	Morning   Period = "Morning"   // [6, 12)
	Afternoon Period = "Afternoon" // [12, 18)
	Evening   Period = "Evening"   // [18, 24)
)

// PeriodOf buckets an hour of day. Hours outside [0, 24) yield "".
func PeriodOf(hour int) Period {
	switch {
	case hour >= 0 && hour < 6:
		return Night
	case hour < 12:
		return Morning
	case hour < 18:
		return Afternoon
	case hour < 24:
		return Evening
	default:
		return ""
	}
}

// Record is one chat message in canonical form. Username is empty when the
// source line is unattributable, Date is nil when the source timestamp could
// not be parsed. The derived time fields are jointly zeroed with a nil Date.
type Record struct {
	Username   string     `json:"username"`
	Message    string     `json:"message"`
	Date       *time.Time `json:"date"`
	Year       int        `json:"year"`
	Month      string     `json:"month"`
	Day        string     `json:"day"`
	Hour       int        `json:"hour"`
	Minute     int        `json:"minute"`
	Clock      string     `json:"time"`
	Period     Period     `json:"period"`
	WordCount  int        `json:"total_word"`
	EmojiCount int        `json:"emoji_count"`
	URLCount   int        `json:"url_count"`
}

// New builds a Record, deriving time decomposition and message statistics.
// The counts are computed from Message only and never change afterwards.
func New(username, message string, date *time.Time) Record {
	r := Record{
		Username:   username,
		Message:    message,
		WordCount:  len(strings.Fields(message)),
		EmojiCount: CountEmojis(message),
		URLCount:   CountURLs(message),
	}

	if date != nil {
		d := *date
		r.Date = &d
		r.Year = d.Year()
		r.Month = d.Month().String()
		r.Day = d.Weekday().String()
		r.Hour = d.Hour()
		r.Minute = d.Minute()
		r.Clock = d.Format("03:04 PM")
		r.Period = PeriodOf(d.Hour())
	}

	return r
}

// HasDate reports whether the record carries a parsed timestamp.
func (r Record) HasDate() bool {
	return r.Date != nil
}

// Table is an ordered collection of records. Parsers append in source order
// and never re-sort; analysis functions filter into fresh tables.
type Table []Record

// ForUser returns a new table holding only the given user's rows.
// An empty user selects every row.
func (t Table) ForUser(user string) Table {
	if user == "" {
		return t
	}

	out := make(Table, 0, len(t))

	for _, r := range t {
		if r.Username == user {
			out = append(out, r)
		}
	}

	return out
}

// Users returns the distinct non-empty usernames in first-seen order.
func (t Table) Users() []string {
	seen := make(map[string]bool, len(t))

	var users []string

	for _, r := range t {
		if r.Username == "" || seen[r.Username] {
			continue
		}

		seen[r.Username] = true
		users = append(users, r.Username)
	}

	return users
}

// Messages returns the message bodies in table order.
func (t Table) Messages() []string {
	msgs := make([]string, len(t))
	for i, r := range t {
		msgs[i] = r.Message
	}

	return msgs
}

// Dated returns the rows that carry a parsed timestamp, in table order.
func (t Table) Dated() Table {
	out := make(Table, 0, len(t))

	for _, r := range t {
		if r.HasDate() {
			out = append(out, r)
		}
	}

	return out
}
