package record

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPeriodOf(t *testing.T) {
	tests := []struct {
		hour     int
		expected Period
	}{
		{0, Night},
		{5, Night},
		{6, Morning},
		{11, Morning},
		{12, Afternoon},
		{17, Afternoon},
		{18, Evening},
		{23, Evening},
		{24, ""},
		{-1, ""},
	}

	for _, tt := range tests {
		if got := PeriodOf(tt.hour); got != tt.expected {
			t.Errorf("PeriodOf(%d) = %q, want %q", tt.hour, got, tt.expected)
		}
	}
}

func TestNewDerivesTimeFields(t *testing.T) {
	date := time.Date(2023, time.December, 1, 22, 0, 0, 0, time.UTC)

	r := New("Alice", "Hello 😀 http://x.com", &date)

	require.Equal(t, "Alice", r.Username)
	require.Equal(t, 2023, r.Year)
	require.Equal(t, "December", r.Month)
	require.Equal(t, "Friday", r.Day)
	require.Equal(t, 22, r.Hour)
	require.Equal(t, 0, r.Minute)
	require.Equal(t, "10:00 PM", r.Clock)
	require.Equal(t, Evening, r.Period)
	require.Equal(t, 3, r.WordCount)
	require.Equal(t, 1, r.EmojiCount)
	require.Equal(t, 1, r.URLCount)
}

func TestNewWithoutDate(t *testing.T) {
	r := New("", "system notice", nil)

	require.False(t, r.HasDate())
	require.Zero(t, r.Year)
	require.Empty(t, r.Month)
	require.Empty(t, r.Day)
	require.Empty(t, r.Clock)
	require.Equal(t, Period(""), r.Period)
}

func TestNewCountsNonNegative(t *testing.T) {
	messages := []string{
		"",
		"   ",
		"😀😀😀",
		"check https://example.com and http://x.com",
		"plain words only",
	}

	for _, m := range messages {
		r := New("u", m, nil)

		require.GreaterOrEqual(t, r.WordCount, 0)
		require.GreaterOrEqual(t, r.EmojiCount, 0)
		require.GreaterOrEqual(t, r.URLCount, 0)
		require.Equal(t, len(strings.Fields(m)), r.WordCount)
		require.Equal(t, CountEmojis(m), r.EmojiCount)
		require.Equal(t, CountURLs(m), r.URLCount)
	}
}

func TestTableForUser(t *testing.T) {
	table := Table{
		New("Alice", "one", nil),
		New("Bob", "two", nil),
		New("Alice", "three", nil),
		New("", "system", nil),
	}

	alice := table.ForUser("Alice")
	require.Len(t, alice, 2)

	// Filtering must not touch the original table.
	require.Len(t, table, 4)
	require.Equal(t, []string{"Alice", "Bob"}, table.Users())

	all := table.ForUser("")
	require.Len(t, all, 4)
}

func TestCountEmojisMatchesExtract(t *testing.T) {
	msg := "party 🎉🎉 time 🚀 no emoji here"

	require.Equal(t, len(ExtractEmojis(msg)), CountEmojis(msg))
	require.Equal(t, 3, CountEmojis(msg))
}
