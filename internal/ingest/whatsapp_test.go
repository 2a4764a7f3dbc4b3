package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/conversight/conversight/internal/record"
)

const whatsappSample = `12/1/23, 10:00 PM - Alice: Hello 😀 http://x.com
12/1/23, 10:01 PM - Bob: First line
second line
12/1/23, 10:02 PM - Messages and calls are end-to-end encrypted.`

func TestParseWhatsApp(t *testing.T) {
	table := parseWhatsApp(whatsappSample)
	require.Len(t, table, 3)

	first := table[0]
	require.Equal(t, "Alice", first.Username)
	require.Equal(t, "Hello 😀 http://x.com", first.Message)
	require.Equal(t, 3, first.WordCount)
	require.Equal(t, 1, first.EmojiCount)
	require.Equal(t, 1, first.URLCount)
	require.Equal(t, record.Evening, first.Period)
	require.True(t, first.HasDate())
	require.Equal(t, time.Date(2023, time.December, 1, 22, 0, 0, 0, time.UTC), *first.Date)
}

func TestParseWhatsAppContinuationLines(t *testing.T) {
	table := parseWhatsApp(whatsappSample)

	require.Equal(t, "Bob", table[1].Username)
	require.Equal(t, "First line\nsecond line", table[1].Message)
}

func TestParseWhatsAppSystemLine(t *testing.T) {
	table := parseWhatsApp(whatsappSample)

	sys := table[2]
	require.Empty(t, sys.Username)
	require.Equal(t, "Messages and calls are end-to-end encrypted.", sys.Message)
	require.True(t, sys.HasDate())
}

func TestParseWhatsAppBracketedForm(t *testing.T) {
	table := parseWhatsApp("[12/1/23, 10:00:30 PM] Alice: hi there")
	require.Len(t, table, 1)

	require.Equal(t, "Alice", table[0].Username)
	require.Equal(t, "hi there", table[0].Message)
	require.True(t, table[0].HasDate())
	require.Equal(t, 30, table[0].Date.Second())
}

func TestParseWhatsAppLayouts(t *testing.T) {
	tests := []struct {
		name string
		line string
		hour int
	}{
		{"12h short year", "12/1/23, 10:00 PM - A: m", 22},
		{"12h long year", "12/1/2023, 10:00 PM - A: m", 22},
		{"24h", "12/1/23, 22:00 - A: m", 22},
		{"24h with seconds", "12/1/2023, 22:00:05 - A: m", 22},
		{"narrow no-break space", "12/1/23, 10:00 PM - A: m", 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := parseWhatsApp(tt.line)
			require.Len(t, table, 1)
			require.True(t, table[0].HasDate(), "date should parse")
			require.Equal(t, tt.hour, table[0].Hour)
		})
	}
}

func TestParseWhatsAppUnparsableDate(t *testing.T) {
	// Matches the line signature but not any known layout.
	table := parseWhatsApp("99/99/99, 99:99 - A: still kept")
	require.Len(t, table, 1)
	require.False(t, table[0].HasDate())
	require.Equal(t, "A", table[0].Username)
}
