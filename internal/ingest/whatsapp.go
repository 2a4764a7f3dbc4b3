package ingest

import (
	"regexp"
	"strings"
	"time"

	"github.com/conversight/conversight/internal/record"
)

// messageStart recognizes the two WhatsApp export prefixes:
// "12/1/23, 10:00 PM - " and the bracketed "[12/1/23, 10:00:00 PM] ".
var messageStart = regexp.MustCompile(`^\[?\d{1,2}/\d{1,2}/\d{2,4},\s*\d{1,2}:\d{2}`)

// whatsappLayouts are tried in order; WhatsApp exports vary in year width,
// clock style, and whether seconds are present.
var whatsappLayouts = []string{
	"1/2/06, 3:04 PM",
	"1/2/2006, 3:04 PM",
	"1/2/06, 3:04:05 PM",
	"1/2/2006, 3:04:05 PM",
	"1/2/06, 15:04",
	"1/2/2006, 15:04",
	"1/2/06, 15:04:05",
	"1/2/2006, 15:04:05",
}

type whatsappEntry struct {
	prefix string // date-time portion, brackets stripped
	rest   string // "sender: message" or raw system text
}

// parseWhatsApp splits the export on message-start lines and folds
// continuation lines into the preceding message.
func parseWhatsApp(text string) record.Table {
	var entries []whatsappEntry

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		if messageStart.MatchString(line) {
			prefix, rest := splitWhatsAppLine(line)
			entries = append(entries, whatsappEntry{prefix: prefix, rest: rest})

			continue
		}

		if len(entries) == 0 {
			// Preamble before the first dated line: keep as an
			// unattributed, undated row.
			entries = append(entries, whatsappEntry{rest: line})
			continue
		}

		entries[len(entries)-1].rest += "\n" + line
	}

	table := make(record.Table, 0, len(entries))

	for _, e := range entries {
		username, message := splitSender(e.rest)
		table = append(table, record.New(username, message, parseWhatsAppDate(e.prefix)))
	}

	return table
}

// splitWhatsAppLine separates the date-time prefix from the body for both the
// bracketed and the dash-separated line forms.
func splitWhatsAppLine(line string) (prefix, rest string) {
	if strings.HasPrefix(line, "[") {
		if end := strings.Index(line, "] "); end > 0 {
			return line[1:end], line[end+2:]
		}

		return "", strings.TrimPrefix(line, "[")
	}

	if sep := strings.Index(line, " - "); sep > 0 {
		return line[:sep], line[sep+3:]
	}

	return "", line
}

// splitSender separates "sender: message". System lines carry no sender and
// stay unattributed with their full text as the message.
func splitSender(rest string) (username, message string) {
	if sep := strings.Index(rest, ": "); sep > 0 {
		return rest[:sep], rest[sep+2:]
	}

	return "", rest
}

func parseWhatsAppDate(prefix string) *time.Time {
	if prefix == "" {
		return nil
	}

	// Newer exports use narrow no-break spaces before the meridiem.
	prefix = strings.NewReplacer(" ", " ", " ", " ").Replace(prefix)

	for _, layout := range whatsappLayouts {
		if t, err := time.Parse(layout, prefix); err == nil {
			return &t
		}
	}

	return nil
}
