package ingest

import (
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/conversight/conversight/internal/record"
)

// mediaPlaceholder stands in for Telegram blocks that carry no text div
// (stickers, media without caption, calls).
const mediaPlaceholder = "[Media or system message]"

// telegramTimeLayout matches the machine-readable title attribute on the
// timestamp div, after the trailing " UTC±HH:MM" marker is stripped.
const telegramTimeLayout = "02.01.2006 15:04:05"

// unknownSender labels rows seen before the first from_name header.
const unknownSender = "Unknown"

// parseTelegram walks the export's message blocks in document order. Blocks
// without a timestamp are service messages and are dropped. Telegram groups
// consecutive messages from one sender under a single header, so a block
// without its own from_name inherits the most recently seen sender.
func parseTelegram(text string) (record.Table, error) {
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	table := record.Table{}
	currentUser := ""

	for _, msg := range findDivs(doc, "message") {
		body := findDiv(msg, "body")
		if body == nil {
			continue
		}

		timeTag := findDiv(body, "pull_right", "date", "details")
		if timeTag == nil {
			continue
		}

		if userTag := findDiv(body, "from_name"); userTag != nil {
			currentUser = nodeText(userTag, " ")
		}

		username := currentUser
		if username == "" {
			username = unknownSender
		}

		message := mediaPlaceholder
		if textTag := findDiv(body, "text"); textTag != nil {
			message = nodeText(textTag, " ")
		}

		table = append(table, record.New(username, message, parseTelegramDate(attrValue(timeTag, "title"))))
	}

	return table, nil
}

func parseTelegramDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}

	raw, _, _ = strings.Cut(raw, " UTC")

	t, err := time.Parse(telegramTimeLayout, raw)
	if err != nil {
		return nil
	}

	return &t
}
