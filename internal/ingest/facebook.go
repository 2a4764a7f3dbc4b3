package ingest

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/net/html"

	"github.com/conversight/conversight/internal/record"
)

// Facebook archive class markers. The obfuscated names are stable across an
// archive generation and double as the platform signature.
const (
	fbBlockClass     = "_a6-g"
	fbTimestampClass = "_a72d"
)

var (
	fbSenderClasses = []string{"_2ph_", "_a6-h", "_a6-i"}
	fbBodyClasses   = []string{"_2ph_", "_a6-p"}
)

// parseFacebook walks the archive's message containers. The body is the
// first nested text fragment that is not a reaction notice; containers with
// no usable sender or body are dropped rather than placeholdered.
func parseFacebook(text string) (record.Table, error) {
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	table := record.Table{}

	for _, block := range findDivs(doc, fbBlockClass) {
		username := ""
		if userTag := findDiv(block, fbSenderClasses...); userTag != nil {
			username = nodeText(userTag, "")
		}

		message := ""
		if bodyTag := findDiv(block, fbBodyClasses...); bodyTag != nil {
			message = firstMessageFragment(bodyTag)
		}

		if username == "" || message == "" {
			continue
		}

		var date *time.Time
		if timeTag := findDiv(block, fbTimestampClass); timeTag != nil {
			date = parseFacebookDate(nodeText(timeTag, ""))
		}

		table = append(table, record.New(username, message, date))
	}

	return table, nil
}

// firstMessageFragment picks the first nested div whose text is non-empty
// and is not a "Reacted ..." notice.
func firstMessageFragment(body *html.Node) string {
	var found string

	var traverse func(*html.Node)

	traverse = func(n *html.Node) {
		if found != "" {
			return
		}

		if isDiv(n) && n != body {
			text := nodeText(n, "")
			if text != "" && !strings.HasPrefix(strings.ToLower(text), "reacted") {
				found = text
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}

	traverse(body)

	return found
}

// parseFacebookDate parses the human-readable timestamp permissively; the
// archive wording varies by locale and archive age, so failures fall back to
// a null date rather than dropping the row.
func parseFacebookDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}

	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return nil
	}

	return &t
}
