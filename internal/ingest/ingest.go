// Package ingest converts raw chat-export files into the canonical record
// table. Each platform has its own parser; the dispatcher validates the
// export signature before handing the content over.
package ingest

import (
	"errors"
	"fmt"
	"time"

	"github.com/conversight/conversight/internal/platform/observability"
	"github.com/conversight/conversight/internal/platform/textutils"
	"github.com/conversight/conversight/internal/record"
)

var (
	// ErrUnknownPlatform indicates the platform label is not one of the
	// supported exports.
	ErrUnknownPlatform = errors.New("unknown platform")

	// ErrSignatureMismatch indicates the content does not carry the declared
	// platform's export signature. Recoverable: the caller should warn the
	// user about a mis-selected platform rather than fail the session.
	ErrSignatureMismatch = errors.New("content does not match platform signature")

	// ErrProcessing indicates the export matched the signature but could not
	// be parsed.
	ErrProcessing = errors.New("failed to process export")
)

// Parse decodes the raw export and routes it to the parser for the declared
// platform. A zero-row parse returns an empty table and no error; per-row
// date failures never abort the parse.
func Parse(raw []byte, platform string) (record.Table, error) {
	profile, ok := record.ProfileFor(platform)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}

	text, err := textutils.Decode(raw)
	if err != nil {
		observability.ParseFailures.WithLabelValues(profile.Name, "decode").Inc()
		return nil, err
	}

	if !profile.MatchesSignature(text) {
		observability.ParseFailures.WithLabelValues(profile.Name, "signature").Inc()
		return nil, fmt.Errorf("%w: %s", ErrSignatureMismatch, profile.Name)
	}

	start := time.Now()

	var table record.Table

	switch profile.Name {
	case record.WhatsApp.Name:
		table = parseWhatsApp(text)
	case record.Telegram.Name:
		table, err = parseTelegram(text)
	case record.Facebook.Name:
		table, err = parseFacebook(text)
	}

	if err != nil {
		observability.ParseFailures.WithLabelValues(profile.Name, "parse").Inc()
		return nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}

	observability.ExportsParsed.WithLabelValues(profile.Name).Inc()
	observability.RowsParsed.WithLabelValues(profile.Name).Add(float64(len(table)))
	observability.ParseDuration.WithLabelValues(profile.Name).Observe(time.Since(start).Seconds())

	return table, nil
}
