// Package nlp implements the text analytics: corpus cleaning, sentiment,
// TF-IDF keywords, LDA topics, emoji frequency, and word-cloud rendering.
package nlp

import (
	"errors"
	"strings"

	"github.com/bbalet/stopwords"

	"github.com/conversight/conversight/internal/platform/textutils"
	"github.com/conversight/conversight/internal/record"
)

// ErrEmptyCorpus indicates no usable messages remain after cleaning.
var ErrEmptyCorpus = errors.New("empty corpus after cleaning")

// domainStopList holds chat-export artifacts that must never surface as
// keywords or topic terms, regardless of their corpus weight.
var domainStopList = map[string]bool{
	"deleted":       true,
	"null":          true,
	"omitted":       true,
	"message":       true,
	"media":         true,
	"photo":         true,
	"video":         true,
	"sticker":       true,
	"animation":     true,
	"voice message": true,
	"file":          true,
}

// Clean drops messages matching the platform's noise markers (media
// placeholders, deletion and edit notices), strips the given usernames as
// whole words, and lowercases what remains. Shared preprocessing for the
// TF-IDF, topic, and word-cloud paths.
func Clean(messages []string, profile record.Profile, usernames []string) []string {
	markers := profile.NoiseMarkers()

	out := make([]string, 0, len(messages))

	for _, m := range messages {
		lower := strings.ToLower(m)
		if containsAnyMarker(lower, markers) {
			continue
		}

		out = append(out, textutils.StripNames(lower, usernames))
	}

	return out
}

func containsAnyMarker(lower string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	return false
}

// prepareCorpus cleans the messages, removes english stop words, and applies
// the document-frequency filter: a term must appear in at least two messages
// and in no more than 95% of them.
func prepareCorpus(messages []string, profile record.Profile, usernames []string) []string {
	cleaned := Clean(messages, profile, usernames)

	docs := make([]string, 0, len(cleaned))

	for _, m := range cleaned {
		m = stopwords.CleanString(m, "en", false)
		if m = strings.TrimSpace(m); m != "" {
			docs = append(docs, m)
		}
	}

	return frequencyFilter(docs, 2, 0.95)
}

// frequencyFilter drops tokens whose document frequency falls outside
// [minDocs, maxRatio*len(docs)], then drops documents left empty.
func frequencyFilter(docs []string, minDocs int, maxRatio float64) []string {
	df := make(map[string]int)

	tokenized := make([][]string, len(docs))

	for i, doc := range docs {
		tokens := textutils.Tokenize(doc)
		tokenized[i] = tokens

		seen := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	maxDocs := int(maxRatio * float64(len(docs)))

	out := make([]string, 0, len(docs))

	for _, tokens := range tokenized {
		kept := make([]string, 0, len(tokens))

		for _, tok := range tokens {
			if df[tok] >= minDocs && df[tok] <= maxDocs {
				kept = append(kept, tok)
			}
		}

		if len(kept) > 0 {
			out = append(out, strings.Join(kept, " "))
		}
	}

	return out
}
