// Package textutils provides text decoding and tokenization helpers shared by
// the parsers and the NLP pipeline.
package textutils

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidEncoding indicates the uploaded bytes are not decodable text.
var ErrInvalidEncoding = errors.New("content is not valid text")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts raw export bytes to a UTF-8 string. Byte order marks are
// honored, so UTF-16 exports (some WhatsApp builds emit them) transcode
// transparently. BOM-less content must be strictly valid UTF-8; anything
// else is a fatal input error.
func Decode(raw []byte) (string, error) {
	if hasBOM(raw) {
		decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())

		decoded, _, err := transform.Bytes(decoder, raw)
		if err != nil {
			return "", ErrInvalidEncoding
		}

		return string(decoded), nil
	}

	if !utf8.Valid(raw) {
		return "", ErrInvalidEncoding
	}

	return string(raw), nil
}

func hasBOM(raw []byte) bool {
	return bytes.HasPrefix(raw, bomUTF8) ||
		bytes.HasPrefix(raw, bomUTF16LE) ||
		bytes.HasPrefix(raw, bomUTF16BE)
}

// tokenPattern selects word tokens of at least two characters, the same shape
// the vectorisers downstream expect.
var tokenPattern = regexp.MustCompile(`\w\w+`)

// Tokenize lowercases the text and returns its word tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// StripNames removes whole-word, case-insensitive occurrences of the given
// names from the text. Used to keep participant names out of keyword and
// topic results.
func StripNames(text string, names []string) string {
	if len(names) == 0 {
		return text
	}

	quoted := make([]string, 0, len(names))

	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}

		quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(n)))
	}

	if len(quoted) == 0 {
		return text
	}

	re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return text
	}

	return re.ReplaceAllString(text, "")
}

// CollapseSpaces trims the text and folds runs of whitespace into one space.
func CollapseSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
