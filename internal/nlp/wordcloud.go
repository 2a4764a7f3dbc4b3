package nlp

import (
	"image"
	"image/color"
	"os"
	"strings"

	"github.com/psykhi/wordclouds"

	"github.com/conversight/conversight/internal/platform/textutils"
	"github.com/conversight/conversight/internal/record"
)

// CloudOptions controls word-cloud rendering.
type CloudOptions struct {
	FontFile string
	Width    int
	Height   int
}

var cloudColors = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
}

// WordFrequencies applies the platform noise filter and the supplied
// stop-word set, then counts the remaining word tokens for the selected
// user's messages.
func WordFrequencies(user string, table record.Table, profile record.Profile, stopWords map[string]bool) map[string]int {
	rows := table.ForUser(user)
	markers := profile.NoiseMarkers()

	freq := make(map[string]int)

	for _, r := range rows {
		lower := strings.ToLower(r.Message)
		if containsAnyMarker(lower, markers) {
			continue
		}

		for _, tok := range textutils.Tokenize(lower) {
			if stopWords[tok] {
				continue
			}

			freq[tok]++
		}
	}

	return freq
}

// WordCloud renders the word-frequency image for the selected user.
func WordCloud(user string, table record.Table, profile record.Profile, stopWords map[string]bool, opts CloudOptions) (image.Image, error) {
	freq := WordFrequencies(user, table, profile, stopWords)
	if len(freq) == 0 {
		return nil, ErrEmptyCorpus
	}

	cloud := wordclouds.NewWordcloud(freq,
		wordclouds.FontFile(opts.FontFile),
		wordclouds.Width(opts.Width),
		wordclouds.Height(opts.Height),
		wordclouds.Colors(cloudColors),
		wordclouds.BackgroundColor(color.White),
	)

	return cloud.Draw(), nil
}

// LoadStopWords reads a whitespace-separated stop-word file into a set. A
// missing path yields an empty set rather than an error, matching the
// optional nature of the list.
func LoadStopWords(path string) map[string]bool {
	set := make(map[string]bool)

	if path == "" {
		return set
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return set
	}

	for _, w := range strings.Fields(string(data)) {
		set[strings.ToLower(w)] = true
	}

	return set
}
