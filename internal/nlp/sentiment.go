package nlp

import (
	"sync"

	"github.com/jonreiter/govader"
)

// SentimentLabel is the three-way polarity class of a single message.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

var (
	analyzerOnce sync.Once
	analyzer     *govader.SentimentIntensityAnalyzer
)

// Sentiment classifies one message by its VADER compound polarity score:
// strictly positive scores are positive, exactly zero is neutral, negative
// scores are negative.
func Sentiment(message string) SentimentLabel {
	analyzerOnce.Do(func() {
		analyzer = govader.NewSentimentIntensityAnalyzer()
	})

	scores := analyzer.PolarityScores(message)

	switch {
	case scores.Compound > 0:
		return SentimentPositive
	case scores.Compound < 0:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// MoodVibe rolls a set of per-message labels into one overall verdict:
// whichever of positive or negative dominates, or balanced on a tie.
func MoodVibe(labels []SentimentLabel) string {
	var positive, negative int

	for _, l := range labels {
		switch l {
		case SentimentPositive:
			positive++
		case SentimentNegative:
			negative++
		case SentimentNeutral:
		}
	}

	switch {
	case negative > positive:
		return "negative"
	case positive > negative:
		return "positive"
	default:
		return "balanced"
	}
}
