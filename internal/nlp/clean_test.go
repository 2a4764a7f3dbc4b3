package nlp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conversight/conversight/internal/record"
)

func TestClean(t *testing.T) {
	messages := []string{
		"hello Alice",
		"<Media omitted>",
		"This message was deleted",
		"Nice weather today",
	}

	cleaned := Clean(messages, record.WhatsApp, []string{"Alice"})

	require.Equal(t, []string{"hello ", "nice weather today"}, cleaned)
}

func TestCleanTelegramMarkers(t *testing.T) {
	messages := []string{
		"[Media or system message]",
		"look at this photo",
		"regular chatter",
	}

	cleaned := Clean(messages, record.Telegram, nil)

	// Telegram's marker list includes "photo", so captioned media chatter
	// is filtered along with the placeholder.
	require.Equal(t, []string{"regular chatter"}, cleaned)
}

func TestFrequencyFilter(t *testing.T) {
	docs := []string{
		"apple banana",
		"apple cherry",
		"cherry banana",
		"unique word",
	}

	got := frequencyFilter(docs, 2, 0.95)

	// Terms seen in only one document are dropped, and the document left
	// empty by that goes with them.
	require.Equal(t, []string{"apple banana", "apple cherry", "cherry banana"}, got)
}

func TestFrequencyFilterDropsUbiquitousTerms(t *testing.T) {
	docs := []string{
		"filler one",
		"filler two",
		"filler one",
		"filler two",
	}

	got := frequencyFilter(docs, 2, 0.95)

	// "filler" appears in 100% of documents, above the 95% ceiling.
	for _, doc := range got {
		require.NotContains(t, doc, "filler")
	}
}

func TestFrequencyFilterEmptyInput(t *testing.T) {
	require.Empty(t, frequencyFilter(nil, 2, 0.95))
}
