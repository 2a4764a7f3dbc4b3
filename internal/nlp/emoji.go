package nlp

import (
	"sort"

	"github.com/conversight/conversight/internal/record"
)

// EmojiCount is one row of the emoji frequency table.
type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// EmojiFrequency scans every message of the selected user ("" for everyone)
// and returns the emoji frequency table, sorted descending by count with
// ties kept in first-encountered order.
func EmojiFrequency(user string, table record.Table) []EmojiCount {
	rows := table.ForUser(user)

	counts := make(map[string]int)

	var order []string

	for _, r := range rows {
		for _, e := range record.ExtractEmojis(r.Message) {
			if counts[e] == 0 {
				order = append(order, e)
			}

			counts[e]++
		}
	}

	out := make([]EmojiCount, 0, len(order))
	for _, e := range order {
		out = append(out, EmojiCount{Emoji: e, Count: counts[e]})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	return out
}

// GuessTopEmoji returns the most frequent emoji, if any.
func GuessTopEmoji(freq []EmojiCount) (EmojiCount, bool) {
	if len(freq) == 0 {
		return EmojiCount{}, false
	}

	return freq[0], true
}
