package record

import (
	"unicode/utf8"

	"github.com/forPelevin/gomoji"
)

// emojiRunes holds every single-rune emoji character known to the gomoji
// dataset. Messages are scanned rune by rune against this set, so multi-rune
// sequences (skin tones, flags) count by their component characters.
var emojiRunes = buildEmojiRunes()

func buildEmojiRunes() map[rune]bool {
	set := make(map[rune]bool)

	for _, e := range gomoji.AllEmojis() {
		if utf8.RuneCountInString(e.Character) != 1 {
			continue
		}

		r, _ := utf8.DecodeRuneInString(e.Character)
		set[r] = true
	}

	return set
}

// CountEmojis returns the number of emoji characters in the message.
func CountEmojis(message string) int {
	count := 0

	for _, r := range message {
		if emojiRunes[r] {
			count++
		}
	}

	return count
}

// ExtractEmojis returns every emoji character in the message, in order of
// appearance and with repeats preserved.
func ExtractEmojis(message string) []string {
	var out []string

	for _, r := range message {
		if emojiRunes[r] {
			out = append(out, string(r))
		}
	}

	return out
}
