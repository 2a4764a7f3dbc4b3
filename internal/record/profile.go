package record

import (
	"regexp"
	"strings"
)

// Profile centralizes every platform-specific pattern: the export signature the
// dispatcher validates, and the media/deleted/edited markers shared by the
// stats, cleaning, and word-cloud paths. Keeping them in one place prevents
// the marker lists from drifting apart between consumers.
type Profile struct {
	Name          string
	MediaMarkers  []string
	DeletedMarker string
	EditedMarker  string

	signature func(text string) bool
}

var whatsappDatePrefix = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}`)

var (
	// WhatsApp covers the plain-text export format.
	WhatsApp = Profile{
		Name:          "whatsapp",
		MediaMarkers:  []string{"<media omitted>"},
		DeletedMarker: "this message was deleted",
		EditedMarker:  "<this message was edited>",
		signature: func(text string) bool {
			return strings.HasPrefix(text, "[") || whatsappDatePrefix.MatchString(text)
		},
	}

	// Telegram covers the HTML export produced by Telegram Desktop.
	Telegram = Profile{
		Name:          "telegram",
		MediaMarkers:  []string{"photo", "video", "sticker", "file", "voice message", "animation", "audio", "[media or system message]"},
		DeletedMarker: "this message was deleted",
		signature: func(text string) bool {
			return strings.Contains(text, `<div class="message default clearfix"`)
		},
	}

	// Facebook covers the HTML archive from a Facebook data download.
	Facebook = Profile{
		Name:          "facebook",
		MediaMarkers:  []string{"image", "video", "sticker", "file", "attachment"},
		DeletedMarker: "unsent a message",
		EditedMarker:  "edited a message",
		signature: func(text string) bool {
			return strings.Contains(text, "_a6-g") && strings.Contains(text, "_a6-h")
		},
	}
)

// ProfileFor resolves a platform label case-insensitively.
func ProfileFor(platform string) (Profile, bool) {
	switch strings.ToLower(strings.TrimSpace(platform)) {
	case WhatsApp.Name:
		return WhatsApp, true
	case Telegram.Name:
		return Telegram, true
	case Facebook.Name:
		return Facebook, true
	default:
		return Profile{}, false
	}
}

// MatchesSignature reports whether the decoded export text looks like this
// platform's export format.
func (p Profile) MatchesSignature(text string) bool {
	return p.signature != nil && p.signature(text)
}

// NoiseMarkers returns the lowercased markers identifying non-conversational
// rows (media placeholders, deletion and edit notices) for cleaning purposes.
func (p Profile) NoiseMarkers() []string {
	markers := make([]string, 0, len(p.MediaMarkers)+2)

	for _, m := range p.MediaMarkers {
		markers = append(markers, strings.ToLower(m))
	}

	if p.DeletedMarker != "" {
		markers = append(markers, strings.ToLower(p.DeletedMarker))
	}

	if p.EditedMarker != "" {
		markers = append(markers, strings.ToLower(p.EditedMarker))
	}

	return markers
}
