package matcher

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Intent prefixes, checked in order. English first, then Tamil.
var commandPrefixes = []string{
	"navigate to",
	"go to",
	"take me to",
	"show me",
	"find",
	"where is",
	"direction to",
	"route to",
	"செல்லுங்கள்",
	"போங்கள்",
	"காட்டுங்கள்",
	"எங்கே",
	"வழி",
	"திசை",
}

// normalize lower-cases and NFC-composes text so Tamil transcripts compare
// equal regardless of how the recognizer composed vowel signs. Runs of
// whitespace collapse to a single space.
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(norm.NFC.String(text))), " ")
}

// ExtractCommand strips at most one leading intent phrase from transcript and
// returns the remainder. ok is false when nothing actionable is left.
func ExtractCommand(transcript string) (command string, ok bool) {
	normalized := normalize(transcript)

	for _, prefix := range commandPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			normalized = strings.TrimSpace(normalized[len(prefix):])

			break
		}
	}

	return normalized, normalized != ""
}

// IsCancelRequest reports whether text asks to stop the current navigation.
func IsCancelRequest(text string) bool {
	normalized := normalize(text)

	return strings.Contains(normalized, "cancel") && strings.Contains(normalized, "navigation")
}

// Suggestions are the quick-action phrases offered when the user has not said anything yet.
func Suggestions() []string {
	return []string{
		"Navigate to Canteen",
		"Go to CSE Block",
		"Take me to Library",
		"Show me the Auditorium",
		"Find the Hostel",
		"Where is the Temple",
	}
}
