package intake

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var cancelKeywords = []string{"cancel", "stop", "never mind"}

// Normalize lowercases and trims an utterance for keyword matching. Captured
// field values are stored from the trimmed raw text, not from this form.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func isCancel(text string) bool {
	return containsAny(text, cancelKeywords)
}

func isAffirmative(text string) bool {
	return strings.Contains(text, "yes") || strings.Contains(text, "correct")
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	// A cases.Caser is stateful, so build one per call.
	return cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(s)))
}

// spellOut renders a name letter by letter for voice read-back, e.g.
// "Smith" -> "S, M, I, T, H". Spaces are skipped.
func spellOut(name string) string {
	letters := make([]string, 0, len(name))
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		letters = append(letters, strings.ToUpper(string(r)))
	}
	return strings.Join(letters, ", ")
}
