package pdftext

import (
	"strings"
	"unicode/utf8"
)

// Snippet returns the window of text around the first case-insensitive
// occurrence of keyword: context characters before the match start through
// the matched phrase plus context characters after it, clamped to the text
// bounds. Offsets are counted in runes so multibyte text windows evenly and
// the result is always valid UTF-8. Returns "" when the keyword is absent.
// The exact windowing is relied on for reproducible evidence snippets.
func Snippet(text, keyword string, context int) string {
	if keyword == "" {
		return ""
	}

	lowered := strings.ToLower(text)
	loweredKeyword := strings.ToLower(keyword)
	pos := strings.Index(lowered, loweredKeyword)
	if pos == -1 {
		return ""
	}

	// ToLower maps rune to rune, so rune offsets in the lowered copy line up
	// with rune offsets in the original text even when byte offsets do not.
	matchStart := utf8.RuneCountInString(lowered[:pos])
	matchLen := utf8.RuneCountInString(loweredKeyword)

	runes := []rune(text)
	start := matchStart - context
	if start < 0 {
		start = 0
	}
	end := matchStart + matchLen + context
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}
