package chunk

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxSegment is the segment size cap in runes used when callers pass
// no explicit limit. It tracks the request size the hosted checking API
// handles without degrading.
const DefaultMaxSegment = 1500

// boundaryChars are the characters a segment may end after: sentence
// terminators and newlines.
const boundaryChars = ".\n!?"

// ErrInvariant reports that the boundary search matched a character it cannot
// classify. It signals a bug in the splitter, not bad input.
var ErrInvariant = errors.New("chunk: boundary search matched an unclassifiable character")

// FindSegmentEnd returns the byte length of the largest prefix of window that
// ends at a natural prose boundary without exceeding max runes. A boundary is
// a sentence terminator followed by whitespace (both stay in the segment) or
// a paragraph break (the segment ends just past the second newline). A period
// followed by a non-space character, as in "10.1", is never treated as a
// sentence end. When the window contains no boundary at all, the whole capped
// window is returned. The returned length is always a valid UTF-8 boundary.
func FindSegmentEnd(window string, max int) (int, error) {
	end := runePrefixLen(window, max)

	for {
		w := window[:end]
		if utf8.RuneCountInString(w) <= 1 {
			return end, nil
		}

		i := strings.LastIndexAny(w, boundaryChars)
		if i < 0 {
			// No boundary anywhere: take the whole window.
			return end, nil
		}

		// A terminator dangling at the very end of the window starts a
		// sentence stub we cannot close; drop it and search again. A
		// trailing newline is not a stub: the switch below decides whether
		// it closes a paragraph.
		if i == len(w)-1 && w[i] != '\n' {
			end = i
			continue
		}

		if i == 0 {
			return end, nil
		}

		switch w[i] {
		case '.', '!', '?':
			r, size := utf8.DecodeRuneInString(w[i+1:])
			if unicode.IsSpace(r) {
				// Sentence end: keep the terminator and the whitespace
				// that follows it.
				return i + 1 + size, nil
			}
			// Mid-token punctuation ("10.1", "v2.0"): not a sentence end.
			end = i
		case '\n':
			if w[i-1] == '\n' {
				// Paragraph break: end just past the newline.
				return i + 1, nil
			}
			end = i
		default:
			return 0, ErrInvariant
		}
	}
}

// runePrefixLen returns the byte length of the longest prefix of s holding at
// most max runes.
func runePrefixLen(s string, max int) int {
	if max <= 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == max {
			return i
		}
		n++
	}
	return len(s)
}
