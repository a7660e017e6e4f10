// Package library implements the virtual file system resolver: a
// stateful manifest parser, a layered per-virtual-path index, and the
// region/season/weight resolution algorithm that turns a lookup into
// a concrete file on disk.
package library

// DefaultDelimiters is the whitespace delimiter set manifest lines are
// tokenized with.
var DefaultDelimiters = []byte{' ', '\t', '\n', '\r'}

// Tokenize splits line into non-empty tokens on the given ASCII
// delimiter bytes. It is a byte-exact scanner: malformed UTF-8 is
// tolerated, never validated. A byte with the high bit (0x80) set
// opens a "continuation" state during which delimiter matching is
// suppressed, so a continuation byte that happens to equal a
// delimiter (e.g. 0x20) never splits a multibyte codepoint. The state
// clears on the next byte whose high bit is zero.
func Tokenize(line string, delimiters []byte) []string {
	isDelim := delimiterSet(delimiters)

	tokens := make([]string, 0, 4)
	start := -1
	inContinuation := false

	for i := 0; i < len(line); i++ {
		b := line[i]

		if !inContinuation && isDelim[b] {
			if start >= 0 {
				tokens = append(tokens, line[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}

		inContinuation = b&0x80 != 0
	}
	if start >= 0 {
		tokens = append(tokens, line[start:])
	}
	return tokens
}

// TrimWhitespace strips leading and trailing bytes in {' ', '\t', '\n', '\r'}.
func TrimWhitespace(s string) string {
	start := 0
	for start < len(s) && isWhitespaceByte(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isWhitespaceByte(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isWhitespaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func delimiterSet(delimiters []byte) [256]bool {
	var set [256]bool
	for _, d := range delimiters {
		set[d] = true
	}
	return set
}
