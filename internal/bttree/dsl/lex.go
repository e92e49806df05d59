package dsl

import (
	"strings"

	"github.com/go-bttree/bttree/internal/bttree/porttype"
)

// The lexer primitives below all share one shape: they take the remaining
// input, and return (rest, value, error). On success rest is the input
// with the matched token (and any leading whitespace it skipped over)
// removed. On failure rest is unspecified and must not be used by the
// caller — every call site either propagates the error immediately or, for
// the handful of optional constructs, discards rest and falls back to the
// pre-attempt remainder, exactly as the grammar's optional/backtracking
// rules require.

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// space consumes a run of ASCII spaces and tabs. Infallible.
func space(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}

// emptyLines consumes a run of whitespace, including newlines. Infallible.
// Every lexer primitive below calls this first, so tree_elem-level
// whitespace (including blank lines between sibling node calls) is always
// insignificant.
func emptyLines(s string) string {
	i := 0
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			i++
		default:
			return s[i:]
		}
	}
	return s[i:]
}

// identifier parses a leading identifier: an ASCII letter or underscore
// followed by letters, digits, or underscores.
func identifier(s string) (rest, ident string, err error) {
	t := emptyLines(s)
	if len(t) == 0 || !isIdentStart(t[0]) {
		return s, "", lexErrorf("expected an identifier")
	}
	i := 1
	for i < len(t) && isIdentCont(t[i]) {
		i++
	}
	return t[i:], t[:i], nil
}

// stringLiteral parses a double-quoted string literal. Escape sequences
// are not supported; the literal runs up to the next '"'.
func stringLiteral(s string) (rest, lit string, err error) {
	t := emptyLines(s)
	if len(t) == 0 || t[0] != '"' {
		return s, "", lexErrorf(`expected '"'`)
	}
	body := t[1:]
	idx := strings.IndexByte(body, '"')
	if idx < 0 {
		return s, "", lexErrorf("unterminated string literal")
	}
	return body[idx+1:], body[:idx], nil
}

// matchChar consumes a single expected byte, after skipping leading
// whitespace (including newlines).
func matchChar(s string, c byte) (rest string, err error) {
	t := emptyLines(s)
	if len(t) == 0 || t[0] != c {
		return s, lexErrorf("expected %q", string(c))
	}
	return t[1:], nil
}

// peekChar reports whether the next non-whitespace byte is c, without
// consuming anything. The returned string is the input with leading
// whitespace already skipped, for callers that want to continue from
// there regardless of the peek result.
func peekChar(s string, c byte) (trimmed string, is bool) {
	trimmed = emptyLines(s)
	return trimmed, len(trimmed) > 0 && trimmed[0] == c
}

// matchKeyword consumes keyword after skipping leading whitespace, only if
// it is not itself a prefix of a longer identifier (so "else" does not
// match "elsewhere").
func matchKeyword(s, keyword string) (rest string, ok bool) {
	t := emptyLines(s)
	if !strings.HasPrefix(t, keyword) {
		return s, false
	}
	after := t[len(keyword):]
	if len(after) > 0 && isIdentCont(after[0]) {
		return s, false
	}
	return after, true
}

// matchArrow parses one of "<-", "->", "<->" denoting a port map's
// direction, preferring the longest match.
func matchArrow(s string) (rest string, dir porttype.Direction, err error) {
	t := emptyLines(s)
	switch {
	case strings.HasPrefix(t, "<->"):
		return t[3:], porttype.InOut, nil
	case strings.HasPrefix(t, "<-"):
		return t[2:], porttype.Input, nil
	case strings.HasPrefix(t, "->"):
		return t[2:], porttype.Output, nil
	default:
		return s, 0, lexErrorf(`expected "<-", "->" or "<->"`)
	}
}
