// Package scan holds the small lexical helpers shared by the manifest
// extractors: a line splitter, a key/value matcher for TOML-like files,
// a tokenizer for the Gradle and Swift DSLs, and an order-preserving
// JSON object walker.
package scan

import (
	"regexp"
	"strings"
	"unicode"
)

var tableVersionRE = regexp.MustCompile(`^\{.*version\s*=\s*"([^"]+)"`)

// Line is one line of a manifest.
type Line struct {
	Num  int    // 1-based line number
	Raw  string // Line with trailing whitespace removed; indentation kept
	Text string // Line with surrounding whitespace removed
}

// Lines splits content on '\n'. A trailing '\r' is dropped with the rest
// of the trailing whitespace, so CRLF files scan like LF files.
func Lines(content string) []Line {
	parts := strings.Split(content, "\n")
	out := make([]Line, len(parts))
	for i, p := range parts {
		raw := strings.TrimRightFunc(p, unicode.IsSpace)
		out[i] = Line{Num: i + 1, Raw: raw, Text: strings.TrimSpace(raw)}
	}
	return out
}

// Blank reports whether the line has no content.
func (l Line) Blank() bool { return l.Text == "" }

// Comment reports whether the trimmed line starts with any of prefixes.
func (l Line) Comment(prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(l.Text, p) {
			return true
		}
	}
	return false
}

// Section returns the name inside a "[name]" header line.
func (l Line) Section() (string, bool) {
	t := l.Text
	if len(t) < 3 || t[0] != '[' || t[len(t)-1] != ']' {
		return "", false
	}
	return t[1 : len(t)-1], true
}

// KeyValue splits "key = rest" where key consists only of runes accepted
// by keyRune. Surrounding whitespace around '=' is skipped.
func KeyValue(text string, keyRune func(rune) bool) (key, rest string, ok bool) {
	i := 0
	for i < len(text) {
		r := rune(text[i])
		if r >= 0x80 || !keyRune(r) {
			break
		}
		i++
	}
	if i == 0 {
		return "", "", false
	}
	rest = strings.TrimLeft(text[i:], " \t")
	if !strings.HasPrefix(rest, "=") {
		return "", "", false
	}
	return text[:i], strings.TrimLeft(rest[1:], " \t"), true
}

// Quoted returns the content of a non-empty double-quoted string at the
// start of s.
func Quoted(s string) (string, bool) {
	if !strings.HasPrefix(s, `"`) {
		return "", false
	}
	end := strings.IndexByte(s[1:], '"')
	if end <= 0 {
		return "", false
	}
	return s[1 : end+1], true
}

// Unquote strips one pair of matching single or double quotes.
func Unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// PackageKey accepts ASCII letters, digits, '_' and '-'.
func PackageKey(r rune) bool {
	return r == '_' || r == '-' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// DottedKey is PackageKey plus '.'.
func DottedKey(r rune) bool { return r == '.' || PackageKey(r) }

// TableVersion reads the version key of an inline table such as
// `{ version = "1.0", features = ["derive"] }`. ok is false when s is not
// an inline table or the table has no version key.
func TableVersion(s string) (version string, ok bool) {
	if !strings.HasPrefix(s, "{") {
		return "", false
	}
	if m := tableVersionRE.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	return "", false
}
