package scan

import "strings"

// Kind identifies a token class.
type Kind int

const (
	EOF Kind = iota
	Ident
	String
	Punct
	Range
	Other
)

var kindNames = [...]string{"EOF", "Ident", "String", "Punct", "Range", "Other"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Token is one lexical unit. For strings, Text is the unquoted content.
type Token struct {
	Kind Kind
	Text string
	Pos  int
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(k Kind, text string) bool { return t.Kind == k && t.Text == text }

// Tokenizer splits C-family DSL source (Groovy, Kotlin, Swift) into tokens.
// Whitespace and comments are skipped. It recognizes only what the manifest
// grammars need: identifiers, quoted strings, the range operators "..." and
// "..<", and single-character punctuation.
type Tokenizer struct {
	src string
	pos int
}

func NewTokenizer(src string) *Tokenizer { return &Tokenizer{src: src} }

// Tokenize returns every token in src, without the trailing EOF.
func Tokenize(src string) []Token {
	t := NewTokenizer(src)
	var out []Token
	for {
		tok := t.Next()
		if tok.Kind == EOF {
			return out
		}
		out = append(out, tok)
	}
}

// Next returns the next token, or an EOF token at the end of input.
func (t *Tokenizer) Next() Token {
	t.skip()
	if t.pos >= len(t.src) {
		return Token{Kind: EOF, Pos: t.pos}
	}
	start := t.pos
	c := t.src[t.pos]
	switch {
	case isIdentStart(c):
		for t.pos < len(t.src) && isIdentPart(t.src[t.pos]) {
			t.pos++
		}
		return Token{Kind: Ident, Text: t.src[start:t.pos], Pos: start}
	case c == '"' || c == '\'':
		return t.str(c)
	case strings.HasPrefix(t.src[t.pos:], "..."), strings.HasPrefix(t.src[t.pos:], "..<"):
		t.pos += 3
		return Token{Kind: Range, Text: t.src[start:t.pos], Pos: start}
	case strings.IndexByte("()[]{},:.=", c) >= 0:
		t.pos++
		return Token{Kind: Punct, Text: string(c), Pos: start}
	}
	t.pos++
	return Token{Kind: Other, Text: string(c), Pos: start}
}

func (t *Tokenizer) skip() {
	for t.pos < len(t.src) {
		switch c := t.src[t.pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			t.pos++
		case strings.HasPrefix(t.src[t.pos:], "//"):
			if i := strings.IndexByte(t.src[t.pos:], '\n'); i >= 0 {
				t.pos += i + 1
			} else {
				t.pos = len(t.src)
			}
		case strings.HasPrefix(t.src[t.pos:], "/*"):
			if i := strings.Index(t.src[t.pos+2:], "*/"); i >= 0 {
				t.pos += i + 4
			} else {
				t.pos = len(t.src)
			}
		default:
			return
		}
	}
}

// str scans a quoted string. An unterminated string ends at the newline
// and is reported as Other so grammars ignore it.
func (t *Tokenizer) str(q byte) Token {
	start := t.pos
	t.pos++
	var b strings.Builder
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		switch {
		case c == '\\' && t.pos+1 < len(t.src):
			b.WriteByte(t.src[t.pos+1])
			t.pos += 2
		case c == q:
			t.pos++
			return Token{Kind: String, Text: b.String(), Pos: start}
		case c == '\n':
			return Token{Kind: Other, Text: t.src[start:t.pos], Pos: start}
		default:
			b.WriteByte(c)
			t.pos++
		}
	}
	return Token{Kind: Other, Text: t.src[start:t.pos], Pos: start}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentPart(c byte) bool { return isIdentStart(c) || c >= '0' && c <= '9' }
