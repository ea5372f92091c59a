package spectre

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	src string
	// pos is the byte offset of the next rune in src.
	pos int
	// at maps byte offsets in src to byte offsets in the outer source when
	// src is the translation of a superscript run. It has one more element
	// than src has bytes. It is nil for the outer source.
	at []int
}

// Lex scans the entire source into tokens. The last token is always an end
// marker. The first invalid character aborts lexing with a *LexError.
func Lex(src string) ([]Token, error) {
	l := lexer{src: src}
	return l.lex()
}

func (l *lexer) lex() ([]Token, error) {
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEnd {
			return toks, nil
		}
	}
}

// span converts a byte range in l.src to a range in the outer source.
func (l *lexer) span(start, end int) Span {
	if l.at == nil {
		return Span{start, end}
	}
	return Span{l.at[start], l.at[end]}
}

func (l *lexer) token(kind TokenKind, start int) Token {
	return Token{Kind: kind, Text: l.src[start:l.pos], Span: l.span(start, l.pos)}
}

// peek decodes the rune at the current position without consuming it.
func (l *lexer) peek() (rune, int) {
	if l.pos >= len(l.src) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.src[l.pos:])
}

// next scans the next token. After the end of the input, it returns an end
// marker every time it is called.
func (l *lexer) next() (Token, error) {
	for {
		r, sz := l.peek()
		if r != ' ' && r != '\t' && r != '\r' {
			break
		}
		l.pos += sz
	}
	start := l.pos
	r, sz := l.peek()
	switch {
	case sz == 0:
		return l.token(TokenEnd, start), nil
	case isDigit(r):
		return l.number(), nil
	case isWordStart(r):
		return l.word(), nil
	}
	if _, ok := superscripts.down[r]; ok {
		return l.superscript()
	}
	l.pos += sz
	kind, ok := glyphs[r]
	if !ok {
		return Token{}, &LexError{Char: r, Span: l.span(start, l.pos)}
	}
	if dk, ok := digraphs[kind]; ok {
		if r, sz := l.peek(); r == '=' {
			l.pos += sz
			kind = dk
		}
	}
	return l.token(kind, start), nil
}

// number scans digits and decimal points. The literal is real if it contains
// any point. Literals with more than one point are left for the parser to
// reject.
func (l *lexer) number() Token {
	start := l.pos
	kind := TokenInt
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '.' {
			kind = TokenReal
		} else if !isDigit(rune(c)) {
			break
		}
		l.pos++
	}
	return l.token(kind, start)
}

func (l *lexer) word() Token {
	start := l.pos
	for {
		r, sz := l.peek()
		if sz == 0 || !isWordStart(r) && !isDigit(r) {
			break
		}
		l.pos += sz
	}
	tok := l.token(TokenIdent, start)
	if k, ok := keywords[tok.Text]; ok {
		tok.Kind = k
	}
	return tok
}

// superscript scans a run of superscript glyphs, translates it to ordinary
// text, and lexes the translation as its own token stream.
func (l *lexer) superscript() (Token, error) {
	start := l.pos
	var b strings.Builder
	var at []int
	for {
		r, sz := l.peek()
		n, ok := superscripts.down[r]
		if sz == 0 || !ok {
			break
		}
		b.WriteRune(n)
		for k := utf8.RuneLen(n); k > 0; k-- {
			at = append(at, l.span(l.pos, l.pos).Start)
		}
		l.pos += sz
	}
	at = append(at, l.span(l.pos, l.pos).Start)
	sub := lexer{src: b.String(), at: at}
	toks, err := sub.lex()
	if err != nil {
		return Token{}, err
	}
	tok := l.token(TokenSuperscript, start)
	tok.Sup = toks[:len(toks)-1]
	return tok, nil
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isWordStart reports whether r can begin an identifier: ASCII letters,
// letters of the Greek block, underscore, and the infinity sign.
func isWordStart(r rune) bool {
	switch {
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', r == '_', r == '∞':
		return true
	case 0x0370 <= r && r <= 0x03ff:
		return unicode.IsLetter(r)
	}
	return false
}
