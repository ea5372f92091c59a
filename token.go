package spectre

import (
	"strconv"
	"strings"
)

// Span is a half-open range of byte offsets into the source text.
type Span struct {
	Start, End int
}

// Token is a lexical unit of the source.
type Token struct {
	// Kind is the kind of token.
	Kind TokenKind
	// Text is the source text of the token. For superscript tokens it is the
	// run of superscript glyphs; for tokens inside a superscript it is the
	// translated ASCII text.
	Text string
	// Span is the byte range of the token in the source.
	Span Span
	// Sup is the token sequence of a superscript token, without an end
	// marker. It is nil for all other kinds.
	Sup []Token
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Render() + "@" + strconv.Itoa(t.Span.Start)
}

// Render returns source text which lexes to a token of the same kind.
func (t Token) Render() string {
	switch t.Kind {
	case TokenEnd:
		return ""
	case TokenSuperscript:
		var b strings.Builder
		for _, s := range t.Sup {
			for _, r := range s.Render() {
				b.WriteRune(superscripts.up[r])
			}
		}
		return b.String()
	}
	return t.Text
}

// TokenKind is the kind of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenEnd marks the end of the input.
	TokenEnd
	// TokenInt and TokenReal are numeric literals, distinguished by whether
	// the literal contains a decimal point.
	TokenInt
	TokenReal
	// TokenIdent is a variable or function name.
	TokenIdent
	// TokenSuperscript is a run of superscript glyphs. Its Sup field holds
	// the lexed translation of the run.
	TokenSuperscript
	// TokenNewline separates statements. It is either a line feed or ;.
	TokenNewline

	TokenAssign  // =
	TokenPlus    // +
	TokenMinus   // -
	TokenStar    // * ∙ ×
	TokenSlash   // / ÷ ∕
	TokenPercent // %
	TokenCaret   // ^
	TokenBang    // !
	TokenDegree  // °
	TokenSqrt    // √
	TokenCbrt    // ∛
	TokenFort    // ∜
	TokenLParen  // (
	TokenRParen  // )
	TokenPipe    // |
	TokenLFloor  // ⌊
	TokenRFloor  // ⌋
	TokenLCeil   // ⌈
	TokenRCeil   // ⌉
	TokenLBrace  // {
	TokenRBrace  // }
	TokenComma   // ,
	TokenEq      // ==
	TokenNe      // != ≠
	TokenLt      // <
	TokenLe      // <= ≤
	TokenGt      // >
	TokenGe      // >= ≥

	TokenAnd   // and
	TokenOr    // or
	TokenNot   // not
	TokenIf    // if
	TokenElse  // else
	TokenWhile // while
)

var tokenNames = [...]string{
	tokenNone:        "None",
	TokenEnd:         "End",
	TokenInt:         "Int",
	TokenReal:        "Real",
	TokenIdent:       "Ident",
	TokenSuperscript: "Superscript",
	TokenNewline:     "Newline",
	TokenAssign:      "'='",
	TokenPlus:        "'+'",
	TokenMinus:       "'-'",
	TokenStar:        "'*'",
	TokenSlash:       "'/'",
	TokenPercent:     "'%'",
	TokenCaret:       "'^'",
	TokenBang:        "'!'",
	TokenDegree:      "'°'",
	TokenSqrt:        "'√'",
	TokenCbrt:        "'∛'",
	TokenFort:        "'∜'",
	TokenLParen:      "'('",
	TokenRParen:      "')'",
	TokenPipe:        "'|'",
	TokenLFloor:      "'⌊'",
	TokenRFloor:      "'⌋'",
	TokenLCeil:       "'⌈'",
	TokenRCeil:       "'⌉'",
	TokenLBrace:      "'{'",
	TokenRBrace:      "'}'",
	TokenComma:       "','",
	TokenEq:          "'=='",
	TokenNe:          "'!='",
	TokenLt:          "'<'",
	TokenLe:          "'<='",
	TokenGt:          "'>'",
	TokenGe:          "'>='",
	TokenAnd:         "'and'",
	TokenOr:          "'or'",
	TokenNot:         "'not'",
	TokenIf:          "'if'",
	TokenElse:        "'else'",
	TokenWhile:       "'while'",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// glyphs maps each single-rune operator or bracket to its token kind.
var glyphs = map[rune]TokenKind{
	'=': TokenAssign,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'∙': TokenStar,
	'×': TokenStar,
	'/': TokenSlash,
	'÷': TokenSlash,
	'∕': TokenSlash,
	'%': TokenPercent,
	'^': TokenCaret,
	'!': TokenBang,
	'°': TokenDegree,
	'√': TokenSqrt,
	'∛': TokenCbrt,
	'∜': TokenFort,
	'(': TokenLParen,
	')': TokenRParen,
	'|': TokenPipe,
	'⌊': TokenLFloor,
	'⌋': TokenRFloor,
	'⌈': TokenLCeil,
	'⌉': TokenRCeil,
	'{': TokenLBrace,
	'}': TokenRBrace,
	',': TokenComma,
	'<': TokenLt,
	'>': TokenGt,
	'≠': TokenNe,
	'≤': TokenLe,
	'≥': TokenGe,
	'\n': TokenNewline,
	';':  TokenNewline,
}

// digraphs are the kinds that become a different kind when followed by =.
var digraphs = map[TokenKind]TokenKind{
	TokenAssign: TokenEq,
	TokenBang:   TokenNe,
	TokenLt:     TokenLe,
	TokenGt:     TokenGe,
}

var keywords = map[string]TokenKind{
	"and":   TokenAnd,
	"or":    TokenOr,
	"not":   TokenNot,
	"if":    TokenIf,
	"else":  TokenElse,
	"while": TokenWhile,
}

// Superscript and Normalscript are the glyph translation table for
// superscripts. The rune at index k of Superscript translates to the rune at
// index k of Normalscript. Several capital letters have no superscript glyph
// of their own and share the lowercase one; those translate to lowercase.
const (
	Superscript  = "ᵃᵇᶜᵈᵉᶠᵍʰⁱʲᵏˡᵐⁿᵒᵖʳˢᵗᵘᵛʷˣʸᶻᴬᴮᶜᴰᴱᶠᴳᴴᴵᴶᴷᴸᴹᴺᴼᴾᴿˢᵀᵁⱽᵂˣʸᶻ⁰¹²³⁴⁵⁶⁷⁸⁹⁺⁻⁼⁽⁾"
	Normalscript = "abcdefghijklmnoprstuvwxyzABCDEFGHIJKLMNOPRSTUVWXYZ0123456789+-=()"
)

// superscripts is the bidirectional form of the translation table.
var superscripts = func() (t struct{ down, up map[rune]rune }) {
	sup, norm := []rune(Superscript), []rune(Normalscript)
	if len(sup) != len(norm) {
		panic("spectre: superscript table has " + strconv.Itoa(len(sup)) + " glyphs for " + strconv.Itoa(len(norm)) + " runes")
	}
	t.down = make(map[rune]rune, len(sup))
	t.up = make(map[rune]rune, len(norm))
	for k, r := range sup {
		if _, ok := t.down[r]; ok {
			// First translation wins.
			continue
		}
		t.down[r] = norm[k]
	}
	for r, n := range t.down {
		t.up[n] = r
	}
	return t
}()
