package spectre

import (
	"errors"
	"strconv"
	"strings"
)

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError, including errors from evaluation.
type InputError interface {
	error
	// Pos returns the byte offset of the start of the construct that caused
	// the error.
	Pos() int
	// Range returns the byte range from the start of the construct to the
	// point where the error was detected.
	Range() Span
	// Message returns a short summary of the error, without position.
	Message() string
	// Reason returns a description of what was wrong at Range.
	Reason() string
}

// Diagnostic is the structured form of an InputError, suitable for rendering
// labelled spans against the source.
type Diagnostic struct {
	Message string
	Reason  string
	Span    Span
}

// Diagnose extracts the diagnostic record from an error. The second result is
// false if err does not wrap an InputError.
func Diagnose(err error) (Diagnostic, bool) {
	var ie InputError
	if !errors.As(err, &ie) {
		return Diagnostic{}, false
	}
	return Diagnostic{Message: ie.Message(), Reason: ie.Reason(), Span: ie.Range()}, true
}

// LexError indicates a character that does not begin any token.
type LexError struct {
	// Char is the invalid character.
	Char rune
	// Span is the byte range of the character.
	Span Span
}

func (err *LexError) Error() string {
	return errpos(err.Span.Start, err.Message()+": "+err.Reason())
}

func (err *LexError) Pos() int        { return err.Span.Start }
func (err *LexError) Range() Span     { return err.Span }
func (err *LexError) Message() string { return "invalid character" }

func (err *LexError) Reason() string {
	return strconv.QuoteRune(err.Char) + " is not a valid character"
}

// TokenError is an error indicating a token that cannot appear where it was
// found.
type TokenError struct {
	// Span runs from the start of the construct being parsed to the end of
	// the unexpected token.
	Span Span
	// Got is the unexpected token.
	Got Token
	// Want lists descriptions of the tokens that would have been accepted.
	Want []string
}

func (err *TokenError) Error() string {
	return errpos(err.Span.Start, err.Message()+": "+err.Reason())
}

func (err *TokenError) Pos() int    { return err.Span.Start }
func (err *TokenError) Range() Span { return err.Span }

func (err *TokenError) Message() string {
	if err.Got.Kind == TokenEnd {
		return "unexpected end of input"
	}
	return "unexpected token " + err.Got.Kind.String()
}

func (err *TokenError) Reason() string {
	return "expected " + orlist(err.Want)
}

// BracketError is an error indicating an opening bracket without its closing
// bracket.
type BracketError struct {
	// Span runs from the opening bracket to the token found in place of the
	// closing bracket.
	Span Span
	// Left is the opening bracket.
	Left string
	// Right lists the closing brackets that would have been accepted.
	Right []string
	// Got is the token found instead of a closing bracket.
	Got Token
}

func (err *BracketError) Error() string {
	return errpos(err.Span.Start, err.Message()+": "+err.Reason())
}

func (err *BracketError) Pos() int    { return err.Span.Start }
func (err *BracketError) Range() Span { return err.Span }

func (err *BracketError) Message() string {
	return "unbalanced bracket " + strconv.Quote(err.Left)
}

func (err *BracketError) Reason() string {
	want := make([]string, len(err.Right))
	for i, r := range err.Right {
		want[i] = strconv.Quote(r)
	}
	if err.Got.Kind == TokenEnd {
		return "expected " + orlist(want) + " before end of input"
	}
	return "expected " + orlist(want) + ", found " + err.Got.Kind.String()
}

// ParamError is an error indicating a function definition whose parameter
// list is not a list of distinct names.
type ParamError struct {
	// Span is the range of the offending parameter.
	Span Span
	// Func is the name of the function being defined.
	Func string
	// Dup is the repeated name, if the error is a duplicated parameter.
	Dup string
}

func (err *ParamError) Error() string {
	return errpos(err.Span.Start, err.Message()+": "+err.Reason())
}

func (err *ParamError) Pos() int    { return err.Span.Start }
func (err *ParamError) Range() Span { return err.Span }

func (err *ParamError) Message() string {
	return "malformed parameter list for " + err.Func
}

func (err *ParamError) Reason() string {
	if err.Dup != "" {
		return "parameter " + strconv.Quote(err.Dup) + " appears more than once"
	}
	return "parameters must be names"
}

// NumberError is an error indicating a numeric literal that does not denote
// a number, e.g. one with two decimal points or an integer too large for
// 32 bits.
type NumberError struct {
	// Span is the range of the literal.
	Span Span
	// Text is the literal.
	Text string
	// Err is the conversion error.
	Err error
}

func (err *NumberError) Error() string {
	return errpos(err.Span.Start, err.Message()+": "+err.Reason())
}

func (err *NumberError) Pos() int        { return err.Span.Start }
func (err *NumberError) Range() Span     { return err.Span }
func (err *NumberError) Message() string { return "invalid number" }
func (err *NumberError) Unwrap() error   { return err.Err }

func (err *NumberError) Reason() string {
	if errors.Is(err.Err, strconv.ErrRange) {
		return strconv.Quote(err.Text) + " is out of range"
	}
	return strconv.Quote(err.Text) + " is not a number"
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// orlist joins alternatives as "a, b, or c".
func orlist(s []string) string {
	switch len(s) {
	case 0:
		return "nothing"
	case 1:
		return s[0]
	case 2:
		return s[0] + " or " + s[1]
	}
	return strings.Join(s[:len(s)-1], ", ") + ", or " + s[len(s)-1]
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*ParamError)(nil)
	_ InputError = (*NumberError)(nil)
	_ InputError = (*EvalError)(nil)
)
