// Package lexer implements a scanner for single GraphQL SDL declarations.
//
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gqldoc/gqldoc/graphql/token"
)

// Item represents a lexed token.
type Item struct {
	Typ  token.Token
	Pos  token.Pos
	Val  string
	Line int
}

func (i Item) String() string {
	switch {
	case i.Typ == token.EOF:
		return "EOF"
	case i.Typ == token.ERR:
		return i.Val
	case i.Typ.IsKeyword():
		return fmt.Sprintf("<%s>", i.Val)
	case len(i.Val) > 10:
		return fmt.Sprintf("%.10q...", i.Val)
	}
	return fmt.Sprintf("%q", i.Val)
}

// Interface defines the simplest API any consumer of a lexer could need.
type Interface interface {
	// NextItem returns the next lexed Item
	NextItem() Item

	// Drain drains the remaining items. Used only by parser if error occurs.
	Drain()
}

// stateFn represents the state of the scanner as a function that returns the next state.
type stateFn func(*lxr) stateFn

type lxr struct {
	// immutable state
	src []byte

	// scanning state
	pos   int
	start int
	width int
	line  int
	items chan Item
}

// Lex scans the given declaration text. Declarations are scanned one at
// a time; the item stream always ends with an EOF or ERR item.
func Lex(src []byte) Interface {
	l := &lxr{
		src:   src,
		items: make(chan Item),
		line:  1,
	}

	go l.run()
	return l
}

const bom = 0xFEFF

// run runs the state machine for the lexer.
func (l *lxr) run() {
	r := l.next()
	if r == bom {
		l.ignore()
	} else {
		l.backup()
	}

	for state := lexDecl; state != nil; {
		state = state(l)
	}
	close(l.items)
}

const eof = -1

// next returns the next rune in the src.
func (l *lxr) next() rune {
	if int(l.pos) >= len(l.src) {
		l.width = 0
		return eof
	}

	r, w := utf8.DecodeRune(l.src[l.pos:])
	l.width = w
	l.pos += l.width
	if r == '\n' {
		l.line++
	}
	return r
}

// peek returns but does not consume the next rune in the src.
func (l *lxr) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// backup steps back one rune. Can only be called once per call of next.
func (l *lxr) backup() {
	l.pos -= l.width
	// Correct newline count.
	if l.width == 1 && l.src[l.pos] == '\n' {
		l.line--
	}
}

// emit passes an item back to the client.
func (l *lxr) emit(t token.Token) {
	l.items <- Item{t, token.Pos(l.start + 1), string(l.src[l.start:l.pos]), l.line}
	l.start = l.pos
}

// ignore skips over the pending src before this point.
func (l *lxr) ignore() {
	l.start = l.pos
}

// accept consumes the next rune if it's from the valid set.
func (l *lxr) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

// acceptRun consumes a run of runes from the valid set.
func (l *lxr) acceptRun(valid string) {
	for strings.ContainsRune(valid, l.next()) {
	}
	l.backup()
}

// errorf returns an error token and terminates the scan by passing
// back a nil pointer that will be the next state, terminating l.run.
func (l *lxr) errorf(format string, args ...interface{}) stateFn {
	l.items <- Item{token.ERR, token.Pos(l.start + 1), fmt.Sprintf(format, args...), l.line}
	return nil
}

// ignoreSpace consumes all whitespace.
func (l *lxr) ignoreSpace() {
	l.acceptRun(spaceChars)
	l.ignore()
}

// ignoreComment discards a comment through the end of the line.
func (l *lxr) ignoreComment() {
	for r := l.next(); !isEndOfLine(r) && r != eof; r = l.next() {
	}
	l.backup()
	l.ignore()
}

// NextItem returns the next item from the src.
// Called by the parser, not in the lexing goroutine.
func (l *lxr) NextItem() Item {
	return <-l.items
}

// Drain drains the output so the lexing goroutine will exit.
// Called by the parser, not in the lexing goroutine.
func (l *lxr) Drain() {
	for range l.items {
	}
}

const spaceChars = " \t\r\n"

const digits = "0123456789"

var operators = map[rune]token.Token{
	'&': token.AND,
	'|': token.OR,
	'!': token.NOT,
	'@': token.AT,
	'$': token.VAR,
	'=': token.ASSIGN,
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACK,
	']': token.RBRACK,
	'{': token.LBRACE,
	'}': token.RBRACE,
	':': token.COLON,
}

// lexDecl scans the tokens of a single declaration. The grammar itself
// lives in the parser; commas and comments are insignificant, per the
// SDL ignored-token rules, and never reach it.
func lexDecl(l *lxr) stateFn {
	switch r := l.next(); {
	case r == eof:
		l.emit(token.EOF)
		return nil
	case isSpace(r):
		l.ignoreSpace()
	case r == ',':
		l.ignore()
	case r == '#':
		l.ignoreComment()
	case r == '"':
		l.backup()
		if !l.scanString() {
			return l.errorf("bad string syntax: %q", l.src[l.start:l.pos])
		}
		l.emit(token.STRING)
	case r == '-' || unicode.IsDigit(r):
		l.backup()
		num := l.scanNumber()
		if num == token.ERR {
			return l.errorf("bad number syntax: %q", l.src[l.start:l.pos])
		}
		l.emit(num)
	case isAlphaNumeric(r):
		l.backup()
		l.emit(l.scanIdentifier())
	default:
		op, ok := operators[r]
		if !ok {
			return l.errorf("unexpected character in declaration: %#U", r)
		}
		l.emit(op)
	}
	return lexDecl
}

// scanString scans both a block string, `"""`, and a normal string, `"`.
// The opening quote has not been consumed yet.
func (l *lxr) scanString() bool {
	l.acceptRun(`"`)
	quotes := l.pos - l.start
	switch quotes {
	case 2, 6: // empty string
		return true
	case 1, 3:
	default:
		return false
	}

	for {
		switch r := l.next(); {
		case r == eof:
			return false
		case r == '\n' && quotes == 1:
			return false
		case r == '\\':
			l.next()
		case r == '"':
			if quotes == 1 {
				return true
			}
			if l.accept(`"`) && l.accept(`"`) {
				return true
			}
		}
	}
}

// scanNumber scans both an int and a float as defined by the GraphQL spec.
func (l *lxr) scanNumber() token.Token {
	l.accept("-")
	p := l.pos
	l.acceptRun(digits)
	if l.pos == p {
		return token.ERR
	}

	tok := token.INT
	if l.accept(".") {
		tok = token.FLOAT
		p := l.pos
		l.acceptRun(digits)
		if l.pos == p {
			return token.ERR
		}
	}
	if l.accept("eE") {
		tok = token.FLOAT
		l.accept("+-")
		p := l.pos
		l.acceptRun(digits)
		if l.pos == p {
			return token.ERR
		}
	}

	if !l.atTerminator() {
		return token.ERR
	}
	return tok
}

// scanIdentifier scans an identifier and returns its token.
func (l *lxr) scanIdentifier() token.Token {
	for r := l.next(); isAlphaNumeric(r); {
		r = l.next()
	}
	l.backup()

	return token.Lookup(string(l.src[l.start:l.pos]))
}

func (l *lxr) atTerminator() bool {
	r := l.peek()
	return r == eof || !isAlphaNumeric(r)
}

// isAlphaNumeric reports whether r is an alphabetic, digit, or underscore.
func isAlphaNumeric(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isEndOfLine(r rune) bool {
	return r == '\r' || r == '\n'
}
