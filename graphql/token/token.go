// Package token defines constants representing the lexical tokens of the
// GraphQL Schema Definition Language and basic operations on tokens
// (printing, predicates).
package token

import "strconv"

// Token is the set of lexical tokens of the GraphQL SDL.
type Token int

// A list of tokens
const (
	// Special Tokens
	ERR Token = iota
	EOF

	litBeg
	IDENT  // TestType
	STRING // "abc" or """abc"""
	INT    // 123
	FLOAT  // 123.45
	BOOL   // true or false; classified by the parser, never scanned
	NULL   // null; classified by the parser, never scanned
	litEnd

	opBeg
	AND // &
	OR  // |
	NOT // !
	AT  // @
	VAR // $

	ASSIGN // =
	LPAREN // (
	RPAREN // )
	LBRACK // [
	RBRACK // ]

	LBRACE // {
	RBRACE // }
	COLON  // :
	opEnd

	keyBeg
	TYPE
	SCALAR
	ENUM
	INTERFACE
	IMPLEMENTS

	UNION
	INPUT
	DIRECTIVE
	ON
	keyEnd
)

var tokens = [...]string{
	ERR: "ERROR",
	EOF: "EOF",

	IDENT:  "IDENT",
	STRING: "STRING",
	INT:    "INT",
	FLOAT:  "FLOAT",
	BOOL:   "BOOL",
	NULL:   "NULL",

	AND: "&",
	OR:  "|",
	NOT: "!",
	AT:  "@",
	VAR: "$",

	ASSIGN: "=",
	LPAREN: "(",
	RPAREN: ")",
	LBRACK: "[",
	RBRACK: "]",

	LBRACE: "{",
	RBRACE: "}",
	COLON:  ":",

	TYPE:       "type",
	SCALAR:     "scalar",
	ENUM:       "enum",
	INTERFACE:  "interface",
	IMPLEMENTS: "implements",

	UNION:     "union",
	INPUT:     "input",
	DIRECTIVE: "directive",
	ON:        "on",
}

func (tok Token) String() string {
	s := ""
	if 0 <= tok && tok < Token(len(tokens)) {
		s = tokens[tok]
	}
	if s == "" {
		s = "token(" + strconv.Itoa(int(tok)) + ")"
	}
	return s
}

var keywords map[string]Token

func init() {
	keywords = make(map[string]Token)
	for i := keyBeg + 1; i < keyEnd; i++ {
		keywords[tokens[i]] = i
	}
}

// Lookup maps an identifier to its keyword token or IDENT.
// SDL keywords are not reserved; callers that expect a name
// must accept keyword tokens too.
func Lookup(ident string) Token {
	if tok, isKeyword := keywords[ident]; isKeyword {
		return tok
	}
	return IDENT
}

// Predicates

// IsLiteral returns true for tokens corresponding to identifiers
// and basic value literals; it returns false otherwise.
//
func (tok Token) IsLiteral() bool { return litBeg < tok && tok < litEnd }

// IsOperator returns true for tokens corresponding to operators and
// delimiters; it returns false otherwise.
//
func (tok Token) IsOperator() bool { return opBeg < tok && tok < opEnd }

// IsKeyword returns true for tokens corresponding to keywords;
// it returns false otherwise.
//
func (tok Token) IsKeyword() bool { return keyBeg < tok && tok < keyEnd }
