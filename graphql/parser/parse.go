// Package parser implements a parser for single GraphQL SDL declarations.
//
// Documentation sources quote one declaration at a time, so each entry
// point parses exactly one production and requires the token stream to
// end cleanly afterwards. Leftover tokens are a syntax error.
package parser

import (
	"fmt"
	"runtime"

	"github.com/gqldoc/gqldoc/graphql/ast"
	"github.com/gqldoc/gqldoc/graphql/lexer"
	"github.com/gqldoc/gqldoc/graphql/token"
)

// Error records a syntax problem and where it was found.
type Error struct {
	Doc  string // name of the document the declaration came from; may be empty
	Line int    // line within the declaration text, starting at 1
	Msg  string
}

func (e *Error) Error() string {
	if e.Doc == "" {
		return fmt.Sprintf("graphql: %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("graphql: %s:%d: %s", e.Doc, e.Line, e.Msg)
}

// ParseDecl parses a single keyword-led top-level declaration: directive,
// enum, input, interface, scalar, type, or union. The doc name is only
// used to report errors.
func ParseDecl(doc string, src []byte) (decl ast.Decl, err error) {
	p := newParser(doc, src)
	defer p.recover(&err)

	i := p.next()
	switch i.Typ {
	case token.DIRECTIVE:
		decl = p.parseDirectiveDecl(i)
	case token.ENUM:
		decl = p.parseEnumDecl(i)
	case token.INPUT:
		decl = p.parseInputDecl(i)
	case token.INTERFACE:
		decl = p.parseInterfaceDecl(i)
	case token.SCALAR:
		decl = p.parseScalarDecl(i)
	case token.TYPE:
		decl = p.parseObjectDecl(i)
	case token.UNION:
		decl = p.parseUnionDecl(i)
	default:
		p.unexpected(i, "declaration")
	}
	p.eof()
	return decl, nil
}

// ParseFieldDef parses a single object or interface field definition,
// e.g. "episodes(season: Int): [Episode!]!".
func ParseFieldDef(doc string, src []byte) (f *ast.FieldDef, err error) {
	p := newParser(doc, src)
	defer p.recover(&err)

	f = p.parseFieldDef()
	p.eof()
	return f, nil
}

// ParseInputValueDef parses a single input object field definition,
// e.g. "episode: Episode = NEWHOPE".
func ParseInputValueDef(doc string, src []byte) (v *ast.InputValueDef, err error) {
	p := newParser(doc, src)
	defer p.recover(&err)

	v = p.parseInputValueDef("input value definition")
	p.eof()
	return v, nil
}

// ParseEnumValueDef parses a single enum value definition,
// e.g. "NEWHOPE @deprecated".
func ParseEnumValueDef(doc string, src []byte) (v *ast.EnumValueDef, err error) {
	p := newParser(doc, src)
	defer p.recover(&err)

	v = p.parseEnumValueDef()
	p.eof()
	return v, nil
}

type parser struct {
	l      lexer.Interface
	doc    string
	line   int
	pk     lexer.Item
	peeked bool
}

func newParser(doc string, src []byte) *parser {
	return &parser{l: lexer.Lex(src), doc: doc, line: 1}
}

// next returns the next token, terminating processing on a lex error.
func (p *parser) next() lexer.Item {
	if p.peeked {
		p.peeked = false
		return p.pk
	}
	i := p.l.NextItem()
	p.line = i.Line
	if i.Typ == token.ERR {
		p.errorf("%s", i.Val)
	}
	return i
}

// peek returns the next token without consuming it.
func (p *parser) peek() lexer.Item {
	if !p.peeked {
		p.pk = p.next()
		p.peeked = true
	}
	return p.pk
}

// expect consumes the next token and guarantees it has the required type.
func (p *parser) expect(tok token.Token, context string) lexer.Item {
	i := p.next()
	if i.Typ != tok {
		p.unexpected(i, context)
	}
	return i
}

// name consumes the next token as a name. SDL keywords are not reserved,
// so keyword tokens are accepted wherever a name is expected.
func (p *parser) name(context string) *ast.Ident {
	i := p.next()
	if i.Typ != token.IDENT && !i.Typ.IsKeyword() {
		p.unexpected(i, context)
	}
	return &ast.Ident{NamePos: i.Pos, Name: i.Val}
}

// eof requires the declaration to end cleanly with no leftover tokens.
func (p *parser) eof() {
	if i := p.next(); i.Typ != token.EOF {
		p.errorf("unexpected %s after declaration", i)
	}
}

// errorf formats the error and terminates processing.
func (p *parser) errorf(format string, args ...interface{}) {
	panic(&Error{Doc: p.doc, Line: p.line, Msg: fmt.Sprintf(format, args...)})
}

// unexpected complains about the token and terminates processing.
func (p *parser) unexpected(i lexer.Item, context string) {
	p.errorf("unexpected %s in %s", i, context)
}

// recover is the handler that turns panics into returns from the entry points.
func (p *parser) recover(errp *error) {
	e := recover()
	if e == nil {
		return
	}
	if _, ok := e.(runtime.Error); ok {
		panic(e)
	}
	if p.l != nil {
		p.l.Drain()
		p.l = nil
	}
	*errp = e.(*Error)
}

func (p *parser) parseScalarDecl(kw lexer.Item) *ast.ScalarDecl {
	return &ast.ScalarDecl{
		Scalar:     kw.Pos,
		Name:       p.name("scalar declaration"),
		Directives: p.parseDirectives(),
	}
}

func (p *parser) parseObjectDecl(kw lexer.Item) *ast.ObjectDecl {
	d := &ast.ObjectDecl{Type: kw.Pos, Name: p.name("type declaration")}
	if p.peek().Typ == token.IMPLEMENTS {
		d.Implements = p.next().Pos
		d.Interfaces = p.parseInterfaceRefs()
	}
	d.Directives = p.parseDirectives()
	return d
}

func (p *parser) parseInterfaceDecl(kw lexer.Item) *ast.InterfaceDecl {
	d := &ast.InterfaceDecl{Interface: kw.Pos, Name: p.name("interface declaration")}
	if p.peek().Typ == token.IMPLEMENTS {
		d.Implements = p.next().Pos
		d.Interfaces = p.parseInterfaceRefs()
	}
	d.Directives = p.parseDirectives()
	return d
}

// parseInterfaceRefs parses one or more interface names joined by "&".
// The SDL grammar allows an optional leading "&".
func (p *parser) parseInterfaceRefs() []*ast.Ident {
	if p.peek().Typ == token.AND {
		p.next()
	}
	ifaces := []*ast.Ident{p.name("implements clause")}
	for p.peek().Typ == token.AND {
		p.next()
		ifaces = append(ifaces, p.name("implements clause"))
	}
	return ifaces
}

func (p *parser) parseUnionDecl(kw lexer.Item) *ast.UnionDecl {
	d := &ast.UnionDecl{Union: kw.Pos, Name: p.name("union declaration")}
	d.Directives = p.parseDirectives()
	if p.peek().Typ != token.ASSIGN {
		return d
	}
	d.Assign = p.next().Pos
	if p.peek().Typ == token.OR { // optional leading "|" per the SDL grammar
		p.next()
	}
	d.Members = []*ast.Ident{p.name("union member")}
	for p.peek().Typ == token.OR {
		p.next()
		d.Members = append(d.Members, p.name("union member"))
	}
	return d
}

func (p *parser) parseEnumDecl(kw lexer.Item) *ast.EnumDecl {
	return &ast.EnumDecl{
		Enum:       kw.Pos,
		Name:       p.name("enum declaration"),
		Directives: p.parseDirectives(),
	}
}

func (p *parser) parseInputDecl(kw lexer.Item) *ast.InputDecl {
	return &ast.InputDecl{
		Input:      kw.Pos,
		Name:       p.name("input declaration"),
		Directives: p.parseDirectives(),
	}
}

func (p *parser) parseDirectiveDecl(kw lexer.Item) *ast.DirectiveDecl {
	d := &ast.DirectiveDecl{DirectivePos: kw.Pos}
	d.At = p.expect(token.AT, "directive declaration").Pos
	d.Name = p.name("directive declaration")
	if p.peek().Typ == token.LPAREN {
		d.Lparen = p.next().Pos
		d.Args = p.parseArgDefs("directive argument")
		d.Rparen = p.expect(token.RPAREN, "directive arguments").Pos
	}
	d.On = p.expect(token.ON, "directive declaration").Pos
	if p.peek().Typ == token.OR { // optional leading "|" per the SDL grammar
		p.next()
	}
	d.Locations = []*ast.Ident{p.parseLocation()}
	for p.peek().Typ == token.OR {
		p.next()
		d.Locations = append(d.Locations, p.parseLocation())
	}
	return d
}

// directiveLocations enumerates the names valid in a directive location list.
var directiveLocations = map[string]bool{
	"QUERY":                  true,
	"MUTATION":               true,
	"SUBSCRIPTION":           true,
	"FIELD":                  true,
	"FRAGMENT_DEFINITION":    true,
	"FRAGMENT_SPREAD":        true,
	"INLINE_FRAGMENT":        true,
	"VARIABLE_DEFINITION":    true,
	"SCHEMA":                 true,
	"SCALAR":                 true,
	"OBJECT":                 true,
	"FIELD_DEFINITION":       true,
	"ARGUMENT_DEFINITION":    true,
	"INTERFACE":              true,
	"UNION":                  true,
	"ENUM":                   true,
	"ENUM_VALUE":             true,
	"INPUT_OBJECT":           true,
	"INPUT_FIELD_DEFINITION": true,
}

func (p *parser) parseLocation() *ast.Ident {
	n := p.name("directive location")
	if !directiveLocations[n.Name] {
		p.errorf("invalid directive location: %s", n.Name)
	}
	return n
}

func (p *parser) parseFieldDef() *ast.FieldDef {
	f := &ast.FieldDef{Name: p.name("field definition")}
	if p.peek().Typ == token.LPAREN {
		f.Lparen = p.next().Pos
		f.Args = p.parseArgDefs("field argument")
		f.Rparen = p.expect(token.RPAREN, "field arguments").Pos
	}
	p.expect(token.COLON, "field definition")
	f.Type = p.parseType()
	f.Directives = p.parseDirectives()
	return f
}

// parseArgDefs parses input value definitions up to, but not including,
// the closing parenthesis.
func (p *parser) parseArgDefs(context string) (args []*ast.InputValueDef) {
	for p.peek().Typ != token.RPAREN {
		args = append(args, p.parseInputValueDef(context))
	}
	return
}

func (p *parser) parseInputValueDef(context string) *ast.InputValueDef {
	v := &ast.InputValueDef{Name: p.name(context)}
	p.expect(token.COLON, context)
	v.Type = p.parseType()
	if p.peek().Typ == token.ASSIGN {
		p.next()
		v.Default = p.parseValue()
	}
	v.Directives = p.parseDirectives()
	return v
}

func (p *parser) parseEnumValueDef() *ast.EnumValueDef {
	n := p.name("enum value definition")
	switch n.Name {
	case "true", "false", "null":
		p.errorf("%s is not a valid enum value name", n.Name)
	}
	return &ast.EnumValueDef{Name: n, Directives: p.parseDirectives()}
}

// parseDirectives parses zero or more applied directives.
func (p *parser) parseDirectives() (dirs []*ast.Directive) {
	for p.peek().Typ == token.AT {
		at := p.next()
		d := &ast.Directive{At: at.Pos, Name: p.name("directive")}
		if p.peek().Typ == token.LPAREN {
			d.Lparen = p.next().Pos
			for p.peek().Typ != token.RPAREN {
				a := &ast.Arg{Name: p.name("directive argument")}
				p.expect(token.COLON, "directive argument")
				a.Value = p.parseValue()
				d.Args = append(d.Args, a)
			}
			d.Rparen = p.next().Pos
		}
		dirs = append(dirs, d)
	}
	return
}

func (p *parser) parseType() ast.Expr {
	var typ ast.Expr
	i := p.next()
	switch {
	case i.Typ == token.LBRACK:
		l := &ast.ListType{Lbrack: i.Pos, Elt: p.parseType()}
		l.Rbrack = p.expect(token.RBRACK, "list type").Pos
		typ = l
	case i.Typ == token.IDENT || i.Typ.IsKeyword():
		typ = &ast.Ident{NamePos: i.Pos, Name: i.Val}
	default:
		p.unexpected(i, "type reference")
	}
	if p.peek().Typ == token.NOT {
		typ = &ast.NonNullType{Type: typ, Bang: p.next().Pos}
	}
	return typ
}

func (p *parser) parseValue() ast.Expr {
	i := p.next()
	switch i.Typ {
	case token.INT, token.FLOAT, token.STRING:
		return &ast.BasicLit{ValuePos: i.Pos, Kind: i.Typ, Value: i.Val}
	case token.IDENT:
		switch i.Val {
		case "true", "false":
			return &ast.BasicLit{ValuePos: i.Pos, Kind: token.BOOL, Value: i.Val}
		case "null":
			return &ast.BasicLit{ValuePos: i.Pos, Kind: token.NULL, Value: i.Val}
		}
		return &ast.BasicLit{ValuePos: i.Pos, Kind: token.IDENT, Value: i.Val}
	case token.VAR:
		return &ast.Variable{Dollar: i.Pos, Name: p.name("variable")}
	case token.LBRACK:
		l := &ast.ListLit{Lbrack: i.Pos}
		for p.peek().Typ != token.RBRACK {
			l.Elts = append(l.Elts, p.parseValue())
		}
		l.Rbrack = p.next().Pos
		return l
	case token.LBRACE:
		o := &ast.ObjLit{Lbrace: i.Pos}
		for p.peek().Typ != token.RBRACE {
			f := &ast.ObjField{Name: p.name("object field")}
			p.expect(token.COLON, "object field")
			f.Value = p.parseValue()
			o.Fields = append(o.Fields, f)
		}
		o.Rbrace = p.next().Pos
		return o
	default:
		if i.Typ.IsKeyword() { // enum values may collide with SDL keywords
			return &ast.BasicLit{ValuePos: i.Pos, Kind: token.IDENT, Value: i.Val}
		}
		p.unexpected(i, "value")
	}
	return nil
}
