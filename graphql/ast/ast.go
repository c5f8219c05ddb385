// Package ast declares the types used to represent declarations of the
// GraphQL Schema Definition Language.
//
// Documentation sources quote one declaration at a time, so there is no
// document node. Each parse produces a single Decl.
package ast

import "github.com/gqldoc/gqldoc/graphql/token"

// All node types implement the Node interface.
type Node interface {
	Pos() token.Pos // position of first character belonging to the node
	End() token.Pos // position of first character immediately after the node
}

// All expression nodes implement the Expr interface.
// Expressions cover type references and constant values.
type Expr interface {
	Node
	exprNode()
}

// All declaration nodes implement the Decl interface.
type Decl interface {
	Node
	declNode()
}

// An Ident node represents a name.
type Ident struct {
	NamePos token.Pos // name position
	Name    string    // name literal
}

// A NonNullType node represents a type reference followed by "!".
type NonNullType struct {
	Type Expr      // inner type
	Bang token.Pos // position of "!"
}

// A ListType node represents a type reference wrapped in "[" and "]".
type ListType struct {
	Lbrack token.Pos // position of "["
	Elt    Expr      // element type
	Rbrack token.Pos // position of "]"
}

// A BasicLit node represents a literal of basic type. Kind reports which
// one: token.INT, token.FLOAT, token.STRING, token.BOOL, token.NULL, or
// token.IDENT for enum values.
type BasicLit struct {
	ValuePos token.Pos   // literal position
	Kind     token.Token // literal kind
	Value    string      // literal text, e.g. 42, 1.5e3, "foo", true, null, NORTH
}

// A Variable node represents a "$"-prefixed variable reference.
type Variable struct {
	Dollar token.Pos // position of "$"
	Name   *Ident    // variable name
}

// A ListLit node represents a bracketed list of values.
type ListLit struct {
	Lbrack token.Pos // position of "["
	Elts   []Expr    // list elements; or nil
	Rbrack token.Pos // position of "]"
}

// An ObjLit node represents a braced list of name-value pairs.
type ObjLit struct {
	Lbrace token.Pos // position of "{"
	Fields []*ObjField
	Rbrace token.Pos // position of "}"
}

// An ObjField node represents one name-value pair of an object literal.
type ObjField struct {
	Name  *Ident
	Value Expr
}

// An Arg node represents one name-value argument of an applied directive.
type Arg struct {
	Name  *Ident
	Value Expr
}

// A Directive node represents a directive applied to a declaration,
// e.g. @deprecated(reason: "Use two.").
type Directive struct {
	At     token.Pos // position of "@"
	Name   *Ident    // directive name, without "@"
	Lparen token.Pos // position of "(", if any
	Args   []*Arg    // arguments; or nil
	Rparen token.Pos // position of ")", if any
}

// An InputValueDef node represents an argument definition or an input
// object field definition.
type InputValueDef struct {
	Name       *Ident       // value name
	Type       Expr         // *Ident, *ListType, or *NonNullType
	Default    Expr         // default value; or nil
	Directives []*Directive // applied directives; or nil
}

// A FieldDef node represents an object or interface field definition.
type FieldDef struct {
	Name       *Ident           // field name
	Lparen     token.Pos        // position of "(", if any
	Args       []*InputValueDef // field arguments; or nil
	Rparen     token.Pos        // position of ")", if any
	Type       Expr             // field type
	Directives []*Directive     // applied directives; or nil
}

// An EnumValueDef node represents a single value of an enum type.
type EnumValueDef struct {
	Name       *Ident       // value name
	Directives []*Directive // applied directives; or nil
}

// A DirectiveDecl node represents a directive definition.
type DirectiveDecl struct {
	DirectivePos token.Pos        // position of the "directive" keyword
	At           token.Pos        // position of "@"
	Name         *Ident           // directive name, without "@"
	Lparen       token.Pos        // position of "(", if any
	Args         []*InputValueDef // directive arguments; or nil
	Rparen       token.Pos        // position of ")", if any
	On           token.Pos        // position of the "on" keyword
	Locations    []*Ident         // valid locations; always at least one
}

// A ScalarDecl node represents a scalar type definition.
type ScalarDecl struct {
	Scalar     token.Pos    // position of the "scalar" keyword
	Name       *Ident       // type name
	Directives []*Directive // applied directives; or nil
}

// An ObjectDecl node represents an object type definition header.
// Field definitions are separate declarations, never part of the header.
type ObjectDecl struct {
	Type       token.Pos    // position of the "type" keyword
	Name       *Ident       // type name
	Implements token.Pos    // position of the "implements" keyword, if any
	Interfaces []*Ident     // implemented interfaces; or nil
	Directives []*Directive // applied directives; or nil
}

// An InterfaceDecl node represents an interface type definition header.
type InterfaceDecl struct {
	Interface  token.Pos    // position of the "interface" keyword
	Name       *Ident       // type name
	Implements token.Pos    // position of the "implements" keyword, if any
	Interfaces []*Ident     // implemented interfaces; or nil
	Directives []*Directive // applied directives; or nil
}

// A UnionDecl node represents a union type definition.
type UnionDecl struct {
	Union      token.Pos    // position of the "union" keyword
	Name       *Ident       // type name
	Directives []*Directive // applied directives; or nil
	Assign     token.Pos    // position of "=", if any
	Members    []*Ident     // member types; or nil
}

// An EnumDecl node represents an enum type definition header.
type EnumDecl struct {
	Enum       token.Pos    // position of the "enum" keyword
	Name       *Ident       // type name
	Directives []*Directive // applied directives; or nil
}

// An InputDecl node represents an input object type definition header.
type InputDecl struct {
	Input      token.Pos    // position of the "input" keyword
	Name       *Ident       // type name
	Directives []*Directive // applied directives; or nil
}

// Pos implementations for all nodes.

func (x *Ident) Pos() token.Pos       { return x.NamePos }
func (x *NonNullType) Pos() token.Pos { return x.Type.Pos() }
func (x *ListType) Pos() token.Pos    { return x.Lbrack }
func (x *BasicLit) Pos() token.Pos    { return x.ValuePos }
func (x *Variable) Pos() token.Pos    { return x.Dollar }
func (x *ListLit) Pos() token.Pos     { return x.Lbrack }
func (x *ObjLit) Pos() token.Pos      { return x.Lbrace }
func (x *ObjField) Pos() token.Pos    { return x.Name.Pos() }
func (x *Arg) Pos() token.Pos         { return x.Name.Pos() }
func (x *Directive) Pos() token.Pos   { return x.At }

func (x *InputValueDef) Pos() token.Pos { return x.Name.Pos() }
func (x *FieldDef) Pos() token.Pos      { return x.Name.Pos() }
func (x *EnumValueDef) Pos() token.Pos  { return x.Name.Pos() }
func (x *DirectiveDecl) Pos() token.Pos { return x.DirectivePos }
func (x *ScalarDecl) Pos() token.Pos    { return x.Scalar }
func (x *ObjectDecl) Pos() token.Pos    { return x.Type }
func (x *InterfaceDecl) Pos() token.Pos { return x.Interface }
func (x *UnionDecl) Pos() token.Pos     { return x.Union }
func (x *EnumDecl) Pos() token.Pos      { return x.Enum }
func (x *InputDecl) Pos() token.Pos     { return x.Input }

// End implementations for all nodes.

func (x *Ident) End() token.Pos       { return x.NamePos + token.Pos(len(x.Name)) }
func (x *NonNullType) End() token.Pos { return x.Bang + 1 }
func (x *ListType) End() token.Pos    { return x.Rbrack + 1 }
func (x *BasicLit) End() token.Pos    { return x.ValuePos + token.Pos(len(x.Value)) }
func (x *Variable) End() token.Pos    { return x.Name.End() }
func (x *ListLit) End() token.Pos     { return x.Rbrack + 1 }
func (x *ObjLit) End() token.Pos      { return x.Rbrace + 1 }
func (x *ObjField) End() token.Pos    { return x.Value.End() }
func (x *Arg) End() token.Pos         { return x.Value.End() }

func (x *Directive) End() token.Pos {
	if x.Rparen.IsValid() {
		return x.Rparen + 1
	}
	return x.Name.End()
}

func (x *InputValueDef) End() token.Pos {
	if n := len(x.Directives); n > 0 {
		return x.Directives[n-1].End()
	}
	if x.Default != nil {
		return x.Default.End()
	}
	return x.Type.End()
}

func (x *FieldDef) End() token.Pos {
	if n := len(x.Directives); n > 0 {
		return x.Directives[n-1].End()
	}
	return x.Type.End()
}

func (x *EnumValueDef) End() token.Pos {
	if n := len(x.Directives); n > 0 {
		return x.Directives[n-1].End()
	}
	return x.Name.End()
}

func (x *DirectiveDecl) End() token.Pos {
	if n := len(x.Locations); n > 0 {
		return x.Locations[n-1].End()
	}
	return x.On + 2
}

func (x *ScalarDecl) End() token.Pos {
	if n := len(x.Directives); n > 0 {
		return x.Directives[n-1].End()
	}
	return x.Name.End()
}

func (x *ObjectDecl) End() token.Pos {
	if n := len(x.Directives); n > 0 {
		return x.Directives[n-1].End()
	}
	if n := len(x.Interfaces); n > 0 {
		return x.Interfaces[n-1].End()
	}
	return x.Name.End()
}

func (x *InterfaceDecl) End() token.Pos {
	if n := len(x.Directives); n > 0 {
		return x.Directives[n-1].End()
	}
	if n := len(x.Interfaces); n > 0 {
		return x.Interfaces[n-1].End()
	}
	return x.Name.End()
}

func (x *UnionDecl) End() token.Pos {
	if n := len(x.Members); n > 0 {
		return x.Members[n-1].End()
	}
	if n := len(x.Directives); n > 0 {
		return x.Directives[n-1].End()
	}
	return x.Name.End()
}

func (x *EnumDecl) End() token.Pos {
	if n := len(x.Directives); n > 0 {
		return x.Directives[n-1].End()
	}
	return x.Name.End()
}

func (x *InputDecl) End() token.Pos {
	if n := len(x.Directives); n > 0 {
		return x.Directives[n-1].End()
	}
	return x.Name.End()
}

// exprNode ensures that only expression nodes can be assigned to an Expr.

func (*Ident) exprNode()       {}
func (*NonNullType) exprNode() {}
func (*ListType) exprNode()    {}
func (*BasicLit) exprNode()    {}
func (*Variable) exprNode()    {}
func (*ListLit) exprNode()     {}
func (*ObjLit) exprNode()      {}

// declNode ensures that only declaration nodes can be assigned to a Decl.

func (*InputValueDef) declNode() {}
func (*FieldDef) declNode()      {}
func (*EnumValueDef) declNode()  {}
func (*DirectiveDecl) declNode() {}
func (*ScalarDecl) declNode()    {}
func (*ObjectDecl) declNode()    {}
func (*InterfaceDecl) declNode() {}
func (*UnionDecl) declNode()     {}
func (*EnumDecl) declNode()      {}
func (*InputDecl) declNode()     {}
