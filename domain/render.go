package domain

import (
	"fmt"

	"github.com/gqldoc/gqldoc/graphql/ast"
	"github.com/gqldoc/gqldoc/graphql/token"
)

type renderFunc func(ast.Decl) (Fragments, error)

// renderers dispatches rendering by category. Field categories share
// one renderer, as do the object and interface headers.
var renderers = map[Category]renderFunc{
	Directive:      renderDirectiveDecl,
	Enum:           renderEnumDecl,
	EnumValue:      renderEnumValueDef,
	Input:          renderInputDecl,
	InputField:     renderInputValueDef,
	Interface:      renderInterfaceDecl,
	InterfaceField: renderFieldDef,
	Scalar:         renderScalarDecl,
	Type:           renderObjectDecl,
	TypeField:      renderFieldDef,
	Union:          renderUnionDecl,
}

// Render translates a parsed declaration into its signature fragment
// sequence. The declaration must have been produced by Parse with the
// same category. Rendering is deterministic and never mutates the node.
func Render(cat Category, decl ast.Decl) (Fragments, error) {
	render, ok := renderers[cat]
	if !ok {
		return nil, fmt.Errorf("graphql: no renderer for category: %s", cat)
	}
	return render(decl)
}

func renderScalarDecl(decl ast.Decl) (Fragments, error) {
	d := decl.(*ast.ScalarDecl)
	frags := Fragments{kw("scalar"), space(), name(d.Name.Name)}
	return appendDirectives(frags, d.Directives)
}

func renderEnumDecl(decl ast.Decl) (Fragments, error) {
	d := decl.(*ast.EnumDecl)
	frags := Fragments{kw("enum"), space(), name(d.Name.Name)}
	return appendDirectives(frags, d.Directives)
}

func renderInputDecl(decl ast.Decl) (Fragments, error) {
	d := decl.(*ast.InputDecl)
	frags := Fragments{kw("input"), space(), name(d.Name.Name)}
	return appendDirectives(frags, d.Directives)
}

func renderObjectDecl(decl ast.Decl) (Fragments, error) {
	d := decl.(*ast.ObjectDecl)
	return renderTypeHeader("type", d.Name, d.Interfaces, d.Directives)
}

func renderInterfaceDecl(decl ast.Decl) (Fragments, error) {
	d := decl.(*ast.InterfaceDecl)
	return renderTypeHeader("interface", d.Name, d.Interfaces, d.Directives)
}

// renderTypeHeader renders `keyword name [implements I1 & I2] [directives]`,
// the header shape shared by object and interface declarations.
func renderTypeHeader(keyword string, n *ast.Ident, ifaces []*ast.Ident, dirs []*ast.Directive) (Fragments, error) {
	frags := Fragments{kw(keyword), space(), name(n.Name)}
	if len(ifaces) > 0 {
		frags = append(frags, space(), kw("implements"), space())
		for i, iface := range ifaces {
			if i != 0 {
				frags = append(frags, space(), op("&"), space())
			}
			frags = append(frags, ref(iface.Name, Interface))
		}
	}
	return appendDirectives(frags, dirs)
}

func renderUnionDecl(decl ast.Decl) (Fragments, error) {
	d := decl.(*ast.UnionDecl)
	frags := Fragments{kw("union"), space(), name(d.Name.Name)}
	frags, err := appendDirectives(frags, d.Directives)
	if err != nil {
		return nil, err
	}
	for i, member := range d.Members {
		if i == 0 {
			frags = append(frags, space(), op("="), space())
		} else {
			frags = append(frags, space(), op("|"), space())
		}
		frags = append(frags, ref(member.Name, Any))
	}
	return frags, nil
}

func renderDirectiveDecl(decl ast.Decl) (Fragments, error) {
	d := decl.(*ast.DirectiveDecl)
	frags := Fragments{kw("directive"), space(), op("@"), name(d.Name.Name)}
	frags, err := appendArgDefs(frags, d.Args)
	if err != nil {
		return nil, err
	}
	frags = append(frags, space(), kw("on"), space())
	for i, loc := range d.Locations {
		if i != 0 {
			frags = append(frags, space(), op("|"), space())
		}
		frags = append(frags, name(loc.Name))
	}
	return frags, nil
}

func renderFieldDef(decl ast.Decl) (Fragments, error) {
	d := decl.(*ast.FieldDef)
	frags, err := appendArgDefs(Fragments{name(d.Name.Name)}, d.Args)
	if err != nil {
		return nil, err
	}
	frags = append(frags, op(":"), space())
	if frags, err = appendType(frags, d.Type); err != nil {
		return nil, err
	}
	return appendDirectives(frags, d.Directives)
}

func renderInputValueDef(decl ast.Decl) (Fragments, error) {
	d := decl.(*ast.InputValueDef)
	frags := Fragments{name(d.Name.Name), op(":"), space()}
	frags, err := appendType(frags, d.Type)
	if err != nil {
		return nil, err
	}
	if frags, err = appendDefault(frags, d.Default); err != nil {
		return nil, err
	}
	return appendDirectives(frags, d.Directives)
}

func renderEnumValueDef(decl ast.Decl) (Fragments, error) {
	d := decl.(*ast.EnumValueDef)
	return appendDirectives(Fragments{name(d.Name.Name)}, d.Directives)
}

// appendDirectives renders applied directives: each one a space, an "@",
// a directive reference, and any constant arguments.
func appendDirectives(frags Fragments, dirs []*ast.Directive) (Fragments, error) {
	var err error
	for _, d := range dirs {
		frags = append(frags, space(), op("@"), ref(d.Name.Name, Directive))
		if frags, err = appendArgs(frags, d.Args); err != nil {
			return nil, err
		}
	}
	return frags, nil
}

// appendArgs renders a constant argument list. An empty list emits
// nothing, not even parentheses.
func appendArgs(frags Fragments, args []*ast.Arg) (Fragments, error) {
	if len(args) == 0 {
		return frags, nil
	}
	frags = append(frags, op("("))
	for i, a := range args {
		if i != 0 {
			frags = append(frags, punct(","), space())
		}
		frags = append(frags, name(a.Name.Name), punct(":"), space())
		var err error
		if frags, err = appendValue(frags, a.Value); err != nil {
			return nil, err
		}
	}
	return append(frags, op(")")), nil
}

// appendArgDefs renders an input value definition list: field arguments
// or directive declaration arguments. An empty list emits nothing.
func appendArgDefs(frags Fragments, args []*ast.InputValueDef) (Fragments, error) {
	if len(args) == 0 {
		return frags, nil
	}
	frags = append(frags, op("("))
	for i, a := range args {
		if i != 0 {
			frags = append(frags, punct(","), space())
		}
		frags = append(frags, name(a.Name.Name), punct(":"), space())
		var err error
		if frags, err = appendType(frags, a.Type); err != nil {
			return nil, err
		}
		if frags, err = appendDefault(frags, a.Default); err != nil {
			return nil, err
		}
		if frags, err = appendDirectives(frags, a.Directives); err != nil {
			return nil, err
		}
	}
	return append(frags, op(")")), nil
}

func appendDefault(frags Fragments, v ast.Expr) (Fragments, error) {
	if v == nil {
		return frags, nil
	}
	frags = append(frags, space(), op("="), space())
	return appendValue(frags, v)
}

// appendValue renders a constant value literal. Variable references are
// valid values in the wider language but never in schema declarations,
// so they come back as an UnsupportedLiteralError.
func appendValue(frags Fragments, v ast.Expr) (Fragments, error) {
	switch x := v.(type) {
	case *ast.BasicLit:
		switch x.Kind {
		case token.INT, token.FLOAT:
			return append(frags, num(x.Value)), nil
		case token.STRING:
			return append(frags, str(x.Value)), nil
		case token.BOOL, token.NULL:
			return append(frags, kw(x.Value)), nil
		default: // enum values
			return append(frags, name(x.Value)), nil
		}
	case *ast.ListLit:
		frags = append(frags, op("["))
		for i, e := range x.Elts {
			if i != 0 {
				frags = append(frags, punct(","), space())
			}
			var err error
			if frags, err = appendValue(frags, e); err != nil {
				return nil, err
			}
		}
		return append(frags, op("]")), nil
	case *ast.ObjLit:
		frags = append(frags, op("{"))
		for i, f := range x.Fields {
			if i != 0 {
				frags = append(frags, punct(","), space())
			}
			frags = append(frags, name(f.Name.Name), punct(":"), space())
			var err error
			if frags, err = appendValue(frags, f.Value); err != nil {
				return nil, err
			}
		}
		return append(frags, op("}")), nil
	default:
		return nil, &UnsupportedLiteralError{Node: v}
	}
}

// appendType renders a type reference. Named types become deferred
// cross-references of kind Any: whether the name denotes a type,
// interface, scalar, enum, input, or union is not known until the
// resolution pass.
func appendType(frags Fragments, typ ast.Expr) (Fragments, error) {
	switch x := typ.(type) {
	case *ast.Ident:
		return append(frags, ref(x.Name, Any)), nil
	case *ast.NonNullType:
		frags, err := appendType(frags, x.Type)
		if err != nil {
			return nil, err
		}
		return append(frags, op("!")), nil
	case *ast.ListType:
		frags = append(frags, op("["))
		frags, err := appendType(frags, x.Elt)
		if err != nil {
			return nil, err
		}
		return append(frags, op("]")), nil
	default:
		return nil, &UnsupportedLiteralError{Node: typ}
	}
}
