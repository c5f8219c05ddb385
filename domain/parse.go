package domain

import (
	"fmt"

	"github.com/gqldoc/gqldoc/graphql/ast"
	"github.com/gqldoc/gqldoc/graphql/parser"
)

// keywords maps keyword-led categories to the keyword authors omit when
// quoting a declaration.
var keywords = map[Category]string{
	Directive: "directive",
	Enum:      "enum",
	Input:     "input",
	Interface: "interface",
	Scalar:    "scalar",
	Type:      "type",
	Union:     "union",
}

// Parse parses text as a single declaration of the category's
// production rule. Keyword-led categories are written without their
// leading keyword; it is prepended before parsing. The doc name is only
// used to report errors.
func Parse(cat Category, doc, text string) (ast.Decl, error) {
	if kw, ok := keywords[cat]; ok {
		return parser.ParseDecl(doc, []byte(kw+" "+text))
	}
	switch cat {
	case EnumValue:
		return parser.ParseEnumValueDef(doc, []byte(text))
	case InputField:
		return parser.ParseInputValueDef(doc, []byte(text))
	case InterfaceField, TypeField:
		return parser.ParseFieldDef(doc, []byte(text))
	}
	return nil, fmt.Errorf("graphql: unknown declaration category: %s", cat)
}
