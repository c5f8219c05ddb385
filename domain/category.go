// Package domain implements the GraphQL documentation domain: turning
// SDL declarations quoted in doc sources into typed signature fragment
// sequences, resolving entity identities, and indexing the entities for
// cross-referencing.
package domain

// A Category identifies one kind of documentable schema entity.
type Category string

// The closed set of declaration categories.
const (
	Directive      Category = "directive"
	Enum           Category = "enum"
	EnumValue      Category = "enum-value"
	Input          Category = "input"
	InputField     Category = "input-field"
	Interface      Category = "interface"
	InterfaceField Category = "interface-field"
	Scalar         Category = "scalar"
	Type           Category = "type"
	TypeField      Category = "type-field"
	Union          Category = "union"

	// Any is not a category of its own. It marks references that may
	// point to an entity of any kind, e.g. field type references.
	Any Category = "any"
)

// categories fixes the iteration order for index lookups and listings.
var categories = [...]Category{
	Directive,
	Enum,
	EnumValue,
	Input,
	InputField,
	Interface,
	InterfaceField,
	Scalar,
	Type,
	TypeField,
	Union,
}

// parentOf maps child categories to the category that contains them.
var parentOf = map[Category]Category{
	EnumValue:      Enum,
	InputField:     Input,
	InterfaceField: Interface,
	TypeField:      Type,
}

// childOf maps parent categories to their child category.
var childOf = map[Category]Category{
	Enum:      EnumValue,
	Input:     InputField,
	Interface: InterfaceField,
	Type:      TypeField,
}

// Lookup maps a category name in its dash form, e.g. "enum-value", to
// its Category.
func Lookup(name string) (Category, bool) {
	switch c := Category(name); c {
	case Directive, Enum, EnumValue, Input, InputField,
		Interface, InterfaceField, Scalar, Type, TypeField, Union:
		return c, true
	}
	return "", false
}

// Parent returns the containing category for child kinds. Top-level
// kinds have no parent.
func (c Category) Parent() (Category, bool) {
	p, ok := parentOf[c]
	return p, ok
}

// IsChild reports whether c only ever appears nested inside a parent
// declaration.
func (c Category) IsChild() bool {
	_, ok := parentOf[c]
	return ok
}

// HasChildren reports whether declarations of c open a scope that child
// declarations document themselves under.
func (c Category) HasChildren() bool {
	_, ok := childOf[c]
	return ok
}
