package domain

import "strings"

// A Kind classifies one span of a rendered signature.
type Kind int

const (
	Keyword Kind = iota
	Name
	Operator
	Punctuation
	Space
	NumberLit
	StringLit
	Ref
)

var kinds = [...]string{
	Keyword:     "keyword",
	Name:        "name",
	Operator:    "operator",
	Punctuation: "punctuation",
	Space:       "space",
	NumberLit:   "number-literal",
	StringLit:   "string-literal",
	Ref:         "cross-ref",
}

func (k Kind) String() string {
	if 0 <= int(k) && int(k) < len(kinds) {
		return kinds[k]
	}
	return "unknown"
}

// A Fragment is one typed span of a rendered signature. Ref fragments
// additionally carry the referenced name and the kind of entity the
// reference may point to; resolution happens in a later pass.
type Fragment struct {
	Kind    Kind
	Text    string
	Target  string   // Ref only: the referenced name
	RefKind Category // Ref only: the category hint, Any for type references
}

// Fragments is an ordered signature fragment sequence, the renderer's
// only output.
type Fragments []Fragment

// Text returns the visible text of the whole sequence. Unresolved Ref
// fragments contribute their target name as plain text.
func (fs Fragments) Text() string {
	var b strings.Builder
	for _, f := range fs {
		b.WriteString(f.Text)
	}
	return b.String()
}

func kw(s string) Fragment    { return Fragment{Kind: Keyword, Text: s} }
func name(s string) Fragment  { return Fragment{Kind: Name, Text: s} }
func op(s string) Fragment    { return Fragment{Kind: Operator, Text: s} }
func punct(s string) Fragment { return Fragment{Kind: Punctuation, Text: s} }
func space() Fragment         { return Fragment{Kind: Space, Text: " "} }
func num(s string) Fragment   { return Fragment{Kind: NumberLit, Text: s} }
func str(s string) Fragment   { return Fragment{Kind: StringLit, Text: s} }

func ref(target string, kind Category) Fragment {
	return Fragment{Kind: Ref, Text: target, Target: target, RefKind: kind}
}
