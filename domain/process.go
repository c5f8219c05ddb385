package domain

import (
	"go.uber.org/zap"

	"github.com/gqldoc/gqldoc/graphql/ast"
	"github.com/gqldoc/gqldoc/source"
)

// A Signature is the rendered, resolved form of one declaration block.
type Signature struct {
	Category Category
	Name     string // declared name, without parent qualification
	FullName string // parent-qualified name, e.g. "Rect.area"
	Anchor   string // link anchor, identical to FullName
	Fragments
}

// Process parses, renders, resolves, and registers every declaration
// block of doc. Malformed declarations are logged and skipped; the
// rest of the document is still processed. The returned map carries a
// signature for exactly the blocks that survived.
//
// idx is registered into as blocks resolve, so each concurrent caller
// must own both doc and idx.
func Process(doc *source.Document, idx *Index) map[*source.Block]*Signature {
	log := zap.L().Named("gql").With(zap.String("doc", doc.Name))

	sigs := make(map[*source.Block]*Signature)
	ctx := NewRefContext()

	exit := func() {}
	defer exit()

	for _, n := range doc.Nodes {
		b, ok := n.(*source.Block)
		if !ok {
			continue
		}

		cat, ok := Lookup(b.Tag)
		if !ok {
			log.Warn("skipping unknown declaration category",
				zap.String("category", b.Tag),
				zap.Int("line", b.Line),
			)
			continue
		}

		decl, err := Parse(cat, doc.Name, b.Decl)
		if err != nil {
			log.Warn("skipping malformed declaration",
				zap.String("category", string(cat)),
				zap.Int("line", b.Line),
				zap.Error(err),
			)
			continue
		}

		frags, err := Render(cat, decl)
		if err != nil {
			log.Error("cannot render declaration",
				zap.String("category", string(cat)),
				zap.Int("line", b.Line),
				zap.Error(err),
			)
			continue
		}

		name := declName(decl)
		if !cat.IsChild() {
			exit()
			exit = func() {}
		}
		fullname := ctx.ResolveName(cat, name)
		if cat.HasChildren() {
			exit = ctx.Enter(cat, fullname)
		}

		if !b.NoIndex {
			idx.Register(Entry{
				Name:     fullname,
				Category: cat,
				Doc:      doc.Name,
				Anchor:   fullname,
			})
		}

		sigs[b] = &Signature{
			Category:  cat,
			Name:      name,
			FullName:  fullname,
			Anchor:    fullname,
			Fragments: frags,
		}
	}
	return sigs
}

// declName extracts the declared name from any node Parse can return.
func declName(decl ast.Decl) string {
	switch d := decl.(type) {
	case *ast.ScalarDecl:
		return d.Name.Name
	case *ast.ObjectDecl:
		return d.Name.Name
	case *ast.InterfaceDecl:
		return d.Name.Name
	case *ast.UnionDecl:
		return d.Name.Name
	case *ast.EnumDecl:
		return d.Name.Name
	case *ast.InputDecl:
		return d.Name.Name
	case *ast.DirectiveDecl:
		return d.Name.Name
	case *ast.FieldDef:
		return d.Name.Name
	case *ast.InputValueDef:
		return d.Name.Name
	case *ast.EnumValueDef:
		return d.Name.Name
	}
	return ""
}
