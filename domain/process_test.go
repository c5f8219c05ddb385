package domain

import (
	"testing"

	"github.com/gqldoc/gqldoc/source"
)

func testDoc(name string, nodes ...source.Node) *source.Document {
	return &source.Document{Name: name, Nodes: nodes}
}

func testBlock(tag, decl string) *source.Block {
	return &source.Block{Tag: tag, Decl: decl}
}

func TestProcess(t *testing.T) {
	t.Run("registersTopLevelDecls", func(subT *testing.T) {
		idx := NewIndex()
		scalar := testBlock("scalar", "URI")
		union := testBlock("union", "Shape = Rect | Circle")
		d := testDoc("schema",
			&source.Prose{Line: 1, Text: "# Schema\n"},
			scalar,
			union,
		)

		sigs := Process(d, idx)
		if len(sigs) != 2 {
			subT.Fatalf("expected 2 signatures but instead received: %d", len(sigs))
		}

		sig := sigs[scalar]
		if sig.FullName != "URI" || sig.Anchor != "URI" || sig.Category != Scalar {
			subT.Fatalf("unexpected signature: %#v", sig)
		}
		if out := sig.Text(); out != "scalar URI" {
			subT.Fatalf("expected signature text: %q but instead received: %q", "scalar URI", out)
		}

		e, ok := idx.Resolve("Shape")
		if !ok || e.Category != Union || e.Doc != "schema" {
			subT.Fatalf("expected union entry but instead received: %#v", e)
		}
	})

	t.Run("qualifiesChildren", func(subT *testing.T) {
		idx := NewIndex()
		value := testBlock("enum-value", "RED")
		field := testBlock("type-field", "area: Int")
		d := testDoc("schema",
			testBlock("enum", "Color"),
			value,
			testBlock("type", "Rect"),
			field,
		)

		sigs := Process(d, idx)

		if sig := sigs[value]; sig.FullName != "Color.RED" || sig.Name != "RED" {
			subT.Fatalf("unexpected enum value signature: %#v", sig)
		}
		if sig := sigs[field]; sig.FullName != "Rect.area" || sig.Anchor != "Rect.area" {
			subT.Fatalf("unexpected field signature: %#v", sig)
		}

		if _, ok := idx.Resolve("Color.RED"); !ok {
			subT.Fatal("expected qualified enum value to be indexed")
		}
		if _, ok := idx.Resolve("Rect.area"); !ok {
			subT.Fatal("expected qualified field to be indexed")
		}
	})

	t.Run("closesScopeAtNextTopLevel", func(subT *testing.T) {
		idx := NewIndex()
		stray := testBlock("enum-value", "GREEN")
		d := testDoc("schema",
			testBlock("enum", "Color"),
			testBlock("scalar", "URI"),
			stray,
		)

		sigs := Process(d, idx)

		if sig := sigs[stray]; sig.FullName != "GREEN" {
			subT.Fatalf("expected bare name after scope closed but instead received: %#v", sig)
		}
	})

	t.Run("standaloneChildKeepsBareName", func(subT *testing.T) {
		idx := NewIndex()
		field := testBlock("input-field", "x: Float")
		d := testDoc("schema", field)

		sigs := Process(d, idx)

		if sig := sigs[field]; sig.FullName != "x" || sig.Category != InputField {
			subT.Fatalf("unexpected signature: %#v", sig)
		}
	})

	t.Run("fieldScopeFollowsParentCategory", func(subT *testing.T) {
		idx := NewIndex()
		field := testBlock("interface-field", "area: Int")
		d := testDoc("schema",
			testBlock("interface", "Shape"),
			field,
		)

		sigs := Process(d, idx)

		if sig := sigs[field]; sig.FullName != "Shape.area" || sig.Category != InterfaceField {
			subT.Fatalf("unexpected signature: %#v", sig)
		}
	})

	t.Run("honorsNoIndex", func(subT *testing.T) {
		idx := NewIndex()
		hidden := &source.Block{Tag: "enum", NoIndex: true, Decl: "Color"}
		value := testBlock("enum-value", "RED")
		d := testDoc("schema", hidden, value)

		sigs := Process(d, idx)

		if sig := sigs[hidden]; sig == nil || sig.Text() != "enum Color" {
			subT.Fatalf("expected unindexed block to still render: %#v", sig)
		}
		if _, ok := idx.Resolve("Color"); ok {
			subT.Fatal("expected noindex declaration to stay out of the index")
		}
		if sig := sigs[value]; sig.FullName != "Color.RED" {
			subT.Fatalf("expected noindex parent to still scope children: %#v", sig)
		}
		if _, ok := idx.Resolve("Color.RED"); !ok {
			subT.Fatal("expected child of noindex declaration to be indexed")
		}
	})

	t.Run("skipsMalformedDecl", func(subT *testing.T) {
		idx := NewIndex()
		bad := testBlock("type", "Rect implements")
		good := testBlock("scalar", "URI")
		d := testDoc("schema", bad, good)

		sigs := Process(d, idx)

		if _, ok := sigs[bad]; ok {
			subT.Fatal("expected malformed declaration to produce no signature")
		}
		if _, ok := sigs[good]; !ok {
			subT.Fatal("expected processing to continue past malformed declaration")
		}
		if _, ok := idx.Resolve("Rect"); ok {
			subT.Fatal("expected malformed declaration to stay out of the index")
		}
	})

	t.Run("skipsUnknownCategory", func(subT *testing.T) {
		idx := NewIndex()
		bad := testBlock("frobnicator", "Rect")
		good := testBlock("type", "Rect")
		d := testDoc("schema", bad, good)

		sigs := Process(d, idx)

		if _, ok := sigs[bad]; ok {
			subT.Fatal("expected unknown category to produce no signature")
		}
		if sig := sigs[good]; sig == nil || sig.Text() != "type Rect" {
			subT.Fatalf("unexpected signature: %#v", sig)
		}
	})

	t.Run("skipsUnsupportedValue", func(subT *testing.T) {
		idx := NewIndex()
		bad := testBlock("input-field", "min: Int = $min")
		d := testDoc("schema", testBlock("input", "Filter"), bad)

		sigs := Process(d, idx)

		if _, ok := sigs[bad]; ok {
			subT.Fatal("expected unsupported value to produce no signature")
		}
		if _, ok := idx.Resolve("Filter.min"); ok {
			subT.Fatal("expected skipped declaration to stay out of the index")
		}
	})
}
