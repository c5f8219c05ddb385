// Package doc contains a CommonMark documentation generator for GraphQL doc sources.
package doc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"gitlab.com/zaba505/markdown"
	"go.uber.org/zap"

	"github.com/gqldoc/gqldoc/domain"
	"github.com/gqldoc/gqldoc/gen"
	"github.com/gqldoc/gqldoc/source"
)

// Options contains the options for the documentation generator.
type Options struct {
	Title string `json:"title"`
	HTML  bool   `json:"html"`
	ToC   bool   `json:"toc"`
}

// Generator generates CommonMark documentation for processed doc sources.
// Each source document becomes one page; declarations become anchored
// sections whose signatures link to the entities they reference.
type Generator struct {
	sync.Mutex
	bytes.Buffer

	indent []byte

	mdOnce sync.Once
	md     *markdown.Markdown

	log *zap.Logger
}

// Reset overrides the bytes.Buffer Reset method to assist in cleaning up some Generator state.
func (g *Generator) Reset() {
	g.Buffer.Reset()
	if g.indent == nil {
		g.indent = make([]byte, 0, 2)
	}
	g.indent = g.indent[0:0]
}

// Generate generates CommonMark documentation for the given document.
func (g *Generator) Generate(ctx context.Context, doc *gen.Document, opts map[string]interface{}) (err error) {
	g.Lock()
	defer func() {
		if err != nil {
			err = gen.GeneratorError{
				DocName: doc.Name,
				GenName: "doc",
				Msg:     err.Error(),
			}
		}
	}()
	defer g.Unlock()
	g.Reset()

	if g.log == nil {
		g.log = zap.L().Named("doc")
	}

	// Get generator options
	gOpts, oerr := getOptions(opts)
	if oerr != nil {
		return oerr
	}

	idx := gen.IndexFrom(ctx)

	// Generate declaration sections and prose
	g.generateNodes(doc, idx)

	// Assemble the page: title, optional table of contents, body
	var page bytes.Buffer
	page.Grow(bytes.MinRead + g.Len())
	writeHeader(&page, doc, gOpts)
	page.Write(g.Bytes())

	// Extract generator context
	gCtx := gen.Context(ctx)

	// Write .md file
	docFile, err := gCtx.Open(doc.Name + ".md")
	if err != nil {
		return
	}
	defer docFile.Close()

	_, err = docFile.Write(page.Bytes())
	if err != nil {
		return
	}

	if !gOpts.HTML {
		return
	}

	// Make sure markdown renderer is set
	g.mdOnce.Do(func() { g.md = markdown.New() })

	// Write .html file
	htmlFile, err := gCtx.Open(doc.Name + ".html")
	if err != nil {
		return
	}
	defer htmlFile.Close()

	err = g.md.Render(htmlFile, page.Bytes())
	return
}

func (g *Generator) generateNodes(doc *gen.Document, idx *domain.Index) {
	for _, n := range doc.Nodes {
		switch v := n.(type) {
		case *source.Prose:
			g.WriteString(g.resolveLinks(doc, idx, v.Text))
		case *source.Block:
			sig, ok := doc.Sigs[v]
			if !ok {
				continue
			}
			g.generateDecl(doc, idx, sig, v.Body)
		}
	}
}

// generateDecl writes one declaration section: an anchor, a heading,
// the fenced signature, resolved references, and the block body.
func (g *Generator) generateDecl(doc *gen.Document, idx *domain.Index, sig *domain.Signature, body []string) {
	for len(body) > 0 && body[0] == "" {
		body = body[1:]
	}
	for len(body) > 0 && body[len(body)-1] == "" {
		body = body[:len(body)-1]
	}

	g.P("<a id=\"", sig.Anchor, "\"></a>")

	if sig.Category.IsChild() {
		g.WriteString("### ")
	} else {
		g.WriteString("## ")
	}
	g.P(sig.FullName)
	g.WriteByte('\n')

	g.P("```graphql")
	g.P(sig.Text())
	g.P("```")

	g.writeRefs(doc, idx, sig.Fragments)

	if len(body) > 0 {
		g.WriteByte('\n')
		g.WriteString(g.resolveLinks(doc, idx, strings.Join(body, "\n")))
		g.WriteByte('\n')
	}
	g.WriteByte('\n')
}

// writeRefs resolves the signature's cross-reference placeholders and
// writes the resolved ones as links. Unresolved targets stay plain text
// in the fenced signature.
func (g *Generator) writeRefs(doc *gen.Document, idx *domain.Index, frags domain.Fragments) {
	var links []string
	seen := make(map[string]bool)
	for _, f := range frags {
		if f.Kind != domain.Ref || seen[f.Target] {
			continue
		}
		seen[f.Target] = true

		e, ok := idx.Resolve(f.Target)
		if !ok {
			g.log.Warn("cannot resolve reference",
				zap.String("target", f.Target),
				zap.String("doc", doc.Name),
			)
			continue
		}
		links = append(links, "["+f.Target+"]("+link(doc.Name, e)+")")
	}
	if len(links) == 0 {
		return
	}

	g.WriteByte('\n')
	g.Write(g.indent)
	g.WriteString("*References*: ")
	g.WriteString(strings.Join(links, ", "))
	g.WriteByte('\n')
}

// resolveLinks rewrites [text](gql:Target) prose links through the
// index. An optional category hint, [text](gql:type:Target), is
// tolerated and ignored: resolution is by name alone. Unresolved links
// degrade to their text.
func (g *Generator) resolveLinks(doc *gen.Document, idx *domain.Index, text string) string {
	const marker = "](gql:"

	var out strings.Builder
	for {
		i := strings.Index(text, marker)
		if i < 0 {
			break
		}
		start := strings.LastIndex(text[:i], "[")
		end := strings.Index(text[i:], ")")
		if start < 0 || end < 0 {
			out.WriteString(text[:i+len(marker)])
			text = text[i+len(marker):]
			continue
		}
		end += i

		label := text[start+1 : i]
		target := text[i+len(marker) : end]
		if j := strings.LastIndex(target, ":"); j >= 0 {
			target = target[j+1:]
		}

		out.WriteString(text[:start])
		if e, ok := idx.Resolve(target); ok {
			out.WriteString("[" + label + "](" + link(doc.Name, e) + ")")
		} else {
			g.log.Warn("cannot resolve reference",
				zap.String("target", target),
				zap.String("doc", doc.Name),
			)
			out.WriteString(label)
		}
		text = text[end+1:]
	}
	out.WriteString(text)
	return out.String()
}

// link computes the relative link to an entry. Document names are flat,
// so a link is either an in-page anchor or a sibling page reference.
func link(from string, e domain.Entry) string {
	if e.Doc == from {
		return "#" + e.Anchor
	}
	return e.Doc + ".md#" + e.Anchor
}

// writeHeader writes the title and optional table of contents.
func writeHeader(b *bytes.Buffer, doc *gen.Document, opts *Options) {
	// Title
	b.WriteByte('#')
	b.WriteByte(' ')
	b.WriteString(opts.Title)
	b.WriteByte('\n')

	// Generated line
	b.WriteString("*This was generated by gqldoc.*")
	b.WriteByte('\n')
	b.WriteByte('\n')

	if !opts.ToC {
		return
	}

	// Table of Contents
	b.WriteString("## Table of Contents")
	b.WriteByte('\n')

	listTok := []byte{'-', '*'}
	for _, blk := range doc.Blocks() {
		sig, ok := doc.Sigs[blk]
		if !ok {
			continue
		}

		var depth int
		if sig.Category.IsChild() {
			depth = 1
			b.WriteByte('\t')
		}
		b.WriteByte(listTok[depth%2])
		b.WriteByte(' ')
		b.WriteByte('[')
		b.WriteString(sig.FullName)
		b.WriteString("](#")
		b.WriteString(sig.Anchor)
		b.WriteByte(')')
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
}

// GenerateIndex writes index.md: the alphabetic listing of every
// indexed top-level entity, grouped by first letter.
func (g *Generator) GenerateIndex(ctx context.Context) (err error) {
	g.Lock()
	defer func() {
		if err != nil {
			err = gen.GeneratorError{
				DocName: "index",
				GenName: "doc",
				Msg:     err.Error(),
			}
		}
	}()
	defer g.Unlock()
	g.Reset()

	idx := gen.IndexFrom(ctx)

	g.P("# Index")
	g.WriteByte('\n')
	for _, group := range idx.Groups() {
		g.P("## ", strings.ToUpper(group.Key))
		for _, e := range group.Entries {
			g.P("- [", e.Name, "](", e.Doc, ".md#", e.Anchor, ") *", string(e.Category), "*")
		}
		g.WriteByte('\n')
	}

	gCtx := gen.Context(ctx)

	f, err := gCtx.Open("index.md")
	if err != nil {
		return
	}
	defer f.Close()

	_, err = f.Write(g.Bytes())
	return
}

// P prints the arguments to the generated output.
func (g *Generator) P(str ...interface{}) {
	g.Write(g.indent)
	for _, s := range str {
		switch v := s.(type) {
		case string:
			g.WriteString(v)
		case bool:
			fmt.Fprint(g, v)
		case int:
			fmt.Fprint(g, v)
		case float64:
			fmt.Fprint(g, v)
		}
	}
	g.WriteByte('\n')
}

// In increases the indent.
func (g *Generator) In() {
	g.indent = append(g.indent, '\t')
}

// Out decreases the indent.
func (g *Generator) Out() {
	if len(g.indent) > 0 {
		g.indent = g.indent[:len(g.indent)-1]
	}
}

// getOptions returns a generator options struct given all generator option metadata from the CLI.
// Precedence: CLI over Default
func getOptions(opts map[string]interface{}) (gOpts *Options, err error) {
	gOpts = &Options{Title: "Documentation"}
	if len(opts) == 0 {
		return
	}

	b, err := json.Marshal(opts)
	if err != nil {
		return
	}
	if err = json.Unmarshal(b, gOpts); err != nil {
		return
	}

	// Trim '"' from beginning and end of title string
	if len(gOpts.Title) > 1 && gOpts.Title[0] == '"' {
		gOpts.Title = gOpts.Title[1 : len(gOpts.Title)-1]
	}
	return
}
