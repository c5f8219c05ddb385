// Package source models documentation sources: Markdown files carrying
// GraphQL declarations in gql: fenced code blocks.
//
// The scanner is purely lexical. It splits prose from declaration
// blocks and records line numbers for diagnostics; parsing the quoted
// declarations is the domain package's job.
package source

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// A Document is one scanned documentation source.
type Document struct {
	Name  string // document name, the source path without its extension
	Nodes []Node // prose and blocks in source order
}

// A Node is one piece of a document, either *Prose or *Block.
type Node interface {
	node()
}

// Prose is a run of ordinary Markdown between declaration blocks,
// preserved untouched. Inline gql: links inside it are resolved during
// generation.
type Prose struct {
	Line int    // line the run starts on, 1-based
	Text string // raw markdown
}

// A Block is one fenced declaration block, e.g.
//
//	```gql:type noindex
//	Rect implements Shape
//	```
//
// The category keyword is omitted where the tag implies it.
type Block struct {
	Line    int      // line of the opening fence
	Tag     string   // category tag from the info string, e.g. "enum-value"
	NoIndex bool     // suppress indexing of this declaration
	Decl    string   // first line inside the fence: the declaration text
	Body    []string // remaining lines, preserved raw
}

func (*Prose) node() {}
func (*Block) node() {}

// Blocks returns the document's declaration blocks in order.
func (d *Document) Blocks() []*Block {
	var blocks []*Block
	for _, n := range d.Nodes {
		if b, ok := n.(*Block); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

const fence = "```"

// Scan reads one documentation source, splitting prose from gql:
// declaration blocks in document order. Fenced blocks without a gql:
// tag are ordinary prose; an unterminated gql: block is an error.
func Scan(name string, r io.Reader) (*Document, error) {
	doc := &Document{Name: name}

	var (
		prose     strings.Builder
		proseLine = 1
		line      int
		block     *Block // gql block being collected; nil outside one
		inFence   bool   // inside a non-gql fenced block
	)

	flush := func() {
		if prose.Len() == 0 {
			return
		}
		doc.Nodes = append(doc.Nodes, &Prose{Line: proseLine, Text: prose.String()})
		prose.Reset()
	}

	s := bufio.NewScanner(r)
	for s.Scan() {
		line++
		text := s.Text()
		trimmed := strings.TrimSpace(text)

		switch {
		case block != nil:
			if trimmed == fence {
				doc.Nodes = append(doc.Nodes, block)
				block = nil
				proseLine = line + 1
				continue
			}
			if block.Decl == "" && len(block.Body) == 0 {
				if trimmed == "" {
					continue
				}
				block.Decl = trimmed
				continue
			}
			block.Body = append(block.Body, text)

		case inFence:
			prose.WriteString(text)
			prose.WriteByte('\n')
			if trimmed == fence {
				inFence = false
			}

		case strings.HasPrefix(trimmed, fence):
			info := strings.TrimSpace(strings.TrimPrefix(trimmed, fence))
			if tag, noindex, ok := cutTag(info); ok {
				flush()
				block = &Block{Line: line, Tag: tag, NoIndex: noindex}
				continue
			}
			inFence = true
			prose.WriteString(text)
			prose.WriteByte('\n')

		default:
			prose.WriteString(text)
			prose.WriteByte('\n')
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("source: %s: %w", name, err)
	}
	if block != nil {
		return nil, fmt.Errorf("source: %s:%d: unterminated declaration block", name, block.Line)
	}

	flush()
	return doc, nil
}

// cutTag splits a fence info string of the form "gql:<tag> [noindex]".
func cutTag(info string) (tag string, noindex, ok bool) {
	fields := strings.Fields(info)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "gql:") {
		return "", false, false
	}
	tag = strings.TrimPrefix(fields[0], "gql:")
	if tag == "" {
		return "", false, false
	}
	for _, f := range fields[1:] {
		if f == "noindex" {
			noindex = true
		}
	}
	return tag, noindex, true
}
