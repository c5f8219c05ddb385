// Package search contains a generator for client side search manifests.
package search

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gqldoc/gqldoc/gen"
)

// Options contains the options for the search manifest generator.
type Options struct {
	Pretty bool `json:"pretty"`
}

// A record is one searchable entity in the manifest.
type record struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Doc      string `json:"doc"`
	Anchor   string `json:"anchor"`
}

// Generator generates a search.json manifest of every indexed entity.
// The manifest covers the whole build, so only the first Generate call
// writes it; later calls are no-ops.
type Generator struct {
	sync.Once
}

// Generate generates the search manifest for the build the given document belongs to.
func (g *Generator) Generate(ctx context.Context, doc *gen.Document, opts map[string]interface{}) (err error) {
	defer func() {
		if err != nil {
			err = gen.GeneratorError{
				DocName: doc.Name,
				GenName: "search",
				Msg:     err.Error(),
			}
		}
	}()

	g.Do(func() { err = g.generate(ctx, opts) })
	return
}

func (g *Generator) generate(ctx context.Context, opts map[string]interface{}) error {
	gOpts, err := getOptions(opts)
	if err != nil {
		return err
	}

	entries := gen.IndexFrom(ctx).Entries()
	records := make([]record, 0, len(entries))
	for _, e := range entries {
		records = append(records, record{
			Name:     e.Name,
			Category: string(e.Category),
			Doc:      e.Doc,
			Anchor:   e.Anchor,
		})
	}

	f, err := gen.Context(ctx).Open("search.json")
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if gOpts.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(records)
}

// getOptions returns a generator options struct given all generator option metadata from the CLI.
func getOptions(opts map[string]interface{}) (gOpts *Options, err error) {
	gOpts = new(Options)
	if len(opts) == 0 {
		return
	}

	b, err := json.Marshal(opts)
	if err != nil {
		return
	}
	err = json.Unmarshal(b, gOpts)
	return
}
