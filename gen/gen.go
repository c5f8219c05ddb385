// Package gen contains the generator API and utils for working with generators.
package gen

//go:generate mockgen -write_package_comment=false -package=gen -destination=./mock.go github.com/gqldoc/gqldoc/gen Generator

import (
	"context"
	"fmt"
	"io"

	"github.com/gqldoc/gqldoc/domain"
	"github.com/gqldoc/gqldoc/source"
)

// A Document pairs a scanned doc source with the signatures produced
// by processing its declaration blocks. Blocks that were skipped while
// processing have no signature.
type Document struct {
	*source.Document

	Sigs map[*source.Block]*domain.Signature
}

// Generator provides a simple API for creating an output generator for
// any format desired.
type Generator interface {
	// Generate handles converting a processed doc source to output files.
	Generate(ctx context.Context, doc *Document, opts map[string]interface{}) error
}

// GeneratorContext represents the directory to which
// the Generator is to write to.
type GeneratorContext interface {
	// Open opens a file in the GeneratorContext (i.e. directory).
	Open(filename string) (io.WriteCloser, error)
}

type ctxKey string

var (
	genCtxKey = ctxKey("genCtx")
	indexKey  = ctxKey("index")
)

// WithContext returns a prepared context.Context
// with the given GeneratorContext.
func WithContext(ctx context.Context, gCtx GeneratorContext) context.Context {
	return context.WithValue(ctx, genCtxKey, gCtx)
}

// Context returns the generator context.
func Context(ctx context.Context) GeneratorContext {
	return ctx.Value(genCtxKey).(GeneratorContext)
}

// WithIndex returns a prepared context.Context carrying the merged
// cross-reference index.
func WithIndex(ctx context.Context, idx *domain.Index) context.Context {
	return context.WithValue(ctx, indexKey, idx)
}

// IndexFrom returns the merged cross-reference index. Generators run
// without one, e.g. in tests, get an empty index back.
func IndexFrom(ctx context.Context) *domain.Index {
	idx, ok := ctx.Value(indexKey).(*domain.Index)
	if !ok {
		return domain.NewIndex()
	}
	return idx
}

// GeneratorError represents an error from a generator.
type GeneratorError struct {
	// DocName is the document being worked on when error was encountered.
	DocName string

	// GenName is the generator name which encountered a problem.
	GenName string

	// Msg is any message the generator wants to provide back to the caller.
	Msg string
}

func (e GeneratorError) Error() string {
	return fmt.Sprintf("gqldoc: generator error occurred in %s:%s %s", e.GenName, e.DocName, e.Msg)
}
