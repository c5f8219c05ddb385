package domain

import "fmt"

// An UnsupportedLiteralError reports a value node that can never appear
// in a schema declaration, e.g. a variable reference. It indicates a
// parser/renderer mismatch rather than bad input, so callers surface it
// loudly instead of treating it like a syntax problem.
type UnsupportedLiteralError struct {
	Node interface{}
}

func (e *UnsupportedLiteralError) Error() string {
	return fmt.Sprintf("graphql: unsupported literal node type %T", e.Node)
}
