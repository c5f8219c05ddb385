package domain

// A RefContext carries the ambient parent scope while a parent
// declaration's nested content is processed. SDL declarations nest at
// most one level deep, so each parent category holds a single slot
// rather than a stack. A RefContext belongs to the worker processing
// one document and is never shared.
type RefContext struct {
	parents map[Category]string
}

func NewRefContext() *RefContext {
	return &RefContext{parents: make(map[Category]string)}
}

// Enter records fullname as the active parent for its category and
// returns the matching exit hook. Callers run the exit when leaving the
// parent's content scope; deferring it guarantees the slot is cleared
// even when processing the nested content fails.
func (c *RefContext) Enter(cat Category, fullname string) (exit func()) {
	c.parents[cat] = fullname
	return func() { delete(c.parents, cat) }
}

// Parent returns the active parent name for a child category, or ""
// when the child is being documented standalone.
func (c *RefContext) Parent(child Category) string {
	parent, ok := child.Parent()
	if !ok {
		return ""
	}
	return c.parents[parent]
}

// ResolveName computes the fully qualified name of a declaration. A
// top-level declaration's fully qualified name is its own name. A child
// declaration documents itself under the active parent when one is set;
// documented standalone it keeps its bare name, which is unusual but
// not an error.
func (c *RefContext) ResolveName(cat Category, name string) string {
	if parent := c.Parent(cat); parent != "" {
		return parent + "." + name
	}
	return name
}
