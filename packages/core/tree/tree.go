package tree

import "context"

// HookFunc is a setup or teardown action attached to a context.
// A non-nil error returned from any hook aborts the remainder of the run.
type HookFunc func(ctx context.Context) error

// SpecFunc is the executable body of a spec. Bodies may block and should
// honor ctx cancellation; an error return marks the spec failed.
type SpecFunc func(ctx context.Context) error

// Spec is a single executable test case. A spec with a nil Body is
// pending: it is reported but never executed.
type Spec struct {
	Description string
	Body        SpecFunc
	Tags        []string
	Focused     bool

	parent *Context
}

// Pending reports whether the spec has no body.
func (s *Spec) Pending() bool {
	return s.Body == nil
}

// Parent returns the context that declared the spec.
func (s *Spec) Parent() *Context {
	return s.parent
}

// HasTag reports whether the spec carries the given tag.
func (s *Spec) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Context is a named grouping of specs and nested sub-contexts. Specs and
// children are kept in declaration order; that order is significant and
// preserved all the way into the final report.
type Context struct {
	Description string

	// Hook slots. Nil slots are no-ops.
	BeforeAll  HookFunc
	AfterAll   HookFunc
	BeforeEach HookFunc
	AfterEach  HookFunc

	specs    []*Spec
	children []*Context

	// parent is a non-owning back-reference used only for path
	// reconstruction.
	parent *Context
}

// NewContext creates a root context with the given description.
func NewContext(description string) *Context {
	return &Context{Description: description}
}

// AddSpec appends a spec in declaration order and returns it.
func (c *Context) AddSpec(description string, body SpecFunc) *Spec {
	s := &Spec{Description: description, Body: body, parent: c}
	c.specs = append(c.specs, s)
	return s
}

// AddPending appends a pending spec (no body).
func (c *Context) AddPending(description string) *Spec {
	return c.AddSpec(description, nil)
}

// AddContext appends a child context in declaration order and returns it.
func (c *Context) AddContext(description string) *Context {
	child := &Context{Description: description, parent: c}
	c.children = append(c.children, child)
	return child
}

// Specs returns the context's direct specs in declaration order.
func (c *Context) Specs() []*Spec {
	return c.specs
}

// Children returns the nested contexts in declaration order.
func (c *Context) Children() []*Context {
	return c.children
}

// Parent returns the enclosing context, or nil for the root.
func (c *Context) Parent() *Context {
	return c.parent
}

// Path returns the descriptions from the root down to this context.
func (c *Context) Path() []string {
	var depth int
	for n := c; n != nil; n = n.parent {
		depth++
	}
	path := make([]string, depth)
	for n := c; n != nil; n = n.parent {
		depth--
		path[depth] = n.Description
	}
	return path
}

// HasFocus reports whether any spec in the subtree is focused.
func (c *Context) HasFocus() bool {
	for _, s := range c.specs {
		if s.Focused {
			return true
		}
	}
	for _, child := range c.children {
		if child.HasFocus() {
			return true
		}
	}
	return false
}

// CountSpecs returns the number of specs in the subtree.
func (c *Context) CountSpecs() int {
	n := len(c.specs)
	for _, child := range c.children {
		n += child.CountSpecs()
	}
	return n
}
