package tree

// Cascade holds the resolved per-spec hook sequences for one context.
// BeforeEach runs outer→inner, AfterEach is the same list reversed.
// BeforeAll/AfterAll are deliberately absent: they fire once per context
// when the runner enters and leaves it, not once per spec.
type Cascade struct {
	BeforeEach []HookFunc
	AfterEach  []HookFunc
}

// HookCascade resolves the per-spec hook cascade for a context. Nil hook
// slots are dropped so callers can iterate without nil checks.
func HookCascade(c *Context) Cascade {
	var chain []*Context
	for n := c; n != nil; n = n.parent {
		chain = append(chain, n)
	}

	var cascade Cascade
	for i := len(chain) - 1; i >= 0; i-- {
		if h := chain[i].BeforeEach; h != nil {
			cascade.BeforeEach = append(cascade.BeforeEach, h)
		}
	}
	for _, n := range chain {
		if h := n.AfterEach; h != nil {
			cascade.AfterEach = append(cascade.AfterEach, h)
		}
	}
	return cascade
}
