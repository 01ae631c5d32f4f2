package patchop

// Context carries host collaborators and behavioral options through
// the operation tree.
type Context struct {
	// HasCapability answers whether an external capability (a loaded
	// package, for instance) is present. Consulted by capability-gated
	// operations only; nil means no capability is present.
	HasCapability func(name string) bool

	// NoopRemoval makes Remove report Skipped instead of Failed when
	// its path resolves to nothing.
	NoopRemoval bool
}

func (c *Context) capability(name string) bool {
	if c == nil || c.HasCapability == nil {
		return false
	}
	return c.HasCapability(name)
}

func (c *Context) noopRemoval() bool {
	return c != nil && c.NoopRemoval
}
