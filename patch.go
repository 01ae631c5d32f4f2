// Package defml applies ordered patch units to a structurally typed
// document tree.
//
// The engine owns all mutation of the tree for the duration of a run:
// units apply strictly in load order, each unit's top-level operations
// apply strictly in document order, and every operation re-resolves
// its path expression against the current tree state. A failed
// top-level operation is recorded and does not halt the rest of its
// unit; only Sequence nesting propagates abort semantics.
//
// Apply runs to completion across all units before any inheritance
// expansion (package inherit) happens. Path expressions therefore
// match only nodes physically present in the patched source, never
// inherited-but-not-yet-materialized children; mutating a template
// node uniformly affects all of its not-yet-expanded inheritors.
package defml

import (
	"errors"

	"github.com/defml-format/go-defml/debug"
	"github.com/defml-format/go-defml/ir"
	"github.com/defml-format/go-defml/patchop"
)

type applyConfig struct {
	capabilities func(string) bool
	noopRemoval  bool
}

type ApplyOpt func(*applyConfig)

// WithCapabilities supplies the host's capability query, consulted by
// capability-gated operations.
func WithCapabilities(f func(name string) bool) ApplyOpt {
	return func(c *applyConfig) { c.capabilities = f }
}

// WithNoopRemoval makes Remove tolerate empty target sets.
func WithNoopRemoval(v bool) ApplyOpt {
	return func(c *applyConfig) { c.noopRemoval = v }
}

// Apply patches doc in place with the given units, in order, and
// returns the complete execution report: one entry per top-level
// operation attempted, present even when operations fail. The only
// hard error is a missing document; per-operation failures are
// recovered locally and recorded.
func Apply(doc *ir.Node, units []*Unit, opts ...ApplyOpt) (*Report, error) {
	if doc == nil {
		return nil, errors.New("no document to patch")
	}
	cfg := &applyConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	ctx := &patchop.Context{
		HasCapability: cfg.capabilities,
		NoopRemoval:   cfg.noopRemoval,
	}
	rep := &Report{}
	for _, u := range units {
		u.State = Running
		if debug.Patch() {
			debug.Logf("unit %q: %d operations\n", u.Name, len(u.ops))
		}
		ok := true
		for i, op := range u.ops {
			out := op.Apply(doc, ctx)
			if debug.Patch() {
				debug.Logf("unit %q op %d (%s): %s %s\n", u.Name, i, op, out.Status, out.Reason)
			}
			rep.Entries = append(rep.Entries, Entry{
				Unit:    u.Name,
				Index:   i,
				Op:      op.String(),
				Outcome: out,
			})
			if !out.OK() {
				ok = false
			}
		}
		if ok {
			u.State = Succeeded
		} else {
			u.State = UnitFailed
		}
	}
	return rep, nil
}
