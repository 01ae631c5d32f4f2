// Package patchop provides the closed-but-extensible catalog of
// mutation operations the patch engine dispatches on.
//
// # Overview
//
// Operations are declared in patch documents as elements carrying a
// Class attribute naming their kind:
//
//	<Operation Class="Add">
//	  <xpath>Defs/ThingDef[defName="Wall"]/comps</xpath>
//	  <value><li Class="CompFoo" /></value>
//	</Operation>
//
// FromNode resolves the Class against the registry and lets the
// matching Symbol parse the payload into an immutable Op. Applying an
// Op resolves its path expression against the current tree state,
// mutates in place, and returns an Outcome (Applied, Skipped or
// Failed); it never raises across the operation boundary.
//
// # Kinds
//
// Structural: Add, Insert, Remove, Replace, SetName, AddExtension.
// Attribute: AttributeAdd, AttributeSet, AttributeRemove.
// Composite: Sequence (ordered, aborts on first nested failure,
// no rollback), Conditional (path existence test with match/nomatch
// branches), FindMod (host capability test with match/nomatch
// branches).
//
// Note the asymmetric ordering defaults: Add appends as child,
// Insert prepends as sibling.
//
// # Success modes
//
// An operation element may carry <success>Always|Invert|Never</success>,
// applied as a post-processing transform on the raw outcome. This is
// legacy control flow from before Conditional existed; prefer
// Conditional in new patches.
//
// # Registration
//
//	op := patchop.Lookup("Add")
//	all := patchop.Symbols()
//	err := patchop.Register(myCustomSymbol)
//
// Custom kinds implement Symbol and Op; the dispatch loop needs no
// change.
package patchop
