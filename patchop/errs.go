package patchop

import "errors"

var (
	// ErrEmptyTarget reports that an operation's path expression
	// resolved to nothing.
	ErrEmptyTarget = errors.New("no targets matched")

	// ErrCollision reports that applying an operation would create a
	// duplicate non-list sibling tag.
	ErrCollision = errors.New("duplicate sibling tag")

	// ErrPayload reports a malformed or missing operation payload.
	ErrPayload = errors.New("bad operation payload")

	// ErrSymbolExists reports a duplicate catalog registration.
	ErrSymbolExists = errors.New("symbol exists")
)
