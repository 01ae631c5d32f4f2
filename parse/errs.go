package parse

import "errors"

// ErrMalformed is the fatal document error: a structurally broken
// source cannot be patched at all.
var ErrMalformed = errors.New("malformed document")
