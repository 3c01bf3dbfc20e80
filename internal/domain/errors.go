package domain

import "errors"

// ErrNotFound is returned by every store when a mutation or lookup names an id
// absent from the authoritative collection. State is left untouched.
var ErrNotFound = errors.New("record not found")
