package domain

import "errors"

// ErrNotFound marks lookups for entities that do not exist. Callers unwrap it
// with errors.Is to distinguish a missing stop or route from a storage fault.
var ErrNotFound = errors.New("not found")
