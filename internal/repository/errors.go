package repository

import "errors"

// ErrNotFound is returned when a lookup resolves to no row. Callers at the
// ingestion boundary drop the message instead of retrying.
var ErrNotFound = errors.New("not found")
