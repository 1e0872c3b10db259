package catalog

import "github.com/cockroachdb/errors"

// ErrSchema marks malformed catalog input: an index or partition scheme
// referencing an unknown table/column, or non-monotonic partition bounds.
// Load never returns a partially constructed catalog alongside it.
var ErrSchema = errors.New("malformed catalog")

// ErrNotFound marks a lookup of an unknown table, index, or partition scheme.
var ErrNotFound = errors.New("not found")

func schemaErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrSchema)
}

func notFoundErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrNotFound)
}
