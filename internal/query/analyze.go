package query

import (
	"strings"

	"github.com/golang/glog"
)

// PredicateSet is the result of analyzing a Scan node's predicates: one
// normalized ColumnBounds per referenced column. A PredicateSet whose
// intersection is provably empty short-circuits planning to a zero-row plan.
type PredicateSet struct {
	bounds  map[string]*ColumnBounds
	columns []string
	empty   bool
}

// Analyze groups predicates by referenced column and intersects them into
// normalized per-column bounds. Contradictory predicates (e.g., x > 10 and
// x < 5) do not fail; they mark the set empty.
func Analyze(predicates []Predicate) *PredicateSet {
	ps := &PredicateSet{
		bounds: make(map[string]*ColumnBounds),
	}

	for _, pred := range predicates {
		b, exists := ps.bounds[pred.Column()]
		if !exists {
			b = &ColumnBounds{column: pred.Column()}
			ps.bounds[pred.Column()] = b
			ps.columns = append(ps.columns, pred.Column())
		}

		switch pred.Operator() {
		case OpEq:
			b.applyEquals(pred.Value())
		case OpIn:
			b.applyIn(pred.Values())
		case OpGt:
			b.applyLow(pred.Value(), false)
		case OpGe:
			b.applyLow(pred.Value(), true)
		case OpLt:
			b.applyHigh(pred.Value(), false)
		case OpLe:
			b.applyHigh(pred.Value(), true)
		}
	}

	for _, col := range ps.columns {
		b := ps.bounds[col]
		b.normalize()
		if b.Empty() {
			glog.V(2).Infof("[ANALYZE] Column %s has contradictory predicates, result is empty", col)
			ps.empty = true
		}
	}

	return ps
}

// Bounds returns the normalized bounds for a column, or nil if the column
// is unconstrained.
func (ps *PredicateSet) Bounds(column string) *ColumnBounds {
	return ps.bounds[column]
}

// Columns returns the constrained column names in predicate order.
func (ps *PredicateSet) Columns() []string {
	result := make([]string, len(ps.columns))
	copy(result, ps.columns)
	return result
}

// HasEquality returns true if the column is pinned to a single value.
func (ps *PredicateSet) HasEquality(column string) bool {
	b := ps.bounds[column]
	return b != nil && b.IsEquality()
}

// Empty returns true if the predicate set can match no rows at all.
func (ps *PredicateSet) Empty() bool {
	return ps.empty
}

// String returns a string representation of the predicate set.
func (ps *PredicateSet) String() string {
	if len(ps.columns) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(ps.columns))
	for _, col := range ps.columns {
		parts = append(parts, ps.bounds[col].String())
	}
	return strings.Join(parts, " and ")
}
