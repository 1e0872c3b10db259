package plan

import "math"

// Config holds the planner's cost constants and default selectivities.
// The resulting costs are a relative-ordering heuristic, not a time
// predictor: their only hard contract is that fewer estimated rows or an
// eliminated sort never cost more.
type Config struct {
	// ScanUnitCost is the cost of examining one row sequentially.
	ScanUnitCost float64
	// IndexRowCost is the cost of examining one row through an index
	// (lookup plus base-table fetch, hence dearer than sequential).
	IndexRowCost float64
	// IndexOnlyFactor discounts IndexRowCost when the base-table fetch is
	// avoided entirely. Must be < 1.
	IndexOnlyFactor float64
	// SortUnitCost scales the rows*log2(rows) sort term.
	SortUnitCost float64
	// ScanOverhead is the flat startup cost of a full table scan.
	ScanOverhead float64
	// RangeSelectivity is the assumed fraction of rows matching a range
	// predicate when no histogram exists.
	RangeSelectivity float64
	// EqualitySelectivity is the assumed fraction of rows matching an
	// equality predicate on a column with no distinct-count estimate.
	EqualitySelectivity float64
}

// DefaultConfig returns the planner's default cost constants.
func DefaultConfig() Config {
	return Config{
		ScanUnitCost:        1.0,
		IndexRowCost:        2.0,
		IndexOnlyFactor:     0.5,
		SortUnitCost:        0.1,
		ScanOverhead:        100.0,
		RangeSelectivity:    1.0 / 3.0,
		EqualitySelectivity: 0.1,
	}
}

// accessCost prices reading rowsExamined rows through the given access kind.
func (c Config) accessCost(rowsExamined int, kind AccessKind) float64 {
	switch kind {
	case AccessIndexScan:
		return float64(rowsExamined) * c.IndexRowCost
	case AccessIndexOnlyScan:
		return float64(rowsExamined) * c.IndexRowCost * c.IndexOnlyFactor
	default:
		return float64(rowsExamined)*c.ScanUnitCost + c.ScanOverhead
	}
}

// sortCost prices an explicit sort of rows rows.
func (c Config) sortCost(rows int) float64 {
	if rows <= 0 {
		return 0
	}
	return float64(rows) * math.Log2(math.Max(float64(rows), 1)) * c.SortUnitCost
}
