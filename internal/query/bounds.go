package query

import (
	"fmt"
	"sort"
	"strings"
)

// ColumnBounds is the normalized constraint on a single column after all
// predicates referencing it have been intersected: at most one equality
// value, or an in-list, or a (possibly half-open) interval.
type ColumnBounds struct {
	column   string
	eq       *Constant
	in       []Constant
	low      *Constant
	lowIncl  bool
	high     *Constant
	highIncl bool
	empty    bool
}

// Column returns the constrained column name.
func (b *ColumnBounds) Column() string {
	return b.column
}

// IsEquality returns true if the column is pinned to a single value.
func (b *ColumnBounds) IsEquality() bool {
	return b.eq != nil
}

// EqValue returns the equality value. Only valid when IsEquality is true.
func (b *ColumnBounds) EqValue() Constant {
	return *b.eq
}

// IsInList returns true if the column is constrained to a finite value list.
func (b *ColumnBounds) IsInList() bool {
	return len(b.in) > 0
}

// InValues returns the in-list values in sorted order.
func (b *ColumnBounds) InValues() []Constant {
	return b.in
}

// HasRange returns true if the column carries a lower or upper bound.
func (b *ColumnBounds) HasRange() bool {
	return b.low != nil || b.high != nil
}

// Low returns the lower bound and whether it is inclusive. The bound is nil
// when the range is unbounded below.
func (b *ColumnBounds) Low() (*Constant, bool) {
	return b.low, b.lowIncl
}

// High returns the upper bound and whether it is inclusive. The bound is nil
// when the range is unbounded above.
func (b *ColumnBounds) High() (*Constant, bool) {
	return b.high, b.highIncl
}

// Empty returns true if the intersection of the column's predicates is
// provably empty (e.g., x > 10 and x < 5).
func (b *ColumnBounds) Empty() bool {
	return b.empty
}

// String returns a string representation of the bounds.
func (b *ColumnBounds) String() string {
	if b.empty {
		return fmt.Sprintf("%s: empty", b.column)
	}
	if b.eq != nil {
		return fmt.Sprintf("%s = %s", b.column, b.eq)
	}
	if len(b.in) > 0 {
		parts := make([]string, len(b.in))
		for i, v := range b.in {
			parts[i] = v.String()
		}
		return fmt.Sprintf("%s in (%s)", b.column, strings.Join(parts, ", "))
	}
	var sb strings.Builder
	sb.WriteString(b.column)
	sb.WriteString(":")
	if b.low != nil {
		if b.lowIncl {
			sb.WriteString(" >= ")
		} else {
			sb.WriteString(" > ")
		}
		sb.WriteString(b.low.String())
	}
	if b.high != nil {
		if b.highIncl {
			sb.WriteString(" <= ")
		} else {
			sb.WriteString(" < ")
		}
		sb.WriteString(b.high.String())
	}
	return sb.String()
}

func (b *ColumnBounds) applyEquals(v Constant) {
	if b.eq != nil {
		if !b.eq.Equals(v) {
			b.empty = true
		}
		return
	}
	b.eq = &v
}

func (b *ColumnBounds) applyIn(values []Constant) {
	deduped := dedupeSorted(values)
	if len(deduped) == 0 {
		// An empty value list matches nothing.
		b.empty = true
		return
	}
	if len(b.in) == 0 {
		b.in = deduped
		return
	}
	var kept []Constant
	for _, v := range b.in {
		for _, w := range deduped {
			if v.Equals(w) {
				kept = append(kept, v)
				break
			}
		}
	}
	b.in = kept
	if len(b.in) == 0 {
		b.empty = true
	}
}

func (b *ColumnBounds) applyLow(v Constant, inclusive bool) {
	if b.low == nil {
		b.low = &v
		b.lowIncl = inclusive
		return
	}
	cmp := v.CompareTo(*b.low)
	if cmp > 0 || (cmp == 0 && !inclusive) {
		b.low = &v
		b.lowIncl = inclusive
	}
}

func (b *ColumnBounds) applyHigh(v Constant, inclusive bool) {
	if b.high == nil {
		b.high = &v
		b.highIncl = inclusive
		return
	}
	cmp := v.CompareTo(*b.high)
	if cmp < 0 || (cmp == 0 && !inclusive) {
		b.high = &v
		b.highIncl = inclusive
	}
}

// normalize reconciles equality, in-list, and range constraints after all
// predicates have been applied, detecting contradictions and promoting
// single-value in-lists to equalities.
func (b *ColumnBounds) normalize() {
	if b.empty {
		return
	}

	if b.low != nil && b.high != nil {
		cmp := b.low.CompareTo(*b.high)
		if cmp > 0 {
			b.empty = true
			return
		}
		if cmp == 0 {
			if b.lowIncl && b.highIncl {
				// Degenerate closed interval: x >= v and x <= v is x = v.
				b.applyEquals(*b.low)
				b.low, b.high = nil, nil
			} else {
				b.empty = true
				return
			}
		}
	}

	if len(b.in) > 0 {
		var kept []Constant
		for _, v := range b.in {
			if b.withinRange(v) {
				kept = append(kept, v)
			}
		}
		b.in = kept
		if len(b.in) == 0 {
			b.empty = true
			return
		}
		b.low, b.high = nil, nil
		if len(b.in) == 1 {
			b.applyEquals(b.in[0])
			b.in = nil
		}
	}

	if b.eq != nil {
		if len(b.in) > 0 {
			found := false
			for _, v := range b.in {
				if v.Equals(*b.eq) {
					found = true
					break
				}
			}
			if !found {
				b.empty = true
				return
			}
			b.in = nil
		}
		if !b.withinRange(*b.eq) {
			b.empty = true
			return
		}
		b.low, b.high = nil, nil
	}
}

func (b *ColumnBounds) withinRange(v Constant) bool {
	if b.low != nil {
		cmp := v.CompareTo(*b.low)
		if cmp < 0 || (cmp == 0 && !b.lowIncl) {
			return false
		}
	}
	if b.high != nil {
		cmp := v.CompareTo(*b.high)
		if cmp > 0 || (cmp == 0 && !b.highIncl) {
			return false
		}
	}
	return true
}

func dedupeSorted(values []Constant) []Constant {
	sorted := make([]Constant, len(values))
	copy(sorted, values)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CompareTo(sorted[j]) < 0
	})
	var result []Constant
	for _, v := range sorted {
		if len(result) == 0 || !result[len(result)-1].Equals(v) {
			result = append(result, v)
		}
	}
	return result
}
