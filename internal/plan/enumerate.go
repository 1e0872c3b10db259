package plan

import (
	"github.com/golang/glog"

	"github.com/yashagw/craneplan/internal/catalog"
	"github.com/yashagw/craneplan/internal/query"
)

// candidate is one possible way to access a table, before costing.
type candidate struct {
	kind  AccessKind
	index *catalog.Index
	// matchedColumns is the length of the index prefix served by
	// predicates (equality prefix, optionally ending in one range).
	matchedColumns int
	// examinedSelectivity is the fraction of the table's rows the access
	// path itself must examine.
	examinedSelectivity float64
	// outputSelectivity is the fraction of rows surviving all predicates,
	// including residual ones applied after the access path.
	outputSelectivity float64
	requiresSort      bool
}

// enumerate lists the candidate access paths for a table: the full scan
// (always present, guaranteeing totality), one candidate per sargable
// index, and unfiltered ordered-index candidates that can stand in for an
// explicit sort.
func (p *Planner) enumerate(tbl *catalog.Table, indexes []*catalog.Index, ps *query.PredicateSet, sortKeys []SortKey, columns []string) []candidate {
	outputSel := p.totalSelectivity(tbl.Name(), ps)
	referenced := referencedColumns(tbl, ps, sortKeys, columns)

	candidates := []candidate{{
		kind:                AccessFullScan,
		examinedSelectivity: 1.0,
		outputSelectivity:   outputSel,
		requiresSort:        len(sortKeys) > 0,
	}}

	for _, ix := range indexes {
		matched, examinedSel := p.matchIndexPrefix(tbl.Name(), ix, ps)
		if matched == 0 {
			// No filtering use, but an unfiltered ordered scan can still
			// replace a sort over the whole table.
			if len(sortKeys) == 0 || !indexSatisfiesOrder(ix, 0, sortKeys) {
				continue
			}
			examinedSel = 1.0
		}

		kind := AccessIndexScan
		if ix.Covers(referenced) {
			kind = AccessIndexOnlyScan
		}

		c := candidate{
			kind:                kind,
			index:               ix,
			matchedColumns:      matched,
			examinedSelectivity: examinedSel,
			outputSelectivity:   outputSel,
			requiresSort:        len(sortKeys) > 0 && !indexSatisfiesOrder(ix, equalityPrefixLen(ix, ps), sortKeys),
		}
		candidates = append(candidates, c)
		glog.V(2).Infof("[ENUM] Table %s index %s: matched=%d examinedSel=%.4f requiresSort=%v kind=%s",
			tbl.Name(), ix.Name(), matched, examinedSel, c.requiresSort, kind)
	}

	return candidates
}

// matchIndexPrefix applies the prefix rule: the longest run of index key
// columns covered by equality predicates, optionally followed by a single
// range or in-list predicate on the next column. Returns the matched length
// and the combined selectivity of the matched predicates.
func (p *Planner) matchIndexPrefix(table string, ix *catalog.Index, ps *query.PredicateSet) (int, float64) {
	matched := 0
	selectivity := 1.0
	for _, kc := range ix.Columns() {
		b := ps.Bounds(kc.Name)
		if b == nil {
			break
		}
		if b.IsEquality() {
			matched++
			selectivity *= p.boundsSelectivity(table, b)
			continue
		}
		if b.IsInList() || b.HasRange() {
			// One non-equality predicate ends the sargable prefix.
			matched++
			selectivity *= p.boundsSelectivity(table, b)
		}
		break
	}
	if matched == 0 {
		return 0, 1.0
	}
	return matched, selectivity
}

// equalityPrefixLen returns how many leading index columns are pinned by
// equality predicates. Sort keys may begin right after this prefix.
func equalityPrefixLen(ix *catalog.Index, ps *query.PredicateSet) int {
	n := 0
	for _, kc := range ix.Columns() {
		b := ps.Bounds(kc.Name)
		if b == nil || !b.IsEquality() {
			break
		}
		n++
	}
	return n
}

// indexSatisfiesOrder reports whether scanning the index delivers the
// required sort order: the sort keys must match the index key columns
// starting at position start, with identical directions (reverse scans are
// not assumed).
func indexSatisfiesOrder(ix *catalog.Index, start int, sortKeys []SortKey) bool {
	cols := ix.Columns()
	if len(sortKeys) > len(cols)-start {
		return false
	}
	for i, key := range sortKeys {
		kc := cols[start+i]
		if kc.Name != key.Column || kc.Descending != key.Descending {
			return false
		}
	}
	return true
}

// boundsSelectivity estimates the fraction of rows matching one column's
// normalized bounds.
func (p *Planner) boundsSelectivity(table string, b *query.ColumnBounds) float64 {
	if b.Empty() {
		return 0
	}
	if b.IsEquality() {
		if distinct, ok := p.cat.Distinct(table, b.Column()); ok && distinct > 0 {
			return 1.0 / float64(distinct)
		}
		return p.cfg.EqualitySelectivity
	}
	if b.IsInList() {
		k := float64(len(b.InValues()))
		if distinct, ok := p.cat.Distinct(table, b.Column()); ok && distinct > 0 {
			sel := k / float64(distinct)
			if sel > 1 {
				return 1
			}
			return sel
		}
		sel := k * p.cfg.EqualitySelectivity
		if sel > 1 {
			return 1
		}
		return sel
	}
	return p.cfg.RangeSelectivity
}

// totalSelectivity multiplies the selectivities of every constrained column.
func (p *Planner) totalSelectivity(table string, ps *query.PredicateSet) float64 {
	selectivity := 1.0
	for _, col := range ps.Columns() {
		selectivity *= p.boundsSelectivity(table, ps.Bounds(col))
	}
	return selectivity
}

// referencedColumns collects every column the query touches on the table:
// selected, filtered, and sorted. An empty selection list means the query
// reads all columns.
func referencedColumns(tbl *catalog.Table, ps *query.PredicateSet, sortKeys []SortKey, columns []string) []string {
	if len(columns) == 0 {
		return tbl.Schema().Fields()
	}
	seen := make(map[string]bool)
	var result []string
	add := func(col string) {
		if !seen[col] {
			seen[col] = true
			result = append(result, col)
		}
	}
	for _, col := range columns {
		add(col)
	}
	for _, col := range ps.Columns() {
		add(col)
	}
	for _, key := range sortKeys {
		add(key.Column)
	}
	return result
}
