package plan

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/golang/glog"

	"github.com/yashagw/craneplan/internal/catalog"
	"github.com/yashagw/craneplan/internal/query"
)

// Planner turns logical plans into costed physical plans against a fixed
// catalog. Planning is a pure computation: a Planner holds no mutable state
// and may be shared across goroutines.
type Planner struct {
	cat *catalog.Catalog
	cfg Config
}

// NewPlanner creates a planner over the given catalog and cost constants.
func NewPlanner(cat *catalog.Catalog, cfg Config) *Planner {
	return &Planner{
		cat: cat,
		cfg: cfg,
	}
}

// Plan selects the minimum-cost physical plan for a logical plan tree.
// Catalog inconsistencies (unknown tables) abort planning; they are never
// downgraded to a full-scan fallback.
func (p *Planner) Plan(root Node) (PhysicalNode, error) {
	if root == nil {
		return nil, errors.New("plan: nil logical plan")
	}
	return p.planNode(root, nil)
}

func (p *Planner) planNode(n Node, sortKeys []SortKey) (PhysicalNode, error) {
	switch node := n.(type) {
	case *ScanNode:
		return p.planScan(node, sortKeys)
	case *JoinNode:
		return p.planJoin(node)
	case *OrderNode:
		return p.planOrder(node)
	default:
		return nil, errors.Newf("plan: unknown logical node %T", n)
	}
}

// planScan picks the cheapest access path for a single table scan. The
// full-scan candidate is always present, so selection is total.
func (p *Planner) planScan(n *ScanNode, sortKeys []SortKey) (*PhysicalScan, error) {
	tbl, err := p.cat.Table(n.Table())
	if err != nil {
		return nil, err
	}
	indexes, err := p.cat.Indexes(n.Table())
	if err != nil {
		return nil, err
	}
	scheme, err := p.cat.Scheme(n.Table())
	if err != nil {
		return nil, err
	}
	tableRows, err := p.cat.TableRows(n.Table())
	if err != nil {
		return nil, err
	}

	ps := query.Analyze(n.Predicates())
	if ps.Empty() {
		glog.V(2).Infof("[PLAN] Table %s: contradictory predicates, zero-row plan", n.Table())
		return &PhysicalScan{
			table: n.Table(),
			path: AccessPath{
				kind:        AccessFullScan,
				partitioned: scheme != nil,
			},
			empty: true,
		}, nil
	}

	effectiveRows := float64(tableRows)
	path := AccessPath{}
	if scheme != nil {
		kept := prunePartitions(scheme, ps)
		total := len(scheme.Partitions())
		path.partitioned = true
		path.allPartitions = len(kept) == total
		path.partitions = make([]string, len(kept))
		for i, part := range kept {
			path.partitions[i] = part.Name()
		}
		effectiveRows *= float64(len(kept)) / float64(total)
	}

	candidates := p.enumerate(tbl, indexes, ps, sortKeys, n.Columns())

	best := -1
	bestMetric := math.Inf(1)
	for i, c := range candidates {
		examined := estimateRows(effectiveRows, c.examinedSelectivity)
		output := estimateRows(effectiveRows, c.outputSelectivity)
		metric := p.cfg.accessCost(examined, c.kind)
		if c.requiresSort && len(sortKeys) > 0 {
			metric += p.cfg.sortCost(output)
		}
		if metric < bestMetric || (metric == bestMetric && kindRank(c.kind) > kindRank(candidates[best].kind)) {
			best = i
			bestMetric = metric
		}
	}

	chosen := candidates[best]
	examined := estimateRows(effectiveRows, chosen.examinedSelectivity)
	output := estimateRows(effectiveRows, chosen.outputSelectivity)
	path.kind = chosen.kind
	path.estimatedRows = examined
	path.requiresSort = chosen.requiresSort && len(sortKeys) > 0
	if chosen.index != nil {
		path.indexName = chosen.index.Name()
	}

	glog.V(2).Infof("[PLAN] Table %s: chose %s (index=%q, examined=%d, output=%d)",
		n.Table(), path.kind, path.indexName, examined, output)

	return &PhysicalScan{
		table:      n.Table(),
		path:       path,
		outputRows: output,
		cost:       p.cfg.accessCost(examined, chosen.kind),
	}, nil
}

// planJoin builds a nested-loop join, driving from the side with the
// smaller standalone estimate. When the inner side is a base scan with an
// index on its join column, each probe becomes an index lookup.
func (p *Planner) planJoin(n *JoinNode) (*PhysicalJoin, error) {
	left, err := p.planNode(n.Left(), nil)
	if err != nil {
		return nil, err
	}
	right, err := p.planNode(n.Right(), nil)
	if err != nil {
		return nil, err
	}

	outer, inner := left, right
	outerCol, innerCol := n.LeftColumn(), n.RightColumn()
	if right.EstimatedRows() < left.EstimatedRows() {
		outer, inner = right, left
		outerCol, innerCol = n.RightColumn(), n.LeftColumn()
	}

	outerRows := outer.EstimatedRows()
	join := &PhysicalJoin{
		outer:       outer,
		inner:       inner,
		outerColumn: outerCol,
		innerColumn: innerCol,
	}

	perProbeRows := p.probeRows(inner, innerCol)
	if innerScan, ok := inner.(*PhysicalScan); ok && !innerScan.Empty() {
		if ix := p.probeIndex(innerScan.Table(), innerCol); ix != nil {
			// Inner access becomes an index lookup keyed by the outer row.
			probeCost := float64(perProbeRows) * p.cfg.IndexRowCost
			innerScan.path.kind = AccessIndexScan
			innerScan.path.indexName = ix.Name()
			innerScan.path.estimatedRows = perProbeRows
			innerScan.path.requiresSort = false
			innerScan.outputRows = perProbeRows
			innerScan.cost = probeCost
			join.probeIndex = ix.Name()
			join.rows = outerRows * perProbeRows
			join.cost = outer.Cost() + float64(outerRows)*probeCost
			glog.V(2).Infof("[PLAN] Join: outer=%d rows, inner probe via %s (%d rows/probe)",
				outerRows, ix.Name(), perProbeRows)
			return join, nil
		}
	}

	// No usable index: the inner side is re-evaluated once per outer row.
	join.rows = outerRows * perProbeRows
	join.cost = outer.Cost() + float64(outerRows)*inner.Cost()
	glog.V(2).Infof("[PLAN] Join: outer=%d rows, inner rescan (%d rows/probe)", outerRows, perProbeRows)
	return join, nil
}

// probeRows estimates how many inner rows match one outer join value.
func (p *Planner) probeRows(inner PhysicalNode, innerCol string) int {
	innerRows := inner.EstimatedRows()
	if innerRows == 0 {
		return 0
	}
	selectivity := p.cfg.EqualitySelectivity
	if innerScan, ok := inner.(*PhysicalScan); ok {
		if distinct, found := p.cat.Distinct(innerScan.Table(), innerCol); found && distinct > 0 {
			selectivity = 1.0 / float64(distinct)
		}
	}
	rows := estimateRows(float64(innerRows), selectivity)
	if rows < 1 {
		rows = 1
	}
	return rows
}

// probeIndex returns an index on the table whose leading column is the join
// column, or nil.
func (p *Planner) probeIndex(table, column string) *catalog.Index {
	indexes, err := p.cat.Indexes(table)
	if err != nil {
		return nil
	}
	for _, ix := range indexes {
		if ix.LeadingColumn() == column {
			return ix
		}
	}
	return nil
}

// planOrder plans the sort requirement: when the child is a base scan it
// may absorb the order into its access path, eliminating the sort.
func (p *Planner) planOrder(n *OrderNode) (*PhysicalOrder, error) {
	keys := n.Keys()

	if scanChild, ok := n.Child().(*ScanNode); ok {
		child, err := p.planScan(scanChild, keys)
		if err != nil {
			return nil, err
		}
		eliminated := child.Empty() || !child.Path().RequiresSort()
		order := &PhysicalOrder{
			child:      child,
			keys:       keys,
			eliminated: eliminated,
			cost:       child.Cost(),
		}
		if !eliminated {
			order.cost += p.cfg.sortCost(child.EstimatedRows())
		}
		return order, nil
	}

	child, err := p.planNode(n.Child(), nil)
	if err != nil {
		return nil, err
	}
	return &PhysicalOrder{
		child: child,
		keys:  keys,
		cost:  child.Cost() + p.cfg.sortCost(child.EstimatedRows()),
	}, nil
}

// estimateRows scales a row count by a selectivity, rounding to nearest.
func estimateRows(rows float64, selectivity float64) int {
	return int(math.Round(rows * selectivity))
}

// kindRank orders access kinds for deterministic tie-breaking: index-only
// beats index scan beats full scan.
func kindRank(k AccessKind) int {
	switch k {
	case AccessIndexOnlyScan:
		return 2
	case AccessIndexScan:
		return 1
	default:
		return 0
	}
}
