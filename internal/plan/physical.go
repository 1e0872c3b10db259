package plan

// AccessKind identifies how a physical scan reaches its rows.
type AccessKind int

const (
	AccessFullScan AccessKind = iota
	AccessIndexScan
	AccessIndexOnlyScan
)

// String returns the access kind's EXPLAIN spelling.
func (k AccessKind) String() string {
	switch k {
	case AccessIndexScan:
		return "index scan"
	case AccessIndexOnlyScan:
		return "index only scan"
	default:
		return "full scan"
	}
}

// AccessPath is the chosen way to read a table: the access kind, the index
// used (if any), the partitions left after pruning, the estimated number of
// rows examined, and whether the path fails to deliver the required order.
type AccessPath struct {
	kind          AccessKind
	indexName     string
	partitions    []string
	allPartitions bool
	partitioned   bool
	estimatedRows int
	requiresSort  bool
}

// Kind returns the access kind.
func (a AccessPath) Kind() AccessKind {
	return a.kind
}

// IndexName returns the chosen index name, or "" for a full scan.
func (a AccessPath) IndexName() string {
	return a.indexName
}

// Partitions returns the partitions to scan. Only meaningful when the table
// is partitioned; when AllPartitions is true the list holds every partition.
func (a AccessPath) Partitions() []string {
	result := make([]string, len(a.partitions))
	copy(result, a.partitions)
	return result
}

// AllPartitions returns true when pruning removed nothing.
func (a AccessPath) AllPartitions() bool {
	return a.allPartitions
}

// Partitioned returns true when the table has a partition scheme.
func (a AccessPath) Partitioned() bool {
	return a.partitioned
}

// EstimatedRows returns the estimated number of rows the path examines.
func (a AccessPath) EstimatedRows() int {
	return a.estimatedRows
}

// RequiresSort returns true when the path does not deliver the order the
// query requires.
func (a AccessPath) RequiresSort() bool {
	return a.requiresSort
}

// PhysicalNode is a node of the selected physical plan. Cost is cumulative
// over the node's subtree; EstimatedRows is the node's output estimate.
type PhysicalNode interface {
	EstimatedRows() int
	Cost() float64
}

var (
	_ PhysicalNode = (*PhysicalScan)(nil)
	_ PhysicalNode = (*PhysicalJoin)(nil)
	_ PhysicalNode = (*PhysicalOrder)(nil)
)

// PhysicalScan is a base-table scan with a chosen access path. Its output
// estimate accounts for all predicates, including those the access path
// cannot serve and that are applied as a residual filter.
type PhysicalScan struct {
	table      string
	path       AccessPath
	outputRows int
	cost       float64
	empty      bool
}

// Table returns the scanned table name.
func (p *PhysicalScan) Table() string {
	return p.table
}

// Path returns the chosen access path.
func (p *PhysicalScan) Path() AccessPath {
	return p.path
}

// EstimatedRows returns the estimated output row count after all predicates.
func (p *PhysicalScan) EstimatedRows() int {
	return p.outputRows
}

// Cost returns the scan's estimated cost.
func (p *PhysicalScan) Cost() float64 {
	return p.cost
}

// Empty returns true for a provably zero-row scan (contradictory predicates).
func (p *PhysicalScan) Empty() bool {
	return p.empty
}

// PhysicalJoin is a nested-loop join: the outer side drives, the inner side
// is re-read (or index-probed) once per outer row.
type PhysicalJoin struct {
	outer       PhysicalNode
	inner       PhysicalNode
	outerColumn string
	innerColumn string
	probeIndex  string
	rows        int
	cost        float64
}

// Outer returns the driving side.
func (p *PhysicalJoin) Outer() PhysicalNode {
	return p.outer
}

// Inner returns the probed side.
func (p *PhysicalJoin) Inner() PhysicalNode {
	return p.inner
}

// OuterColumn returns the join column of the driving side.
func (p *PhysicalJoin) OuterColumn() string {
	return p.outerColumn
}

// InnerColumn returns the join column of the probed side.
func (p *PhysicalJoin) InnerColumn() string {
	return p.innerColumn
}

// ProbeIndex returns the inner-side index used for lookups, or "" when the
// inner side is rescanned per outer row.
func (p *PhysicalJoin) ProbeIndex() string {
	return p.probeIndex
}

// EstimatedRows returns the estimated join output row count.
func (p *PhysicalJoin) EstimatedRows() int {
	return p.rows
}

// Cost returns the cumulative cost of the join subtree.
func (p *PhysicalJoin) Cost() float64 {
	return p.cost
}

// PhysicalOrder is a sort requirement: either satisfied for free by the
// child's access path (eliminated) or paid for with an explicit sort.
type PhysicalOrder struct {
	child      PhysicalNode
	keys       []SortKey
	eliminated bool
	cost       float64
}

// Child returns the ordered input.
func (p *PhysicalOrder) Child() PhysicalNode {
	return p.child
}

// Keys returns the required sort keys.
func (p *PhysicalOrder) Keys() []SortKey {
	result := make([]SortKey, len(p.keys))
	copy(result, p.keys)
	return result
}

// Eliminated returns true when the child already delivers the required order.
func (p *PhysicalOrder) Eliminated() bool {
	return p.eliminated
}

// EstimatedRows returns the child's output estimate (sorting changes nothing).
func (p *PhysicalOrder) EstimatedRows() int {
	return p.child.EstimatedRows()
}

// Cost returns the cumulative cost of the subtree including the sort, if any.
func (p *PhysicalOrder) Cost() float64 {
	return p.cost
}
