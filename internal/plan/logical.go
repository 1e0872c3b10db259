package plan

import (
	"github.com/yashagw/craneplan/internal/query"
)

// Node is a node of the logical plan tree handed to the planner by an
// external parser/binder: base-table scans with predicates, equality
// joins, and sort requirements.
type Node interface {
	logicalNode()
}

var (
	_ Node = (*ScanNode)(nil)
	_ Node = (*JoinNode)(nil)
	_ Node = (*OrderNode)(nil)
)

// SortKey is one ORDER BY key: a column and its direction.
type SortKey struct {
	Column     string
	Descending bool
}

// ScanNode reads a base table, filtered by a conjunction of predicates.
// The columns slice lists the columns the query needs from the table; an
// empty slice means all of them.
type ScanNode struct {
	table      string
	predicates []query.Predicate
	columns    []string
}

// NewScanNode creates a logical scan of a table.
func NewScanNode(table string, predicates []query.Predicate, columns []string) *ScanNode {
	return &ScanNode{
		table:      table,
		predicates: predicates,
		columns:    columns,
	}
}

// Table returns the scanned table name.
func (n *ScanNode) Table() string {
	return n.table
}

// Predicates returns the scan's filter predicates.
func (n *ScanNode) Predicates() []query.Predicate {
	result := make([]query.Predicate, len(n.predicates))
	copy(result, n.predicates)
	return result
}

// Columns returns the columns the query reads from the table; empty means all.
func (n *ScanNode) Columns() []string {
	result := make([]string, len(n.columns))
	copy(result, n.columns)
	return result
}

func (n *ScanNode) logicalNode() {}

// JoinNode is an equality join between two subtrees: leftColumn of the
// left side equals rightColumn of the right side.
type JoinNode struct {
	left        Node
	right       Node
	leftColumn  string
	rightColumn string
}

// NewJoinNode creates a logical equality join.
func NewJoinNode(left, right Node, leftColumn, rightColumn string) *JoinNode {
	return &JoinNode{
		left:        left,
		right:       right,
		leftColumn:  leftColumn,
		rightColumn: rightColumn,
	}
}

// Left returns the left input.
func (n *JoinNode) Left() Node {
	return n.left
}

// Right returns the right input.
func (n *JoinNode) Right() Node {
	return n.right
}

// LeftColumn returns the join column of the left input.
func (n *JoinNode) LeftColumn() string {
	return n.leftColumn
}

// RightColumn returns the join column of the right input.
func (n *JoinNode) RightColumn() string {
	return n.rightColumn
}

func (n *JoinNode) logicalNode() {}

// OrderNode requires its child's output in the given key order.
type OrderNode struct {
	child Node
	keys  []SortKey
}

// NewOrderNode creates a logical sort requirement.
func NewOrderNode(child Node, keys []SortKey) *OrderNode {
	return &OrderNode{
		child: child,
		keys:  keys,
	}
}

// Child returns the ordered input.
func (n *OrderNode) Child() Node {
	return n.child
}

// Keys returns the required sort keys.
func (n *OrderNode) Keys() []SortKey {
	result := make([]SortKey, len(n.keys))
	copy(result, n.keys)
	return result
}

func (n *OrderNode) logicalNode() {}
