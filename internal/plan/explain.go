package plan

import "strings"

// Sort status values reported per explain node.
const (
	SortEliminated = "eliminated"
	SortRequired   = "required"
	SortNotNeeded  = "not needed"
)

// ExplainNode is one row of an explain report, mirroring a physical plan node.
type ExplainNode struct {
	Operation     string         `json:"operation"`
	Table         string         `json:"table,omitempty"`
	Access        string         `json:"access,omitempty"`
	Index         string         `json:"index,omitempty"`
	Partitions    string         `json:"partitions,omitempty"`
	EstimatedRows int            `json:"estimated_rows"`
	SortStatus    string         `json:"sort_status,omitempty"`
	Cost          float64        `json:"cost"`
	Children      []*ExplainNode `json:"children,omitempty"`
}

// ExplainReport is the externally consumed projection of a physical plan:
// a tree of ExplainNodes plus the total plan cost.
type ExplainReport struct {
	Root      *ExplainNode `json:"root"`
	TotalCost float64      `json:"total_cost"`
}

// Explain renders a physical plan as an ExplainReport. It is a pure
// read-only projection.
func Explain(root PhysicalNode) *ExplainReport {
	return &ExplainReport{
		Root:      explainNode(root),
		TotalCost: root.Cost(),
	}
}

func explainNode(n PhysicalNode) *ExplainNode {
	switch node := n.(type) {
	case *PhysicalScan:
		path := node.Path()
		en := &ExplainNode{
			Operation:     "scan",
			Table:         node.Table(),
			Access:        path.Kind().String(),
			Index:         path.IndexName(),
			EstimatedRows: path.EstimatedRows(),
			SortStatus:    SortNotNeeded,
			Cost:          node.Cost(),
		}
		if path.RequiresSort() {
			en.SortStatus = SortRequired
		}
		if path.Partitioned() {
			switch {
			case node.Empty() || len(path.Partitions()) == 0:
				en.Partitions = "none"
			case path.AllPartitions():
				en.Partitions = "all"
			default:
				en.Partitions = strings.Join(path.Partitions(), ",")
			}
		}
		return en
	case *PhysicalJoin:
		return &ExplainNode{
			Operation:     "nested loop join",
			Index:         node.ProbeIndex(),
			EstimatedRows: node.EstimatedRows(),
			Cost:          node.Cost(),
			Children: []*ExplainNode{
				explainNode(node.Outer()),
				explainNode(node.Inner()),
			},
		}
	case *PhysicalOrder:
		status := SortRequired
		if node.Eliminated() {
			status = SortEliminated
		}
		return &ExplainNode{
			Operation:     "sort",
			EstimatedRows: node.EstimatedRows(),
			SortStatus:    status,
			Cost:          node.Cost(),
			Children: []*ExplainNode{
				explainNode(node.Child()),
			},
		}
	default:
		return &ExplainNode{Operation: "unknown"}
	}
}
