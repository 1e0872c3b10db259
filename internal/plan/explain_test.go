package plan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashagw/craneplan/internal/query"
)

func TestExplainOrderedIndexScan(t *testing.T) {
	p := newTestPlanner(t, 100000)

	phys, err := p.Plan(NewOrderNode(
		NewScanNode("bookings", nil, nil),
		[]SortKey{{Column: "created_at", Descending: true}},
	))
	require.NoError(t, err)

	report := Explain(phys)
	require.NotNil(t, report.Root)
	assert.Equal(t, "sort", report.Root.Operation)
	assert.Equal(t, SortEliminated, report.Root.SortStatus)
	assert.Equal(t, report.Root.Cost, report.TotalCost)

	require.Len(t, report.Root.Children, 1)
	scan := report.Root.Children[0]
	assert.Equal(t, "scan", scan.Operation)
	assert.Equal(t, "bookings", scan.Table)
	assert.Equal(t, "index scan", scan.Access)
	assert.Equal(t, "idx_bookings_created_at", scan.Index)
	assert.Equal(t, "all", scan.Partitions)
	assert.Equal(t, 100000, scan.EstimatedRows)
}

func TestExplainPrunedScan(t *testing.T) {
	p := newTestPlanner(t, 100000)

	phys, err := p.Plan(NewScanNode("bookings", []query.Predicate{
		query.NewComparison("check_in_date", query.OpGe, query.NewStringConstant("2025-01-01")),
		query.NewComparison("check_in_date", query.OpLt, query.NewStringConstant("2026-01-01")),
	}, nil))
	require.NoError(t, err)

	report := Explain(phys)
	assert.Equal(t, "scan", report.Root.Operation)
	assert.Equal(t, "full scan", report.Root.Access)
	assert.Equal(t, "p2025", report.Root.Partitions)
	assert.Empty(t, report.Root.Index)
	assert.Empty(t, report.Root.Children)
}

func TestExplainUnpartitionedScanOmitsPartitions(t *testing.T) {
	p := newTestPlanner(t, 100000)

	phys, err := p.Plan(NewScanNode("users", nil, nil))
	require.NoError(t, err)

	report := Explain(phys)
	assert.Empty(t, report.Root.Partitions)
}

func TestExplainEmptyScanReportsNoPartitions(t *testing.T) {
	p := newTestPlanner(t, 100000)

	phys, err := p.Plan(NewScanNode("bookings", []query.Predicate{
		query.NewEquals("status", query.NewStringConstant("pending")),
		query.NewEquals("status", query.NewStringConstant("cancelled")),
	}, nil))
	require.NoError(t, err)

	report := Explain(phys)
	assert.Equal(t, "none", report.Root.Partitions)
	assert.Equal(t, 0, report.Root.EstimatedRows)
	assert.Equal(t, 0.0, report.TotalCost)
}

func TestExplainJoinTree(t *testing.T) {
	p := newTestPlanner(t, 100000)

	phys, err := p.Plan(NewJoinNode(
		NewScanNode("bookings", []query.Predicate{
			query.NewEquals("status", query.NewStringConstant("pending")),
		}, nil),
		NewScanNode("users", nil, nil),
		"user_id", "id",
	))
	require.NoError(t, err)

	report := Explain(phys)
	assert.Equal(t, "nested loop join", report.Root.Operation)
	assert.Equal(t, "users_pkey", report.Root.Index)
	require.Len(t, report.Root.Children, 2)
	assert.Equal(t, "bookings", report.Root.Children[0].Table)
	assert.Equal(t, "users", report.Root.Children[1].Table)
	assert.Equal(t, "index scan", report.Root.Children[1].Access)
}

func TestExplainReportMarshalsToJSON(t *testing.T) {
	p := newTestPlanner(t, 100000)

	phys, err := p.Plan(NewScanNode("users", nil, nil))
	require.NoError(t, err)

	data, err := json.Marshal(Explain(phys))
	require.NoError(t, err)

	var decoded ExplainReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "scan", decoded.Root.Operation)
	assert.Equal(t, "full scan", decoded.Root.Access)
	assert.Equal(t, 50000, decoded.Root.EstimatedRows)
}
