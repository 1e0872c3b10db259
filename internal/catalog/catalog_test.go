package catalog

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashagw/craneplan/internal/query"
)

func bookingsTable() *Table {
	schema := NewSchema()
	schema.AddIntField("id")
	schema.AddIntField("user_id")
	schema.AddStringField("status")
	schema.AddDateField("check_in_date")
	schema.AddDateField("created_at")
	return NewTable("bookings", schema, []string{"id"})
}

func TestLoadAndLookup(t *testing.T) {
	idx := NewIndex("bookings", "idx_bookings_created_at", []IndexColumn{{Name: "created_at", Descending: true}}, false, nil)
	scheme := NewPartitionScheme("bookings", "check_in_date", TransformYear, []Partition{
		NewPartition("p2024", query.NewIntConstant(2025)),
		NewPartition("p2025", query.NewIntConstant(2026)),
		NewCatchAllPartition("p_future"),
	})
	stats := NewStats()
	stats.SetTableRows("bookings", 100000)
	stats.SetDistinct("bookings", "status", 4)

	cat, err := Load([]*Table{bookingsTable()}, []*Index{idx}, []*PartitionScheme{scheme}, stats)
	require.NoError(t, err)

	tbl, err := cat.Table("bookings")
	require.NoError(t, err)
	assert.Equal(t, "bookings", tbl.Name())
	assert.Equal(t, []string{"id"}, tbl.PrimaryKey())

	indexes, err := cat.Indexes("bookings")
	require.NoError(t, err)
	require.Len(t, indexes, 1)
	assert.Equal(t, "idx_bookings_created_at", indexes[0].Name())
	assert.True(t, indexes[0].Columns()[0].Descending)

	got, err := cat.Scheme("bookings")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"p2024", "p2025", "p_future"}, got.PartitionNames())

	rows, err := cat.TableRows("bookings")
	require.NoError(t, err)
	assert.Equal(t, 100000, rows)

	distinct, ok := cat.Distinct("bookings", "status")
	require.True(t, ok)
	assert.Equal(t, 4, distinct)
}

func TestLookupUnknownTable(t *testing.T) {
	cat, err := Load([]*Table{bookingsTable()}, nil, nil, nil)
	require.NoError(t, err)

	_, err = cat.Table("reviews")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = cat.Indexes("reviews")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = cat.Scheme("reviews")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = cat.Index("bookings", "idx_missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSchemeNilForUnpartitionedTable(t *testing.T) {
	cat, err := Load([]*Table{bookingsTable()}, nil, nil, nil)
	require.NoError(t, err)

	scheme, err := cat.Scheme("bookings")
	require.NoError(t, err)
	assert.Nil(t, scheme)
}

func TestLoadRejectsIndexOnUnknownTable(t *testing.T) {
	idx := NewIndex("reviews", "idx_reviews_rating", []IndexColumn{{Name: "rating"}}, false, nil)
	_, err := Load([]*Table{bookingsTable()}, []*Index{idx}, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
	assert.Contains(t, err.Error(), "reviews")
}

func TestLoadRejectsIndexOnUnknownColumn(t *testing.T) {
	idx := NewIndex("bookings", "idx_bad", []IndexColumn{{Name: "no_such_column"}}, false, nil)
	_, err := Load([]*Table{bookingsTable()}, []*Index{idx}, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
	assert.Contains(t, err.Error(), "no_such_column")
}

func TestLoadRejectsBadCoveringColumn(t *testing.T) {
	idx := NewIndex("bookings", "idx_bad", []IndexColumn{{Name: "status"}}, false, []string{"ghost"})
	_, err := Load([]*Table{bookingsTable()}, []*Index{idx}, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
}

func TestLoadRejectsNonIncreasingBounds(t *testing.T) {
	scheme := NewPartitionScheme("bookings", "check_in_date", TransformYear, []Partition{
		NewPartition("p2025", query.NewIntConstant(2026)),
		NewPartition("p2024", query.NewIntConstant(2025)),
		NewCatchAllPartition("p_future"),
	})
	_, err := Load([]*Table{bookingsTable()}, nil, []*PartitionScheme{scheme}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
}

func TestLoadRejectsBoundedLastPartition(t *testing.T) {
	scheme := NewPartitionScheme("bookings", "check_in_date", TransformYear, []Partition{
		NewPartition("p2024", query.NewIntConstant(2025)),
		NewPartition("p2025", query.NewIntConstant(2026)),
	})
	_, err := Load([]*Table{bookingsTable()}, nil, []*PartitionScheme{scheme}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
	assert.Contains(t, err.Error(), "unbounded")
}

func TestLoadRejectsUnboundedMiddlePartition(t *testing.T) {
	scheme := NewPartitionScheme("bookings", "check_in_date", TransformYear, []Partition{
		NewCatchAllPartition("p_all"),
		NewCatchAllPartition("p_more"),
	})
	_, err := Load([]*Table{bookingsTable()}, nil, []*PartitionScheme{scheme}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
}

func TestLoadRejectsSchemeOnUnknownColumn(t *testing.T) {
	scheme := NewPartitionScheme("bookings", "no_such_column", TransformNone, []Partition{
		NewCatchAllPartition("p_all"),
	})
	_, err := Load([]*Table{bookingsTable()}, nil, []*PartitionScheme{scheme}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
}

func TestLoadRejectsDuplicates(t *testing.T) {
	_, err := Load([]*Table{bookingsTable(), bookingsTable()}, nil, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))

	idx := func() *Index {
		return NewIndex("bookings", "idx_status", []IndexColumn{{Name: "status"}}, false, nil)
	}
	_, err = Load([]*Table{bookingsTable()}, []*Index{idx(), idx()}, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
}

func TestIndexCovers(t *testing.T) {
	idx := NewIndex("bookings", "idx_user_status", []IndexColumn{{Name: "user_id"}, {Name: "status"}}, false, []string{"created_at"})

	assert.True(t, idx.Covers([]string{"user_id"}))
	assert.True(t, idx.Covers([]string{"status", "created_at"}))
	assert.False(t, idx.Covers([]string{"user_id", "check_in_date"}))
	assert.True(t, idx.Covers(nil))
}
