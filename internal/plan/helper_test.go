package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yashagw/craneplan/internal/catalog"
	"github.com/yashagw/craneplan/internal/query"
)

// newMarketplaceCatalog builds the booking-marketplace catalog shared by
// planner tests: bookings (partitioned by year of check_in_date), users,
// and properties, with the indexes and statistics the scenarios rely on.
func newMarketplaceCatalog(t *testing.T, bookingRows int) *catalog.Catalog {
	bookings := catalog.NewSchema()
	bookings.AddIntField("id")
	bookings.AddIntField("user_id")
	bookings.AddIntField("property_id")
	bookings.AddStringField("status")
	bookings.AddDateField("check_in_date")
	bookings.AddDateField("created_at")

	users := catalog.NewSchema()
	users.AddIntField("id")
	users.AddStringField("name")
	users.AddStringField("email")

	properties := catalog.NewSchema()
	properties.AddIntField("id")
	properties.AddIntField("host_id")
	properties.AddIntField("price_per_night")

	tables := []*catalog.Table{
		catalog.NewTable("bookings", bookings, []string{"id"}),
		catalog.NewTable("users", users, []string{"id"}),
		catalog.NewTable("properties", properties, []string{"id"}),
	}

	indexes := []*catalog.Index{
		catalog.NewIndex("bookings", "idx_bookings_created_at",
			[]catalog.IndexColumn{{Name: "created_at", Descending: true}}, false, nil),
		catalog.NewIndex("bookings", "idx_status",
			[]catalog.IndexColumn{{Name: "status"}}, false, nil),
		catalog.NewIndex("bookings", "idx_bookings_user",
			[]catalog.IndexColumn{{Name: "user_id"}}, false, nil),
		catalog.NewIndex("users", "users_pkey",
			[]catalog.IndexColumn{{Name: "id"}}, true, nil),
		catalog.NewIndex("properties", "idx_properties_host",
			[]catalog.IndexColumn{{Name: "host_id"}}, false, nil),
	}

	schemes := []*catalog.PartitionScheme{
		catalog.NewPartitionScheme("bookings", "check_in_date", catalog.TransformYear, []catalog.Partition{
			catalog.NewPartition("p2024", query.NewIntConstant(2025)),
			catalog.NewPartition("p2025", query.NewIntConstant(2026)),
			catalog.NewPartition("p2026", query.NewIntConstant(2027)),
			catalog.NewPartition("p2027", query.NewIntConstant(2028)),
			catalog.NewCatchAllPartition("p_future"),
		}),
	}

	stats := catalog.NewStats()
	stats.SetTableRows("bookings", bookingRows)
	stats.SetTableRows("users", 50000)
	stats.SetTableRows("properties", 10000)
	stats.SetDistinct("bookings", "status", 4)
	stats.SetDistinct("bookings", "user_id", 50000)
	stats.SetDistinct("bookings", "created_at", 90000)
	stats.SetDistinct("users", "id", 50000)
	stats.SetDistinct("properties", "host_id", 2000)

	cat, err := catalog.Load(tables, indexes, schemes, stats)
	require.NoError(t, err)
	return cat
}

// newTestPlanner builds a planner over the marketplace catalog with default
// cost constants.
func newTestPlanner(t *testing.T, bookingRows int) *Planner {
	return NewPlanner(newMarketplaceCatalog(t, bookingRows), DefaultConfig())
}
