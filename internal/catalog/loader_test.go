package catalog

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalogJSON = `{
  "tables": [
    {
      "name": "bookings",
      "columns": [
        {"name": "id", "type": "int"},
        {"name": "user_id", "type": "int"},
        {"name": "status", "type": "string"},
        {"name": "check_in_date", "type": "date"},
        {"name": "created_at", "type": "date"}
      ],
      "primary_key": ["id"]
    },
    {
      "name": "users",
      "columns": [
        {"name": "id", "type": "int"},
        {"name": "email", "type": "string", "nullable": true}
      ],
      "primary_key": ["id"]
    }
  ],
  "indexes": [
    {
      "table": "bookings",
      "name": "idx_bookings_created_at",
      "columns": [{"name": "created_at", "desc": true}]
    },
    {
      "table": "bookings",
      "name": "idx_status",
      "columns": [{"name": "status"}],
      "covering": ["user_id"]
    }
  ],
  "partitions": [
    {
      "table": "bookings",
      "column": "check_in_date",
      "transform": "year",
      "partitions": [
        {"name": "p2024", "upper_bound": 2025},
        {"name": "p2025", "upper_bound": 2026},
        {"name": "p2026", "upper_bound": 2027},
        {"name": "p2027", "upper_bound": 2028},
        {"name": "p_future"}
      ]
    }
  ],
  "stats": {
    "rows": {"bookings": 100000, "users": 50000},
    "distinct": {"bookings": {"status": 4, "created_at": 90000}}
  }
}`

func TestFromJSON(t *testing.T) {
	cat, err := FromJSON([]byte(testCatalogJSON))
	require.NoError(t, err)

	tbl, err := cat.Table("bookings")
	require.NoError(t, err)
	assert.Equal(t, TypeDate, tbl.Schema().Type("check_in_date"))
	assert.False(t, tbl.Schema().Nullable("id"))

	users, err := cat.Table("users")
	require.NoError(t, err)
	assert.True(t, users.Schema().Nullable("email"))

	indexes, err := cat.Indexes("bookings")
	require.NoError(t, err)
	require.Len(t, indexes, 2)
	assert.Equal(t, "idx_bookings_created_at", indexes[0].Name())
	assert.True(t, indexes[0].Columns()[0].Descending)
	assert.Equal(t, []string{"user_id"}, indexes[1].Covering())

	scheme, err := cat.Scheme("bookings")
	require.NoError(t, err)
	require.NotNil(t, scheme)
	assert.Equal(t, TransformYear, scheme.Transform())
	assert.Equal(t, []string{"p2024", "p2025", "p2026", "p2027", "p_future"}, scheme.PartitionNames())
	assert.Nil(t, scheme.Partitions()[4].UpperBound())

	rows, err := cat.TableRows("bookings")
	require.NoError(t, err)
	assert.Equal(t, 100000, rows)
}

func TestFromJSONRejectsUnknownType(t *testing.T) {
	_, err := FromJSON([]byte(`{"tables":[{"name":"t","columns":[{"name":"c","type":"blob"}]}]}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
}

func TestFromJSONRejectsUnknownTransform(t *testing.T) {
	_, err := FromJSON([]byte(`{
		"tables":[{"name":"t","columns":[{"name":"c","type":"int"}]}],
		"partitions":[{"table":"t","column":"c","transform":"month","partitions":[{"name":"p_all"}]}]
	}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
}

func TestFromJSONRejectsFractionalBound(t *testing.T) {
	_, err := FromJSON([]byte(`{
		"tables":[{"name":"t","columns":[{"name":"c","type":"int"}]}],
		"partitions":[{"table":"t","column":"c","partitions":[{"name":"p0","upper_bound":1.5},{"name":"p_all"}]}]
	}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
}

func TestFromJSONRejectsMalformedJSON(t *testing.T) {
	_, err := FromJSON([]byte(`{"tables": [`))
	require.Error(t, err)
}
