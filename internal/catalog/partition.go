package catalog

import "github.com/yashagw/craneplan/internal/query"

// Transform is the function applied to the partition key column to obtain
// the partitioning value.
type Transform int

const (
	// TransformNone partitions on the raw column value.
	TransformNone Transform = iota
	// TransformYear partitions on the year of a date column.
	TransformYear
)

// String returns the transform's name.
func (t Transform) String() string {
	switch t {
	case TransformYear:
		return "year"
	default:
		return "none"
	}
}

// Partition is one range partition: it covers key values from the previous
// partition's upper bound (inclusive) up to its own upper bound (exclusive).
// A nil upper bound marks the catch-all partition covering all remaining values.
type Partition struct {
	name       string
	upperBound *query.Constant
}

// NewPartition creates a partition with an exclusive upper bound.
func NewPartition(name string, upperBound query.Constant) Partition {
	return Partition{
		name:       name,
		upperBound: &upperBound,
	}
}

// NewCatchAllPartition creates the unbounded final partition.
func NewCatchAllPartition(name string) Partition {
	return Partition{
		name: name,
	}
}

// Name returns the partition name.
func (p Partition) Name() string {
	return p.name
}

// UpperBound returns the exclusive upper bound, or nil for the catch-all.
func (p Partition) UpperBound() *query.Constant {
	return p.upperBound
}

// PartitionScheme describes how a table is range-partitioned: the key
// column, the transform applied to it, and the ordered partition list.
// Partition bounds are expressed in the transformed domain (e.g., integer
// years for TransformYear).
type PartitionScheme struct {
	table      string
	column     string
	transform  Transform
	partitions []Partition
}

// NewPartitionScheme creates a new partition scheme.
func NewPartitionScheme(table, column string, transform Transform, partitions []Partition) *PartitionScheme {
	return &PartitionScheme{
		table:      table,
		column:     column,
		transform:  transform,
		partitions: partitions,
	}
}

// Table returns the owning table name.
func (s *PartitionScheme) Table() string {
	return s.table
}

// Column returns the partition key column.
func (s *PartitionScheme) Column() string {
	return s.column
}

// Transform returns the transform applied to the key column.
func (s *PartitionScheme) Transform() Transform {
	return s.transform
}

// Partitions returns the partitions in bound order.
func (s *PartitionScheme) Partitions() []Partition {
	result := make([]Partition, len(s.partitions))
	copy(result, s.partitions)
	return result
}

// PartitionNames returns the partition names in bound order.
func (s *PartitionScheme) PartitionNames() []string {
	names := make([]string, len(s.partitions))
	for i, p := range s.partitions {
		names[i] = p.Name()
	}
	return names
}
