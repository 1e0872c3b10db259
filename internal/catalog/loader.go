package catalog

import (
	"encoding/json"
	"math"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/yashagw/craneplan/internal/query"
)

// File is the JSON wire form of a full catalog: tables, indexes, partition
// schemes, and statistics, as produced by external schema tooling.
type File struct {
	Tables     []FileTable  `json:"tables"`
	Indexes    []FileIndex  `json:"indexes,omitempty"`
	Partitions []FileScheme `json:"partitions,omitempty"`
	Stats      FileStats    `json:"stats,omitempty"`
}

// FileTable describes one table.
type FileTable struct {
	Name       string       `json:"name"`
	Columns    []FileColumn `json:"columns"`
	PrimaryKey []string     `json:"primary_key,omitempty"`
}

// FileColumn describes one column.
type FileColumn struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable,omitempty"`
}

// FileIndex describes one index.
type FileIndex struct {
	Table    string            `json:"table"`
	Name     string            `json:"name"`
	Columns  []FileIndexColumn `json:"columns"`
	Unique   bool              `json:"unique,omitempty"`
	Covering []string          `json:"covering,omitempty"`
}

// FileIndexColumn is one index key column with its direction.
type FileIndexColumn struct {
	Name string `json:"name"`
	Desc bool   `json:"desc,omitempty"`
}

// FileScheme describes one range-partition scheme.
type FileScheme struct {
	Table      string          `json:"table"`
	Column     string          `json:"column"`
	Transform  string          `json:"transform,omitempty"`
	Partitions []FilePartition `json:"partitions"`
}

// FilePartition is one partition; a missing upper bound marks the catch-all.
type FilePartition struct {
	Name       string      `json:"name"`
	UpperBound interface{} `json:"upper_bound,omitempty"`
}

// FileStats carries row counts per table and distinct counts per column.
type FileStats struct {
	Rows     map[string]int            `json:"rows,omitempty"`
	Distinct map[string]map[string]int `json:"distinct,omitempty"`
}

// LoadFile reads a catalog JSON file and builds a validated Catalog.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading catalog file %s", path)
	}
	return FromJSON(data)
}

// FromJSON decodes catalog JSON and builds a validated Catalog.
func FromJSON(data []byte) (*Catalog, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decoding catalog")
	}
	return FromFile(&f)
}

// FromFile builds a validated Catalog from decoded catalog definitions.
func FromFile(f *File) (*Catalog, error) {
	tables := make([]*Table, 0, len(f.Tables))
	for _, ft := range f.Tables {
		schema := NewSchema()
		for _, fc := range ft.Columns {
			switch fc.Type {
			case TypeInt, TypeString, TypeDate:
				schema.AddField(fc.Name, fc.Type, fc.Nullable)
			default:
				return nil, schemaErrorf("table %q: column %q has unknown type %q", ft.Name, fc.Name, fc.Type)
			}
		}
		tables = append(tables, NewTable(ft.Name, schema, ft.PrimaryKey))
	}

	indexes := make([]*Index, 0, len(f.Indexes))
	for _, fi := range f.Indexes {
		columns := make([]IndexColumn, len(fi.Columns))
		for i, fc := range fi.Columns {
			columns[i] = IndexColumn{Name: fc.Name, Descending: fc.Desc}
		}
		indexes = append(indexes, NewIndex(fi.Table, fi.Name, columns, fi.Unique, fi.Covering))
	}

	schemes := make([]*PartitionScheme, 0, len(f.Partitions))
	for _, fs := range f.Partitions {
		transform, err := transformFromName(fs.Transform)
		if err != nil {
			return nil, errors.Wrapf(err, "partition scheme for table %q", fs.Table)
		}
		partitions := make([]Partition, len(fs.Partitions))
		for i, fp := range fs.Partitions {
			if fp.UpperBound == nil {
				partitions[i] = NewCatchAllPartition(fp.Name)
				continue
			}
			bound, err := boundFromJSON(fp.UpperBound)
			if err != nil {
				return nil, errors.Wrapf(err, "partition %q of table %q", fp.Name, fs.Table)
			}
			partitions[i] = NewPartition(fp.Name, bound)
		}
		schemes = append(schemes, NewPartitionScheme(fs.Table, fs.Column, transform, partitions))
	}

	stats := NewStats()
	for table, rows := range f.Stats.Rows {
		stats.SetTableRows(table, rows)
	}
	for table, cols := range f.Stats.Distinct {
		for column, count := range cols {
			stats.SetDistinct(table, column, count)
		}
	}

	return Load(tables, indexes, schemes, stats)
}

func transformFromName(name string) (Transform, error) {
	switch name {
	case "", "none":
		return TransformNone, nil
	case "year":
		return TransformYear, nil
	default:
		return TransformNone, schemaErrorf("unknown partition transform %q", name)
	}
}

func boundFromJSON(raw interface{}) (query.Constant, error) {
	switch v := raw.(type) {
	case string:
		return query.NewStringConstant(v), nil
	case float64:
		if v != math.Trunc(v) {
			return query.Constant{}, schemaErrorf("non-integer partition bound %v", v)
		}
		return query.NewIntConstant(int(v)), nil
	default:
		return query.Constant{}, schemaErrorf("unsupported partition bound type %T", raw)
	}
}
