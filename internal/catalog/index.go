package catalog

// IndexColumn is one key column of an index together with its sort direction.
type IndexColumn struct {
	Name       string
	Descending bool
}

// Index describes a secondary index: its ordered key columns, uniqueness,
// and an optional covering column set. Key columns are always retrievable
// from the index, so they are implicitly part of the covering set.
type Index struct {
	table    string
	name     string
	columns  []IndexColumn
	unique   bool
	covering []string
}

// NewIndex creates a new index definition.
func NewIndex(table, name string, columns []IndexColumn, unique bool, covering []string) *Index {
	return &Index{
		table:    table,
		name:     name,
		columns:  columns,
		unique:   unique,
		covering: covering,
	}
}

// Table returns the owning table name.
func (ix *Index) Table() string {
	return ix.table
}

// Name returns the index name.
func (ix *Index) Name() string {
	return ix.name
}

// Columns returns the ordered key columns.
func (ix *Index) Columns() []IndexColumn {
	result := make([]IndexColumn, len(ix.columns))
	copy(result, ix.columns)
	return result
}

// LeadingColumn returns the name of the first key column.
func (ix *Index) LeadingColumn() string {
	return ix.columns[0].Name
}

// Unique returns true if the index enforces key uniqueness.
func (ix *Index) Unique() bool {
	return ix.unique
}

// Covering returns the extra non-key columns stored in the index.
func (ix *Index) Covering() []string {
	result := make([]string, len(ix.covering))
	copy(result, ix.covering)
	return result
}

// Covers reports whether every named column is retrievable from the index
// alone, i.e. is either a key column or in the covering set.
func (ix *Index) Covers(columns []string) bool {
	for _, col := range columns {
		if !ix.stores(col) {
			return false
		}
	}
	return true
}

func (ix *Index) stores(column string) bool {
	for _, kc := range ix.columns {
		if kc.Name == column {
			return true
		}
	}
	for _, cc := range ix.covering {
		if cc == column {
			return true
		}
	}
	return false
}
