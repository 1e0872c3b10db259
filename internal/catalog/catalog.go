package catalog

import (
	"github.com/golang/glog"
)

// Catalog is the read-only metadata store consulted during planning: table
// schemas, indexes, partition schemes, and statistics. It is built once by
// Load and never mutated afterwards, so concurrent readers need no locking.
type Catalog struct {
	tables  map[string]*Table
	indexes map[string][]*Index
	schemes map[string]*PartitionScheme
	stats   *Stats
}

// Load validates the catalog input and builds a Catalog. It fails with an
// error marked ErrSchema if an index or partition scheme references an
// unknown table or column, or if partition bounds are malformed; on failure
// no catalog is returned (all-or-nothing).
func Load(tables []*Table, indexes []*Index, schemes []*PartitionScheme, stats *Stats) (*Catalog, error) {
	c := &Catalog{
		tables:  make(map[string]*Table),
		indexes: make(map[string][]*Index),
		schemes: make(map[string]*PartitionScheme),
		stats:   stats,
	}
	if c.stats == nil {
		c.stats = NewStats()
	}

	for _, tbl := range tables {
		if _, exists := c.tables[tbl.Name()]; exists {
			return nil, schemaErrorf("duplicate table %q", tbl.Name())
		}
		for _, pk := range tbl.PrimaryKey() {
			if !tbl.Schema().HasField(pk) {
				return nil, schemaErrorf("table %q: primary key column %q not in schema", tbl.Name(), pk)
			}
		}
		c.tables[tbl.Name()] = tbl
	}

	for _, ix := range indexes {
		if err := c.validateIndex(ix); err != nil {
			return nil, err
		}
		c.indexes[ix.Table()] = append(c.indexes[ix.Table()], ix)
	}

	for _, scheme := range schemes {
		if err := c.validateScheme(scheme); err != nil {
			return nil, err
		}
		c.schemes[scheme.Table()] = scheme
	}

	glog.V(2).Infof("[CATALOG] Loaded %d tables, %d indexes, %d partition schemes",
		len(c.tables), len(indexes), len(c.schemes))
	return c, nil
}

func (c *Catalog) validateIndex(ix *Index) error {
	tbl, exists := c.tables[ix.Table()]
	if !exists {
		return schemaErrorf("index %q references unknown table %q", ix.Name(), ix.Table())
	}
	if len(ix.Columns()) == 0 {
		return schemaErrorf("index %q on table %q has no key columns", ix.Name(), ix.Table())
	}
	for _, existing := range c.indexes[ix.Table()] {
		if existing.Name() == ix.Name() {
			return schemaErrorf("duplicate index %q on table %q", ix.Name(), ix.Table())
		}
	}
	for _, kc := range ix.Columns() {
		if !tbl.Schema().HasField(kc.Name) {
			return schemaErrorf("index %q references unknown column %q of table %q", ix.Name(), kc.Name, ix.Table())
		}
	}
	for _, cc := range ix.Covering() {
		if !tbl.Schema().HasField(cc) {
			return schemaErrorf("index %q covering set references unknown column %q of table %q", ix.Name(), cc, ix.Table())
		}
	}
	return nil
}

func (c *Catalog) validateScheme(scheme *PartitionScheme) error {
	tbl, exists := c.tables[scheme.Table()]
	if !exists {
		return schemaErrorf("partition scheme references unknown table %q", scheme.Table())
	}
	if _, exists := c.schemes[scheme.Table()]; exists {
		return schemaErrorf("duplicate partition scheme for table %q", scheme.Table())
	}
	if !tbl.Schema().HasField(scheme.Column()) {
		return schemaErrorf("partition scheme for table %q references unknown column %q", scheme.Table(), scheme.Column())
	}
	partitions := scheme.Partitions()
	if len(partitions) == 0 {
		return schemaErrorf("partition scheme for table %q has no partitions", scheme.Table())
	}

	seen := make(map[string]bool)
	for i, p := range partitions {
		if p.Name() == "" {
			return schemaErrorf("partition scheme for table %q has an unnamed partition", scheme.Table())
		}
		if seen[p.Name()] {
			return schemaErrorf("duplicate partition %q for table %q", p.Name(), scheme.Table())
		}
		seen[p.Name()] = true

		last := i == len(partitions)-1
		if last {
			// Catch-all: every key value must map to some partition.
			if p.UpperBound() != nil {
				return schemaErrorf("partition scheme for table %q: last partition %q must be unbounded", scheme.Table(), p.Name())
			}
			continue
		}
		if p.UpperBound() == nil {
			return schemaErrorf("partition scheme for table %q: only the last partition may be unbounded, got %q", scheme.Table(), p.Name())
		}
		if i > 0 {
			prev := partitions[i-1].UpperBound()
			if prev.IsInt() != p.UpperBound().IsInt() {
				return schemaErrorf("partition scheme for table %q: mixed bound types at partition %q", scheme.Table(), p.Name())
			}
			if prev.CompareTo(*p.UpperBound()) >= 0 {
				return schemaErrorf("partition scheme for table %q: bounds not strictly increasing at partition %q", scheme.Table(), p.Name())
			}
		}
	}
	return nil
}

// Table returns the table definition for a name, or an error marked
// ErrNotFound for an unknown table.
func (c *Catalog) Table(name string) (*Table, error) {
	tbl, exists := c.tables[name]
	if !exists {
		return nil, notFoundErrorf("table %q", name)
	}
	return tbl, nil
}

// Indexes returns the indexes of a table in definition order. It fails with
// an error marked ErrNotFound for an unknown table; a table without indexes
// yields an empty slice.
func (c *Catalog) Indexes(table string) ([]*Index, error) {
	if _, exists := c.tables[table]; !exists {
		return nil, notFoundErrorf("table %q", table)
	}
	result := make([]*Index, len(c.indexes[table]))
	copy(result, c.indexes[table])
	return result, nil
}

// Index returns a table's index by name, or an error marked ErrNotFound.
func (c *Catalog) Index(table, name string) (*Index, error) {
	indexes, err := c.Indexes(table)
	if err != nil {
		return nil, err
	}
	for _, ix := range indexes {
		if ix.Name() == name {
			return ix, nil
		}
	}
	return nil, notFoundErrorf("index %q on table %q", name, table)
}

// Scheme returns the partition scheme of a table, or nil if the table is
// not partitioned. It fails with an error marked ErrNotFound for an unknown
// table.
func (c *Catalog) Scheme(table string) (*PartitionScheme, error) {
	if _, exists := c.tables[table]; !exists {
		return nil, notFoundErrorf("table %q", table)
	}
	return c.schemes[table], nil
}

// TableRows returns the estimated row count of a table. It fails with an
// error marked ErrNotFound for an unknown table.
func (c *Catalog) TableRows(table string) (int, error) {
	if _, exists := c.tables[table]; !exists {
		return 0, notFoundErrorf("table %q", table)
	}
	return c.stats.TableRows(table), nil
}

// Distinct returns the estimated distinct-value count of a column and
// whether an estimate exists.
func (c *Catalog) Distinct(table, column string) (int, bool) {
	return c.stats.Distinct(table, column)
}
