package catalog

// Stats holds cardinality estimates: row counts per table and distinct-value
// counts per (table, column). It is populated before Load and read-only after.
type Stats struct {
	tableRows map[string]int
	distinct  map[string]map[string]int
}

// NewStats creates an empty statistics set.
func NewStats() *Stats {
	return &Stats{
		tableRows: make(map[string]int),
		distinct:  make(map[string]map[string]int),
	}
}

// SetTableRows records the estimated row count of a table.
func (s *Stats) SetTableRows(table string, rows int) {
	s.tableRows[table] = rows
}

// SetDistinct records the estimated number of distinct values of a column.
func (s *Stats) SetDistinct(table, column string, count int) {
	cols, exists := s.distinct[table]
	if !exists {
		cols = make(map[string]int)
		s.distinct[table] = cols
	}
	cols[column] = count
}

// TableRows returns the estimated row count of a table, or 0 if unknown.
func (s *Stats) TableRows(table string) int {
	return s.tableRows[table]
}

// Distinct returns the estimated distinct-value count of a column and
// whether an estimate exists.
func (s *Stats) Distinct(table, column string) (int, bool) {
	cols, exists := s.distinct[table]
	if !exists {
		return 0, false
	}
	count, exists := cols[column]
	return count, exists
}
