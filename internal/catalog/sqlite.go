package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/golang/glog"
	_ "github.com/mattn/go-sqlite3"
)

// LoadSQLite introspects a live SQLite database and builds a validated
// Catalog from it: schemas and primary keys from PRAGMA table_info, indexes
// from PRAGMA index_list/index_xinfo, row counts and leading-column distinct
// counts computed with COUNT queries. SQLite has no table partitioning, so
// the resulting catalog carries no partition schemes.
func LoadSQLite(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening sqlite database %s", path)
	}
	defer db.Close()

	names, err := sqliteTableNames(db)
	if err != nil {
		return nil, err
	}

	var tables []*Table
	var indexes []*Index
	stats := NewStats()

	for _, name := range names {
		tbl, err := sqliteTable(db, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, tbl)

		tableIndexes, err := sqliteIndexes(db, name)
		if err != nil {
			return nil, err
		}
		indexes = append(indexes, tableIndexes...)

		rows, err := sqliteCount(db, fmt.Sprintf("SELECT COUNT(*) FROM %q", name))
		if err != nil {
			return nil, err
		}
		stats.SetTableRows(name, rows)

		for _, ix := range tableIndexes {
			col := ix.LeadingColumn()
			if _, exists := stats.Distinct(name, col); exists {
				continue
			}
			distinct, err := sqliteCount(db, fmt.Sprintf("SELECT COUNT(DISTINCT %q) FROM %q", col, name))
			if err != nil {
				return nil, err
			}
			stats.SetDistinct(name, col, distinct)
		}
	}

	glog.V(2).Infof("[CATALOG] Introspected %d tables and %d indexes from %s", len(tables), len(indexes), path)
	return Load(tables, indexes, nil, stats)
}

func sqliteTableNames(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "listing tables")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "listing tables")
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func sqliteTable(db *sql.DB, name string) (*Table, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%q)", name))
	if err != nil {
		return nil, errors.Wrapf(err, "reading columns of %s", name)
	}
	defer rows.Close()

	schema := NewSchema()
	type pkColumn struct {
		name string
		pos  int
	}
	var pk []pkColumn

	for rows.Next() {
		var (
			cid     int
			colName string
			colType string
			notNull int
			dflt    sql.NullString
			pkPos   int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &dflt, &pkPos); err != nil {
			return nil, errors.Wrapf(err, "reading columns of %s", name)
		}
		schema.AddField(colName, fieldTypeFromSQLite(colType), notNull == 0)
		if pkPos > 0 {
			pk = append(pk, pkColumn{name: colName, pos: pkPos})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading columns of %s", name)
	}

	// PRAGMA rows arrive in column order; the pk field gives key position.
	primaryKey := make([]string, len(pk))
	for _, col := range pk {
		primaryKey[col.pos-1] = col.name
	}
	return NewTable(name, schema, primaryKey), nil
}

func sqliteIndexes(db *sql.DB, table string) ([]*Index, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA index_list(%q)", table))
	if err != nil {
		return nil, errors.Wrapf(err, "listing indexes of %s", table)
	}
	defer rows.Close()

	type indexEntry struct {
		name   string
		unique bool
	}
	var entries []indexEntry
	for rows.Next() {
		var (
			seq     int
			name    string
			unique  int
			origin  string
			partial int
		)
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			return nil, errors.Wrapf(err, "listing indexes of %s", table)
		}
		// Skip the implicit primary-key index and partial indexes, whose
		// row coverage the planner cannot reason about.
		if origin == "pk" || partial != 0 {
			continue
		}
		entries = append(entries, indexEntry{name: name, unique: unique != 0})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "listing indexes of %s", table)
	}

	var result []*Index
	for _, entry := range entries {
		columns, err := sqliteIndexColumns(db, entry.name)
		if err != nil {
			return nil, err
		}
		if len(columns) == 0 {
			// Expression index: nothing the planner can match predicates to.
			continue
		}
		result = append(result, NewIndex(table, entry.name, columns, entry.unique, nil))
	}
	return result, nil
}

func sqliteIndexColumns(db *sql.DB, index string) ([]IndexColumn, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA index_xinfo(%q)", index))
	if err != nil {
		return nil, errors.Wrapf(err, "reading columns of index %s", index)
	}
	defer rows.Close()

	var columns []IndexColumn
	for rows.Next() {
		var (
			seqno   int
			cid     int
			colName sql.NullString
			desc    int
			coll    string
			key     int
		)
		if err := rows.Scan(&seqno, &cid, &colName, &desc, &coll, &key); err != nil {
			return nil, errors.Wrapf(err, "reading columns of index %s", index)
		}
		if key == 0 || !colName.Valid {
			continue
		}
		columns = append(columns, IndexColumn{Name: colName.String, Descending: desc != 0})
	}
	return columns, rows.Err()
}

func sqliteCount(db *sql.DB, stmt string) (int, error) {
	var count int
	if err := db.QueryRow(stmt).Scan(&count); err != nil {
		return 0, errors.Wrapf(err, "running %s", stmt)
	}
	return count, nil
}

func fieldTypeFromSQLite(declared string) string {
	upper := strings.ToUpper(declared)
	switch {
	case strings.Contains(upper, "INT"):
		return TypeInt
	case strings.Contains(upper, "DATE") || strings.Contains(upper, "TIME"):
		return TypeDate
	default:
		return TypeString
	}
}
