package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"
)

// Table names read by the Postgres source.
const (
	AthleteEventsTable = "athlete_events"
	RegionsTable       = "noc_regions"
)

// RowOrderColumn records insertion order in both tables. Rows are read
// back in this order so "first row wins" rules hold for database input.
const RowOrderColumn = "row_id"

// RequiredColumns lists the columns each table must expose.
var RequiredColumns = map[string][]string{
	AthleteEventsTable: {
		RowOrderColumn, "id", "name", "sex", "age", "height", "weight", "team", "noc",
		"games", "year", "season", "city", "sport", "event", "medal",
	},
	RegionsTable: {RowOrderColumn, "noc", "region", "notes"},
}

// CreateSchema creates both tables when they do not exist yet.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range []string{createAthleteEvents, createRegions} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error creating schema: %w", err)
		}
	}
	return nil
}

const createAthleteEvents = `
	CREATE TABLE IF NOT EXISTS ` + AthleteEventsTable + ` (
		` + RowOrderColumn + ` BIGSERIAL PRIMARY KEY,
		id     INTEGER NOT NULL,
		name   TEXT,
		sex    TEXT,
		age    DOUBLE PRECISION,
		height DOUBLE PRECISION,
		weight DOUBLE PRECISION,
		team   TEXT,
		noc    TEXT,
		games  TEXT,
		year   INTEGER NOT NULL,
		season TEXT,
		city   TEXT,
		sport  TEXT,
		event  TEXT,
		medal  TEXT
	)`

const createRegions = `
	CREATE TABLE IF NOT EXISTS ` + RegionsTable + ` (
		` + RowOrderColumn + ` BIGSERIAL PRIMARY KEY,
		noc    TEXT NOT NULL,
		region TEXT,
		notes  TEXT
	)`

// VerifySchema checks that the required tables and columns exist.
func VerifySchema(ctx context.Context, db *sql.DB) error {
	tables := make([]string, 0, len(RequiredColumns))
	for table := range RequiredColumns {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	query := `
		SELECT table_name, column_name
		FROM information_schema.columns
		WHERE table_schema = 'public'
		AND table_name = ANY($1)`

	rows, err := db.QueryContext(ctx, query, pq.Array(tables))
	if err != nil {
		return fmt.Errorf("error reading information_schema: %w", err)
	}
	defer rows.Close()

	found := make(map[string][]string)
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return fmt.Errorf("error scanning column row: %w", err)
		}
		found[table] = append(found[table], column)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if missing := MissingColumns(found); len(missing) > 0 {
		return fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// MissingColumns compares the columns found per table against
// RequiredColumns and returns "table.column" entries that are absent,
// sorted. A missing table reports all of its columns.
func MissingColumns(found map[string][]string) []string {
	var missing []string
	for table, required := range RequiredColumns {
		have := make(map[string]bool, len(found[table]))
		for _, c := range found[table] {
			have[strings.ToLower(c)] = true
		}
		for _, c := range required {
			if !have[c] {
				missing = append(missing, table+"."+c)
			}
		}
	}
	sort.Strings(missing)
	return missing
}
