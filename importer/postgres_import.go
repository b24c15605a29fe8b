package importer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/nonsonwune/olympics_eda/migrations"
	"github.com/nonsonwune/olympics_eda/models"
)

// DefaultBatchSize is the number of rows between progress reports.
const DefaultBatchSize = 10000

// ImportStats summarises one table load.
type ImportStats struct {
	Table    string
	Imported int
}

// PostgresImporter copies parsed rows into the Postgres tables read by
// PostgresSource. Each table is replaced inside a single transaction.
type PostgresImporter struct {
	db        *sql.DB
	batchSize int
	log       logrus.FieldLogger
}

// NewPostgresImporter creates an importer. batchSize <= 0 uses
// DefaultBatchSize.
func NewPostgresImporter(db *sql.DB, batchSize int, log logrus.FieldLogger) *PostgresImporter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &PostgresImporter{db: db, batchSize: batchSize, log: log}
}

// Import creates the schema if needed, then replaces both tables with the
// rows read from src.
func (p *PostgresImporter) Import(ctx context.Context, src Source) ([]ImportStats, error) {
	events, err := src.AthleteEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading athlete events: %w", err)
	}
	regions, err := src.Regions(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading regions: %w", err)
	}

	if err := migrations.CreateSchema(ctx, p.db); err != nil {
		return nil, err
	}

	eventRows := make([][]interface{}, len(events))
	for i, e := range events {
		eventRows[i] = athleteEventRow(e)
	}
	regionRows := make([][]interface{}, len(regions))
	for i, r := range regions {
		regionRows[i] = []interface{}{r.NOC, nullString(r.Name), nullString(r.Notes)}
	}

	var stats []ImportStats
	for _, t := range []struct {
		table string
		rows  [][]interface{}
	}{
		{migrations.AthleteEventsTable, eventRows},
		{migrations.RegionsTable, regionRows},
	} {
		n, err := p.replaceTable(ctx, t.table, t.rows)
		if err != nil {
			return stats, err
		}
		stats = append(stats, ImportStats{Table: t.table, Imported: n})
	}
	return stats, nil
}

// replaceTable truncates table and streams rows into it with COPY.
func (p *PostgresImporter) replaceTable(ctx context.Context, table string, rows [][]interface{}) (int, error) {
	log := p.log.WithField("table", table)

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "TRUNCATE "+pq.QuoteIdentifier(table)+" RESTART IDENTITY"); err != nil {
		return 0, fmt.Errorf("error truncating %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, importColumns(table)...))
	if err != nil {
		return 0, fmt.Errorf("error preparing copy into %s: %w", table, err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, fmt.Errorf("%s row %d: %w", table, i+1, err)
		}
		if (i+1)%p.batchSize == 0 {
			log.WithField("rows", i+1).Debug("Copy progress")
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, fmt.Errorf("error flushing copy into %s: %w", table, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing transaction: %w", err)
	}
	log.WithField("rows", len(rows)).Info("Table imported")
	return len(rows), nil
}

// importColumns lists the columns written for table, in row order. The
// row order column is left to its sequence.
func importColumns(table string) []string {
	var cols []string
	for _, c := range migrations.RequiredColumns[table] {
		if c != migrations.RowOrderColumn {
			cols = append(cols, c)
		}
	}
	return cols
}

func athleteEventRow(e models.AthleteEvent) []interface{} {
	return []interface{}{
		e.ID, nullString(e.Name), nullString(e.Sex), e.Age, e.Height, e.Weight,
		nullString(e.Team), nullString(e.NOC), nullString(e.Games), e.Year,
		nullString(e.Season), nullString(e.City), nullString(e.Sport),
		nullString(e.Event), e.Medal,
	}
}
