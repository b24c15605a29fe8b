package importer

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/nonsonwune/olympics_eda/migrations"
	"github.com/nonsonwune/olympics_eda/models"
)

// PostgresSource reads the athlete_events and noc_regions tables from
// a Postgres database.
type PostgresSource struct {
	db *sql.DB
}

// Connect opens a connection pool to dsn and checks the server answers.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, missingFile("postgres", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, missingFile("postgres", err)
	}
	return db, nil
}

// OpenPostgres connects to dsn and verifies the expected tables exist.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresSource, error) {
	db, err := Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := migrations.VerifySchema(ctx, db); err != nil {
		db.Close()
		return nil, schemaError("postgres", "%v", err)
	}
	return &PostgresSource{db: db}, nil
}

// Close releases the connection pool.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}

var (
	athleteEventsQuery = fmt.Sprintf(`
		SELECT id, COALESCE(name, ''), COALESCE(sex, ''), age, height, weight,
		       COALESCE(team, ''), COALESCE(noc, ''), COALESCE(games, ''), year,
		       COALESCE(season, ''), COALESCE(city, ''), COALESCE(sport, ''),
		       COALESCE(event, ''), NULLIF(medal, 'NA')
		FROM %s
		ORDER BY %s`, migrations.AthleteEventsTable, migrations.RowOrderColumn)

	regionsQuery = fmt.Sprintf(`
		SELECT COALESCE(noc, ''), COALESCE(region, ''), COALESCE(notes, '')
		FROM %s
		ORDER BY %s`, migrations.RegionsTable, migrations.RowOrderColumn)
)

// AthleteEvents reads every row of athlete_events in insertion order.
func (s *PostgresSource) AthleteEvents(ctx context.Context) ([]models.AthleteEvent, error) {
	rows, err := s.db.QueryContext(ctx, athleteEventsQuery)
	if err != nil {
		return nil, parseError(migrations.AthleteEventsTable, err)
	}
	defer rows.Close()

	var out []models.AthleteEvent
	for rows.Next() {
		var e models.AthleteEvent
		if err := rows.Scan(&e.ID, &e.Name, &e.Sex, &e.Age, &e.Height, &e.Weight,
			&e.Team, &e.NOC, &e.Games, &e.Year, &e.Season, &e.City, &e.Sport,
			&e.Event, &e.Medal); err != nil {
			return nil, schemaError(migrations.AthleteEventsTable, "error scanning row: %v", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, parseError(migrations.AthleteEventsTable, err)
	}
	return out, nil
}

// Regions reads every row of noc_regions in insertion order.
func (s *PostgresSource) Regions(ctx context.Context) ([]models.Region, error) {
	rows, err := s.db.QueryContext(ctx, regionsQuery)
	if err != nil {
		return nil, parseError(migrations.RegionsTable, err)
	}
	defer rows.Close()

	var out []models.Region
	for rows.Next() {
		var r models.Region
		if err := rows.Scan(&r.NOC, &r.Name, &r.Notes); err != nil {
			return nil, schemaError(migrations.RegionsTable, "error scanning row: %v", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, parseError(migrations.RegionsTable, err)
	}
	return out, nil
}
