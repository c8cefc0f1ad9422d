package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Domenick1991/flighttracker/internal/domain"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteTrackerRepository struct {
	db *sql.DB
}

// NewSQLiteTrackerRepository opens (or creates) the database file at path.
func NewSQLiteTrackerRepository(path string) (*SQLiteTrackerRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	return &SQLiteTrackerRepository{db: db}, nil
}

func (r *SQLiteTrackerRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteTrackerRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

func (r *SQLiteTrackerRepository) Seed(ctx context.Context, ds Dataset) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, stmt := range seedStatements(ds) {
		if _, err := tx.ExecContext(ctx, sqlitePlaceholders(stmt.query), stmt.args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("seed: %w", err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteTrackerRepository) ListCities(ctx context.Context) ([]domain.City, error) {
	return querySQL(ctx, r.db, scanCity, selectCities)
}

func (r *SQLiteTrackerRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	return querySQL(ctx, r.db, scanAirport, selectAirports)
}

func (r *SQLiteTrackerRepository) ListPassengers(ctx context.Context) ([]domain.Passenger, error) {
	return querySQL(ctx, r.db, scanPassenger, selectPassengers)
}

func (r *SQLiteTrackerRepository) ListAircraft(ctx context.Context) ([]domain.Aircraft, error) {
	return querySQL(ctx, r.db, scanAircraft, selectAircraft)
}

func (r *SQLiteTrackerRepository) AirportsInCity(ctx context.Context, cityID int64) ([]domain.Airport, error) {
	if err := r.mustExist(ctx, cityExists, cityID); err != nil {
		return nil, err
	}
	return querySQL(ctx, r.db, scanAirport, selectAirportsInCity, cityID)
}

func (r *SQLiteTrackerRepository) AircraftFlownByPassenger(ctx context.Context, passengerID int64) ([]domain.Aircraft, error) {
	if err := r.mustExist(ctx, passengerExists, passengerID); err != nil {
		return nil, err
	}
	return querySQL(ctx, r.db, scanAircraft, selectAircraftFlownByPassenger, passengerID)
}

func (r *SQLiteTrackerRepository) AirportsByAircraft(ctx context.Context, aircraftID int64) ([]domain.Airport, error) {
	if err := r.mustExist(ctx, aircraftExists, aircraftID); err != nil {
		return nil, err
	}
	return querySQL(ctx, r.db, scanAirport, selectAirportsByAircraft, aircraftID)
}

func (r *SQLiteTrackerRepository) AirportsUsedByPassenger(ctx context.Context, passengerID int64) ([]domain.Airport, error) {
	if err := r.mustExist(ctx, passengerExists, passengerID); err != nil {
		return nil, err
	}
	return querySQL(ctx, r.db, scanAirport, selectAirportsUsedByPassenger, passengerID)
}

func (r *SQLiteTrackerRepository) mustExist(ctx context.Context, query string, id int64) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx, sqlitePlaceholders(query), id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}

func querySQL[T any](ctx context.Context, db *sql.DB, scan func(rowScanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, sqlitePlaceholders(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

var _ TrackerRepository = (*SQLiteTrackerRepository)(nil)
