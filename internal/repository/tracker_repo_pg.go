package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flighttracker/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGTrackerRepository struct {
	db *pgxpool.Pool
}

func NewPGTrackerRepository(db *pgxpool.Pool) *PGTrackerRepository {
	return &PGTrackerRepository{db: db}
}

func (r *PGTrackerRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

func (r *PGTrackerRepository) Seed(ctx context.Context, ds Dataset) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, stmt := range seedStatements(ds) {
			if _, err := tx.Exec(ctx, stmt.query, stmt.args...); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}
		return nil
	})
}

func (r *PGTrackerRepository) ListCities(ctx context.Context) ([]domain.City, error) {
	return queryPG(ctx, r.db, scanCity, selectCities)
}

func (r *PGTrackerRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	return queryPG(ctx, r.db, scanAirport, selectAirports)
}

func (r *PGTrackerRepository) ListPassengers(ctx context.Context) ([]domain.Passenger, error) {
	return queryPG(ctx, r.db, scanPassenger, selectPassengers)
}

func (r *PGTrackerRepository) ListAircraft(ctx context.Context) ([]domain.Aircraft, error) {
	return queryPG(ctx, r.db, scanAircraft, selectAircraft)
}

func (r *PGTrackerRepository) AirportsInCity(ctx context.Context, cityID int64) ([]domain.Airport, error) {
	if err := r.mustExist(ctx, cityExists, cityID); err != nil {
		return nil, err
	}
	return queryPG(ctx, r.db, scanAirport, selectAirportsInCity, cityID)
}

func (r *PGTrackerRepository) AircraftFlownByPassenger(ctx context.Context, passengerID int64) ([]domain.Aircraft, error) {
	if err := r.mustExist(ctx, passengerExists, passengerID); err != nil {
		return nil, err
	}
	return queryPG(ctx, r.db, scanAircraft, selectAircraftFlownByPassenger, passengerID)
}

func (r *PGTrackerRepository) AirportsByAircraft(ctx context.Context, aircraftID int64) ([]domain.Airport, error) {
	if err := r.mustExist(ctx, aircraftExists, aircraftID); err != nil {
		return nil, err
	}
	return queryPG(ctx, r.db, scanAirport, selectAirportsByAircraft, aircraftID)
}

func (r *PGTrackerRepository) AirportsUsedByPassenger(ctx context.Context, passengerID int64) ([]domain.Airport, error) {
	if err := r.mustExist(ctx, passengerExists, passengerID); err != nil {
		return nil, err
	}
	return queryPG(ctx, r.db, scanAirport, selectAirportsUsedByPassenger, passengerID)
}

func (r *PGTrackerRepository) mustExist(ctx context.Context, query string, id int64) error {
	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}

func queryPG[T any](ctx context.Context, db *pgxpool.Pool, scan func(rowScanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
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

var _ TrackerRepository = (*PGTrackerRepository)(nil)
