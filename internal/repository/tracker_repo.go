package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/flighttracker/internal/domain"
)

// ErrNotFound is returned by relationship queries whose parent entity does
// not exist.
var ErrNotFound = errors.New("not found")

type TrackerRepository interface {
	EnsureSchema(ctx context.Context) error
	Seed(ctx context.Context, ds Dataset) error

	ListCities(ctx context.Context) ([]domain.City, error)
	ListAirports(ctx context.Context) ([]domain.Airport, error)
	ListPassengers(ctx context.Context) ([]domain.Passenger, error)
	ListAircraft(ctx context.Context) ([]domain.Aircraft, error)

	AirportsInCity(ctx context.Context, cityID int64) ([]domain.Airport, error)
	AircraftFlownByPassenger(ctx context.Context, passengerID int64) ([]domain.Aircraft, error)
	AirportsByAircraft(ctx context.Context, aircraftID int64) ([]domain.Airport, error)
	// AirportsUsedByPassenger returns the airports served by any aircraft the
	// passenger has flown.
	AirportsUsedByPassenger(ctx context.Context, passengerID int64) ([]domain.Airport, error)
}
