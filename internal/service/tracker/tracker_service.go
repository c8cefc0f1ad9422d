package tracker

import (
	"context"

	"github.com/Domenick1991/flighttracker/internal/domain"
	"github.com/Domenick1991/flighttracker/internal/repository"
)

type TrackerUseCase interface {
	ListCities(ctx context.Context) ([]domain.City, error)
	ListAirports(ctx context.Context) ([]domain.Airport, error)
	ListPassengers(ctx context.Context) ([]domain.Passenger, error)
	ListAircraft(ctx context.Context) ([]domain.Aircraft, error)

	AirportsInCity(ctx context.Context, cityID int64) ([]domain.Airport, error)
	AircraftFlownByPassenger(ctx context.Context, passengerID int64) ([]domain.Aircraft, error)
	AirportsByAircraft(ctx context.Context, aircraftID int64) ([]domain.Airport, error)
	AirportsUsedByPassenger(ctx context.Context, passengerID int64) ([]domain.Airport, error)
}

// Cache holds the listings. Expiry is the cache's concern.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

const (
	citiesKey     = "cities"
	airportsKey   = "airports"
	passengersKey = "passengers"
	aircraftKey   = "aircraft"
)

type TrackerService struct {
	repo  repository.TrackerRepository
	cache Cache
}

// NewTrackerService builds the service. A nil cache sends every listing to
// the repository.
func NewTrackerService(repo repository.TrackerRepository, cache Cache) *TrackerService {
	return &TrackerService{repo: repo, cache: cache}
}

func (s *TrackerService) ListCities(ctx context.Context) ([]domain.City, error) {
	return cachedList(ctx, s.cache, citiesKey, s.repo.ListCities)
}

func (s *TrackerService) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	return cachedList(ctx, s.cache, airportsKey, s.repo.ListAirports)
}

func (s *TrackerService) ListPassengers(ctx context.Context) ([]domain.Passenger, error) {
	return cachedList(ctx, s.cache, passengersKey, s.repo.ListPassengers)
}

func (s *TrackerService) ListAircraft(ctx context.Context) ([]domain.Aircraft, error) {
	return cachedList(ctx, s.cache, aircraftKey, s.repo.ListAircraft)
}

func (s *TrackerService) AirportsInCity(ctx context.Context, cityID int64) ([]domain.Airport, error) {
	return s.repo.AirportsInCity(ctx, cityID)
}

func (s *TrackerService) AircraftFlownByPassenger(ctx context.Context, passengerID int64) ([]domain.Aircraft, error) {
	return s.repo.AircraftFlownByPassenger(ctx, passengerID)
}

func (s *TrackerService) AirportsByAircraft(ctx context.Context, aircraftID int64) ([]domain.Airport, error) {
	return s.repo.AirportsByAircraft(ctx, aircraftID)
}

func (s *TrackerService) AirportsUsedByPassenger(ctx context.Context, passengerID int64) ([]domain.Airport, error) {
	return s.repo.AirportsUsedByPassenger(ctx, passengerID)
}

// cachedList reads key through cache. Cache errors fall back to load and
// never reach the caller.
func cachedList[T any](ctx context.Context, cache Cache, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if cache != nil {
		var cached []T
		if found, err := cache.Get(ctx, key, &cached); err == nil && found && cached != nil {
			return cached, nil
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		_ = cache.Set(ctx, key, items)
	}
	return items, nil
}

var _ TrackerUseCase = (*TrackerService)(nil)
