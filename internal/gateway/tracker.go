package gateway

import (
	"context"
	"strconv"

	"github.com/Domenick1991/flighttracker/internal/domain"
)

const (
	citiesPath     = "/cities"
	airportsPath   = "/airports"
	passengersPath = "/passengers"
	aircraftPath   = "/aircrafts"
)

func (c *Client) Cities(ctx context.Context) Result[[]domain.City] {
	return FetchList[domain.City](ctx, c, citiesPath)
}

func (c *Client) Airports(ctx context.Context) Result[[]domain.Airport] {
	return FetchList[domain.Airport](ctx, c, airportsPath)
}

func (c *Client) Passengers(ctx context.Context) Result[[]domain.Passenger] {
	return FetchList[domain.Passenger](ctx, c, passengersPath)
}

func (c *Client) Aircraft(ctx context.Context) Result[[]domain.Aircraft] {
	return FetchList[domain.Aircraft](ctx, c, aircraftPath)
}

func (c *Client) AirportsInCity(ctx context.Context, cityID int64) Result[Set[domain.Airport]] {
	return FetchSet[domain.Airport](ctx, c, nested(citiesPath, cityID, "/airports"))
}

func (c *Client) AircraftFlownByPassenger(ctx context.Context, passengerID int64) Result[Set[domain.Aircraft]] {
	return FetchSet[domain.Aircraft](ctx, c, nested(passengersPath, passengerID, "/aircrafts"))
}

func (c *Client) AirportsByAircraft(ctx context.Context, aircraftID int64) Result[Set[domain.Airport]] {
	return FetchSet[domain.Airport](ctx, c, nested(aircraftPath, aircraftID, "/airports"))
}

func (c *Client) AirportsUsedByPassenger(ctx context.Context, passengerID int64) Result[Set[domain.Airport]] {
	return FetchSet[domain.Airport](ctx, c, nested(passengersPath, passengerID, "/airportsUsed"))
}

func nested(collection string, id int64, relation string) string {
	return collection + "/" + strconv.FormatInt(id, 10) + relation
}
