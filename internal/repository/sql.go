package repository

import (
	"strings"

	"github.com/Domenick1991/flighttracker/internal/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS cities (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		state TEXT NOT NULL DEFAULT '',
		population INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS airports (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		code TEXT NOT NULL DEFAULT '',
		city_id BIGINT REFERENCES cities(id)
	)`,
	`CREATE TABLE IF NOT EXISTS passengers (
		id BIGINT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone_number TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS aircraft (
		id BIGINT PRIMARY KEY,
		type TEXT NOT NULL,
		airline_name TEXT NOT NULL,
		number_of_passengers INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS aircraft_airports (
		aircraft_id BIGINT NOT NULL REFERENCES aircraft(id),
		airport_id BIGINT NOT NULL REFERENCES airports(id),
		PRIMARY KEY (aircraft_id, airport_id)
	)`,
	`CREATE TABLE IF NOT EXISTS passenger_aircraft (
		passenger_id BIGINT NOT NULL REFERENCES passengers(id),
		aircraft_id BIGINT NOT NULL REFERENCES aircraft(id),
		PRIMARY KEY (passenger_id, aircraft_id)
	)`,
}

const (
	selectCities     = `SELECT id, name, state, population FROM cities ORDER BY id`
	selectAirports   = `SELECT id, name, code FROM airports ORDER BY id`
	selectPassengers = `SELECT id, first_name, last_name, phone_number FROM passengers ORDER BY id`
	selectAircraft   = `SELECT id, type, airline_name, number_of_passengers FROM aircraft ORDER BY id`

	cityExists      = `SELECT EXISTS (SELECT 1 FROM cities WHERE id = $1)`
	passengerExists = `SELECT EXISTS (SELECT 1 FROM passengers WHERE id = $1)`
	aircraftExists  = `SELECT EXISTS (SELECT 1 FROM aircraft WHERE id = $1)`

	selectAirportsInCity = `SELECT id, name, code FROM airports WHERE city_id = $1 ORDER BY id`

	selectAircraftFlownByPassenger = `SELECT a.id, a.type, a.airline_name, a.number_of_passengers
		FROM aircraft a
		JOIN passenger_aircraft pa ON pa.aircraft_id = a.id
		WHERE pa.passenger_id = $1
		ORDER BY a.id`

	selectAirportsByAircraft = `SELECT ap.id, ap.name, ap.code
		FROM airports ap
		JOIN aircraft_airports aa ON aa.airport_id = ap.id
		WHERE aa.aircraft_id = $1
		ORDER BY ap.id`

	selectAirportsUsedByPassenger = `SELECT DISTINCT ap.id, ap.name, ap.code
		FROM airports ap
		JOIN aircraft_airports aa ON aa.airport_id = ap.id
		JOIN passenger_aircraft pa ON pa.aircraft_id = aa.aircraft_id
		WHERE pa.passenger_id = $1
		ORDER BY ap.id`
)

const (
	insertCity              = `INSERT INTO cities (id, name, state, population) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`
	insertAirport           = `INSERT INTO airports (id, name, code, city_id) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`
	insertPassenger         = `INSERT INTO passengers (id, first_name, last_name, phone_number) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`
	insertAircraft          = `INSERT INTO aircraft (id, type, airline_name, number_of_passengers) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`
	insertAircraftAirport   = `INSERT INTO aircraft_airports (aircraft_id, airport_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	insertPassengerAircraft = `INSERT INTO passenger_aircraft (passenger_id, aircraft_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
)

// rowScanner is satisfied by pgx.Rows, pgx.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCity(r rowScanner) (domain.City, error) {
	var c domain.City
	err := r.Scan(&c.ID, &c.Name, &c.State, &c.Population)
	return c, err
}

func scanAirport(r rowScanner) (domain.Airport, error) {
	var a domain.Airport
	err := r.Scan(&a.ID, &a.Name, &a.Code)
	return a, err
}

func scanPassenger(r rowScanner) (domain.Passenger, error) {
	var p domain.Passenger
	err := r.Scan(&p.ID, &p.FirstName, &p.LastName, &p.PhoneNumber)
	return p, err
}

func scanAircraft(r rowScanner) (domain.Aircraft, error) {
	var a domain.Aircraft
	err := r.Scan(&a.ID, &a.Type, &a.AirlineName, &a.NumberOfPassengers)
	return a, err
}

// seedStatements flattens ds into insert statements in dependency order.
func seedStatements(ds Dataset) []statement {
	stmts := make([]statement, 0, len(ds.Cities)+len(ds.Airports)+len(ds.Passengers)+len(ds.Aircraft))

	for _, c := range ds.Cities {
		stmts = append(stmts, statement{insertCity, []any{c.ID, c.Name, c.State, c.Population}})
	}
	for _, a := range ds.Airports {
		var cityID any
		if a.CityID != 0 {
			cityID = a.CityID
		}
		stmts = append(stmts, statement{insertAirport, []any{a.ID, a.Name, a.Code, cityID}})
	}
	for _, a := range ds.Aircraft {
		stmts = append(stmts, statement{insertAircraft, []any{a.ID, a.Type, a.AirlineName, a.NumberOfPassengers}})
	}
	for _, a := range ds.Aircraft {
		for _, airportID := range a.AirportIDs {
			stmts = append(stmts, statement{insertAircraftAirport, []any{a.ID, airportID}})
		}
	}
	for _, p := range ds.Passengers {
		stmts = append(stmts, statement{insertPassenger, []any{p.ID, p.FirstName, p.LastName, p.PhoneNumber}})
	}
	for _, p := range ds.Passengers {
		for _, aircraftID := range p.AircraftIDs {
			stmts = append(stmts, statement{insertPassengerAircraft, []any{p.ID, aircraftID}})
		}
	}

	return stmts
}

type statement struct {
	query string
	args  []any
}

// sqlitePlaceholders rewrites $n placeholders to ?. Every statement binds its
// arguments in order, so positions are preserved.
func sqlitePlaceholders(query string) string {
	var b strings.Builder
	b.Grow(len(query))

	for i := 0; i < len(query); i++ {
		if query[i] == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			b.WriteByte('?')
			for i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
				i++
			}
			continue
		}
		b.WriteByte(query[i])
	}

	return b.String()
}
