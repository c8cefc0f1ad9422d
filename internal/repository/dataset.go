package repository

import (
	"fmt"
	"os"

	"github.com/Domenick1991/flighttracker/internal/domain"
	"gopkg.in/yaml.v3"
)

// Dataset is the seed data of a tracker database, with relationships given as
// id lists on the owning side.
type Dataset struct {
	Cities     []domain.City   `yaml:"cities"`
	Airports   []SeedAirport   `yaml:"airports"`
	Aircraft   []SeedAircraft  `yaml:"aircraft"`
	Passengers []SeedPassenger `yaml:"passengers"`
}

type SeedAirport struct {
	domain.Airport `yaml:",inline"`
	CityID         int64 `yaml:"city_id"`
}

type SeedAircraft struct {
	domain.Aircraft `yaml:",inline"`
	AirportIDs      []int64 `yaml:"airport_ids"`
}

type SeedPassenger struct {
	domain.Passenger `yaml:",inline"`
	AircraftIDs      []int64 `yaml:"aircraft_ids"`
}

func LoadDataset(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to read dataset: %w", err)
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("failed to parse dataset: %w", err)
	}

	return ds, nil
}
