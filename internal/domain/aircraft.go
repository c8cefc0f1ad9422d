package domain

import "fmt"

type Aircraft struct {
	ID                 int64  `json:"id" yaml:"id"`
	Type               string `json:"type" yaml:"type"`
	AirlineName        string `json:"airlineName" yaml:"airline_name"`
	NumberOfPassengers int    `json:"numberOfPassengers" yaml:"number_of_passengers"`
}

func (a Aircraft) String() string {
	return fmt.Sprintf("Aircraft{id=%d, type='%s', airlineName='%s', numberOfPassengers=%d}", a.ID, a.Type, a.AirlineName, a.NumberOfPassengers)
}
