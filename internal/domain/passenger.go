package domain

import "fmt"

type Passenger struct {
	ID          int64  `json:"id" yaml:"id"`
	FirstName   string `json:"firstName" yaml:"first_name"`
	LastName    string `json:"lastName" yaml:"last_name"`
	PhoneNumber string `json:"phoneNumber" yaml:"phone_number"`
}

func (p Passenger) String() string {
	return fmt.Sprintf("Passenger{id=%d, firstName='%s', lastName='%s', phoneNumber='%s'}", p.ID, p.FirstName, p.LastName, p.PhoneNumber)
}
