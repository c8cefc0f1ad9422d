package domain

import "fmt"

type City struct {
	ID         int64  `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	State      string `json:"state" yaml:"state"`
	Population int    `json:"population" yaml:"population"`
}

func (c City) String() string {
	return fmt.Sprintf("City{id=%d, name='%s', state='%s', population=%d}", c.ID, c.Name, c.State, c.Population)
}
