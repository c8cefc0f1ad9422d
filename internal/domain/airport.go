package domain

import "fmt"

type Airport struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Code string `json:"code" yaml:"code"`
}

func (a Airport) String() string {
	return fmt.Sprintf("Airport{id=%d, name='%s', code='%s'}", a.ID, a.Name, a.Code)
}
