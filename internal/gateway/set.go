package gateway

import (
	"iter"
	"slices"
)

// Set is a collection without duplicates by value. The zero value is empty and
// ready to use. Values come back in first-seen order, which callers must not
// rely on.
type Set[T comparable] struct {
	index  map[T]struct{}
	values []T
}

func NewSet[T comparable](values ...T) Set[T] {
	var s Set[T]
	for _, v := range values {
		s.Add(v)
	}

	return s
}

// Add reports whether v was not already present.
func (s *Set[T]) Add(v T) bool {
	if _, ok := s.index[v]; ok {
		return false
	}

	if s.index == nil {
		s.index = make(map[T]struct{})
	}

	s.index[v] = struct{}{}
	s.values = append(s.values, v)

	return true
}

func (s Set[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

func (s Set[T]) Len() int {
	return len(s.values)
}

func (s Set[T]) Values() []T {
	return append(make([]T, 0, len(s.values)), s.values...)
}

func (s Set[T]) All() iter.Seq[T] {
	return slices.Values(s.values)
}
