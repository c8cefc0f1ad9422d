package gateway

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// wireJSON is the decoding policy for API responses. Field names must match
// the json tags exactly; fields the client does not know are skipped and
// fields the server leaves out keep their zero value.
var wireJSON = jsoniter.Config{
	CaseSensitive:         true,
	DisallowUnknownFields: false,
	EscapeHTML:            false,
}.Froze()

var (
	errMalformedJSON = errors.New("malformed JSON")
	errTrailingData  = errors.New("unexpected data after top-level JSON value")
)

func decodeList[T any](body []byte) ([]T, error) {
	var items []T
	if err := wireJSON.Unmarshal(body, &items); err != nil {
		return nil, err
	}

	if items == nil {
		items = []T{}
	}

	return items, nil
}

// decodeSet accepts a JSON array of elements or a JSON object whose member
// values are the elements.
func decodeSet[T comparable](body []byte) (Set[T], error) {
	if !wireJSON.Valid(body) {
		return Set[T]{}, errMalformedJSON
	}

	it := wireJSON.BorrowIterator(body)
	defer wireJSON.ReturnIterator(it)

	var s Set[T]
	add := func(it *jsoniter.Iterator) bool {
		var v T
		it.ReadVal(&v)
		if it.Error != nil {
			return false
		}

		s.Add(v)
		return true
	}

	switch next := it.WhatIsNext(); next {
	case jsoniter.ArrayValue:
		it.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			return add(it)
		})
	case jsoniter.ObjectValue:
		it.ReadMapCB(func(it *jsoniter.Iterator, _ string) bool {
			return add(it)
		})
	case jsoniter.NilValue:
		it.Skip()
	default:
		return Set[T]{}, fmt.Errorf("expected a JSON array or object, got %s", valueTypeName(next))
	}

	if it.Error != nil && !errors.Is(it.Error, io.EOF) {
		return Set[T]{}, it.Error
	}

	// Only whitespace may follow the top-level value.
	if next := it.WhatIsNext(); next != jsoniter.InvalidValue || !errors.Is(it.Error, io.EOF) {
		return Set[T]{}, errTrailingData
	}

	return s, nil
}

func valueTypeName(v jsoniter.ValueType) string {
	switch v {
	case jsoniter.StringValue:
		return "string"
	case jsoniter.NumberValue:
		return "number"
	case jsoniter.BoolValue:
		return "bool"
	default:
		return "invalid value"
	}
}
