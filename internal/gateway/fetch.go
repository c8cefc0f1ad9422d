package gateway

import "context"

// FetchList fetches path and decodes a JSON array, keeping the server's order.
func FetchList[T any](ctx context.Context, c *Client, path string) Result[[]T] {
	return fetch(ctx, c, path, []T{}, decodeList[T])
}

// FetchSet fetches path and decodes it into a Set, collapsing elements that
// are equal by value.
func FetchSet[T comparable](ctx context.Context, c *Client, path string) Result[Set[T]] {
	return fetch(ctx, c, path, Set[T]{}, decodeSet[T])
}

// FetchCollection is FetchList when ordered is true and the values of
// FetchSet otherwise.
func FetchCollection[T comparable](ctx context.Context, c *Client, path string, ordered bool) Result[[]T] {
	if ordered {
		return FetchList[T](ctx, c, path)
	}

	r := FetchSet[T](ctx, c, path)
	return Result[[]T]{Items: r.Items.Values(), Failure: r.Failure}
}

func fetch[C any](ctx context.Context, c *Client, path string, empty C, decode func(body []byte) (C, error)) Result[C] {
	body, failure := c.get(ctx, path)
	if failure == nil {
		items, err := decode(body)
		if err == nil {
			return Result[C]{Items: items}
		}

		failure = &Failure{Kind: FailureDecoding, Path: path, Body: excerpt(body), Cause: err}
	}

	c.report(ctx, failure)
	return Result[C]{Items: empty, Failure: failure}
}
