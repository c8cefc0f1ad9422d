package gateway

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domenick1991/flighttracker/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

var (
	city1     = domain.City{ID: 1, Name: "New York", State: "NY", Population: 8000000}
	city2     = domain.City{ID: 2, Name: "Los Angeles", State: "CA", Population: 4000000}
	airport1  = domain.Airport{ID: 101, Name: "JFK Airport", Code: "JFK"}
	airport2  = domain.Airport{ID: 102, Name: "LaGuardia Airport", Code: "LGA"}
	passenger = domain.Passenger{ID: 201, FirstName: "Alice", LastName: "Smith", PhoneNumber: "555-1234"}
	aircraft1 = domain.Aircraft{ID: 301, Type: "Boeing 747", AirlineName: "United", NumberOfPassengers: 400}
	aircraft2 = domain.Aircraft{ID: 302, Type: "Airbus A320", AirlineName: "Delta", NumberOfPassengers: 150}
)

const (
	citiesJSON     = `[{"id":1,"name":"New York","state":"NY","population":8000000},{"id":2,"name":"Los Angeles","state":"CA","population":4000000}]`
	airportsJSON   = `[{"id":101,"name":"JFK Airport","code":"JFK"},{"id":102,"name":"LaGuardia Airport","code":"LGA"}]`
	passengersJSON = `[{"id":201,"firstName":"Alice","lastName":"Smith","phoneNumber":"555-1234"},{"id":202,"firstName":"Bob","lastName":"Johnson","phoneNumber":"555-5678"}]`
	aircraftJSON   = `[{"id":301,"type":"Boeing 747","airlineName":"United","numberOfPassengers":400},{"id":302,"type":"Airbus A320","airlineName":"Delta","numberOfPassengers":150}]`
)

// newTestClient serves body with status for every request and records the
// requests it saw.
func newTestClient(t *testing.T, status int, body string) (*Client, *[]*http.Request, *bytes.Buffer) {
	t.Helper()

	var seen []*http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	logs := new(bytes.Buffer)
	c := NewClient(srv.URL, WithLogger(slog.New(slog.NewTextHandler(logs, nil))))

	return c, &seen, logs
}

func TestClient_Cities_Success(t *testing.T) {
	c, seen, logs := newTestClient(t, http.StatusOK, citiesJSON)

	res := c.Cities(context.Background())

	require.False(t, res.Failed())
	require.Len(t, res.Items, 2)
	assert.Equal(t, "New York", res.Items[0].Name)
	if diff := cmp.Diff([]domain.City{city1, city2}, res.Items); diff != "" {
		t.Errorf("Cities() mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/cities", req.URL.Path)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.NotEmpty(t, req.Header.Get(RequestIDHeader))
	assert.Empty(t, logs.String())
}

func TestClient_Listings_Success(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		path   string
		fetch  func(c *Client) (int, []string)
		render []string
	}{
		{
			name: "airports",
			body: airportsJSON,
			path: "/airports",
			fetch: func(c *Client) (int, []string) {
				return renderAll(c.Airports(context.Background()).Items)
			},
			render: []string{airport1.String(), airport2.String()},
		},
		{
			name: "passengers",
			body: passengersJSON,
			path: "/passengers",
			fetch: func(c *Client) (int, []string) {
				return renderAll(c.Passengers(context.Background()).Items)
			},
			render: []string{
				passenger.String(),
				"Passenger{id=202, firstName='Bob', lastName='Johnson', phoneNumber='555-5678'}",
			},
		},
		{
			name: "aircraft",
			body: aircraftJSON,
			path: "/aircrafts",
			fetch: func(c *Client) (int, []string) {
				return renderAll(c.Aircraft(context.Background()).Items)
			},
			render: []string{aircraft1.String(), aircraft2.String()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, seen, _ := newTestClient(t, http.StatusOK, tt.body)

			n, lines := tt.fetch(c)

			assert.Equal(t, len(tt.render), n)
			assert.Equal(t, tt.render, lines)
			require.Len(t, *seen, 1)
			assert.Equal(t, tt.path, (*seen)[0].URL.Path)
		})
	}
}

func TestClient_Relations_Success(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		path  string
		fetch func(c *Client) []string
		want  []string
	}{
		{
			name: "airports in city",
			body: airportsJSON,
			path: "/cities/1/airports",
			fetch: func(c *Client) []string {
				_, lines := renderAll(c.AirportsInCity(context.Background(), 1).Items.Values())
				return lines
			},
			want: []string{airport1.String(), airport2.String()},
		},
		{
			name: "aircraft flown by passenger",
			body: aircraftJSON,
			path: "/passengers/201/aircrafts",
			fetch: func(c *Client) []string {
				_, lines := renderAll(c.AircraftFlownByPassenger(context.Background(), 201).Items.Values())
				return lines
			},
			want: []string{aircraft1.String(), aircraft2.String()},
		},
		{
			name: "airports by aircraft",
			body: `[{"id":101,"name":"JFK Airport","code":"JFK"}]`,
			path: "/aircrafts/301/airports",
			fetch: func(c *Client) []string {
				_, lines := renderAll(c.AirportsByAircraft(context.Background(), 301).Items.Values())
				return lines
			},
			want: []string{airport1.String()},
		},
		{
			name: "airports used by passenger",
			body: airportsJSON,
			path: "/passengers/201/airportsUsed",
			fetch: func(c *Client) []string {
				_, lines := renderAll(c.AirportsUsedByPassenger(context.Background(), 201).Items.Values())
				return lines
			},
			want: []string{airport1.String(), airport2.String()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, seen, _ := newTestClient(t, http.StatusOK, tt.body)

			got := tt.fetch(c)

			assert.ElementsMatch(t, tt.want, got)
			require.Len(t, *seen, 1)
			assert.Equal(t, tt.path, (*seen)[0].URL.Path)
		})
	}
}

func TestClient_AircraftFlownByPassenger_ContainsBoth(t *testing.T) {
	c, _, _ := newTestClient(t, http.StatusOK, aircraftJSON)

	res := c.AircraftFlownByPassenger(context.Background(), passenger.ID)

	require.False(t, res.Failed())
	assert.Equal(t, 2, res.Items.Len())
	assert.True(t, res.Items.Contains(aircraft1))
	assert.True(t, res.Items.Contains(aircraft2))
}

func TestClient_NonOKStatus(t *testing.T) {
	ops := allOperations()

	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		for name, op := range ops {
			t.Run(name+"/"+http.StatusText(status), func(t *testing.T) {
				c, _, logs := newTestClient(t, status, "City not found")

				n, failure := op(c)

				assert.Zero(t, n)
				require.NotNil(t, failure)
				assert.Equal(t, FailureProtocol, failure.Kind)
				assert.Equal(t, status, failure.StatusCode)
				assert.Equal(t, "City not found", failure.Body)
				assert.Contains(t, logs.String(), "fetch failed")
				assert.Contains(t, logs.String(), "City not found")
			})
		}
	}
}

func TestClient_TransportFailure(t *testing.T) {
	for name, op := range allOperations() {
		t.Run(name, func(t *testing.T) {
			logs := new(bytes.Buffer)
			httpClient := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
				return nil, errors.New("network down")
			})}
			c := NewClient("http://localhost:8080",
				WithHTTPClient(httpClient),
				WithLogger(slog.New(slog.NewTextHandler(logs, nil))),
			)

			n, failure := op(c)

			assert.Zero(t, n)
			require.NotNil(t, failure)
			assert.Equal(t, FailureTransport, failure.Kind)
			assert.ErrorContains(t, failure, "network down")
			assert.Contains(t, logs.String(), "network down")
		})
	}
}

func TestClient_DecodingFailure(t *testing.T) {
	for name, op := range allOperations() {
		t.Run(name, func(t *testing.T) {
			c, _, logs := newTestClient(t, http.StatusOK, `[{"id":1,`)

			n, failure := op(c)

			assert.Zero(t, n)
			require.NotNil(t, failure)
			assert.Equal(t, FailureDecoding, failure.Kind)
			assert.Contains(t, logs.String(), "kind=decoding")
		})
	}
}

func TestClient_TrailingDataAfterBody(t *testing.T) {
	body := `[{"id":101,"name":"JFK Airport","code":"JFK"}] this is not json`

	for name, op := range allOperations() {
		t.Run(name, func(t *testing.T) {
			c, _, logs := newTestClient(t, http.StatusOK, body)

			n, failure := op(c)

			assert.Zero(t, n)
			require.NotNil(t, failure)
			assert.Equal(t, FailureDecoding, failure.Kind)
			assert.Contains(t, logs.String(), "kind=decoding")
		})
	}
}

func TestClient_TrailingWhitespaceIsAccepted(t *testing.T) {
	c, _, _ := newTestClient(t, http.StatusOK, "[{\"id\":101,\"name\":\"JFK Airport\",\"code\":\"JFK\"}]\n\t ")

	res := c.AirportsInCity(context.Background(), 1)

	require.False(t, res.Failed())
	assert.Equal(t, 1, res.Items.Len())
}

func TestClient_SchemaIncompatible(t *testing.T) {
	c, _, _ := newTestClient(t, http.StatusOK, `[{"id":"one","name":"New York"}]`)

	res := c.Cities(context.Background())

	require.True(t, res.Failed())
	assert.Equal(t, FailureDecoding, res.Failure.Kind)
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
}

func TestClient_BaseAddressUnset(t *testing.T) {
	logs := new(bytes.Buffer)
	c := NewClient("", WithLogger(slog.New(slog.NewTextHandler(logs, nil))))

	res := c.AirportsInCity(context.Background(), 1)

	require.True(t, res.Failed())
	assert.Equal(t, FailureConfiguration, res.Failure.Kind)
	assert.ErrorIs(t, res.Err(), errBaseAddressUnset)
	assert.Zero(t, res.Items.Len())
	assert.Contains(t, logs.String(), "/cities/1/airports")
}

func TestClient_InvalidBaseAddress(t *testing.T) {
	c := NewClient("http://bad host", WithLogger(slog.New(slog.NewTextHandler(new(bytes.Buffer), nil))))

	res := c.Cities(context.Background())

	require.True(t, res.Failed())
	assert.Equal(t, FailureConfiguration, res.Failure.Kind)
}

func TestClient_UnknownAndMissingFields(t *testing.T) {
	c, _, _ := newTestClient(t, http.StatusOK, `[{"id":1,"name":"New York","timezone":"EST","airports":[{"id":101}]},{"name":"Nowhere"}]`)

	res := c.Cities(context.Background())

	require.False(t, res.Failed())
	want := []domain.City{{ID: 1, Name: "New York"}, {Name: "Nowhere"}}
	if diff := cmp.Diff(want, res.Items); diff != "" {
		t.Errorf("Cities() mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_FieldNamesAreCaseSensitive(t *testing.T) {
	c, _, _ := newTestClient(t, http.StatusOK, `[{"ID":7,"Name":"Shouty","name":"Quiet"}]`)

	res := c.Airports(context.Background())

	require.False(t, res.Failed())
	assert.Equal(t, []domain.Airport{{Name: "Quiet"}}, res.Items)
}

func TestClient_RelationsDeduplicate(t *testing.T) {
	body := `[` + strings.Join([]string{
		`{"id":101,"name":"JFK Airport","code":"JFK"}`,
		`{"id":102,"name":"LaGuardia Airport","code":"LGA"}`,
		`{"id":101,"name":"JFK Airport","code":"JFK"}`,
		`{"id":101,"name":"JFK Airport","code":"JFK","extra":true}`,
	}, ",") + `]`
	c, _, _ := newTestClient(t, http.StatusOK, body)

	res := c.AirportsUsedByPassenger(context.Background(), 201)

	require.False(t, res.Failed())
	assert.Equal(t, 2, res.Items.Len())
	assert.True(t, res.Items.Contains(airport1))
	assert.True(t, res.Items.Contains(airport2))
}

func TestClient_RelationsKeepDistinctSameID(t *testing.T) {
	c, _, _ := newTestClient(t, http.StatusOK, `[{"id":101,"name":"JFK Airport","code":"JFK"},{"id":101,"name":"Kennedy","code":"JFK"}]`)

	res := c.AirportsInCity(context.Background(), 1)

	assert.Equal(t, 2, res.Items.Len())
}

func TestClient_RelationsAcceptObjectBody(t *testing.T) {
	c, _, _ := newTestClient(t, http.StatusOK, `{"a":{"id":101,"name":"JFK Airport","code":"JFK"},"b":{"id":102,"name":"LaGuardia Airport","code":"LGA"},"c":{"id":101,"name":"JFK Airport","code":"JFK"}}`)

	res := c.AirportsByAircraft(context.Background(), 301)

	require.False(t, res.Failed())
	assert.Equal(t, 2, res.Items.Len())
	assert.True(t, res.Items.Contains(airport2))
}

func TestClient_RelationsRejectScalarBody(t *testing.T) {
	c, _, _ := newTestClient(t, http.StatusOK, `"City not found"`)

	res := c.AirportsInCity(context.Background(), 999)

	require.True(t, res.Failed())
	assert.Equal(t, FailureDecoding, res.Failure.Kind)
}

func TestClient_NullBodyIsEmptySuccess(t *testing.T) {
	c, _, _ := newTestClient(t, http.StatusOK, `null`)

	list := c.Cities(context.Background())
	set := c.AirportsInCity(context.Background(), 1)

	assert.False(t, list.Failed())
	assert.NotNil(t, list.Items)
	assert.Empty(t, list.Items)
	assert.False(t, set.Failed())
	assert.Zero(t, set.Items.Len())
}

func TestClient_ListPreservesOrder(t *testing.T) {
	body := `[{"id":3,"name":"C"},{"id":1,"name":"A"},{"id":2,"name":"B"},{"id":1,"name":"A"}]`
	c, _, _ := newTestClient(t, http.StatusOK, body)

	res := c.Airports(context.Background())

	want := []domain.Airport{{ID: 3, Name: "C"}, {ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 1, Name: "A"}}
	if diff := cmp.Diff(want, res.Items); diff != "" {
		t.Errorf("Airports() mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchCollection(t *testing.T) {
	body := `[{"id":2,"name":"B"},{"id":1,"name":"A"},{"id":2,"name":"B"}]`
	c, _, _ := newTestClient(t, http.StatusOK, body)

	ordered := FetchCollection[domain.Airport](context.Background(), c, "/airports", true)
	unordered := FetchCollection[domain.Airport](context.Background(), c, "/airports", false)

	assert.Len(t, ordered.Items, 3)
	assert.Equal(t, int64(2), ordered.Items[0].ID)
	assert.ElementsMatch(t, []domain.Airport{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, unordered.Items)
}

func TestClient_ContextCanceled(t *testing.T) {
	c, _, _ := newTestClient(t, http.StatusOK, citiesJSON)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.Cities(ctx)

	require.True(t, res.Failed())
	assert.Equal(t, FailureTransport, res.Failure.Kind)
	assert.ErrorIs(t, res.Err(), context.Canceled)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	assert.Equal(t, "http://localhost:8080", NewClient("http://localhost:8080/").BaseAddress())
}

func TestExcerpt(t *testing.T) {
	short := "short"
	long := strings.Repeat("é", maxBodyExcerpt)

	assert.Equal(t, short, excerpt([]byte(short)))
	got := excerpt([]byte(long))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), maxBodyExcerpt+3)
	assert.NotContains(t, got, "�")
}

func renderAll[T interface{ String() string }](items []T) (int, []string) {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.String())
	}
	return len(items), lines
}

// allOperations runs each of the eight queries and reports the size of the
// result and its failure.
func allOperations() map[string]func(c *Client) (int, *Failure) {
	ctx := context.Background()
	return map[string]func(c *Client) (int, *Failure){
		"cities": func(c *Client) (int, *Failure) {
			r := c.Cities(ctx)
			return len(r.Items), r.Failure
		},
		"airports": func(c *Client) (int, *Failure) {
			r := c.Airports(ctx)
			return len(r.Items), r.Failure
		},
		"passengers": func(c *Client) (int, *Failure) {
			r := c.Passengers(ctx)
			return len(r.Items), r.Failure
		},
		"aircraft": func(c *Client) (int, *Failure) {
			r := c.Aircraft(ctx)
			return len(r.Items), r.Failure
		},
		"airports in city": func(c *Client) (int, *Failure) {
			r := c.AirportsInCity(ctx, 999)
			return r.Items.Len(), r.Failure
		},
		"aircraft flown by passenger": func(c *Client) (int, *Failure) {
			r := c.AircraftFlownByPassenger(ctx, 999)
			return r.Items.Len(), r.Failure
		},
		"airports by aircraft": func(c *Client) (int, *Failure) {
			r := c.AirportsByAircraft(ctx, 999)
			return r.Items.Len(), r.Failure
		},
		"airports used by passenger": func(c *Client) (int, *Failure) {
			r := c.AirportsUsedByPassenger(ctx, 999)
			return r.Items.Len(), r.Failure
		},
	}
}
