package shell

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Domenick1991/flighttracker/internal/gateway"
)

type listItem interface {
	comparable
	fmt.Stringer
}

// relation describes one of the parameterized queries as the operator sees it.
type relation struct {
	label    string
	activity string
	noun     string
}

var (
	airportsInCity           = relation{label: "City", activity: "airports in city", noun: "airports"}
	aircraftFlownByPassenger = relation{label: "Passenger", activity: "aircrafts flown by passenger", noun: "aircrafts"}
	airportsByAircraft       = relation{label: "Aircraft", activity: "airports used by aircraft", noun: "airports"}
	airportsUsedByPassenger  = relation{label: "Passenger", activity: "airports used by passenger", noun: "airports"}
)

func listAll[T fmt.Stringer](ctx context.Context, s *Shell, noun string, fetch func(context.Context) gateway.Result[[]T]) {
	s.println("Fetching all " + noun + "...")

	res := fetch(ctx)
	render(s.out, res.Items, res.Failed(), fmt.Sprintf("No %s found or API error occurred.", noun))
}

func listRelated[T listItem](ctx context.Context, s *Shell, r relation, fetch func(context.Context, int64) gateway.Result[gateway.Set[T]]) {
	id, ok := s.readID(r.label)
	if !ok {
		return
	}

	s.println(fmt.Sprintf("Fetching %s %d...", r.activity, id))

	res := fetch(ctx, id)
	render(s.out, res.Items.Values(), res.Failed(), fmt.Sprintf("No %s found for %s ID %d or API error occurred.", r.noun, strings.ToLower(r.label), id))
}

// render prints one line per item. A failed fetch and an empty one print the
// same notice: the operator is not told which, the gateway log is.
func render[T fmt.Stringer](w io.Writer, items []T, failed bool, notice string) {
	if failed || len(items) == 0 {
		_, _ = fmt.Fprintln(w, notice)
		return
	}

	for _, item := range items {
		_, _ = fmt.Fprintln(w, item.String())
	}
}
