// Package shell is the interactive menu of the tracker CLI.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Domenick1991/flighttracker/internal/domain"
	"github.com/Domenick1991/flighttracker/internal/gateway"
)

type Gateway interface {
	Cities(ctx context.Context) gateway.Result[[]domain.City]
	Airports(ctx context.Context) gateway.Result[[]domain.Airport]
	Passengers(ctx context.Context) gateway.Result[[]domain.Passenger]
	Aircraft(ctx context.Context) gateway.Result[[]domain.Aircraft]
	AirportsInCity(ctx context.Context, cityID int64) gateway.Result[gateway.Set[domain.Airport]]
	AircraftFlownByPassenger(ctx context.Context, passengerID int64) gateway.Result[gateway.Set[domain.Aircraft]]
	AirportsByAircraft(ctx context.Context, aircraftID int64) gateway.Result[gateway.Set[domain.Airport]]
	AirportsUsedByPassenger(ctx context.Context, passengerID int64) gateway.Result[gateway.Set[domain.Airport]]
}

var _ Gateway = (*gateway.Client)(nil)

type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "running"
}

const separator = "\n-----------------------------------------"

type Shell struct {
	gateway Gateway
	in      *bufio.Scanner
	out     io.Writer
	state   State
}

func New(gw Gateway, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		gateway: gw,
		in:      bufio.NewScanner(in),
		out:     out,
		state:   Running,
	}
}

func (s *Shell) State() State {
	return s.state
}

// Run loops over the menu until the operator picks 0, input ends or ctx is
// done. Only a failure to read input is returned.
func (s *Shell) Run(ctx context.Context) error {
	for s.state == Running {
		if ctx.Err() != nil {
			s.state = Stopped
			break
		}

		s.printMenu()

		choice, ok := s.readChoice()
		if !ok {
			break
		}

		s.dispatch(ctx, choice)
		s.println(separator)
	}

	return s.in.Err()
}

func (s *Shell) dispatch(ctx context.Context, choice int) {
	switch choice {
	case 0:
		s.println("Exiting Flight Tracker CLI. Goodbye!")
		s.state = Stopped
	case 1:
		listAll(ctx, s, "cities", s.gateway.Cities)
	case 2:
		listAll(ctx, s, "airports", s.gateway.Airports)
	case 3:
		listAll(ctx, s, "passengers", s.gateway.Passengers)
	case 4:
		listAll(ctx, s, "aircrafts", s.gateway.Aircraft)
	case 5:
		listRelated(ctx, s, airportsInCity, s.gateway.AirportsInCity)
	case 6:
		listRelated(ctx, s, aircraftFlownByPassenger, s.gateway.AircraftFlownByPassenger)
	case 7:
		listRelated(ctx, s, airportsByAircraft, s.gateway.AirportsByAircraft)
	case 8:
		listRelated(ctx, s, airportsUsedByPassenger, s.gateway.AirportsUsedByPassenger)
	default:
		s.println("Invalid choice. Please try again.")
	}
}

func (s *Shell) printMenu() {
	s.println("\n--- Main Menu ---")
	s.println("1. Get All Cities")
	s.println("2. Get All Airports")
	s.println("3. Get All Passengers")
	s.println("4. Get All Aircrafts")
	s.println("--- Assignment Questions ---")
	s.println("5. Q1: Get Airports in a City")
	s.println("6. Q2: Get Aircrafts flown by a Passenger")
	s.println("7. Q3: Get Airports used by an Aircraft")
	s.println("8. Q4: Get Airports used by a Passenger")
	s.println("0. Exit")
}

// readChoice prompts until a line starts with an integer. Blank lines are
// skipped without a warning.
func (s *Shell) readChoice() (int, bool) {
	for {
		s.print("Enter your choice: ")

		line, ok := s.readLine()
		if !ok {
			return 0, false
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		choice, err := strconv.Atoi(fields[0])
		if err == nil {
			return choice, true
		}

		s.println("Invalid input. Please enter a number.")
	}
}

func (s *Shell) readID(label string) (int64, bool) {
	s.print("Enter " + label + " ID: ")

	line, ok := s.readLine()
	if !ok {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		s.println("Invalid ID. Please enter a valid number.")
		return 0, false
	}

	return id, true
}

// readLine stops the shell when input is exhausted.
func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		s.state = Stopped
		return "", false
	}

	return s.in.Text(), true
}

func (s *Shell) print(text string) {
	_, _ = io.WriteString(s.out, text)
}

func (s *Shell) println(text string) {
	_, _ = fmt.Fprintln(s.out, text)
}
