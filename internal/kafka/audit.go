package kafka

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// QueryEvent records one request served by the tracker API.
type QueryEvent struct {
	RequestID  string    `json:"request_id"`
	Method     string    `json:"method"`
	Route      string    `json:"route"`
	Path       string    `json:"path"`
	Status     int       `json:"status"`
	DurationMS int64     `json:"duration_ms"`
	At         time.Time `json:"at"`
}

// AuditPublisher sends query events to a single topic keyed by route.
type AuditPublisher struct {
	producer *Producer
	topic    string
}

func NewAuditPublisher(producer *Producer, topic string) *AuditPublisher {
	return &AuditPublisher{producer: producer, topic: topic}
}

func (a *AuditPublisher) PublishQuery(ctx context.Context, event QueryEvent) error {
	return a.producer.Publish(ctx, a.topic, event.Route, event)
}

func DecodeQueryEvent(msg kafka.Message) (QueryEvent, error) {
	var event QueryEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return QueryEvent{}, fmt.Errorf("decode query event at offset %d: %w", msg.Offset, err)
	}
	return event, nil
}

// RouteCount is the summary line for one route.
type RouteCount struct {
	Route    string
	Requests int
	Failures int
}

// Tally counts query events per route. Safe for concurrent use.
type Tally struct {
	mu     sync.Mutex
	routes map[string]*RouteCount
}

func NewTally() *Tally {
	return &Tally{routes: make(map[string]*RouteCount)}
}

// Record counts event. Statuses of 400 and above are failures.
func (t *Tally) Record(event QueryEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rc, ok := t.routes[event.Route]
	if !ok {
		rc = &RouteCount{Route: event.Route}
		t.routes[event.Route] = rc
	}
	rc.Requests++
	if event.Status >= 400 {
		rc.Failures++
	}
}

// Flush returns the counts sorted by route and starts a new window.
func (t *Tally) Flush() []RouteCount {
	t.mu.Lock()
	defer t.mu.Unlock()

	counts := make([]RouteCount, 0, len(t.routes))
	for _, rc := range t.routes {
		counts = append(counts, *rc)
	}
	clear(t.routes)

	slices.SortFunc(counts, func(a, b RouteCount) int {
		return cmp.Compare(a.Route, b.Route)
	})
	return counts
}
