package statistics

import (
	"context"
	"sync"
	"time"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
)

type fakeGateway struct {
	mu          sync.Mutex
	events      []eventsapi.Event
	enrollments map[string][]eventsapi.Enrollment
	ratings     map[string][]eventsapi.Rating
	ratingsErr  error
	inFlight    int
	maxInFlight int
}

func (f *fakeGateway) ListEvents(context.Context, eventsapi.EventFilter) ([]eventsapi.Event, error) {
	return append([]eventsapi.Event(nil), f.events...), nil
}

func (f *fakeGateway) ListEnrollments(_ context.Context, eventID string) ([]eventsapi.Enrollment, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	enrollments := f.enrollments[eventID]
	f.mu.Unlock()

	time.Sleep(time.Millisecond)
	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
	return enrollments, nil
}

func (f *fakeGateway) ListRatings(_ context.Context, eventID string) ([]eventsapi.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ratingsErr != nil {
		return nil, f.ratingsErr
	}
	return f.ratings[eventID], nil
}
