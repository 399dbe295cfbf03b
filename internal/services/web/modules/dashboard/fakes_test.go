package dashboard

import (
	"context"
	"sync"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
)

// fakeGateway implements Gateway for tests with configurable return values
// and call tracking.
type fakeGateway struct {
	mu             sync.Mutex
	events         []eventsapi.Event
	enrollments    []eventsapi.Enrollment
	ratings        map[string][]eventsapi.Rating
	ratingErrs     map[string]error
	enrollmentsErr error
	eventCalls     int
}

func (f *fakeGateway) ListEvents(context.Context, eventsapi.EventFilter) ([]eventsapi.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.eventCalls++
	return append([]eventsapi.Event(nil), f.events...), nil
}

func (f *fakeGateway) ListMyEnrollments(context.Context) ([]eventsapi.Enrollment, error) {
	if f.enrollmentsErr != nil {
		return nil, f.enrollmentsErr
	}
	return f.enrollments, nil
}

func (f *fakeGateway) ListRatings(_ context.Context, eventID string) ([]eventsapi.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ratingErrs[eventID]; err != nil {
		return nil, err
	}
	return f.ratings[eventID], nil
}
