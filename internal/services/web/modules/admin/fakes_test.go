package admin

import (
	"context"
	"sync"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
)

// fakeGateway implements Gateway for tests with configurable return values
// and call tracking.
type fakeGateway struct {
	mu          sync.Mutex
	events      []eventsapi.Event
	enrollments map[string][]eventsapi.Enrollment
	ratings     map[string][]eventsapi.Rating
	createErr   error
	ratingsErr  error

	created    []eventsapi.EventInput
	updated    map[string]eventsapi.EventInput
	deleted    []string
	checkedIn  []string
	cancelled  []string
	ratingHits int
}

func newFakeGateway(events ...eventsapi.Event) *fakeGateway {
	return &fakeGateway{
		events:      events,
		enrollments: map[string][]eventsapi.Enrollment{},
		ratings:     map[string][]eventsapi.Rating{},
		updated:     map[string]eventsapi.EventInput{},
	}
}

func (f *fakeGateway) ListEvents(context.Context, eventsapi.EventFilter) ([]eventsapi.Event, error) {
	return append([]eventsapi.Event(nil), f.events...), nil
}

func (f *fakeGateway) GetEvent(_ context.Context, id string) (eventsapi.Event, error) {
	for _, event := range f.events {
		if event.ID == id {
			return event, nil
		}
	}
	return eventsapi.Event{}, apperrors.E(apperrors.KindNotFound, "event not found")
}

func (f *fakeGateway) CreateEvent(_ context.Context, input eventsapi.EventInput) (eventsapi.Event, error) {
	f.created = append(f.created, input)
	if f.createErr != nil {
		return eventsapi.Event{}, f.createErr
	}
	return eventsapi.Event{ID: "new", Title: input.Title, Start: input.Start, End: input.End}, nil
}

func (f *fakeGateway) UpdateEvent(_ context.Context, id string, input eventsapi.EventInput) (eventsapi.Event, error) {
	f.updated[id] = input
	return eventsapi.Event{ID: id, Title: input.Title}, nil
}

func (f *fakeGateway) DeleteEvent(_ context.Context, id string) error {
	if _, err := f.GetEvent(context.Background(), id); err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeGateway) ListEnrollments(_ context.Context, eventID string) ([]eventsapi.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enrollments[eventID], nil
}

func (f *fakeGateway) CheckIn(_ context.Context, id string) error {
	f.checkedIn = append(f.checkedIn, id)
	return nil
}

func (f *fakeGateway) CancelEnrollment(_ context.Context, id string) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeGateway) ListRatings(_ context.Context, eventID string) ([]eventsapi.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ratingHits++
	if f.ratingsErr != nil {
		return nil, f.ratingsErr
	}
	return f.ratings[eventID], nil
}
