package events

import (
	"context"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
)

// fakeGateway implements Gateway for tests with configurable return values
// and call tracking.
type fakeGateway struct {
	events      []eventsapi.Event
	enrollments []eventsapi.Enrollment
	ratings     map[string][]eventsapi.Rating
	listErr     error
	enrollErr   error
	ratingErr   error

	filters   []eventsapi.EventFilter
	enrolled  []eventsapi.GuestInput
	cancelled []string
	created   []eventsapi.RatingInput
}

func (f *fakeGateway) ListEvents(_ context.Context, filter eventsapi.EventFilter) ([]eventsapi.Event, error) {
	f.filters = append(f.filters, filter)
	if f.listErr != nil {
		return nil, f.listErr
	}
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

func (f *fakeGateway) ListMyEnrollments(context.Context) ([]eventsapi.Enrollment, error) {
	return f.enrollments, nil
}

func (f *fakeGateway) ListRatings(_ context.Context, eventID string) ([]eventsapi.Rating, error) {
	return f.ratings[eventID], nil
}

func (f *fakeGateway) Enroll(_ context.Context, eventID string, guest eventsapi.GuestInput) (eventsapi.Enrollment, error) {
	f.enrolled = append(f.enrolled, guest)
	if f.enrollErr != nil {
		return eventsapi.Enrollment{}, f.enrollErr
	}
	return eventsapi.Enrollment{ID: "en-new", EventID: eventID, Status: eventsapi.EnrollmentConfirmed}, nil
}

func (f *fakeGateway) CancelEnrollment(_ context.Context, id string) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeGateway) CreateRating(_ context.Context, input eventsapi.RatingInput) (eventsapi.Rating, error) {
	f.created = append(f.created, input)
	if f.ratingErr != nil {
		return eventsapi.Rating{}, f.ratingErr
	}
	return eventsapi.Rating{ID: "r-new", EventID: input.EventID, UserID: input.UserID, Score: input.Score}, nil
}
