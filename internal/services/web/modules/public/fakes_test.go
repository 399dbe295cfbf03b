package public

import (
	"context"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
)

// fakeGateway implements Gateway for tests with configurable return values
// and call tracking.
type fakeGateway struct {
	events          []eventsapi.Event
	enrollments     []eventsapi.Enrollment
	err             error
	enrollmentCalls int
}

func (f *fakeGateway) ListEvents(context.Context, eventsapi.EventFilter) ([]eventsapi.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeGateway) ListMyEnrollments(context.Context) ([]eventsapi.Enrollment, error) {
	f.enrollmentCalls++
	return f.enrollments, nil
}
