package admin

import (
	"context"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func unavailable() error {
	return apperrors.E(apperrors.KindUnavailable, "events backend is not configured")
}

func (unavailableGateway) ListEvents(context.Context, eventsapi.EventFilter) ([]eventsapi.Event, error) {
	return nil, unavailable()
}

func (unavailableGateway) GetEvent(context.Context, string) (eventsapi.Event, error) {
	return eventsapi.Event{}, unavailable()
}

func (unavailableGateway) CreateEvent(context.Context, eventsapi.EventInput) (eventsapi.Event, error) {
	return eventsapi.Event{}, unavailable()
}

func (unavailableGateway) UpdateEvent(context.Context, string, eventsapi.EventInput) (eventsapi.Event, error) {
	return eventsapi.Event{}, unavailable()
}

func (unavailableGateway) DeleteEvent(context.Context, string) error {
	return unavailable()
}

func (unavailableGateway) ListEnrollments(context.Context, string) ([]eventsapi.Enrollment, error) {
	return nil, unavailable()
}

func (unavailableGateway) CheckIn(context.Context, string) error {
	return unavailable()
}

func (unavailableGateway) CancelEnrollment(context.Context, string) error {
	return unavailable()
}

func (unavailableGateway) ListRatings(context.Context, string) ([]eventsapi.Rating, error) {
	return nil, unavailable()
}
