package events

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

func (unavailableGateway) ListMyEnrollments(context.Context) ([]eventsapi.Enrollment, error) {
	return nil, unavailable()
}

func (unavailableGateway) ListRatings(context.Context, string) ([]eventsapi.Rating, error) {
	return nil, unavailable()
}

func (unavailableGateway) Enroll(context.Context, string, eventsapi.GuestInput) (eventsapi.Enrollment, error) {
	return eventsapi.Enrollment{}, unavailable()
}

func (unavailableGateway) CancelEnrollment(context.Context, string) error {
	return unavailable()
}

func (unavailableGateway) CreateRating(context.Context, eventsapi.RatingInput) (eventsapi.Rating, error) {
	return eventsapi.Rating{}, unavailable()
}
