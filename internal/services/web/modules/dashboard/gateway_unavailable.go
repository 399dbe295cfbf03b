package dashboard

import (
	"context"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func (unavailableGateway) ListEvents(context.Context, eventsapi.EventFilter) ([]eventsapi.Event, error) {
	return nil, apperrors.E(apperrors.KindUnavailable, "events backend is not configured")
}

func (unavailableGateway) ListMyEnrollments(context.Context) ([]eventsapi.Enrollment, error) {
	return nil, apperrors.E(apperrors.KindUnavailable, "events backend is not configured")
}

func (unavailableGateway) ListRatings(context.Context, string) ([]eventsapi.Rating, error) {
	return nil, apperrors.E(apperrors.KindUnavailable, "events backend is not configured")
}
