package users

import (
	"context"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func unavailable() error {
	return apperrors.E(apperrors.KindUnavailable, "events backend is not configured")
}

func (unavailableGateway) ListUsers(context.Context) ([]eventsapi.User, error) {
	return nil, unavailable()
}

func (unavailableGateway) CreateUser(context.Context, eventsapi.UserInput) (eventsapi.User, error) {
	return eventsapi.User{}, unavailable()
}

func (unavailableGateway) UpdateUser(context.Context, string, eventsapi.UserInput) (eventsapi.User, error) {
	return eventsapi.User{}, unavailable()
}

func (unavailableGateway) DeleteUser(context.Context, string) error {
	return unavailable()
}
