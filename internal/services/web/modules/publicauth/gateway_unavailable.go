package publicauth

import (
	"context"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
	"github.com/meninasdigitais/eventos/internal/services/web/storage"
)

type unavailableGateway struct{}

func (unavailableGateway) Login(context.Context, string, string) (eventsapi.Token, error) {
	return eventsapi.Token{}, apperrors.E(apperrors.KindUnavailable, "events backend is not configured")
}

func (unavailableGateway) CurrentUser(context.Context) (eventsapi.User, error) {
	return eventsapi.User{}, apperrors.E(apperrors.KindUnavailable, "events backend is not configured")
}

func (unavailableGateway) Register(context.Context, eventsapi.UserInput) (eventsapi.User, error) {
	return eventsapi.User{}, apperrors.E(apperrors.KindUnavailable, "events backend is not configured")
}

func (unavailableGateway) RequestPasswordReset(context.Context, string) error {
	return apperrors.E(apperrors.KindUnavailable, "events backend is not configured")
}

type unavailableSessions struct{}

func (unavailableSessions) PutSession(context.Context, storage.Session) error {
	return apperrors.E(apperrors.KindUnavailable, "session store is not configured")
}

func (unavailableSessions) DeleteSession(context.Context, string) error {
	return apperrors.E(apperrors.KindUnavailable, "session store is not configured")
}
