package users

import (
	"context"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
)

type fakeGateway struct {
	users     []eventsapi.User
	listErr   error
	createErr error

	created []eventsapi.UserInput
	updated map[string]eventsapi.UserInput
	deleted []string
}

func newFakeGateway(users ...eventsapi.User) *fakeGateway {
	return &fakeGateway{users: users, updated: map[string]eventsapi.UserInput{}}
}

func (f *fakeGateway) ListUsers(context.Context) ([]eventsapi.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]eventsapi.User(nil), f.users...), nil
}

func (f *fakeGateway) CreateUser(_ context.Context, input eventsapi.UserInput) (eventsapi.User, error) {
	if f.createErr != nil {
		return eventsapi.User{}, f.createErr
	}
	f.created = append(f.created, input)
	return eventsapi.User{ID: "new", Name: input.Name, Email: input.Email, Role: input.Role}, nil
}

func (f *fakeGateway) UpdateUser(_ context.Context, id string, input eventsapi.UserInput) (eventsapi.User, error) {
	f.updated[id] = input
	return eventsapi.User{ID: id, Name: input.Name}, nil
}

func (f *fakeGateway) DeleteUser(_ context.Context, id string) error {
	for _, user := range f.users {
		if user.ID == id {
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return apperrors.E(apperrors.KindNotFound, "user not found")
}
