package publicauth

import (
	"context"
	"sync"

	"github.com/meninasdigitais/eventos/internal/services/shared/authctx"
	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	"github.com/meninasdigitais/eventos/internal/services/web/storage"
)

// fakeGateway implements Gateway for tests with configurable return values
// and call tracking.
type fakeGateway struct {
	token       eventsapi.Token
	loginErr    error
	user        eventsapi.User
	userErr     error
	registerErr error
	resetErr    error

	loginEmail  string
	userToken   string
	registered  []eventsapi.UserInput
	resetEmails []string
}

func (f *fakeGateway) Login(_ context.Context, email string, _ string) (eventsapi.Token, error) {
	f.loginEmail = email
	if f.loginErr != nil {
		return eventsapi.Token{}, f.loginErr
	}
	return f.token, nil
}

func (f *fakeGateway) CurrentUser(ctx context.Context) (eventsapi.User, error) {
	f.userToken, _ = authctx.AccessToken(ctx)
	if f.userErr != nil {
		return eventsapi.User{}, f.userErr
	}
	return f.user, nil
}

func (f *fakeGateway) Register(_ context.Context, input eventsapi.UserInput) (eventsapi.User, error) {
	f.registered = append(f.registered, input)
	if f.registerErr != nil {
		return eventsapi.User{}, f.registerErr
	}
	return eventsapi.User{ID: "u-new", Name: input.Name, Email: input.Email, Role: input.Role}, nil
}

func (f *fakeGateway) RequestPasswordReset(_ context.Context, email string) error {
	f.resetEmails = append(f.resetEmails, email)
	return f.resetErr
}

// fakeSessions records stored and deleted sessions.
type fakeSessions struct {
	mu      sync.Mutex
	put     []storage.Session
	deleted []string
	putErr  error
}

func (f *fakeSessions) PutSession(_ context.Context, session storage.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.put = append(f.put, session)
	return nil
}

func (f *fakeSessions) DeleteSession(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}
