package eventsapi

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Register creates a participant account.
func (c *Client) Register(ctx context.Context, input UserInput) (User, error) {
	input.Role = RoleParticipant
	return c.CreateUser(ctx, input)
}

// CreateUser creates an account with the requested role.
func (c *Client) CreateUser(ctx context.Context, input UserInput) (User, error) {
	resp, err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/users",
		path:   "/users",
		build:  func(r *resty.Request) { r.SetBody(encodeUser(input)) },
	})
	if err != nil {
		return User{}, err
	}
	return c.userFrom(resp)
}

// CurrentUser returns the account owning the request token.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	resp, err := c.do(ctx, call{method: http.MethodGet, route: "/users/me", path: "/users/me"})
	if err != nil {
		return User{}, err
	}
	return c.userFrom(resp)
}

// ListUsers returns every account.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := c.do(ctx, call{method: http.MethodGet, route: "/users/all", path: "/users/all"})
	if err != nil {
		return nil, err
	}
	wires, err := decodeList[wireUser](resp, "users")
	if err != nil {
		return nil, err
	}
	users := make([]User, 0, len(wires))
	for _, wire := range wires {
		user, err := c.decode.user(wire)
		if err != nil {
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// UpdateUser replaces an account's profile. Blank phone, school and age are
// cleared; a blank password keeps the current one.
func (c *Client) UpdateUser(ctx context.Context, id string, input UserInput) (User, error) {
	resp, err := c.do(ctx, call{
		method: http.MethodPut,
		route:  "/users/{id}",
		path:   "/users/{id}",
		build: func(r *resty.Request) {
			r.SetPathParam("id", id).SetBody(encodeUserUpdate(input))
		},
	})
	if err != nil {
		return User{}, err
	}
	return c.userFrom(resp)
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, call{
		method: http.MethodDelete,
		route:  "/users/{id}",
		path:   "/users/{id}",
		build:  func(r *resty.Request) { r.SetPathParam("id", id) },
	})
	return err
}

// RequestPasswordReset asks the backend to send reset instructions.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/password-reset",
		path:   "/password-reset",
		build:  func(r *resty.Request) { r.SetBody(map[string]string{"email": email}) },
	})
	return err
}

func (c *Client) userFrom(resp *resty.Response) (User, error) {
	wire, err := decodeBody[wireUser](resp, "user")
	if err != nil {
		return User{}, err
	}
	return c.decode.user(wire)
}
