package eventsapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Enroll reserves a seat. Guest details are sent only for anonymous callers.
func (c *Client) Enroll(ctx context.Context, eventID string, guest GuestInput) (Enrollment, error) {
	resp, err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/events/{id}/inscribe",
		path:   "/events/{id}/inscribe",
		build: func(r *resty.Request) {
			r.SetPathParam("id", eventID).SetBody(guestBody{
				GuestName:  strings.TrimSpace(guest.Name),
				GuestEmail: strings.TrimSpace(guest.Email),
				GuestPhone: strings.TrimSpace(guest.Phone),
			})
		},
	})
	if err != nil {
		return Enrollment{}, err
	}
	wire, err := decodeBody[wireEnrollment](resp, "enrollment")
	if err != nil {
		return Enrollment{}, err
	}
	return c.decode.enrollment(wire)
}

// ListEnrollments returns the enrollments of one event.
func (c *Client) ListEnrollments(ctx context.Context, eventID string) ([]Enrollment, error) {
	return c.enrollments(ctx, call{
		method: http.MethodGet,
		route:  "/events/{id}/inscriptions",
		path:   "/events/{id}/inscriptions",
		build:  func(r *resty.Request) { r.SetPathParam("id", eventID) },
	})
}

// ListMyEnrollments returns the caller's enrollments.
func (c *Client) ListMyEnrollments(ctx context.Context) ([]Enrollment, error) {
	return c.enrollments(ctx, call{
		method: http.MethodGet,
		route:  "/users/me/inscriptions",
		path:   "/users/me/inscriptions",
	})
}

// CancelEnrollment releases a seat.
func (c *Client) CancelEnrollment(ctx context.Context, id string) error {
	_, err := c.do(ctx, call{
		method: http.MethodDelete,
		route:  "/inscriptions/{id}",
		path:   "/inscriptions/{id}",
		build:  func(r *resty.Request) { r.SetPathParam("id", id) },
	})
	return err
}

// CheckIn marks an enrollee as present.
func (c *Client) CheckIn(ctx context.Context, id string) error {
	_, err := c.do(ctx, call{
		method: http.MethodPut,
		route:  "/inscriptions/{id}/checkin",
		path:   "/inscriptions/{id}/checkin",
		build:  func(r *resty.Request) { r.SetPathParam("id", id) },
	})
	return err
}

func (c *Client) enrollments(ctx context.Context, in call) ([]Enrollment, error) {
	resp, err := c.do(ctx, in)
	if err != nil {
		return nil, err
	}
	wires, err := decodeList[wireEnrollment](resp, "enrollments")
	if err != nil {
		return nil, err
	}
	out := make([]Enrollment, 0, len(wires))
	for _, wire := range wires {
		enrollment, err := c.decode.enrollment(wire)
		if err != nil {
			continue
		}
		out = append(out, enrollment)
	}
	return out, nil
}
