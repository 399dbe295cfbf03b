package eventsapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/paging"
	"github.com/tomnomnom/linkheader"
)

// ListEvents returns every event matching filter, following Link rel="next"
// pages when the backend paginates.
func (c *Client) ListEvents(ctx context.Context, filter EventFilter) ([]Event, error) {
	query := url.Values{}
	if filter.Type != "" {
		query.Set("event_type", filter.Type.backendValue())
	}
	if title := strings.TrimSpace(filter.Title); title != "" {
		query.Set("title", title)
	}
	first := "/events"
	if encoded := query.Encode(); encoded != "" {
		first += "?" + encoded
	}

	var decodeErr error
	events, err := paging.Collect(ctx, c.maxPages, func(ctx context.Context, cursor string) ([]wireEvent, string, error) {
		target := first
		if cursor != "" {
			target = cursor
		}
		resp, err := c.do(ctx, call{method: http.MethodGet, route: "/events", path: target})
		if err != nil {
			return nil, "", err
		}
		items, err := decodeList[wireEvent](resp, "events")
		if err != nil {
			return nil, "", err
		}
		return items, nextLink(resp), nil
	}, func(w wireEvent) (Event, bool) {
		event, err := c.decode.event(w)
		if err != nil {
			if decodeErr == nil {
				decodeErr = err
			}
			return Event{}, false
		}
		return event, true
	})
	if err != nil {
		return nil, err
	}
	if decodeErr != nil && len(events) == 0 {
		return nil, decodeErr
	}
	return events, nil
}

// nextLink returns the rel="next" target of an RFC 8288 Link header.
func nextLink(resp *resty.Response) string {
	for _, link := range linkheader.ParseMultiple(resp.Header().Values("Link")).FilterByRel("next") {
		if target := strings.TrimSpace(link.URL); target != "" {
			return target
		}
	}
	return ""
}

// GetEvent loads one event.
func (c *Client) GetEvent(ctx context.Context, id string) (Event, error) {
	resp, err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/events/{id}",
		path:   "/events/{id}",
		build:  func(r *resty.Request) { r.SetPathParam("id", id) },
	})
	if err != nil {
		return Event{}, err
	}
	return c.eventFrom(resp)
}

// CreateEvent creates an event. Schedule collisions come back as conflict errors.
func (c *Client) CreateEvent(ctx context.Context, input EventInput) (Event, error) {
	resp, err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/events",
		path:   "/events",
		build:  func(r *resty.Request) { r.SetBody(encodeEvent(input)) },
	})
	if err != nil {
		return Event{}, err
	}
	return c.eventFrom(resp)
}

// UpdateEvent replaces an event's writable fields.
func (c *Client) UpdateEvent(ctx context.Context, id string, input EventInput) (Event, error) {
	resp, err := c.do(ctx, call{
		method: http.MethodPut,
		route:  "/events/{id}",
		path:   "/events/{id}",
		build: func(r *resty.Request) {
			r.SetPathParam("id", id).SetBody(encodeEvent(input))
		},
	})
	if err != nil {
		return Event{}, err
	}
	return c.eventFrom(resp)
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	_, err := c.do(ctx, call{
		method: http.MethodDelete,
		route:  "/events/{id}",
		path:   "/events/{id}",
		build:  func(r *resty.Request) { r.SetPathParam("id", id) },
	})
	return err
}

func (c *Client) eventFrom(resp *resty.Response) (Event, error) {
	wire, err := decodeBody[wireEvent](resp, "event")
	if err != nil {
		return Event{}, err
	}
	return c.decode.event(wire)
}
