package eventsapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
)

// CreateRating stores a rating. Scores outside 1..5 are rejected before the call.
func (c *Client) CreateRating(ctx context.Context, input RatingInput) (Rating, error) {
	if input.Score < 1 || input.Score > 5 {
		return Rating{}, apperrors.EK(apperrors.KindInvalidInput, "events.rating.score_invalid", "score must be between 1 and 5")
	}
	eventID, err := strconv.Atoi(input.EventID)
	if err != nil {
		return Rating{}, apperrors.EK(apperrors.KindInvalidInput, "errors.not_found", fmt.Sprintf("event id %q is not numeric", input.EventID))
	}
	userID, err := strconv.Atoi(input.UserID)
	if err != nil {
		return Rating{}, apperrors.EK(apperrors.KindInvalidInput, "errors.session_expired", fmt.Sprintf("user id %q is not numeric", input.UserID))
	}
	resp, err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/ratings",
		path:   "/ratings",
		build: func(r *resty.Request) {
			r.SetBody(ratingBody{EventID: eventID, UserID: userID, Rating: input.Score, Comment: input.Comment})
		},
	})
	if err != nil {
		return Rating{}, err
	}
	wire, err := decodeBody[wireRating](resp, "rating")
	if err != nil {
		return Rating{}, err
	}
	return c.decode.rating(wire)
}

// ListRatings returns the ratings of one event.
func (c *Client) ListRatings(ctx context.Context, eventID string) ([]Rating, error) {
	resp, err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/ratings/event/{id}",
		path:   "/ratings/event/{id}",
		build:  func(r *resty.Request) { r.SetPathParam("id", eventID) },
	})
	if err != nil {
		return nil, err
	}
	wires, err := decodeList[wireRating](resp, "ratings")
	if err != nil {
		return nil, err
	}
	out := make([]Rating, 0, len(wires))
	for _, wire := range wires {
		rating, err := c.decode.rating(wire)
		if err != nil {
			continue
		}
		out = append(out, rating)
	}
	return out, nil
}
