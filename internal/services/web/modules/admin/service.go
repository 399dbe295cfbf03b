package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"
	"golang.org/x/sync/errgroup"
)

// rowLookups bounds concurrent per-event lookups for the tab tables.
const rowLookups = 4

// Gateway abstracts the backend operations the admin panel needs.
type Gateway interface {
	ListEvents(ctx context.Context, filter eventsapi.EventFilter) ([]eventsapi.Event, error)
	GetEvent(ctx context.Context, id string) (eventsapi.Event, error)
	CreateEvent(ctx context.Context, input eventsapi.EventInput) (eventsapi.Event, error)
	UpdateEvent(ctx context.Context, id string, input eventsapi.EventInput) (eventsapi.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	ListEnrollments(ctx context.Context, eventID string) ([]eventsapi.Enrollment, error)
	CheckIn(ctx context.Context, id string) error
	CancelEnrollment(ctx context.Context, id string) error
	ListRatings(ctx context.Context, eventID string) ([]eventsapi.Rating, error)
}

// conflictError names the existing event a new schedule collides with.
type conflictError struct {
	title string
}

func (e conflictError) Error() string {
	return fmt.Sprintf("event overlaps %q", e.title)
}

type service struct {
	gateway Gateway
	loc     *time.Location
}

func newService(gateway Gateway, loc *time.Location) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return service{gateway: gateway, loc: loc}
}

func normalizeTab(raw string) string {
	switch strings.TrimSpace(raw) {
	case routepath.AdminTabEnrollments:
		return routepath.AdminTabEnrollments
	case routepath.AdminTabRatings:
		return routepath.AdminTabRatings
	}
	return routepath.AdminTabEvents
}

func newEventForm() webtemplates.EventFormView {
	return webtemplates.EventFormView{Action: routepath.AppAdminEvents, Public: true, Types: eventsapi.EventTypes()}
}

// panel builds the admin view for tab with an empty create form.
func (s service) panel(ctx context.Context, tab string) (webtemplates.AdminView, error) {
	tab = normalizeTab(tab)
	events, err := s.gateway.ListEvents(ctx, eventsapi.EventFilter{})
	if err != nil {
		return webtemplates.AdminView{}, err
	}
	eventsapi.SortByStart(events)
	rows, err := s.rows(ctx, tab, events)
	if err != nil {
		return webtemplates.AdminView{}, err
	}
	return webtemplates.AdminView{Tab: tab, Rows: rows, Form: newEventForm()}, nil
}

// rows fills the per-event counters the tab shows. The events tab uses the
// counters the backend reports; the other tabs look each event up.
func (s service) rows(ctx context.Context, tab string, events []eventsapi.Event) ([]webtemplates.AdminEventRow, error) {
	rows := make([]webtemplates.AdminEventRow, len(events))
	for i, event := range events {
		rows[i] = webtemplates.AdminEventRow{Event: event, Enrollments: event.Enrolled}
	}
	if tab == routepath.AdminTabEvents {
		return rows, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rowLookups)
	for i := range rows {
		g.Go(func() error {
			id := rows[i].Event.ID
			if tab == routepath.AdminTabRatings {
				ratings, err := s.gateway.ListRatings(gctx, id)
				if err != nil {
					return fmt.Errorf("list ratings of event %s: %w", id, err)
				}
				rows[i].Ratings = len(ratings)
				rows[i].Average = eventsapi.AverageScore(ratings)
				return nil
			}
			enrollments, err := s.gateway.ListEnrollments(gctx, id)
			if err != nil {
				return fmt.Errorf("list enrollments of event %s: %w", id, err)
			}
			rows[i].Enrollments = eventsapi.CountActive(enrollments)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// create validates form, checks it against the loaded events for a schedule
// collision and stores the new event.
func (s service) create(ctx context.Context, form webtemplates.EventFormView) (eventsapi.Event, error) {
	input, err := parseEventForm(form, s.loc)
	if err != nil {
		return eventsapi.Event{}, err
	}
	existing, err := s.gateway.ListEvents(ctx, eventsapi.EventFilter{})
	if err != nil {
		return eventsapi.Event{}, err
	}
	if err := checkConflict(existing, "", input); err != nil {
		return eventsapi.Event{}, err
	}
	return s.gateway.CreateEvent(ctx, input)
}

// update stores the edited event. A stored event with no seats that is not
// unlimited has no backend equivalent for capacity 0, so saving it with 0
// (which means unlimited) must be an explicit new capacity instead.
func (s service) update(ctx context.Context, eventID string, form webtemplates.EventFormView) (eventsapi.Event, error) {
	input, err := parseEventForm(form, s.loc)
	if err != nil {
		return eventsapi.Event{}, err
	}
	existing, err := s.gateway.ListEvents(ctx, eventsapi.EventFilter{})
	if err != nil {
		return eventsapi.Event{}, err
	}
	for _, event := range existing {
		if event.ID == eventID && closedToEnrollment(event) && input.Capacity == 0 {
			return eventsapi.Event{}, apperrors.EK(apperrors.KindInvalidInput, "admin.error.capacity_closed", "event has no seats; capacity 0 would make it unlimited")
		}
	}
	if err := checkConflict(existing, eventID, input); err != nil {
		return eventsapi.Event{}, err
	}
	return s.gateway.UpdateEvent(ctx, eventID, input)
}

func closedToEnrollment(event eventsapi.Event) bool {
	return !event.Unlimited && event.Capacity == 0
}

func checkConflict(existing []eventsapi.Event, eventID string, input eventsapi.EventInput) error {
	candidate := eventsapi.Event{ID: eventID, Start: input.Start, End: input.End, Location: input.Location, Host: input.Host}
	for _, event := range existing {
		if candidate.Overlaps(event) {
			return conflictError{title: event.Title}
		}
	}
	return nil
}

func (s service) editForm(ctx context.Context, eventID string) (webtemplates.EventFormView, error) {
	event, err := s.gateway.GetEvent(ctx, eventID)
	if err != nil {
		return webtemplates.EventFormView{}, err
	}
	form := formFromEvent(event, s.loc)
	form.Action = routepath.AdminEvent(event.ID)
	return form, nil
}

func (s service) delete(ctx context.Context, eventID string) error {
	return s.gateway.DeleteEvent(ctx, strings.TrimSpace(eventID))
}

func (s service) enrollments(ctx context.Context, eventID string) (webtemplates.AdminEnrollmentsView, error) {
	event, err := s.gateway.GetEvent(ctx, eventID)
	if err != nil {
		return webtemplates.AdminEnrollmentsView{}, err
	}
	enrollments, err := s.gateway.ListEnrollments(ctx, event.ID)
	if err != nil {
		return webtemplates.AdminEnrollmentsView{}, err
	}
	return webtemplates.AdminEnrollmentsView{Event: event, Enrollments: enrollments}, nil
}

func (s service) ratings(ctx context.Context, eventID string) (webtemplates.AdminRatingsView, error) {
	event, err := s.gateway.GetEvent(ctx, eventID)
	if err != nil {
		return webtemplates.AdminRatingsView{}, err
	}
	ratings, err := s.gateway.ListRatings(ctx, event.ID)
	if err != nil {
		return webtemplates.AdminRatingsView{}, err
	}
	return webtemplates.AdminRatingsView{Event: event, Ratings: ratings, Average: eventsapi.AverageScore(ratings)}, nil
}

// checkIn marks enrollmentID present after confirming it belongs to eventID.
func (s service) checkIn(ctx context.Context, eventID string, enrollmentID string) error {
	if err := s.requireEnrollment(ctx, eventID, enrollmentID); err != nil {
		return err
	}
	return s.gateway.CheckIn(ctx, enrollmentID)
}

// removeEnrollment deletes enrollmentID after confirming it belongs to eventID.
func (s service) removeEnrollment(ctx context.Context, eventID string, enrollmentID string) error {
	if err := s.requireEnrollment(ctx, eventID, enrollmentID); err != nil {
		return err
	}
	return s.gateway.CancelEnrollment(ctx, enrollmentID)
}

func (s service) requireEnrollment(ctx context.Context, eventID string, enrollmentID string) error {
	enrollments, err := s.gateway.ListEnrollments(ctx, eventID)
	if err != nil {
		return err
	}
	for _, enrollment := range enrollments {
		if enrollment.ID == enrollmentID {
			return nil
		}
	}
	return apperrors.E(apperrors.KindNotFound, "enrollment does not belong to event")
}
