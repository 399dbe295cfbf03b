package events

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/textsearch"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"
)

// Gateway abstracts the backend event, enrollment and rating operations.
type Gateway interface {
	ListEvents(ctx context.Context, filter eventsapi.EventFilter) ([]eventsapi.Event, error)
	GetEvent(ctx context.Context, id string) (eventsapi.Event, error)
	ListMyEnrollments(ctx context.Context) ([]eventsapi.Enrollment, error)
	ListRatings(ctx context.Context, eventID string) ([]eventsapi.Rating, error)
	Enroll(ctx context.Context, eventID string, guest eventsapi.GuestInput) (eventsapi.Enrollment, error)
	CancelEnrollment(ctx context.Context, id string) error
	CreateRating(ctx context.Context, input eventsapi.RatingInput) (eventsapi.Rating, error)
}

type service struct {
	gateway Gateway
	now     func() time.Time
}

func newService(gateway Gateway, now func() time.Time) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	if now == nil {
		now = time.Now
	}
	return service{gateway: gateway, now: now}
}

type listQuery struct {
	Text string
	Type string
}

// list returns the events visible to viewer matching q. The type filter goes
// to the backend; the text filter is applied here over title and description.
func (s service) list(ctx context.Context, viewer module.Viewer, q listQuery) (webtemplates.EventsListView, error) {
	view := webtemplates.EventsListView{Query: strings.TrimSpace(q.Text), Type: "all", Types: eventsapi.EventTypes()}
	filter := eventsapi.EventFilter{}
	if kind, ok := eventsapi.ParseEventType(q.Type); ok {
		filter.Type = kind
		view.Type = string(kind)
	}
	events, err := s.gateway.ListEvents(ctx, filter)
	if err != nil {
		return webtemplates.EventsListView{}, err
	}
	events = eventsapi.VisibleEvents(events, viewer.Staff())
	eventsapi.SortByStart(events)
	enrolled := s.enrolled(ctx, viewer)
	for _, event := range events {
		if filter.Type != "" && event.Type != filter.Type {
			continue
		}
		if !textsearch.Match(view.Query, event.Title, event.Description) {
			continue
		}
		_, isEnrolled := enrolled[event.ID]
		view.Cards = append(view.Cards, webtemplates.EventCardView{Event: event, SignedIn: viewer.SignedIn, Enrolled: isEnrolled})
	}
	return view, nil
}

// detail loads one event with its ratings and the viewer's relation to it.
// Private events answer not found to non-staff viewers.
func (s service) detail(ctx context.Context, viewer module.Viewer, eventID string) (webtemplates.EventDetailView, error) {
	event, err := s.visibleEvent(ctx, viewer, eventID)
	if err != nil {
		return webtemplates.EventDetailView{}, err
	}
	ratings, err := s.gateway.ListRatings(ctx, event.ID)
	if err != nil {
		log.Printf("web: list event ratings failed: event_id=%s err=%v", event.ID, err)
		ratings = nil
	}
	_, enrolled := s.enrolled(ctx, viewer)[event.ID]
	completed := event.Completed(s.now())
	return webtemplates.EventDetailView{
		Event:     event,
		SignedIn:  viewer.SignedIn,
		Enrolled:  enrolled,
		Completed: completed,
		CanRate:   enrolled && completed && !ratedBy(ratings, viewer.UserID),
		Ratings:   ratings,
		Average:   eventsapi.AverageScore(ratings),
		Rating:    webtemplates.RatingFormView{EventID: event.ID},
	}, nil
}

// enroll reserves a seat for the viewer, or for guest when nobody is signed
// in. Full and finished events are rejected before the backend call.
func (s service) enroll(ctx context.Context, viewer module.Viewer, eventID string, guest webtemplates.GuestForm) (eventsapi.Event, error) {
	event, err := s.visibleEvent(ctx, viewer, eventID)
	if err != nil {
		return eventsapi.Event{}, err
	}
	if event.Completed(s.now()) {
		return eventsapi.Event{}, apperrors.EK(apperrors.KindInvalidInput, "events.detail.finished", "event already happened")
	}
	if event.IsFull() {
		return eventsapi.Event{}, apperrors.EK(apperrors.KindConflict, "events.error.full", "event is full")
	}
	input := eventsapi.GuestInput{}
	if !viewer.SignedIn {
		input = eventsapi.GuestInput{Name: strings.TrimSpace(guest.Name), Email: strings.TrimSpace(guest.Email), Phone: strings.TrimSpace(guest.Phone)}
		if input.Name == "" || input.Email == "" {
			return eventsapi.Event{}, apperrors.EK(apperrors.KindInvalidInput, "events.error.guest_required", "guest name and email are required")
		}
	}
	if _, err := s.gateway.Enroll(ctx, event.ID, input); err != nil {
		return eventsapi.Event{}, err
	}
	return event, nil
}

// cancel releases the viewer's active enrollment in eventID.
func (s service) cancel(ctx context.Context, eventID string) error {
	enrollments, err := s.gateway.ListMyEnrollments(ctx)
	if err != nil {
		return err
	}
	enrollment, ok := eventsapi.ActiveByEvent(enrollments)[strings.TrimSpace(eventID)]
	if !ok {
		return apperrors.EK(apperrors.KindInvalidInput, "events.error.not_enrolled", "no active enrollment for event")
	}
	return s.gateway.CancelEnrollment(ctx, enrollment.ID)
}

// rate stores the viewer's rating. Only completed events the viewer was
// enrolled in and has not rated yet accept one.
func (s service) rate(ctx context.Context, viewer module.Viewer, eventID string, form webtemplates.RatingForm) error {
	if form.Score < 1 || form.Score > 5 {
		return apperrors.EK(apperrors.KindInvalidInput, "events.rating.score_invalid", "score must be between 1 and 5")
	}
	event, err := s.visibleEvent(ctx, viewer, eventID)
	if err != nil {
		return err
	}
	notAllowed := apperrors.EK(apperrors.KindForbidden, "events.rating.not_allowed", "event cannot be rated by viewer")
	if !event.Completed(s.now()) {
		return notAllowed
	}
	enrollments, err := s.gateway.ListMyEnrollments(ctx)
	if err != nil {
		return err
	}
	if _, ok := eventsapi.ActiveByEvent(enrollments)[event.ID]; !ok {
		return notAllowed
	}
	ratings, err := s.gateway.ListRatings(ctx, event.ID)
	if err != nil {
		return err
	}
	if ratedBy(ratings, viewer.UserID) {
		return notAllowed
	}
	_, err = s.gateway.CreateRating(ctx, eventsapi.RatingInput{
		EventID: event.ID,
		UserID:  viewer.UserID,
		Score:   form.Score,
		Comment: strings.TrimSpace(form.Comment),
	})
	return err
}

func (s service) visibleEvent(ctx context.Context, viewer module.Viewer, eventID string) (eventsapi.Event, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return eventsapi.Event{}, apperrors.E(apperrors.KindNotFound, "event id is required")
	}
	event, err := s.gateway.GetEvent(ctx, eventID)
	if err != nil {
		return eventsapi.Event{}, err
	}
	if !event.Public && !viewer.Staff() {
		return eventsapi.Event{}, apperrors.E(apperrors.KindNotFound, "event is private")
	}
	return event, nil
}

// enrolled indexes the viewer's active enrollments. Failures degrade to an
// empty index so the page still renders.
func (s service) enrolled(ctx context.Context, viewer module.Viewer) map[string]eventsapi.Enrollment {
	if !viewer.SignedIn {
		return nil
	}
	enrollments, err := s.gateway.ListMyEnrollments(ctx)
	if err != nil {
		log.Printf("web: list enrollments failed: user_id=%s err=%v", viewer.UserID, err)
		return nil
	}
	return eventsapi.ActiveByEvent(enrollments)
}

func ratedBy(ratings []eventsapi.Rating, userID string) bool {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false
	}
	for _, rating := range ratings {
		if rating.UserID == userID {
			return true
		}
	}
	return false
}
