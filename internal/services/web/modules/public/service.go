package public

import (
	"context"
	"log"
	"time"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"
)

const featuredLimit = 3

// Gateway loads the events featured on the home page.
type Gateway interface {
	ListEvents(context.Context, eventsapi.EventFilter) ([]eventsapi.Event, error)
	ListMyEnrollments(context.Context) ([]eventsapi.Enrollment, error)
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

// home builds the landing page. A backend failure leaves the featured list
// empty rather than failing the page.
func (s service) home(ctx context.Context, viewer module.Viewer) webtemplates.HomeView {
	view := webtemplates.HomeView{SignedIn: viewer.SignedIn}
	events, err := s.gateway.ListEvents(ctx, eventsapi.EventFilter{})
	if err != nil {
		log.Printf("web: list featured events failed: %v", err)
		return view
	}
	enrolled := map[string]eventsapi.Enrollment{}
	if viewer.SignedIn {
		mine, err := s.gateway.ListMyEnrollments(ctx)
		if err != nil {
			log.Printf("web: list viewer enrollments failed: user_id=%s err=%v", viewer.UserID, err)
		} else {
			enrolled = eventsapi.ActiveByEvent(mine)
		}
	}
	view.Featured = featured(events, s.now(), enrolled, viewer.SignedIn)
	return view
}

// featured picks the next public events by start time.
func featured(events []eventsapi.Event, now time.Time, enrolled map[string]eventsapi.Enrollment, signedIn bool) []webtemplates.EventCardView {
	upcoming := make([]eventsapi.Event, 0, len(events))
	for _, event := range eventsapi.VisibleEvents(events, false) {
		if event.Upcoming(now) {
			upcoming = append(upcoming, event)
		}
	}
	eventsapi.SortByStart(upcoming)
	if len(upcoming) > featuredLimit {
		upcoming = upcoming[:featuredLimit]
	}
	cards := make([]webtemplates.EventCardView, 0, len(upcoming))
	for _, event := range upcoming {
		_, isEnrolled := enrolled[event.ID]
		cards = append(cards, webtemplates.EventCardView{Event: event, SignedIn: signedIn, Enrolled: isEnrolled})
	}
	return cards
}
