package dashboard

import (
	"context"
	"log"
	"time"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"
	"golang.org/x/sync/errgroup"
)

// ratingLookups bounds concurrent rating lookups for completed events.
const ratingLookups = 4

// Gateway loads the viewer's enrollments and the events they point at.
type Gateway interface {
	ListEvents(ctx context.Context, filter eventsapi.EventFilter) ([]eventsapi.Event, error)
	ListMyEnrollments(ctx context.Context) ([]eventsapi.Enrollment, error)
	ListRatings(ctx context.Context, eventID string) ([]eventsapi.Rating, error)
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

// load joins the viewer's active enrollments with their events and splits
// them into the enrolled list, the upcoming calendar and the events still
// waiting for the viewer's rating.
func (s service) load(ctx context.Context, viewer module.Viewer) (webtemplates.DashboardView, error) {
	view := webtemplates.DashboardView{Name: viewer.DisplayName()}
	enrollments, err := s.gateway.ListMyEnrollments(ctx)
	if err != nil {
		return webtemplates.DashboardView{}, err
	}
	active := eventsapi.ActiveByEvent(enrollments)
	if len(active) == 0 {
		return view, nil
	}
	events, err := s.gateway.ListEvents(ctx, eventsapi.EventFilter{})
	if err != nil {
		return webtemplates.DashboardView{}, err
	}
	eventsapi.SortByStart(events)

	now := s.now()
	var completed []webtemplates.DashboardEntry
	for _, event := range events {
		enrollment, ok := active[event.ID]
		if !ok {
			continue
		}
		entry := webtemplates.DashboardEntry{
			Event:        event,
			EnrollmentID: enrollment.ID,
			Upcoming:     event.Upcoming(now),
			Rating:       webtemplates.RatingFormView{EventID: event.ID, Next: routepath.AppDashboard},
		}
		view.Enrolled = append(view.Enrolled, entry)
		if entry.Upcoming {
			view.Calendar = appendToDay(view.Calendar, entry)
		}
		if event.Completed(now) {
			completed = append(completed, entry)
		}
	}
	view.ToRate = s.unrated(ctx, viewer.UserID, completed)
	return view, nil
}

// unrated keeps the entries the viewer has not rated. Events whose ratings
// cannot be read are left out rather than offered twice.
func (s service) unrated(ctx context.Context, userID string, entries []webtemplates.DashboardEntry) []webtemplates.DashboardEntry {
	if len(entries) == 0 {
		return nil
	}
	rated := make([]bool, len(entries))
	failed := make([]bool, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ratingLookups)
	for i, entry := range entries {
		g.Go(func() error {
			ratings, err := s.gateway.ListRatings(gctx, entry.Event.ID)
			if err != nil {
				log.Printf("web: list event ratings failed: event_id=%s err=%v", entry.Event.ID, err)
				failed[i] = true
				return nil
			}
			for _, rating := range ratings {
				if rating.UserID == userID {
					rated[i] = true
					break
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	var out []webtemplates.DashboardEntry
	for i, entry := range entries {
		if !rated[i] && !failed[i] {
			out = append(out, entry)
		}
	}
	return out
}

// appendToDay adds entry to the calendar, opening a new day when it starts on
// a different date than the last one. Entries arrive sorted by start.
func appendToDay(days []webtemplates.CalendarDay, entry webtemplates.DashboardEntry) []webtemplates.CalendarDay {
	start := entry.Event.Start
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	if n := len(days); n > 0 && days[n-1].Day.Equal(day) {
		days[n-1].Entries = append(days[n-1].Entries, entry)
		return days
	}
	return append(days, webtemplates.CalendarDay{Day: day, Entries: []webtemplates.DashboardEntry{entry}})
}
