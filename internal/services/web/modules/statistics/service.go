package statistics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"
	"golang.org/x/sync/errgroup"
)

const (
	// eventLookups bounds concurrent per-event enrollment and rating reads.
	eventLookups = 4
	topEvents    = 5
)

// Gateway abstracts the backend reads the statistics page aggregates.
type Gateway interface {
	ListEvents(ctx context.Context, filter eventsapi.EventFilter) ([]eventsapi.Event, error)
	ListEnrollments(ctx context.Context, eventID string) ([]eventsapi.Enrollment, error)
	ListRatings(ctx context.Context, eventID string) ([]eventsapi.Rating, error)
}

// eventStats is what the lookups found for one event.
type eventStats struct {
	event       eventsapi.Event
	enrollments int
	ratings     []eventsapi.Rating
}

type service struct {
	gateway Gateway
	loc     *time.Location
	now     func() time.Time
}

func newService(gateway Gateway, loc *time.Location, now func() time.Time) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return service{gateway: gateway, loc: loc, now: now}
}

// load reads every event and fans out the per-event lookups.
func (s service) load(ctx context.Context) ([]eventStats, error) {
	events, err := s.gateway.ListEvents(ctx, eventsapi.EventFilter{})
	if err != nil {
		return nil, err
	}
	eventsapi.SortByStart(events)

	stats := make([]eventStats, len(events))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(eventLookups)
	for i, event := range events {
		stats[i].event = event
		g.Go(func() error {
			enrollments, err := s.gateway.ListEnrollments(gctx, event.ID)
			if err != nil {
				return fmt.Errorf("list enrollments of event %s: %w", event.ID, err)
			}
			ratings, err := s.gateway.ListRatings(gctx, event.ID)
			if err != nil {
				return fmt.Errorf("list ratings of event %s: %w", event.ID, err)
			}
			stats[i].enrollments = eventsapi.CountActive(enrollments)
			stats[i].ratings = ratings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s service) view(ctx context.Context) (webtemplates.StatisticsView, error) {
	stats, err := s.load(ctx)
	if err != nil {
		return webtemplates.StatisticsView{}, err
	}
	return summarize(stats, s.now(), s.loc), nil
}

// report renders the plain-text report with its download file name.
func (s service) report(ctx context.Context) (string, []byte, error) {
	view, err := s.view(ctx)
	if err != nil {
		return "", nil, err
	}
	day := s.now().In(s.loc)
	return reportFileName(day), []byte(renderReport(view, day)), nil
}

// summarize aggregates stats. Months are taken in loc.
func summarize(stats []eventStats, now time.Time, loc *time.Location) webtemplates.StatisticsView {
	view := webtemplates.StatisticsView{
		TotalEvents: len(stats),
		ReportURL:   routepath.AppStatisticsReport,
	}
	byType := make(map[eventsapi.EventType]int)
	var allRatings []eventsapi.Rating
	for _, entry := range stats {
		view.TotalEnrollments += entry.enrollments
		allRatings = append(allRatings, entry.ratings...)
		byType[entry.event.Type]++
		if entry.event.Upcoming(now) {
			view.Upcoming++
		}
		if entry.event.Completed(now) {
			view.Completed++
		}
		view.ByMonth = addToMonth(view.ByMonth, entry.event.Start.In(loc))
	}
	view.AverageRating = eventsapi.AverageScore(allRatings)
	if len(stats) > 0 {
		view.AveragePerEvent = float64(view.TotalEnrollments) / float64(len(stats))
	}
	for _, kind := range eventsapi.EventTypes() {
		view.ByType = append(view.ByType, webtemplates.TypeCount{Type: kind, Count: byType[kind]})
	}
	sort.SliceStable(view.ByMonth, func(i, j int) bool {
		return view.ByMonth[i].Month.Before(view.ByMonth[j].Month)
	})
	view.Top = rank(stats)
	return view
}

func addToMonth(months []webtemplates.MonthCount, start time.Time) []webtemplates.MonthCount {
	if start.IsZero() {
		return months
	}
	month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	for i := range months {
		if months[i].Month.Equal(month) {
			months[i].Count++
			return months
		}
	}
	return append(months, webtemplates.MonthCount{Month: month, Count: 1})
}

// rank orders events by enrollments, most first, and keeps the top ones.
// Ties keep start order.
func rank(stats []eventStats) []webtemplates.TopEvent {
	ordered := append([]eventStats(nil), stats...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].enrollments > ordered[j].enrollments
	})
	if len(ordered) > topEvents {
		ordered = ordered[:topEvents]
	}
	top := make([]webtemplates.TopEvent, 0, len(ordered))
	for i, entry := range ordered {
		top = append(top, webtemplates.TopEvent{
			Rank:        i + 1,
			Title:       entry.event.Title,
			Enrollments: entry.enrollments,
			Average:     eventsapi.AverageScore(entry.ratings),
		})
	}
	return top
}
