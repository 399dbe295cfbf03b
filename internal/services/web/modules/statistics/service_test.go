package statistics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func at(month time.Month, day int) time.Time {
	return time.Date(2026, month, day, 14, 0, 0, 0, time.UTC)
}

func event(id string, title string, kind eventsapi.EventType, start time.Time) eventsapi.Event {
	return eventsapi.Event{ID: id, Title: title, Type: kind, Start: start, End: start.Add(2 * time.Hour), Public: true}
}

func active(n int) []eventsapi.Enrollment {
	enrollments := make([]eventsapi.Enrollment, 0, n+1)
	for i := 0; i < n; i++ {
		enrollments = append(enrollments, eventsapi.Enrollment{ID: fmt.Sprintf("e%d", i), Status: eventsapi.EnrollmentConfirmed})
	}
	return append(enrollments, eventsapi.Enrollment{ID: "gone", Status: eventsapi.EnrollmentCancelled})
}

func fixture() *fakeGateway {
	return &fakeGateway{
		events: []eventsapi.Event{
			event("1", "Introdução à Programação", eventsapi.EventTypeWorkshop, at(1, 20)),
			event("2", "Robótica para Iniciantes", eventsapi.EventTypeWorkshop, at(2, 10)),
			event("3", "Carreiras em TI", eventsapi.EventTypeTalk, at(2, 25)),
			event("4", "Reunião de Planejamento", eventsapi.EventTypeMeeting, at(4, 2)),
		},
		enrollments: map[string][]eventsapi.Enrollment{"1": active(28), "2": active(25), "3": active(3)},
		ratings: map[string][]eventsapi.Rating{
			"1": {{Score: 5}, {Score: 5}, {Score: 4}},
			"2": {{Score: 5}},
		},
	}
}

func TestViewAggregatesEvents(t *testing.T) {
	t.Parallel()

	view, err := newService(fixture(), time.UTC, func() time.Time { return now }).view(context.Background())
	if err != nil {
		t.Fatalf("view() error = %v", err)
	}
	if view.TotalEvents != 4 || view.TotalEnrollments != 56 || view.Upcoming != 1 || view.Completed != 3 {
		t.Fatalf("totals = %+v", view)
	}
	if view.AveragePerEvent != 14 {
		t.Fatalf("AveragePerEvent = %v, want 14", view.AveragePerEvent)
	}
	if view.AverageRating != 4.75 {
		t.Fatalf("AverageRating = %v, want 4.75", view.AverageRating)
	}
	if got := fmt.Sprint(view.ByType); got != "[{workshop 2} {talk 1} {meeting 1}]" {
		t.Fatalf("ByType = %s", got)
	}
	if len(view.ByMonth) != 3 || view.ByMonth[0].Month.Month() != time.January || view.ByMonth[1].Count != 2 || view.ByMonth[2].Month.Month() != time.April {
		t.Fatalf("ByMonth = %+v", view.ByMonth)
	}
	if len(view.Top) != 4 || view.Top[0].Title != "Introdução à Programação" || view.Top[0].Rank != 1 || view.Top[3].Enrollments != 0 {
		t.Fatalf("Top = %+v", view.Top)
	}
}

func TestMonthsUseDisplayZone(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{events: []eventsapi.Event{
		event("1", "Virada", eventsapi.EventTypeTalk, time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC)),
	}}
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	view, err := newService(gateway, saoPaulo, func() time.Time { return now }).view(context.Background())
	if err != nil {
		t.Fatalf("view() error = %v", err)
	}
	if got := view.ByMonth[0].Month.Month(); got != time.February {
		t.Fatalf("month = %v, want February", got)
	}
}

func TestRankKeepsTopFive(t *testing.T) {
	t.Parallel()

	var stats []eventStats
	for i := 0; i < 7; i++ {
		stats = append(stats, eventStats{event: eventsapi.Event{Title: fmt.Sprintf("e%d", i)}, enrollments: i})
	}
	top := rank(stats)
	if len(top) != topEvents || top[0].Title != "e6" || top[4].Title != "e2" || top[4].Rank != 5 {
		t.Fatalf("rank() = %+v", top)
	}
}

func TestViewFailsWhenLookupFails(t *testing.T) {
	t.Parallel()

	gateway := fixture()
	gateway.ratingsErr = apperrors.E(apperrors.KindUnavailable, "down")
	_, err := newService(gateway, time.UTC, func() time.Time { return now }).view(context.Background())
	if !apperrors.Is(err, apperrors.KindUnavailable) {
		t.Fatalf("view() error = %v, want unavailable", err)
	}
}

func TestLookupsStayBounded(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	for i := 0; i < 20; i++ {
		gateway.events = append(gateway.events, event(fmt.Sprint(i), "e", eventsapi.EventTypeTalk, at(1, 1)))
	}
	if _, err := newService(gateway, time.UTC, nil).view(context.Background()); err != nil {
		t.Fatalf("view() error = %v", err)
	}
	if gateway.maxInFlight > eventLookups {
		t.Fatalf("max in flight = %d, want <= %d", gateway.maxInFlight, eventLookups)
	}
}
