package admin

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/modulehandler"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
)

var organizer = module.Viewer{SignedIn: true, UserID: "2", Name: "Bia", Role: eventsapi.RoleOrganizer}

func scheduled(id string, title string, start time.Time, location string, host string) eventsapi.Event {
	return eventsapi.Event{
		ID:       id,
		Title:    title,
		Type:     eventsapi.EventTypeWorkshop,
		Start:    start,
		End:      start.Add(2 * time.Hour),
		Location: location,
		Host:     host,
		Capacity: 20,
		Enrolled: 3,
		Public:   true,
	}
}

func fixture() *fakeGateway {
	gateway := newFakeGateway(
		scheduled("2", "Palestra Carreiras", time.Date(2026, 4, 3, 10, 0, 0, 0, time.UTC), "Auditório", "Dra. Carla"),
		scheduled("1", "Oficina de Python", time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC), "Lab 1", "Profa. Ana"),
	)
	gateway.enrollments["1"] = []eventsapi.Enrollment{
		{ID: "en-1", EventID: "1", UserID: "7", UserName: "Ana", Status: eventsapi.EnrollmentConfirmed},
		{ID: "en-2", EventID: "1", GuestName: "Carla", GuestEmail: "carla@example.test", Status: eventsapi.EnrollmentPending},
		{ID: "en-3", EventID: "1", UserID: "8", Status: eventsapi.EnrollmentCancelled},
	}
	gateway.ratings["1"] = []eventsapi.Rating{{ID: "r1", EventID: "1", Score: 4}, {ID: "r2", EventID: "1", Score: 5, Comment: "Ótimo"}}
	return gateway
}

func mountAdmin(t *testing.T, gateway Gateway) http.Handler {
	t.Helper()

	base := modulehandler.NewBase(modulehandler.Resolvers{ResolveViewer: func(*http.Request) module.Viewer { return organizer }})
	mount, err := New(gateway, base, time.UTC).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != routepath.AdminPrefix {
		t.Fatalf("Prefix = %q", mount.Prefix)
	}
	return mount.Handler
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func post(h http.Handler, target string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func eventValues() url.Values {
	return url.Values{
		"title":      {"Oficina de Robótica"},
		"type":       {"workshop"},
		"date":       {"2026-04-05"},
		"start_time": {"09:00"},
		"end_time":   {"11:00"},
		"location":   {"Lab 2"},
		"host":       {"Profa. Dani"},
		"capacity":   {"15"},
		"public":     {"true"},
	}
}

func TestModuleIDReturnsAdmin(t *testing.T) {
	t.Parallel()

	if got := New(nil, modulehandler.NewTestBase(), nil).ID(); got != "admin" {
		t.Fatalf("ID() = %q, want %q", got, "admin")
	}
}

func TestPanelListsEventsByStart(t *testing.T) {
	t.Parallel()

	gateway := fixture()
	rr := get(mountAdmin(t, gateway), routepath.AppAdmin)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	first, second := strings.Index(body, "Oficina de Python"), strings.Index(body, "Palestra Carreiras")
	if first < 0 || second < first {
		t.Fatalf("events missing or unordered")
	}
	if !strings.Contains(body, "Criar Novo Evento") {
		t.Fatalf("missing create form")
	}
	if gateway.ratingHits != 0 {
		t.Fatalf("events tab looked up ratings %d times", gateway.ratingHits)
	}
}

func TestPanelTabsLoadCounters(t *testing.T) {
	t.Parallel()

	gateway := fixture()
	h := mountAdmin(t, gateway)

	enrollments := get(h, routepath.AppAdminTab(routepath.AdminTabEnrollments)).Body.String()
	if !strings.Contains(enrollments, "<td>2 / 20</td>") {
		t.Fatalf("enrollments tab missing active count: %q", enrollments)
	}

	ratings := get(h, routepath.AppAdminTab(routepath.AdminTabRatings)).Body.String()
	if !strings.Contains(ratings, "4.5 ★") {
		t.Fatalf("ratings tab missing average: %q", ratings)
	}
	if gateway.ratingHits != 2 {
		t.Fatalf("rating lookups = %d, want 2", gateway.ratingHits)
	}
}

func TestPanelFailsWhenLookupFails(t *testing.T) {
	t.Parallel()

	gateway := fixture()
	gateway.ratingsErr = apperrors.E(apperrors.KindUnavailable, "down")
	rr := get(mountAdmin(t, gateway), routepath.AppAdminTab(routepath.AdminTabRatings))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestCreateEventRedirectsWithNotice(t *testing.T) {
	t.Parallel()

	gateway := fixture()
	rr := post(mountAdmin(t, gateway), routepath.AppAdminEvents, eventValues())
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusSeeOther, rr.Body.String())
	}
	if got := rr.Header().Get("Location"); got != routepath.AppAdmin {
		t.Fatalf("Location = %q", got)
	}
	if len(gateway.created) != 1 || gateway.created[0].Title != "Oficina de Robótica" || gateway.created[0].Capacity != 15 {
		t.Fatalf("created = %+v", gateway.created)
	}
}

func TestCreateEventRejectsOverlapBeforeBackend(t *testing.T) {
	t.Parallel()

	gateway := fixture()
	values := eventValues()
	values.Set("date", "2026-04-02")
	values.Set("start_time", "15:00")
	values.Set("end_time", "17:00")
	values.Set("location", "lab 1")
	rr := post(mountAdmin(t, gateway), routepath.AppAdminEvents, values)

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "data-conflict") || !strings.Contains(body, "Oficina de Python") {
		t.Fatalf("missing conflict message: %q", body)
	}
	if !strings.Contains(body, `value="Oficina de Robótica"`) {
		t.Fatalf("form lost submitted title")
	}
	if len(gateway.created) != 0 {
		t.Fatalf("backend called despite conflict")
	}
}

func TestCreateEventMapsBackendConflict(t *testing.T) {
	t.Parallel()

	gateway := fixture()
	gateway.createErr = apperrors.E(apperrors.KindConflict, "409")
	rr := post(mountAdmin(t, gateway), routepath.AppAdminEvents, eventValues())
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
	if !strings.Contains(rr.Body.String(), "Já existe um evento no mesmo horário e local ou com o mesmo instrutor.") {
		t.Fatalf("missing conflict message")
	}
}

func TestCreateEventValidation(t *testing.T) {
	t.Parallel()

	values := eventValues()
	values.Del("title")
	rr := post(mountAdmin(t, fixture()), routepath.AppAdminEvents, values)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rr.Body.String(), "Informe o título do evento.") {
		t.Fatalf("missing validation message")
	}
}

func TestCreateEventBackendFailureRendersErrorPage(t *testing.T) {
	t.Parallel()

	gateway := fixture()
	gateway.createErr = errors.New("boom")
	rr := post(mountAdmin(t, gateway), routepath.AppAdminEvents, eventValues())
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

func TestEditAndUpdateEvent(t *testing.T) {
	t.Parallel()

	gateway := fixture()
	h := mountAdmin(t, gateway)

	edit := get(h, routepath.AdminEventEdit("1"))
	if edit.Code != http.StatusOK {
		t.Fatalf("edit status = %d", edit.Code)
	}
	for _, marker := range []string{`value="2026-04-02"`, `value="14:00"`, `value="16:00"`, `action="/app/admin/events/1"`, "Salvar alterações"} {
		if !strings.Contains(edit.Body.String(), marker) {
			t.Fatalf("edit form missing %q", marker)
		}
	}

	values := eventValues()
	values.Set("date", "2026-04-02")
	values.Set("start_time", "14:30")
	values.Set("end_time", "16:30")
	values.Set("location", "Lab 1")
	rr := post(h, routepath.AdminEvent("1"), values)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("update status = %d, want %d: %s", rr.Code, http.StatusSeeOther, rr.Body.String())
	}
	if _, ok := gateway.updated["1"]; !ok {
		t.Fatalf("event 1 not updated (an event must not conflict with itself)")
	}
}

func TestUpdateSoldOutEventNeedsExplicitCapacity(t *testing.T) {
	t.Parallel()

	closed := scheduled("3", "Reunião de Mentoras", time.Date(2026, 4, 8, 18, 0, 0, 0, time.UTC), "Sala 4", "Profa. Bia")
	closed.Capacity = 0
	closed.Enrolled = 0

	tests := []struct {
		name     string
		capacity string
		status   int
		updated  bool
	}{
		{name: "zero would open unlimited seats", capacity: "0", status: http.StatusBadRequest},
		{name: "blank would open unlimited seats", capacity: "", status: http.StatusBadRequest},
		{name: "explicit capacity", capacity: "12", status: http.StatusSeeOther, updated: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gateway := fixture()
			gateway.events = append(gateway.events, closed)
			values := eventValues()
			values.Set("capacity", tc.capacity)
			rr := post(mountAdmin(t, gateway), routepath.AdminEvent("3"), values)
			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tc.status, rr.Body.String())
			}
			if _, ok := gateway.updated["3"]; ok != tc.updated {
				t.Fatalf("updated = %v, want %v", ok, tc.updated)
			}
			if !tc.updated && !strings.Contains(rr.Body.String(), "Este evento está sem vagas.") {
				t.Fatalf("missing closed-capacity message")
			}
		})
	}
}

func TestEditUnknownEventIsNotFound(t *testing.T) {
	t.Parallel()

	rr := get(mountAdmin(t, fixture()), routepath.AdminEventEdit("missing"))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestDeleteEvent(t *testing.T) {
	t.Parallel()

	gateway := fixture()
	rr := post(mountAdmin(t, gateway), routepath.AdminEventDelete("2"), url.Values{})
	if rr.Code != http.StatusSeeOther || len(gateway.deleted) != 1 || gateway.deleted[0] != "2" {
		t.Fatalf("status = %d deleted = %v", rr.Code, gateway.deleted)
	}
}

func TestEnrollmentsPageAndActions(t *testing.T) {
	t.Parallel()

	gateway := fixture()
	h := mountAdmin(t, gateway)

	page := get(h, routepath.AdminEventEnrollments("1"))
	body := page.Body.String()
	for _, marker := range []string{"Inscrições: Oficina de Python", "carla@example.test", "Convidada", "Confirmada", "Pendente"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("enrollments page missing %q", marker)
		}
	}

	checkIn := post(h, routepath.AdminEnrollmentCheckIn("1", "en-2"), url.Values{})
	if checkIn.Code != http.StatusSeeOther || checkIn.Header().Get("Location") != routepath.AdminEventEnrollments("1") {
		t.Fatalf("check-in status = %d location = %q", checkIn.Code, checkIn.Header().Get("Location"))
	}
	remove := post(h, routepath.AdminEnrollmentDelete("1", "en-1"), url.Values{})
	if remove.Code != http.StatusSeeOther {
		t.Fatalf("remove status = %d", remove.Code)
	}
	if len(gateway.checkedIn) != 1 || gateway.checkedIn[0] != "en-2" || len(gateway.cancelled) != 1 || gateway.cancelled[0] != "en-1" {
		t.Fatalf("checkedIn = %v cancelled = %v", gateway.checkedIn, gateway.cancelled)
	}
}

func TestEnrollmentActionRejectsForeignEnrollment(t *testing.T) {
	t.Parallel()

	gateway := fixture()
	rr := post(mountAdmin(t, gateway), routepath.AdminEnrollmentCheckIn("2", "en-1"), url.Values{})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if len(gateway.checkedIn) != 0 {
		t.Fatalf("foreign enrollment checked in")
	}
}

func TestRatingsPage(t *testing.T) {
	t.Parallel()

	rr := get(mountAdmin(t, fixture()), routepath.AdminEventRatings("1"))
	body := rr.Body.String()
	for _, marker := range []string{"Avaliações: Oficina de Python", "4.5", "width: 90%", "Ótimo"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("ratings page missing %q", marker)
		}
	}
}
