package templates

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/meninasdigitais/eventos/internal/services/shared/i18nhttp"
	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	"golang.org/x/net/html"
	"golang.org/x/text/language"
)

var ptBR = i18nhttp.Printer(language.BrazilianPortuguese)

func render(t *testing.T, component templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := component.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func attr(node *html.Node, name string) (string, bool) {
	for _, a := range node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && match(node) {
			found = append(found, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return found
}

func withAttr(name, value string) func(*html.Node) bool {
	return func(node *html.Node) bool {
		got, ok := attr(node, name)
		return ok && got == value
	}
}

func text(node *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return strings.Join(strings.Fields(b.String()), " ")
}

func sampleEvent() eventsapi.Event {
	start := time.Date(2025, 3, 14, 14, 0, 0, 0, time.UTC)
	return eventsapi.Event{
		ID:          "7",
		Title:       "Introdução à Programação em Python",
		Description: "Fundamentos de Python",
		Type:        eventsapi.EventTypeWorkshop,
		Start:       start,
		End:         start.Add(2 * time.Hour),
		Location:    "Laboratório 1",
		Host:        "Profa. Maria Silva",
		Capacity:    30,
		Enrolled:    12,
		Public:      true,
	}
}

func enrollAction(t *testing.T, doc *html.Node) *html.Node {
	t.Helper()
	actions := findAll(doc, withAttr("data-action", "enroll"))
	if len(actions) != 1 {
		t.Fatalf("enroll actions = %d, want 1", len(actions))
	}
	return actions[0]
}

func TestEventCardShowsVacanciesAndEnabledAction(t *testing.T) {
	t.Parallel()

	doc := parse(t, render(t, EventCard(EventCardView{Event: sampleEvent(), SignedIn: true}, ptBR)))

	if got := text(doc); !strings.Contains(got, "18 vagas disponíveis de 30") {
		t.Fatalf("card text = %q, want vacancy line", got)
	}
	action := enrollAction(t, doc)
	if _, disabled := attr(action, "disabled"); disabled {
		t.Fatal("expected enabled enroll action")
	}
	if got := text(action); got != "Inscrever-se" {
		t.Fatalf("action label = %q", got)
	}
	if badges := findAll(doc, withAttr("data-badge", "full")); len(badges) != 0 {
		t.Fatal("did not expect sold out badge")
	}
}

func TestEventCardDisablesFullEvent(t *testing.T) {
	t.Parallel()

	event := sampleEvent()
	event.Enrolled = event.Capacity
	doc := parse(t, render(t, EventCard(EventCardView{Event: event, SignedIn: true}, ptBR)))

	action := enrollAction(t, doc)
	if _, disabled := attr(action, "disabled"); !disabled {
		t.Fatal("expected disabled enroll action")
	}
	if got := text(action); got != "Vagas Esgotadas" {
		t.Fatalf("action label = %q", got)
	}
	badges := findAll(doc, withAttr("data-badge", "full"))
	if len(badges) != 1 || text(badges[0]) != "Esgotado" {
		t.Fatalf("badges = %d, want one Esgotado badge", len(badges))
	}
}

func TestEventCardZeroCapacityIsUnavailable(t *testing.T) {
	t.Parallel()

	event := sampleEvent()
	event.Capacity, event.Enrolled = 0, 0
	doc := parse(t, render(t, EventCard(EventCardView{Event: event}, ptBR)))

	if _, disabled := attr(enrollAction(t, doc), "disabled"); !disabled {
		t.Fatal("expected zero capacity event to be unavailable")
	}
}

func TestEventCardUnlimitedEvent(t *testing.T) {
	t.Parallel()

	event := sampleEvent()
	event.Capacity, event.Unlimited = 0, true
	doc := parse(t, render(t, EventCard(EventCardView{Event: event}, ptBR)))

	if got := text(doc); !strings.Contains(got, "Vagas ilimitadas") {
		t.Fatalf("card text = %q, want unlimited line", got)
	}
	action := enrollAction(t, doc)
	if action.Data != "a" {
		t.Fatalf("anonymous enroll action = <%s>, want link to details", action.Data)
	}
	if href, _ := attr(action, "href"); href != "/events/7#enroll" {
		t.Fatalf("href = %q", href)
	}
}

func TestEventCardUsesEnglishCatalog(t *testing.T) {
	t.Parallel()

	en := i18nhttp.Printer(language.AmericanEnglish)
	doc := parse(t, render(t, EventCard(EventCardView{Event: sampleEvent(), SignedIn: true}, en)))
	if got := text(doc); !strings.Contains(got, "18 seats available of 30") || !strings.Contains(got, "03/14/2025") {
		t.Fatalf("card text = %q", got)
	}
}

func TestNavLinksByRole(t *testing.T) {
	t.Parallel()

	keys := func(links []NavLink) string {
		var out []string
		for _, link := range links {
			out = append(out, link.LabelKey)
		}
		return strings.Join(out, ",")
	}
	tests := []struct {
		name   string
		viewer ViewerChrome
		want   string
	}{
		{"anonymous", ViewerChrome{}, "core.nav.events,core.nav.about"},
		{"participant", ViewerChrome{SignedIn: true}, "core.nav.events,core.nav.about,core.nav.dashboard"},
		{"organizer", ViewerChrome{SignedIn: true, Staff: true}, "core.nav.events,core.nav.about,core.nav.dashboard,core.nav.admin,core.nav.statistics"},
		{"admin", ViewerChrome{SignedIn: true, Staff: true, Admin: true}, "core.nav.events,core.nav.about,core.nav.dashboard,core.nav.admin,core.nav.users,core.nav.statistics"},
	}
	for _, tc := range tests {
		if got := keys(NavLinks(tc.viewer, "/")); got != tc.want {
			t.Fatalf("%s: links = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestNavLinksMarksActiveSection(t *testing.T) {
	t.Parallel()

	viewer := ViewerChrome{SignedIn: true, Staff: true, Admin: true}
	active := func(path string) []string {
		var out []string
		for _, link := range NavLinks(viewer, path) {
			if link.Active {
				out = append(out, link.URL)
			}
		}
		return out
	}
	if got := active("/events/3"); len(got) != 1 || got[0] != "/events" {
		t.Fatalf("active(/events/3) = %v", got)
	}
	if got := active("/app/admin/users/4/edit"); len(got) != 1 || got[0] != "/app/admin/users" {
		t.Fatalf("active(users) = %v", got)
	}
	if got := active("/app/admin/events/4/edit"); len(got) != 1 || got[0] != "/app/admin" {
		t.Fatalf("active(admin) = %v", got)
	}
}

func TestLayoutWrapsChildren(t *testing.T) {
	t.Parallel()

	chrome := Chrome{
		Title:  "Eventos",
		Lang:   "pt-BR",
		Path:   "/events",
		Viewer: ViewerChrome{SignedIn: true, Name: "Ana"},
		Notice: &Notice{Kind: "success", Message: "Inscrição realizada!"},
	}
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p id="child">conteúdo</p>`)
		return err
	})
	var buf bytes.Buffer
	ctx := templ.WithChildren(context.Background(), body)
	if err := Layout(chrome, ptBR).Render(ctx, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	doc := parse(t, buf.String())

	if got := findAll(doc, withAttr("id", "child")); len(got) != 1 {
		t.Fatalf("children rendered %d times, want 1", len(got))
	}
	titles := findAll(doc, func(n *html.Node) bool { return n.Data == "title" })
	if len(titles) != 1 || text(titles[0]) != "Eventos | Meninas Digitais" {
		t.Fatalf("title = %v", titles)
	}
	if toasts := findAll(doc, withAttr("data-toast", "")); len(toasts) != 1 || text(toasts[0]) != "Inscrição realizada!" {
		t.Fatal("expected toast")
	}
	logout := findAll(doc, withAttr("action", "/logout"))
	if len(logout) != 1 {
		t.Fatal("expected logout form for signed-in viewer")
	}
}

func TestAuthPageShowsOnlyActiveTab(t *testing.T) {
	t.Parallel()

	doc := parse(t, render(t, AuthPage(AuthView{Tab: AuthTabSignup, Signup: SignupForm{Name: "Ana", Error: "auth.error.password_mismatch"}}, ptBR)))

	for _, panel := range []string{"login", "signup", "reset"} {
		nodes := findAll(doc, withAttr("data-panel", panel))
		if len(nodes) != 1 {
			t.Fatalf("panel %s missing", panel)
		}
		_, hidden := attr(nodes[0], "hidden")
		if hidden == (panel == "signup") {
			t.Fatalf("panel %s hidden = %v", panel, hidden)
		}
	}
	if got := text(doc); !strings.Contains(got, "As senhas não coincidem.") {
		t.Fatalf("expected localized form error, got %q", got)
	}
}

func TestEventDetailOffersGuestFormToAnonymousViewer(t *testing.T) {
	t.Parallel()

	view := EventDetailView{Event: sampleEvent()}
	doc := parse(t, render(t, EventDetailPage(view, ptBR)))
	if forms := findAll(doc, withAttr("data-guest-form", "")); len(forms) != 1 {
		t.Fatalf("guest forms = %d, want 1", len(forms))
	}
}

func TestEventDetailRatingSummary(t *testing.T) {
	t.Parallel()

	view := EventDetailView{
		Event:     sampleEvent(),
		SignedIn:  true,
		Enrolled:  true,
		Completed: true,
		CanRate:   true,
		Ratings:   []eventsapi.Rating{{ID: "1", Score: 5}, {ID: "2", Score: 3}},
		Average:   4,
		Rating:    RatingFormView{EventID: "7"},
	}
	markup := render(t, EventDetailPage(view, ptBR))
	if !strings.Contains(markup, `style="width: 80%"`) {
		t.Fatalf("expected 80%% star fill in %s", markup)
	}
	doc := parse(t, markup)
	if forms := findAll(doc, withAttr("action", "/events/7/rate")); len(forms) != 1 {
		t.Fatalf("rating forms = %d, want 1", len(forms))
	}
	if cancel := findAll(doc, withAttr("data-action", "cancel")); len(cancel) != 0 {
		t.Fatal("completed events cannot be cancelled")
	}
}

func TestPagesRenderWithZeroValues(t *testing.T) {
	t.Parallel()

	components := map[string]templ.Component{
		"home":              HomePage(HomeView{}, ptBR),
		"about":             AboutPage(ptBR),
		"error":             ErrorPage(ErrorView{Status: 404, TitleKey: "errors.page.not_found_title", MessageKey: "errors.page.not_found_message"}, ptBR),
		"events":            EventsPage(EventsListView{Types: eventsapi.EventTypes()}, ptBR),
		"dashboard":         DashboardPage(DashboardView{}, ptBR),
		"admin":             AdminPage(AdminView{Form: EventFormView{Types: eventsapi.EventTypes()}}, ptBR),
		"admin enrollments": AdminEnrollmentsPage(AdminEnrollmentsView{}, ptBR),
		"admin ratings":     AdminRatingsPage(AdminRatingsView{}, ptBR),
		"admin edit":        AdminEventEditPage(EventFormView{Editing: true}, ptBR),
		"users":             UsersPage(UsersView{Roles: eventsapi.Roles()}, ptBR),
		"user form":         UserFormPage(UserFormView{Roles: eventsapi.Roles()}, ptBR),
		"user delete":       UserDeletePage(UserDeleteView{}, ptBR),
		"statistics":        StatisticsPage(StatisticsView{}, ptBR),
		"navbar":            Navbar(Chrome{}, ptBR),
	}
	for name, component := range components {
		var buf bytes.Buffer
		if err := component.Render(context.Background(), &buf); err != nil {
			t.Fatalf("%s: render: %v", name, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("%s: empty output", name)
		}
	}
}

func TestStatisticsBarsScaleToLargestCount(t *testing.T) {
	t.Parallel()

	view := StatisticsView{
		ByType: []TypeCount{
			{Type: eventsapi.EventTypeWorkshop, Count: 4},
			{Type: eventsapi.EventTypeTalk, Count: 2},
			{Type: eventsapi.EventTypeMeeting, Count: 0},
		},
		ByMonth: []MonthCount{{Month: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Count: 3}},
	}
	markup := render(t, StatisticsPage(view, ptBR))
	for _, want := range []string{`style="width: 100%"`, `style="width: 50%"`, `style="width: 0%"`, "Mar/2025"} {
		if !strings.Contains(markup, want) {
			t.Fatalf("expected %q in statistics markup", want)
		}
	}
}
