package templates

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"time"

	"github.com/a-h/templ"
	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
)

//go:embed html/*.html
var files embed.FS

var base = template.Must(template.New("templates").Funcs(funcs(nil)).ParseFS(files, "html/*.html"))

type routeTable struct {
	Root       string
	About      string
	Events     string
	Login      string
	LoginTab   string
	SignupTab  string
	ResetTab   string
	Signup     string
	Reset      string
	Logout     string
	Dashboard  string
	Admin      string
	AdminNew   string
	Users      string
	UsersNew   string
	Statistics string
	Static     string
}

var routes = routeTable{
	Root:       routepath.Root,
	About:      routepath.About,
	Events:     routepath.Events,
	Login:      routepath.Login,
	LoginTab:   routepath.Login + "?tab=" + AuthTabLogin,
	SignupTab:  routepath.Login + "?tab=" + AuthTabSignup,
	ResetTab:   routepath.Login + "?tab=" + AuthTabReset,
	Signup:     routepath.Signup,
	Reset:      routepath.Reset,
	Logout:     routepath.Logout,
	Dashboard:  routepath.AppDashboard,
	Admin:      routepath.AppAdmin,
	AdminNew:   routepath.AppAdminEvents,
	Users:      routepath.AppUsers,
	UsersNew:   routepath.AppUsersNew,
	Statistics: routepath.AppStatistics,
	Static:     routepath.Static,
}

func funcs(loc Localizer) template.FuncMap {
	t := func(key string, args ...any) string {
		return T(loc, key, args...)
	}
	return template.FuncMap{
		"t":      t,
		"routes": func() routeTable { return routes },
		"date": func(value time.Time) string {
			if value.IsZero() {
				return ""
			}
			return value.Format(t("core.format.date"))
		},
		"clock": func(value time.Time) string {
			if value.IsZero() {
				return ""
			}
			return value.Format("15:04")
		},
		"month": func(value time.Time) string {
			return fmt.Sprintf("%s/%d", t(fmt.Sprintf("core.month.%d", int(value.Month()))), value.Year())
		},
		"typeLabel": func(kind eventsapi.EventType) string {
			return t("events.type." + string(kind))
		},
		"roleLabel": func(role eventsapi.Role) string {
			return t("users.role." + string(role))
		},
		"statusLabel": func(status eventsapi.EnrollmentStatus) string {
			return t("admin.enrollments.status." + string(status))
		},
		"score": func(value float64) string {
			return fmt.Sprintf("%.1f", value)
		},
		"starFill": func(average float64) template.CSS {
			return widthPercent(average, 5)
		},
		"barWidth": func(value int, limit int) template.CSS {
			return widthPercent(float64(value), float64(limit))
		},
		"stars": func(score int) []bool {
			stars := make([]bool, 5)
			for i := range stars {
				stars[i] = i < score
			}
			return stars
		},
		"seq": func(from int, to int) []int {
			var values []int
			for i := from; i <= to; i++ {
				values = append(values, i)
			}
			return values
		},
		"maxTypeCount": func(counts []TypeCount) int {
			highest := 0
			for _, count := range counts {
				if count.Count > highest {
					highest = count.Count
				}
			}
			return highest
		},
		"maxMonthCount": func(counts []MonthCount) int {
			highest := 0
			for _, count := range counts {
				if count.Count > highest {
					highest = count.Count
				}
			}
			return highest
		},
		"eventURL":            routepath.Event,
		"enrollURL":           routepath.EventEnroll,
		"cancelURL":           routepath.EventCancel,
		"rateURL":             routepath.EventRate,
		"adminTabURL":         routepath.AppAdminTab,
		"adminEventURL":       routepath.AdminEvent,
		"adminEditURL":        routepath.AdminEventEdit,
		"adminDeleteURL":      routepath.AdminEventDelete,
		"enrollmentsURL":      routepath.AdminEventEnrollments,
		"checkInURL":          routepath.AdminEnrollmentCheckIn,
		"enrollmentDeleteURL": routepath.AdminEnrollmentDelete,
		"ratingsURL":          routepath.AdminEventRatings,
		"userURL":             routepath.User,
		"userEditURL":         routepath.UserEdit,
		"userDeleteURL":       routepath.UserDelete,
	}
}

func widthPercent(value float64, limit float64) template.CSS {
	if limit <= 0 || value <= 0 {
		return template.CSS("width: 0%")
	}
	percent := math.Round(math.Min(value/limit, 1) * 100)
	return template.CSS(fmt.Sprintf("width: %.0f%%", percent))
}

func execute(w io.Writer, name string, loc Localizer, data any) error {
	tmpl, err := base.Clone()
	if err != nil {
		return fmt.Errorf("clone templates: %w", err)
	}
	if err := tmpl.Funcs(funcs(loc)).ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

func component(name string, loc Localizer, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return execute(w, name, loc, data)
	})
}

type layoutData struct {
	Chrome
	Nav  []NavLink
	Body template.HTML
}

// Layout wraps its children in the document shell.
func Layout(chrome Chrome, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var body bytes.Buffer
		children := templ.GetChildren(ctx)
		if err := children.Render(templ.ClearChildren(ctx), &body); err != nil {
			return err
		}
		return execute(w, "layout", loc, layoutData{
			Chrome: chrome,
			Nav:    NavLinks(chrome.Viewer, chrome.Path),
			Body:   template.HTML(body.String()),
		})
	})
}

// Navbar renders the top navigation.
func Navbar(chrome Chrome, loc Localizer) templ.Component {
	return component("navbar", loc, layoutData{Chrome: chrome, Nav: NavLinks(chrome.Viewer, chrome.Path)})
}

// EventCard renders one event card.
func EventCard(view EventCardView, loc Localizer) templ.Component {
	return component("event_card", loc, view)
}

// HomePage renders the landing page.
func HomePage(view HomeView, loc Localizer) templ.Component {
	return component("page.home", loc, view)
}

// AboutPage renders the program description.
func AboutPage(loc Localizer) templ.Component {
	return component("page.about", loc, nil)
}

// ErrorPage renders a localized error.
func ErrorPage(view ErrorView, loc Localizer) templ.Component {
	return component("page.error", loc, view)
}

// AuthPage renders the login, signup and reset forms.
func AuthPage(view AuthView, loc Localizer) templ.Component {
	if view.Tab == "" {
		view.Tab = AuthTabLogin
	}
	return component("page.auth", loc, view)
}

// EventsPage renders the public event list.
func EventsPage(view EventsListView, loc Localizer) templ.Component {
	return component("page.events", loc, view)
}

// EventDetailPage renders one event.
func EventDetailPage(view EventDetailView, loc Localizer) templ.Component {
	return component("page.event", loc, view)
}

// DashboardPage renders the participant dashboard.
func DashboardPage(view DashboardView, loc Localizer) templ.Component {
	return component("page.dashboard", loc, view)
}

// AdminPage renders the admin panel.
func AdminPage(view AdminView, loc Localizer) templ.Component {
	if view.Tab == "" {
		view.Tab = routepath.AdminTabEvents
	}
	return component("page.admin", loc, view)
}

// AdminEventEditPage renders the event edit form.
func AdminEventEditPage(view EventFormView, loc Localizer) templ.Component {
	return component("page.admin_event_edit", loc, view)
}

// AdminEnrollmentsPage renders the enrollment table of one event.
func AdminEnrollmentsPage(view AdminEnrollmentsView, loc Localizer) templ.Component {
	return component("page.admin_enrollments", loc, view)
}

// AdminRatingsPage renders the ratings of one event.
func AdminRatingsPage(view AdminRatingsView, loc Localizer) templ.Component {
	return component("page.admin_ratings", loc, view)
}

// UsersPage renders the user management list.
func UsersPage(view UsersView, loc Localizer) templ.Component {
	return component("page.users", loc, view)
}

// UserFormPage renders the user create or edit form.
func UserFormPage(view UserFormView, loc Localizer) templ.Component {
	return component("page.user_form", loc, view)
}

// UserDeletePage renders the delete confirmation.
func UserDeletePage(view UserDeleteView, loc Localizer) templ.Component {
	return component("page.user_delete", loc, view)
}

// StatisticsPage renders the statistics dashboard.
func StatisticsPage(view StatisticsView, loc Localizer) templ.Component {
	return component("page.statistics", loc, view)
}
