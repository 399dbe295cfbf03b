package templates

import (
	"strings"
	"time"

	"github.com/meninasdigitais/eventos/internal/services/shared/i18nhttp"
	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
)

// Chrome carries layout state shared by every page.
type Chrome struct {
	Title     string
	Lang      string
	Path      string
	Viewer    ViewerChrome
	Languages []i18nhttp.LanguageOption
	Notice    *Notice
}

// ViewerChrome is the navbar view of the signed-in user.
type ViewerChrome struct {
	SignedIn bool
	Name     string
	Staff    bool
	Admin    bool
}

// Notice is a one-time toast shown above the page body.
type Notice struct {
	Kind    string
	Message string
}

// NavLink is one navbar entry.
type NavLink struct {
	LabelKey string
	URL      string
	Active   bool
}

// NavLinks returns the navbar entries visible to viewer.
func NavLinks(viewer ViewerChrome, currentPath string) []NavLink {
	links := []NavLink{
		{LabelKey: "core.nav.events", URL: routepath.Events},
		{LabelKey: "core.nav.about", URL: routepath.About},
	}
	if viewer.SignedIn {
		links = append(links, NavLink{LabelKey: "core.nav.dashboard", URL: routepath.AppDashboard})
	}
	if viewer.Staff {
		links = append(links, NavLink{LabelKey: "core.nav.admin", URL: routepath.AppAdmin})
	}
	if viewer.Admin {
		links = append(links, NavLink{LabelKey: "core.nav.users", URL: routepath.AppUsers})
	}
	if viewer.Staff {
		links = append(links, NavLink{LabelKey: "core.nav.statistics", URL: routepath.AppStatistics})
	}
	for i := range links {
		links[i].Active = activeLink(links[i].URL, currentPath)
	}
	return links
}

func activeLink(url string, currentPath string) bool {
	if currentPath == url {
		return true
	}
	// Admin covers its own subtree only; users and statistics have their own entries.
	if url == routepath.AppAdmin {
		return strings.HasPrefix(currentPath, routepath.AdminPrefix) &&
			!strings.HasPrefix(currentPath, routepath.UsersPrefix) &&
			!strings.HasPrefix(currentPath, routepath.StatisticsPrefix)
	}
	return strings.HasPrefix(currentPath, url+"/")
}

// EventCardView renders one event card.
type EventCardView struct {
	Event    eventsapi.Event
	SignedIn bool
	Enrolled bool
}

// HomeView is the landing page.
type HomeView struct {
	Featured []EventCardView
	SignedIn bool
}

// ErrorView is the localized error page.
type ErrorView struct {
	Status     int
	TitleKey   string
	MessageKey string
}

// AuthView holds the login, signup and reset forms.
type AuthView struct {
	Tab    string
	Next   string
	Login  LoginForm
	Signup SignupForm
	Reset  ResetForm
}

const (
	AuthTabLogin  = "login"
	AuthTabSignup = "signup"
	AuthTabReset  = "reset"
)

// LoginForm is the submitted state of the login form.
type LoginForm struct {
	Email string
	Error string
}

// SignupForm is the submitted state of the signup form.
type SignupForm struct {
	Name  string
	Email string
	Phone string
	Error string
}

// ResetForm is the submitted state of the password reset form.
type ResetForm struct {
	Email string
	Error string
}

// EventsListView is the public event list.
type EventsListView struct {
	Cards []EventCardView
	Query string
	Type  string
	Types []eventsapi.EventType
}

// EventDetailView is the public event page.
type EventDetailView struct {
	Event       eventsapi.Event
	SignedIn    bool
	Enrolled    bool
	Completed   bool
	CanRate     bool
	Ratings     []eventsapi.Rating
	Average     float64
	Guest       GuestForm
	Rating      RatingFormView
	EnrollError string
}

// GuestForm is the submitted state of the guest enrollment form.
type GuestForm struct {
	Name  string
	Email string
	Phone string
}

// RatingForm is the submitted state of a rating form.
type RatingForm struct {
	Score   int
	Comment string
	Error   string
}

// RatingFormView binds a rating form to one event. Next is the local path
// to return to after submission.
type RatingFormView struct {
	EventID string
	Form    RatingForm
	Next    string
}

// DashboardEntry is one of the viewer's enrollments.
type DashboardEntry struct {
	Event        eventsapi.Event
	EnrollmentID string
	Upcoming     bool
	Rating       RatingFormView
}

// CalendarDay groups upcoming entries starting on the same day.
type CalendarDay struct {
	Day     time.Time
	Entries []DashboardEntry
}

// DashboardView is the participant dashboard.
type DashboardView struct {
	Name     string
	Enrolled []DashboardEntry
	Calendar []CalendarDay
	ToRate   []DashboardEntry
}

// AdminEventRow is one row of the admin event table.
type AdminEventRow struct {
	Event       eventsapi.Event
	Enrollments int
	Ratings     int
	Average     float64
}

// AdminView is the admin panel.
type AdminView struct {
	Tab  string
	Rows []AdminEventRow
	Form EventFormView
}

// EventFormView is the submitted state of the event form.
type EventFormView struct {
	Action       string
	Editing      bool
	Title        string
	Description  string
	Type         string
	Date         string
	StartTime    string
	EndTime      string
	Location     string
	Host         string
	Capacity     string
	Public       bool
	Materials    string
	Error        string
	ConflictWith string
	Types        []eventsapi.EventType
}

// AdminEnrollmentsView lists the enrollments of one event.
type AdminEnrollmentsView struct {
	Event       eventsapi.Event
	Enrollments []eventsapi.Enrollment
}

// AdminRatingsView lists the ratings of one event.
type AdminRatingsView struct {
	Event   eventsapi.Event
	Ratings []eventsapi.Rating
	Average float64
}

// UsersView is the user management list.
type UsersView struct {
	Users     []eventsapi.User
	Query     string
	Role      string
	Roles     []eventsapi.Role
	ExportURL string
}

// UserFormView is the submitted state of the user form.
type UserFormView struct {
	Action  string
	Editing bool
	Name    string
	Email   string
	Phone   string
	Age     string
	School  string
	Role    string
	Roles   []eventsapi.Role
	Error   string
}

// UserDeleteView confirms a user deletion.
type UserDeleteView struct {
	User eventsapi.User
}

// TypeCount is the number of events of one type.
type TypeCount struct {
	Type  eventsapi.EventType
	Count int
}

// MonthCount is the number of events starting in one month.
type MonthCount struct {
	Month time.Time
	Count int
}

// TopEvent is one entry of the most popular events ranking.
type TopEvent struct {
	Rank        int
	Title       string
	Enrollments int
	Average     float64
}

// StatisticsView is the statistics dashboard.
type StatisticsView struct {
	TotalEvents      int
	TotalEnrollments int
	Upcoming         int
	Completed        int
	AverageRating    float64
	AveragePerEvent  float64
	ByType           []TypeCount
	ByMonth          []MonthCount
	Top              []TopEvent
	ReportURL        string
}
