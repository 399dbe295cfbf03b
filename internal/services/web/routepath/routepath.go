// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root   = "/"
	About  = "/about"
	Health = "/up"
	Login  = "/login"
	Signup = "/signup"
	Reset  = "/password-reset"
	Logout = "/logout"
	Static = "/static/"

	Events               = "/events"
	EventsPrefix         = "/events/"
	EventPattern         = EventsPrefix + "{eventID}"
	EventEnrollPattern   = EventsPrefix + "{eventID}/enroll"
	EventCancelPattern   = EventsPrefix + "{eventID}/cancel"
	EventRatePattern     = EventsPrefix + "{eventID}/rate"
	EventRestPattern     = EventsPrefix + "{eventID}/{rest...}"
	EventsQueryParam     = "q"
	EventsTypeQueryParam = "type"

	AppPrefix       = "/app/"
	AppDashboard    = "/app/dashboard"
	DashboardPrefix = "/app/dashboard/"

	AppAdmin                      = "/app/admin"
	AdminPrefix                   = "/app/admin/"
	AppAdminEvents                = "/app/admin/events"
	AdminEventPattern             = AdminPrefix + "events/{eventID}"
	AdminEventEditPattern         = AdminPrefix + "events/{eventID}/edit"
	AdminEventDeletePattern       = AdminPrefix + "events/{eventID}/delete"
	AdminEventEnrollmentsPattern  = AdminPrefix + "events/{eventID}/enrollments"
	AdminEnrollmentCheckInPattern = AdminPrefix + "events/{eventID}/enrollments/{enrollmentID}/checkin"
	AdminEnrollmentDeletePattern  = AdminPrefix + "events/{eventID}/enrollments/{enrollmentID}/delete"
	AdminEventRatingsPattern      = AdminPrefix + "events/{eventID}/ratings"
	AdminTabQueryParam            = "tab"
	AdminTabEvents                = "events"
	AdminTabEnrollments           = "enrollments"
	AdminTabRatings               = "ratings"

	AppUsers            = "/app/admin/users"
	UsersPrefix         = "/app/admin/users/"
	AppUsersNew         = "/app/admin/users/new"
	AppUsersExport      = "/app/admin/users/export.csv"
	UserPattern         = UsersPrefix + "{userID}"
	UserEditPattern     = UsersPrefix + "{userID}/edit"
	UserDeletePattern   = UsersPrefix + "{userID}/delete"
	UsersQueryParam     = "q"
	UsersRoleQueryParam = "role"

	AppStatistics       = "/app/admin/statistics"
	StatisticsPrefix    = "/app/admin/statistics/"
	AppStatisticsReport = "/app/admin/statistics/report.txt"
)

// Event returns the public event detail route.
func Event(eventID string) string {
	return EventsPrefix + escapeSegment(eventID)
}

// EventEnroll returns the enrollment action route.
func EventEnroll(eventID string) string {
	return Event(eventID) + "/enroll"
}

// EventCancel returns the enrollment cancel action route.
func EventCancel(eventID string) string {
	return Event(eventID) + "/cancel"
}

// EventRate returns the rating action route.
func EventRate(eventID string) string {
	return Event(eventID) + "/rate"
}

// EventsFiltered returns the event list with search and type filters.
func EventsFiltered(query string, eventType string) string {
	values := url.Values{}
	if query = strings.TrimSpace(query); query != "" {
		values.Set(EventsQueryParam, query)
	}
	if eventType = strings.TrimSpace(eventType); eventType != "" && eventType != "all" {
		values.Set(EventsTypeQueryParam, eventType)
	}
	if len(values) == 0 {
		return Events
	}
	return Events + "?" + values.Encode()
}

// AppAdminTab returns the admin panel opened on a tab.
func AppAdminTab(tab string) string {
	tab = strings.TrimSpace(tab)
	if tab == "" || tab == AdminTabEvents {
		return AppAdmin
	}
	return AppAdmin + "?" + AdminTabQueryParam + "=" + url.QueryEscape(tab)
}

// AdminEvent returns the admin event update route.
func AdminEvent(eventID string) string {
	return AdminPrefix + "events/" + escapeSegment(eventID)
}

// AdminEventEdit returns the admin event edit form route.
func AdminEventEdit(eventID string) string {
	return AdminEvent(eventID) + "/edit"
}

// AdminEventDelete returns the admin event delete action route.
func AdminEventDelete(eventID string) string {
	return AdminEvent(eventID) + "/delete"
}

// AdminEventEnrollments returns the admin enrollment table route.
func AdminEventEnrollments(eventID string) string {
	return AdminEvent(eventID) + "/enrollments"
}

// AdminEnrollmentCheckIn returns the check-in action route.
func AdminEnrollmentCheckIn(eventID string, enrollmentID string) string {
	return AdminEventEnrollments(eventID) + "/" + escapeSegment(enrollmentID) + "/checkin"
}

// AdminEnrollmentDelete returns the enrollment removal action route.
func AdminEnrollmentDelete(eventID string, enrollmentID string) string {
	return AdminEventEnrollments(eventID) + "/" + escapeSegment(enrollmentID) + "/delete"
}

// AdminEventRatings returns the admin ratings route.
func AdminEventRatings(eventID string) string {
	return AdminEvent(eventID) + "/ratings"
}

// User returns the user update route.
func User(userID string) string {
	return UsersPrefix + escapeSegment(userID)
}

// UserEdit returns the user edit form route.
func UserEdit(userID string) string {
	return User(userID) + "/edit"
}

// UserDelete returns the user delete confirmation route.
func UserDelete(userID string) string {
	return User(userID) + "/delete"
}

// UsersFiltered returns the user list with search and role filters.
func UsersFiltered(base string, query string, role string) string {
	values := url.Values{}
	if query = strings.TrimSpace(query); query != "" {
		values.Set(UsersQueryParam, query)
	}
	if role = strings.TrimSpace(role); role != "" && role != "all" {
		values.Set(UsersRoleQueryParam, role)
	}
	if len(values) == 0 {
		return base
	}
	return base + "?" + values.Encode()
}

// SafeNext returns raw when it is a local app or event page, else "".
func SafeNext(raw string) string {
	next := strings.TrimSpace(raw)
	if next == "" {
		return ""
	}
	parsed, err := url.Parse(next)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" || parsed.Path == "" {
		return ""
	}
	if !strings.HasPrefix(parsed.Path, AppPrefix) && !strings.HasPrefix(parsed.Path, EventsPrefix) {
		return ""
	}
	if strings.Contains(parsed.Path, "//") || strings.Contains(parsed.Path, `\`) {
		return ""
	}
	if parsed.RawQuery != "" {
		return parsed.Path + "?" + parsed.RawQuery
	}
	return parsed.Path
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
