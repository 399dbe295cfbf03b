package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if Login != "/login" {
		t.Fatalf("Login = %q", Login)
	}
	if Logout != "/logout" {
		t.Fatalf("Logout = %q", Logout)
	}
	if Health != "/up" {
		t.Fatalf("Health = %q", Health)
	}
	if AppDashboard != "/app/dashboard" {
		t.Fatalf("AppDashboard = %q", AppDashboard)
	}
	if DashboardPrefix != AppDashboard+"/" {
		t.Fatalf("DashboardPrefix = %q", DashboardPrefix)
	}
	if AdminPrefix != AppAdmin+"/" {
		t.Fatalf("AdminPrefix = %q", AdminPrefix)
	}
	if UsersPrefix != AppUsers+"/" {
		t.Fatalf("UsersPrefix = %q", UsersPrefix)
	}
	if StatisticsPrefix != AppStatistics+"/" {
		t.Fatalf("StatisticsPrefix = %q", StatisticsPrefix)
	}
}

func TestEventRouteBuilders(t *testing.T) {
	t.Parallel()

	if got := Event("12"); got != "/events/12" {
		t.Fatalf("Event() = %q", got)
	}
	if got := EventEnroll("12"); got != "/events/12/enroll" {
		t.Fatalf("EventEnroll() = %q", got)
	}
	if got := EventCancel("12"); got != "/events/12/cancel" {
		t.Fatalf("EventCancel() = %q", got)
	}
	if got := EventRate("12"); got != "/events/12/rate" {
		t.Fatalf("EventRate() = %q", got)
	}
	if got := Event(" a/b "); got != "/events/a%2Fb" {
		t.Fatalf("Event(escaped) = %q", got)
	}
}

func TestEventsFiltered(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		kind  string
		want  string
	}{
		{"", "", "/events"},
		{"", "all", "/events"},
		{"python", "", "/events?q=python"},
		{" python ", "workshop", "/events?q=python&type=workshop"},
	}
	for _, tc := range tests {
		if got := EventsFiltered(tc.query, tc.kind); got != tc.want {
			t.Fatalf("EventsFiltered(%q, %q) = %q, want %q", tc.query, tc.kind, got, tc.want)
		}
	}
}

func TestAdminRouteBuilders(t *testing.T) {
	t.Parallel()

	if got := AppAdminTab(""); got != AppAdmin {
		t.Fatalf("AppAdminTab(empty) = %q", got)
	}
	if got := AppAdminTab(AdminTabEvents); got != AppAdmin {
		t.Fatalf("AppAdminTab(events) = %q", got)
	}
	if got := AppAdminTab(AdminTabRatings); got != "/app/admin?tab=ratings" {
		t.Fatalf("AppAdminTab(ratings) = %q", got)
	}
	if got := AdminEventEdit("7"); got != "/app/admin/events/7/edit" {
		t.Fatalf("AdminEventEdit() = %q", got)
	}
	if got := AdminEventDelete("7"); got != "/app/admin/events/7/delete" {
		t.Fatalf("AdminEventDelete() = %q", got)
	}
	if got := AdminEnrollmentCheckIn("7", "3"); got != "/app/admin/events/7/enrollments/3/checkin" {
		t.Fatalf("AdminEnrollmentCheckIn() = %q", got)
	}
	if got := AdminEnrollmentDelete("7", "3"); got != "/app/admin/events/7/enrollments/3/delete" {
		t.Fatalf("AdminEnrollmentDelete() = %q", got)
	}
	if got := AdminEventRatings("7"); got != "/app/admin/events/7/ratings" {
		t.Fatalf("AdminEventRatings() = %q", got)
	}
}

func TestUserRouteBuilders(t *testing.T) {
	t.Parallel()

	if got := UserEdit("u1"); got != "/app/admin/users/u1/edit" {
		t.Fatalf("UserEdit() = %q", got)
	}
	if got := UserDelete("u1"); got != "/app/admin/users/u1/delete" {
		t.Fatalf("UserDelete() = %q", got)
	}
	if got := UsersFiltered(AppUsersExport, "ana", "admin"); got != "/app/admin/users/export.csv?q=ana&role=admin" {
		t.Fatalf("UsersFiltered() = %q", got)
	}
	if got := UsersFiltered(AppUsers, "", "all"); got != AppUsers {
		t.Fatalf("UsersFiltered(empty) = %q", got)
	}
}

func TestSafeNext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{raw: "", want: ""},
		{raw: " /app/dashboard ", want: "/app/dashboard"},
		{raw: "/events/9?x=1", want: "/events/9?x=1"},
		{raw: "/about", want: ""},
		{raw: "https://evil.example/app/", want: ""},
		{raw: "//evil.example/app/", want: ""},
		{raw: "/app//evil", want: ""},
	}
	for _, tc := range tests {
		if got := SafeNext(tc.raw); got != tc.want {
			t.Fatalf("SafeNext(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
