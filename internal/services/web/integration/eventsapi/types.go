package eventsapi

import (
	"sort"
	"strings"
	"time"
)

// EventType classifies an event.
type EventType string

const (
	EventTypeWorkshop EventType = "workshop"
	EventTypeTalk     EventType = "talk"
	EventTypeMeeting  EventType = "meeting"
)

// EventTypes lists every event type in display order.
func EventTypes() []EventType {
	return []EventType{EventTypeWorkshop, EventTypeTalk, EventTypeMeeting}
}

// ParseEventType maps backend, legacy and canonical spellings onto an EventType.
func ParseEventType(raw string) (EventType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "workshop", "oficina":
		return EventTypeWorkshop, true
	case "talk", "palestra", "lecture":
		return EventTypeTalk, true
	case "meeting", "reuniao", "reuniao_interna":
		return EventTypeMeeting, true
	}
	return "", false
}

// backendValue is the enum spelling the backend stores.
func (t EventType) backendValue() string {
	switch t {
	case EventTypeWorkshop:
		return "oficina"
	case EventTypeTalk:
		return "palestra"
	case EventTypeMeeting:
		return "reuniao_interna"
	}
	return string(t)
}

// Material is supplementary content attached to an event.
type Material struct {
	ID    string
	Title string
	URL   string
}

// DefaultEventLength is assumed when an event has no usable end.
const DefaultEventLength = time.Hour

// Event is the canonical event shape every decoder produces.
type Event struct {
	ID             string
	Title          string
	Description    string
	Type           EventType
	Start          time.Time
	End            time.Time
	Location       string
	Host           string
	Capacity       int
	Enrolled       int
	Unlimited      bool
	Public         bool
	CreatorID      string
	Materials      []Material
	Requirements   string
	TargetAudience string
}

// Available returns the number of open seats. Unlimited events report -1.
func (e Event) Available() int {
	if e.Unlimited {
		return -1
	}
	if open := e.Capacity - e.Enrolled; open > 0 {
		return open
	}
	return 0
}

// IsFull reports whether no seat is left. An event with zero capacity that is
// not unlimited is full.
func (e Event) IsFull() bool {
	return !e.Unlimited && e.Available() == 0
}

// Upcoming reports whether the event has not started at now.
func (e Event) Upcoming(now time.Time) bool {
	return e.Start.After(now)
}

// Completed reports whether the event has ended at now.
func (e Event) Completed(now time.Time) bool {
	return !e.End.After(now)
}

// Overlaps reports whether two events collide: their time ranges intersect and
// they share a location or a host.
func (e Event) Overlaps(other Event) bool {
	if e.ID != "" && e.ID == other.ID {
		return false
	}
	if !e.Start.Before(other.End) || !other.Start.Before(e.End) {
		return false
	}
	return sameText(e.Location, other.Location) || sameText(e.Host, other.Host)
}

// VisibleEvents drops private events unless the viewer is staff.
func VisibleEvents(events []Event, staff bool) []Event {
	visible := make([]Event, 0, len(events))
	for _, event := range events {
		if event.Public || staff {
			visible = append(visible, event)
		}
	}
	return visible
}

// SortByStart orders events by start time, earliest first. Ties keep their
// title order.
func SortByStart(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		return events[i].Title < events[j].Title
	})
}

func sameText(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}

// Role is a platform role.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleOrganizer   Role = "organizer"
	RoleAdmin       Role = "admin"
)

// ParseRole maps backend and legacy role names onto a Role. Unknown values
// fall back to participant.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin
	case "organizer":
		return RoleOrganizer
	}
	return RoleParticipant
}

// Staff reports whether the role may manage events.
func (r Role) Staff() bool {
	return r == RoleOrganizer || r == RoleAdmin
}

// Roles lists every role in display order.
func Roles() []Role {
	return []Role{RoleParticipant, RoleOrganizer, RoleAdmin}
}

// User is a platform account.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	Phone     string
	Age       int
	School    string
	CreatedAt time.Time
}

// EnrollmentStatus is the lifecycle state of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentConfirmed EnrollmentStatus = "confirmed"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

// Enrollment ties a user or a guest to an event.
type Enrollment struct {
	ID         string
	EventID    string
	UserID     string
	GuestName  string
	GuestEmail string
	GuestPhone string
	UserName   string
	UserEmail  string
	EnrolledAt time.Time
	Status     EnrollmentStatus
	CheckedIn  bool
}

// DisplayName returns the account name, or the guest name for guests.
func (e Enrollment) DisplayName() string {
	if name := strings.TrimSpace(e.UserName); name != "" {
		return name
	}
	return strings.TrimSpace(e.GuestName)
}

// DisplayEmail returns the account email, or the guest email for guests.
func (e Enrollment) DisplayEmail() string {
	if email := strings.TrimSpace(e.UserEmail); email != "" {
		return email
	}
	return strings.TrimSpace(e.GuestEmail)
}

// Active reports whether the enrollment still holds a seat.
func (e Enrollment) Active() bool {
	return e.Status != EnrollmentCancelled
}

// CountActive returns how many enrollments still hold a seat.
func CountActive(enrollments []Enrollment) int {
	count := 0
	for _, enrollment := range enrollments {
		if enrollment.Active() {
			count++
		}
	}
	return count
}

// ActiveByEvent indexes the enrollments that still hold a seat by event id.
func ActiveByEvent(enrollments []Enrollment) map[string]Enrollment {
	byEvent := make(map[string]Enrollment, len(enrollments))
	for _, enrollment := range enrollments {
		if enrollment.Active() && enrollment.EventID != "" {
			byEvent[enrollment.EventID] = enrollment
		}
	}
	return byEvent
}

// Rating is a participant's feedback on an event.
type Rating struct {
	ID        string
	EventID   string
	UserID    string
	Score     int
	Comment   string
	CreatedAt time.Time
}

// AverageScore returns the mean score, or 0 when there are no ratings.
func AverageScore(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	total := 0
	for _, rating := range ratings {
		total += rating.Score
	}
	return float64(total) / float64(len(ratings))
}

// EventFilter narrows ListEvents.
type EventFilter struct {
	Type  EventType
	Title string
}

// EventInput is the writable part of an event.
type EventInput struct {
	Title       string
	Description string
	Type        EventType
	Start       time.Time
	End         time.Time
	Location    string
	Host        string
	Capacity    int
	Public      bool
	Materials   []Material
}

// UserInput is the writable part of a user. A blank password leaves the
// current password unchanged on update.
type UserInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     Role
	Age      int
	School   string
}

// GuestInput identifies an anonymous enrollee.
type GuestInput struct {
	Name  string
	Email string
	Phone string
}

// RatingInput is a new rating.
type RatingInput struct {
	EventID string
	UserID  string
	Score   int
	Comment string
}

// Token is an issued backend access token.
type Token struct {
	AccessToken string
	TokenType   string
}
