package eventsapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// flexID accepts numeric and string identifiers.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = flexID(n.String())
	return nil
}

// flexInt accepts numbers and numeric strings.
type flexInt struct {
	set   bool
	value int
}

func (n *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := strings.Trim(string(data), `"`)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", data)
	}
	n.set, n.value = true, int(f)
	return nil
}

type wireMaterial struct {
	ID            flexID `json:"id"`
	Title         string `json:"title"`
	URLOrFilename string `json:"url_or_filename"`
	URL           string `json:"url"`
}

type wireEvent struct {
	ID                 flexID          `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	EventType          string          `json:"event_type"`
	Type               string          `json:"type"`
	StartTime          string          `json:"start_time"`
	EndTime            string          `json:"end_time"`
	Date               string          `json:"date"`
	Time               string          `json:"time"`
	Duration           string          `json:"duration"`
	Location           string          `json:"location"`
	Host               string          `json:"host"`
	Instructor         string          `json:"instructor"`
	MaxVacancies       flexInt         `json:"max_vacancies"`
	InscriptionsCount  flexInt         `json:"inscriptions_count"`
	LegacyMaxVacancies flexInt         `json:"maxVacancies"`
	TotalSlots         flexInt         `json:"totalSlots"`
	AvailableVacancies flexInt         `json:"availableVacancies"`
	Vacancies          flexInt         `json:"vacancies"`
	Enrolled           flexInt         `json:"enrolled"`
	IsPublic           *bool           `json:"is_public"`
	IsPrivate          *bool           `json:"isPrivate"`
	CreatorID          flexID          `json:"creator_id"`
	Materials          json.RawMessage `json:"materials"`
	Requirements       string          `json:"requirements"`
	TargetAudience     string          `json:"targetAudience"`
	TargetAudienceAlt  string          `json:"target_audience"`
}

type wireUser struct {
	ID              flexID  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Role            string  `json:"role"`
	Phone           string  `json:"phone"`
	Age             flexInt `json:"age"`
	School          string  `json:"school"`
	CreatedAt       string  `json:"created_at"`
	LegacyCreatedAt string  `json:"createdAt"`
}

type wireEnrollment struct {
	ID               flexID `json:"id"`
	EventID          flexID `json:"event_id"`
	LegacyEventID    flexID `json:"eventId"`
	UserID           flexID `json:"user_id"`
	LegacyUserID     flexID `json:"userId"`
	GuestName        string `json:"guest_name"`
	GuestEmail       string `json:"guest_email"`
	GuestPhone       string `json:"guest_phone"`
	UserName         string `json:"user_name"`
	UserEmail        string `json:"user_email"`
	RegistrationTime string `json:"registration_time"`
	EnrolledAt       string `json:"enrolledAt"`
	CheckedIn        bool   `json:"checked_in"`
	Status           string `json:"status"`
}

type wireRating struct {
	ID              flexID  `json:"id"`
	EventID         flexID  `json:"event_id"`
	LegacyEventID   flexID  `json:"eventId"`
	UserID          flexID  `json:"user_id"`
	LegacyUserID    flexID  `json:"userId"`
	Rating          flexInt `json:"rating"`
	Score           flexInt `json:"score"`
	Comment         string  `json:"comment"`
	CreatedAt       string  `json:"created_at"`
	LegacyCreatedAt string  `json:"createdAt"`
}

type wireToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type wireProblem struct {
	Detail json.RawMessage `json:"detail"`
}

// decoder turns backend or legacy payloads into canonical values. Legacy
// date and time fields are wall-clock values in loc.
type decoder struct {
	loc *time.Location
}

func newDecoder(loc *time.Location) decoder {
	if loc == nil {
		loc = time.UTC
	}
	return decoder{loc: loc}
}

func (d decoder) event(w wireEvent) (Event, error) {
	event := Event{
		ID:             string(w.ID),
		Title:          strings.TrimSpace(w.Title),
		Description:    strings.TrimSpace(w.Description),
		Location:       strings.TrimSpace(w.Location),
		Host:           firstNonBlank(w.Host, w.Instructor),
		CreatorID:      string(w.CreatorID),
		Requirements:   strings.TrimSpace(w.Requirements),
		TargetAudience: firstNonBlank(w.TargetAudience, w.TargetAudienceAlt),
		Public:         true,
	}
	if event.ID == "" {
		return Event{}, fmt.Errorf("event id is required")
	}

	rawType := firstNonBlank(w.EventType, w.Type)
	eventType, ok := ParseEventType(rawType)
	if !ok {
		return Event{}, fmt.Errorf("event %s: unknown type %q", event.ID, rawType)
	}
	event.Type = eventType

	start, end, err := d.schedule(w)
	if err != nil {
		return Event{}, fmt.Errorf("event %s: %w", event.ID, err)
	}
	event.Start, event.End = start, end

	d.capacity(w, &event)

	switch {
	case w.IsPublic != nil:
		event.Public = *w.IsPublic
	case w.IsPrivate != nil:
		event.Public = !*w.IsPrivate
	}

	materials, err := decodeMaterials(w.Materials)
	if err != nil {
		return Event{}, fmt.Errorf("event %s: %w", event.ID, err)
	}
	event.Materials = materials
	return event, nil
}

func (d decoder) schedule(w wireEvent) (time.Time, time.Time, error) {
	var start, end time.Time
	if strings.TrimSpace(w.StartTime) != "" {
		parsed, err := parseInstant(w.StartTime)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("start_time: %w", err)
		}
		start = parsed
		if strings.TrimSpace(w.EndTime) != "" {
			if end, err = parseInstant(w.EndTime); err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("end_time: %w", err)
			}
		}
	} else {
		parsed, err := d.wallClock(w.Date, w.Time)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = parsed
		if length, ok := parseDuration(w.Duration); ok {
			end = start.Add(length)
		}
	}
	if end.IsZero() || end.Before(start) {
		end = start.Add(DefaultEventLength)
	}
	return start.In(d.loc), end.In(d.loc), nil
}

// capacity applies the seat counters. The backend reports max_vacancies where
// 0 means unlimited; legacy payloads report totals and free seats, and zero
// seats there mean nothing is left.
func (d decoder) capacity(w wireEvent, event *Event) {
	total := firstSet(w.LegacyMaxVacancies, w.TotalSlots)
	available := firstSet(w.AvailableVacancies, w.Vacancies)
	if !w.MaxVacancies.set && (total.set || available.set) {
		if !total.set {
			total = available
		}
		event.Capacity = total.value
		switch {
		case available.set:
			event.Enrolled = total.value - available.value
		case w.Enrolled.set:
			event.Enrolled = w.Enrolled.value
		}
		if event.Enrolled < 0 {
			event.Enrolled = 0
		}
		return
	}
	event.Capacity = w.MaxVacancies.value
	event.Unlimited = event.Capacity <= 0
	if event.Unlimited {
		event.Capacity = 0
	}
	event.Enrolled = firstSet(w.InscriptionsCount, w.Enrolled).value
}

func (d decoder) wallClock(date string, clock string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, fmt.Errorf("start is required")
	}
	clock = strings.TrimSpace(clock)
	if clock == "" {
		clock = "00:00"
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 15:04:05", "02/01/2006 15:04"} {
		if parsed, err := time.ParseInLocation(layout, date+" "+clock, d.loc); err == nil {
			return parsed, nil
		}
	}
	if parsed, err := parseInstant(date); err == nil {
		return parsed, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q time %q", date, clock)
}

func (d decoder) user(w wireUser) (User, error) {
	if w.ID == "" {
		return User{}, fmt.Errorf("user id is required")
	}
	user := User{
		ID:     string(w.ID),
		Name:   strings.TrimSpace(w.Name),
		Email:  strings.TrimSpace(w.Email),
		Role:   ParseRole(w.Role),
		Phone:  strings.TrimSpace(w.Phone),
		Age:    w.Age.value,
		School: strings.TrimSpace(w.School),
	}
	if created := firstNonBlank(w.CreatedAt, w.LegacyCreatedAt); created != "" {
		if parsed, err := parseInstant(created); err == nil {
			user.CreatedAt = parsed.In(d.loc)
		}
	}
	return user, nil
}

func (d decoder) enrollment(w wireEnrollment) (Enrollment, error) {
	if w.ID == "" {
		return Enrollment{}, fmt.Errorf("enrollment id is required")
	}
	enrollment := Enrollment{
		ID:         string(w.ID),
		EventID:    firstNonBlank(string(w.EventID), string(w.LegacyEventID)),
		UserID:     firstNonBlank(string(w.UserID), string(w.LegacyUserID)),
		GuestName:  strings.TrimSpace(w.GuestName),
		GuestEmail: strings.TrimSpace(w.GuestEmail),
		GuestPhone: strings.TrimSpace(w.GuestPhone),
		UserName:   strings.TrimSpace(w.UserName),
		UserEmail:  strings.TrimSpace(w.UserEmail),
		CheckedIn:  w.CheckedIn,
	}
	if at := firstNonBlank(w.RegistrationTime, w.EnrolledAt); at != "" {
		if parsed, err := parseInstant(at); err == nil {
			enrollment.EnrolledAt = parsed.In(d.loc)
		}
	}
	switch status := EnrollmentStatus(strings.ToLower(strings.TrimSpace(w.Status))); status {
	case EnrollmentPending, EnrollmentConfirmed, EnrollmentCancelled:
		enrollment.Status = status
	default:
		enrollment.Status = EnrollmentPending
		if w.CheckedIn {
			enrollment.Status = EnrollmentConfirmed
		}
	}
	return enrollment, nil
}

func (d decoder) rating(w wireRating) (Rating, error) {
	score := firstSet(w.Rating, w.Score)
	if !score.set || score.value < 1 || score.value > 5 {
		return Rating{}, fmt.Errorf("rating %s: score must be between 1 and 5", w.ID)
	}
	rating := Rating{
		ID:      string(w.ID),
		EventID: firstNonBlank(string(w.EventID), string(w.LegacyEventID)),
		UserID:  firstNonBlank(string(w.UserID), string(w.LegacyUserID)),
		Score:   score.value,
		Comment: strings.TrimSpace(w.Comment),
	}
	if created := firstNonBlank(w.CreatedAt, w.LegacyCreatedAt); created != "" {
		if parsed, err := parseInstant(created); err == nil {
			rating.CreatedAt = parsed.In(d.loc)
		}
	}
	return rating, nil
}

func decodeMaterials(raw json.RawMessage) ([]Material, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var single string
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("materials: %w", err)
		}
		return ParseMaterials(single), nil
	}
	var list []wireMaterial
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("materials: %w", err)
	}
	materials := make([]Material, 0, len(list))
	for _, item := range list {
		url := firstNonBlank(item.URLOrFilename, item.URL)
		if url == "" {
			continue
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = url
		}
		materials = append(materials, Material{ID: string(item.ID), Title: title, URL: url})
	}
	return materials, nil
}

// ParseMaterials reads one material per line, either "title | url" or a bare url.
func ParseMaterials(text string) []Material {
	var materials []Material
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		title, url, found := strings.Cut(line, "|")
		if !found {
			materials = append(materials, Material{Title: line, URL: line})
			continue
		}
		title, url = strings.TrimSpace(title), strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if title == "" {
			title = url
		}
		materials = append(materials, Material{Title: title, URL: url})
	}
	return materials
}

// FormatMaterials is the inverse of ParseMaterials.
func FormatMaterials(materials []Material) string {
	lines := make([]string, 0, len(materials))
	for _, material := range materials {
		if material.Title == "" || material.Title == material.URL {
			lines = append(lines, material.URL)
			continue
		}
		lines = append(lines, material.Title+" | "+material.URL)
	}
	return strings.Join(lines, "\n")
}

func parseInstant(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return parsed, nil
	}
	// Naive timestamps are stored in UTC.
	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02"} {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}

// parseDuration reads "2h", "90min", "1h30", "1h 30min" and "45 minutos".
func parseDuration(raw string) (time.Duration, bool) {
	value := strings.ToLower(strings.Join(strings.Fields(raw), ""))
	if value == "" {
		return 0, false
	}
	for _, suffix := range []string{"minutos", "minuto", "mins", "min"} {
		if strings.HasSuffix(value, suffix) {
			value = strings.TrimSuffix(value, suffix) + "m"
			break
		}
	}
	for _, suffix := range []string{"horas", "hora", "hrs", "hr"} {
		if strings.HasSuffix(value, suffix) {
			value = strings.TrimSuffix(value, suffix) + "h"
			break
		}
	}
	if idx := strings.LastIndex(value, "h"); idx >= 0 && idx < len(value)-1 && !strings.HasSuffix(value, "m") {
		value += "m"
	}
	length, err := time.ParseDuration(value)
	if err != nil || length <= 0 {
		return 0, false
	}
	return length, true
}

func firstNonBlank(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func firstSet(values ...flexInt) flexInt {
	for _, value := range values {
		if value.set {
			return value
		}
	}
	return flexInt{}
}

// backend request bodies

type eventBody struct {
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	EventType    string         `json:"event_type"`
	StartTime    string         `json:"start_time"`
	EndTime      string         `json:"end_time"`
	Location     string         `json:"location,omitempty"`
	Host         string         `json:"host,omitempty"`
	MaxVacancies int            `json:"max_vacancies"`
	IsPublic     bool           `json:"is_public"`
	Materials    []materialBody `json:"materials"`
}

type materialBody struct {
	Title         string `json:"title"`
	URLOrFilename string `json:"url_or_filename"`
}

func encodeEvent(input EventInput) eventBody {
	body := eventBody{
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		EventType:    input.Type.backendValue(),
		StartTime:    input.Start.UTC().Format(time.RFC3339),
		EndTime:      input.End.UTC().Format(time.RFC3339),
		Location:     strings.TrimSpace(input.Location),
		Host:         strings.TrimSpace(input.Host),
		MaxVacancies: input.Capacity,
		IsPublic:     input.Public,
		Materials:    []materialBody{},
	}
	for _, material := range input.Materials {
		body.Materials = append(body.Materials, materialBody{Title: material.Title, URLOrFilename: material.URL})
	}
	return body
}

type userBody struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
	Age      int    `json:"age,omitempty"`
	School   string `json:"school,omitempty"`
}

func encodeUser(input UserInput) userBody {
	return userBody{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.TrimSpace(input.Email),
		Phone:    strings.TrimSpace(input.Phone),
		Password: input.Password,
		Role:     string(input.Role),
		Age:      input.Age,
		School:   strings.TrimSpace(input.School),
	}
}

// userUpdateBody always carries the optional profile fields so a blank form
// value clears them; null is the cleared value.
type userUpdateBody struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Password string  `json:"password,omitempty"`
	Role     string  `json:"role,omitempty"`
	Age      *int    `json:"age"`
	School   *string `json:"school"`
}

func encodeUserUpdate(input UserInput) userUpdateBody {
	body := userUpdateBody{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.TrimSpace(input.Email),
		Password: input.Password,
		Role:     string(input.Role),
		Phone:    optionalText(input.Phone),
		School:   optionalText(input.School),
	}
	if input.Age > 0 {
		age := input.Age
		body.Age = &age
	}
	return body
}

func optionalText(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

type guestBody struct {
	GuestName  string `json:"guest_name,omitempty"`
	GuestEmail string `json:"guest_email,omitempty"`
	GuestPhone string `json:"guest_phone,omitempty"`
}

type ratingBody struct {
	EventID int    `json:"event_id"`
	UserID  int    `json:"user_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}
