package admin

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"
)

const (
	formDate  = "2006-01-02"
	formClock = "15:04"
)

// formFromRequest reads the submitted event form.
func formFromRequest(r *http.Request) webtemplates.EventFormView {
	return webtemplates.EventFormView{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Type:        strings.TrimSpace(r.FormValue("type")),
		Date:        strings.TrimSpace(r.FormValue("date")),
		StartTime:   strings.TrimSpace(r.FormValue("start_time")),
		EndTime:     strings.TrimSpace(r.FormValue("end_time")),
		Location:    strings.TrimSpace(r.FormValue("location")),
		Host:        strings.TrimSpace(r.FormValue("host")),
		Capacity:    strings.TrimSpace(r.FormValue("capacity")),
		Public:      r.FormValue("public") != "",
		Materials:   strings.TrimSpace(r.FormValue("materials")),
		Types:       eventsapi.EventTypes(),
	}
}

// formFromEvent prefills the edit form with event, in the display zone.
func formFromEvent(event eventsapi.Event, loc *time.Location) webtemplates.EventFormView {
	start, end := event.Start.In(loc), event.End.In(loc)
	return webtemplates.EventFormView{
		Editing:     true,
		Title:       event.Title,
		Description: event.Description,
		Type:        string(event.Type),
		Date:        start.Format(formDate),
		StartTime:   start.Format(formClock),
		EndTime:     end.Format(formClock),
		Location:    event.Location,
		Host:        event.Host,
		Capacity:    capacityText(event),
		Public:      event.Public,
		Materials:   eventsapi.FormatMaterials(event.Materials),
		Types:       eventsapi.EventTypes(),
	}
}

func capacityText(event eventsapi.Event) string {
	if event.Unlimited {
		return "0"
	}
	return strconv.Itoa(event.Capacity)
}

// parseEventForm validates form and converts it into backend input. Date and
// times are wall-clock values in loc. A blank end time means the default
// event length; a blank capacity means unlimited seats.
func parseEventForm(form webtemplates.EventFormView, loc *time.Location) (eventsapi.EventInput, error) {
	invalid := func(key string, message string) (eventsapi.EventInput, error) {
		return eventsapi.EventInput{}, apperrors.EK(apperrors.KindInvalidInput, key, message)
	}
	if form.Title == "" {
		return invalid("admin.error.title_required", "title is required")
	}
	kind, ok := eventsapi.ParseEventType(form.Type)
	if !ok {
		return invalid("admin.error.type_required", "event type is required")
	}
	if form.Date == "" {
		return invalid("admin.error.date_required", "date is required")
	}
	if form.StartTime == "" {
		return invalid("admin.error.start_required", "start time is required")
	}
	start, err := time.ParseInLocation(formDate+" "+formClock, form.Date+" "+form.StartTime, loc)
	if err != nil {
		return invalid("admin.error.schedule_invalid", "parse start: "+err.Error())
	}
	end := start.Add(eventsapi.DefaultEventLength)
	if form.EndTime != "" {
		if end, err = time.ParseInLocation(formDate+" "+formClock, form.Date+" "+form.EndTime, loc); err != nil {
			return invalid("admin.error.schedule_invalid", "parse end: "+err.Error())
		}
		if !end.After(start) {
			return invalid("admin.error.end_before_start", "end must be after start")
		}
	}
	capacity := 0
	if form.Capacity != "" {
		if capacity, err = strconv.Atoi(form.Capacity); err != nil || capacity < 0 {
			return invalid("admin.error.capacity_invalid", "capacity must be a non-negative integer")
		}
	}
	return eventsapi.EventInput{
		Title:       form.Title,
		Description: form.Description,
		Type:        kind,
		Start:       start,
		End:         end,
		Location:    form.Location,
		Host:        form.Host,
		Capacity:    capacity,
		Public:      form.Public,
		Materials:   eventsapi.ParseMaterials(form.Materials),
	}, nil
}
