package users

import (
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"
)

const (
	minAge = 12
	maxAge = 59
)

func newUserForm() webtemplates.UserFormView {
	return webtemplates.UserFormView{
		Action: routepath.AppUsers,
		Role:   string(eventsapi.RoleParticipant),
		Roles:  eventsapi.Roles(),
	}
}

// formFromRequest reads the submitted user form. The password is returned
// separately so it never flows back into the rendered form.
func formFromRequest(r *http.Request) (webtemplates.UserFormView, string) {
	form := webtemplates.UserFormView{
		Name:   strings.TrimSpace(r.FormValue("name")),
		Email:  strings.TrimSpace(r.FormValue("email")),
		Phone:  strings.TrimSpace(r.FormValue("phone")),
		Age:    strings.TrimSpace(r.FormValue("age")),
		School: strings.TrimSpace(r.FormValue("school")),
		Role:   string(eventsapi.ParseRole(r.FormValue("role"))),
		Roles:  eventsapi.Roles(),
	}
	return form, r.FormValue("password")
}

func formFromUser(user eventsapi.User) webtemplates.UserFormView {
	form := webtemplates.UserFormView{
		Action:  routepath.User(user.ID),
		Editing: true,
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		School:  user.School,
		Role:    string(user.Role),
		Roles:   eventsapi.Roles(),
	}
	if user.Age > 0 {
		form.Age = strconv.Itoa(user.Age)
	}
	return form
}

// parseUserForm validates form. A password is required on create; on update
// a blank password keeps the current one.
func parseUserForm(form webtemplates.UserFormView, password string, creating bool) (eventsapi.UserInput, error) {
	invalid := func(key string, message string) (eventsapi.UserInput, error) {
		return eventsapi.UserInput{}, apperrors.EK(apperrors.KindInvalidInput, key, message)
	}
	if form.Name == "" {
		return invalid("users.error.name_required", "name is required")
	}
	if form.Email == "" {
		return invalid("users.error.email_required", "email is required")
	}
	if _, err := mail.ParseAddress(form.Email); err != nil {
		return invalid("users.error.email_required", "email is malformed")
	}
	age := 0
	if form.Age != "" {
		parsed, err := strconv.Atoi(form.Age)
		if err != nil || parsed < minAge || parsed > maxAge {
			return invalid("users.error.age_range", "age is out of range")
		}
		age = parsed
	}
	if creating && strings.TrimSpace(password) == "" {
		return invalid("users.error.password_required", "password is required")
	}
	return eventsapi.UserInput{
		Name:     form.Name,
		Email:    form.Email,
		Phone:    form.Phone,
		Password: password,
		Role:     eventsapi.ParseRole(form.Role),
		Age:      age,
		School:   form.School,
	}, nil
}
