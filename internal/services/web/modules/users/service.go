package users

import (
	"context"
	"strings"
	"time"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/textsearch"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"
)

// Gateway abstracts the backend account operations user management needs.
type Gateway interface {
	ListUsers(ctx context.Context) ([]eventsapi.User, error)
	CreateUser(ctx context.Context, input eventsapi.UserInput) (eventsapi.User, error)
	UpdateUser(ctx context.Context, id string, input eventsapi.UserInput) (eventsapi.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// listQuery is the active search text and role filter.
type listQuery struct {
	Text string
	Role string
}

func queryFromValues(text string, role string) listQuery {
	query := listQuery{Text: strings.TrimSpace(text)}
	for _, known := range eventsapi.Roles() {
		if strings.TrimSpace(role) == string(known) {
			query.Role = string(known)
		}
	}
	return query
}

func (q listQuery) matches(user eventsapi.User) bool {
	if q.Role != "" && string(user.Role) != q.Role {
		return false
	}
	return textsearch.Match(q.Text, user.Name, user.Email)
}

type service struct {
	gateway Gateway
	loc     *time.Location
	now     func() time.Time
}

func newService(gateway Gateway, loc *time.Location, now func() time.Time) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return service{gateway: gateway, loc: loc, now: now}
}

// list returns the users matching query in backend order.
func (s service) list(ctx context.Context, query listQuery) ([]eventsapi.User, error) {
	all, err := s.gateway.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]eventsapi.User, 0, len(all))
	for _, user := range all {
		if query.matches(user) {
			matched = append(matched, user)
		}
	}
	return matched, nil
}

func (s service) page(ctx context.Context, query listQuery) (webtemplates.UsersView, error) {
	users, err := s.list(ctx, query)
	if err != nil {
		return webtemplates.UsersView{}, err
	}
	return webtemplates.UsersView{
		Users:     users,
		Query:     query.Text,
		Role:      query.Role,
		Roles:     eventsapi.Roles(),
		ExportURL: routepath.UsersFiltered(routepath.AppUsersExport, query.Text, query.Role),
	}, nil
}

// find looks a user up by id. The backend has no single-user read, so the
// list is scanned.
func (s service) find(ctx context.Context, userID string) (eventsapi.User, error) {
	userID = strings.TrimSpace(userID)
	all, err := s.gateway.ListUsers(ctx)
	if err != nil {
		return eventsapi.User{}, err
	}
	for _, user := range all {
		if user.ID == userID {
			return user, nil
		}
	}
	return eventsapi.User{}, apperrors.E(apperrors.KindNotFound, "user not found")
}

func (s service) create(ctx context.Context, form webtemplates.UserFormView, password string) (eventsapi.User, error) {
	input, err := parseUserForm(form, password, true)
	if err != nil {
		return eventsapi.User{}, err
	}
	return s.gateway.CreateUser(ctx, input)
}

func (s service) editForm(ctx context.Context, userID string) (webtemplates.UserFormView, error) {
	user, err := s.find(ctx, userID)
	if err != nil {
		return webtemplates.UserFormView{}, err
	}
	return formFromUser(user), nil
}

func (s service) update(ctx context.Context, userID string, form webtemplates.UserFormView, password string) (eventsapi.User, error) {
	input, err := parseUserForm(form, password, false)
	if err != nil {
		return eventsapi.User{}, err
	}
	return s.gateway.UpdateUser(ctx, strings.TrimSpace(userID), input)
}

func (s service) delete(ctx context.Context, userID string) error {
	return s.gateway.DeleteUser(ctx, strings.TrimSpace(userID))
}

// export renders the filtered user list as CSV with its download file name.
func (s service) export(ctx context.Context, query listQuery) (string, []byte, error) {
	users, err := s.list(ctx, query)
	if err != nil {
		return "", nil, err
	}
	body, err := writeCSV(users, s.loc)
	if err != nil {
		return "", nil, err
	}
	return exportFileName(s.now().In(s.loc)), body, nil
}
