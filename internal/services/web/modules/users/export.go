package users

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
)

var csvHeader = []string{"Nome", "Email", "Tipo", "Idade", "Telefone", "Escola", "Data de Cadastro"}

// roleLabel is the fixed Portuguese role name used in exports.
func roleLabel(role eventsapi.Role) string {
	switch role {
	case eventsapi.RoleAdmin:
		return "Administrador"
	case eventsapi.RoleOrganizer:
		return "Organizador"
	}
	return "Usuário"
}

func writeCSV(users []eventsapi.User, loc *time.Location) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, user := range users {
		age := ""
		if user.Age > 0 {
			age = strconv.Itoa(user.Age)
		}
		created := ""
		if !user.CreatedAt.IsZero() {
			created = user.CreatedAt.In(loc).Format("02/01/2006")
		}
		record := []string{user.Name, user.Email, roleLabel(user.Role), age, user.Phone, user.School, created}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row %s: %w", user.ID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func exportFileName(day time.Time) string {
	return "usuarios_" + day.Format("2006-01-02") + ".csv"
}
