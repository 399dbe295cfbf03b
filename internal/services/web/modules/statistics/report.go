package statistics

import (
	"fmt"
	"strings"
	"time"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"
)

var reportMonths = [...]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

func reportTypeLabel(kind eventsapi.EventType) string {
	switch kind {
	case eventsapi.EventTypeWorkshop:
		return "Oficinas"
	case eventsapi.EventTypeTalk:
		return "Palestras"
	case eventsapi.EventTypeMeeting:
		return "Reuniões"
	}
	return string(kind)
}

// renderReport writes the Portuguese plain-text report dated day.
func renderReport(view webtemplates.StatisticsView, day time.Time) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}
	section := func(title string) {
		line("")
		line("%s", title)
		line("%s", strings.Repeat("=", len([]rune(title))))
	}

	line("Relatório Estatístico - Meninas Digitais UTFPR-CP")
	line("Data: %s", day.Format("02/01/2006"))

	section("RESUMO GERAL")
	line("Total de Eventos: %d", view.TotalEvents)
	line("Total de Inscrições: %d", view.TotalEnrollments)
	line("Avaliação Média: %.1f/5.0", view.AverageRating)
	line("Eventos Futuros: %d", view.Upcoming)
	line("Eventos Realizados: %d", view.Completed)

	section("EVENTOS POR TIPO")
	for _, count := range view.ByType {
		line("%s: %d", reportTypeLabel(count.Type), count.Count)
	}

	section("EVENTOS POR MÊS")
	for _, count := range view.ByMonth {
		line("%s/%d: %d", reportMonths[count.Month.Month()-1], count.Month.Year(), count.Count)
	}

	section("EVENTOS MAIS POPULARES")
	for _, top := range view.Top {
		line("%d. %s - %d inscrições - %.1f★", top.Rank, top.Title, top.Enrollments, top.Average)
	}
	return strings.TrimRight(b.String(), "\n")
}

func reportFileName(day time.Time) string {
	return "relatorio_estatistico_" + day.Format("2006-01-02") + ".txt"
}
