package telegraph

import (
	"fmt"
	"strings"

	"github.com/zulandar/portfolio/internal/health"
	"github.com/zulandar/portfolio/internal/models"
	"github.com/zulandar/portfolio/internal/portfolio"
)

// Color constants for event severity.
const (
	ColorSuccess = "#36a64f"
	ColorInfo    = "#2196f3"
	ColorWarning = "#ff9800"
	ColorError   = "#e53935"
)

// severityColor maps a severity string to a sidebar color.
func severityColor(severity string) string {
	switch severity {
	case "success":
		return ColorSuccess
	case "info":
		return ColorInfo
	case "warning":
		return ColorWarning
	case "error":
		return ColorError
	default:
		return ColorInfo
	}
}

// tierSeverity maps a health tier to an event severity.
func tierSeverity(t health.Tier) string {
	switch t {
	case health.Critical:
		return "error"
	case health.Attention:
		return "warning"
	default:
		return "success"
	}
}

// criticalReasons explains why a project is in the Critical tier.
func criticalReasons(row portfolio.ProjectHealth) []string {
	var reasons []string
	if row.HasGap {
		reasons = append(reasons, "gap aberto")
	}
	if row.Project.Status == models.ProjectAtRisk {
		reasons = append(reasons, "status Em Risco")
	}
	if row.TaskCount > 0 && row.Health.LateTaskCount*2 > row.TaskCount {
		reasons = append(reasons, "maioria das tarefas atrasada")
	}
	return reasons
}

// FormatDigest turns an overview into a chat digest: one summary event, one
// event per critical project and one per open gap.
func FormatDigest(ov portfolio.Overview) OutboundMessage {
	attention := ov.Attention()

	severity := "success"
	switch {
	case ov.Critical > 0:
		severity = "error"
	case attention > 0 || len(ov.Late) > 0:
		severity = "warning"
	}

	var bodyLines []string
	bodyLines = append(bodyLines, fmt.Sprintf("**Data**: %s", ov.Date.Format("02/01/2006")))
	bodyLines = append(bodyLines, fmt.Sprintf("**Projetos**: %d ativos, %d críticos, %d em atenção, %d saudáveis",
		ov.Total, ov.Critical, attention, ov.Healthy))
	if len(ov.Late) > 0 {
		bodyLines = append(bodyLines, fmt.Sprintf("**Tarefas atrasadas**: %d", len(ov.Late)))
	}
	if len(ov.Gaps) > 0 {
		bodyLines = append(bodyLines, fmt.Sprintf("**Gaps abertos**: %d", len(ov.Gaps)))
	}

	summary := FormattedEvent{
		Title:    "Portfolio Digest",
		Body:     strings.Join(bodyLines, "\n"),
		Severity: severity,
		Color:    severityColor(severity),
		Fields: []Field{
			{Name: "Ativos", Value: fmt.Sprintf("%d", ov.Total), Short: true},
			{Name: "Críticos", Value: fmt.Sprintf("%d", ov.Critical), Short: true},
			{Name: "Atenção", Value: fmt.Sprintf("%d", attention), Short: true},
			{Name: "Saudáveis", Value: fmt.Sprintf("%d", ov.Healthy), Short: true},
		},
	}

	events := []FormattedEvent{summary}
	for _, row := range ov.Projects {
		if row.Health.Tier != health.Critical {
			continue
		}
		events = append(events, formatCritical(row))
	}
	for _, g := range ov.Gaps {
		events = append(events, formatGap(g))
	}

	return OutboundMessage{
		Text: fmt.Sprintf("Portfolio: %d projetos ativos, %d críticos, %d em atenção, %d saudáveis",
			ov.Total, ov.Critical, attention, ov.Healthy),
		Events: events,
	}
}

func formatCritical(row portfolio.ProjectHealth) FormattedEvent {
	sev := tierSeverity(row.Health.Tier)
	body := fmt.Sprintf("Progresso %d%%, %d tarefa(s) atrasada(s), %d risco(s) ativo(s)",
		row.Health.ProgressPct, row.Health.LateTaskCount, row.Health.OpenRiskCount)
	if reasons := criticalReasons(row); len(reasons) > 0 {
		body += "\nMotivo: " + strings.Join(reasons, ", ")
	}

	fields := []Field{
		{Name: "Área", Value: orDash(row.Project.Sponsor), Short: true},
		{Name: "Gerente", Value: orDash(row.Project.Manager), Short: true},
		{Name: "Status", Value: orDash(row.Project.Status), Short: true},
		{Name: "Tempo decorrido", Value: fmt.Sprintf("%d%%", row.TimeElapsed), Short: true},
	}
	return FormattedEvent{
		Title:    fmt.Sprintf("%s %s", row.Health.Tier.Icon(), row.Project.Name),
		Body:     body,
		Severity: sev,
		Color:    severityColor(sev),
		Fields:   fields,
	}
}

func formatGap(g portfolio.GapAlert) FormattedEvent {
	evt := FormattedEvent{
		Title:    fmt.Sprintf("Gap: %s", g.ProjectName),
		Body:     g.Note.Description,
		Severity: "warning",
		Color:    ColorWarning,
		Fields: []Field{
			{Name: "Categoria", Value: g.Note.Category, Short: true},
		},
	}
	if g.Note.LinkURL != "" {
		evt.Fields = append(evt.Fields, Field{Name: "Link", Value: g.Note.LinkURL, Short: true})
	}
	return evt
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
