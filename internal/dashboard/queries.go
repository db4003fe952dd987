package dashboard

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/portfolio/internal/metrics"
	"github.com/zulandar/portfolio/internal/models"
	"github.com/zulandar/portfolio/internal/portfolio"
)

// matrixRow is one probability row of the rendered risk matrix, highest first.
type matrixRow struct {
	Label string
	Cells []int
}

var levelLabels = []string{"Baixa", "Média", "Alta"}

func matrixRows(m portfolio.RiskMatrix) []matrixRow {
	rows := make([]matrixRow, 0, 3)
	for p := 3; p >= 1; p-- {
		row := matrixRow{Label: levelLabels[p-1]}
		for i := 1; i <= 3; i++ {
			row.Cells = append(row.Cells, m.Count(p, i))
		}
		rows = append(rows, row)
	}
	return rows
}

// riskPage holds everything the risks page renders for one project.
type riskPage struct {
	View     RiskView
	Projects []models.Project
	Selected *models.Project
	Risks    []models.Risk
	Matrix   []matrixRow
}

func (h *handlers) loadRiskPage(ctx context.Context, projectParam string, view RiskView) (riskPage, error) {
	page := riskPage{View: view}
	projects, err := h.svc.ListProjects(ctx, portfolio.ProjectFilter{})
	if err != nil {
		return page, err
	}
	page.Projects = projects
	if len(projects) == 0 {
		return page, nil
	}

	selected := projects[0]
	if id, err := strconv.ParseUint(projectParam, 10, 64); err == nil {
		for _, p := range projects {
			if p.ID == uint(id) {
				selected = p
				break
			}
		}
	}
	page.Selected = &selected

	if page.Risks, err = h.svc.ListRisks(ctx, selected.ID); err != nil {
		return page, err
	}
	m, err := h.svc.RiskMatrix(ctx, selected.ID)
	if err != nil {
		return page, err
	}
	page.Matrix = matrixRows(m)
	return page, nil
}

// index renders the HTML dashboard. ?page=risks switches to the risk page.
func (h *handlers) index(c *gin.Context) {
	ctx := c.Request.Context()
	data := gin.H{"page": "dashboard"}

	if c.Query("page") == "risks" {
		rp, err := h.loadRiskPage(ctx, c.Query("project"), ParseRiskView(c.Query("view")))
		if err != nil {
			h.respondError(c, err)
			return
		}
		data["page"] = "risks"
		data["risks"] = rp
		c.HTML(http.StatusOK, "layout.html", data)
		return
	}

	sponsor := c.Query("sponsor")
	ov := h.svc.Overview(ctx, sponsor)
	if sponsor == "" {
		metrics.RecordOverview(ov.Healthy, ov.Attention(), ov.Critical, len(ov.Late), len(ov.Gaps))
	}
	data["overview"] = ov
	data["sponsor"] = sponsor
	c.HTML(http.StatusOK, "layout.html", data)
}
