package dashboard

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/portfolio/internal/metrics"
	"github.com/zulandar/portfolio/internal/models"
	"github.com/zulandar/portfolio/internal/portfolio"
	"github.com/zulandar/portfolio/internal/store"
	"go.uber.org/zap"
)

type handlers struct {
	svc     *portfolio.Service
	log     *zap.Logger
	refresh time.Duration
}

// respondError maps service errors onto HTTP status codes.
func (h *handlers) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, portfolio.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// paramID parses the :id path parameter, writing a 400 on failure.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// parseDate accepts YYYY-MM-DD (what date inputs post) or RFC 3339. An empty
// string means no date.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("invalid date " + strconv.Quote(s))
}

func (h *handlers) overview(c *gin.Context) {
	ov := h.svc.Overview(c.Request.Context(), c.Query("sponsor"))
	if ov.Sponsor == "" {
		metrics.RecordOverview(ov.Healthy, ov.Attention(), ov.Critical, len(ov.Late), len(ov.Gaps))
	}
	c.JSON(http.StatusOK, ov)
}

// Projects

type projectRequest struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	Sponsor   string `json:"sponsor"`
	Manager   string `json:"manager"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Priority  string `json:"priority"`
	Scope     string `json:"scope"`
}

type editRequest struct {
	Manager  *string `json:"manager"`
	Status   *string `json:"status"`
	EndDate  *string `json:"end_date"`
	Archived *bool   `json:"archived"`
}

func (h *handlers) listProjects(c *gin.Context) {
	archived, _ := strconv.ParseBool(c.DefaultQuery("archived", "false"))
	projects, err := h.svc.ListProjects(c.Request.Context(), portfolio.ProjectFilter{
		Archived: archived,
		Sponsor:  c.Query("sponsor"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *handlers) createProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	p, err := h.svc.CreateProject(c.Request.Context(), portfolio.NewProject{
		Name:      req.Name,
		Code:      req.Code,
		Sponsor:   req.Sponsor,
		Manager:   req.Manager,
		StartDate: start,
		EndDate:   end,
		Priority:  req.Priority,
		Scope:     req.Scope,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) editProject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	edit := portfolio.ProjectEdit{Manager: req.Manager, Status: req.Status, Archived: req.Archived}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		edit.EndDate = end
	}

	p, err := h.svc.EditProject(c.Request.Context(), id, edit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) archiveProject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.ArchiveProject(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) restoreProject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.RestoreProject(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) saveResults(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req struct {
		Results string `json:"results"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	p, err := h.svc.SaveResults(c.Request.Context(), id, req.Results)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Tasks

type taskRequest struct {
	Title    string `json:"title"`
	Owner    string `json:"owner"`
	EndDate  string `json:"end_date"`
	Priority string `json:"priority"`
	Effort   int    `json:"effort"`
}

func (h *handlers) kanban(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	cols, err := h.svc.KanbanBoard(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": cols})
}

func (h *handlers) createTask(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	t, err := h.svc.CreateTask(c.Request.Context(), portfolio.NewTask{
		ProjectID: id,
		Title:     req.Title,
		Owner:     req.Owner,
		EndDate:   end,
		Priority:  req.Priority,
		Effort:    req.Effort,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *handlers) moveTask(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req struct {
		Status   string `json:"status"`
		Progress *int   `json:"progress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	t, err := h.svc.MoveTask(c.Request.Context(), id, req.Status, req.Progress)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handlers) reopenTask(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	t, err := h.svc.ReopenTask(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Risks

func (h *handlers) listRisks(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	risks, err := h.svc.ListRisks(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"risks": risks})
}

func (h *handlers) addRisk(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req portfolio.NewRisk
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	r, err := h.svc.AddRisk(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *handlers) riskMatrix(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	m, err := h.svc.RiskMatrix(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *handlers) deleteRisk(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteRisk(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Notes and gaps

func (h *handlers) listNotes(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	notes, err := h.svc.ListNotes(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (h *handlers) addNote(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req portfolio.NewNote
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	n, err := h.svc.AddNote(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *handlers) deleteNote(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteNote(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) gaps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"gaps": h.svc.Gaps(c.Request.Context())})
}

// Timeline views

func (h *handlers) gantt(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bars": h.svc.Gantt(c.Request.Context())})
}

func (h *handlers) calendar(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"events": h.svc.Calendar(c.Request.Context())})
}

// Areas and team

func (h *handlers) listSponsors(c *gin.Context) {
	sponsors, err := h.svc.ListSponsors(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sponsors": sponsors})
}

func (h *handlers) addSponsor(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	sp, err := h.svc.AddSponsor(c.Request.Context(), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sp)
}

func (h *handlers) listTeam(c *gin.Context) {
	team, err := h.svc.ListTeam(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": team})
}

func (h *handlers) addTeamMember(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Role  string `json:"role"`
		Area  string `json:"area"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	m, err := h.svc.AddTeamMember(c.Request.Context(), models.TeamMember{
		Name:  req.Name,
		Role:  req.Role,
		Area:  req.Area,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}
