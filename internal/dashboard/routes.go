package dashboard

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/portfolio/internal/metrics"
)

// registerRoutes sets up all dashboard routes on the Gin router.
func registerRoutes(router *gin.Engine, h *handlers) {
	// Embedded static assets (served from assets/ subdir of the embed.FS).
	staticFS, _ := fs.Sub(assetsFS, "assets")
	router.StaticFS("/static", http.FS(staticFS))

	// Pages.
	router.GET("/", h.index)

	api := router.Group("/api")
	api.GET("/overview", h.overview)

	api.GET("/projects", h.listProjects)
	api.POST("/projects", h.createProject)
	api.PATCH("/projects/:id", h.editProject)
	api.POST("/projects/:id/archive", h.archiveProject)
	api.POST("/projects/:id/restore", h.restoreProject)
	api.PUT("/projects/:id/results", h.saveResults)

	api.GET("/projects/:id/kanban", h.kanban)
	api.POST("/projects/:id/tasks", h.createTask)
	api.PATCH("/tasks/:id", h.moveTask)
	api.POST("/tasks/:id/reopen", h.reopenTask)

	api.GET("/projects/:id/risks", h.listRisks)
	api.POST("/projects/:id/risks", h.addRisk)
	api.GET("/projects/:id/risks/matrix", h.riskMatrix)
	api.DELETE("/risks/:id", h.deleteRisk)

	api.GET("/projects/:id/notes", h.listNotes)
	api.POST("/projects/:id/notes", h.addNote)
	api.DELETE("/notes/:id", h.deleteNote)
	api.GET("/gaps", h.gaps)

	api.GET("/gantt", h.gantt)
	api.GET("/calendar", h.calendar)
	api.GET("/sponsors", h.listSponsors)
	api.POST("/sponsors", h.addSponsor)
	api.GET("/team", h.listTeam)
	api.POST("/team", h.addTeamMember)

	api.GET("/events", h.events)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
