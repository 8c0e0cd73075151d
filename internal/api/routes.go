package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerRoutes sets up the JSON API on the gin router.
func registerRoutes(router *gin.Engine, svc *services) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	api.GET("/jobs", svc.handleListJobs)
	api.POST("/jobs", svc.handleCreateJob)
	api.GET("/jobs/:id", svc.handleGetJob)
	api.PATCH("/jobs/:id", svc.handleUpdateJob)
	api.DELETE("/jobs/:id", svc.handleDeleteJob)
	api.PATCH("/jobs/:id/reorder", svc.handleReorderJob)

	api.GET("/candidates", svc.handleListCandidates)
	api.POST("/candidates", svc.handleCreateCandidate)
	api.GET("/candidates/:id", svc.handleGetCandidate)
	api.PATCH("/candidates/:id", svc.handleUpdateCandidate)
	api.GET("/candidates/:id/timeline", svc.handleCandidateTimeline)
	api.GET("/candidates/:id/notes", svc.handleListNotes)
	api.POST("/candidates/:id/notes", svc.handleAddNote)
	api.GET("/candidates/:id/responses", svc.handleCandidateResponses)

	api.GET("/jobs/:id/assessment", svc.handleGetAssessment)
	api.PUT("/jobs/:id/assessment", svc.handleSaveAssessment)
	api.POST("/jobs/:id/assessment/submit", svc.handleSubmitAssessment)
}
