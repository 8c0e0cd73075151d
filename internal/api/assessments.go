package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/talentflow/internal/assessment"
	"github.com/zulandar/talentflow/internal/models"
)

func (s *services) handleGetAssessment(c *gin.Context) {
	a, err := s.assessments.GetByJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

type saveAssessmentRequest struct {
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Sections    []models.AssessmentSection `json:"sections"`
}

func (s *services) handleSaveAssessment(c *gin.Context) {
	var req saveAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	saved, err := s.assessments.Save(c.Request.Context(), c.Param("id"), assessment.Draft{
		Title:       req.Title,
		Description: req.Description,
		Sections:    req.Sections,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *services) handleSubmitAssessment(c *gin.Context) {
	var req struct {
		CandidateID string                    `json:"candidateId"`
		Responses   []models.QuestionResponse `json:"responses"`
		SubmittedAt *time.Time                `json:"submittedAt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	resp, err := s.assessments.SubmitResponse(c.Request.Context(), c.Param("id"), assessment.SubmitOpts{
		CandidateID: req.CandidateID,
		Responses:   req.Responses,
		SubmittedAt: req.SubmittedAt,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
