package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/talentflow/internal/candidate"
	"github.com/zulandar/talentflow/internal/notify"
)

func (s *services) handleListCandidates(c *gin.Context) {
	filters := candidate.ListFilters{
		Search:   c.Query("search"),
		Stage:    c.Query("stage"),
		JobID:    c.Query("jobId"),
		Page:     intQuery(c, "page"),
		PageSize: intQuery(c, "pageSize"),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
	}
	page, err := s.candidates.List(c.Request.Context(), filters)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type createCandidateRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Stage     string `json:"stage"`
	JobID     string `json:"jobId"`
	Resume    string `json:"resume"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
	Notes     string `json:"notes"`
}

func (s *services) handleCreateCandidate(c *gin.Context) {
	var req createCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	created, err := s.candidates.Create(c.Request.Context(), candidate.CreateOpts{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Stage:     req.Stage,
		JobID:     req.JobID,
		Resume:    req.Resume,
		LinkedIn:  req.LinkedIn,
		Portfolio: req.Portfolio,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *services) handleGetCandidate(c *gin.Context) {
	cand, err := s.candidates.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cand)
}

// handleUpdateCandidate applies the patch and, when the stage changed,
// appends the timeline event and fires the stage notifier — the
// caller-side responsibilities that the data-access update does not
// take on.
func (s *services) handleUpdateCandidate(c *gin.Context) {
	var patch candidate.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")

	before, err := s.candidates.Get(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	fromStage := before.Stage

	updated, err := s.candidates.Update(ctx, id, patch)
	if err != nil {
		writeError(c, err)
		return
	}

	if updated.Stage != fromStage {
		if _, err := s.candidates.AppendTimelineEvent(ctx, id, candidate.AppendOpts{Stage: updated.Stage}); err != nil {
			s.log.Warn("timeline append failed", "candidate", id, "err", err)
		}
		j, err := s.candidates.JobFor(ctx, updated)
		if err != nil {
			s.log.Warn("job lookup for notification failed", "candidate", id, "err", err)
		}
		s.notifier.StageChanged(ctx, notify.Event{
			Candidate: *updated,
			Job:       j,
			FromStage: fromStage,
			ToStage:   updated.Stage,
		})
	}

	c.JSON(http.StatusOK, updated)
}

func (s *services) handleCandidateTimeline(c *gin.Context) {
	events, err := s.candidates.Timeline(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

type addNoteRequest struct {
	Content   string   `json:"content"`
	Mentions  []string `json:"mentions"`
	CreatedBy string   `json:"createdBy"`
}

func (s *services) handleAddNote(c *gin.Context) {
	var req addNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	note, err := s.candidates.AddNote(c.Request.Context(), c.Param("id"), candidate.NoteOpts{
		Content:   req.Content,
		Mentions:  req.Mentions,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (s *services) handleListNotes(c *gin.Context) {
	notes, err := s.candidates.Notes(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": notes})
}

func (s *services) handleCandidateResponses(c *gin.Context) {
	responses, err := s.assessments.ResponsesByCandidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}
