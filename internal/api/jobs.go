package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/talentflow/internal/job"
)

func (s *services) handleListJobs(c *gin.Context) {
	filters := job.ListFilters{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Page:     intQuery(c, "page"),
		PageSize: intQuery(c, "pageSize"),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
	}
	page, err := s.jobs.List(c.Request.Context(), filters)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type createJobRequest struct {
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Status       string   `json:"status"`
	Tags         []string `json:"tags"`
	Order        int      `json:"order"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Location     string   `json:"location"`
	Salary       string   `json:"salary"`
}

func (s *services) handleCreateJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	created, err := s.jobs.Create(c.Request.Context(), job.CreateOpts{
		Title:        req.Title,
		Slug:         req.Slug,
		Status:       req.Status,
		Tags:         req.Tags,
		Order:        req.Order,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		Salary:       req.Salary,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *services) handleGetJob(c *gin.Context) {
	j, err := s.jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (s *services) handleUpdateJob(c *gin.Context) {
	var patch job.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	updated, err := s.jobs.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *services) handleDeleteJob(c *gin.Context) {
	if err := s.jobs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type reorderRequest struct {
	FromOrder int `json:"fromOrder"`
	ToOrder   int `json:"toOrder"`
}

func (s *services) handleReorderJob(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	moved, err := s.jobs.Reorder(c.Request.Context(), c.Param("id"), req.FromOrder, req.ToOrder)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, moved)
}

// intQuery parses an integer query parameter, with 0 meaning unset.
func intQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
