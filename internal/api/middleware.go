package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zulandar/talentflow/internal/assessment"
	"github.com/zulandar/talentflow/internal/candidate"
	"github.com/zulandar/talentflow/internal/job"
	"github.com/zulandar/talentflow/internal/logging"
	"github.com/zulandar/talentflow/internal/simnet"
)

const requestIDHeader = "X-Request-ID"

// requestID assigns each request a uuid, honoring one supplied by the
// caller.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLog emits one structured line per request.
func requestLog(log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String())
	}
}

// writeError maps the data-access error taxonomy onto HTTP statuses:
// validation 400, not-found 404, injected transient failures 503 with
// a retryable flag, anything else 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, job.ErrInvalid),
		errors.Is(err, candidate.ErrInvalid),
		errors.Is(err, assessment.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, job.ErrNotFound),
		errors.Is(err, candidate.ErrNotFound),
		errors.Is(err, assessment.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, simnet.ErrTransient):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "retryable": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
