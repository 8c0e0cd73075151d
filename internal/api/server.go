// Package api exposes the data-access layer as a JSON HTTP surface —
// the boundary the view layer consumes.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/talentflow/internal/assessment"
	"github.com/zulandar/talentflow/internal/candidate"
	"github.com/zulandar/talentflow/internal/job"
	"github.com/zulandar/talentflow/internal/logging"
	"github.com/zulandar/talentflow/internal/notify"
	"github.com/zulandar/talentflow/internal/simnet"
	"gorm.io/gorm"
)

// Opts holds configuration for the API server.
type Opts struct {
	DB       *gorm.DB
	Net      *simnet.Injector
	Log      *logging.Logger
	Notifier notify.Notifier
	Port     int
}

// services bundles the data-access layer behind the handlers.
type services struct {
	jobs        *job.Service
	candidates  *candidate.Service
	assessments *assessment.Service
	notifier    notify.Notifier
	log         *logging.Logger
}

// Start runs the API server. It blocks until ctx is cancelled, then
// shuts down gracefully.
func Start(ctx context.Context, opts Opts) error {
	router, err := NewRouter(opts)
	if err != nil {
		return err
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	opts.Log.Info("api listening", "port", opts.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

// NewRouter builds the gin engine with all routes registered. Exposed
// separately so tests can drive it with httptest.
func NewRouter(opts Opts) (*gin.Engine, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("api: db is required")
	}
	if opts.Net == nil {
		return nil, fmt.Errorf("api: injector is required")
	}
	if opts.Log == nil {
		opts.Log = logging.Nop()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.NewMulti(opts.Log)
	}

	jobs, err := job.NewService(opts.DB, opts.Net)
	if err != nil {
		return nil, err
	}
	candidates, err := candidate.NewService(opts.DB, opts.Net)
	if err != nil {
		return nil, err
	}
	assessments, err := assessment.NewService(opts.DB, opts.Net)
	if err != nil {
		return nil, err
	}

	svc := &services{
		jobs:        jobs,
		candidates:  candidates,
		assessments: assessments,
		notifier:    opts.Notifier,
		log:         opts.Log,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLog(opts.Log))

	registerRoutes(router, svc)
	return router, nil
}
