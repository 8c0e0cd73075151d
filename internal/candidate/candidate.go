// Package candidate provides the data-access contract for pipeline
// candidates, their stage timeline, and notes.
package candidate

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zulandar/talentflow/internal/models"
	"github.com/zulandar/talentflow/internal/simnet"
	"gorm.io/gorm"
)

// Sentinel errors callers discriminate with errors.Is.
var (
	ErrNotFound = errors.New("candidate not found")
	ErrInvalid  = errors.New("invalid candidate")
)

// DefaultPageSize applies when a list request does not set one.
const DefaultPageSize = 10

var sortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
}

// Service wraps the record store with the candidates read/write
// contract.
type Service struct {
	db  *gorm.DB
	net *simnet.Injector
}

// NewService builds a Service.
func NewService(gdb *gorm.DB, net *simnet.Injector) (*Service, error) {
	if gdb == nil {
		return nil, fmt.Errorf("candidate: db is required")
	}
	if net == nil {
		return nil, fmt.Errorf("candidate: injector is required")
	}
	return &Service{db: gdb, net: net}, nil
}

// ListFilters holds the recognized query options.
type ListFilters struct {
	Search   string // matches name OR email, case-insensitive
	Stage    string
	JobID    string
	Page     int
	PageSize int
	Sort     string // name, email, createdAt
	Order    string // asc, desc
}

// Page is one bounded slice of a filtered, sorted result set.
type Page struct {
	Data       []models.Candidate `json:"data"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}

// List follows the same contract as job listing: load all sorted
// ascending, filter in memory, reverse for desc, slice the 1-based
// page. Out-of-range pages return empty data.
func (s *Service) List(ctx context.Context, f ListFilters) (*Page, error) {
	if f.Sort == "" {
		f.Sort = "name"
	}
	col, ok := sortColumns[f.Sort]
	if !ok {
		return nil, fmt.Errorf("candidate: list: unknown sort key %q: %w", f.Sort, ErrInvalid)
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}

	var candidates []models.Candidate
	if err := s.db.WithContext(ctx).
		Order(col + " ASC, id ASC").
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("candidate: list: %w", err)
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		kept := candidates[:0]
		for _, c := range candidates {
			if strings.Contains(strings.ToLower(c.Name), needle) ||
				strings.Contains(strings.ToLower(c.Email), needle) {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}
	if f.Stage != "" {
		kept := candidates[:0]
		for _, c := range candidates {
			if c.Stage == f.Stage {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}
	if f.JobID != "" {
		kept := candidates[:0]
		for _, c := range candidates {
			if c.JobID == f.JobID {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}

	if f.Order == "desc" {
		for i, j := 0, len(candidates)-1; i < j; i, j = i+1, j-1 {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		}
	}

	total := len(candidates)
	start := (f.Page - 1) * f.PageSize
	end := start + f.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &Page{
		Data:       candidates[start:end],
		Total:      total,
		Page:       f.Page,
		PageSize:   f.PageSize,
		TotalPages: (total + f.PageSize - 1) / f.PageSize,
	}, nil
}

// CreateOpts holds the creation payload.
type CreateOpts struct {
	Name      string
	Email     string
	Phone     string
	Stage     string
	JobID     string
	Resume    string
	LinkedIn  string
	Portfolio string
	Notes     string
}

// Create validates the payload, stamps id and timestamps, and
// persists under the write envelope.
func (s *Service) Create(ctx context.Context, opts CreateOpts) (*models.Candidate, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("candidate: create: name is required: %w", ErrInvalid)
	}
	if opts.Email == "" {
		return nil, fmt.Errorf("candidate: create: email is required: %w", ErrInvalid)
	}
	if opts.Stage == "" {
		opts.Stage = models.StageApplied
	}
	if !models.ValidStage(opts.Stage) {
		return nil, fmt.Errorf("candidate: create: unknown stage %q: %w", opts.Stage, ErrInvalid)
	}

	id, err := generateID("candidate")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := models.Candidate{
		ID:        id,
		Name:      opts.Name,
		Email:     opts.Email,
		Phone:     opts.Phone,
		Stage:     opts.Stage,
		JobID:     opts.JobID,
		Resume:    opts.Resume,
		LinkedIn:  opts.LinkedIn,
		Portfolio: opts.Portfolio,
		Notes:     opts.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.net.Write(ctx, func() error {
		if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
			return fmt.Errorf("candidate: create: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Get retrieves a candidate by id. Reads bypass the envelope.
func (s *Service) Get(ctx context.Context, id string) (*models.Candidate, error) {
	var c models.Candidate
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate: get %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("candidate: get %s: %w", id, err)
	}
	return &c, nil
}

// Patch holds a partial update. Nil fields are preserved; non-nil
// fields overwrite, including explicit zero values.
type Patch struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Stage     *string `json:"stage"`
	JobID     *string `json:"jobId"`
	Resume    *string `json:"resume"`
	LinkedIn  *string `json:"linkedin"`
	Portfolio *string `json:"portfolio"`
	Notes     *string `json:"notes"`
}

// Update shallow-merges patch over the existing record and refreshes
// updatedAt. This is the sole path for stage transitions; it does NOT
// append a timeline event — the caller invokes AppendTimelineEvent
// separately when an audit trail is desired. No transition table is
// enforced: any stage may move to any other.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*models.Candidate, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Stage != nil && !models.ValidStage(*patch.Stage) {
		return nil, fmt.Errorf("candidate: update %s: unknown stage %q: %w", id, *patch.Stage, ErrInvalid)
	}

	err = s.net.Write(ctx, func() error {
		applyPatch(c, patch)
		c.UpdatedAt = time.Now().UTC()
		if err := s.db.WithContext(ctx).Save(c).Error; err != nil {
			return fmt.Errorf("candidate: update %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// JobFor resolves the candidate's job. A dangling or empty JobID is
// not an error: it reads as (nil, nil).
func (s *Service) JobFor(ctx context.Context, c *models.Candidate) (*models.Job, error) {
	if c.JobID == "" {
		return nil, nil
	}
	var j models.Job
	if err := s.db.WithContext(ctx).Where("id = ?", c.JobID).First(&j).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("candidate: job for %s: %w", c.ID, err)
	}
	return &j, nil
}

func applyPatch(c *models.Candidate, p Patch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Stage != nil {
		c.Stage = *p.Stage
	}
	if p.JobID != nil {
		c.JobID = *p.JobID
	}
	if p.Resume != nil {
		c.Resume = *p.Resume
	}
	if p.LinkedIn != nil {
		c.LinkedIn = *p.LinkedIn
	}
	if p.Portfolio != nil {
		c.Portfolio = *p.Portfolio
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// generateID creates an id in <prefix>_<unix-ms>_<9 base36 chars>
// format. Collisions are treated as negligible and not checked.
func generateID(prefix string) (string, error) {
	b := make([]byte, 9)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("candidate: generate ID: %w", err)
	}
	for i := range b {
		b[i] = idAlphabet[int(b[i])%len(idAlphabet)]
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), b), nil
}
