// Package job provides the data-access contract for job postings:
// filtered, sorted, paginated listing and envelope-wrapped mutations.
package job

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/zulandar/talentflow/internal/models"
	"github.com/zulandar/talentflow/internal/simnet"
	"gorm.io/gorm"
)

// Sentinel errors callers discriminate with errors.Is.
var (
	ErrNotFound = errors.New("job not found")
	ErrInvalid  = errors.New("invalid job")
)

// DefaultPageSize applies when a list request does not set one.
const DefaultPageSize = 10

// sortColumns maps the public sort keys to store columns.
var sortColumns = map[string]string{
	"title":     "title",
	"createdAt": "created_at",
	"order":     "sort_order",
}

// Service wraps the record store with the jobs read/write contract.
type Service struct {
	db  *gorm.DB
	net *simnet.Injector
}

// NewService builds a Service. Both the store and the injector are
// required.
func NewService(gdb *gorm.DB, net *simnet.Injector) (*Service, error) {
	if gdb == nil {
		return nil, fmt.Errorf("job: db is required")
	}
	if net == nil {
		return nil, fmt.Errorf("job: injector is required")
	}
	return &Service{db: gdb, net: net}, nil
}

// ListFilters holds the recognized query options. Zero values mean
// "no filter"; Page and PageSize default to 1 and DefaultPageSize.
type ListFilters struct {
	Search   string
	Status   string
	Page     int
	PageSize int
	Sort     string // title, createdAt, order
	Order    string // asc, desc
}

// Page is one bounded slice of a filtered, sorted result set.
type Page struct {
	Data       []models.Job `json:"data"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalPages int          `json:"totalPages"`
}

// List loads all jobs sorted ascending by the sort key, filters in
// memory, reverses for descending order, and slices the requested
// page. Descending is the exact reverse of ascending, so tie-break
// behavior of the underlying sort is preserved. Out-of-range pages
// return empty data, not an error.
func (s *Service) List(ctx context.Context, f ListFilters) (*Page, error) {
	if f.Sort == "" {
		f.Sort = "order"
	}
	col, ok := sortColumns[f.Sort]
	if !ok {
		return nil, fmt.Errorf("job: list: unknown sort key %q: %w", f.Sort, ErrInvalid)
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}

	var jobs []models.Job
	if err := s.db.WithContext(ctx).
		Order(col + " ASC, id ASC").
		Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("job: list: %w", err)
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		kept := jobs[:0]
		for _, j := range jobs {
			if strings.Contains(strings.ToLower(j.Title), needle) ||
				strings.Contains(strings.ToLower(j.Description), needle) {
				kept = append(kept, j)
			}
		}
		jobs = kept
	}
	if f.Status != "" {
		kept := jobs[:0]
		for _, j := range jobs {
			if j.Status == f.Status {
				kept = append(kept, j)
			}
		}
		jobs = kept
	}

	if f.Order == "desc" {
		for i, j := 0, len(jobs)-1; i < j; i, j = i+1, j-1 {
			jobs[i], jobs[j] = jobs[j], jobs[i]
		}
	}

	total := len(jobs)
	start := (f.Page - 1) * f.PageSize
	end := start + f.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &Page{
		Data:       jobs[start:end],
		Total:      total,
		Page:       f.Page,
		PageSize:   f.PageSize,
		TotalPages: (total + f.PageSize - 1) / f.PageSize,
	}, nil
}

// CreateOpts holds the creation payload. ID and timestamps are
// synthesized by Create.
type CreateOpts struct {
	Title        string
	Slug         string
	Status       string
	Tags         []string
	Order        int
	Description  string
	Requirements []string
	Location     string
	Salary       string
}

// Create validates the payload, stamps a fresh id and matching
// createdAt/updatedAt, and persists under the write envelope.
func (s *Service) Create(ctx context.Context, opts CreateOpts) (*models.Job, error) {
	if opts.Title == "" {
		return nil, fmt.Errorf("job: create: title is required: %w", ErrInvalid)
	}
	if opts.Status == "" {
		opts.Status = models.JobStatusActive
	}
	if opts.Status != models.JobStatusActive && opts.Status != models.JobStatusArchived {
		return nil, fmt.Errorf("job: create: unknown status %q: %w", opts.Status, ErrInvalid)
	}
	if opts.Order < 0 {
		return nil, fmt.Errorf("job: create: order must be non-negative: %w", ErrInvalid)
	}
	if opts.Slug == "" {
		opts.Slug = Slugify(opts.Title)
	}

	id, err := GenerateID()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	j := models.Job{
		ID:           id,
		Title:        opts.Title,
		Slug:         opts.Slug,
		Status:       opts.Status,
		Tags:         opts.Tags,
		SortOrder:    opts.Order,
		Description:  opts.Description,
		Requirements: opts.Requirements,
		Location:     opts.Location,
		Salary:       opts.Salary,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.net.Write(ctx, func() error {
		if err := s.db.WithContext(ctx).Create(&j).Error; err != nil {
			return fmt.Errorf("job: create: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Get retrieves a job by id. Reads bypass the envelope.
func (s *Service) Get(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&j).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job: get %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("job: get %s: %w", id, err)
	}
	return &j, nil
}

// GetBySlug retrieves a job by slug. Slugs are treated as unique in
// seed data but not constrained; the first match wins.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Job, error) {
	var j models.Job
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).Order("id ASC").First(&j).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job: get by slug %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("job: get by slug %s: %w", slug, err)
	}
	return &j, nil
}

// Patch holds a partial update. Nil fields are preserved; non-nil
// fields overwrite, including explicit zero values.
type Patch struct {
	Title        *string   `json:"title"`
	Slug         *string   `json:"slug"`
	Status       *string   `json:"status"`
	Tags         *[]string `json:"tags"`
	Order        *int      `json:"order"`
	Description  *string   `json:"description"`
	Requirements *[]string `json:"requirements"`
	Location     *string   `json:"location"`
	Salary       *string   `json:"salary"`
}

// Update shallow-merges patch over the existing record and refreshes
// updatedAt. The existence check is deterministic and precedes the
// envelope, so a missing id always fails with ErrNotFound regardless
// of injected failures.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*models.Job, error) {
	j, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil && *patch.Status != models.JobStatusActive && *patch.Status != models.JobStatusArchived {
		return nil, fmt.Errorf("job: update %s: unknown status %q: %w", id, *patch.Status, ErrInvalid)
	}

	err = s.net.Write(ctx, func() error {
		applyPatch(j, patch)
		j.UpdatedAt = time.Now().UTC()
		if err := s.db.WithContext(ctx).Save(j).Error; err != nil {
			return fmt.Errorf("job: update %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

// Reorder sets the job's order to toOrder directly. Other jobs keep
// their order values; ties are resolved by the underlying sort's id
// tie-break.
func (s *Service) Reorder(ctx context.Context, id string, fromOrder, toOrder int) (*models.Job, error) {
	if toOrder < 0 {
		return nil, fmt.Errorf("job: reorder %s: order must be non-negative: %w", id, ErrInvalid)
	}
	j, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.net.Write(ctx, func() error {
		j.SortOrder = toOrder
		j.UpdatedAt = time.Now().UTC()
		if err := s.db.WithContext(ctx).Save(j).Error; err != nil {
			return fmt.Errorf("job: reorder %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

// Delete removes a job. Candidates and assessments referencing it are
// left in place; dangling references read as "no job".
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.net.Write(ctx, func() error {
		if err := s.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("job: delete %s: %w", id, err)
		}
		return nil
	})
}

func applyPatch(j *models.Job, p Patch) {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Slug != nil {
		j.Slug = *p.Slug
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
	if p.Tags != nil {
		j.Tags = *p.Tags
	}
	if p.Order != nil {
		j.SortOrder = *p.Order
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Requirements != nil {
		j.Requirements = *p.Requirements
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Salary != nil {
		j.Salary = *p.Salary
	}
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateID creates a job id in job_<unix-ms>_<9 base36 chars>
// format. Collisions are treated as negligible and not checked.
func GenerateID() (string, error) {
	suffix, err := randSuffix(9)
	if err != nil {
		return "", fmt.Errorf("job: generate ID: %w", err)
	}
	return fmt.Sprintf("job_%d_%s", time.Now().UnixMilli(), suffix), nil
}

func randSuffix(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = idAlphabet[int(b[i])%len(idAlphabet)]
	}
	return string(b), nil
}

// Slugify derives a URL-safe slug from a title.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
