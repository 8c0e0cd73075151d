// Package assessment provides the data-access contract for per-job
// assessments and their submitted responses.
package assessment

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/zulandar/talentflow/internal/models"
	"github.com/zulandar/talentflow/internal/simnet"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Sentinel errors callers discriminate with errors.Is.
var (
	ErrNotFound = errors.New("assessment not found")
	ErrInvalid  = errors.New("invalid assessment")
)

// Service wraps the record store with the assessments read/write
// contract.
type Service struct {
	db  *gorm.DB
	net *simnet.Injector
}

// NewService builds a Service.
func NewService(gdb *gorm.DB, net *simnet.Injector) (*Service, error) {
	if gdb == nil {
		return nil, fmt.Errorf("assessment: db is required")
	}
	if net == nil {
		return nil, fmt.Errorf("assessment: injector is required")
	}
	return &Service{db: gdb, net: net}, nil
}

// GetByJob returns the job's assessment, or ErrNotFound when none
// exists. At most one assessment exists per job; the first match by id
// wins if the upsert invariant was ever violated externally.
func (s *Service) GetByJob(ctx context.Context, jobID string) (*models.Assessment, error) {
	var a models.Assessment
	if err := s.db.WithContext(ctx).Where("job_id = ?", jobID).Order("id ASC").First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("assessment: get by job %s: %w", jobID, ErrNotFound)
		}
		return nil, fmt.Errorf("assessment: get by job %s: %w", jobID, err)
	}
	return &a, nil
}

// Draft holds the savable assessment fields. Sections replace the
// stored tree wholesale; the builder always submits the full document.
type Draft struct {
	Title       string
	Description string
	Sections    []models.AssessmentSection
}

// Save upserts the job's assessment: if one exists its fields are
// merged and updatedAt refreshed, keeping its id; otherwise a new
// assessment is created bound to jobID. The one-per-job rule is
// enforced procedurally by this query-then-branch, not by a store
// constraint. Runs under the write envelope.
func (s *Service) Save(ctx context.Context, jobID string, draft Draft) (*models.Assessment, error) {
	if jobID == "" {
		return nil, fmt.Errorf("assessment: save: job id is required: %w", ErrInvalid)
	}
	if draft.Title == "" {
		return nil, fmt.Errorf("assessment: save: title is required: %w", ErrInvalid)
	}

	var saved *models.Assessment
	err := s.net.Write(ctx, func() error {
		var existing models.Assessment
		err := s.db.WithContext(ctx).Where("job_id = ?", jobID).Order("id ASC").First(&existing).Error
		switch {
		case err == nil:
			existing.Title = draft.Title
			existing.Description = draft.Description
			existing.Sections = datatypes.NewJSONType(draft.Sections)
			existing.UpdatedAt = time.Now().UTC()
			if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
				return fmt.Errorf("assessment: save for job %s: %w", jobID, err)
			}
			saved = &existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			id, idErr := generateID("assessment")
			if idErr != nil {
				return idErr
			}
			now := time.Now().UTC()
			created := models.Assessment{
				ID:          id,
				JobID:       jobID,
				Title:       draft.Title,
				Description: draft.Description,
				Sections:    datatypes.NewJSONType(draft.Sections),
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := s.db.WithContext(ctx).Create(&created).Error; err != nil {
				return fmt.Errorf("assessment: save for job %s: %w", jobID, err)
			}
			saved = &created
			return nil
		default:
			return fmt.Errorf("assessment: save for job %s: %w", jobID, err)
		}
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Update applies a partial update to an assessment by its own id.
// NotFound is checked before the envelope and is deterministic.
func (s *Service) Update(ctx context.Context, id string, draft Draft) (*models.Assessment, error) {
	var a models.Assessment
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("assessment: update %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("assessment: update %s: %w", id, err)
	}

	err := s.net.Write(ctx, func() error {
		if draft.Title != "" {
			a.Title = draft.Title
		}
		a.Description = draft.Description
		a.Sections = datatypes.NewJSONType(draft.Sections)
		a.UpdatedAt = time.Now().UTC()
		if err := s.db.WithContext(ctx).Save(&a).Error; err != nil {
			return fmt.Errorf("assessment: update %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SubmitOpts holds one candidate submission.
type SubmitOpts struct {
	CandidateID string
	Responses   []models.QuestionResponse
	SubmittedAt *time.Time
}

// SubmitResponse records a submission against the job's assessment.
// Submissions always create a new row; resubmitting is not an upsert.
func (s *Service) SubmitResponse(ctx context.Context, jobID string, opts SubmitOpts) (*models.AssessmentResponse, error) {
	if opts.CandidateID == "" {
		return nil, fmt.Errorf("assessment: submit: candidate id is required: %w", ErrInvalid)
	}
	a, err := s.GetByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	id, err := generateID("response")
	if err != nil {
		return nil, err
	}
	resp := models.AssessmentResponse{
		ID:           id,
		AssessmentID: a.ID,
		CandidateID:  opts.CandidateID,
		Responses:    datatypes.NewJSONType(opts.Responses),
		SubmittedAt:  opts.SubmittedAt,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.net.Write(ctx, func() error {
		if err := s.db.WithContext(ctx).Create(&resp).Error; err != nil {
			return fmt.Errorf("assessment: submit for job %s: %w", jobID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResponsesByCandidate returns a candidate's submissions, newest
// first.
func (s *Service) ResponsesByCandidate(ctx context.Context, candidateID string) ([]models.AssessmentResponse, error) {
	var responses []models.AssessmentResponse
	if err := s.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC, id DESC").
		Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("assessment: responses for %s: %w", candidateID, err)
	}
	return responses, nil
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// generateID creates an id in <prefix>_<unix-ms>_<9 base36 chars>
// format. Collisions are treated as negligible and not checked.
func generateID(prefix string) (string, error) {
	b := make([]byte, 9)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("assessment: generate ID: %w", err)
	}
	for i := range b {
		b[i] = idAlphabet[int(b[i])%len(idAlphabet)]
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), b), nil
}
