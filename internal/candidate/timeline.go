package candidate

import (
	"context"
	"fmt"
	"time"

	"github.com/zulandar/talentflow/internal/models"
)

// AppendOpts holds the payload for one timeline entry.
type AppendOpts struct {
	Stage  string
	Notes  string // defaults to "Stage changed to <stage>"
	UserID string
}

// AppendTimelineEvent records one entry in the candidate's stage
// history. The log is append-only and is an audit write internal to
// the store, so it is not run under the network envelope; the
// user-facing stage change it accompanies already was.
func (s *Service) AppendTimelineEvent(ctx context.Context, candidateID string, opts AppendOpts) (*models.CandidateTimelineEvent, error) {
	if !models.ValidStage(opts.Stage) {
		return nil, fmt.Errorf("candidate: append timeline: unknown stage %q: %w", opts.Stage, ErrInvalid)
	}
	if opts.Notes == "" {
		opts.Notes = "Stage changed to " + opts.Stage
	}

	id, err := generateID("timeline")
	if err != nil {
		return nil, err
	}
	event := models.CandidateTimelineEvent{
		ID:          id,
		CandidateID: candidateID,
		Stage:       opts.Stage,
		Timestamp:   time.Now().UTC(),
		Notes:       opts.Notes,
		UserID:      opts.UserID,
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, fmt.Errorf("candidate: append timeline for %s: %w", candidateID, err)
	}
	return &event, nil
}

// Timeline returns the candidate's stage history sorted by timestamp
// ascending.
func (s *Service) Timeline(ctx context.Context, candidateID string) ([]models.CandidateTimelineEvent, error) {
	var events []models.CandidateTimelineEvent
	if err := s.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("timestamp ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("candidate: timeline for %s: %w", candidateID, err)
	}
	return events, nil
}
