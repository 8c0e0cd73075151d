package candidate

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/zulandar/talentflow/internal/models"
)

var mentionPattern = regexp.MustCompile(`@([\w.-]+)`)

// NoteOpts holds the payload for one candidate note. Mentions left
// empty are extracted from @tokens in the content.
type NoteOpts struct {
	Content   string
	Mentions  []string
	CreatedBy string
}

// AddNote attaches a note to a candidate under the write envelope.
func (s *Service) AddNote(ctx context.Context, candidateID string, opts NoteOpts) (*models.Note, error) {
	if opts.Content == "" {
		return nil, fmt.Errorf("candidate: add note: content is required: %w", ErrInvalid)
	}
	if _, err := s.Get(ctx, candidateID); err != nil {
		return nil, err
	}
	if len(opts.Mentions) == 0 {
		opts.Mentions = ExtractMentions(opts.Content)
	}

	id, err := generateID("note")
	if err != nil {
		return nil, err
	}
	note := models.Note{
		ID:          id,
		CandidateID: candidateID,
		Content:     opts.Content,
		Mentions:    opts.Mentions,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   opts.CreatedBy,
	}

	err = s.net.Write(ctx, func() error {
		if err := s.db.WithContext(ctx).Create(&note).Error; err != nil {
			return fmt.Errorf("candidate: add note for %s: %w", candidateID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Notes returns a candidate's notes, newest first.
func (s *Service) Notes(ctx context.Context, candidateID string) ([]models.Note, error) {
	var notes []models.Note
	if err := s.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC, id DESC").
		Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("candidate: notes for %s: %w", candidateID, err)
	}
	return notes, nil
}

// ExtractMentions returns the @mention tokens in content, in order of
// first appearance, without duplicates.
func ExtractMentions(content string) []string {
	var mentions []string
	seen := make(map[string]bool)
	for _, m := range mentionPattern.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			mentions = append(mentions, m[1])
			seen[m[1]] = true
		}
	}
	return mentions
}
