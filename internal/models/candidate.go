package models

import (
	"time"

	"gorm.io/datatypes"
)

// Pipeline stages, in conventional progression order. Rejected is
// reachable from any stage; no transition table is enforced at the
// store level.
const (
	StageApplied  = "applied"
	StageScreen   = "screen"
	StageTech     = "tech"
	StageOffer    = "offer"
	StageHired    = "hired"
	StageRejected = "rejected"
)

// Stages lists all pipeline stages in progression order.
var Stages = []string{StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected}

// ValidStage reports whether s is one of the six pipeline stages.
func ValidStage(s string) bool {
	for _, stage := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// Candidate is an applicant in the pipeline. JobID is not enforced
// referentially; a dangling reference reads as "no job".
type Candidate struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:128;not null;index" json:"name"`
	Email     string    `gorm:"size:256;not null;index" json:"email"`
	Phone     string    `gorm:"size:32" json:"phone,omitempty"`
	Stage     string    `gorm:"size:16;default:applied;index" json:"stage"`
	JobID     string    `gorm:"size:64;index" json:"jobId"`
	Resume    string    `gorm:"size:512" json:"resume,omitempty"`
	LinkedIn  string    `gorm:"size:512" json:"linkedin,omitempty"`
	Portfolio string    `gorm:"size:512" json:"portfolio,omitempty"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CandidateTimelineEvent is one entry of a candidate's append-only
// stage history.
type CandidateTimelineEvent struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	CandidateID string    `gorm:"size:64;index;not null" json:"candidateId"`
	Stage       string    `gorm:"size:16" json:"stage"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	UserID      string    `gorm:"size:64" json:"userId,omitempty"`
}

// Note is a free-form note on a candidate with @mentions.
type Note struct {
	ID          string                      `gorm:"primaryKey;size:64" json:"id"`
	CandidateID string                      `gorm:"size:64;index;not null" json:"candidateId"`
	Content     string                      `gorm:"type:text;not null" json:"content"`
	Mentions    datatypes.JSONSlice[string] `json:"mentions"`
	CreatedAt   time.Time                   `gorm:"index" json:"createdAt"`
	CreatedBy   string                      `gorm:"size:64;index" json:"createdBy"`
}
