package models

import (
	"time"

	"gorm.io/datatypes"
)

// Question types.
const (
	QuestionSingleChoice = "single-choice"
	QuestionMultiChoice  = "multi-choice"
	QuestionShortText    = "short-text"
	QuestionLongText     = "long-text"
	QuestionNumeric      = "numeric"
	QuestionFileUpload   = "file-upload"
)

// Assessment is a per-job questionnaire. At most one exists per JobID,
// enforced by the upsert path rather than a store constraint. The
// section tree is stored as a single JSON document.
type Assessment struct {
	ID          string                                  `gorm:"primaryKey;size:64" json:"id"`
	JobID       string                                  `gorm:"size:64;index;not null" json:"jobId"`
	Title       string                                  `gorm:"size:256;not null;index" json:"title"`
	Description string                                  `gorm:"type:text" json:"description,omitempty"`
	Sections    datatypes.JSONType[[]AssessmentSection] `json:"sections"`
	CreatedAt   time.Time                               `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time                               `json:"updatedAt"`
}

// AssessmentSection groups questions under a heading.
type AssessmentSection struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Order       int                  `json:"order"`
	Questions   []AssessmentQuestion `json:"questions"`
}

// AssessmentQuestion is a single question. Options apply to choice
// types, Min/Max to numeric, MaxLength to text. Conditional visibility
// is stored verbatim and evaluated by the consuming form.
type AssessmentQuestion struct {
	ID          string             `json:"id"`
	Type        string             `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Required    bool               `json:"required"`
	Options     []string           `json:"options,omitempty"`
	Min         *float64           `json:"min,omitempty"`
	Max         *float64           `json:"max,omitempty"`
	MaxLength   *int               `json:"maxLength,omitempty"`
	Conditional *QuestionCondition `json:"conditional,omitempty"`
	Order       int                `json:"order"`
}

// QuestionCondition makes a question visible only when another
// question's answer satisfies the comparison.
type QuestionCondition struct {
	QuestionID string `json:"questionId"`
	Operator   string `json:"operator"` // equals, not-equals, contains, greater-than, less-than
	Value      any    `json:"value"`
}

// AssessmentResponse is one candidate's submission. Submissions are
// append-only; resubmitting creates a new row.
type AssessmentResponse struct {
	ID           string                                 `gorm:"primaryKey;size:64" json:"id"`
	AssessmentID string                                 `gorm:"size:64;index;not null" json:"assessmentId"`
	CandidateID  string                                 `gorm:"size:64;index;not null" json:"candidateId"`
	Responses    datatypes.JSONType[[]QuestionResponse] `json:"responses"`
	SubmittedAt  *time.Time                             `gorm:"index" json:"submittedAt,omitempty"`
	CreatedAt    time.Time                              `gorm:"index" json:"createdAt"`
}

// QuestionResponse is the answer to a single question.
type QuestionResponse struct {
	QuestionID  string    `json:"questionId"`
	Value       any       `json:"value"`
	SubmittedAt time.Time `json:"submittedAt"`
}
