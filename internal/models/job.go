// Package models defines the GORM schema for the TalentFlow record store.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// Job statuses.
const (
	JobStatusActive   = "active"
	JobStatusArchived = "archived"
)

// Job is a job posting. SortOrder is a manual ranking key shared across
// all jobs regardless of status.
type Job struct {
	ID           string                      `gorm:"primaryKey;size:64" json:"id"`
	Title        string                      `gorm:"size:256;not null;index" json:"title"`
	Slug         string                      `gorm:"size:256;index" json:"slug"`
	Status       string                      `gorm:"size:16;default:active;index" json:"status"`
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	SortOrder    int                         `gorm:"not null;default:0;index" json:"order"`
	Description  string                      `gorm:"type:text" json:"description,omitempty"`
	Requirements datatypes.JSONSlice[string] `json:"requirements,omitempty"`
	Location     string                      `gorm:"size:128" json:"location,omitempty"`
	Salary       string                      `gorm:"size:64" json:"salary,omitempty"`
	CreatedAt    time.Time                   `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}
