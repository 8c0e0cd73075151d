// Package notify delivers candidate stage-change notifications. A
// failed notification is logged and never propagated into the write
// path that triggered it.
package notify

import (
	"context"
	"fmt"

	"github.com/zulandar/talentflow/internal/logging"
	"github.com/zulandar/talentflow/internal/models"
)

// Event describes one stage change. Job is nil when the candidate's
// job reference dangles.
type Event struct {
	Candidate models.Candidate
	Job       *models.Job
	FromStage string
	ToStage   string
}

// Message renders the human-readable notification text.
func (e Event) Message() string {
	role := "an unassigned role"
	if e.Job != nil {
		role = e.Job.Title
	}
	return fmt.Sprintf("%s moved from %s to %s for %s", e.Candidate.Name, e.FromStage, e.ToStage, role)
}

// Notifier delivers one stage-change event.
type Notifier interface {
	StageChanged(ctx context.Context, event Event) error
}

// Multi fans one event out to several notifiers, logging failures and
// always returning nil.
type Multi struct {
	log       *logging.Logger
	notifiers []Notifier
}

// NewMulti builds a fan-out notifier.
func NewMulti(log *logging.Logger, notifiers ...Notifier) *Multi {
	return &Multi{log: log, notifiers: notifiers}
}

// StageChanged delivers the event to every notifier.
func (m *Multi) StageChanged(ctx context.Context, event Event) error {
	for _, n := range m.notifiers {
		if err := n.StageChanged(ctx, event); err != nil {
			m.log.Warn("stage notification failed",
				"candidate", event.Candidate.ID,
				"stage", event.ToStage,
				"err", err)
		}
	}
	return nil
}

// LogNotifier writes stage changes to the structured log.
type LogNotifier struct {
	log *logging.Logger
}

// NewLogNotifier builds a log-backed notifier.
func NewLogNotifier(log *logging.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// StageChanged logs the event.
func (n *LogNotifier) StageChanged(ctx context.Context, event Event) error {
	n.log.Info("stage changed",
		"candidate", event.Candidate.ID,
		"name", event.Candidate.Name,
		"from", event.FromStage,
		"to", event.ToStage,
		"message", event.Message())
	return nil
}
