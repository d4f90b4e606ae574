package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskGLIntegrity verifies that posted journals still balance.
	TaskGLIntegrity = "gl:integrity"
	// TaskSessionSweep purges expired session records.
	TaskSessionSweep = "sessions:sweep"
)

// GLIntegrityPayload scopes the integrity scan. EntityID zero scans all entities.
type GLIntegrityPayload struct {
	EntityID     int64     `json:"entity_id"`
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewGLIntegrityTask constructs an Asynq task for the ledger integrity scan.
func NewGLIntegrityTask(entityID int64, at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(GLIntegrityPayload{EntityID: entityID, ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGLIntegrity, body, asynq.Queue(QueueDefault)), nil
}

// SessionSweepPayload carries scheduling metadata for the session sweep.
type SessionSweepPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewSessionSweepTask constructs an Asynq task for the session sweep.
func NewSessionSweepTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(SessionSweepPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSessionSweep, body, asynq.Queue(QueueDefault)), nil
}
