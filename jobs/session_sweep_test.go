package jobs

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hibiken/asynq"
)

type stubStore struct {
	removed int64
	calls   int
}

func (s *stubStore) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	s.calls++
	return s.removed, nil
}

func TestSessionSweepHandle(t *testing.T) {
	store := &stubStore{removed: 3}
	job := NewSessionSweepJob(store, nil, nil)

	payload, err := json.Marshal(SessionSweepPayload{ScheduledFor: time.Now()})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	task := asynq.NewTask(TaskSessionSweep, payload)

	if err := job.Handle(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if store.calls != 1 {
		t.Fatalf("expected one sweep call, got %d", store.calls)
	}
}

func TestSessionSweepBadPayloadSkipsRetry(t *testing.T) {
	job := NewSessionSweepJob(&stubStore{}, nil, nil)
	task := asynq.NewTask(TaskSessionSweep, []byte("{not json"))

	if err := job.Handle(context.Background(), task); err != asynq.SkipRetry {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}
