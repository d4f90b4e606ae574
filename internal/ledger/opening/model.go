package opening

import "time"

// OpeningBalance records the one-time opening entry posted for an entity.
// The monetary detail lives in the linked journal entry; this row exists to
// enforce the one-entry-per-entity rule and to find the journal later.
type OpeningBalance struct {
	ID        int64
	EntityID  int64
	JournalID int64
	AsOfDate  time.Time
	PostedBy  int64
	CreatedAt time.Time
}
