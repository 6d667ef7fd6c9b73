package challenge

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a challenge. PENDING is the only
// non-terminal state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusWithdrawn Status = "WITHDRAWN"
)

// Challenge is a team's proposal to fill a specific slot of a match post.
type Challenge struct {
	ID               int64
	MatchPostID      int64
	SlotID           int64
	ChallengerTeamID int64
	Message          string
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (c Challenge) Validate() error {
	if c.MatchPostID <= 0 {
		return fmt.Errorf("match post id is required")
	}
	if c.SlotID <= 0 {
		return fmt.Errorf("slot id is required")
	}
	if c.ChallengerTeamID <= 0 {
		return fmt.Errorf("challenger team id is required")
	}
	if len(c.Message) > 1000 {
		return fmt.Errorf("message must be at most 1000 characters")
	}

	return nil
}
