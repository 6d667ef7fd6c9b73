package match

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a scheduled match. The scheduler only
// ever creates SCHEDULED matches; completion and cancellation happen
// elsewhere.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus normalizes a raw status string into the closed set.
func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusScheduled:
		return StatusScheduled, true
	case StatusCompleted:
		return StatusCompleted, true
	case StatusCancelled:
		return StatusCancelled, true
	default:
		return "", false
	}
}

// Match is a confirmed fixture between two teams, produced exactly once
// per accepted challenge.
type Match struct {
	ID          int64
	HostTeamID  int64
	AwayTeamID  int64
	VenueID     string
	StartAt     time.Time
	EndAt       time.Time
	Status      Status
	MatchPostID int64
	CreatedAt   time.Time
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share at
// least one instant. Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// InvolvesTeam reports whether the team plays in this match on either side.
func (m Match) InvolvesTeam(teamID int64) bool {
	return m.HostTeamID == teamID || m.AwayTeamID == teamID
}
