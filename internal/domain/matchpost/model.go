package matchpost

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a match post.
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusClosed    Status = "CLOSED"
	StatusCancelled Status = "CANCELLED"
)

// SlotStatus is the lifecycle state of a proposed time slot.
// A slot moves OPEN -> LOCKED exactly once, only when a challenge
// against it is accepted, and is never unlocked.
type SlotStatus string

const (
	SlotOpen   SlotStatus = "OPEN"
	SlotLocked SlotStatus = "LOCKED"
)

// TimeSlot is one proposed time window of a match post. The window is
// half-open: [StartAt, EndAt).
type TimeSlot struct {
	ID          int64
	MatchPostID int64
	StartAt     time.Time
	EndAt       time.Time
	Status      SlotStatus
}

func (s TimeSlot) Validate() error {
	if !s.StartAt.Before(s.EndAt) {
		return fmt.Errorf("slot startAt must be before endAt")
	}

	return nil
}

// MatchPost is an open offer by a host team to play at a venue, carrying
// one or more candidate time slots.
type MatchPost struct {
	ID          int64
	HostTeamID  int64
	VenueID     string
	Title       string
	Description string
	Status      Status
	Slots       []TimeSlot
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p MatchPost) Validate() error {
	if p.HostTeamID <= 0 {
		return fmt.Errorf("host team id is required")
	}
	if strings.TrimSpace(p.VenueID) == "" {
		return fmt.Errorf("venue id is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if len(p.Slots) == 0 {
		return fmt.Errorf("at least one slot is required")
	}
	for i, slot := range p.Slots {
		if err := slot.Validate(); err != nil {
			return fmt.Errorf("slots[%d]: %w", i, err)
		}
	}

	return nil
}

// Slot returns the slot with the given id, if the post owns it.
func (p MatchPost) Slot(slotID int64) (TimeSlot, bool) {
	for _, slot := range p.Slots {
		if slot.ID == slotID {
			return slot, true
		}
	}
	return TimeSlot{}, false
}
