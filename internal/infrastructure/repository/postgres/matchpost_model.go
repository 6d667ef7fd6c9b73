package postgres

import (
	"time"

	"github.com/daehyun-cho/matchup/internal/domain/matchpost"
)

type matchPostTableModel struct {
	ID          int64     `db:"id"`
	HostTeamID  int64     `db:"host_team_id"`
	VenueID     string    `db:"venue_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (m matchPostTableModel) toDomain() matchpost.MatchPost {
	return matchpost.MatchPost{
		ID:          m.ID,
		HostTeamID:  m.HostTeamID,
		VenueID:     m.VenueID,
		Title:       m.Title,
		Description: m.Description,
		Status:      matchpost.Status(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type timeSlotTableModel struct {
	ID          int64     `db:"id"`
	MatchPostID int64     `db:"match_post_id"`
	StartAt     time.Time `db:"start_at"`
	EndAt       time.Time `db:"end_at"`
	Status      string    `db:"status"`
}

func (m timeSlotTableModel) toDomain() matchpost.TimeSlot {
	return matchpost.TimeSlot{
		ID:          m.ID,
		MatchPostID: m.MatchPostID,
		StartAt:     m.StartAt,
		EndAt:       m.EndAt,
		Status:      matchpost.SlotStatus(m.Status),
	}
}
