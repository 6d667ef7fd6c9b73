package postgres

import (
	"time"

	"github.com/daehyun-cho/matchup/internal/domain/match"
)

type matchTableModel struct {
	ID          int64     `db:"id"`
	HostTeamID  int64     `db:"host_team_id"`
	AwayTeamID  int64     `db:"away_team_id"`
	VenueID     string    `db:"venue_id"`
	StartAt     time.Time `db:"start_at"`
	EndAt       time.Time `db:"end_at"`
	Status      string    `db:"status"`
	MatchPostID int64     `db:"match_post_id"`
	CreatedAt   time.Time `db:"created_at"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:          m.ID,
		HostTeamID:  m.HostTeamID,
		AwayTeamID:  m.AwayTeamID,
		VenueID:     m.VenueID,
		StartAt:     m.StartAt,
		EndAt:       m.EndAt,
		Status:      match.Status(m.Status),
		MatchPostID: m.MatchPostID,
		CreatedAt:   m.CreatedAt,
	}
}
