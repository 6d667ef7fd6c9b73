package postgres

import (
	"time"

	"github.com/daehyun-cho/matchup/internal/domain/challenge"
)

type challengeTableModel struct {
	ID               int64     `db:"id"`
	MatchPostID      int64     `db:"match_post_id"`
	SlotID           int64     `db:"slot_id"`
	ChallengerTeamID int64     `db:"challenger_team_id"`
	Message          string    `db:"message"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (m challengeTableModel) toDomain() challenge.Challenge {
	return challenge.Challenge{
		ID:               m.ID,
		MatchPostID:      m.MatchPostID,
		SlotID:           m.SlotID,
		ChallengerTeamID: m.ChallengerTeamID,
		Message:          m.Message,
		Status:           challenge.Status(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
