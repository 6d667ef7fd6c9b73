package postgres

import (
	"time"

	"github.com/daehyun-cho/matchup/internal/domain/team"
)

type teamTableModel struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Sport       string    `db:"sport"`
	Region      string    `db:"region"`
	LogoURL     string    `db:"logo_url"`
	Description string    `db:"description"`
	SkillRating int       `db:"skill_rating"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:          m.ID,
		Name:        m.Name,
		Sport:       team.Sport(m.Sport),
		Region:      m.Region,
		LogoURL:     m.LogoURL,
		Description: m.Description,
		SkillRating: m.SkillRating,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
