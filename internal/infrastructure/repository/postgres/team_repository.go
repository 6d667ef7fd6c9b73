package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/daehyun-cho/matchup/internal/domain/team"
	qb "github.com/daehyun-cho/matchup/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	query, args, err := qb.InsertInto("teams").
		Columns("name", "sport", "region", "logo_url", "description", "skill_rating").
		Values(t.Name, string(t.Sport), t.Region, t.LogoURL, t.Description, t.SkillRating).
		Suffix("RETURNING id, name, sport, region, logo_url, description, skill_rating, created_at, updated_at").
		ToSQL()
	if err != nil {
		return team.Team{}, fmt.Errorf("build insert team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return team.Team{}, fmt.Errorf("insert team %q: %w", t.Name, team.ErrNameTaken)
		}
		return team.Team{}, fmt.Errorf("insert team: %w", err)
	}

	return row.toDomain(), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *TeamRepository) List(ctx context.Context, filter team.ListFilter) ([]team.Team, error) {
	builder := qb.Select("*").From("teams")
	if filter.Region != "" {
		builder = builder.Where(qb.Eq("region", filter.Region))
	}
	if filter.Sport != "" {
		builder = builder.Where(qb.Eq("sport", string(filter.Sport)))
	}
	if filter.Cursor > 0 {
		builder = builder.Where(qb.Lt("id", filter.Cursor))
	}
	query, args, err := builder.
		OrderBy("id DESC").
		Limit(filter.Take).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
