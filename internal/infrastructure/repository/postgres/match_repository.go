package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/daehyun-cho/matchup/internal/domain/match"
	qb "github.com/daehyun-cho/matchup/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// List pages matches by start time using a keyset cursor on (start_at, id).
func (r *MatchRepository) List(ctx context.Context, filter match.ListFilter) ([]match.Match, error) {
	builder := qb.Select("*").From("matches")
	if filter.Status != "" {
		builder = builder.Where(qb.Eq("status", string(filter.Status)))
	}
	if filter.TeamID > 0 {
		builder = builder.Where(qb.Or(
			qb.Eq("host_team_id", filter.TeamID),
			qb.Eq("away_team_id", filter.TeamID),
		))
	}
	if filter.Cursor > 0 {
		builder = builder.Where(qb.Expr(
			"(start_at, id) > (SELECT start_at, id FROM matches WHERE id = ?)",
			filter.Cursor))
	}
	query, args, err := builder.
		OrderBy("start_at", "id").
		Limit(filter.Take).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
