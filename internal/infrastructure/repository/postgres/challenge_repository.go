package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/daehyun-cho/matchup/internal/domain/challenge"
	qb "github.com/daehyun-cho/matchup/internal/platform/querybuilder"
)

type ChallengeRepository struct {
	db *sqlx.DB
}

func NewChallengeRepository(db *sqlx.DB) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

func (r *ChallengeRepository) Create(ctx context.Context, c challenge.Challenge) (challenge.Challenge, error) {
	query, args, err := qb.InsertInto("challenges").
		Columns("match_post_id", "slot_id", "challenger_team_id", "message", "status").
		Values(c.MatchPostID, c.SlotID, c.ChallengerTeamID, c.Message, string(c.Status)).
		Suffix("RETURNING id, match_post_id, slot_id, challenger_team_id, message, status, created_at, updated_at").
		ToSQL()
	if err != nil {
		return challenge.Challenge{}, fmt.Errorf("build insert challenge query: %w", err)
	}

	var row challengeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return challenge.Challenge{}, fmt.Errorf("insert challenge: %w", challenge.ErrDuplicatePending)
		}
		return challenge.Challenge{}, fmt.Errorf("insert challenge: %w", err)
	}

	return row.toDomain(), nil
}

func (r *ChallengeRepository) GetByID(ctx context.Context, challengeID int64) (challenge.Challenge, bool, error) {
	query, args, err := qb.Select("*").From("challenges").
		Where(qb.Eq("id", challengeID)).
		ToSQL()
	if err != nil {
		return challenge.Challenge{}, false, fmt.Errorf("build get challenge by id query: %w", err)
	}

	var row challengeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return challenge.Challenge{}, false, nil
		}
		return challenge.Challenge{}, false, fmt.Errorf("get challenge by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *ChallengeRepository) HasPending(ctx context.Context, matchPostID, challengerTeamID int64) (bool, error) {
	query, args, err := qb.Select("COUNT(*)").From("challenges").
		Where(
			qb.Eq("match_post_id", matchPostID),
			qb.Eq("challenger_team_id", challengerTeamID),
			qb.Eq("status", string(challenge.StatusPending)),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build has pending challenge query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("has pending challenge: %w", err)
	}

	return count > 0, nil
}

func (r *ChallengeRepository) ListByPost(ctx context.Context, matchPostID int64) ([]challenge.Challenge, error) {
	query, args, err := qb.Select("*").From("challenges").
		Where(qb.Eq("match_post_id", matchPostID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list challenges by post query: %w", err)
	}

	var rows []challengeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list challenges by post: %w", err)
	}

	out := make([]challenge.Challenge, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
