package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/daehyun-cho/matchup/internal/domain/challenge"
	"github.com/daehyun-cho/matchup/internal/domain/match"
	"github.com/daehyun-cho/matchup/internal/domain/matchpost"
	qb "github.com/daehyun-cho/matchup/internal/platform/querybuilder"
	"github.com/daehyun-cho/matchup/internal/usecase"
)

// SchedulerStore runs acceptance transactions on postgres. The reads
// take FOR UPDATE row locks on the challenge, its slot, and its post,
// so two concurrent acceptances against the same post serialize and
// the loser observes the winner's committed state. The transaction runs
// SERIALIZABLE because the row locks alone cannot order acceptances on
// different posts that share a team: both would count zero overlapping
// matches and insert. Under SERIALIZABLE one of them aborts with a
// serialization failure, surfaced to the caller as a conflict.
type SchedulerStore struct {
	db *sqlx.DB
}

func NewSchedulerStore(db *sqlx.DB) *SchedulerStore {
	return &SchedulerStore{db: db}
}

func (s *SchedulerStore) InTx(ctx context.Context, fn func(tx usecase.SchedulerTx) error) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin acceptance tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(&schedulerTx{tx: tx}); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: concurrent acceptance in progress, retry", usecase.ErrConflict)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: concurrent acceptance in progress, retry", usecase.ErrConflict)
		}
		return fmt.Errorf("commit acceptance tx: %w", err)
	}

	return nil
}

type schedulerTx struct {
	tx *sqlx.Tx
}

func (t *schedulerTx) GetChallenge(ctx context.Context, challengeID int64) (challenge.Challenge, bool, error) {
	query, args, err := qb.Select("*").From("challenges").
		Where(qb.Eq("id", challengeID)).
		ToSQL()
	if err != nil {
		return challenge.Challenge{}, false, fmt.Errorf("build lock challenge query: %w", err)
	}

	var row challengeTableModel
	if err := t.tx.GetContext(ctx, &row, query+" FOR UPDATE", args...); err != nil {
		if isNotFound(err) {
			return challenge.Challenge{}, false, nil
		}
		return challenge.Challenge{}, false, fmt.Errorf("lock challenge: %w", err)
	}

	return row.toDomain(), true, nil
}

func (t *schedulerTx) GetSlot(ctx context.Context, slotID int64) (matchpost.TimeSlot, bool, error) {
	query, args, err := qb.Select("*").From("time_slots").
		Where(qb.Eq("id", slotID)).
		ToSQL()
	if err != nil {
		return matchpost.TimeSlot{}, false, fmt.Errorf("build lock time slot query: %w", err)
	}

	var row timeSlotTableModel
	if err := t.tx.GetContext(ctx, &row, query+" FOR UPDATE", args...); err != nil {
		if isNotFound(err) {
			return matchpost.TimeSlot{}, false, nil
		}
		return matchpost.TimeSlot{}, false, fmt.Errorf("lock time slot: %w", err)
	}

	return row.toDomain(), true, nil
}

func (t *schedulerTx) GetPost(ctx context.Context, postID int64) (matchpost.MatchPost, bool, error) {
	query, args, err := qb.Select("*").From("match_posts").
		Where(qb.Eq("id", postID)).
		ToSQL()
	if err != nil {
		return matchpost.MatchPost{}, false, fmt.Errorf("build lock match post query: %w", err)
	}

	var row matchPostTableModel
	if err := t.tx.GetContext(ctx, &row, query+" FOR UPDATE", args...); err != nil {
		if isNotFound(err) {
			return matchpost.MatchPost{}, false, nil
		}
		return matchpost.MatchPost{}, false, fmt.Errorf("lock match post: %w", err)
	}

	post := row.toDomain()

	slotQuery, slotArgs, err := qb.Select("*").From("time_slots").
		Where(qb.Eq("match_post_id", postID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return matchpost.MatchPost{}, false, fmt.Errorf("build list post slots query: %w", err)
	}
	var slotRows []timeSlotTableModel
	if err := t.tx.SelectContext(ctx, &slotRows, slotQuery, slotArgs...); err != nil {
		return matchpost.MatchPost{}, false, fmt.Errorf("list post slots: %w", err)
	}
	for _, slotRow := range slotRows {
		post.Slots = append(post.Slots, slotRow.toDomain())
	}

	return post, true, nil
}

func (t *schedulerTx) CountOverlappingScheduled(ctx context.Context, startAt, endAt time.Time, teamIDs []int64) (int, error) {
	ids := make([]any, 0, len(teamIDs))
	for _, id := range teamIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("COUNT(*)").From("matches").
		Where(
			qb.Eq("status", string(match.StatusScheduled)),
			qb.Lt("start_at", endAt),
			qb.Gt("end_at", startAt),
			qb.Or(
				qb.In("host_team_id", ids),
				qb.In("away_team_id", ids),
			),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count overlapping matches query: %w", err)
	}

	var count int
	if err := t.tx.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count overlapping matches: %w", err)
	}

	return count, nil
}

func (t *schedulerTx) LockSlot(ctx context.Context, slotID int64) error {
	query, args, err := qb.Update("time_slots").
		Set("status", string(matchpost.SlotLocked)).
		Where(qb.Eq("id", slotID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock slot update query: %w", err)
	}

	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update slot status: %w", err)
	}

	return nil
}

func (t *schedulerTx) MarkChallengeAccepted(ctx context.Context, challengeID int64) error {
	query, args, err := qb.Update("challenges").
		Set("status", string(challenge.StatusAccepted)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", challengeID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build accept challenge update query: %w", err)
	}

	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update challenge status: %w", err)
	}

	return nil
}

func (t *schedulerTx) CreateMatch(ctx context.Context, m match.Match) (match.Match, error) {
	query, args, err := qb.InsertInto("matches").
		Columns("host_team_id", "away_team_id", "venue_id", "start_at", "end_at", "status", "match_post_id").
		Values(m.HostTeamID, m.AwayTeamID, m.VenueID, m.StartAt, m.EndAt, string(m.Status), m.MatchPostID).
		Suffix("RETURNING id, host_team_id, away_team_id, venue_id, start_at, end_at, status, match_post_id, created_at").
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build insert match query: %w", err)
	}

	var row matchTableModel
	if err := t.tx.GetContext(ctx, &row, query, args...); err != nil {
		return match.Match{}, fmt.Errorf("insert match: %w", err)
	}

	return row.toDomain(), nil
}

func (t *schedulerTx) ClosePost(ctx context.Context, postID int64) error {
	query, args, err := qb.Update("match_posts").
		Set("status", string(matchpost.StatusClosed)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", postID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build close match post query: %w", err)
	}

	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match post status: %w", err)
	}

	return nil
}

func (t *schedulerTx) RejectPendingChallenges(ctx context.Context, postID int64) error {
	query, args, err := qb.Update("challenges").
		Set("status", string(challenge.StatusRejected)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("match_post_id", postID),
			qb.Eq("status", string(challenge.StatusPending)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reject pending challenges query: %w", err)
	}

	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update pending challenges: %w", err)
	}

	return nil
}
