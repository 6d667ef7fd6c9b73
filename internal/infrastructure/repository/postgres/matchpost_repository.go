package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/daehyun-cho/matchup/internal/domain/matchpost"
	qb "github.com/daehyun-cho/matchup/internal/platform/querybuilder"
)

type MatchPostRepository struct {
	db *sqlx.DB
}

func NewMatchPostRepository(db *sqlx.DB) *MatchPostRepository {
	return &MatchPostRepository{db: db}
}

// Create inserts the post and all of its slots in one transaction.
func (r *MatchPostRepository) Create(ctx context.Context, post matchpost.MatchPost) (matchpost.MatchPost, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return matchpost.MatchPost{}, fmt.Errorf("begin tx create match post: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	postQuery, postArgs, err := qb.InsertInto("match_posts").
		Columns("host_team_id", "venue_id", "title", "description", "status").
		Values(post.HostTeamID, post.VenueID, post.Title, post.Description, string(post.Status)).
		Suffix("RETURNING id, host_team_id, venue_id, title, description, status, created_at, updated_at").
		ToSQL()
	if err != nil {
		return matchpost.MatchPost{}, fmt.Errorf("build insert match post query: %w", err)
	}

	var postRow matchPostTableModel
	if err := tx.GetContext(ctx, &postRow, postQuery, postArgs...); err != nil {
		return matchpost.MatchPost{}, fmt.Errorf("insert match post: %w", err)
	}

	slotBuilder := qb.InsertInto("time_slots").
		Columns("match_post_id", "start_at", "end_at", "status")
	for _, slot := range post.Slots {
		slotBuilder = slotBuilder.Values(postRow.ID, slot.StartAt, slot.EndAt, string(slot.Status))
	}
	slotQuery, slotArgs, err := slotBuilder.
		Suffix("RETURNING id, match_post_id, start_at, end_at, status").
		ToSQL()
	if err != nil {
		return matchpost.MatchPost{}, fmt.Errorf("build insert time slots query: %w", err)
	}

	var slotRows []timeSlotTableModel
	if err := tx.SelectContext(ctx, &slotRows, slotQuery, slotArgs...); err != nil {
		return matchpost.MatchPost{}, fmt.Errorf("insert time slots: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return matchpost.MatchPost{}, fmt.Errorf("commit create match post tx: %w", err)
	}

	created := postRow.toDomain()
	created.Slots = make([]matchpost.TimeSlot, 0, len(slotRows))
	for _, row := range slotRows {
		created.Slots = append(created.Slots, row.toDomain())
	}

	return created, nil
}

func (r *MatchPostRepository) GetByID(ctx context.Context, postID int64) (matchpost.MatchPost, bool, error) {
	query, args, err := qb.Select("*").From("match_posts").
		Where(qb.Eq("id", postID)).
		ToSQL()
	if err != nil {
		return matchpost.MatchPost{}, false, fmt.Errorf("build get match post by id query: %w", err)
	}

	var row matchPostTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchpost.MatchPost{}, false, nil
		}
		return matchpost.MatchPost{}, false, fmt.Errorf("get match post by id: %w", err)
	}

	post := row.toDomain()
	slots, err := r.listSlots(ctx, []int64{post.ID})
	if err != nil {
		return matchpost.MatchPost{}, false, err
	}
	post.Slots = slots[post.ID]

	return post, true, nil
}

func (r *MatchPostRepository) GetSlot(ctx context.Context, slotID int64) (matchpost.TimeSlot, bool, error) {
	query, args, err := qb.Select("*").From("time_slots").
		Where(qb.Eq("id", slotID)).
		ToSQL()
	if err != nil {
		return matchpost.TimeSlot{}, false, fmt.Errorf("build get time slot query: %w", err)
	}

	var row timeSlotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchpost.TimeSlot{}, false, nil
		}
		return matchpost.TimeSlot{}, false, fmt.Errorf("get time slot: %w", err)
	}

	return row.toDomain(), true, nil
}

// List pages posts newest first using a keyset cursor on (created_at, id).
func (r *MatchPostRepository) List(ctx context.Context, filter matchpost.ListFilter) ([]matchpost.MatchPost, error) {
	builder := qb.Select("*").From("match_posts")
	if !filter.IncludeClosed {
		builder = builder.Where(qb.Eq("status", string(matchpost.StatusOpen)))
	}
	if filter.Region != "" {
		builder = builder.Where(qb.Expr("venue_id IN (SELECT id FROM venues WHERE region = ?)", filter.Region))
	}
	if filter.RangeStart != nil && filter.RangeEnd != nil {
		builder = builder.Where(qb.Expr(
			"EXISTS (SELECT 1 FROM time_slots ts WHERE ts.match_post_id = match_posts.id AND ts.end_at > ? AND ts.start_at < ?)",
			*filter.RangeStart, *filter.RangeEnd))
	} else if filter.RangeStart != nil {
		builder = builder.Where(qb.Expr(
			"EXISTS (SELECT 1 FROM time_slots ts WHERE ts.match_post_id = match_posts.id AND ts.end_at > ?)",
			*filter.RangeStart))
	} else if filter.RangeEnd != nil {
		builder = builder.Where(qb.Expr(
			"EXISTS (SELECT 1 FROM time_slots ts WHERE ts.match_post_id = match_posts.id AND ts.start_at < ?)",
			*filter.RangeEnd))
	}
	if filter.Cursor > 0 {
		builder = builder.Where(qb.Expr(
			"(created_at, id) < (SELECT created_at, id FROM match_posts WHERE id = ?)",
			filter.Cursor))
	}
	query, args, err := builder.
		OrderBy("created_at DESC", "id DESC").
		Limit(filter.Take).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match posts query: %w", err)
	}

	var rows []matchPostTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match posts: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	postIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		postIDs = append(postIDs, row.ID)
	}
	slotsByPost, err := r.listSlots(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	out := make([]matchpost.MatchPost, 0, len(rows))
	for _, row := range rows {
		post := row.toDomain()
		post.Slots = slotsByPost[post.ID]
		out = append(out, post)
	}

	return out, nil
}

func (r *MatchPostRepository) listSlots(ctx context.Context, postIDs []int64) (map[int64][]matchpost.TimeSlot, error) {
	ids := make([]any, 0, len(postIDs))
	for _, id := range postIDs {
		ids = append(ids, id)
	}
	query, args, err := qb.Select("*").From("time_slots").
		Where(qb.In("match_post_id", ids)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list time slots query: %w", err)
	}

	var rows []timeSlotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}

	out := make(map[int64][]matchpost.TimeSlot, len(postIDs))
	for _, row := range rows {
		out[row.MatchPostID] = append(out[row.MatchPostID], row.toDomain())
	}

	return out, nil
}
