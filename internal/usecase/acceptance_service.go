package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/daehyun-cho/matchup/internal/domain/challenge"
	"github.com/daehyun-cho/matchup/internal/domain/match"
	"github.com/daehyun-cho/matchup/internal/domain/matchpost"
	"github.com/daehyun-cho/matchup/internal/platform/logging"
)

// SchedulerTx is the set of reads and writes the acceptance engine
// performs inside one transaction. The reads take row locks so that
// concurrent acceptances touching the same slot, post, or teams are
// forced into a serial order by the store.
type SchedulerTx interface {
	GetChallenge(ctx context.Context, challengeID int64) (challenge.Challenge, bool, error)
	GetSlot(ctx context.Context, slotID int64) (matchpost.TimeSlot, bool, error)
	GetPost(ctx context.Context, postID int64) (matchpost.MatchPost, bool, error)
	// CountOverlappingScheduled counts SCHEDULED matches intersecting
	// [startAt, endAt) where any of the teams plays host or away.
	CountOverlappingScheduled(ctx context.Context, startAt, endAt time.Time, teamIDs []int64) (int, error)
	LockSlot(ctx context.Context, slotID int64) error
	MarkChallengeAccepted(ctx context.Context, challengeID int64) error
	CreateMatch(ctx context.Context, m match.Match) (match.Match, error)
	ClosePost(ctx context.Context, postID int64) error
	// RejectPendingChallenges bulk-rejects every remaining PENDING
	// challenge on the post, regardless of which slot it targets.
	RejectPendingChallenges(ctx context.Context, postID int64) error
}

// SchedulerStore runs fn as one all-or-nothing transaction. Any error
// from fn rolls every write back; no partial commit is ever visible.
type SchedulerStore interface {
	InTx(ctx context.Context, fn func(tx SchedulerTx) error) error
}

// AcceptanceResult mirrors what a caller needs after a commit: the new
// match plus the final state of the entities the transaction touched.
type AcceptanceResult struct {
	Match     match.Match
	Post      matchpost.MatchPost
	Slot      matchpost.TimeSlot
	Challenge challenge.Challenge
}

// AcceptanceService converts a pending challenge into a scheduled
// match. This is the only code path that locks slots, closes posts, or
// resolves challenges.
type AcceptanceService struct {
	store  SchedulerStore
	logger *logging.Logger
}

func NewAcceptanceService(store SchedulerStore, logger *logging.Logger) *AcceptanceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AcceptanceService{store: store, logger: logger}
}

// AcceptChallenge validates and commits the acceptance as a single
// transaction:
//
//  1. the challenge exists and is PENDING
//  2. its slot exists and is OPEN
//  3. its post exists
//  4. neither the host nor the challenger team has a SCHEDULED match
//     overlapping the slot's window
//
// then locks the slot, accepts the challenge, creates the match, closes
// the post, and rejects every other pending challenge on the post.
//
// Retrying after a committed accept is safe: the retry observes the
// challenge in a terminal state and fails the PENDING check. The
// overlap check deliberately guards only SCHEDULED matches; other
// pending challenges hold no reservation until they are accepted.
func (s *AcceptanceService) AcceptChallenge(ctx context.Context, challengeID int64) (AcceptanceResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AcceptanceService.AcceptChallenge")
	defer span.End()

	if challengeID <= 0 {
		return AcceptanceResult{}, fmt.Errorf("%w: challenge id must be a positive integer", ErrInvalidInput)
	}

	var result AcceptanceResult
	err := s.store.InTx(ctx, func(tx SchedulerTx) error {
		accepted, err := s.acceptInTx(ctx, tx, challengeID)
		if err != nil {
			return err
		}
		result = accepted
		return nil
	})
	if err != nil {
		return AcceptanceResult{}, err
	}

	s.logger.InfoContext(ctx, "challenge accepted",
		"challenge_id", result.Challenge.ID,
		"match_id", result.Match.ID,
		"match_post_id", result.Post.ID,
		"slot_id", result.Slot.ID,
		"host_team_id", result.Match.HostTeamID,
		"away_team_id", result.Match.AwayTeamID,
	)

	return result, nil
}

func (s *AcceptanceService) acceptInTx(ctx context.Context, tx SchedulerTx, challengeID int64) (AcceptanceResult, error) {
	pending, exists, err := tx.GetChallenge(ctx, challengeID)
	if err != nil {
		return AcceptanceResult{}, fmt.Errorf("get challenge: %w", err)
	}
	if !exists {
		return AcceptanceResult{}, fmt.Errorf("%w: challenge not found", ErrNotFound)
	}
	if pending.Status != challenge.StatusPending {
		return AcceptanceResult{}, fmt.Errorf("%w: challenge is not pending", ErrConflict)
	}

	slot, exists, err := tx.GetSlot(ctx, pending.SlotID)
	if err != nil {
		return AcceptanceResult{}, fmt.Errorf("get slot: %w", err)
	}
	if !exists {
		return AcceptanceResult{}, fmt.Errorf("%w: slot not found", ErrNotFound)
	}
	if slot.Status != matchpost.SlotOpen {
		return AcceptanceResult{}, fmt.Errorf("%w: slot is not open", ErrConflict)
	}

	post, exists, err := tx.GetPost(ctx, pending.MatchPostID)
	if err != nil {
		return AcceptanceResult{}, fmt.Errorf("get match post: %w", err)
	}
	if !exists {
		return AcceptanceResult{}, fmt.Errorf("%w: match post not found", ErrNotFound)
	}

	overlapCount, err := tx.CountOverlappingScheduled(ctx, slot.StartAt, slot.EndAt,
		[]int64{post.HostTeamID, pending.ChallengerTeamID})
	if err != nil {
		return AcceptanceResult{}, fmt.Errorf("count overlapping matches: %w", err)
	}
	if overlapCount > 0 {
		return AcceptanceResult{}, fmt.Errorf("%w: team has overlapping match", ErrConflict)
	}

	if err := tx.LockSlot(ctx, slot.ID); err != nil {
		return AcceptanceResult{}, fmt.Errorf("lock slot: %w", err)
	}
	if err := tx.MarkChallengeAccepted(ctx, pending.ID); err != nil {
		return AcceptanceResult{}, fmt.Errorf("accept challenge: %w", err)
	}

	created, err := tx.CreateMatch(ctx, match.Match{
		HostTeamID:  post.HostTeamID,
		AwayTeamID:  pending.ChallengerTeamID,
		VenueID:     post.VenueID,
		StartAt:     slot.StartAt,
		EndAt:       slot.EndAt,
		Status:      match.StatusScheduled,
		MatchPostID: post.ID,
	})
	if err != nil {
		return AcceptanceResult{}, fmt.Errorf("create match: %w", err)
	}

	if err := tx.ClosePost(ctx, post.ID); err != nil {
		return AcceptanceResult{}, fmt.Errorf("close match post: %w", err)
	}
	if err := tx.RejectPendingChallenges(ctx, post.ID); err != nil {
		return AcceptanceResult{}, fmt.Errorf("reject pending challenges: %w", err)
	}

	slot.Status = matchpost.SlotLocked
	pending.Status = challenge.StatusAccepted
	post.Status = matchpost.StatusClosed

	return AcceptanceResult{
		Match:     created,
		Post:      post,
		Slot:      slot,
		Challenge: pending,
	}, nil
}
