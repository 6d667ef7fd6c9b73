package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/daehyun-cho/matchup/internal/domain/challenge"
	"github.com/daehyun-cho/matchup/internal/domain/match"
	"github.com/daehyun-cho/matchup/internal/domain/matchpost"
	"github.com/daehyun-cho/matchup/internal/usecase"
)

// SchedulerStore runs acceptance transactions against the in-memory
// store. Holding the write lock for the whole function serializes
// concurrent acceptances; a snapshot taken on entry makes any failure
// roll back to the pre-transaction state.
type SchedulerStore struct {
	store *Store
}

func NewSchedulerStore(store *Store) *SchedulerStore {
	return &SchedulerStore{store: store}
}

func (s *SchedulerStore) InTx(ctx context.Context, fn func(tx usecase.SchedulerTx) error) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	snap := s.store.snapshotLocked()
	if err := fn(&schedulerTx{store: s.store}); err != nil {
		s.store.restoreLocked(snap)
		return err
	}

	return nil
}

// schedulerTx operates on store state already guarded by the write
// lock, so it must not take the lock again.
type schedulerTx struct {
	store *Store
}

func (tx *schedulerTx) GetChallenge(ctx context.Context, challengeID int64) (challenge.Challenge, bool, error) {
	c, ok := tx.store.challenges[challengeID]
	return c, ok, nil
}

func (tx *schedulerTx) GetSlot(ctx context.Context, slotID int64) (matchpost.TimeSlot, bool, error) {
	slot, ok := tx.store.slots[slotID]
	return slot, ok, nil
}

func (tx *schedulerTx) GetPost(ctx context.Context, postID int64) (matchpost.MatchPost, bool, error) {
	post, ok := tx.store.postWithSlotsLocked(postID)
	return post, ok, nil
}

func (tx *schedulerTx) CountOverlappingScheduled(ctx context.Context, startAt, endAt time.Time, teamIDs []int64) (int, error) {
	count := 0
	for _, m := range tx.store.matches {
		if m.Status != match.StatusScheduled {
			continue
		}
		if !match.Overlaps(m.StartAt, m.EndAt, startAt, endAt) {
			continue
		}
		for _, teamID := range teamIDs {
			if m.InvolvesTeam(teamID) {
				count++
				break
			}
		}
	}

	return count, nil
}

func (tx *schedulerTx) LockSlot(ctx context.Context, slotID int64) error {
	slot, ok := tx.store.slots[slotID]
	if !ok {
		return fmt.Errorf("slot %d not found", slotID)
	}
	slot.Status = matchpost.SlotLocked
	tx.store.slots[slotID] = slot

	return nil
}

func (tx *schedulerTx) MarkChallengeAccepted(ctx context.Context, challengeID int64) error {
	c, ok := tx.store.challenges[challengeID]
	if !ok {
		return fmt.Errorf("challenge %d not found", challengeID)
	}
	c.Status = challenge.StatusAccepted
	c.UpdatedAt = tx.store.now()
	tx.store.challenges[challengeID] = c

	return nil
}

func (tx *schedulerTx) CreateMatch(ctx context.Context, m match.Match) (match.Match, error) {
	tx.store.matchSeq++
	m.ID = tx.store.matchSeq
	m.CreatedAt = tx.store.now()
	tx.store.matches[m.ID] = m

	return m, nil
}

func (tx *schedulerTx) ClosePost(ctx context.Context, postID int64) error {
	post, ok := tx.store.posts[postID]
	if !ok {
		return fmt.Errorf("match post %d not found", postID)
	}
	post.Status = matchpost.StatusClosed
	post.UpdatedAt = tx.store.now()
	tx.store.posts[postID] = post

	return nil
}

func (tx *schedulerTx) RejectPendingChallenges(ctx context.Context, postID int64) error {
	now := tx.store.now()
	for id, c := range tx.store.challenges {
		if c.MatchPostID != postID || c.Status != challenge.StatusPending {
			continue
		}
		c.Status = challenge.StatusRejected
		c.UpdatedAt = now
		tx.store.challenges[id] = c
	}

	return nil
}
