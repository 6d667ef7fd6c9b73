package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/daehyun-cho/matchup/internal/domain/challenge"
)

type ChallengeRepository struct {
	store *Store
}

func NewChallengeRepository(store *Store) *ChallengeRepository {
	return &ChallengeRepository{store: store}
}

func (r *ChallengeRepository) Create(ctx context.Context, c challenge.Challenge) (challenge.Challenge, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.Status == challenge.StatusPending {
		for _, existing := range s.challenges {
			if existing.MatchPostID == c.MatchPostID &&
				existing.ChallengerTeamID == c.ChallengerTeamID &&
				existing.Status == challenge.StatusPending {
				return challenge.Challenge{}, fmt.Errorf("insert challenge: %w", challenge.ErrDuplicatePending)
			}
		}
	}

	s.challengeSeq++
	c.ID = s.challengeSeq
	now := s.now()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.challenges[c.ID] = c

	return c, nil
}

func (r *ChallengeRepository) GetByID(ctx context.Context, challengeID int64) (challenge.Challenge, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.challenges[challengeID]
	return c, ok, nil
}

func (r *ChallengeRepository) HasPending(ctx context.Context, matchPostID, challengerTeamID int64) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.challenges {
		if c.MatchPostID == matchPostID &&
			c.ChallengerTeamID == challengerTeamID &&
			c.Status == challenge.StatusPending {
			return true, nil
		}
	}

	return false, nil
}

func (r *ChallengeRepository) ListByPost(ctx context.Context, matchPostID int64) ([]challenge.Challenge, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]challenge.Challenge, 0, 4)
	for _, c := range s.challenges {
		if c.MatchPostID == matchPostID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}
