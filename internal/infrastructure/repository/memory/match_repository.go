package memory

import (
	"context"
	"sort"

	"github.com/daehyun-cho/matchup/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) *MatchRepository {
	return &MatchRepository{store: store}
}

// List pages matches by start time, earliest first. The cursor is the
// id of the last row of the previous page.
func (r *MatchRepository) List(ctx context.Context, filter match.ListFilter) ([]match.Match, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]match.Match, 0, len(s.matches))
	for _, m := range s.matches {
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if filter.TeamID > 0 && !m.InvolvesTeam(filter.TeamID) {
			continue
		}
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].StartAt.Equal(all[j].StartAt) {
			return all[i].StartAt.Before(all[j].StartAt)
		}
		return all[i].ID < all[j].ID
	})

	out := make([]match.Match, 0, filter.Take)
	pastCursor := filter.Cursor == 0
	for _, m := range all {
		if !pastCursor {
			if m.ID == filter.Cursor {
				pastCursor = true
			}
			continue
		}
		out = append(out, m)
		if filter.Take > 0 && len(out) == filter.Take {
			break
		}
	}

	return out, nil
}
