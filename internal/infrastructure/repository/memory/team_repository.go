package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/daehyun-cho/matchup/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.teams {
		if strings.EqualFold(existing.Name, t.Name) {
			return team.Team{}, fmt.Errorf("insert team %q: %w", t.Name, team.ErrNameTaken)
		}
	}

	s.teamSeq++
	t.ID = s.teamSeq
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	s.teams[t.ID] = t

	return t, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[teamID]
	return t, ok, nil
}

func (r *TeamRepository) List(ctx context.Context, filter team.ListFilter) ([]team.Team, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]team.Team, 0, len(s.teams))
	for _, t := range s.teams {
		if filter.Region != "" && t.Region != filter.Region {
			continue
		}
		if filter.Sport != "" && t.Sport != filter.Sport {
			continue
		}
		all = append(all, t)
	}
	// Newest first; ids are assigned in creation order.
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	out := make([]team.Team, 0, filter.Take)
	for _, t := range all {
		if filter.Cursor > 0 && t.ID >= filter.Cursor {
			continue
		}
		out = append(out, t)
		if filter.Take > 0 && len(out) == filter.Take {
			break
		}
	}

	return out, nil
}
