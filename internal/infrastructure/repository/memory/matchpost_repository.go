package memory

import (
	"context"
	"sort"

	"github.com/daehyun-cho/matchup/internal/domain/matchpost"
)

type MatchPostRepository struct {
	store *Store
}

func NewMatchPostRepository(store *Store) *MatchPostRepository {
	return &MatchPostRepository{store: store}
}

func (r *MatchPostRepository) Create(ctx context.Context, post matchpost.MatchPost) (matchpost.MatchPost, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.postSeq++
	post.ID = s.postSeq
	now := s.now()
	post.CreatedAt = now
	post.UpdatedAt = now

	slots := make([]matchpost.TimeSlot, 0, len(post.Slots))
	for _, slot := range post.Slots {
		s.slotSeq++
		slot.ID = s.slotSeq
		slot.MatchPostID = post.ID
		s.slots[slot.ID] = slot
		slots = append(slots, slot)
	}
	post.Slots = slots
	s.posts[post.ID] = post

	return post, nil
}

func (r *MatchPostRepository) GetByID(ctx context.Context, postID int64) (matchpost.MatchPost, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.postWithSlotsLocked(postID)
	return post, ok, nil
}

func (r *MatchPostRepository) GetSlot(ctx context.Context, slotID int64) (matchpost.TimeSlot, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	slot, ok := s.slots[slotID]
	return slot, ok, nil
}

// List pages posts newest first. The cursor is the id of the last row
// of the previous page.
func (r *MatchPostRepository) List(ctx context.Context, filter matchpost.ListFilter) ([]matchpost.MatchPost, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]matchpost.MatchPost, 0, len(s.posts))
	for id := range s.posts {
		post, _ := s.postWithSlotsLocked(id)
		if !filter.IncludeClosed && post.Status != matchpost.StatusOpen {
			continue
		}
		if filter.Region != "" {
			v, ok := s.venues[post.VenueID]
			if !ok || v.Region != filter.Region {
				continue
			}
		}
		if filter.RangeStart != nil || filter.RangeEnd != nil {
			if !anySlotInRange(post.Slots, filter) {
				continue
			}
		}
		all = append(all, post)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	out := make([]matchpost.MatchPost, 0, filter.Take)
	pastCursor := filter.Cursor == 0
	for _, post := range all {
		if !pastCursor {
			if post.ID == filter.Cursor {
				pastCursor = true
			}
			continue
		}
		out = append(out, post)
		if filter.Take > 0 && len(out) == filter.Take {
			break
		}
	}

	return out, nil
}

func anySlotInRange(slots []matchpost.TimeSlot, filter matchpost.ListFilter) bool {
	for _, slot := range slots {
		if filter.RangeStart != nil && !slot.EndAt.After(*filter.RangeStart) {
			continue
		}
		if filter.RangeEnd != nil && !slot.StartAt.Before(*filter.RangeEnd) {
			continue
		}
		return true
	}
	return false
}
