package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/daehyun-cho/matchup/internal/domain/venue"
)

type VenueRepository struct {
	store *Store
}

func NewVenueRepository(store *Store) *VenueRepository {
	return &VenueRepository{store: store}
}

func (r *VenueRepository) Create(ctx context.Context, v venue.Venue) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.venues[v.ID]; exists {
		return fmt.Errorf("venue %q already exists", v.ID)
	}

	v.CreatedAt = s.now()
	if v.Location != nil {
		loc := *v.Location
		v.Location = &loc
	}
	s.venues[v.ID] = v
	s.venueOrder = append(s.venueOrder, v.ID)

	return nil
}

func (r *VenueRepository) GetByID(ctx context.Context, venueID string) (venue.Venue, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.venues[venueID]
	return cloneVenue(v), ok, nil
}

func (r *VenueRepository) List(ctx context.Context, filter venue.ListFilter) ([]venue.Venue, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	keyword := strings.ToLower(filter.Keyword)
	out := make([]venue.Venue, 0, len(s.venueOrder))
	for _, id := range s.venueOrder {
		v := s.venues[id]
		if filter.Region != "" && v.Region != filter.Region {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(v.Name), keyword) &&
			!strings.Contains(strings.ToLower(v.Address), keyword) {
			continue
		}
		out = append(out, cloneVenue(v))
	}

	return out, nil
}

func (r *VenueRepository) ListRegions(ctx context.Context) ([]string, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(s.venues))
	regions := make([]string, 0, len(s.venues))
	for _, v := range s.venues {
		if _, ok := seen[v.Region]; ok {
			continue
		}
		seen[v.Region] = struct{}{}
		regions = append(regions, v.Region)
	}
	sort.Strings(regions)

	return regions, nil
}

func (r *VenueRepository) ListMissingCoordinates(ctx context.Context, limit int) ([]venue.Venue, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]venue.Venue, 0, limit)
	for _, id := range s.venueOrder {
		v := s.venues[id]
		if v.Location != nil {
			continue
		}
		out = append(out, cloneVenue(v))
		if limit > 0 && len(out) == limit {
			break
		}
	}

	return out, nil
}

func (r *VenueRepository) UpdateCoordinates(ctx context.Context, venueID string, loc venue.Coordinates) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.venues[venueID]
	if !ok {
		return fmt.Errorf("venue %s not found", venueID)
	}
	v.Location = &loc
	s.venues[venueID] = v

	return nil
}

func cloneVenue(v venue.Venue) venue.Venue {
	if v.Location != nil {
		loc := *v.Location
		v.Location = &loc
	}
	return v
}
