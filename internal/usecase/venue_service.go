package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/daehyun-cho/matchup/internal/domain/venue"
	idgen "github.com/daehyun-cho/matchup/internal/platform/id"
	"github.com/daehyun-cho/matchup/internal/platform/logging"
)

const (
	defaultBackfillLimit   = 200
	defaultBackfillWorkers = 4
	maxBackfillWorkers     = 16
)

// Geocoder resolves an address to coordinates. A nil result with nil
// error means the address could not be resolved.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*venue.Coordinates, error)
}

type CreateVenueInput struct {
	Name    string
	Address string
	Region  string
	Lat     *float64
	Lng     *float64
}

type ListVenuesInput struct {
	Region  string
	Keyword string
}

type BackfillVenueCoordinatesInput struct {
	Limit      int
	MaxWorkers int
}

type BackfillVenueCoordinatesResult struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type VenueService struct {
	venueRepo venue.Repository
	geocoder  Geocoder
	idGen     idgen.Generator
	logger    *logging.Logger
}

func NewVenueService(venueRepo venue.Repository, geocoder Geocoder, idGen idgen.Generator, logger *logging.Logger) *VenueService {
	if logger == nil {
		logger = logging.Default()
	}
	return &VenueService{
		venueRepo: venueRepo,
		geocoder:  geocoder,
		idGen:     idGen,
		logger:    logger,
	}
}

func (s *VenueService) CreateVenue(ctx context.Context, input CreateVenueInput) (venue.Venue, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.CreateVenue")
	defer span.End()

	venueID, err := s.idGen.NewID()
	if err != nil {
		return venue.Venue{}, fmt.Errorf("generate venue id: %w", err)
	}

	candidate := venue.Venue{
		ID:      venueID,
		Name:    strings.TrimSpace(input.Name),
		Address: strings.TrimSpace(input.Address),
		Region:  strings.TrimSpace(input.Region),
	}
	if input.Lat != nil && input.Lng != nil {
		candidate.Location = &venue.Coordinates{Lat: *input.Lat, Lng: *input.Lng}
	}
	if err := candidate.Validate(); err != nil {
		return venue.Venue{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if candidate.Location == nil && candidate.Address != "" {
		candidate.Location = s.lookupCoordinates(ctx, candidate.Address)
	}

	if err := s.venueRepo.Create(ctx, candidate); err != nil {
		return venue.Venue{}, fmt.Errorf("create venue: %w", err)
	}

	return candidate, nil
}

// lookupCoordinates is best effort: geocoding failures degrade to a
// venue without coordinates, they never fail the write.
func (s *VenueService) lookupCoordinates(ctx context.Context, address string) *venue.Coordinates {
	if s.geocoder == nil {
		return nil
	}

	loc, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		s.logger.WarnContext(ctx, "geocode lookup failed", "address", address, "error", err)
		return nil
	}

	return loc
}

func (s *VenueService) ListVenues(ctx context.Context, input ListVenuesInput) ([]venue.Venue, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.ListVenues")
	defer span.End()

	venues, err := s.venueRepo.List(ctx, venue.ListFilter{
		Region:  strings.TrimSpace(input.Region),
		Keyword: strings.TrimSpace(input.Keyword),
	})
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}

	return venues, nil
}

func (s *VenueService) ListVenueRegions(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.ListVenueRegions")
	defer span.End()

	regions, err := s.venueRepo.ListRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venue regions: %w", err)
	}

	return regions, nil
}

// BackfillVenueCoordinates geocodes venues that are missing coordinates
// using a bounded worker pool. Individual failures are logged and
// counted, never aborting the run.
func (s *VenueService) BackfillVenueCoordinates(ctx context.Context, input BackfillVenueCoordinatesInput) (BackfillVenueCoordinatesResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.BackfillVenueCoordinates")
	defer span.End()

	if s.geocoder == nil {
		return BackfillVenueCoordinatesResult{}, fmt.Errorf("%w: geocoder is not configured", ErrDependencyUnavailable)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultBackfillLimit
	}
	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = defaultBackfillWorkers
	}
	if workerCount > maxBackfillWorkers {
		workerCount = maxBackfillWorkers
	}

	pending, err := s.venueRepo.ListMissingCoordinates(ctx, limit)
	if err != nil {
		return BackfillVenueCoordinatesResult{}, fmt.Errorf("list venues missing coordinates: %w", err)
	}
	if len(pending) == 0 {
		return BackfillVenueCoordinatesResult{}, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BackfillVenueCoordinatesResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var updated, skipped, failed atomic.Int32
	var workers sync.WaitGroup
	for _, v := range pending {
		v := v
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if strings.TrimSpace(v.Address) == "" {
				skipped.Add(1)
				return
			}

			loc, err := s.geocoder.Geocode(ctx, v.Address)
			if err != nil {
				s.logger.WarnContext(ctx, "backfill geocode failed", "venue_id", v.ID, "error", err)
				failed.Add(1)
				return
			}
			if loc == nil {
				skipped.Add(1)
				return
			}

			if err := s.venueRepo.UpdateCoordinates(ctx, v.ID, *loc); err != nil {
				s.logger.WarnContext(ctx, "backfill coordinate update failed", "venue_id", v.ID, "error", err)
				failed.Add(1)
				return
			}
			updated.Add(1)
		}); err != nil {
			workers.Done()
			failed.Add(1)
		}
	}
	workers.Wait()

	result := BackfillVenueCoordinatesResult{
		Scanned: len(pending),
		Updated: int(updated.Load()),
		Skipped: int(skipped.Load()),
		Failed:  int(failed.Load()),
	}
	s.logger.InfoContext(ctx, "venue coordinate backfill finished",
		"scanned", result.Scanned, "updated", result.Updated, "skipped", result.Skipped, "failed", result.Failed)

	return result, nil
}
