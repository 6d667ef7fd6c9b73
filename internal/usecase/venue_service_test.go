package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/daehyun-cho/matchup/internal/domain/venue"
	"github.com/daehyun-cho/matchup/internal/infrastructure/repository/memory"
	"github.com/daehyun-cho/matchup/internal/platform/logging"
	"github.com/daehyun-cho/matchup/internal/usecase"
)

type seqIDGenerator struct {
	prefix string
	n      int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("%s-%03d", g.prefix, g.n), nil
}

// stubGeocoder resolves every known address to fixed coordinates. It
// is safe for the concurrent calls the backfill worker pool makes.
type stubGeocoder struct {
	mu    sync.Mutex
	known map[string]venue.Coordinates
	err   error
	calls int
}

func (g *stubGeocoder) Geocode(ctx context.Context, address string) (*venue.Coordinates, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	loc, ok := g.known[address]
	if !ok {
		return nil, nil
	}
	return &loc, nil
}

func (g *stubGeocoder) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func newVenueService(geocoder usecase.Geocoder) (*usecase.VenueService, *memory.VenueRepository) {
	repo := memory.NewVenueRepository(memory.NewStore())
	svc := usecase.NewVenueService(repo, geocoder, &seqIDGenerator{prefix: "venue"}, logging.NewNop())
	return svc, repo
}

func TestVenueService_CreateVenue_ExplicitCoordinatesSkipGeocoding(t *testing.T) {
	geocoder := &stubGeocoder{}
	service, _ := newVenueService(geocoder)

	lat, lng := 37.5563, 126.9236
	created, err := service.CreateVenue(t.Context(), usecase.CreateVenueInput{
		Name:    "Hongdae Futsal Park",
		Address: "서울 마포구 양화로 12",
		Region:  "서울",
		Lat:     &lat,
		Lng:     &lng,
	})
	if err != nil {
		t.Fatalf("create venue: %v", err)
	}
	if created.ID != "venue-001" {
		t.Fatalf("unexpected venue id: %q", created.ID)
	}
	if created.Location == nil || created.Location.Lat != lat || created.Location.Lng != lng {
		t.Fatalf("expected explicit coordinates to be kept, got %+v", created.Location)
	}
	if geocoder.callCount() != 0 {
		t.Fatalf("geocoder must not be called when coordinates are provided")
	}
}

func TestVenueService_CreateVenue_GeocodesAddress(t *testing.T) {
	geocoder := &stubGeocoder{known: map[string]venue.Coordinates{
		"서울 마포구 양화로 12": {Lat: 37.5563, Lng: 126.9236},
	}}
	service, _ := newVenueService(geocoder)

	created, err := service.CreateVenue(t.Context(), usecase.CreateVenueInput{
		Name:    "Hongdae Futsal Park",
		Address: "서울 마포구 양화로 12",
		Region:  "서울",
	})
	if err != nil {
		t.Fatalf("create venue: %v", err)
	}
	if created.Location == nil || created.Location.Lat != 37.5563 {
		t.Fatalf("expected geocoded coordinates, got %+v", created.Location)
	}
}

func TestVenueService_CreateVenue_GeocodeFailureDegrades(t *testing.T) {
	geocoder := &stubGeocoder{err: errors.New("provider down")}
	service, repo := newVenueService(geocoder)

	created, err := service.CreateVenue(t.Context(), usecase.CreateVenueInput{
		Name:    "Suwon Arena",
		Address: "수원시 팔달구",
		Region:  "경기",
	})
	if err != nil {
		t.Fatalf("expected create to succeed despite geocode failure, got %v", err)
	}
	if created.Location != nil {
		t.Fatalf("expected venue without coordinates, got %+v", created.Location)
	}

	stored, exists, err := repo.GetByID(t.Context(), created.ID)
	if err != nil || !exists {
		t.Fatalf("reload venue: exists=%t err=%v", exists, err)
	}
	if stored.Location != nil {
		t.Fatalf("stored venue must not have coordinates")
	}
}

func TestVenueService_CreateVenue_Validation(t *testing.T) {
	service, _ := newVenueService(nil)

	_, err := service.CreateVenue(t.Context(), usecase.CreateVenueInput{Name: "No Region"})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected usecase.ErrInvalidInput, got %v", err)
	}
}

func TestVenueService_ListVenuesAndRegions(t *testing.T) {
	service, _ := newVenueService(nil)
	ctx := t.Context()

	seed := []usecase.CreateVenueInput{
		{Name: "Hongdae Futsal Park", Address: "서울 마포구", Region: "서울"},
		{Name: "Jamsil Soccer Field", Address: "서울 송파구", Region: "서울"},
		{Name: "Suwon Arena", Address: "수원시", Region: "경기"},
	}
	for _, input := range seed {
		if _, err := service.CreateVenue(ctx, input); err != nil {
			t.Fatalf("create venue %s: %v", input.Name, err)
		}
	}

	t.Run("keyword matches name or address", func(t *testing.T) {
		venues, err := service.ListVenues(ctx, usecase.ListVenuesInput{Keyword: "futsal"})
		if err != nil {
			t.Fatalf("list venues: %v", err)
		}
		if len(venues) != 1 || venues[0].Name != "Hongdae Futsal Park" {
			t.Fatalf("unexpected keyword result: %d venues", len(venues))
		}

		venues, err = service.ListVenues(ctx, usecase.ListVenuesInput{Keyword: "송파구"})
		if err != nil {
			t.Fatalf("list venues: %v", err)
		}
		if len(venues) != 1 || venues[0].Name != "Jamsil Soccer Field" {
			t.Fatalf("expected address keyword match, got %d venues", len(venues))
		}
	})

	t.Run("region filter", func(t *testing.T) {
		venues, err := service.ListVenues(ctx, usecase.ListVenuesInput{Region: "경기"})
		if err != nil {
			t.Fatalf("list venues: %v", err)
		}
		if len(venues) != 1 || venues[0].Name != "Suwon Arena" {
			t.Fatalf("unexpected region result: %d venues", len(venues))
		}
	})

	t.Run("distinct regions", func(t *testing.T) {
		regions, err := service.ListVenueRegions(ctx)
		if err != nil {
			t.Fatalf("list regions: %v", err)
		}
		if len(regions) != 2 {
			t.Fatalf("expected 2 distinct regions, got %v", regions)
		}
	})
}

func TestVenueService_BackfillVenueCoordinates(t *testing.T) {
	geocoder := &stubGeocoder{known: map[string]venue.Coordinates{}}
	service, repo := newVenueService(geocoder)
	ctx := t.Context()

	// All three are created without coordinates; afterwards only one
	// address becomes resolvable.
	seed := []usecase.CreateVenueInput{
		{Name: "Resolvable", Address: "서울 마포구", Region: "서울"},
		{Name: "Unresolvable", Address: "어딘지 모름", Region: "서울"},
		{Name: "Addressless", Region: "서울"},
	}
	var ids []string
	for _, input := range seed {
		created, err := service.CreateVenue(ctx, input)
		if err != nil {
			t.Fatalf("create venue %s: %v", input.Name, err)
		}
		ids = append(ids, created.ID)
	}

	geocoder.known["서울 마포구"] = venue.Coordinates{Lat: 37.55, Lng: 126.92}

	result, err := service.BackfillVenueCoordinates(ctx, usecase.BackfillVenueCoordinatesInput{Limit: 10, MaxWorkers: 2})
	if err != nil {
		t.Fatalf("backfill: %v", err)
	}
	if result.Scanned != 3 {
		t.Fatalf("expected 3 scanned venues, got %d", result.Scanned)
	}
	if result.Updated != 1 || result.Skipped != 2 || result.Failed != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	updated, _, err := repo.GetByID(ctx, ids[0])
	if err != nil {
		t.Fatalf("reload venue: %v", err)
	}
	if updated.Location == nil || updated.Location.Lat != 37.55 {
		t.Fatalf("expected backfilled coordinates, got %+v", updated.Location)
	}
}

func TestVenueService_BackfillVenueCoordinates_NoGeocoder(t *testing.T) {
	service, _ := newVenueService(nil)

	_, err := service.BackfillVenueCoordinates(t.Context(), usecase.BackfillVenueCoordinatesInput{})
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected usecase.ErrDependencyUnavailable, got %v", err)
	}
}
