package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/daehyun-cho/matchup/internal/domain/match"
	"github.com/daehyun-cho/matchup/internal/domain/team"
	"github.com/daehyun-cho/matchup/internal/domain/venue"
)

const (
	defaultMatchPageSize = 20
	maxMatchPageSize     = 50
)

type ListMatchesInput struct {
	TeamID int64
	Status string
	Take   int
	Cursor int64
}

// MatchDetail is a match joined with both teams and the venue.
type MatchDetail struct {
	Match    match.Match
	HostTeam team.Team
	AwayTeam team.Team
	Venue    venue.Venue
}

type MatchService struct {
	matchRepo match.Repository
	teamRepo  team.Repository
	venueRepo venue.Repository
}

func NewMatchService(matchRepo match.Repository, teamRepo team.Repository, venueRepo venue.Repository) *MatchService {
	return &MatchService{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		venueRepo: venueRepo,
	}
}

func (s *MatchService) ListMatches(ctx context.Context, input ListMatchesInput) ([]MatchDetail, int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	status := match.StatusScheduled
	if raw := strings.TrimSpace(input.Status); raw != "" {
		parsed, ok := match.ParseStatus(raw)
		if !ok {
			return nil, 0, fmt.Errorf("%w: status must be one of SCHEDULED, COMPLETED, CANCELLED", ErrInvalidInput)
		}
		status = parsed
	}

	filter := match.ListFilter{
		TeamID: input.TeamID,
		Status: status,
		Take:   clampTake(input.Take, defaultMatchPageSize, maxMatchPageSize),
		Cursor: input.Cursor,
	}

	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list matches: %w", err)
	}

	items := make([]MatchDetail, 0, len(matches))
	for _, m := range matches {
		detail, err := s.joinMatch(ctx, m)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, detail)
	}

	var nextCursor int64
	if len(matches) == filter.Take {
		nextCursor = matches[len(matches)-1].ID
	}

	return items, nextCursor, nil
}

func (s *MatchService) joinMatch(ctx context.Context, m match.Match) (MatchDetail, error) {
	host, exists, err := s.teamRepo.GetByID(ctx, m.HostTeamID)
	if err != nil {
		return MatchDetail{}, fmt.Errorf("get host team: %w", err)
	}
	if !exists {
		return MatchDetail{}, fmt.Errorf("%w: host team not found", ErrNotFound)
	}

	away, exists, err := s.teamRepo.GetByID(ctx, m.AwayTeamID)
	if err != nil {
		return MatchDetail{}, fmt.Errorf("get away team: %w", err)
	}
	if !exists {
		return MatchDetail{}, fmt.Errorf("%w: away team not found", ErrNotFound)
	}

	matchVenue, exists, err := s.venueRepo.GetByID(ctx, m.VenueID)
	if err != nil {
		return MatchDetail{}, fmt.Errorf("get venue: %w", err)
	}
	if !exists {
		return MatchDetail{}, fmt.Errorf("%w: venue not found", ErrNotFound)
	}

	return MatchDetail{Match: m, HostTeam: host, AwayTeam: away, Venue: matchVenue}, nil
}
