package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/daehyun-cho/matchup/internal/domain/team"
)

const (
	defaultTeamPageSize = 50
	maxTeamPageSize     = 100
)

type CreateTeamInput struct {
	Name        string
	Sport       string
	Region      string
	LogoURL     string
	Description string
	SkillRating int
}

type ListTeamsInput struct {
	Region string
	Sport  string
	Take   int
	Cursor int64
}

type TeamService struct {
	teamRepo team.Repository
}

func NewTeamService(teamRepo team.Repository) *TeamService {
	return &TeamService{teamRepo: teamRepo}
}

func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	sport, ok := team.ParseSport(input.Sport)
	if !ok {
		return team.Team{}, fmt.Errorf("%w: sport must be one of %v", ErrInvalidInput, team.Sports())
	}

	candidate := team.Team{
		Name:        strings.TrimSpace(input.Name),
		Sport:       sport,
		Region:      strings.TrimSpace(input.Region),
		LogoURL:     strings.TrimSpace(input.LogoURL),
		Description: strings.TrimSpace(input.Description),
		SkillRating: input.SkillRating,
	}
	if err := candidate.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.teamRepo.Create(ctx, candidate)
	if err != nil {
		if errors.Is(err, team.ErrNameTaken) {
			return team.Team{}, fmt.Errorf("%w: team name already exists", ErrConflict)
		}
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	return created, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id must be a positive integer", ErrInvalidInput)
	}

	found, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team not found", ErrNotFound)
	}

	return found, nil
}

func (s *TeamService) ListTeams(ctx context.Context, input ListTeamsInput) ([]team.Team, int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	filter := team.ListFilter{
		Region: strings.TrimSpace(input.Region),
		Take:   clampTake(input.Take, defaultTeamPageSize, maxTeamPageSize),
		Cursor: input.Cursor,
	}
	if raw := strings.TrimSpace(input.Sport); raw != "" {
		sport, ok := team.ParseSport(raw)
		if !ok {
			return nil, 0, fmt.Errorf("%w: sport must be one of %v", ErrInvalidInput, team.Sports())
		}
		filter.Sport = sport
	}

	teams, err := s.teamRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list teams: %w", err)
	}

	return teams, nextCursorForTeams(teams, filter.Take), nil
}

func nextCursorForTeams(teams []team.Team, take int) int64 {
	if len(teams) != take {
		return 0
	}
	return teams[len(teams)-1].ID
}

func clampTake(take, fallback, max int) int {
	if take == 0 {
		take = fallback
	}
	if take < 1 {
		return 1
	}
	if take > max {
		return max
	}
	return take
}
