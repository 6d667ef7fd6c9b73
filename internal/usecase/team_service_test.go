package usecase_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/daehyun-cho/matchup/internal/domain/team"
	"github.com/daehyun-cho/matchup/internal/infrastructure/repository/memory"
	"github.com/daehyun-cho/matchup/internal/usecase"
)

func newTeamService() *usecase.TeamService {
	return usecase.NewTeamService(memory.NewTeamRepository(memory.NewStore()))
}

func TestTeamService_CreateTeam(t *testing.T) {
	service := newTeamService()

	created, err := service.CreateTeam(t.Context(), usecase.CreateTeamInput{
		Name:        "  FC Mapo  ",
		Sport:       "futsal",
		Region:      "서울",
		SkillRating: 1450,
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned team id")
	}
	if created.Name != "FC Mapo" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if created.Sport != team.SportFutsal {
		t.Fatalf("expected normalized sport, got %s", created.Sport)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestTeamService_CreateTeam_DuplicateName(t *testing.T) {
	service := newTeamService()

	if _, err := service.CreateTeam(t.Context(), usecase.CreateTeamInput{Name: "FC Mapo", Sport: "FUTSAL"}); err != nil {
		t.Fatalf("create team: %v", err)
	}

	_, err := service.CreateTeam(t.Context(), usecase.CreateTeamInput{Name: "fc mapo", Sport: "SOCCER"})
	if !errors.Is(err, usecase.ErrConflict) {
		t.Fatalf("expected usecase.ErrConflict for duplicate name, got %v", err)
	}
	if !strings.Contains(err.Error(), "team name already exists") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTeamService_CreateTeam_Validation(t *testing.T) {
	service := newTeamService()

	_, err := service.CreateTeam(t.Context(), usecase.CreateTeamInput{Name: "No Sport FC", Sport: "CRICKET"})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected usecase.ErrInvalidInput for unknown sport, got %v", err)
	}

	_, err = service.CreateTeam(t.Context(), usecase.CreateTeamInput{Name: "   ", Sport: "FUTSAL"})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected usecase.ErrInvalidInput for blank name, got %v", err)
	}

	_, err = service.CreateTeam(t.Context(), usecase.CreateTeamInput{Name: "Bad Rating", Sport: "FUTSAL", SkillRating: -1})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected usecase.ErrInvalidInput for negative rating, got %v", err)
	}
}

func TestTeamService_GetTeam(t *testing.T) {
	service := newTeamService()

	created, err := service.CreateTeam(t.Context(), usecase.CreateTeamInput{Name: "FC Mapo", Sport: "FUTSAL"})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	found, err := service.GetTeam(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if found.Name != "FC Mapo" {
		t.Fatalf("unexpected team: %+v", found)
	}

	if _, err := service.GetTeam(t.Context(), 9999); !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected usecase.ErrNotFound, got %v", err)
	}
	if _, err := service.GetTeam(t.Context(), 0); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected usecase.ErrInvalidInput, got %v", err)
	}
}

func TestTeamService_ListTeams(t *testing.T) {
	service := newTeamService()
	ctx := t.Context()

	seed := []usecase.CreateTeamInput{
		{Name: "FC Mapo", Sport: "FUTSAL", Region: "서울"},
		{Name: "Seongdong United", Sport: "SOCCER", Region: "서울"},
		{Name: "Suwon Rovers", Sport: "FUTSAL", Region: "경기"},
	}
	for _, input := range seed {
		if _, err := service.CreateTeam(ctx, input); err != nil {
			t.Fatalf("create team %s: %v", input.Name, err)
		}
	}

	t.Run("filters by region and sport", func(t *testing.T) {
		teams, _, err := service.ListTeams(ctx, usecase.ListTeamsInput{Region: "서울", Sport: "futsal"})
		if err != nil {
			t.Fatalf("list teams: %v", err)
		}
		if len(teams) != 1 || teams[0].Name != "FC Mapo" {
			t.Fatalf("expected only FC Mapo, got %d teams", len(teams))
		}
	})

	t.Run("rejects unknown sport filter", func(t *testing.T) {
		_, _, err := service.ListTeams(ctx, usecase.ListTeamsInput{Sport: "CHESS"})
		if !errors.Is(err, usecase.ErrInvalidInput) {
			t.Fatalf("expected usecase.ErrInvalidInput, got %v", err)
		}
	})

	t.Run("pages newest first with cursor", func(t *testing.T) {
		first, next, err := service.ListTeams(ctx, usecase.ListTeamsInput{Take: 2})
		if err != nil {
			t.Fatalf("list first page: %v", err)
		}
		if len(first) != 2 || next == 0 {
			t.Fatalf("expected full first page with cursor, got %d teams cursor=%d", len(first), next)
		}
		if first[0].Name != "Suwon Rovers" || first[1].Name != "Seongdong United" {
			t.Fatalf("expected newest teams first, got %q then %q", first[0].Name, first[1].Name)
		}

		second, _, err := service.ListTeams(ctx, usecase.ListTeamsInput{Take: 2, Cursor: next})
		if err != nil {
			t.Fatalf("list second page: %v", err)
		}
		if len(second) != 1 || second[0].Name != "FC Mapo" {
			t.Fatalf("unexpected second page: %d teams", len(second))
		}
	})
}
