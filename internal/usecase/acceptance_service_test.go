package usecase_test

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/daehyun-cho/matchup/internal/domain/challenge"
	"github.com/daehyun-cho/matchup/internal/domain/match"
	"github.com/daehyun-cho/matchup/internal/domain/matchpost"
	"github.com/daehyun-cho/matchup/internal/domain/team"
	"github.com/daehyun-cho/matchup/internal/domain/venue"
	"github.com/daehyun-cho/matchup/internal/infrastructure/repository/memory"
	"github.com/daehyun-cho/matchup/internal/platform/logging"
	"github.com/daehyun-cho/matchup/internal/usecase"
)

// schedulerFixture is a seeded store with one open post, two slots on
// the same day, and one pending challenge per slot.
type schedulerFixture struct {
	store      *memory.Store
	postRepo   *memory.MatchPostRepository
	chalRepo   *memory.ChallengeRepository
	matchRepo  *memory.MatchRepository
	service    *usecase.AcceptanceService
	host       team.Team
	awayA      team.Team
	awayB      team.Team
	post       matchpost.MatchPost
	slotOne    matchpost.TimeSlot
	slotTwo    matchpost.TimeSlot
	challengeA challenge.Challenge
	challengeB challenge.Challenge
}

func newSchedulerFixture(t *testing.T) *schedulerFixture {
	t.Helper()

	store := memory.NewStore()
	teamRepo := memory.NewTeamRepository(store)
	venueRepo := memory.NewVenueRepository(store)
	postRepo := memory.NewMatchPostRepository(store)
	chalRepo := memory.NewChallengeRepository(store)
	matchRepo := memory.NewMatchRepository(store)

	ctx := t.Context()

	host, err := teamRepo.Create(ctx, team.Team{Name: "FC Hongdae", Sport: team.SportFutsal, Region: "서울"})
	if err != nil {
		t.Fatalf("create host team: %v", err)
	}
	awayA, err := teamRepo.Create(ctx, team.Team{Name: "Mapo Rovers", Sport: team.SportFutsal, Region: "서울"})
	if err != nil {
		t.Fatalf("create away team A: %v", err)
	}
	awayB, err := teamRepo.Create(ctx, team.Team{Name: "Seongdong United", Sport: team.SportFutsal, Region: "서울"})
	if err != nil {
		t.Fatalf("create away team B: %v", err)
	}

	if err := venueRepo.Create(ctx, venue.Venue{ID: "venue-hongdae", Name: "Hongdae Futsal Park", Region: "서울"}); err != nil {
		t.Fatalf("create venue: %v", err)
	}

	day := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	post, err := postRepo.Create(ctx, matchpost.MatchPost{
		HostTeamID:  host.ID,
		VenueID:     "venue-hongdae",
		Title:       "Saturday friendly",
		Description: "5v5 futsal, bring both bibs",
		Status:      matchpost.StatusOpen,
		Slots: []matchpost.TimeSlot{
			{StartAt: day.Add(10 * time.Hour), EndAt: day.Add(11 * time.Hour), Status: matchpost.SlotOpen},
			{StartAt: day.Add(12 * time.Hour), EndAt: day.Add(13 * time.Hour), Status: matchpost.SlotOpen},
		},
	})
	if err != nil {
		t.Fatalf("create match post: %v", err)
	}

	challengeA, err := chalRepo.Create(ctx, challenge.Challenge{
		MatchPostID:      post.ID,
		SlotID:           post.Slots[0].ID,
		ChallengerTeamID: awayA.ID,
		Status:           challenge.StatusPending,
	})
	if err != nil {
		t.Fatalf("create challenge A: %v", err)
	}
	challengeB, err := chalRepo.Create(ctx, challenge.Challenge{
		MatchPostID:      post.ID,
		SlotID:           post.Slots[1].ID,
		ChallengerTeamID: awayB.ID,
		Status:           challenge.StatusPending,
	})
	if err != nil {
		t.Fatalf("create challenge B: %v", err)
	}

	return &schedulerFixture{
		store:      store,
		postRepo:   postRepo,
		chalRepo:   chalRepo,
		matchRepo:  matchRepo,
		service:    usecase.NewAcceptanceService(memory.NewSchedulerStore(store), logging.NewNop()),
		host:       host,
		awayA:      awayA,
		awayB:      awayB,
		post:       post,
		slotOne:    post.Slots[0],
		slotTwo:    post.Slots[1],
		challengeA: challengeA,
		challengeB: challengeB,
	}
}

// scheduleMatch inserts a pre-existing SCHEDULED match directly through
// the scheduler transaction, bypassing the acceptance flow.
func (f *schedulerFixture) scheduleMatch(t *testing.T, m match.Match) match.Match {
	t.Helper()

	var created match.Match
	err := memory.NewSchedulerStore(f.store).InTx(t.Context(), func(tx usecase.SchedulerTx) error {
		var err error
		created, err = tx.CreateMatch(t.Context(), m)
		return err
	})
	if err != nil {
		t.Fatalf("schedule match: %v", err)
	}
	return created
}

func TestAcceptanceService_AcceptChallenge_CommitsWholeFlow(t *testing.T) {
	f := newSchedulerFixture(t)

	result, err := f.service.AcceptChallenge(t.Context(), f.challengeA.ID)
	if err != nil {
		t.Fatalf("accept challenge: %v", err)
	}

	if result.Match.ID == 0 {
		t.Fatalf("expected created match to have an id")
	}
	if result.Match.Status != match.StatusScheduled {
		t.Fatalf("expected SCHEDULED match, got %s", result.Match.Status)
	}
	if result.Match.HostTeamID != f.host.ID || result.Match.AwayTeamID != f.awayA.ID {
		t.Fatalf("unexpected match teams: host=%d away=%d", result.Match.HostTeamID, result.Match.AwayTeamID)
	}
	if result.Match.VenueID != f.post.VenueID {
		t.Fatalf("expected match to inherit venue %q, got %q", f.post.VenueID, result.Match.VenueID)
	}
	if !result.Match.StartAt.Equal(f.slotOne.StartAt) || !result.Match.EndAt.Equal(f.slotOne.EndAt) {
		t.Fatalf("expected match window to copy the slot window")
	}
	if result.Match.MatchPostID != f.post.ID {
		t.Fatalf("expected match to reference post %d", f.post.ID)
	}

	if result.Slot.Status != matchpost.SlotLocked {
		t.Fatalf("expected locked slot in result, got %s", result.Slot.Status)
	}
	if result.Challenge.Status != challenge.StatusAccepted {
		t.Fatalf("expected accepted challenge in result, got %s", result.Challenge.Status)
	}
	if result.Post.Status != matchpost.StatusClosed {
		t.Fatalf("expected closed post in result, got %s", result.Post.Status)
	}

	post, exists, err := f.postRepo.GetByID(t.Context(), f.post.ID)
	if err != nil || !exists {
		t.Fatalf("reload post: exists=%t err=%v", exists, err)
	}
	if post.Status != matchpost.StatusClosed {
		t.Fatalf("expected post CLOSED after commit, got %s", post.Status)
	}
	slotOne, _ := post.Slot(f.slotOne.ID)
	if slotOne.Status != matchpost.SlotLocked {
		t.Fatalf("expected accepted slot LOCKED, got %s", slotOne.Status)
	}
	slotTwo, _ := post.Slot(f.slotTwo.ID)
	if slotTwo.Status != matchpost.SlotOpen {
		t.Fatalf("expected untouched slot to stay OPEN, got %s", slotTwo.Status)
	}

	// The pending challenge on the other slot is swept up as well.
	other, exists, err := f.chalRepo.GetByID(t.Context(), f.challengeB.ID)
	if err != nil || !exists {
		t.Fatalf("reload other challenge: exists=%t err=%v", exists, err)
	}
	if other.Status != challenge.StatusRejected {
		t.Fatalf("expected other challenge REJECTED, got %s", other.Status)
	}

	matches, err := f.matchRepo.List(t.Context(), match.ListFilter{Status: match.StatusScheduled, Take: 10})
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected exactly one scheduled match, got %d", len(matches))
	}
}

func TestAcceptanceService_AcceptChallenge_RetryAfterCommitConflicts(t *testing.T) {
	f := newSchedulerFixture(t)

	if _, err := f.service.AcceptChallenge(t.Context(), f.challengeA.ID); err != nil {
		t.Fatalf("first accept: %v", err)
	}

	_, err := f.service.AcceptChallenge(t.Context(), f.challengeA.ID)
	if !errors.Is(err, usecase.ErrConflict) {
		t.Fatalf("expected usecase.ErrConflict on retry, got %v", err)
	}
	if !strings.Contains(err.Error(), "challenge is not pending") {
		t.Fatalf("unexpected retry error: %v", err)
	}

	matches, err := f.matchRepo.List(t.Context(), match.ListFilter{Status: match.StatusScheduled, Take: 10})
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("retry must not create a second match, got %d", len(matches))
	}
}

func TestAcceptanceService_AcceptChallenge_RejectedChallengeConflicts(t *testing.T) {
	f := newSchedulerFixture(t)

	if _, err := f.service.AcceptChallenge(t.Context(), f.challengeA.ID); err != nil {
		t.Fatalf("accept challenge A: %v", err)
	}

	// B was bulk-rejected by A's acceptance even though it targeted a
	// different slot of the same post.
	_, err := f.service.AcceptChallenge(t.Context(), f.challengeB.ID)
	if !errors.Is(err, usecase.ErrConflict) {
		t.Fatalf("expected usecase.ErrConflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "challenge is not pending") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAcceptanceService_AcceptChallenge_OverlappingMatchBlocksAndRollsBack(t *testing.T) {
	f := newSchedulerFixture(t)

	// Challenger A already plays 10:30-11:30 that day, overlapping the
	// 10:00-11:00 slot.
	f.scheduleMatch(t, match.Match{
		HostTeamID: f.awayA.ID,
		AwayTeamID: f.awayB.ID,
		VenueID:    "venue-hongdae",
		StartAt:    f.slotOne.StartAt.Add(30 * time.Minute),
		EndAt:      f.slotOne.EndAt.Add(30 * time.Minute),
		Status:     match.StatusScheduled,
	})

	_, err := f.service.AcceptChallenge(t.Context(), f.challengeA.ID)
	if !errors.Is(err, usecase.ErrConflict) {
		t.Fatalf("expected usecase.ErrConflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "team has overlapping match") {
		t.Fatalf("unexpected error: %v", err)
	}

	// Nothing may have been committed.
	post, _, err := f.postRepo.GetByID(t.Context(), f.post.ID)
	if err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if post.Status != matchpost.StatusOpen {
		t.Fatalf("expected post to stay OPEN, got %s", post.Status)
	}
	slot, _ := post.Slot(f.slotOne.ID)
	if slot.Status != matchpost.SlotOpen {
		t.Fatalf("expected slot to stay OPEN, got %s", slot.Status)
	}
	pending, _, err := f.chalRepo.GetByID(t.Context(), f.challengeA.ID)
	if err != nil {
		t.Fatalf("reload challenge: %v", err)
	}
	if pending.Status != challenge.StatusPending {
		t.Fatalf("expected challenge to stay PENDING, got %s", pending.Status)
	}
}

func TestAcceptanceService_AcceptChallenge_TouchingWindowsDoNotOverlap(t *testing.T) {
	f := newSchedulerFixture(t)

	// Challenger A plays 11:00-12:00; the 10:00-11:00 slot only touches
	// that window, and half-open intervals sharing a boundary are fine.
	f.scheduleMatch(t, match.Match{
		HostTeamID: f.awayA.ID,
		AwayTeamID: f.awayB.ID,
		VenueID:    "venue-hongdae",
		StartAt:    f.slotOne.EndAt,
		EndAt:      f.slotOne.EndAt.Add(time.Hour),
		Status:     match.StatusScheduled,
	})

	if _, err := f.service.AcceptChallenge(t.Context(), f.challengeA.ID); err != nil {
		t.Fatalf("accept with touching window: %v", err)
	}
}

func TestAcceptanceService_AcceptChallenge_CancelledMatchDoesNotBlock(t *testing.T) {
	f := newSchedulerFixture(t)

	f.scheduleMatch(t, match.Match{
		HostTeamID: f.awayA.ID,
		AwayTeamID: f.awayB.ID,
		VenueID:    "venue-hongdae",
		StartAt:    f.slotOne.StartAt,
		EndAt:      f.slotOne.EndAt,
		Status:     match.StatusCancelled,
	})

	if _, err := f.service.AcceptChallenge(t.Context(), f.challengeA.ID); err != nil {
		t.Fatalf("accept with cancelled overlap: %v", err)
	}
}

func TestAcceptanceService_AcceptChallenge_UnknownChallenge(t *testing.T) {
	f := newSchedulerFixture(t)

	_, err := f.service.AcceptChallenge(t.Context(), 9999)
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected usecase.ErrNotFound, got %v", err)
	}

	_, err = f.service.AcceptChallenge(t.Context(), 0)
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected usecase.ErrInvalidInput for id 0, got %v", err)
	}
}

func TestAcceptanceService_AcceptChallenge_ConcurrentAcceptsHaveOneWinner(t *testing.T) {
	f := newSchedulerFixture(t)

	var wins, conflicts atomic.Int32
	var wg conc.WaitGroup
	for _, id := range []int64{f.challengeA.ID, f.challengeB.ID} {
		id := id
		wg.Go(func() {
			_, err := f.service.AcceptChallenge(t.Context(), id)
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, usecase.ErrConflict):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected accept error: %v", err)
			}
		})
	}
	wg.Wait()

	if wins.Load() != 1 || conflicts.Load() != 1 {
		t.Fatalf("expected one winner and one conflict, got wins=%d conflicts=%d", wins.Load(), conflicts.Load())
	}

	matches, err := f.matchRepo.List(t.Context(), match.ListFilter{Status: match.StatusScheduled, Take: 10})
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected exactly one scheduled match, got %d", len(matches))
	}
}
