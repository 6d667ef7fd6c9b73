package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/daehyun-cho/matchup/internal/domain/challenge"
	"github.com/daehyun-cho/matchup/internal/domain/matchpost"
	"github.com/daehyun-cho/matchup/internal/domain/team"
	"github.com/daehyun-cho/matchup/internal/domain/venue"
	"github.com/daehyun-cho/matchup/internal/platform/timeutil"
)

const (
	defaultPostPageSize = 20
	maxPostPageSize     = 50
)

type SlotInput struct {
	StartAt string
	EndAt   string
}

type CreateMatchPostInput struct {
	HostTeamID  int64
	VenueID     string
	Title       string
	Description string
	Slots       []SlotInput
}

type CreateChallengeInput struct {
	MatchPostID      int64
	SlotID           int64
	ChallengerTeamID int64
	Message          string
}

type ListMatchPostsInput struct {
	Region        string
	DateFrom      string
	DateTo        string
	Date          string
	IncludeClosed bool
	Take          int
	Cursor        int64
}

// MatchPostDetail is a post joined with its host team and venue.
type MatchPostDetail struct {
	Post     matchpost.MatchPost
	HostTeam team.Team
	Venue    venue.Venue
}

// PostChallenge is a challenge joined with its challenger team.
type PostChallenge struct {
	Challenge      challenge.Challenge
	ChallengerTeam team.Team
}

// MatchPostView is the detail read: post, joins, and all challenges.
type MatchPostView struct {
	MatchPostDetail
	Challenges []PostChallenge
}

type MatchPostService struct {
	postRepo      matchpost.Repository
	challengeRepo challenge.Repository
	teamRepo      team.Repository
	venueRepo     venue.Repository
}

func NewMatchPostService(
	postRepo matchpost.Repository,
	challengeRepo challenge.Repository,
	teamRepo team.Repository,
	venueRepo venue.Repository,
) *MatchPostService {
	return &MatchPostService{
		postRepo:      postRepo,
		challengeRepo: challengeRepo,
		teamRepo:      teamRepo,
		venueRepo:     venueRepo,
	}
}

// CreateMatchPost stores a post together with all of its slots as one
// unit: if any slot is invalid no post is created.
func (s *MatchPostService) CreateMatchPost(ctx context.Context, input CreateMatchPostInput) (MatchPostDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchPostService.CreateMatchPost")
	defer span.End()

	if input.HostTeamID <= 0 {
		return MatchPostDetail{}, fmt.Errorf("%w: host team id must be a positive integer", ErrInvalidInput)
	}
	if len(input.Slots) == 0 {
		return MatchPostDetail{}, fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}

	slots := make([]matchpost.TimeSlot, 0, len(input.Slots))
	for i, raw := range input.Slots {
		startAt, startErr := time.Parse(time.RFC3339, raw.StartAt)
		endAt, endErr := time.Parse(time.RFC3339, raw.EndAt)
		if startErr != nil || endErr != nil {
			return MatchPostDetail{}, fmt.Errorf("%w: slots[%d] has invalid date", ErrInvalidInput, i)
		}
		if !startAt.Before(endAt) {
			return MatchPostDetail{}, fmt.Errorf("%w: slots[%d] startAt must be before endAt", ErrInvalidInput, i)
		}
		slots = append(slots, matchpost.TimeSlot{
			StartAt: startAt.UTC(),
			EndAt:   endAt.UTC(),
			Status:  matchpost.SlotOpen,
		})
	}

	host, exists, err := s.teamRepo.GetByID(ctx, input.HostTeamID)
	if err != nil {
		return MatchPostDetail{}, fmt.Errorf("get host team: %w", err)
	}
	if !exists {
		return MatchPostDetail{}, fmt.Errorf("%w: host team not found", ErrNotFound)
	}

	postVenue, exists, err := s.venueRepo.GetByID(ctx, strings.TrimSpace(input.VenueID))
	if err != nil {
		return MatchPostDetail{}, fmt.Errorf("get venue: %w", err)
	}
	if !exists {
		return MatchPostDetail{}, fmt.Errorf("%w: venue not found", ErrNotFound)
	}

	candidate := matchpost.MatchPost{
		HostTeamID:  input.HostTeamID,
		VenueID:     postVenue.ID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      matchpost.StatusOpen,
		Slots:       slots,
	}
	if err := candidate.Validate(); err != nil {
		return MatchPostDetail{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.postRepo.Create(ctx, candidate)
	if err != nil {
		return MatchPostDetail{}, fmt.Errorf("create match post: %w", err)
	}

	return MatchPostDetail{Post: created, HostTeam: host, Venue: postVenue}, nil
}

func (s *MatchPostService) GetMatchPost(ctx context.Context, postID int64) (MatchPostView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchPostService.GetMatchPost")
	defer span.End()

	if postID <= 0 {
		return MatchPostView{}, fmt.Errorf("%w: match post id must be a positive integer", ErrInvalidInput)
	}

	post, exists, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return MatchPostView{}, fmt.Errorf("get match post: %w", err)
	}
	if !exists {
		return MatchPostView{}, fmt.Errorf("%w: match post not found", ErrNotFound)
	}

	detail, err := s.joinPost(ctx, post)
	if err != nil {
		return MatchPostView{}, err
	}

	challenges, err := s.challengeRepo.ListByPost(ctx, postID)
	if err != nil {
		return MatchPostView{}, fmt.Errorf("list challenges for post: %w", err)
	}

	joined := make([]PostChallenge, 0, len(challenges))
	for _, c := range challenges {
		challenger, exists, err := s.teamRepo.GetByID(ctx, c.ChallengerTeamID)
		if err != nil {
			return MatchPostView{}, fmt.Errorf("get challenger team: %w", err)
		}
		if !exists {
			continue
		}
		joined = append(joined, PostChallenge{Challenge: c, ChallengerTeam: challenger})
	}

	return MatchPostView{MatchPostDetail: detail, Challenges: joined}, nil
}

func (s *MatchPostService) ListMatchPosts(ctx context.Context, input ListMatchPostsInput) ([]MatchPostDetail, int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchPostService.ListMatchPosts")
	defer span.End()

	dateRange, err := timeutil.ParseDateRange(input.DateFrom, input.DateTo, input.Date)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	filter := matchpost.ListFilter{
		Region:        strings.TrimSpace(input.Region),
		RangeStart:    dateRange.Start,
		RangeEnd:      dateRange.End,
		IncludeClosed: input.IncludeClosed,
		Take:          clampTake(input.Take, defaultPostPageSize, maxPostPageSize),
		Cursor:        input.Cursor,
	}

	posts, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list match posts: %w", err)
	}

	items := make([]MatchPostDetail, 0, len(posts))
	for _, post := range posts {
		detail, err := s.joinPost(ctx, post)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, detail)
	}

	var nextCursor int64
	if len(posts) == filter.Take {
		nextCursor = posts[len(posts)-1].ID
	}

	return items, nextCursor, nil
}

// CreateChallenge registers a pending proposal against an open slot.
// No state is locked here: conflicting proposals are resolved at
// acceptance time.
func (s *MatchPostService) CreateChallenge(ctx context.Context, input CreateChallengeInput) (challenge.Challenge, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchPostService.CreateChallenge")
	defer span.End()

	slot, exists, err := s.postRepo.GetSlot(ctx, input.SlotID)
	if err != nil {
		return challenge.Challenge{}, fmt.Errorf("get slot: %w", err)
	}
	if !exists || slot.MatchPostID != input.MatchPostID {
		return challenge.Challenge{}, fmt.Errorf("%w: slot does not belong to match post", ErrInvalidInput)
	}
	if slot.Status != matchpost.SlotOpen {
		return challenge.Challenge{}, fmt.Errorf("%w: slot is not open", ErrInvalidInput)
	}

	_, exists, err = s.teamRepo.GetByID(ctx, input.ChallengerTeamID)
	if err != nil {
		return challenge.Challenge{}, fmt.Errorf("get challenger team: %w", err)
	}
	if !exists {
		return challenge.Challenge{}, fmt.Errorf("%w: challenger team not found", ErrNotFound)
	}

	pending, err := s.challengeRepo.HasPending(ctx, input.MatchPostID, input.ChallengerTeamID)
	if err != nil {
		return challenge.Challenge{}, fmt.Errorf("check pending challenge: %w", err)
	}
	if pending {
		return challenge.Challenge{}, fmt.Errorf("%w: pending challenge already exists", ErrConflict)
	}

	candidate := challenge.Challenge{
		MatchPostID:      input.MatchPostID,
		SlotID:           input.SlotID,
		ChallengerTeamID: input.ChallengerTeamID,
		Message:          input.Message,
		Status:           challenge.StatusPending,
	}
	if err := candidate.Validate(); err != nil {
		return challenge.Challenge{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.challengeRepo.Create(ctx, candidate)
	if err != nil {
		if errors.Is(err, challenge.ErrDuplicatePending) {
			return challenge.Challenge{}, fmt.Errorf("%w: pending challenge already exists", ErrConflict)
		}
		return challenge.Challenge{}, fmt.Errorf("create challenge: %w", err)
	}

	return created, nil
}

func (s *MatchPostService) joinPost(ctx context.Context, post matchpost.MatchPost) (MatchPostDetail, error) {
	host, exists, err := s.teamRepo.GetByID(ctx, post.HostTeamID)
	if err != nil {
		return MatchPostDetail{}, fmt.Errorf("get host team: %w", err)
	}
	if !exists {
		return MatchPostDetail{}, fmt.Errorf("%w: host team not found", ErrNotFound)
	}

	postVenue, exists, err := s.venueRepo.GetByID(ctx, post.VenueID)
	if err != nil {
		return MatchPostDetail{}, fmt.Errorf("get venue: %w", err)
	}
	if !exists {
		return MatchPostDetail{}, fmt.Errorf("%w: venue not found", ErrNotFound)
	}

	return MatchPostDetail{Post: post, HostTeam: host, Venue: postVenue}, nil
}
