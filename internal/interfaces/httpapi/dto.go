package httpapi

import (
	"context"
	"time"

	"github.com/daehyun-cho/matchup/internal/domain/challenge"
	"github.com/daehyun-cho/matchup/internal/domain/matchpost"
	"github.com/daehyun-cho/matchup/internal/domain/team"
	"github.com/daehyun-cho/matchup/internal/domain/venue"
	"github.com/daehyun-cho/matchup/internal/usecase"
)

type teamDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Sport       string `json:"sport"`
	Region      string `json:"region"`
	LogoURL     string `json:"logoUrl,omitempty"`
	Description string `json:"description,omitempty"`
	SkillRating int    `json:"skillRating"`
	CreatedAt   string `json:"createdAt"`
}

type teamListDTO struct {
	Items      []teamDTO `json:"items"`
	NextCursor int64     `json:"nextCursor,omitempty"`
}

type coordinatesDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type venueDTO struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Address   string          `json:"address,omitempty"`
	Region    string          `json:"region"`
	Location  *coordinatesDTO `json:"location,omitempty"`
	CreatedAt string          `json:"createdAt"`
}

type timeSlotDTO struct {
	ID      int64  `json:"id"`
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
	Status  string `json:"status"`
}

type matchPostDTO struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      string        `json:"status"`
	HostTeam    teamDTO       `json:"hostTeam"`
	Venue       venueDTO      `json:"venue"`
	Slots       []timeSlotDTO `json:"slots"`
	CreatedAt   string        `json:"createdAt"`
}

type matchPostListDTO struct {
	Items      []matchPostDTO `json:"items"`
	NextCursor int64          `json:"nextCursor,omitempty"`
}

type challengeDTO struct {
	ID               int64  `json:"id"`
	MatchPostID      int64  `json:"matchPostId"`
	SlotID           int64  `json:"slotId"`
	ChallengerTeamID int64  `json:"challengerTeamId"`
	Message          string `json:"message,omitempty"`
	Status           string `json:"status"`
	CreatedAt        string `json:"createdAt"`
}

type postChallengeDTO struct {
	challengeDTO
	ChallengerTeam teamDTO `json:"challengerTeam"`
}

type matchPostViewDTO struct {
	matchPostDTO
	Challenges []postChallengeDTO `json:"challenges"`
}

type matchDTO struct {
	ID       int64    `json:"id"`
	HostTeam teamDTO  `json:"hostTeam"`
	AwayTeam teamDTO  `json:"awayTeam"`
	Venue    venueDTO `json:"venue"`
	StartAt  string   `json:"startAt"`
	EndAt    string   `json:"endAt"`
	Status   string   `json:"status"`
	PostID   int64    `json:"matchPostId"`
}

type matchListDTO struct {
	Items      []matchDTO `json:"items"`
	NextCursor int64      `json:"nextCursor,omitempty"`
}

type acceptanceDTO struct {
	Match     matchSummaryDTO `json:"match"`
	Post      postSummaryDTO  `json:"matchPost"`
	Slot      timeSlotDTO     `json:"slot"`
	Challenge challengeDTO    `json:"challenge"`
}

type matchSummaryDTO struct {
	ID         int64  `json:"id"`
	HostTeamID int64  `json:"hostTeamId"`
	AwayTeamID int64  `json:"awayTeamId"`
	VenueID    string `json:"venueId"`
	StartAt    string `json:"startAt"`
	EndAt      string `json:"endAt"`
	Status     string `json:"status"`
	PostID     int64  `json:"matchPostId"`
}

type postSummaryDTO struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func teamToDTO(ctx context.Context, v team.Team) teamDTO {
	return teamDTO{
		ID:          v.ID,
		Name:        v.Name,
		Sport:       string(v.Sport),
		Region:      v.Region,
		LogoURL:     v.LogoURL,
		Description: v.Description,
		SkillRating: v.SkillRating,
		CreatedAt:   formatInstant(v.CreatedAt),
	}
}

func venueToDTO(ctx context.Context, v venue.Venue) venueDTO {
	dto := venueDTO{
		ID:        v.ID,
		Name:      v.Name,
		Address:   v.Address,
		Region:    v.Region,
		CreatedAt: formatInstant(v.CreatedAt),
	}
	if v.Location != nil {
		dto.Location = &coordinatesDTO{Lat: v.Location.Lat, Lng: v.Location.Lng}
	}
	return dto
}

func slotToDTO(ctx context.Context, v matchpost.TimeSlot) timeSlotDTO {
	return timeSlotDTO{
		ID:      v.ID,
		StartAt: formatInstant(v.StartAt),
		EndAt:   formatInstant(v.EndAt),
		Status:  string(v.Status),
	}
}

func matchPostToDTO(ctx context.Context, v usecase.MatchPostDetail) matchPostDTO {
	slots := make([]timeSlotDTO, 0, len(v.Post.Slots))
	for _, slot := range v.Post.Slots {
		slots = append(slots, slotToDTO(ctx, slot))
	}

	return matchPostDTO{
		ID:          v.Post.ID,
		Title:       v.Post.Title,
		Description: v.Post.Description,
		Status:      string(v.Post.Status),
		HostTeam:    teamToDTO(ctx, v.HostTeam),
		Venue:       venueToDTO(ctx, v.Venue),
		Slots:       slots,
		CreatedAt:   formatInstant(v.Post.CreatedAt),
	}
}

func challengeToDTO(ctx context.Context, v challenge.Challenge) challengeDTO {
	return challengeDTO{
		ID:               v.ID,
		MatchPostID:      v.MatchPostID,
		SlotID:           v.SlotID,
		ChallengerTeamID: v.ChallengerTeamID,
		Message:          v.Message,
		Status:           string(v.Status),
		CreatedAt:        formatInstant(v.CreatedAt),
	}
}

func matchPostViewToDTO(ctx context.Context, v usecase.MatchPostView) matchPostViewDTO {
	challenges := make([]postChallengeDTO, 0, len(v.Challenges))
	for _, c := range v.Challenges {
		challenges = append(challenges, postChallengeDTO{
			challengeDTO:   challengeToDTO(ctx, c.Challenge),
			ChallengerTeam: teamToDTO(ctx, c.ChallengerTeam),
		})
	}

	return matchPostViewDTO{
		matchPostDTO: matchPostToDTO(ctx, v.MatchPostDetail),
		Challenges:   challenges,
	}
}

func matchToDTO(ctx context.Context, v usecase.MatchDetail) matchDTO {
	return matchDTO{
		ID:       v.Match.ID,
		HostTeam: teamToDTO(ctx, v.HostTeam),
		AwayTeam: teamToDTO(ctx, v.AwayTeam),
		Venue:    venueToDTO(ctx, v.Venue),
		StartAt:  formatInstant(v.Match.StartAt),
		EndAt:    formatInstant(v.Match.EndAt),
		Status:   string(v.Match.Status),
		PostID:   v.Match.MatchPostID,
	}
}

func acceptanceToDTO(ctx context.Context, v usecase.AcceptanceResult) acceptanceDTO {
	return acceptanceDTO{
		Match: matchSummaryDTO{
			ID:         v.Match.ID,
			HostTeamID: v.Match.HostTeamID,
			AwayTeamID: v.Match.AwayTeamID,
			VenueID:    v.Match.VenueID,
			StartAt:    formatInstant(v.Match.StartAt),
			EndAt:      formatInstant(v.Match.EndAt),
			Status:     string(v.Match.Status),
			PostID:     v.Match.MatchPostID,
		},
		Post: postSummaryDTO{
			ID:     v.Post.ID,
			Status: string(v.Post.Status),
		},
		Slot:      slotToDTO(ctx, v.Slot),
		Challenge: challengeToDTO(ctx, v.Challenge),
	}
}
