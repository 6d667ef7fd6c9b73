package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/daehyun-cho/matchup/internal/domain/matchpost"
	"github.com/daehyun-cho/matchup/internal/domain/team"
	"github.com/daehyun-cho/matchup/internal/domain/venue"
)

// Seed loads a small fixture set for local development without a
// database: a handful of teams, two venues, and one open post.
func Seed(ctx context.Context, store *Store) error {
	teamRepo := NewTeamRepository(store)
	venueRepo := NewVenueRepository(store)
	postRepo := NewMatchPostRepository(store)

	teams := []team.Team{
		{Name: "FC Mapo", Sport: team.SportFutsal, Region: "서울", SkillRating: 1450},
		{Name: "Seongdong United", Sport: team.SportFutsal, Region: "서울", SkillRating: 1380},
		{Name: "Suwon Rovers", Sport: team.SportSoccer, Region: "경기", SkillRating: 1500},
	}
	hostID := int64(0)
	for i, t := range teams {
		created, err := teamRepo.Create(ctx, t)
		if err != nil {
			return fmt.Errorf("seed team %q: %w", t.Name, err)
		}
		if i == 0 {
			hostID = created.ID
		}
	}

	venues := []venue.Venue{
		{
			ID:       "seed-hongdae-futsal",
			Name:     "홍대 풋살파크",
			Address:  "서울 마포구 양화로 45",
			Region:   "서울",
			Location: &venue.Coordinates{Lat: 37.5563, Lng: 126.9236},
		},
		{
			ID:      "seed-suwon-arena",
			Name:    "수원 실내 풋살장",
			Address: "경기 수원시 팔달구 효원로 1",
			Region:  "경기",
		},
	}
	for _, v := range venues {
		if err := venueRepo.Create(ctx, v); err != nil {
			return fmt.Errorf("seed venue %q: %w", v.Name, err)
		}
	}

	nextSaturday := upcomingSaturday(store.now())
	_, err := postRepo.Create(ctx, matchpost.MatchPost{
		HostTeamID:  hostID,
		VenueID:     "seed-hongdae-futsal",
		Title:       "주말 매치 상대 구합니다",
		Description: "풋살 5:5, 매너 플레이 부탁드려요.",
		Status:      matchpost.StatusOpen,
		Slots: []matchpost.TimeSlot{
			{StartAt: nextSaturday.Add(10 * time.Hour), EndAt: nextSaturday.Add(12 * time.Hour), Status: matchpost.SlotOpen},
			{StartAt: nextSaturday.Add(14 * time.Hour), EndAt: nextSaturday.Add(16 * time.Hour), Status: matchpost.SlotOpen},
		},
	})
	if err != nil {
		return fmt.Errorf("seed match post: %w", err)
	}

	return nil
}

func upcomingSaturday(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for day.Weekday() != time.Saturday {
		day = day.AddDate(0, 0, 1)
	}
	return day
}
