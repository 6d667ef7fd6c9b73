package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/daehyun-cho/matchup/internal/domain/challenge"
	"github.com/daehyun-cho/matchup/internal/domain/match"
	"github.com/daehyun-cho/matchup/internal/domain/matchpost"
	"github.com/daehyun-cho/matchup/internal/domain/team"
	"github.com/daehyun-cho/matchup/internal/domain/venue"
)

// Store holds every entity behind one mutex. Repository facades share
// it, and InTx serializes acceptance transactions under the write lock,
// standing in for the row locking a relational store provides.
type Store struct {
	mu sync.RWMutex

	teams   map[int64]team.Team
	teamSeq int64

	venues     map[string]venue.Venue
	venueOrder []string

	posts   map[int64]matchpost.MatchPost
	postSeq int64

	slots   map[int64]matchpost.TimeSlot
	slotSeq int64

	challenges   map[int64]challenge.Challenge
	challengeSeq int64

	matches  map[int64]match.Match
	matchSeq int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		teams:      make(map[int64]team.Team),
		venues:     make(map[string]venue.Venue),
		posts:      make(map[int64]matchpost.MatchPost),
		slots:      make(map[int64]matchpost.TimeSlot),
		challenges: make(map[int64]challenge.Challenge),
		matches:    make(map[int64]match.Match),
		now:        time.Now,
	}
}

// SetClock overrides the store clock, for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

type snapshot struct {
	teams      map[int64]team.Team
	venues     map[string]venue.Venue
	venueOrder []string
	posts      map[int64]matchpost.MatchPost
	slots      map[int64]matchpost.TimeSlot
	challenges map[int64]challenge.Challenge
	matches    map[int64]match.Match
	seqs       [5]int64
}

func (s *Store) snapshotLocked() snapshot {
	return snapshot{
		teams:      cloneMap(s.teams),
		venues:     cloneMap(s.venues),
		venueOrder: append([]string(nil), s.venueOrder...),
		posts:      cloneMap(s.posts),
		slots:      cloneMap(s.slots),
		challenges: cloneMap(s.challenges),
		matches:    cloneMap(s.matches),
		seqs:       [5]int64{s.teamSeq, s.postSeq, s.slotSeq, s.challengeSeq, s.matchSeq},
	}
}

func (s *Store) restoreLocked(snap snapshot) {
	s.teams = snap.teams
	s.venues = snap.venues
	s.venueOrder = snap.venueOrder
	s.posts = snap.posts
	s.slots = snap.slots
	s.challenges = snap.challenges
	s.matches = snap.matches
	s.teamSeq, s.postSeq, s.slotSeq, s.challengeSeq, s.matchSeq =
		snap.seqs[0], snap.seqs[1], snap.seqs[2], snap.seqs[3], snap.seqs[4]
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// postSlotsLocked returns the slots of a post ordered by id.
func (s *Store) postSlotsLocked(postID int64) []matchpost.TimeSlot {
	out := make([]matchpost.TimeSlot, 0, 2)
	for _, slot := range s.slots {
		if slot.MatchPostID == postID {
			out = append(out, slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) postWithSlotsLocked(postID int64) (matchpost.MatchPost, bool) {
	post, ok := s.posts[postID]
	if !ok {
		return matchpost.MatchPost{}, false
	}
	post.Slots = s.postSlotsLocked(postID)
	return post, true
}
