package team

import (
	"fmt"
	"strings"
	"time"
)

// Sport is the closed set of sports a team can register for.
type Sport string

const (
	SportSoccer Sport = "SOCCER"
	SportFutsal Sport = "FUTSAL"
)

// ParseSport normalizes a raw sport string into the closed set.
// Unknown values are reported instead of silently defaulting.
func ParseSport(raw string) (Sport, bool) {
	switch Sport(strings.ToUpper(strings.TrimSpace(raw))) {
	case SportSoccer:
		return SportSoccer, true
	case SportFutsal:
		return SportFutsal, true
	default:
		return "", false
	}
}

func Sports() []Sport {
	return []Sport{SportSoccer, SportFutsal}
}

// Team is a registered club that can host match posts and challenge others.
type Team struct {
	ID          int64
	Name        string
	Sport       Sport
	Region      string
	LogoURL     string
	Description string
	SkillRating int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if len(t.Name) > 100 {
		return fmt.Errorf("team name must be at most 100 characters")
	}
	if _, ok := ParseSport(string(t.Sport)); !ok {
		return fmt.Errorf("team sport %q is not supported", t.Sport)
	}
	if t.SkillRating < 0 {
		return fmt.Errorf("team skill rating must not be negative")
	}

	return nil
}
