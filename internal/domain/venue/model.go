package venue

import (
	"fmt"
	"strings"
	"time"
)

// Coordinates is a geocoded point for a venue address.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Venue is a playing field referenced by match posts and matches.
// The scheduler reads venues but never mutates them.
type Venue struct {
	ID        string
	Name      string
	Address   string
	Region    string
	Location  *Coordinates
	CreatedAt time.Time
}

func (v Venue) Validate() error {
	if strings.TrimSpace(v.ID) == "" {
		return fmt.Errorf("venue id is required")
	}
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("venue name is required")
	}
	if strings.TrimSpace(v.Region) == "" {
		return fmt.Errorf("venue region is required")
	}

	return nil
}
