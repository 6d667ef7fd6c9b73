package venue

import "context"

type ListFilter struct {
	Region  string
	Keyword string
}

// Repository describes venue persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, v Venue) error
	GetByID(ctx context.Context, venueID string) (Venue, bool, error)
	List(ctx context.Context, filter ListFilter) ([]Venue, error)
	ListRegions(ctx context.Context) ([]string, error)
	ListMissingCoordinates(ctx context.Context, limit int) ([]Venue, error)
	UpdateCoordinates(ctx context.Context, venueID string, loc Coordinates) error
}
