package match

import "context"

type ListFilter struct {
	// TeamID keeps matches where the team plays as host or away.
	TeamID int64
	Status Status
	Take   int
	Cursor int64
}

// Repository describes match persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Match, error)
}
