package team

import (
	"context"
	"errors"
)

// ErrNameTaken reports a create that collided with an existing team
// name. Both stores return it so use cases never inspect error text.
var ErrNameTaken = errors.New("team name already taken")

type ListFilter struct {
	Region string
	Sport  Sport
	Take   int
	Cursor int64
}

// Repository describes team persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, t Team) (Team, error)
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
	List(ctx context.Context, filter ListFilter) ([]Team, error)
}
