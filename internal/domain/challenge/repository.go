package challenge

import (
	"context"
	"errors"
)

// ErrDuplicatePending reports a create that collided with an existing
// PENDING challenge by the same team on the same post. It backstops the
// use case's HasPending check against concurrent creates.
var ErrDuplicatePending = errors.New("pending challenge already exists")

// Repository describes challenge persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, c Challenge) (Challenge, error)
	GetByID(ctx context.Context, challengeID int64) (Challenge, bool, error)
	// HasPending reports whether the challenger team already has a
	// PENDING challenge against the given post.
	HasPending(ctx context.Context, matchPostID, challengerTeamID int64) (bool, error)
	ListByPost(ctx context.Context, matchPostID int64) ([]Challenge, error)
}
