package matchpost

import (
	"context"
	"time"
)

type ListFilter struct {
	// Region filters by the venue's region when set.
	Region string
	// RangeStart/RangeEnd keep posts having at least one slot that
	// intersects [RangeStart, RangeEnd). Either side may be nil.
	RangeStart    *time.Time
	RangeEnd      *time.Time
	IncludeClosed bool
	Take          int
	Cursor        int64
}

// Repository describes match post persistence needs from use cases.
type Repository interface {
	// Create stores the post together with its slots as one unit.
	Create(ctx context.Context, post MatchPost) (MatchPost, error)
	// GetByID loads a post with its slots.
	GetByID(ctx context.Context, postID int64) (MatchPost, bool, error)
	GetSlot(ctx context.Context, slotID int64) (TimeSlot, bool, error)
	List(ctx context.Context, filter ListFilter) ([]MatchPost, error)
}
