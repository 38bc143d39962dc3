package ports

import (
	"context"
	"time"
)

const (
	VoteEventCast    = "vote_cast"
	VoteEventChanged = "vote_changed"
)

// VoteEvent describes an accepted vote for downstream consumers.
type VoteEvent struct {
	Type         string    `json:"type"`
	VoteID       string    `json:"vote_id"`
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	Date         string    `json:"date"`
	Time         time.Time `json:"time"`
}

// VoteEventPublisher delivers a single event to the outside world.
type VoteEventPublisher interface {
	Publish(ctx context.Context, event VoteEvent) error
}

// VoteEventDispatcher accepts events for asynchronous publishing. Enqueue must not block.
type VoteEventDispatcher interface {
	Enqueue(event VoteEvent)
}
