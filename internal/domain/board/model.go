package board

import (
	"context"
	"errors"
	"time"
)

// ReactionKind identifies the supported board reactions.
type ReactionKind string

const (
	// ReactionMeToo marks a post as relatable.
	ReactionMeToo ReactionKind = "metoo"
	// ReactionSupport sends encouragement to the poster.
	ReactionSupport ReactionKind = "support"
)

// MaxPostLength caps a shared one-liner, in runes.
const MaxPostLength = 100

// ErrPostNotFound is returned by stores for unknown ids.
var ErrPostNotFound = errors.New("post not found")

// Post is an anonymous one-liner on the stress board.
type Post struct {
	ID        string               `json:"id"`
	Text      string               `json:"text"`
	Reactions map[ReactionKind]int `json:"reactions"`
	CreatedAt time.Time            `json:"createdAt"`
}

// ShareRequest is the payload for a new post.
type ShareRequest struct {
	Text string `json:"text"`
}

// ReactRequest is the payload for reacting to a post.
type ReactRequest struct {
	Kind ReactionKind `json:"kind"`
}

// Seed is a starter post loaded at boot.
type Seed struct {
	Text      string
	MeToo     int
	Support   int
	CreatedAt time.Time
}

// Store defines the storage contract for board posts.
type Store interface {
	Add(ctx context.Context, post Post) error
	React(ctx context.Context, id string, kind ReactionKind) (Post, error)
	List(ctx context.Context) ([]Post, error)
}

func (k ReactionKind) valid() bool {
	return k == ReactionMeToo || k == ReactionSupport
}
