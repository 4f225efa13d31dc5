package board

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/braindump/pkg/errors"
	"github.com/yanqian/braindump/pkg/util"
)

// Service exposes the anonymous sharing board.
type Service interface {
	Share(ctx context.Context, req ShareRequest) (Post, error)
	React(ctx context.Context, id string, req ReactRequest) (Post, error)
	List(ctx context.Context) ([]Post, error)
}

type service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires up the sharing board.
func NewService(store Store, logger *slog.Logger) Service {
	return &service{
		store:  store,
		logger: logger.With("component", "board.service"),
		now:    util.NowUTC,
		newID:  uuid.NewString,
	}
}

// SeedStore loads starter posts into an empty store.
func SeedStore(ctx context.Context, store Store, seeds []Seed) error {
	for _, seed := range seeds {
		text := strings.TrimSpace(seed.Text)
		if text == "" {
			continue
		}
		created := seed.CreatedAt
		if created.IsZero() {
			created = util.NowUTC()
		}
		post := Post{
			ID:   uuid.NewString(),
			Text: text,
			Reactions: map[ReactionKind]int{
				ReactionMeToo:   seed.MeToo,
				ReactionSupport: seed.Support,
			},
			CreatedAt: created,
		}
		if err := store.Add(ctx, post); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Share(ctx context.Context, req ShareRequest) (Post, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return Post{}, apperrors.Wrap("invalid_input", "post text cannot be empty", nil)
	}
	if utf8.RuneCountInString(text) > MaxPostLength {
		return Post{}, apperrors.Wrap("invalid_input", "post text must be at most 100 characters", nil)
	}

	post := Post{
		ID:   s.newID(),
		Text: text,
		Reactions: map[ReactionKind]int{
			ReactionMeToo:   0,
			ReactionSupport: 0,
		},
		CreatedAt: s.now(),
	}
	if err := s.store.Add(ctx, post); err != nil {
		return Post{}, apperrors.Wrap("board_error", "failed to share post", err)
	}
	s.logger.Info("board post shared", "id", post.ID, "length", utf8.RuneCountInString(text))
	return post, nil
}

func (s *service) React(ctx context.Context, id string, req ReactRequest) (Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Post{}, apperrors.Wrap("invalid_input", "post id cannot be empty", nil)
	}
	if !req.Kind.valid() {
		return Post{}, apperrors.Wrap("invalid_input", "reaction must be metoo or support", nil)
	}
	post, err := s.store.React(ctx, id, req.Kind)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return Post{}, apperrors.Wrap("not_found", "post not found", err)
		}
		return Post{}, apperrors.Wrap("board_error", "failed to react to post", err)
	}
	return post, nil
}

func (s *service) List(ctx context.Context) ([]Post, error) {
	posts, err := s.store.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap("board_error", "failed to list posts", err)
	}
	return posts, nil
}
