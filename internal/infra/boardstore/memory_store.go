package boardstore

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/braindump/internal/domain/board"
)

type postRecord struct {
	post board.Post
	seq  int
}

// MemoryStore keeps board posts in process memory for the lifetime of the session.
type MemoryStore struct {
	mu    sync.RWMutex
	posts map[string]*postRecord
	seq   int
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{posts: make(map[string]*postRecord)}
}

// Add implements board.Store.
func (s *MemoryStore) Add(_ context.Context, post board.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.posts[post.ID] = &postRecord{post: clonePost(post), seq: s.seq}
	return nil
}

// React bumps a reaction counter and returns the updated post.
func (s *MemoryStore) React(_ context.Context, id string, kind board.ReactionKind) (board.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.posts[id]
	if !ok {
		return board.Post{}, board.ErrPostNotFound
	}
	if record.post.Reactions == nil {
		record.post.Reactions = make(map[board.ReactionKind]int)
	}
	record.post.Reactions[kind]++
	return clonePost(record.post), nil
}

// List returns posts newest first; posts created at the same instant keep reverse insertion order.
func (s *MemoryStore) List(_ context.Context) ([]board.Post, error) {
	s.mu.RLock()
	records := make([]*postRecord, 0, len(s.posts))
	for _, record := range s.posts {
		records = append(records, record)
	}
	s.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.post.CreatedAt.Equal(b.post.CreatedAt) {
			return a.seq > b.seq
		}
		return a.post.CreatedAt.After(b.post.CreatedAt)
	})

	out := make([]board.Post, 0, len(records))
	s.mu.RLock()
	for _, record := range records {
		out = append(out, clonePost(record.post))
	}
	s.mu.RUnlock()
	return out, nil
}

func clonePost(post board.Post) board.Post {
	reactions := make(map[board.ReactionKind]int, len(post.Reactions))
	for k, v := range post.Reactions {
		reactions[k] = v
	}
	post.Reactions = reactions
	return post
}

var _ board.Store = (*MemoryStore)(nil)
