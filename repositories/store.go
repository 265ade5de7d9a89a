package repositories

import (
	"slices"
	"sync"
	"time"

	"blog-api/models"
)

type idSet map[uint]struct{}

func (s idSet) sorted() []uint {
	ids := make([]uint, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

type foldedPost struct {
	title   string
	content string
}

// state is everything guarded by Store.mu. Secondary indices are updated in
// the same critical section as the records they point at.
type state struct {
	users    map[uint]models.User
	posts    map[uint]models.BlogPost
	comments map[uint]models.Comment
	tags     map[uint]models.Tag

	nextUserID    uint
	nextPostID    uint
	nextCommentID uint
	nextTagID     uint

	usernames map[string]uint
	tagNames  map[string]uint

	postsByAuthor    map[uint]idSet
	commentsByAuthor map[uint]idSet
	commentsByPost   map[uint]idSet
	postsByTag       map[uint]idSet
	searchText       map[uint]foldedPost
}

func newState() *state {
	return &state{
		users:            make(map[uint]models.User),
		posts:            make(map[uint]models.BlogPost),
		comments:         make(map[uint]models.Comment),
		tags:             make(map[uint]models.Tag),
		nextUserID:       1,
		nextPostID:       1,
		nextCommentID:    1,
		nextTagID:        1,
		usernames:        make(map[string]uint),
		tagNames:         make(map[string]uint),
		postsByAuthor:    make(map[uint]idSet),
		commentsByAuthor: make(map[uint]idSet),
		commentsByPost:   make(map[uint]idSet),
		postsByTag:       make(map[uint]idSet),
		searchText:       make(map[uint]foldedPost),
	}
}

func link(idx map[uint]idSet, key, id uint) {
	set, ok := idx[key]
	if !ok {
		set = make(idSet)
		idx[key] = set
	}
	set[id] = struct{}{}
}

func unlink(idx map[uint]idSet, key, id uint) {
	set, ok := idx[key]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(idx, key)
	}
}

// Store is the process-wide in-memory entity store. Every repository built on
// it shares one lock, so multi-entity operations such as a cascading post
// delete are applied as a single step. Callers only ever get copies.
type Store struct {
	mu     sync.RWMutex
	st     *state
	closed bool
	now    func() time.Time
}

type StoreOption func(*Store)

// WithClock replaces the timestamp source, mostly for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		st:  newState(),
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close drops all entities. Any later call fails with models.ErrStoreClosed.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.st = newState()
}

func (s *Store) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return models.ErrStoreClosed
	}
	return fn(s.st)
}

// write runs fn with exclusive access. fn must finish all of its checks
// before touching st so that a returned error leaves nothing behind.
func (s *Store) write(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.ErrStoreClosed
	}
	return fn(s.st)
}

// touch returns the new updated-at stamp, never earlier than created.
func (s *Store) touch(created time.Time) time.Time {
	now := s.now()
	if now.Before(created) {
		return created
	}
	return now
}

// Snapshot copies every entity in creation order under one read lock.
func (s *Store) Snapshot() (models.Snapshot, error) {
	var snap models.Snapshot
	err := s.read(func(st *state) error {
		snap.TakenAt = s.now()
		snap.Users = make([]models.User, 0, len(st.users))
		for _, id := range sortedKeys(st.users) {
			snap.Users = append(snap.Users, st.users[id])
		}
		snap.Posts = make([]models.BlogPost, 0, len(st.posts))
		for _, id := range sortedKeys(st.posts) {
			snap.Posts = append(snap.Posts, clonePost(st.posts[id]))
		}
		snap.Comments = make([]models.Comment, 0, len(st.comments))
		for _, id := range sortedKeys(st.comments) {
			snap.Comments = append(snap.Comments, st.comments[id])
		}
		snap.Tags = make([]models.Tag, 0, len(st.tags))
		for _, id := range sortedKeys(st.tags) {
			snap.Tags = append(snap.Tags, st.tags[id])
		}
		return nil
	})
	return snap, err
}

func sortedKeys[T any](m map[uint]T) []uint {
	ids := make([]uint, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func clonePost(p models.BlogPost) models.BlogPost {
	p.TagIDs = append([]uint{}, p.TagIDs...)
	return p
}

// normalizeTagIDs returns the ids as an ascending set.
func normalizeTagIDs(ids []uint) []uint {
	out := append([]uint{}, ids...)
	slices.Sort(out)
	return slices.Compact(out)
}
