package store // import "github.com/storyworld/storyworld/store"

import (
	"sync"

	"github.com/storyworld/storyworld/log"
	"github.com/storyworld/storyworld/model"
	"go.uber.org/zap"
)

// Collection names used with the persistence backend.
const (
	CollectionBooks    = "books"
	CollectionComments = "comments"
	CollectionFeedback = "feedback"
	CollectionViews    = "views"
)

// Backend persists whole collection snapshots under a name.
type Backend interface {
	Load(name string, v any) error
	Save(name string, v any) error
	Close() error
}

// Persister accepts snapshot jobs. The persist worker pool implements
// it; when no persister is attached the store saves synchronously.
type Persister interface {
	Push(job model.PersistJob)
}

// Store owns the in-memory collections. Every mutation hands a full
// snapshot of the touched collection to the persister.
type Store struct {
	backend   Backend
	persister Persister

	mu       sync.RWMutex
	books    []*model.Book
	comments []*model.Comment
	feedback []*model.Feedback
	views    *model.ViewStats
}

func NewStore(backend Backend) *Store {
	return &Store{
		backend:  backend,
		books:    []*model.Book{},
		comments: []*model.Comment{},
		feedback: []*model.Feedback{},
		views:    model.NewViewStats(),
	}
}

// SetPersister routes snapshot writes through the given queue.
func (s *Store) SetPersister(p Persister) {
	s.persister = p
}

// Load reads every collection from the backend. Sample books are
// installed only when the books collection comes back empty.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Load(CollectionBooks, &s.books); err != nil {
		return err
	}
	if err := s.backend.Load(CollectionComments, &s.comments); err != nil {
		return err
	}
	if err := s.backend.Load(CollectionFeedback, &s.feedback); err != nil {
		return err
	}
	if err := s.backend.Load(CollectionViews, &s.views); err != nil {
		return err
	}
	if s.views == nil {
		s.views = model.NewViewStats()
	}
	if s.views.Books == nil {
		s.views.Books = make(map[string]int)
	}

	if len(s.books) == 0 {
		s.books = seedBooks()
		log.Info("Books collection is empty, installing sample catalog",
			zap.Int("count", len(s.books)))
		s.persistLocked(CollectionBooks)
	}
	return nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// persistLocked snapshots the named collection and hands it off. The
// caller must hold at least the read lock. Counters are mutated in
// place, so records are copied before they leave the lock.
func (s *Store) persistLocked(name string) {
	var payload any
	switch name {
	case CollectionBooks:
		payload = cloneBooks(s.books)
	case CollectionComments:
		payload = cloneComments(s.comments)
	case CollectionFeedback:
		payload = cloneFeedback(s.feedback)
	case CollectionViews:
		payload = cloneViews(s.views)
	}

	if s.persister != nil {
		s.persister.Push(model.PersistJob{Name: name, Payload: payload})
		return
	}
	// In-memory state is not rolled back on a failed save. The file and
	// memory stay diverged until the next successful write.
	if err := s.backend.Save(name, payload); err != nil {
		log.Error("Failed to persist collection",
			zap.String("collection", name),
			zap.Error(err))
	}
}

func cloneBooks(books []*model.Book) []*model.Book {
	out := make([]*model.Book, len(books))
	for i, b := range books {
		c := *b
		c.Tags = append([]string(nil), b.Tags...)
		out[i] = &c
	}
	return out
}

func cloneComments(comments []*model.Comment) []*model.Comment {
	out := make([]*model.Comment, len(comments))
	for i, c := range comments {
		cc := *c
		out[i] = &cc
	}
	return out
}

func cloneFeedback(feedback []*model.Feedback) []*model.Feedback {
	out := make([]*model.Feedback, len(feedback))
	for i, f := range feedback {
		fc := *f
		out[i] = &fc
	}
	return out
}

func cloneViews(views *model.ViewStats) *model.ViewStats {
	c := &model.ViewStats{
		TotalViews: views.TotalViews,
		Books:      make(map[string]int, len(views.Books)),
		Devices:    append([]string(nil), views.Devices...),
	}
	for k, v := range views.Books {
		c.Books[k] = v
	}
	return c
}
