package store

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/storyworld/storyworld/model"
	"github.com/storyworld/storyworld/util"
)

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrMissingBookID = errors.New("bookId is required")
)

// AddFeedback validates and appends a feedback record. DeviceID is an
// opaque client-supplied string, it is not enforced unique here.
func (s *Store) AddFeedback(bookID string, rating int, comment, deviceID string) (*model.Feedback, error) {
	if bookID == "" {
		return nil, ErrMissingBookID
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findBookLocked(bookID) == nil {
		return nil, ErrBookNotFound
	}

	feedback := &model.Feedback{
		ID:        util.GenUUID(),
		BookID:    bookID,
		Rating:    rating,
		Comment:   comment,
		DeviceID:  deviceID,
		CreatedAt: time.Now(),
	}
	s.feedback = append(s.feedback, feedback)
	s.persistLocked(CollectionFeedback)

	f := *feedback
	return &f, nil
}

// ListFeedback returns all feedback for a book.
func (s *Store) ListFeedback(bookID string) []*model.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Feedback, 0)
	for _, f := range s.feedback {
		if f.BookID == bookID {
			fc := *f
			out = append(out, &fc)
		}
	}
	return out
}

// AverageRating computes the running average over all feedback,
// rounded to one decimal for display.
func (s *Store) AverageRating() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.averageRatingLocked()
}

func (s *Store) averageRatingLocked() float64 {
	if len(s.feedback) == 0 {
		return 0
	}
	sum := 0
	for _, f := range s.feedback {
		sum += f.Rating
	}
	avg := float64(sum) / float64(len(s.feedback))
	return math.Round(avg*10) / 10
}
