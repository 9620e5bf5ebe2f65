package store

import (
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/storyworld/storyworld/model"
	"github.com/storyworld/storyworld/util"
)

var ErrEmptyComment = errors.New("comment cannot be empty")

// AddComment appends a comment for the book. Whitespace-only text is
// rejected after trimming.
func (s *Store) AddComment(bookID, author, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = "Anonymous"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findBookLocked(bookID) == nil {
		return nil, ErrBookNotFound
	}

	comment := &model.Comment{
		ID:        util.GenUUID(),
		BookID:    bookID,
		Author:    author,
		Text:      text,
		CreatedAt: time.Now(),
	}
	s.comments = append(s.comments, comment)
	s.persistLocked(CollectionComments)

	c := *comment
	return &c, nil
}

// ListComments returns the comments of a book, newest first.
func (s *Store) ListComments(bookID string) []*model.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Comment, 0)
	for _, c := range s.comments {
		if c.BookID == bookID {
			cc := *c
			out = append(out, &cc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
