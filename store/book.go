package store

import (
	"time"

	"github.com/pkg/errors"
	"github.com/storyworld/storyworld/model"
	"github.com/storyworld/storyworld/util"
)

var ErrBookNotFound = errors.New("book not found")

// AddBook prepends the book so the newest entry is listed first. The
// caller assigns the id.
func (s *Store) AddBook(book *model.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if book.Tags == nil {
		book.Tags = []string{}
	}
	s.books = append([]*model.Book{book}, s.books...)
	s.persistLocked(CollectionBooks)
}

// GetBook returns the book with the given id.
func (s *Store) GetBook(id string) (*model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := s.findBookLocked(id)
	if b == nil {
		return nil, ErrBookNotFound
	}
	c := *b
	c.Tags = append([]string(nil), b.Tags...)
	return &c, nil
}

// CheckBook reports whether a book with the given id exists.
func (s *Store) CheckBook(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findBookLocked(id) != nil
}

func (s *Store) findBookLocked(id string) *model.Book {
	for _, b := range s.books {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// IncrementLikes bumps the like counter unconditionally, there is no
// per-device dedup. Returns the new count.
func (s *Store) IncrementLikes(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.findBookLocked(id)
	if b == nil {
		return 0, ErrBookNotFound
	}
	b.Likes++
	b.UpdatedAt = time.Now()
	s.persistLocked(CollectionBooks)
	return b.Likes, nil
}

// DecrementLikes lowers the like counter with a floor of zero. Not
// exposed over the REST surface, the frontend toggle stays client-side.
func (s *Store) DecrementLikes(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.findBookLocked(id)
	if b == nil {
		return 0, ErrBookNotFound
	}
	if b.Likes > 0 {
		b.Likes--
	}
	b.UpdatedAt = time.Now()
	s.persistLocked(CollectionBooks)
	return b.Likes, nil
}

func seedBooks() []*model.Book {
	now := time.Now()
	mk := func(offset time.Duration, title, author, description, genre, ageGroup string, tags []string, views, likes int) *model.Book {
		created := now.Add(-offset)
		return &model.Book{
			ID:          util.GenUUID(),
			Title:       title,
			Author:      author,
			Description: description,
			Genre:       genre,
			AgeGroup:    ageGroup,
			Tags:        tags,
			Views:       views,
			Likes:       likes,
			CreatedAt:   created,
			UpdatedAt:   created,
		}
	}

	return []*model.Book{
		mk(24*time.Hour, "Counting with Colorful Cats", "Mia Torres",
			"Learn to count from one to ten with a parade of playful kittens.",
			"educational", "0-3", []string{"cats", "counting", "numbers"}, 152, 34),
		mk(48*time.Hour, "The Sleepy Dragon", "Oren Blake",
			"A little dragon who cannot fall asleep visits every cloud in the sky.",
			"bedtime", "4-6", []string{"dragons", "sleep"}, 98, 21),
		mk(72*time.Hour, "Captain Tilly and the Lost Island", "June Park",
			"Tilly sails her paper boat to an island that maps forgot.",
			"adventure", "7-9", []string{"pirates", "islands", "maps"}, 210, 57),
		mk(96*time.Hour, "The Whispering Woods", "Ada Quinn",
			"Two siblings follow glowing fireflies into a forest full of gentle magic.",
			"fantasy", "7-9", []string{"magic", "forest"}, 75, 12),
		mk(120*time.Hour, "Hopper the Brave Bunny", "Sam Reed",
			"Hopper learns that being brave sometimes means asking for help.",
			"animals", "4-6", []string{"bunnies", "courage"}, 134, 40),
		mk(144*time.Hour, "The Princess Who Fixed Things", "Lena Moss",
			"A princess trades her tiara for a toolbox and repairs the whole kingdom.",
			"fairy-tale", "4-6", []string{"princess", "tools"}, 187, 66),
	}
}
