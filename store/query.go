package store

import (
	"sort"
	"strings"
	"time"

	"github.com/storyworld/storyworld/config"
	"github.com/storyworld/storyworld/model"
)

// QueryBooks filters, sorts and paginates the catalog. Every book on
// the returned page gets its view counter bumped: listing a book counts
// as a view, which is how the original frontend behaves.
func (s *Store) QueryBooks(q model.BookQuery) ([]*model.Book, model.Pagination) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = config.Opts.PageSize
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := filterBooks(s.books, q)
	sortBooks(matched, q.Sort)

	total := len(matched)
	totalPages := (total + q.Limit - 1) / q.Limit

	start := (q.Page - 1) * q.Limit
	end := q.Page * q.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	page := matched[start:end]

	now := time.Now()
	for _, b := range page {
		b.Views++
		b.UpdatedAt = now
		s.views.TotalViews++
		s.views.Books[b.ID]++
	}
	if len(page) > 0 {
		s.persistLocked(CollectionBooks)
		s.persistLocked(CollectionViews)
	}

	items := cloneBooks(page)
	pagination := model.Pagination{
		CurrentPage: q.Page,
		TotalPages:  totalPages,
		TotalBooks:  total,
		HasMore:     q.Page < totalPages,
	}
	return items, pagination
}

func filterBooks(books []*model.Book, q model.BookQuery) []*model.Book {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	genre := strings.TrimSpace(q.Genre)

	matched := make([]*model.Book, 0, len(books))
	for _, b := range books {
		if genre != "" && genre != "all" && b.Genre != genre {
			continue
		}
		if search != "" && !matchesSearch(b, search) {
			continue
		}
		matched = append(matched, b)
	}
	return matched
}

func matchesSearch(b *model.Book, search string) bool {
	if strings.Contains(strings.ToLower(b.Title), search) ||
		strings.Contains(strings.ToLower(b.Author), search) ||
		strings.Contains(strings.ToLower(b.Description), search) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

// sortBooks orders the slice in place. Ties keep their original
// position, the catalog order is meaningful (newest inserted first).
func sortBooks(books []*model.Book, key string) {
	switch key {
	case model.SortOldest:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].CreatedAt.Before(books[j].CreatedAt)
		})
	case model.SortPopular:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Views > books[j].Views
		})
	case model.SortLikes:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Likes > books[j].Likes
		})
	default: // newest
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].CreatedAt.After(books[j].CreatedAt)
		})
	}
}
