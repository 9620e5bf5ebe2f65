package store

import (
	"sort"

	"github.com/storyworld/storyworld/model"
)

// Stats aggregates the catalog for the stats endpoint.
func (s *Store) Stats() *model.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &model.Stats{
		TotalBooks:     len(s.books),
		TotalComments:  len(s.comments),
		TotalFeedback:  len(s.feedback),
		TotalViews:     s.views.TotalViews,
		AverageRating:  s.averageRatingLocked(),
		GenreCounts:    make(map[string]int),
		AgeGroupCounts: make(map[string]int),
	}

	for _, b := range s.books {
		stats.TotalLikes += b.Likes
		stats.GenreCounts[b.Genre]++
		stats.AgeGroupCounts[b.AgeGroup]++
	}

	recent := cloneBooks(s.books)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.RecentBooks = recent

	return stats
}
