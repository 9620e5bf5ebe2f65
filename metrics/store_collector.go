package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/storyworld/storyworld/store"
)

// StoreCollector exposes catalog gauges computed from the store on
// every scrape.
type StoreCollector struct {
	store *store.Store

	booksDesc    *prometheus.Desc
	commentsDesc *prometheus.Desc
	feedbackDesc *prometheus.Desc
	viewsDesc    *prometheus.Desc
	likesDesc    *prometheus.Desc
	ratingDesc   *prometheus.Desc
}

func NewStoreCollector(s *store.Store) *StoreCollector {
	return &StoreCollector{
		store: s,
		booksDesc: prometheus.NewDesc("storyworld_books_total",
			"Number of books in the catalog.", nil, nil),
		commentsDesc: prometheus.NewDesc("storyworld_comments_total",
			"Number of comments across all books.", nil, nil),
		feedbackDesc: prometheus.NewDesc("storyworld_feedback_total",
			"Number of feedback entries across all books.", nil, nil),
		viewsDesc: prometheus.NewDesc("storyworld_views_total",
			"Global view counter.", nil, nil),
		likesDesc: prometheus.NewDesc("storyworld_likes_total",
			"Sum of like counters across all books.", nil, nil),
		ratingDesc: prometheus.NewDesc("storyworld_average_rating",
			"Running average rating over all feedback.", nil, nil),
	}
}

func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.booksDesc
	ch <- c.commentsDesc
	ch <- c.feedbackDesc
	ch <- c.viewsDesc
	ch <- c.likesDesc
	ch <- c.ratingDesc
}

func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.store.Stats()

	ch <- prometheus.MustNewConstMetric(c.booksDesc, prometheus.GaugeValue, float64(stats.TotalBooks))
	ch <- prometheus.MustNewConstMetric(c.commentsDesc, prometheus.GaugeValue, float64(stats.TotalComments))
	ch <- prometheus.MustNewConstMetric(c.feedbackDesc, prometheus.GaugeValue, float64(stats.TotalFeedback))
	ch <- prometheus.MustNewConstMetric(c.viewsDesc, prometheus.GaugeValue, float64(stats.TotalViews))
	ch <- prometheus.MustNewConstMetric(c.likesDesc, prometheus.GaugeValue, float64(stats.TotalLikes))
	ch <- prometheus.MustNewConstMetric(c.ratingDesc, prometheus.GaugeValue, stats.AverageRating)
}
