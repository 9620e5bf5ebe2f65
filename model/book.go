package model // import "github.com/storyworld/storyworld/model"

import "time"

type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Genre       string    `json:"genre"`
	AgeGroup    string    `json:"ageGroup"`
	CoverURL    string    `json:"coverUrl"`
	PDFURL      string    `json:"pdfUrl"`
	Tags        []string  `json:"tags"`
	Views       int       `json:"views"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookQuery holds the catalog listing parameters.
type BookQuery struct {
	// Search is matched case-insensitively against title, author,
	// description and tags. Empty matches everything.
	Search string `json:"search"`
	// Genre filters by exact match. "all" or empty disables the filter.
	Genre string `json:"genre"`
	// Sort is one of: newest (default), oldest, popular, likes.
	Sort string `json:"sort"`
	// Page is 1-indexed.
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination describes the slice of the catalog a query returned.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalBooks  int  `json:"totalBooks"`
	HasMore     bool `json:"hasMore"`
}

const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortPopular = "popular"
	SortLikes   = "likes"
)
