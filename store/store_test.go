package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/storyworld/storyworld/config"
	"github.com/storyworld/storyworld/model"
	"github.com/storyworld/storyworld/store/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	config.GetDefaultOptions()

	dir := t.TempDir()
	backend, err := fs.NewAdapter(filepath.Join(dir, "collections"))
	require.NoError(t, err)

	s := NewStore(backend)
	require.NoError(t, s.Load())
	return s, filepath.Join(dir, "collections")
}

func TestLoadInstallsSampleCatalog(t *testing.T) {
	s, _ := newTestStore(t)

	books, pagination := s.QueryBooks(model.BookQuery{Limit: 100})
	assert.Len(t, books, 6)
	assert.Equal(t, 6, pagination.TotalBooks)
}

func TestLoadKeepsExistingCatalog(t *testing.T) {
	config.GetDefaultOptions()
	dir := filepath.Join(t.TempDir(), "collections")

	backend, err := fs.NewAdapter(dir)
	require.NoError(t, err)
	require.NoError(t, backend.Save(CollectionBooks, []*model.Book{
		{ID: "b1", Title: "Only Book", Author: "A", Genre: "animals", AgeGroup: "4-6", CreatedAt: time.Now()},
	}))

	s := NewStore(backend)
	require.NoError(t, s.Load())

	books, _ := s.QueryBooks(model.BookQuery{Limit: 100})
	require.Len(t, books, 1)
	assert.Equal(t, "Only Book", books[0].Title)
}

func TestQueryBooksPagination(t *testing.T) {
	s, _ := newTestStore(t)

	books, p := s.QueryBooks(model.BookQuery{Page: 1, Limit: 4})
	assert.Len(t, books, 4)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, 6, p.TotalBooks)
	assert.True(t, p.HasMore)

	books, p = s.QueryBooks(model.BookQuery{Page: 2, Limit: 4})
	assert.Len(t, books, 2)
	assert.False(t, p.HasMore)

	books, p = s.QueryBooks(model.BookQuery{Page: 3, Limit: 4})
	assert.Empty(t, books)
	assert.Equal(t, 3, p.CurrentPage)
	assert.False(t, p.HasMore)
}

func TestQueryBooksSearch(t *testing.T) {
	s, _ := newTestStore(t)

	books, _ := s.QueryBooks(model.BookQuery{Search: "cat", Limit: 100})
	require.NotEmpty(t, books)
	found := false
	for _, b := range books {
		if b.Title == "Counting with Colorful Cats" {
			found = true
		}
	}
	assert.True(t, found, "search should match the cats book")

	upper, _ := s.QueryBooks(model.BookQuery{Search: "CAT", Limit: 100})
	assert.Len(t, upper, len(books), "search is case-insensitive")

	byAuthor, _ := s.QueryBooks(model.BookQuery{Search: "mia torres", Limit: 100})
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "Counting with Colorful Cats", byAuthor[0].Title)

	byTag, _ := s.QueryBooks(model.BookQuery{Search: "counting", Limit: 100})
	assert.NotEmpty(t, byTag)

	none, _ := s.QueryBooks(model.BookQuery{Search: "zzzzzz", Limit: 100})
	assert.Empty(t, none)
}

func TestQueryBooksGenreFilter(t *testing.T) {
	s, _ := newTestStore(t)

	books, _ := s.QueryBooks(model.BookQuery{Genre: "bedtime", Limit: 100})
	require.Len(t, books, 1)
	assert.Equal(t, "The Sleepy Dragon", books[0].Title)

	all, _ := s.QueryBooks(model.BookQuery{Genre: "all", Limit: 100})
	assert.Len(t, all, 6)
}

func TestQueryBooksSortOrders(t *testing.T) {
	s, _ := newTestStore(t)

	newest, _ := s.QueryBooks(model.BookQuery{Sort: model.SortNewest, Limit: 100})
	for i := 1; i < len(newest); i++ {
		assert.False(t, newest[i-1].CreatedAt.Before(newest[i].CreatedAt))
	}

	oldest, _ := s.QueryBooks(model.BookQuery{Sort: model.SortOldest, Limit: 100})
	for i := 1; i < len(oldest); i++ {
		assert.False(t, oldest[i-1].CreatedAt.After(oldest[i].CreatedAt))
	}

	popular, _ := s.QueryBooks(model.BookQuery{Sort: model.SortPopular, Limit: 100})
	for i := 1; i < len(popular); i++ {
		assert.GreaterOrEqual(t, popular[i-1].Views, popular[i].Views)
	}

	liked, _ := s.QueryBooks(model.BookQuery{Sort: model.SortLikes, Limit: 100})
	for i := 1; i < len(liked); i++ {
		assert.GreaterOrEqual(t, liked[i-1].Likes, liked[i].Likes)
	}
}

func TestQueryBooksCountsViews(t *testing.T) {
	s, _ := newTestStore(t)

	before, _ := s.QueryBooks(model.BookQuery{Limit: 1})
	require.Len(t, before, 1)
	id := before[0].ID
	views := before[0].Views

	after, _ := s.QueryBooks(model.BookQuery{Limit: 1})
	require.Len(t, after, 1)
	require.Equal(t, id, after[0].ID)
	assert.Equal(t, views+1, after[0].Views)
}

func TestIncrementLikes(t *testing.T) {
	s, _ := newTestStore(t)

	books, _ := s.QueryBooks(model.BookQuery{Limit: 1})
	require.Len(t, books, 1)
	id := books[0].ID
	start := books[0].Likes

	var likes int
	var err error
	for i := 1; i <= 3; i++ {
		likes, err = s.IncrementLikes(id)
		require.NoError(t, err)
		assert.Equal(t, start+i, likes)
	}

	_, err = s.IncrementLikes("missing")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestDecrementLikesFloorsAtZero(t *testing.T) {
	s, _ := newTestStore(t)

	book := &model.Book{ID: "nolikes", Title: "Zero", Author: "A", Genre: "animals", AgeGroup: "4-6", CreatedAt: time.Now()}
	s.AddBook(book)

	likes, err := s.DecrementLikes("nolikes")
	require.NoError(t, err)
	assert.Equal(t, 0, likes)
}

func TestAddBookPrepends(t *testing.T) {
	s, _ := newTestStore(t)

	book := &model.Book{ID: "new1", Title: "Brand New", Author: "A", Genre: "fantasy", AgeGroup: "7-9", CreatedAt: time.Now()}
	s.AddBook(book)

	got, err := s.GetBook("new1")
	require.NoError(t, err)
	assert.Equal(t, "Brand New", got.Title)
	assert.NotNil(t, got.Tags)

	_, err = s.GetBook("missing")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestAddComment(t *testing.T) {
	s, _ := newTestStore(t)
	books, _ := s.QueryBooks(model.BookQuery{Limit: 1})
	id := books[0].ID

	_, err := s.AddComment(id, "Kim", "   ")
	assert.ErrorIs(t, err, ErrEmptyComment)

	_, err = s.AddComment("missing", "Kim", "great")
	assert.ErrorIs(t, err, ErrBookNotFound)

	c, err := s.AddComment(id, "", "  lovely pictures  ")
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", c.Author)
	assert.Equal(t, "lovely pictures", c.Text)

	_, err = s.AddComment(id, "Kim", "my kid loves it")
	require.NoError(t, err)

	comments := s.ListComments(id)
	require.Len(t, comments, 2)
	assert.Equal(t, "my kid loves it", comments[0].Text, "newest first")
}

func TestAddFeedbackValidation(t *testing.T) {
	s, _ := newTestStore(t)
	books, _ := s.QueryBooks(model.BookQuery{Limit: 1})
	id := books[0].ID

	_, err := s.AddFeedback("", 3, "", "dev1")
	assert.ErrorIs(t, err, ErrMissingBookID)

	_, err = s.AddFeedback(id, 0, "", "dev1")
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = s.AddFeedback(id, 6, "", "dev1")
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = s.AddFeedback("missing", 3, "", "dev1")
	assert.ErrorIs(t, err, ErrBookNotFound)

	_, err = s.AddFeedback(id, 5, "wonderful", "dev1")
	require.NoError(t, err)
	_, err = s.AddFeedback(id, 4, "", "dev2")
	require.NoError(t, err)

	assert.Equal(t, 4.5, s.AverageRating())
	assert.Len(t, s.ListFeedback(id), 2)
}

func TestRecordView(t *testing.T) {
	s, _ := newTestStore(t)
	books, _ := s.QueryBooks(model.BookQuery{Limit: 1})
	id := books[0].ID

	views, err := s.RecordView(id, "device-1")
	require.NoError(t, err)
	assert.Equal(t, 1, views.Books[id])
	assert.Contains(t, views.Devices, "device-1")

	total := views.TotalViews
	views, err = s.RecordView("", "device-1")
	require.NoError(t, err)
	assert.Equal(t, total+1, views.TotalViews)
	assert.Len(t, views.Devices, 1, "device is only recorded once")

	_, err = s.RecordView("missing", "device-2")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestStats(t *testing.T) {
	s, _ := newTestStore(t)
	books, _ := s.QueryBooks(model.BookQuery{Limit: 100})
	id := books[0].ID

	_, err := s.AddFeedback(id, 4, "", "dev1")
	require.NoError(t, err)
	_, err = s.AddComment(id, "Kim", "nice")
	require.NoError(t, err)

	stats := s.Stats()
	assert.Equal(t, 6, stats.TotalBooks)
	assert.Equal(t, 1, stats.TotalComments)
	assert.Equal(t, 1, stats.TotalFeedback)
	assert.Equal(t, 4.0, stats.AverageRating)
	assert.Equal(t, 1, stats.GenreCounts["educational"])
	assert.Len(t, stats.RecentBooks, 5)
	assert.Positive(t, stats.TotalLikes)
}

func TestStoreReloadRoundTrip(t *testing.T) {
	config.GetDefaultOptions()
	dir := filepath.Join(t.TempDir(), "collections")

	backend, err := fs.NewAdapter(dir)
	require.NoError(t, err)
	s := NewStore(backend)
	require.NoError(t, s.Load())

	books, _ := s.QueryBooks(model.BookQuery{Limit: 1})
	id := books[0].ID
	likes, err := s.IncrementLikes(id)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	backend, err = fs.NewAdapter(dir)
	require.NoError(t, err)
	reloaded := NewStore(backend)
	require.NoError(t, reloaded.Load())

	got, err := reloaded.GetBook(id)
	require.NoError(t, err)
	assert.Equal(t, likes, got.Likes)
}
