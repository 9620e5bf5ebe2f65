package fs

import (
	"os"
	"testing"
	"time"

	"github.com/storyworld/storyworld/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	adapter, err := NewAdapter(t.TempDir())
	require.NoError(t, err)

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	books := []*model.Book{
		{
			ID:          "b-1",
			Title:       "Counting with Colorful Cats",
			Author:      "Mia Torres",
			Description: "Learn numbers with playful kittens",
			Genre:       "educational",
			AgeGroup:    "0-3",
			Tags:        []string{"cats", "counting"},
			Views:       7,
			Likes:       3,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:        "b-2",
			Title:     "The Sleepy Dragon",
			Author:    "Oren Blake",
			Genre:     "bedtime",
			AgeGroup:  "4-6",
			Tags:      []string{},
			CreatedAt: created.Add(time.Hour),
			UpdatedAt: created.Add(time.Hour),
		},
	}

	require.NoError(t, adapter.Save("books", books))

	var loaded []*model.Book
	require.NoError(t, adapter.Load("books", &loaded))

	require.Len(t, loaded, 2)
	assert.Equal(t, books, loaded)
}

func TestLoadAbsentFile(t *testing.T) {
	adapter, err := NewAdapter(t.TempDir())
	require.NoError(t, err)

	loaded := []*model.Book{}
	require.NoError(t, adapter.Load("books", &loaded))
	assert.Empty(t, loaded)
}

func TestLoadCorruptFileIsEmptyNotError(t *testing.T) {
	adapter, err := NewAdapter(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(adapter.Path("books"), []byte("{not json"), 0644))

	var loaded []*model.Book
	require.NoError(t, adapter.Load("books", &loaded))
	assert.Empty(t, loaded)
}

func TestSaveOverwritesWholeSnapshot(t *testing.T) {
	adapter, err := NewAdapter(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, adapter.Save("comments", []*model.Comment{{ID: "c-1", BookID: "b-1", Text: "fun"}}))
	require.NoError(t, adapter.Save("comments", []*model.Comment{{ID: "c-2", BookID: "b-1", Text: "better"}}))

	var loaded []*model.Comment
	require.NoError(t, adapter.Load("comments", &loaded))
	require.Len(t, loaded, 1)
	assert.Equal(t, "c-2", loaded[0].ID)
}
