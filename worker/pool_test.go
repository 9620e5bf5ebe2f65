package worker

import (
	"testing"

	"github.com/storyworld/storyworld/model"
	"github.com/storyworld/storyworld/store/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistPoolWritesSnapshots(t *testing.T) {
	adapter, err := fs.NewAdapter(t.TempDir())
	require.NoError(t, err)

	pool := NewPersistPool(adapter, 1)
	pool.Push(model.PersistJob{
		Name:    "books",
		Payload: []*model.Book{{ID: "b-1", Title: "The Sleepy Dragon", Tags: []string{}}},
	})
	pool.Push(model.PersistJob{
		Name:    "books",
		Payload: []*model.Book{{ID: "b-2", Title: "Hopper the Brave Bunny", Tags: []string{}}},
	})
	pool.Close()

	var loaded []*model.Book
	require.NoError(t, adapter.Load("books", &loaded))
	require.Len(t, loaded, 1)
	// Last snapshot wins, the whole file is overwritten each time.
	assert.Equal(t, "b-2", loaded[0].ID)
}
