package store

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7Generator_ValidFormat(t *testing.T) {
	id := UUIDv7Generator{}.Generate()

	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id)
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestUUIDv7Generator_Concurrent(t *testing.T) {
	gen := UUIDv7Generator{}
	const goroutines = 100

	ids := make(chan string, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- gen.Generate()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		require.False(t, seen[id], "duplicate id generated")
		seen[id] = true
	}
	assert.Len(t, seen, goroutines)
}

func TestFixedGenerator_Sequential(t *testing.T) {
	gen := NewFixedGenerator("ds-1", "ds-2")
	assert.Equal(t, "ds-1", gen.Generate())
	assert.Equal(t, "ds-2", gen.Generate())
	assert.PanicsWithValue(t, "FixedGenerator: all 2 ids exhausted", func() { gen.Generate() })
}

func TestImportTables_FixedIDs(t *testing.T) {
	s := createTestStore(t)
	s.SetIDGenerator(NewFixedGenerator("ds-steam-1", "ds-steam-2"))
	ctx := context.Background()

	first, err := s.ImportTables(ctx, "small", smallTables(t))
	require.NoError(t, err)
	second, err := s.ImportTables(ctx, "small", smallTables(t))
	require.NoError(t, err)

	assert.Equal(t, "ds-steam-1", first.ID)
	assert.Equal(t, "ds-steam-2", second.ID)
	assert.Equal(t, first.ContentHash, second.ContentHash)

	// By name the most recent import wins.
	got, err := s.GetDataset(ctx, "small")
	require.NoError(t, err)
	assert.Equal(t, "ds-steam-2", got.ID)
}

func TestSetIDGenerator_NilRestoresUUID(t *testing.T) {
	s := createTestStore(t)
	s.SetIDGenerator(nil)

	ds, err := s.ImportTables(context.Background(), "small", smallTables(t))
	require.NoError(t, err)
	_, err = uuid.Parse(ds.ID)
	assert.NoError(t, err)
}
