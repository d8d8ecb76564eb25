package drilldown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetCreatesAndReuses(t *testing.T) {
	store := NewStore(time.Minute, time.Minute, nil)

	s1 := store.Get("admin1")
	s1.SelectCategory("cat1")

	s2 := store.Get("admin1")
	assert.Equal(t, "cat1", s2.CategoryID)
	assert.Equal(t, 1, store.Len())

	store.Get("admin2")
	assert.Equal(t, 2, store.Len())
}

func TestStoreUpdate(t *testing.T) {
	store := NewStore(time.Minute, time.Minute, nil)

	err := store.Update("admin1", func(s *State) error {
		s.SelectCategory("cat1")
		_, err := s.SelectCourse("c1")
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, LevelCourse, store.Get("admin1").Depth())
}

func TestStoreSweepExpiresIdleSessions(t *testing.T) {
	store := NewStore(10*time.Millisecond, time.Minute, nil)

	store.Get("stale")
	time.Sleep(20 * time.Millisecond)
	store.Get("fresh")

	store.sweep(time.Now())

	assert.Equal(t, 1, store.Len())
	// the fresh session kept its state slot
	assert.Equal(t, LevelRoot, store.Get("fresh").Depth())
}

func TestStoreDrop(t *testing.T) {
	store := NewStore(time.Minute, time.Minute, nil)
	store.Get("admin1")

	store.Drop("admin1")

	assert.Equal(t, 0, store.Len())
}

func TestStoreStopIsIdempotent(t *testing.T) {
	store := NewStore(time.Minute, time.Millisecond, nil)
	store.Start()

	store.Stop()
	store.Stop()
}
