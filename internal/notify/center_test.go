package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

func TestPushAndList(t *testing.T) {
	center := NewCenter(time.Minute, time.Minute, 10, nil)

	center.Push("u1", models.NotifyInfo, "welcome")
	center.Push("u1", models.NotifySuccess, "enrolled")
	center.Push("u2", models.NotifyWarning, "deadline soon")

	got := center.List("u1")
	require.Len(t, got, 2)
	// newest first
	assert.Equal(t, "enrolled", got[0].Message)
	assert.Equal(t, "welcome", got[1].Message)

	assert.Len(t, center.List("u2"), 1)
	assert.Empty(t, center.List("nobody"))
}

func TestPushEvictsOldestBeyondCap(t *testing.T) {
	center := NewCenter(time.Minute, time.Minute, 3, nil)

	for i := 1; i <= 5; i++ {
		center.Push("u1", models.NotifyInfo, fmt.Sprintf("msg %d", i))
	}

	got := center.List("u1")
	require.Len(t, got, 3)
	for _, n := range got {
		assert.NotEqual(t, "msg 1", n.Message)
		assert.NotEqual(t, "msg 2", n.Message)
	}
}

func TestListFiltersExpired(t *testing.T) {
	center := NewCenter(5*time.Millisecond, time.Minute, 10, nil)

	center.Push("u1", models.NotifyInfo, "ephemeral")
	time.Sleep(10 * time.Millisecond)

	assert.Empty(t, center.List("u1"))
}

func TestDismiss(t *testing.T) {
	center := NewCenter(time.Minute, time.Minute, 10, nil)

	n := center.Push("u1", models.NotifyInfo, "one")
	center.Push("u1", models.NotifyInfo, "two")

	assert.True(t, center.Dismiss("u1", n.ID))
	assert.False(t, center.Dismiss("u1", n.ID))
	assert.Len(t, center.List("u1"), 1)
}

func TestDismissAll(t *testing.T) {
	center := NewCenter(time.Minute, time.Minute, 10, nil)
	center.Push("u1", models.NotifyInfo, "one")
	center.Push("u1", models.NotifyInfo, "two")

	center.DismissAll("u1")

	assert.Empty(t, center.List("u1"))
}

func TestSweepRemovesExpiredEntries(t *testing.T) {
	center := NewCenter(5*time.Millisecond, time.Minute, 10, nil)
	center.Push("u1", models.NotifyInfo, "stale")

	center.sweep(time.Now().Add(time.Second))

	center.mu.Lock()
	defer center.mu.Unlock()
	assert.Empty(t, center.byUser)
}

func TestStopIsIdempotent(t *testing.T) {
	center := NewCenter(time.Minute, time.Millisecond, 10, nil)
	center.Start()

	center.Stop()
	center.Stop()
}
