// Package notify keeps short-lived, per-user dashboard notifications in
// memory. Notifications expire after a TTL; a sweeper goroutine owned by
// the center removes them so reads never return stale entries.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

// Center stores notifications keyed by user. Each user keeps at most
// maxPerUser entries; pushing beyond the cap evicts the oldest.
type Center struct {
	mu         sync.Mutex
	byUser     map[string][]models.Notification
	ttl        time.Duration
	interval   time.Duration
	maxPerUser int
	logger     *zap.Logger
	stopCh     chan struct{}
	stopOnce   sync.Once
}

// NewCenter creates a notification center. Non-positive ttl, interval or
// cap fall back to sane defaults.
func NewCenter(ttl, interval time.Duration, maxPerUser int, logger *zap.Logger) *Center {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if interval <= 0 {
		interval = time.Minute
	}
	if maxPerUser <= 0 {
		maxPerUser = 50
	}
	return &Center{
		byUser:     make(map[string][]models.Notification),
		ttl:        ttl,
		interval:   interval,
		maxPerUser: maxPerUser,
		logger:     logger,
		stopCh:     make(chan struct{}),
	}
}

// Push stores a notification for the user and returns it with its ID and
// expiry filled in.
func (c *Center) Push(userID string, level models.NotificationLevel, message string) models.Notification {
	now := time.Now()
	n := models.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Level:     level,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	list := append(c.byUser[userID], n)
	if len(list) > c.maxPerUser {
		list = list[len(list)-c.maxPerUser:]
	}
	c.byUser[userID] = list
	return n
}

// List returns the user's live notifications, newest first. Expired
// entries are filtered out even if the sweeper has not run yet.
func (c *Center) List(userID string) []models.Notification {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	stored := c.byUser[userID]
	live := make([]models.Notification, 0, len(stored))
	for _, n := range stored {
		if n.ExpiresAt.After(now) {
			live = append(live, n)
		}
	}
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].CreatedAt.After(live[j].CreatedAt)
	})
	return live
}

// Dismiss removes one notification. It reports whether it existed.
func (c *Center) Dismiss(userID, notificationID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.byUser[userID]
	for i, n := range list {
		if n.ID == notificationID {
			c.byUser[userID] = append(list[:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// DismissAll clears the user's notifications.
func (c *Center) DismissAll(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byUser, userID)
}

// Start launches the expiry sweeper.
func (c *Center) Start() {
	go c.sweeper()
}

// Stop terminates the sweeper. Safe to call more than once.
func (c *Center) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *Center) sweeper() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.sweep(time.Now())
		}
	}
}

func (c *Center) sweep(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for userID, list := range c.byUser {
		kept := list[:0]
		for _, n := range list {
			if n.ExpiresAt.After(now) {
				kept = append(kept, n)
			} else {
				removed++
			}
		}
		if len(kept) == 0 {
			delete(c.byUser, userID)
		} else {
			c.byUser[userID] = kept
		}
	}
	if removed > 0 {
		c.logger.Debug("expired notifications", zap.Int("count", removed))
	}
}
