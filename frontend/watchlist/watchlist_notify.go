package watchlist

import (
	"sync"
	"time"

	"watchlist/models"
)

// Notifier surfaces transient messages to the user.
type Notifier interface {
	Notify(message string, kind models.NotificationKind)
}

// FlashNotifier keeps the latest notification until it expires.
type FlashNotifier struct {
	mu      sync.Mutex
	current *models.Notification
	ttl     time.Duration
	now     func() time.Time
}

func NewFlashNotifier(ttl time.Duration) *FlashNotifier {
	return &FlashNotifier{ttl: ttl, now: time.Now}
}

func (n *FlashNotifier) Notify(message string, kind models.NotificationKind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = &models.Notification{
		Message:   message,
		Kind:      kind,
		ExpiresAt: n.now().Add(n.ttl),
	}
}

// Current returns the live notification, if any.
func (n *FlashNotifier) Current() (models.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return models.Notification{}, false
	}
	if n.current.Expired(n.now()) {
		n.current = nil
		return models.Notification{}, false
	}
	return *n.current, true
}
