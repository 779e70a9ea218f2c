// Package notify delivers store outcome messages.
package notify

import (
	"sync"

	"gleaming-gallery/internal/domain"

	"go.uber.org/zap"
)

// LogNotifier writes notifications to a zap logger.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notify")}
}

// Notify logs success at Info and errors at Warn.
func (n *LogNotifier) Notify(kind domain.NotificationKind, message string) {
	if kind == domain.NotificationError {
		n.logger.Warn(message, zap.String("kind", string(kind)))
		return
	}
	n.logger.Info(message, zap.String("kind", string(kind)))
}

// Recorder keeps the most recent notifications in memory.
type Recorder struct {
	mu    sync.Mutex
	limit int
	items []domain.Notification
}

// NewRecorder keeps at most limit notifications. A limit of zero or less
// keeps all of them.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) Notify(kind domain.NotificationKind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, domain.Notification{Kind: kind, Message: message})
	if r.limit > 0 && len(r.items) > r.limit {
		r.items = r.items[len(r.items)-r.limit:]
	}
}

// Notifications returns a copy of the recorded notifications, oldest first.
func (r *Recorder) Notifications() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Last returns the most recent notification.
func (r *Recorder) Last() (domain.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.items) == 0 {
		return domain.Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}

// Notifier is anything that accepts notifications.
type Notifier interface {
	Notify(kind domain.NotificationKind, message string)
}

// Fanout forwards every notification to each of its notifiers in order.
type Fanout []Notifier

func (f Fanout) Notify(kind domain.NotificationKind, message string) {
	for _, n := range f {
		n.Notify(kind, message)
	}
}
