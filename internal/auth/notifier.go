package auth

import (
	"sync"

	"github.com/sunucargo/platform/internal/metrics"
)

// Auth state change events delivered to subscribers.
const (
	EventSignedIn  = "SIGNED_IN"
	EventSignedOut = "SIGNED_OUT"
)

// Callback receives every future auth state change in publish order.
// The session is nil for sign-out events.
type Callback func(event string, session *Session)

type subscriber struct {
	id int
	cb Callback
}

// Notifier is the publish/subscribe channel for auth state changes. It
// is an explicit component owned by one Service instance, not process
// global state; dispose of it by dropping the owning Service.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs []subscriber
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers cb for every future event. Delivery is
// synchronous and in registration order. The returned subscription
// unregisters exactly this callback.
func (n *Notifier) Subscribe(cb Callback) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.next++
	id := n.next
	n.subs = append(n.subs, subscriber{id: id, cb: cb})
	return &Subscription{notifier: n, id: id}
}

// Publish delivers an event to every current subscriber.
func (n *Notifier) Publish(event string, session *Session) {
	n.mu.Lock()
	subs := make([]subscriber, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	metrics.AuthEventsTotal.WithLabelValues(event).Inc()
	for _, s := range subs {
		s.cb(event, session)
	}
}

func (n *Notifier) unsubscribe(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, s := range n.subs {
		if s.id == id {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			return
		}
	}
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	notifier *Notifier
	id       int
	once     sync.Once
}

// Unsubscribe removes the callback. Idempotent.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.notifier.unsubscribe(s.id)
	})
}
