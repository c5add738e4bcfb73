// Package lifecycle delivers application lifecycle events to subscribers.
package lifecycle

import (
	"slices"
	"sync"

	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

type subscription struct {
	token   ports.Token
	event   ports.LifecycleEvent
	handler func(ports.LifecycleEvent)
}

// Notifier is an in-process ports.LifecycleSource. Post delivers an event to
// every current subscriber synchronously, in subscription order.
type Notifier struct {
	mu   sync.Mutex
	next ports.Token
	subs []subscription
}

// NewNotifier creates a notifier with no subscribers.
func NewNotifier() *Notifier {
	return &Notifier{}
}

var defaultNotifier = NewNotifier()

// Default returns the process-wide notifier fed by WatchSignals in the
// service binary.
func Default() *Notifier {
	return defaultNotifier
}

// Subscribe implements ports.LifecycleSource.
func (n *Notifier) Subscribe(event ports.LifecycleEvent, handler func(ports.LifecycleEvent)) ports.Token {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.next++
	n.subs = append(n.subs, subscription{token: n.next, event: event, handler: handler})

	return n.next
}

// Unsubscribe implements ports.LifecycleSource. Unknown tokens are ignored.
func (n *Notifier) Unsubscribe(token ports.Token) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.subs = slices.DeleteFunc(n.subs, func(s subscription) bool {
		return s.token == token
	})
}

// Post delivers event and returns once every handler has returned.
// Handlers run without the notifier lock held, so they may unsubscribe.
// A handler that waits on work queued behind the caller deadlocks; a
// controller's flush waits on its main context, so Post must not be called
// from a job running on that context.
func (n *Notifier) Post(event ports.LifecycleEvent) {
	n.mu.Lock()
	var handlers []func(ports.LifecycleEvent)
	for _, s := range n.subs {
		if s.event == event {
			handlers = append(handlers, s.handler)
		}
	}
	n.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.subs)
}

var _ ports.LifecycleSource = (*Notifier)(nil)
