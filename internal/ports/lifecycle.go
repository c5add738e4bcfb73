package ports

// LifecycleEvent names an application lifecycle transition.
type LifecycleEvent string

const (
	// EventEnteringBackground fires when the process is asked to persist its
	// state because it may be suspended.
	EventEnteringBackground LifecycleEvent = "entering_background"

	// EventTerminating fires when the process is about to exit.
	EventTerminating LifecycleEvent = "terminating"
)

// Token identifies one subscription so it can be released.
type Token uint64

// LifecycleSource delivers lifecycle events to subscribers.
type LifecycleSource interface {
	// Subscribe registers handler for event and returns a token for
	// Unsubscribe. Handlers run on the goroutine that delivers the event.
	Subscribe(event LifecycleEvent, handler func(LifecycleEvent)) Token

	// Unsubscribe releases a subscription. Unknown tokens are ignored.
	Unsubscribe(token Token)
}
