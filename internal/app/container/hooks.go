package container

import (
	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

// flushEvents are the lifecycle events that trigger a save of the main
// context.
var flushEvents = []ports.LifecycleEvent{
	ports.EventEnteringBackground,
	ports.EventTerminating,
}

// hooks holds the controller's lifecycle subscriptions.
type hooks struct {
	source ports.LifecycleSource
	tokens []ports.Token
}

// subscribeHooks subscribes handler to every flush event. A nil source
// subscribes nothing.
func subscribeHooks(source ports.LifecycleSource, handler func(ports.LifecycleEvent)) *hooks {
	h := &hooks{source: source}
	if source == nil {
		return h
	}

	for _, event := range flushEvents {
		h.tokens = append(h.tokens, source.Subscribe(event, handler))
	}

	return h
}

func (h *hooks) release() {
	for _, token := range h.tokens {
		h.source.Unsubscribe(token)
	}
	h.tokens = nil
}
