// SPDX-License-Identifier: EPL-2.0

package transport

// Event is a state change reported to listeners.
type Event int

const (
	EventLoaded Event = iota
	EventStarted
	EventStopped
)

func (e Event) String() string {
	switch e {
	case EventLoaded:
		return "loaded"
	case EventStarted:
		return "started"
	case EventStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Listener receives transport events.
type Listener struct {
	C chan Event
}

// Subscribe registers a new listener. Events are dropped for a listener
// whose buffer is full.
func (t *Transport) Subscribe() *Listener {
	l := &Listener{C: make(chan Event, 16)}
	t.mu.Lock()
	t.listeners[l] = struct{}{}
	t.mu.Unlock()
	return l
}

// Unsubscribe removes l and closes its channel.
func (t *Transport) Unsubscribe(l *Listener) {
	t.mu.Lock()
	_, ok := t.listeners[l]
	delete(t.listeners, l)
	t.mu.Unlock()
	if ok {
		close(l.C)
	}
}

func (t *Transport) notify(e Event) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for l := range t.listeners {
		select {
		case l.C <- e:
		default:
		}
	}
}
