package hagelin

import "slices"

// A Change announces that a named property of the machine now holds a new
// value. Names follow the property surface: "Bar5CamTypes",
// "Wheel2InitialState", "SelectedWheels" and so on.
type Change struct {
	// Seq increases monotonically per Notifier so listeners can order changes.
	Seq   uint64 `json:"seq"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// ChangeHandler receives changes synchronously on the mutating call stack.
type ChangeHandler func(Change)

// Notifier fans changes out to listeners in registration order. It is not
// safe for concurrent use; the machine has a single writer.
type Notifier struct {
	handlers    map[string][]subscription
	allHandlers []subscription
	nextID      uint64
	seq         uint64
	suppressed  int
}

type subscription struct {
	id uint64
	h  ChangeHandler
}

func newNotifier() *Notifier {
	return &Notifier{handlers: make(map[string][]subscription)}
}

func (n *Notifier) subscribe(h ChangeHandler) subscription {
	n.nextID++
	return subscription{id: n.nextID, h: h}
}

func withoutSubscription(subs []subscription, id uint64) []subscription {
	return slices.DeleteFunc(subs, func(s subscription) bool { return s.id == id })
}

// On registers a handler for one property name.
// Returns an unsubscribe function.
func (n *Notifier) On(name string, h ChangeHandler) func() {
	sub := n.subscribe(h)
	n.handlers[name] = append(n.handlers[name], sub)
	return func() { n.handlers[name] = withoutSubscription(n.handlers[name], sub.id) }
}

// OnAll registers a handler that receives every change.
// Returns an unsubscribe function.
func (n *Notifier) OnAll(h ChangeHandler) func() {
	sub := n.subscribe(h)
	n.allHandlers = append(n.allHandlers, sub)
	return func() { n.allHandlers = withoutSubscription(n.allHandlers, sub.id) }
}

// Suppressed reports whether notifications are currently swallowed.
func (n *Notifier) Suppressed() bool {
	return n.suppressed > 0
}

// Suppress swallows notifications until the returned release is called.
// Calls nest; release is idempotent so it is safe to defer.
func (n *Notifier) Suppress() (release func()) {
	n.suppressed++
	done := false
	return func() {
		if done {
			return
		}
		done = true
		n.suppressed--
	}
}

func (n *Notifier) emit(name string, value any) {
	if n.suppressed > 0 {
		return
	}
	n.seq++
	c := Change{Seq: n.seq, Name: name, Value: value}
	// Copies keep dispatch stable when a handler unsubscribes itself.
	for _, sub := range slices.Clone(n.handlers[name]) {
		sub.h(c)
	}
	for _, sub := range slices.Clone(n.allHandlers) {
		sub.h(c)
	}
}
