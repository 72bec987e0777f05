package hop

// Change describes a successful mutation.
type Change struct {
	Field string
}

// Listener receives the mutated hop and the change.
type Listener func(*Hop, Change)

type subscription struct {
	fn Listener
}

// Subscribe registers fn for every successful mutation and returns a function
// that removes it. Listeners run synchronously, in registration order.
func (h *Hop) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	sub := &subscription{fn: fn}
	h.listeners = append(h.listeners, sub)
	return func() {
		for i, s := range h.listeners {
			if s == sub {
				h.listeners = append(h.listeners[:i:i], h.listeners[i+1:]...)
				return
			}
		}
	}
}

func (h *Hop) changed(field string) {
	if len(h.listeners) == 0 {
		return
	}
	change := Change{Field: field}
	for _, s := range append([]*subscription(nil), h.listeners...) {
		s.fn(h, change)
	}
}
