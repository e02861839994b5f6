package obj

// EventKind identifies what happened to the player during a tick.
type EventKind string

const (
	EventJumped     EventKind = "jumped"
	EventWallJumped EventKind = "wall_jumped"
	EventDashed     EventKind = "dashed"
	EventLanded     EventKind = "landed"
	EventWallHit    EventKind = "wall_hit"
	EventTeleported EventKind = "teleported"
	EventUnstuck    EventKind = "unstuck"
	EventDied       EventKind = "died"
)

// Event records a player event and where it happened.
type Event struct {
	Kind EventKind
	X, Y float64
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
