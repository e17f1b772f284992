package game

// EventType names something that happened during a step.
type EventType string

const (
	EventJump            EventType = "jump"
	EventWallJump        EventType = "wall_jump"
	EventLanded          EventType = "landed"
	EventPickupCollected EventType = "pickup_collected"
	EventPowerExpired    EventType = "power_expired"
)

// Event is emitted by the systems of a step. Data depends on the type:
// the pickup index for EventPickupCollected, the wall side for EventWallJump,
// nil otherwise.
type Event struct {
	Type  EventType
	Frame int
	Data  any
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

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
