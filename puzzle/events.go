package puzzle

// EventKind identifies session events.
type EventKind string

const (
	EventLoaded       EventKind = "loaded"
	EventLoadFailed   EventKind = "load_failed"
	EventTimerStarted EventKind = "timer_started"
	EventLocked       EventKind = "locked"
	EventProgress     EventKind = "progress"
	EventCompleted    EventKind = "completed"
	EventRestarted    EventKind = "restarted"
)

// Event is emitted by a Session. Only the fields relevant to Kind are set.
type Event struct {
	Kind     EventKind
	LevelID  int
	PieceID  int
	Progress int
	Elapsed  int
	Stars    int
	Err      error
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
