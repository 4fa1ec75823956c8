package puzzle

import (
	"fmt"
	"math"
)

type TimerState int

const (
	NotStarted TimerState = iota
	Running
	Stopped
)

func (s TimerState) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "not_started"
	}
}

// Tracker counts elapsed seconds once the player has touched a piece. Idle
// viewing time is never counted and a stopped tracker only restarts through Reset.
type Tracker struct {
	state   TimerState
	elapsed int
}

// Start sets the interaction latch. It reports true only on the first call.
func (t *Tracker) Start() bool {
	if t.state != NotStarted {
		return false
	}
	t.state = Running
	return true
}

func (t *Tracker) Tick() {
	if t.state == Running {
		t.elapsed++
	}
}

// Stop freezes the timer. It reports true only the first time.
func (t *Tracker) Stop() bool {
	if t.state == Stopped {
		return false
	}
	t.state = Stopped
	return true
}

func (t *Tracker) Reset() {
	*t = Tracker{}
}

func (t *Tracker) State() TimerState {
	return t.state
}

func (t *Tracker) Elapsed() int {
	return t.elapsed
}

// Progress returns the rounded share of locked pieces and whether every piece
// is locked. An empty collection is never complete.
func Progress(pieces []Piece) (int, bool) {
	total := len(pieces)
	if total == 0 {
		return 0, false
	}
	locked := 0
	for _, p := range pieces {
		if p.Locked {
			locked++
		}
	}
	pct := int(math.Round(float64(locked) / float64(total) * 100))
	if locked < total && pct == 100 {
		pct = 99
	}
	return pct, locked == total
}

// FormatElapsed renders seconds as mm:ss.
func FormatElapsed(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
