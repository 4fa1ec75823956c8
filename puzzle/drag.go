package puzzle

import "sort"

// CoordinateSpace reports where the puzzle area currently sits in pointer
// coordinates.
type CoordinateSpace interface {
	Bounds() Rect
}

// FixedSpace is a CoordinateSpace that never moves.
type FixedSpace Rect

func (f FixedSpace) Bounds() Rect {
	return Rect(f)
}

// DragController turns pointer gestures into session commands. A piece is
// Idle until a primary press lands on it, Active while the pointer is
// captured, and Idle again after release or cancel. Only one piece can be
// active because there is a single pointer.
type DragController struct {
	session *Session
	space   CoordinateSpace

	active  bool
	id      int
	offsetX float64
	offsetY float64
}

func NewDragController(session *Session, space CoordinateSpace) *DragController {
	return &DragController{session: session, space: space}
}

// Active returns the captured piece, if any.
func (d *DragController) Active() (int, bool) {
	return d.id, d.active
}

// Begin captures piece id under the pointer at (px, py).
func (d *DragController) Begin(id int, px, py float64) bool {
	if d.active {
		return false
	}
	p, ok := d.session.Piece(id)
	if !ok || p.Locked {
		return false
	}
	ax, ay := d.toArea(px, py)
	if !d.session.Begin(id) {
		return false
	}
	d.active = true
	d.id = id
	d.offsetX = ax - p.X
	d.offsetY = ay - p.Y
	return true
}

// Move drags the captured piece so the grab point follows the pointer.
func (d *DragController) Move(id int, px, py float64) bool {
	if !d.active || id != d.id {
		return false
	}
	ax, ay := d.toArea(px, py)
	return d.session.MoveTo(id, ax-d.offsetX, ay-d.offsetY)
}

// End releases the captured piece and reports whether it locked.
func (d *DragController) End(id int) bool {
	if !d.active || id != d.id {
		return false
	}
	d.active = false
	return d.session.Release(id)
}

// Cancel is treated like a release: the piece is still evaluated for a snap.
func (d *DragController) Cancel(id int) bool {
	return d.End(id)
}

// Rotate is independent of the drag state.
func (d *DragController) Rotate(id int) bool {
	return d.session.Rotate(id)
}

// Reset drops any capture, for use when the session restarts under the pointer.
func (d *DragController) Reset() {
	d.active = false
	d.offsetX, d.offsetY = 0, 0
}

// PieceAt returns the topmost unlocked piece under the pointer.
func (d *DragController) PieceAt(px, py float64) (int, bool) {
	ax, ay := d.toArea(px, py)
	pieces := d.session.store.Snapshot()
	sort.SliceStable(pieces, func(i, j int) bool {
		return pieces[i].Z > pieces[j].Z
	})
	cell := d.session.CellSize()
	for _, p := range pieces {
		if !p.Locked && p.Contains(ax, ay, cell) {
			return p.ID, true
		}
	}
	return 0, false
}

func (d *DragController) toArea(px, py float64) (float64, float64) {
	if d.space == nil {
		return px, py
	}
	b := d.space.Bounds()
	return px - b.X, py - b.Y
}
