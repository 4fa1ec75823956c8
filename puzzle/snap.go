package puzzle

import "math"

// SnapThreshold is the lock tolerance in pixels on each axis. It does not
// scale with the cell size.
const SnapThreshold = 32.0

// Snap decides whether a released piece locks into its cell. A locking piece
// is moved exactly onto its target; otherwise p is returned unchanged.
func Snap(p Piece, cell float64) (Piece, bool) {
	if p.Locked {
		return p, false
	}
	tx, ty := p.Target(cell)
	if math.Abs(p.X-tx) >= SnapThreshold || math.Abs(p.Y-ty) >= SnapThreshold || p.Rotation != 0 {
		return p, false
	}
	p.X, p.Y = tx, ty
	p.Locked = true
	return p, true
}
