// Package puzzle holds the jigsaw engine: piece layout, drag and snap rules,
// the completion timer and star rating.
package puzzle

import "github.com/milk9111/zensnap/slicer"

// Rotations are the only angles a piece can take, in degrees.
var Rotations = [...]int{0, 90, 180, 270}

// Piece is one tile on the puzzle area. X and Y are in area coordinates whose
// origin is the board's top-left corner; the staging tray lies below the board
// in the same space.
type Piece struct {
	ID       int
	Row, Col int
	X, Y     float64
	Rotation int
	Locked   bool
	Tile     *slicer.Tile
	Z        int
}

// Target returns the board-local origin of the piece's correct cell.
func (p Piece) Target(cell float64) (float64, float64) {
	return float64(p.Col) * cell, float64(p.Row) * cell
}

// Contains reports whether the area point (x, y) lies on the piece. A quarter
// turn keeps a square in the same box, so rotation does not matter.
func (p Piece) Contains(x, y, cell float64) bool {
	return x >= p.X && x < p.X+cell && y >= p.Y && y < p.Y+cell
}

// Rect is an axis-aligned rectangle in pointer coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Geometry is the pixel layout of the board and the staging tray beneath it.
type Geometry struct {
	BoardSize  float64
	TrayWidth  float64
	TrayHeight float64
	// TrayGap separates the bottom of the board from the top of the tray.
	TrayGap float64
}

// DefaultGeometry matches the stock 480px board.
func DefaultGeometry() Geometry {
	return Geometry{BoardSize: 480, TrayWidth: 480, TrayHeight: 200, TrayGap: 20}
}

func (g Geometry) CellSize(gridSize int) float64 {
	if gridSize <= 0 {
		return 0
	}
	return g.BoardSize / float64(gridSize)
}

// TrayTop is the area y coordinate where the staging tray starts.
func (g Geometry) TrayTop() float64 {
	return g.BoardSize + g.TrayGap
}

// AreaSize is the full width and height of board plus tray.
func (g Geometry) AreaSize() (float64, float64) {
	return max(g.BoardSize, g.TrayWidth), g.TrayTop() + g.TrayHeight
}
