package puzzle

import (
	"math/rand/v2"

	"github.com/milk9111/zensnap/slicer"
)

// Scatter lays tiles out at random in the staging tray. Tile i belongs in row
// i/gridSize and column i%gridSize and starts with Z = i.
func Scatter(tiles []slicer.Tile, gridSize int, geo Geometry, rng *rand.Rand) []Piece {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	cell := geo.CellSize(gridSize)
	spanX := max(0, geo.TrayWidth-cell)
	spanY := max(0, geo.TrayHeight-cell-geo.TrayGap)
	top := geo.TrayTop()

	pieces := make([]Piece, len(tiles))
	for i := range tiles {
		pieces[i] = Piece{
			ID:       i,
			Row:      i / gridSize,
			Col:      i % gridSize,
			X:        rng.Float64() * spanX,
			Y:        top + rng.Float64()*spanY,
			Rotation: Rotations[rng.IntN(len(Rotations))],
			Tile:     &tiles[i],
			Z:        i,
		}
	}
	return pieces
}
