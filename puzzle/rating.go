package puzzle

// Star thresholds in seconds per piece.
const (
	threeStarPace = 4.0
	twoStarPace   = 7.0
)

// Stars rates a finished level from 1 to 3 by average seconds per piece.
func Stars(elapsedSeconds, gridSize int) int {
	pieces := gridSize * gridSize
	if pieces <= 0 {
		return 1
	}
	pace := float64(elapsedSeconds) / float64(pieces)
	switch {
	case pace <= threeStarPace:
		return 3
	case pace <= twoStarPace:
		return 2
	default:
		return 1
	}
}
