// Package progress persists the player's best results.
package progress

import "maps"

// UserProgress is the persisted record. HighestLevel never decreases and a
// level's stars are only ever raised.
type UserProgress struct {
	HighestLevel int         `json:"highestLevel"`
	Stars        map[int]int `json:"stars"`
}

// Default is the record of a player who has not finished anything.
func Default() UserProgress {
	return UserProgress{HighestLevel: 1, Stars: map[int]int{}}
}

func (p UserProgress) Clone() UserProgress {
	out := UserProgress{HighestLevel: p.HighestLevel, Stars: make(map[int]int, len(p.Stars))}
	maps.Copy(out.Stars, p.Stars)
	return out
}

// StarsFor returns the best rating for level, or 0 if it was never finished.
func (p UserProgress) StarsFor(level int) int {
	return p.Stars[level]
}

// Apply folds one completion into the record. Finishing the current highest
// level unlocks the next one; stars are kept only when they beat the old best.
func (p UserProgress) Apply(levelID, stars int) (UserProgress, bool) {
	next := p.Clone()
	changed := false
	if levelID == next.HighestLevel {
		next.HighestLevel = levelID + 1
		changed = true
	}
	if stars >= 1 && stars <= 3 && stars > next.Stars[levelID] {
		next.Stars[levelID] = stars
		changed = true
	}
	return next, changed
}

// sanitize repairs values a hand-edited or stale record may carry.
func (p UserProgress) sanitize() UserProgress {
	out := p.Clone()
	if out.HighestLevel < 1 {
		out.HighestLevel = 1
	}
	for level, stars := range out.Stars {
		if level < 1 || stars < 1 || stars > 3 {
			delete(out.Stars, level)
		}
	}
	return out
}
