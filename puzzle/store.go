package puzzle

// Store is the authoritative piece collection of one level attempt. Every
// mutation swaps in a new slice, so snapshots handed out earlier never change.
type Store struct {
	pieces []Piece
	nextZ  int
}

// NewStore takes ownership of pieces. The stacking counter starts above every
// initial Z so a raised piece always draws on top.
func NewStore(pieces []Piece, gridSize int) *Store {
	return &Store{pieces: pieces, nextZ: gridSize*gridSize + 1}
}

func (s *Store) Len() int {
	return len(s.pieces)
}

// Snapshot returns a copy of the collection.
func (s *Store) Snapshot() []Piece {
	out := make([]Piece, len(s.pieces))
	copy(out, s.pieces)
	return out
}

func (s *Store) Piece(id int) (Piece, bool) {
	idx := s.index(id)
	if idx < 0 {
		return Piece{}, false
	}
	return s.pieces[idx], true
}

// Update replaces piece id with fn's result.
func (s *Store) Update(id int, fn func(Piece) Piece) (Piece, bool) {
	idx := s.index(id)
	if idx < 0 {
		return Piece{}, false
	}
	next := make([]Piece, len(s.pieces))
	copy(next, s.pieces)
	next[idx] = fn(next[idx])
	next[idx].ID = id
	s.pieces = next
	return next[idx], true
}

// Raise moves piece id above every other piece.
func (s *Store) Raise(id int) (int, bool) {
	z := s.nextZ
	if _, ok := s.Update(id, func(p Piece) Piece {
		p.Z = z
		return p
	}); !ok {
		return 0, false
	}
	s.nextZ++
	return z, true
}

func (s *Store) LockedCount() int {
	n := 0
	for _, p := range s.pieces {
		if p.Locked {
			n++
		}
	}
	return n
}

func (s *Store) index(id int) int {
	if id >= 0 && id < len(s.pieces) && s.pieces[id].ID == id {
		return id
	}
	for i, p := range s.pieces {
		if p.ID == id {
			return i
		}
	}
	return -1
}
