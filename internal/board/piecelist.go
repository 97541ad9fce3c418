package board

// PieceList maps each live PieceIdentity to its current Square. It is the
// inverse of SquareIndex; the two must always agree.
type PieceList [32]Square

// NewPieceList returns a PieceList with every slot empty.
func NewPieceList() PieceList {
	var pl PieceList
	for i := range pl {
		pl[i] = NoSquare
	}
	return pl
}

// Get reports the square of id, if it is currently on the board.
func (pl PieceList) Get(id PieceIdentity) (Square, bool) {
	sq := pl[id]
	return sq, sq != NoSquare
}

// Add places id at sq. Panics if id's slot is already occupied.
func (pl *PieceList) Add(id PieceIdentity, sq Square) {
	if pl[id] != NoSquare {
		panic("board: piecelist add to occupied identity")
	}
	pl[id] = sq
}

// Remove clears id's slot. Panics if id was not at sq.
func (pl *PieceList) Remove(id PieceIdentity, sq Square) {
	if pl[id] != sq {
		panic("board: piecelist remove does not match recorded square")
	}
	pl[id] = NoSquare
}

// Move updates id's recorded square.
func (pl *PieceList) Move(id PieceIdentity, to Square) {
	if pl[id] == NoSquare {
		panic("board: piecelist move of unoccupied identity")
	}
	pl[id] = to
}
