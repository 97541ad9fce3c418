package board

// BoardData owns the four mutually-consistent tables that describe where
// pieces are and what they attack: PieceMask (identity -> type), PieceList
// (identity -> square), SquareIndex (square -> identity), and AttackerSet
// (square -> attacking identities). All mutation goes through AddPiece,
// RemovePiece, and MovePiece, which keep the tables in lockstep and update
// AttackerSet incrementally rather than recomputing it from scratch.
type BoardData struct {
	bitlist   AttackerSet
	piecelist PieceList
	index     SquareIndex
	mask      PieceMask
}

// NewBoardData returns an empty board (no pieces, no attackers).
func NewBoardData() BoardData {
	return BoardData{
		piecelist: NewPieceList(),
		index:     NewSquareIndex(),
	}
}

// IdentityAt reports the identity occupying sq, if any.
func (bd *BoardData) IdentityAt(sq Square) (PieceIdentity, bool) {
	return bd.index.Get(sq)
}

// HasPiece reports whether any piece occupies sq.
func (bd *BoardData) HasPiece(sq Square) bool {
	_, ok := bd.index.Get(sq)
	return ok
}

// SquareOf returns the square of a live identity. Panics if id is not live.
func (bd *BoardData) SquareOf(id PieceIdentity) Square {
	sq, ok := bd.piecelist.Get(id)
	if !ok {
		panic("board: square_of called on a dead identity")
	}
	return sq
}

// PieceOfIdentity returns the type of a live identity. Panics if id is not live.
func (bd *BoardData) PieceOfIdentity(id PieceIdentity) PieceType {
	pt, ok := bd.mask.PieceOf(id)
	if !ok {
		panic("board: piece_of called on a dead identity")
	}
	return pt
}

// PieceAt reports the type and color of the piece at sq, if any.
func (bd *BoardData) PieceAt(sq Square) (PieceType, Color, bool) {
	id, ok := bd.index.Get(sq)
	if !ok {
		return NoPieceType, White, false
	}
	pt, _ := bd.mask.PieceOf(id)
	return pt, colorOf(id), true
}

// AttackersOf returns the identities of color attacking sq.
func (bd *BoardData) AttackersOf(sq Square, color Color) IdentitySet {
	return bd.bitlist.AttackersOf(sq, color)
}

func (bd *BoardData) Pawns() IdentitySet   { return bd.mask.Pawns() }
func (bd *BoardData) Knights() IdentitySet { return bd.mask.Knights() }
func (bd *BoardData) Bishops() IdentitySet { return bd.mask.Bishops() }
func (bd *BoardData) Rooks() IdentitySet   { return bd.mask.Rooks() }
func (bd *BoardData) Queens() IdentitySet  { return bd.mask.Queens() }
func (bd *BoardData) Kings() IdentitySet   { return bd.mask.Kings() }

// PiecesOfColor returns the live identities belonging to c.
func (bd *BoardData) PiecesOfColor(c Color) IdentitySet {
	return bd.mask.PiecesOfColor(c)
}

// AddPiece creates a new piece of the given type and color at sq, returning
// its identity. When update is true the AttackerSet is extended: the new
// piece's own attacks are emitted, and any slider whose ray now terminates
// at sq (because sq was previously empty and now blocks it) is truncated.
func (bd *BoardData) AddPiece(piece PieceType, color Color, sq Square, update bool) (PieceIdentity, error) {
	id, err := bd.mask.Add(piece, color)
	if err != nil {
		return 0, err
	}
	bd.piecelist.Add(id, sq)
	bd.index.Add(sq, id)
	if update {
		bd.updateOwnAttacks(sq, id, piece, true)
		bd.updateSlidersThrough(sq, false)
	}
	return id, nil
}

// RemovePiece takes identity id off the board. When update is true its own
// attacks are erased and any slider whose ray was blocked at sq is extended
// through the now-vacant square.
func (bd *BoardData) RemovePiece(id PieceIdentity, update bool) {
	sq := bd.SquareOf(id)
	piece := bd.PieceOfIdentity(id)
	bd.mask.Remove(id)
	bd.piecelist.Remove(id, sq)
	bd.index.Remove(sq, id)
	if update {
		bd.updateOwnAttacks(sq, id, piece, false)
		bd.updateSlidersThrough(sq, true)
	}
}

// MovePiece relocates the piece on from to to. The erase/extend/update/
// emit/truncate ordering below is load-bearing: attacks are erased from the
// departure square and that square's ray is extended before the tables
// change, and the arrival square's attacks are emitted and its ray truncated
// only after the tables reflect the new position.
func (bd *BoardData) MovePiece(from, to Square, update bool) {
	id, ok := bd.index.Get(from)
	if !ok {
		panic("board: move_piece from an empty square")
	}
	piece := bd.PieceOfIdentity(id)

	if update {
		bd.updateOwnAttacks(from, id, piece, false)
		bd.updateSlidersThrough(from, true)
	}

	bd.piecelist.Move(id, to)
	bd.index.Move(from, to, id)

	if update {
		bd.updateOwnAttacks(to, id, piece, true)
		bd.updateSlidersThrough(to, false)
	}
}

// RebuildAttacks recomputes the entire AttackerSet from the current
// placement. Used only by FEN parsing; every later mutation is incremental.
func (bd *BoardData) RebuildAttacks() {
	for sq := Square(0); sq < 64; sq++ {
		bd.bitlist.Clear(sq)
	}
	for sq := Square(0); sq < 64; sq++ {
		id, ok := bd.index.Get(sq)
		if !ok {
			continue
		}
		bd.updateOwnAttacks(sq, id, bd.PieceOfIdentity(id), true)
	}
}

// updateOwnAttacks emits (add=true) or erases (add=false) the squares a
// piece of the given type on sq attacks.
func (bd *BoardData) updateOwnAttacks(sq Square, id PieceIdentity, piece PieceType, add bool) {
	apply := func(dest Square) {
		if add {
			bd.bitlist.Add(dest, id)
		} else {
			bd.bitlist.Remove(dest, id)
		}
	}
	switch piece {
	case Pawn:
		for _, dest := range pawnAttackTable[colorOf(id)][sq] {
			apply(dest)
		}
	case Knight:
		for _, dest := range knightAttackTable[sq] {
			apply(dest)
		}
	case King:
		for _, dest := range kingAttackTable[sq] {
			apply(dest)
		}
	case Bishop:
		bd.slide(sq, bishopRays[:], apply)
	case Rook:
		bd.slide(sq, rookRays[:], apply)
	case Queen:
		bd.slide(sq, queenRays[:], apply)
	}
}

// slide walks each ray from sq, applying fn to every square up to and
// including the first occupied square.
func (bd *BoardData) slide(sq Square, rays []Direction, fn func(Square)) {
	for _, dir := range rays {
		it := sq.Ray(dir)
		for {
			dest, ok := it.Next()
			if !ok {
				break
			}
			fn(dest)
			if bd.HasPiece(dest) {
				break
			}
		}
	}
}

// updateSlidersThrough re-propagates every slider whose ray passes through
// sq, extending it past sq (extending=true, sq just became empty) or
// truncating it at sq (extending=false, sq just became occupied).
func (bd *BoardData) updateSlidersThrough(sq Square, extending bool) {
	sliders := bd.bitlist[sq] & (bd.mask.Bishops() | bd.mask.Rooks() | bd.mask.Queens())
	for {
		id, ok := sliders.PopLSB()
		if !ok {
			break
		}
		attackerSq, ok2 := bd.piecelist.Get(id)
		if !ok2 {
			continue
		}
		dir, ok3 := attackerSq.DirectionTo(sq)
		if !ok3 {
			continue
		}
		it := sq.Ray(dir)
		for {
			dest, ok4 := it.Next()
			if !ok4 {
				break
			}
			if extending {
				bd.bitlist.Add(dest, id)
			} else {
				bd.bitlist.Remove(dest, id)
			}
			if bd.HasPiece(dest) {
				break
			}
		}
	}
}
