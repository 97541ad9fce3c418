package board

// Make applies m to the board and returns the resulting position as a new
// Board, leaving the receiver untouched. Dispatch follows m.Kind: a plain
// relocation, a capture (remove then move), castling (move the rook, then
// the king), en passant (remove the passed pawn, then move the capturer),
// or a promotion (remove the pawn, add the promoted piece).
func (b *Board) Make(m Move) *Board {
	movedPiece, _, _ := b.PieceAt(m.From)
	nb := b.Clone()

	switch m.Kind {
	case MoveNormal:
		nb.data.MovePiece(m.From, m.Dest, true)
		nb.ep = NoSquare

	case MoveDoublePush:
		nb.data.MovePiece(m.From, m.Dest, true)
		behind, ok := m.From.relativeNorth(b.side)
		if !ok {
			panic("board: make: double push source has no relative-north square")
		}
		nb.ep = behind

	case MoveCapture:
		id, ok := nb.data.IdentityAt(m.Dest)
		if !ok {
			panic("board: make: capture destination square is empty")
		}
		nb.data.RemovePiece(id, true)
		nb.data.MovePiece(m.From, m.Dest, true)
		nb.ep = NoSquare

	case MoveCastle:
		nb.makeCastle(m)
		nb.ep = NoSquare

	case MoveEnPassant:
		capturedSq, ok := m.Dest.relativeSouth(b.side)
		if !ok {
			panic("board: make: en passant capture square is off board")
		}
		id, ok2 := nb.data.IdentityAt(capturedSq)
		if !ok2 {
			panic("board: make: en passant capture square is empty")
		}
		nb.data.RemovePiece(id, true)
		nb.data.MovePiece(m.From, m.Dest, true)
		nb.ep = NoSquare

	case MovePromotion:
		pawnID, ok := nb.data.IdentityAt(m.From)
		if !ok {
			panic("board: make: promotion source square is empty")
		}
		nb.data.RemovePiece(pawnID, true)
		if _, err := nb.data.AddPiece(m.Promotion, b.side, m.Dest, true); err != nil {
			panic(err)
		}
		nb.ep = NoSquare

	case MoveCapturePromotion:
		pawnID, ok := nb.data.IdentityAt(m.From)
		if !ok {
			panic("board: make: capture-promotion source square is empty")
		}
		victimID, ok2 := nb.data.IdentityAt(m.Dest)
		if !ok2 {
			panic("board: make: capture-promotion destination square is empty")
		}
		nb.data.RemovePiece(pawnID, true)
		nb.data.RemovePiece(victimID, true)
		if _, err := nb.data.AddPiece(m.Promotion, b.side, m.Dest, true); err != nil {
			panic(err)
		}
		nb.ep = NoSquare
	}

	nb.updateCastlingRights(m)

	if movedPiece == Pawn || m.IsCapture() {
		nb.halfmove = 0
	} else {
		nb.halfmove++
	}
	if b.side == Black {
		nb.fullmove++
	}
	nb.side = b.side.Other()

	return nb
}

// makeCastle relocates the rook to its post-castle square and then the king,
// per the usual castling convention.
func (nb *Board) makeCastle(m Move) {
	rank := m.From.Rank()
	var rookFrom, rookTo Square
	if m.Dest.File() == G1.File() {
		rookFrom = NewSquare(H1.File(), rank)
		rookTo = NewSquare(F1.File(), rank)
	} else {
		rookFrom = NewSquare(A1.File(), rank)
		rookTo = NewSquare(D1.File(), rank)
	}
	nb.data.MovePiece(rookFrom, rookTo, true)
	nb.data.MovePiece(m.From, m.Dest, true)
}

// updateCastlingRights clears castling rights invalidated by m: a king
// move forfeits both of that side's rights, and a rook either leaving or
// being captured on its home square forfeits that one right.
func (nb *Board) updateCastlingRights(m Move) {
	switch m.From {
	case E1:
		nb.castle &^= WhiteKingside | WhiteQueenside
	case E8:
		nb.castle &^= BlackKingside | BlackQueenside
	}
	for _, sq := range [2]Square{m.From, m.Dest} {
		switch sq {
		case A1:
			nb.castle &^= WhiteQueenside
		case H1:
			nb.castle &^= WhiteKingside
		case A8:
			nb.castle &^= BlackQueenside
		case H8:
			nb.castle &^= BlackKingside
		}
	}
}
