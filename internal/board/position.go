package board

import "strings"

// CastlingRights is a bitmask of the four castling privileges, mirroring
// FEN's KQkq notation.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// Has reports whether flag is set.
func (cr CastlingRights) Has(flag CastlingRights) bool { return cr&flag != 0 }

func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var b strings.Builder
	if cr.Has(WhiteKingside) {
		b.WriteByte('K')
	}
	if cr.Has(WhiteQueenside) {
		b.WriteByte('Q')
	}
	if cr.Has(BlackKingside) {
		b.WriteByte('k')
	}
	if cr.Has(BlackQueenside) {
		b.WriteByte('q')
	}
	return b.String()
}

// Board is a chess position: piece placement (via BoardData's incrementally
// maintained tables), side to move, castling rights, the en passant target
// square, and the two FEN move counters. Board is a plain value; cloning it
// (via Clone, or a Go value copy) is cheap because every field is a fixed-
// size array or scalar.
type Board struct {
	data BoardData

	side     Color
	castle   CastlingRights
	ep       Square
	halfmove int
	fullmove int
}

// EmptyBoard returns a board with no pieces, White to move, no castling
// rights, and no en passant square.
func EmptyBoard() *Board {
	return &Board{
		data:     NewBoardData(),
		side:     White,
		castle:   NoCastling,
		ep:       NoSquare,
		fullmove: 1,
	}
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

// SideToMove returns the color due to move.
func (b *Board) SideToMove() Color { return b.side }

// Castling returns the current castling rights.
func (b *Board) Castling() CastlingRights { return b.castle }

// EnPassant returns the current en passant target square, or NoSquare.
func (b *Board) EnPassant() Square { return b.ep }

// HalfmoveClock returns the halfmove clock carried from FEN.
func (b *Board) HalfmoveClock() int { return b.halfmove }

// FullmoveNumber returns the fullmove counter carried from FEN.
func (b *Board) FullmoveNumber() int { return b.fullmove }

// PieceAt reports the type and color of the piece on sq, if any.
func (b *Board) PieceAt(sq Square) (PieceType, Color, bool) {
	return b.data.PieceAt(sq)
}

func (b *Board) kingSquare(color Color) (Square, bool) {
	ids := b.data.Kings() & identityMaskForColor(color)
	id, ok := ids.Peek()
	if !ok {
		return NoSquare, false
	}
	return b.data.SquareOf(id), true
}

// InCheck reports whether the side to move's king is currently attacked.
func (b *Board) InCheck() bool {
	ksq, ok := b.kingSquare(b.side)
	if !ok {
		return false
	}
	return !b.data.AttackersOf(ksq, b.side.Other()).Empty()
}

// Illegal reports whether the position is illegal: the side NOT to move has
// its king under attack. Make never produces such a position from a legal
// move list, but it is a useful sanity check at trust boundaries such as
// hand-built test positions.
func (b *Board) Illegal() bool {
	ksq, ok := b.kingSquare(b.side.Other())
	if !ok {
		return false
	}
	return !b.data.AttackersOf(ksq, b.side).Empty()
}

func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte('1' + byte(rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			pt, color, ok := b.data.PieceAt(sq)
			if !ok {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(pieceChar(pt, color))
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	sb.WriteString(b.side.String())
	sb.WriteString(" to move, castling ")
	sb.WriteString(b.castle.String())
	sb.WriteString(", ep ")
	sb.WriteString(b.ep.String())
	sb.WriteByte('\n')
	return sb.String()
}
