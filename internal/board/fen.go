package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN for the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FromFEN parses a FEN string into a Board. This is the only Board
// constructor that performs a full AttackerSet rebuild; every mutation
// after that (via Make) maintains the set incrementally.
func FromFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: need at least 4 space-separated fields, got %d", ErrInvalidFEN, len(fields))
	}

	b := EmptyBoard()

	if err := parsePlacement(b, fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		b.side = White
	case "b":
		b.side = Black
	default:
		return nil, fmt.Errorf("%w: bad side to move %q", ErrInvalidFEN, fields[1])
	}

	if err := parseCastling(b, fields[2]); err != nil {
		return nil, err
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: bad en passant square %q: %v", ErrInvalidFEN, fields[3], err)
		}
		b.ep = sq
	}

	if len(fields) > 4 {
		if hm, err := strconv.Atoi(fields[4]); err == nil {
			b.halfmove = hm
		}
	}
	if len(fields) > 5 {
		if fm, err := strconv.Atoi(fields[5]); err == nil {
			b.fullmove = fm
		}
	}

	b.data.RebuildAttacks()
	return b, nil
}

func parsePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: placement field needs 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range []byte(rankStr) {
			if file > 7 {
				return fmt.Errorf("%w: rank %d overflows the board", ErrInvalidFEN, rank+1)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece, color, ok := pieceFromChar(c)
			if !ok {
				return fmt.Errorf("%w: unrecognized piece letter %q", ErrInvalidFEN, string(c))
			}
			sq := NewSquare(file, rank)
			if _, err := b.data.AddPiece(piece, color, sq, false); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidFEN, err)
			}
			file++
		}
		if file != 8 {
			return fmt.Errorf("%w: rank %d does not cover all 8 files", ErrInvalidFEN, rank+1)
		}
	}
	return nil
}

func parseCastling(b *Board, s string) error {
	if s == "-" {
		b.castle = NoCastling
		return nil
	}
	for _, c := range []byte(s) {
		switch c {
		case 'K':
			b.castle |= WhiteKingside
		case 'Q':
			b.castle |= WhiteQueenside
		case 'k':
			b.castle |= BlackKingside
		case 'q':
			b.castle |= BlackQueenside
		default:
			return fmt.Errorf("%w: unrecognized castling flag %q", ErrInvalidFEN, string(c))
		}
	}
	return nil
}

// ToFEN renders the board back to FEN notation.
func (b *Board) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			pt, color, ok := b.data.PieceAt(sq)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(pieceChar(pt, color))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	if b.side == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(b.castle.String())
	sb.WriteByte(' ')
	sb.WriteString(b.ep.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmove))
	return sb.String()
}
