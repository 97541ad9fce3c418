package board

import (
	"errors"
	"testing"
)

func TestFromFENStartPositionRoundTrip(t *testing.T) {
	b, err := FromFEN(StartFEN)
	if err != nil {
		t.Fatalf("FromFEN(start): %v", err)
	}
	if got := b.ToFEN(); got != StartFEN {
		t.Errorf("round-trip = %q, want %q", got, StartFEN)
	}
	if b.SideToMove() != White {
		t.Errorf("side to move = %v, want White", b.SideToMove())
	}
	if b.Castling() != AllCastling {
		t.Errorf("castling = %v, want AllCastling", b.Castling())
	}
	if b.EnPassant() != NoSquare {
		t.Errorf("en passant = %v, want NoSquare", b.EnPassant())
	}
}

func TestFromFENPieceCounts(t *testing.T) {
	b, err := FromFEN(StartFEN)
	if err != nil {
		t.Fatal(err)
	}
	if n := b.data.Pawns().PopCount(); n != 16 {
		t.Errorf("pawns = %d, want 16", n)
	}
	if n := b.data.Kings().PopCount(); n != 2 {
		t.Errorf("kings = %d, want 2", n)
	}
}

func TestFromFENKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	b, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(kiwipete): %v", err)
	}
	if got := b.ToFEN(); got != fen {
		t.Errorf("round-trip = %q, want %q", got, fen)
	}
}

func TestFromFENEnPassantField(t *testing.T) {
	fen := "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3"
	b, err := FromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	if b.EnPassant() != D6 {
		t.Errorf("en passant = %v, want d6", b.EnPassant())
	}
}

func TestFromFENRejectsBadField(t *testing.T) {
	cases := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKXNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPP/RNBQKBNR w KQkq - 0 1",
	}
	for _, fen := range cases {
		if _, err := FromFEN(fen); err == nil {
			t.Errorf("FromFEN(%q): expected error, got nil", fen)
		} else if !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("FromFEN(%q): error %v does not wrap ErrInvalidFEN", fen, err)
		}
	}
}

func TestFromFENNoCastlingRights(t *testing.T) {
	b, err := FromFEN("8/8/8/8/8/8/8/4K2k w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if b.Castling() != NoCastling {
		t.Errorf("castling = %v, want NoCastling", b.Castling())
	}
}
