package board

import "testing"

func TestBoardDataBijection(t *testing.T) {
	bd := NewBoardData()
	id, err := bd.AddPiece(Rook, White, A1, true)
	if err != nil {
		t.Fatal(err)
	}
	sq := bd.SquareOf(id)
	if sq != A1 {
		t.Fatalf("SquareOf(id) = %v, want A1", sq)
	}
	gotID, ok := bd.IdentityAt(sq)
	if !ok || gotID != id {
		t.Fatalf("IdentityAt(A1) = %v,%v want %v,true", gotID, ok, id)
	}
}

func TestBoardDataNeverAttacksOwnSquare(t *testing.T) {
	bd := NewBoardData()
	id, _ := bd.AddPiece(Queen, White, D4, true)
	if bd.AttackersOf(D4, White).Contains(id) {
		t.Error("a piece must never attack its own square")
	}
}

func TestBoardDataSliderBlockedByOccupant(t *testing.T) {
	bd := NewBoardData()
	rook, _ := bd.AddPiece(Rook, White, A1, true)
	if !bd.AttackersOf(A8, White).Contains(rook) {
		t.Error("rook on a1 should attack a8 on an empty file")
	}
	if !bd.AttackersOf(A4, White).Contains(rook) {
		t.Error("rook on a1 should attack a4 on an empty file")
	}

	// Block with a friendly pawn on a4: attacks beyond a4 must vanish, but
	// a4 itself (the blocker) is still seen, per the inclusive-blocker rule.
	bd.AddPiece(Pawn, White, A4, true)
	if !bd.AttackersOf(A4, White).Contains(rook) {
		t.Error("rook must still see the blocking square itself")
	}
	if bd.AttackersOf(A5, White).Contains(rook) {
		t.Error("rook's attack must not pass through a blocker")
	}
	if bd.AttackersOf(A8, White).Contains(rook) {
		t.Error("rook's attack must not reach past a blocker")
	}
}

func TestBoardDataRemovePieceExtendsSliderThroughVacatedSquare(t *testing.T) {
	bd := NewBoardData()
	rook, _ := bd.AddPiece(Rook, White, A1, true)
	_, err := bd.AddPiece(Pawn, White, A4, true)
	if err != nil {
		t.Fatal(err)
	}
	if bd.AttackersOf(A8, White).Contains(rook) {
		t.Fatal("rook should be blocked before removal")
	}

	blockerID, _ := bd.IdentityAt(A4)
	bd.RemovePiece(blockerID, true)

	if !bd.AttackersOf(A8, White).Contains(rook) {
		t.Error("removing the blocker should re-extend the rook's ray all the way to a8")
	}
}

func TestBoardDataMovePieceTruncatesAndExtends(t *testing.T) {
	bd := NewBoardData()
	rook, _ := bd.AddPiece(Rook, White, A1, true)
	knight, _ := bd.AddPiece(Knight, White, A8, true)

	if !bd.AttackersOf(A8, White).Contains(rook) {
		t.Fatal("rook should attack a8 on an empty file")
	}

	// Move the knight down to a4, now blocking the rook's ray partway.
	bd.MovePiece(A8, A4, true)
	if id, ok := bd.IdentityAt(A4); !ok || id != knight {
		t.Fatal("knight should now be indexed at a4")
	}
	if bd.AttackersOf(A8, White).Contains(rook) {
		t.Error("rook's ray should be truncated by the piece now on a4")
	}
	if !bd.AttackersOf(A4, White).Contains(rook) {
		t.Error("rook should still see the new blocker's square")
	}
}

func TestBoardDataRebuildMatchesIncremental(t *testing.T) {
	bd := NewBoardData()
	bd.AddPiece(King, White, E1, true)
	bd.AddPiece(King, Black, E8, true)
	bd.AddPiece(Rook, White, A1, true)
	bd.AddPiece(Rook, White, H1, true)
	bd.AddPiece(Bishop, White, C1, true)
	bd.AddPiece(Queen, Black, D8, true)
	bd.AddPiece(Pawn, White, E2, true)
	bd.AddPiece(Knight, Black, B8, true)

	bd.MovePiece(E2, E4, true)
	bd.MovePiece(C1, G5, true)

	incremental := bd.bitlist

	bd.RebuildAttacks()
	rebuilt := bd.bitlist

	for sq := Square(0); sq < 64; sq++ {
		if incremental[sq] != rebuilt[sq] {
			t.Errorf("square %v: incremental=%032b rebuilt=%032b mismatch", sq, incremental[sq], rebuilt[sq])
		}
	}
}

func TestBoardDataAddPieceErrorsOnNoFreeSlot(t *testing.T) {
	bd := NewBoardData()
	sqs := []Square{A1, B1, C1, D1, E1, F1, G1, H1, A2, B2, C2, D2, E2, F2, G2, H2}
	for _, sq := range sqs {
		if _, err := bd.AddPiece(Pawn, White, sq, false); err != nil {
			t.Fatalf("AddPiece(%v): %v", sq, err)
		}
	}
	if _, err := bd.AddPiece(Pawn, White, A3, false); err != ErrNoFreeIdentity {
		t.Errorf("17th white AddPiece: got %v, want ErrNoFreeIdentity", err)
	}
}

func TestBoardDataMovePieceFromEmptySquarePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MovePiece from an empty square should panic")
		}
	}()
	bd := NewBoardData()
	bd.MovePiece(A1, A2, true)
}
