package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// perft counts the leaf positions reached by applying every legal move,
// recursively, depth times. It is the canonical correctness oracle for a
// move generator: any divergence from a known count pinpoints a bug in
// Generate or Make.
func perft(b *Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var ml MoveList
	b.Generate(&ml)
	if depth == 1 {
		return uint64(ml.Len())
	}
	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		nodes += perft(b.Make(ml.Get(i)), depth-1)
	}
	return nodes
}

// perftCases mirrors the canonical positions from the specification's
// testable-properties section. Depths are capped below the full reference
// depths to keep the suite fast; the expected counts are exact prefixes of
// the published sequences.
var perftCases = []struct {
	name     string
	fen      string
	expected []uint64 // index i is perft(depth=i+1)
}{
	{
		name:     "start position",
		fen:      StartFEN,
		expected: []uint64{20, 400, 8902, 197281},
	},
	{
		name:     "kiwipete",
		fen:      "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		expected: []uint64{48, 2039, 97862},
	},
	{
		name:     "position 3",
		fen:      "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		expected: []uint64{14, 191, 2812, 43238},
	},
	{
		name:     "position 4",
		fen:      "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		expected: []uint64{6, 264, 9467},
	},
	{
		name:     "position 5",
		fen:      "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		expected: []uint64{44, 1486, 62379},
	},
	{
		name:     "knight promotion edge case",
		fen:      "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N w - - 0 1",
		expected: []uint64{24, 496, 9483},
	},
}

func TestPerftCanonicalPositions(t *testing.T) {
	for _, tc := range perftCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := FromFEN(tc.fen)
			require.NoError(t, err)
			for i, want := range tc.expected {
				depth := i + 1
				got := perft(b, depth)
				require.Equalf(t, want, got, "perft(%q, depth=%d)", tc.name, depth)
			}
		})
	}
}

// TestPerftIncrementalMatchesRebuild walks a handful of plies from the start
// position and checks, after every move, that a full AttackerSet rebuild
// agrees with the incrementally maintained one -- the round-trip law from
// the specification's testable-properties section.
func TestPerftIncrementalMatchesRebuild(t *testing.T) {
	b, err := FromFEN(StartFEN)
	require.NoError(t, err)

	var walk func(b *Board, plies int)
	walk = func(b *Board, plies int) {
		if plies == 0 {
			return
		}
		var ml MoveList
		b.Generate(&ml)
		for i := 0; i < ml.Len() && i < 5; i++ {
			next := b.Make(ml.Get(i))
			incremental := next.data.bitlist
			next.data.RebuildAttacks()
			require.Equal(t, incremental, next.data.bitlist, "ply mismatch after move %v", ml.Get(i))
			walk(next, plies-1)
		}
	}
	walk(b, 3)
}
