// Command movecli is a thin diagnostic tool: it loads a FEN, applies a
// sequence of moves given as algebraic from/to/promotion triples, and
// prints the resulting FEN after each one. It exists to poke at
// internal/board from the command line without a full UCI shell.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/solumchess/core/internal/board"
)

var (
	fen   = flag.String("fen", board.StartFEN, "starting position")
	moves = flag.String("moves", "", "space-separated moves, e.g. \"e2e4 e7e5 g1f3\"")
)

func main() {
	flag.Parse()

	b, err := board.FromFEN(*fen)
	if err != nil {
		log.Fatalf("movecli: %v", err)
	}
	fmt.Println(b.String())
	fmt.Println(b.ToFEN())

	for _, tok := range strings.Fields(*moves) {
		m, err := findMove(b, tok)
		if err != nil {
			log.Fatalf("movecli: move %q: %v", tok, err)
		}
		b = b.Make(m)
		fmt.Println()
		fmt.Println(b.String())
		fmt.Println(b.ToFEN())
	}
}

// findMove parses a coordinate move like "e2e4" or "e7e8q" and matches it
// against the currently legal moves, so illegal or malformed input is
// rejected the same way a GUI's move list would reject it.
func findMove(b *board.Board, tok string) (board.Move, error) {
	if len(tok) < 4 {
		return board.Move{}, fmt.Errorf("too short")
	}
	from, err := board.ParseSquare(tok[0:2])
	if err != nil {
		return board.Move{}, err
	}
	dest, err := board.ParseSquare(tok[2:4])
	if err != nil {
		return board.Move{}, err
	}

	var promo board.PieceType = board.NoPieceType
	if len(tok) >= 5 {
		switch tok[4] {
		case 'q':
			promo = board.Queen
		case 'r':
			promo = board.Rook
		case 'b':
			promo = board.Bishop
		case 'n':
			promo = board.Knight
		default:
			return board.Move{}, fmt.Errorf("unknown promotion piece %q", tok[4])
		}
	}

	var ml board.MoveList
	b.Generate(&ml)
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if m.From == from && m.Dest == dest && (promo == board.NoPieceType || m.Promotion == promo) {
			return m, nil
		}
	}
	return board.Move{}, fmt.Errorf("not a legal move in this position")
}
