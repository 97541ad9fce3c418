package board

// MoveKind distinguishes the handful of ways a move changes the board beyond
// a plain relocation: captures remove a piece, castling relocates a rook
// too, en passant captures a piece not standing on the destination square,
// and promotions change the mover's type.
type MoveKind uint8

const (
	MoveNormal MoveKind = iota
	MoveCapture
	MoveDoublePush
	MoveCastle
	MoveEnPassant
	MovePromotion
	MoveCapturePromotion
)

func (k MoveKind) String() string {
	switch k {
	case MoveNormal:
		return "normal"
	case MoveCapture:
		return "capture"
	case MoveDoublePush:
		return "double-push"
	case MoveCastle:
		return "castle"
	case MoveEnPassant:
		return "en-passant"
	case MovePromotion:
		return "promotion"
	case MoveCapturePromotion:
		return "capture-promotion"
	}
	return "unknown"
}

// Move is a single legal move, as produced by Board.Generate. Promotion is
// only meaningful when Kind is MovePromotion or MoveCapturePromotion.
type Move struct {
	From      Square
	Dest      Square
	Kind      MoveKind
	Promotion PieceType
}

// IsCapture reports whether the move removes an enemy piece.
func (m Move) IsCapture() bool {
	return m.Kind == MoveCapture || m.Kind == MoveEnPassant || m.Kind == MoveCapturePromotion
}

func (m Move) String() string {
	s := m.From.String() + m.Dest.String()
	if m.Kind == MovePromotion || m.Kind == MoveCapturePromotion {
		s += string(pieceChar(m.Promotion, Black))
	}
	return s
}

// MoveList is a fixed-capacity move buffer, sized well above any reachable
// chess position's legal move count, so Generate never allocates.
type MoveList struct {
	moves [256]Move
	n     int
}

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.n] = m
	ml.n++
}

// Len returns the number of moves currently in the list.
func (ml *MoveList) Len() int { return ml.n }

// Get returns the i'th move.
func (ml *MoveList) Get(i int) Move { return ml.moves[i] }

// Slice returns the populated portion of the underlying array.
func (ml *MoveList) Slice() []Move { return ml.moves[:ml.n] }

// Clear empties the list without reallocating.
func (ml *MoveList) Clear() { ml.n = 0 }
