package board

// Generate fills ml with every legal move in the position. Dispatch is
// driven entirely by the number of checkers on the side to move's king,
// read directly out of the AttackerSet:
//
//   - 0 checkers: full pseudo-legal generation (general attack loop, pawns,
//     castling, king moves), with absolutely-pinned pieces restricted to
//     their pin ray and a few rank-pinned en passant captures suppressed.
//   - 1 checker: captures of the checker, blocks of its ray (if a slider),
//     and king moves.
//   - 2+ checkers: king moves only.
func (b *Board) Generate(ml *MoveList) {
	ml.Clear()
	ksq, ok := b.kingSquare(b.side)
	if !ok {
		panic("board: generate called with no king for the side to move")
	}
	them := b.side.Other()
	checkers := b.data.AttackersOf(ksq, them)

	switch checkers.PopCount() {
	case 0:
		epPinned := b.findEnPassantPins(ksq)
		p := b.computePins(ksq)
		b.emitPinnedMoves(ml, ksq, p, epPinned)
		b.generateNonPawnNonKing(ml, p.set)
		b.generatePawns(ml, p.set, epPinned)
		b.generateCastling(ml)
		b.generateKingMoves(ml, ksq, 0)
	case 1:
		b.generateSingleCheck(ml, ksq, checkers)
	default:
		b.generateKingMoves(ml, ksq, checkers)
	}
}

// GenerateCaptures fills ml with the subset of legal moves that capture a
// piece: MoveCapture, MoveCapturePromotion, and MoveEnPassant.
func (b *Board) GenerateCaptures(ml *MoveList) {
	var all MoveList
	b.Generate(&all)
	ml.Clear()
	for i := 0; i < all.Len(); i++ {
		m := all.Get(i)
		if m.IsCapture() {
			ml.Add(m)
		}
	}
}

func dirValidForSlider(dir Direction, piece PieceType) bool {
	switch piece {
	case Bishop:
		return dir.Diagonal()
	case Rook:
		return dir.Orthogonal()
	case Queen:
		return dir.Diagonal() || dir.Orthogonal()
	}
	return false
}

// pins records, for every absolutely-pinned friendly identity, the ray
// direction from the king through the pinned piece to the pinner, and the
// pinner's square. Unpinned identities have the zero value in dir/pinner,
// which is never consulted since set.Contains(id) is false for them.
type pins struct {
	set    IdentitySet
	dir    [32]Direction
	pinner [32]Square
}

// pinAllows reports whether identity id, currently on from, may move to
// dest without leaving its pin ray. Unpinned identities are always allowed.
// It filters the captures-of-checker and blocks offered during single check,
// where the destination is not guaranteed to lie on the pin ray at all. In
// the no-check branch, emitPinnedMove generates pinned pieces' moves along
// the pin ray directly and does not call it.
func pinAllows(p pins, id PieceIdentity, from, dest Square) bool {
	if !p.set.Contains(id) {
		return true
	}
	dir, ok := from.DirectionTo(dest)
	return ok && (dir == p.dir[id] || dir == p.dir[id].Opposite())
}

// computePins finds every friendly piece absolutely pinned against the
// king, recording the ray it is pinned along and the pinning identity's
// square.
func (b *Board) computePins(ksq Square) pins {
	us := b.side
	them := us.Other()
	diagonal := b.data.Bishops() | b.data.Queens()
	orthogonal := b.data.Rooks() | b.data.Queens()

	countBlockersBeforePinner := func(dir Direction, pinnerSq Square) int {
		count := 0
		it := ksq.Ray(dir)
		for {
			sq, ok := it.Next()
			if !ok {
				break
			}
			if !b.data.HasPiece(sq) {
				continue
			}
			if sq == pinnerSq {
				break
			}
			count++
		}
		return count
	}

	var p pins
	candidates := b.data.PiecesOfColor(us) &^ b.data.Kings()

outer:
	for {
		id, ok := candidates.PopLSB()
		if !ok {
			break
		}
		blockerSq := b.data.SquareOf(id)
		blockerKingDir, ok := ksq.DirectionTo(blockerSq)
		if !ok {
			continue
		}
		attacks := b.data.AttackersOf(blockerSq, them)

		diagAttackers := attacks & diagonal
		for {
			attacker, ok2 := diagAttackers.PopLSB()
			if !ok2 {
				break
			}
			pinnerSq := b.data.SquareOf(attacker)
			pinnerKingDir, ok3 := ksq.DirectionTo(pinnerSq)
			if !ok3 || pinnerKingDir != blockerKingDir || !pinnerKingDir.Diagonal() {
				continue
			}
			if beyond, ok4 := blockerSq.DirectionTo(pinnerSq); !ok4 || beyond != pinnerKingDir {
				continue
			}
			if !dirValidForSlider(pinnerKingDir, b.data.PieceOfIdentity(attacker)) {
				continue
			}
			if countBlockersBeforePinner(pinnerKingDir, pinnerSq) > 1 {
				continue
			}
			p.set |= identityBit(id)
			p.dir[id] = pinnerKingDir
			p.pinner[id] = pinnerSq
			continue outer
		}

		orthoAttackers := attacks & orthogonal
		for {
			attacker, ok2 := orthoAttackers.PopLSB()
			if !ok2 {
				break
			}
			pinnerSq := b.data.SquareOf(attacker)
			pinnerKingDir, ok3 := ksq.DirectionTo(pinnerSq)
			if !ok3 || pinnerKingDir != blockerKingDir || pinnerKingDir.Diagonal() {
				continue
			}
			if beyond, ok4 := blockerSq.DirectionTo(pinnerSq); !ok4 || beyond != pinnerKingDir {
				continue
			}
			if !dirValidForSlider(pinnerKingDir, b.data.PieceOfIdentity(attacker)) {
				continue
			}
			if countBlockersBeforePinner(pinnerKingDir, pinnerSq) > 1 {
				continue
			}
			p.set |= identityBit(id)
			p.dir[id] = pinnerKingDir
			p.pinner[id] = pinnerSq
			continue outer
		}
	}
	return p
}

// emitPinnedMoves emits, for every absolutely-pinned identity, the (possibly
// empty) set of moves it may still make along its pin ray.
func (b *Board) emitPinnedMoves(ml *MoveList, ksq Square, p pins, epPinned IdentitySet) {
	set := p.set
	for {
		id, ok := set.PopLSB()
		if !ok {
			break
		}
		blockerSq := b.data.SquareOf(id)
		b.emitPinnedMove(ml, id, blockerSq, ksq, p.pinner[id], p.dir[id], epPinned)
	}
}

func (b *Board) emitPinnedMove(ml *MoveList, id PieceIdentity, blockerSq, ksq, pinnerSq Square, dir Direction, epPinned IdentitySet) {
	switch b.data.PieceOfIdentity(id) {
	case Pawn:
		b.generatePawnMoves(ml, id, blockerSq, true, dir, epPinned.Contains(id))
	case Bishop, Rook, Queen:
		// A slider pinned along a ray it cannot travel (a bishop on a rank or
		// file, a rook on a diagonal) has no legal moves at all.
		if dirValidForSlider(dir, b.data.PieceOfIdentity(id)) {
			b.emitSliderAlongRay(ml, blockerSq, ksq, pinnerSq, dir)
		}
	default:
		// Knights and the king can never legally move along a pin ray, so
		// this identity is pinned with zero available moves.
	}
}

// emitSliderAlongRay emits the moves available to a pinned slider on
// blockerSq: every empty square between the king and the pinner, plus the
// capture of the pinner itself.
func (b *Board) emitSliderAlongRay(ml *MoveList, blockerSq, ksq, pinnerSq Square, dir Direction) {
	it := ksq.Ray(dir)
	for {
		dest, ok := it.Next()
		if !ok {
			break
		}
		if dest == blockerSq {
			continue
		}
		if dest == pinnerSq {
			ml.Add(Move{From: blockerSq, Dest: dest, Kind: MoveCapture})
			break
		}
		ml.Add(Move{From: blockerSq, Dest: dest, Kind: MoveNormal})
	}
}

// findEnPassantPins detects the rank-pin special case: a friendly and enemy
// pawn, the en passant pair, standing between the king and an enemy rook or
// queen on the same rank, such that capturing en passant would remove both
// pawns at once and expose the king. The returned set flags the friendly
// pawn as forbidden from capturing en passant.
func (b *Board) findEnPassantPins(ksq Square) IdentitySet {
	if b.ep == NoSquare {
		return 0
	}
	us := b.side
	them := us.Other()
	var result IdentitySet

	for _, dir := range [2]Direction{East, West} {
		it := ksq.Ray(dir)
		var blockers []PieceIdentity
		for len(blockers) < 2 {
			sq, ok := it.Next()
			if !ok {
				break
			}
			if id, has := b.data.IdentityAt(sq); has {
				blockers = append(blockers, id)
			}
		}
		if len(blockers) != 2 {
			continue
		}
		first, second := blockers[0], blockers[1]
		if b.data.PieceOfIdentity(first) != Pawn || b.data.PieceOfIdentity(second) != Pawn {
			continue
		}
		if colorOf(first) == colorOf(second) {
			continue
		}

		sliderFound := false
		for {
			sq, ok := it.Next()
			if !ok {
				break
			}
			id, has := b.data.IdentityAt(sq)
			if !has {
				continue
			}
			pt := b.data.PieceOfIdentity(id)
			if colorOf(id) == them && (pt == Rook || pt == Queen) {
				sliderFound = true
			}
			break
		}
		if !sliderFound {
			continue
		}

		friendly := first
		if colorOf(second) == us {
			friendly = second
		}
		result |= identityBit(friendly)
	}
	return result
}

// generateNonPawnNonKing is the general attack loop: for every square on the
// board, every non-pawn, non-king, non-pinned attacker of that square has a
// move to it (a capture if occupied by the enemy, a quiet move otherwise).
// This reads move availability straight out of the AttackerSet rather than
// generating candidate destinations piece by piece.
func (b *Board) generateNonPawnNonKing(ml *MoveList, pinned IdentitySet) {
	us := b.side
	excluded := b.data.Pawns() | b.data.Kings() | pinned
	for dest := Square(0); dest < 64; dest++ {
		_, color, occ := b.data.PieceAt(dest)
		kind := MoveNormal
		if occ {
			if color == us {
				continue
			}
			kind = MoveCapture
		}
		attackers := b.data.AttackersOf(dest, us) &^ excluded
		for {
			id, ok := attackers.PopLSB()
			if !ok {
				break
			}
			ml.Add(Move{From: b.data.SquareOf(id), Dest: dest, Kind: kind})
		}
	}
}

func (b *Board) generatePawns(ml *MoveList, pinned, epPinned IdentitySet) {
	us := b.side
	unpinned := b.data.Pawns() & identityMaskForColor(us) &^ pinned
	for {
		id, ok := unpinned.PopLSB()
		if !ok {
			break
		}
		from := b.data.SquareOf(id)
		b.generatePawnMoves(ml, id, from, false, DirNone, epPinned.Contains(id))
	}
}

// generatePawnMoves emits every legal move for the pawn at from: single and
// double pushes, diagonal captures, en passant, and promotions. When
// restricted is true, only moves along pinDir (or its opposite) are kept.
func (b *Board) generatePawnMoves(ml *MoveList, id PieceIdentity, from Square, restricted bool, pinDir Direction, epBlocked bool) {
	us := b.side

	allowed := func(dest Square) bool {
		if !restricted {
			return true
		}
		dir, ok := from.DirectionTo(dest)
		return ok && (dir == pinDir || dir == pinDir.Opposite())
	}

	north, ok := from.relativeNorth(us)
	if !ok {
		return
	}

	if !b.data.HasPiece(north) {
		if isRelativeEighth(north, us) {
			if allowed(north) {
				for _, pp := range promotionPieces {
					ml.Add(Move{From: from, Dest: north, Kind: MovePromotion, Promotion: pp})
				}
			}
		} else {
			if allowed(north) {
				ml.Add(Move{From: from, Dest: north, Kind: MoveNormal})
			}
			if north2, ok2 := north.relativeNorth(us); ok2 && isRelativeFourth(north2, us) &&
				!b.data.HasPiece(north2) && allowed(north2) {
				ml.Add(Move{From: from, Dest: north2, Kind: MoveDoublePush})
			}
		}
	}

	considerCapture := func(dest Square) {
		_, color, occ := b.data.PieceAt(dest)
		if !occ || color == us {
			return
		}
		if !allowed(dest) {
			return
		}
		if isRelativeEighth(dest, us) {
			for _, pp := range promotionPieces {
				ml.Add(Move{From: from, Dest: dest, Kind: MoveCapturePromotion, Promotion: pp})
			}
		} else {
			ml.Add(Move{From: from, Dest: dest, Kind: MoveCapture})
		}
	}

	considerEnPassant := func(dest Square) {
		if epBlocked || b.ep == NoSquare || dest != b.ep {
			return
		}
		if !allowed(dest) {
			return
		}
		ml.Add(Move{From: from, Dest: dest, Kind: MoveEnPassant})
	}

	if e, ok := north.Step(East); ok {
		considerCapture(e)
		considerEnPassant(e)
	}
	if w, ok := north.Step(West); ok {
		considerCapture(w)
		considerEnPassant(w)
	}
}

func (b *Board) generateCastling(ml *MoveList) {
	us := b.side
	them := us.Other()
	clear := func(sqs ...Square) bool {
		for _, sq := range sqs {
			if b.data.HasPiece(sq) {
				return false
			}
		}
		return true
	}
	safe := func(sqs ...Square) bool {
		for _, sq := range sqs {
			if !b.data.AttackersOf(sq, them).Empty() {
				return false
			}
		}
		return true
	}

	if us == White {
		if b.castle.Has(WhiteKingside) && clear(F1, G1) && safe(E1, F1, G1) {
			ml.Add(Move{From: E1, Dest: G1, Kind: MoveCastle})
		}
		if b.castle.Has(WhiteQueenside) && clear(D1, C1, B1) && safe(E1, D1, C1) {
			ml.Add(Move{From: E1, Dest: C1, Kind: MoveCastle})
		}
	} else {
		if b.castle.Has(BlackKingside) && clear(F8, G8) && safe(E8, F8, G8) {
			ml.Add(Move{From: E8, Dest: G8, Kind: MoveCastle})
		}
		if b.castle.Has(BlackQueenside) && clear(D8, C8, B8) && safe(E8, D8, C8) {
			ml.Add(Move{From: E8, Dest: C8, Kind: MoveCastle})
		}
	}
}

// generateKingMoves emits the side to move's king moves. checkers holds the
// pieces currently giving check (0, 1, or 2 identities); for every slider
// among them, the square immediately behind the king along the checker's ray
// is excluded even though the pre-move AttackerSet does not (yet) mark it as
// attacked, since the king's own departure is what would expose it.
func (b *Board) generateKingMoves(ml *MoveList, ksq Square, checkers IdentitySet) {
	us := b.side
	them := us.Other()

	var xray [2]Square
	nxray := 0
	cs := checkers
	for {
		id, ok := cs.PopLSB()
		if !ok {
			break
		}
		if !b.data.PieceOfIdentity(id).IsSlider() {
			continue
		}
		checkerSq := b.data.SquareOf(id)
		dir, ok2 := checkerSq.DirectionTo(ksq)
		if !ok2 {
			continue
		}
		if beyond, ok3 := ksq.Step(dir); ok3 {
			xray[nxray] = beyond
			nxray++
		}
	}
	isXray := func(sq Square) bool {
		for i := 0; i < nxray; i++ {
			if xray[i] == sq {
				return true
			}
		}
		return false
	}

	kingIDs := b.data.Kings() & identityMaskForColor(us)
	id, ok := kingIDs.Peek()
	if !ok {
		return
	}
	from := b.data.SquareOf(id)
	for _, dest := range kingAttackTable[from] {
		if isXray(dest) {
			continue
		}
		_, color, occ := b.data.PieceAt(dest)
		kind := MoveNormal
		if occ {
			if color == us {
				continue
			}
			kind = MoveCapture
		}
		if !b.data.AttackersOf(dest, them).Empty() {
			continue
		}
		ml.Add(Move{From: from, Dest: dest, Kind: kind})
	}
}

// generateSingleCheck handles exactly one checker: captures of the checker
// (including en passant, when the checker just double-pushed), blocks of its
// ray if it is a slider, and king moves.
func (b *Board) generateSingleCheck(ml *MoveList, ksq Square, checkers IdentitySet) {
	us := b.side
	them := us.Other()
	attackerID, _ := checkers.Peek()
	attackerSq := b.data.SquareOf(attackerID)
	attackerPiece := b.data.PieceOfIdentity(attackerID)

	epPinned := b.findEnPassantPins(ksq)
	p := b.computePins(ksq)

	capturers := b.data.AttackersOf(attackerSq, us) &^ b.data.Kings()
	for {
		id, ok := capturers.PopLSB()
		if !ok {
			break
		}
		from := b.data.SquareOf(id)
		if !pinAllows(p, id, from, attackerSq) {
			continue
		}
		if b.data.PieceOfIdentity(id) == Pawn && isRelativeEighth(attackerSq, us) {
			for _, pp := range promotionPieces {
				ml.Add(Move{From: from, Dest: attackerSq, Kind: MoveCapturePromotion, Promotion: pp})
			}
			continue
		}
		ml.Add(Move{From: from, Dest: attackerSq, Kind: MoveCapture})
	}

	if attackerPiece == Pawn && b.ep != NoSquare {
		if behind, ok := attackerSq.relativeSouth(them); ok && behind == b.ep {
			for _, dir := range [2]Direction{East, West} {
				src, ok2 := attackerSq.Step(dir)
				if !ok2 {
					continue
				}
				pt, color, occ := b.data.PieceAt(src)
				if !occ || color != us || pt != Pawn {
					continue
				}
				id, _ := b.data.IdentityAt(src)
				if epPinned.Contains(id) {
					continue
				}
				if !pinAllows(p, id, src, b.ep) {
					continue
				}
				ml.Add(Move{From: src, Dest: b.ep, Kind: MoveEnPassant})
			}
		}
	}

	if attackerPiece.IsSlider() {
		if dir, ok := ksq.DirectionTo(attackerSq); ok {
			it := ksq.Ray(dir)
			for {
				dest, ok2 := it.Next()
				if !ok2 || dest == attackerSq {
					break
				}
				blockers := b.data.AttackersOf(dest, us) &^ b.data.Pawns() &^ b.data.Kings()
				for {
					id, ok3 := blockers.PopLSB()
					if !ok3 {
						break
					}
					from := b.data.SquareOf(id)
					if !pinAllows(p, id, from, dest) {
						continue
					}
					ml.Add(Move{From: from, Dest: dest, Kind: MoveNormal})
				}
				b.addPawnBlock(ml, dest, p)
			}
		}
	}

	b.generateKingMoves(ml, ksq, checkers)
}

// addPawnBlock emits the friendly pawn push (single, double, or promoting)
// that lands on dest, interposing a piece between the king and a checking
// slider. p restricts pinned pawns to their own pin ray.
func (b *Board) addPawnBlock(ml *MoveList, dest Square, p pins) {
	us := b.side
	src, ok := dest.relativeSouth(us)
	if !ok {
		return
	}
	pt, color, occ := b.data.PieceAt(src)
	if occ {
		if color == us && pt == Pawn {
			id, _ := b.data.IdentityAt(src)
			if !pinAllows(p, id, src, dest) {
				return
			}
			if isRelativeEighth(dest, us) {
				for _, pp := range promotionPieces {
					ml.Add(Move{From: src, Dest: dest, Kind: MovePromotion, Promotion: pp})
				}
			} else {
				ml.Add(Move{From: src, Dest: dest, Kind: MoveNormal})
			}
		}
		return
	}
	if !isRelativeFourth(dest, us) {
		return
	}
	src2, ok2 := src.relativeSouth(us)
	if !ok2 {
		return
	}
	pt2, color2, occ2 := b.data.PieceAt(src2)
	if occ2 && color2 == us && pt2 == Pawn {
		id, _ := b.data.IdentityAt(src2)
		if !pinAllows(p, id, src2, dest) {
			return
		}
		ml.Add(Move{From: src2, Dest: dest, Kind: MoveDoublePush})
	}
}
