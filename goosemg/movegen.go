package goosemg

// Castling geometry, from the side to move's point of view.
const (
	kingsideEmpty  uint64 = 0x60 // f1 g1
	queensideEmpty uint64 = 0x0e // b1 c1 d1
	kingsideSafe   uint64 = 0x70 // e1 f1 g1
	queensideSafe  uint64 = 0x1c // c1 d1 e1
)

// enemySliders returns the opponent's diagonal movers (bishops, queens) and
// orthogonal movers (rooks, queens).
func (p Position) enemySliders() (diag, orth uint64) {
	them := p.Theirs()
	queens := p.Pieces(Queen)
	return (p.Pieces(Bishop) | queens) & them, (p.Pieces(Rook) | queens) & them
}

// Checkers returns the opponent pieces attacking the side to move's king.
func (p Position) Checkers() uint64 {
	ksq := p.king()
	king := bb(ksq)
	occ := p.Occupied()
	them := occ &^ p.Own
	diag, orth := p.enemySliders()

	pawns := p.Pieces(Pawn) & them & (shiftNE(king) | shiftNW(king))
	knights := p.Pieces(Knight) & them & KnightAttacks(ksq)
	return pawns | knights | diag&BishopAttacks(ksq, occ) | orth&RookAttacks(ksq, occ)
}

// InCheck reports whether the side to move is in check.
func (p Position) InCheck() bool { return p.Checkers() != 0 }

// Attacked returns every square the opponent attacks. The side to move's
// king is removed from the occupancy first, so squares behind it along a
// checking ray count as attacked.
func (p Position) Attacked() uint64 {
	them := p.Theirs()
	occ := p.Occupied() &^ (p.Pieces(King) & p.Own)
	diag, orth := p.enemySliders()

	pawns := p.Pieces(Pawn) & them
	attacks := shiftSE(pawns) | shiftSW(pawns)

	knights := p.Pieces(Knight) & them
	for knights != 0 {
		attacks |= KnightAttacks(popLSB(&knights))
	}
	for diag != 0 {
		attacks |= BishopAttacks(popLSB(&diag), occ)
	}
	for orth != 0 {
		attacks |= RookAttacks(popLSB(&orth), occ)
	}
	return attacks | KingAttacks(lsb(p.Pieces(King)&them))
}

// between returns the squares strictly between a and b when they share a
// line, otherwise 0.
func between(a, b Square) uint64 {
	maskA, maskB := bb(a), bb(b)
	if diag := BishopAttacks(a, maskB); diag&maskB != 0 {
		return diag & BishopAttacks(b, maskA)
	}
	if orth := RookAttacks(a, maskB); orth&maskB != 0 {
		return orth & RookAttacks(b, maskA)
	}
	return 0
}

// Generate returns every legal move for the side to move. An empty list
// means checkmate or stalemate; InCheck tells them apart.
func (p Position) Generate() MoveList {
	var l MoveList
	p.GenerateInto(&l)
	return l
}

// GenerateInto overwrites l with the legal moves for the side to move.
func (p Position) GenerateInto(l *MoveList) {
	l.Reset()
	meta := p.Meta()
	checkers := p.Checkers()

	// in double check only the king may move
	if !moreThanOne(checkers) {
		targets := ^p.Own
		if checkers != 0 {
			targets &= checkers | between(p.king(), lsb(checkers))
		}

		var ep uint64
		if sq, ok := meta.EnPassant(); ok {
			ep = bb(sq)
		}

		p.genPawnMoves(targets, ep, l)
		p.genPieceMoves(Knight, targets, l)
		p.genPieceMoves(Bishop, targets, l)
		p.genPieceMoves(Rook, targets, l)
		p.genPieceMoves(Queen, targets, l)
		p.filterPinned(ep, l)
	}

	p.genKingMoves(meta, l)
}

func (p Position) genPieceMoves(t PieceType, targets uint64, l *MoveList) {
	occ := p.Occupied()
	pieces := p.Pieces(t) & p.Own
	for pieces != 0 {
		sq := popLSB(&pieces)
		attacks := pieceAttacks(t, sq, occ) & targets
		for attacks != 0 {
			l.add(NewMove(sq, popLSB(&attacks), t, false))
		}
	}
}

func (p Position) genPawnMoves(targets, ep uint64, l *MoveList) {
	pawns := p.Pieces(Pawn) & p.Own
	occ := p.Occupied()
	them := occ&^p.Own | ep

	// a pawn giving check can be taken en passant
	targets |= shiftN(targets) & ep

	single := shiftN(pawns) &^ occ
	double := shiftN(single&Rank3) &^ occ

	// both push squares were checked empty above, now restrict to targets
	single &= targets
	double &= targets

	east := shiftNE(pawns) & them & targets
	west := shiftNW(pawns) & them & targets

	addPawnMoves(single&Rank8, North, true, l)
	addPawnMoves(east&Rank8, North+East, true, l)
	addPawnMoves(west&Rank8, North+West, true, l)

	addPawnMoves(double, 2*North, false, l)
	addPawnMoves(single&^Rank8, North, false, l)
	addPawnMoves(east&^Rank8, North+East, false, l)
	addPawnMoves(west&^Rank8, North+West, false, l)
}

func addPawnMoves(dst uint64, delta int, promotion bool, l *MoveList) {
	for dst != 0 {
		to := popLSB(&dst)
		from := Square(int(to) - delta)
		if promotion {
			l.add(NewMove(from, to, Knight, false))
			l.add(NewMove(from, to, Bishop, false))
			l.add(NewMove(from, to, Rook, false))
			l.add(NewMove(from, to, Queen, false))
		} else {
			l.add(NewMove(from, to, Pawn, false))
		}
	}
}

// filterPinned drops moves that would expose the king to a slider. Only
// moves vacating a square on a queen ray from the king are simulated; an en
// passant capture vacates the captured pawn's square as well.
func (p Position) filterPinned(ep uint64, l *MoveList) {
	ksq := p.king()
	occ := p.Occupied()
	rays := QueenAttacks(ksq, p.Own)
	diag, orth := p.enemySliders()

	n := 0
	for _, m := range l.moves[:l.n] {
		from := bb(m.Start())
		to := bb(m.End())
		if m.Piece() == Pawn {
			from |= shiftS(to & ep)
		}

		if from&rays != 0 {
			nocc := occ&^from | to
			if diag&^to&BishopAttacks(ksq, nocc) != 0 || orth&^to&RookAttacks(ksq, nocc) != 0 {
				continue
			}
		}
		l.moves[n] = m
		n++
	}
	l.n = n
}

func (p Position) genKingMoves(meta Meta, l *MoveList) {
	ksq := p.king()
	attacked := p.Attacked()

	dst := KingAttacks(ksq) &^ attacked &^ p.Own
	for dst != 0 {
		l.add(NewMove(ksq, popLSB(&dst), King, false))
	}

	occ := p.Occupied()
	if meta&MetaOwnKingside != 0 && occ&kingsideEmpty == 0 && attacked&kingsideSafe == 0 {
		l.add(NewMove(E1, G1, King, true))
	}
	if meta&MetaOwnQueenside != 0 && occ&queensideEmpty == 0 && attacked&queensideSafe == 0 {
		l.add(NewMove(E1, C1, King, true))
	}
}

// Status classifies a position for the side to move.
type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// Status reports checkmate, stalemate or neither.
func (p Position) Status() Status {
	var l MoveList
	p.GenerateInto(&l)
	switch {
	case l.n > 0:
		return Ongoing
	case p.InCheck():
		return Checkmate
	default:
		return Stalemate
	}
}
