package goosemg

// Apply returns the position after m, seen from the opponent's side. m must
// be legal in p; Apply does not validate it.
func (p Position) Apply(m Move) Position {
	meta := p.Meta()
	occ := p.Occupied()
	start, end, piece := m.Start(), m.End(), m.Piece()

	// free squares are cleared so the metadata can be rewritten after the
	// pieces have moved
	vacate := ^occ | bb(start) | bb(end)

	// en passant victim
	if ep, ok := meta.EnPassant(); ok && piece == Pawn && end == ep {
		vacate |= bb(end - North)
	}

	// castling rook leaves its corner
	if m.Castling() {
		if end < start {
			vacate |= bb(A1)
		} else {
			vacate |= bb(H1)
		}
	}

	p.clear(vacate)
	p.Own |= bb(end)
	p.set(end, piece)

	if m.Castling() {
		mid := (start + end) / 2
		p.Own |= bb(mid)
		p.set(mid, Rook)
	}

	// castling rights
	if piece == King {
		meta &^= MetaOwnKingside | MetaOwnQueenside
	}
	switch start {
	case A1:
		meta &^= MetaOwnQueenside
	case H1:
		meta &^= MetaOwnKingside
	}
	switch end {
	case A8:
		meta &^= MetaOppQueenside
	case H8:
		meta &^= MetaOppKingside
	}

	meta &^= MetaEnPassant | MetaEnPassantFile
	if piece == Pawn && end-start == 2*North {
		meta |= MetaEnPassant | Meta(start.File())
	}

	// hand the board to the opponent
	p.Own, p.X, p.Y, p.Z = rotate(p.Own), rotate(p.X), rotate(p.Y), rotate(p.Z)
	p.Own = p.Occupied() &^ p.Own
	return p.withMeta(meta.swapSides() ^ MetaBlackToMove)
}
