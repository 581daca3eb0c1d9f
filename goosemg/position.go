package goosemg

import "math/bits"

// PieceType is the 3-bit code stored across the X, Y and Z planes.
type PieceType uint8

const (
	None   PieceType = 0
	Pawn   PieceType = 1
	Knight PieceType = 2
	Bishop PieceType = 3
	Rook   PieceType = 4
	Queen  PieceType = 5
	King   PieceType = 6
	// Info marks an unoccupied square carrying a set metadata bit.
	Info PieceType = 7
)

func (t PieceType) String() string {
	return [...]string{"none", "pawn", "knight", "bishop", "rook", "queen", "king", "info"}[t&7]
}

// Position is the packed board. Own marks the pieces of the side to move and
// (X, Y, Z) hold a PieceType per square. The board is always oriented so the
// side to move plays up the board from rank 1; Apply rotates it after every
// move. Metadata (castling rights, en passant, side to move) lives in the
// lowest unoccupied squares, see Meta.
type Position struct {
	Own, X, Y, Z uint64
}

// Pieces returns the squares of both sides holding type t.
func (p Position) Pieces(t PieceType) uint64 {
	var m uint64
	if t&1 != 0 {
		m = p.X
	} else {
		m = ^p.X
	}
	if t&2 != 0 {
		m &= p.Y
	} else {
		m &= ^p.Y
	}
	if t&4 != 0 {
		m &= p.Z
	} else {
		m &= ^p.Z
	}
	return m
}

// Occupied returns every square holding a piece. Codes 0 and 7 are the only
// ones with X == Y == Z, so they drop out.
func (p Position) Occupied() uint64 { return (p.X ^ p.Y) | (p.X ^ p.Z) }

// Theirs returns the opponent's pieces.
func (p Position) Theirs() uint64 { return p.Occupied() &^ p.Own }

// PieceAt returns the type on sq. Metadata squares read as None.
func (p Position) PieceAt(sq Square) PieceType {
	checkSquare(sq)
	t := PieceType((p.X>>sq)&1 | (p.Y>>sq)&1<<1 | (p.Z>>sq)&1<<2)
	if t == Info {
		return None
	}
	return t
}

// set writes t onto an empty square.
func (p *Position) set(sq Square, t PieceType) {
	p.X |= uint64(t&1) << sq
	p.Y |= uint64(t>>1&1) << sq
	p.Z |= uint64(t>>2&1) << sq
}

// clear removes everything on the masked squares, metadata included.
func (p *Position) clear(mask uint64) {
	p.Own &^= mask
	p.X &^= mask
	p.Y &^= mask
	p.Z &^= mask
}

// king returns the square of the side to move's king.
func (p Position) king() Square { return lsb(p.Pieces(King) & p.Own) }

// Meta is the metadata packed into the free squares of a Position.
type Meta uint16

const (
	MetaEnPassantFile Meta = 0x7
	MetaEnPassant     Meta = 1 << 3
	MetaOwnKingside   Meta = 1 << 4
	MetaOwnQueenside  Meta = 1 << 5
	MetaOppKingside   Meta = 1 << 6
	MetaOppQueenside  Meta = 1 << 7
	MetaBlackToMove   Meta = 1 << 8

	MetaCastling = MetaOwnKingside | MetaOwnQueenside | MetaOppKingside | MetaOppQueenside

	metaBits = 9
)

// EnPassant returns the square a pawn of the side to move captures onto en
// passant, and whether one exists.
func (m Meta) EnPassant() (Square, bool) {
	if m&MetaEnPassant == 0 {
		return 0, false
	}
	return Square(40 + m&MetaEnPassantFile), true
}

// swapSides exchanges own and opponent castling rights.
func (m Meta) swapSides() Meta {
	c := m & MetaCastling
	c = (c<<2 | c>>2) & MetaCastling
	return m&^MetaCastling | c
}

// Meta gathers the packed metadata. It must be read before pieces move,
// because the set of free squares shifts with them.
func (p Position) Meta() Meta {
	info := p.X & p.Y & p.Z
	return Meta(pextLow(info, ^p.Occupied(), metaBits))
}

// withMeta scatters m into the free squares. Those squares must be empty.
func (p Position) withMeta(m Meta) Position {
	free := ^p.Occupied()
	if bits.OnesCount64(free) < metaBits {
		panic("goosemg: no room for metadata")
	}
	dep := Pdep(uint64(m), free)
	p.X |= dep
	p.Y |= dep
	p.Z |= dep
	return p
}

// SetMeta returns p with its metadata replaced by m.
func (p Position) SetMeta(m Meta) Position {
	p.clear(^p.Occupied())
	return p.withMeta(m)
}

// BlackToMove reports the real color of the side to move.
func (p Position) BlackToMove() bool { return p.Meta()&MetaBlackToMove != 0 }

// Flip rotates the board to the other side's point of view without making a
// move: ranks are mirrored, ownership swaps and castling rights swap halves.
// The side-to-move flag flips too. En passant is dropped since it only
// makes sense for the side that can capture, so Flip(Flip(p)) == p holds for
// positions without an en passant square.
func (p Position) Flip() Position {
	m := p.Meta()
	p.clear(^p.Occupied())
	occ := p.Occupied()
	p.Own = occ &^ p.Own
	p.Own, p.X, p.Y, p.Z = rotate(p.Own), rotate(p.X), rotate(p.Y), rotate(p.Z)
	m = (m &^ MetaEnPassant &^ MetaEnPassantFile).swapSides() ^ MetaBlackToMove
	return p.withMeta(m)
}

// Placement describes a board in real (white at the bottom) orientation.
type Placement struct {
	Pieces [64]PieceType
	White  uint64
}

// NewPosition builds a packed Position from a real-orientation placement.
// Castling rights in m are given as white = own, black = opponent, and the
// en passant file is for the side to move; the board is rotated when black
// is to move.
func NewPosition(pl Placement, m Meta) Position {
	var p Position
	for sq := Square(0); sq < 64; sq++ {
		if t := pl.Pieces[sq]; t != None && t != Info {
			p.set(sq, t)
		}
	}
	p.Own = pl.White & p.Occupied()
	if m&MetaBlackToMove != 0 {
		p.Own = p.Occupied() &^ p.Own
		p.Own, p.X, p.Y, p.Z = rotate(p.Own), rotate(p.X), rotate(p.Y), rotate(p.Z)
		m = m.swapSides()
	}
	return p.withMeta(m)
}

// Placement returns the board in real orientation, undoing the rotation.
func (p Position) Placement() Placement {
	var pl Placement
	black := p.BlackToMove()
	white := p.Own
	if black {
		white = p.Theirs()
	}
	for sq := Square(0); sq < 64; sq++ {
		at := sq
		if black {
			at = sq.Mirror()
		}
		pl.Pieces[at] = p.PieceAt(sq)
		if white&bb(sq) != 0 {
			pl.White |= bb(at)
		}
	}
	return pl
}
