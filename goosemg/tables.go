package goosemg

import "math/bits"

// Slider kinds index the per-square table arrays.
const (
	diagonal   = 0
	orthogonal = 1
)

// Sizes of the flattened slider tables: sum over squares of 2^popcount(mask).
const (
	bishopTableSize = 5248
	rookTableSize   = 102400
)

// squareTables holds everything precomputed for one square.
type squareTables struct {
	knight uint64
	king   uint64
	mask   [2]uint64 // relevant occupancy, edges and the square itself removed
	offset [2]uint32 // start of this square's slice in sliderAttacks
}

var (
	tables        [64]squareTables
	sliderAttacks [bishopTableSize + rookTableSize]uint64
)

func init() {
	initTables()
}

// initTables fills the knight, king and slider tables. It is run once from
// init; calling it again rebuilds identical tables.
func initTables() {
	var index uint32
	for sq := Square(0); sq < 64; sq++ {
		t := &tables[sq]
		bit := bb(sq)

		t.knight = shiftN(shiftN(shiftE(bit))) |
			shiftE(shiftN(shiftE(bit))) |
			shiftE(shiftS(shiftE(bit))) |
			shiftS(shiftS(shiftE(bit))) |
			shiftS(shiftS(shiftW(bit))) |
			shiftW(shiftS(shiftW(bit))) |
			shiftW(shiftN(shiftW(bit))) |
			shiftN(shiftN(shiftW(bit)))

		t.king = shiftN(bit) | shiftE(bit) | shiftS(bit) | shiftW(bit) |
			shiftNE(bit) | shiftSE(bit) | shiftSW(bit) | shiftNW(bit)

		diag, anti := diagonalLines(sq)
		edges := Rank1 | Rank8 | FileA | FileH
		t.mask[diagonal] = (diag | anti) &^ (edges | bit)
		t.offset[diagonal] = index
		index = fillSliderTable(sq, t.mask[diagonal], index, diag, anti)

		rank := Rank1 << (8 * uint(sq.Rank()))
		file := FileA << uint(sq.File())
		t.mask[orthogonal] = ((rank &^ (FileA | FileH)) | (file &^ (Rank1 | Rank8))) &^ bit
		t.offset[orthogonal] = index
		index = fillSliderTable(sq, t.mask[orthogonal], index, rank, file)
	}
	if index != uint32(len(sliderAttacks)) {
		panic("goosemg: slider table size mismatch")
	}
}

// fillSliderTable visits every subset of mask with the carry-rippler and
// stores the attack set for each at index+Pext(subset, mask).
func fillSliderTable(sq Square, mask uint64, index uint32, line1, line2 uint64) uint32 {
	var occ uint64
	for {
		sliderAttacks[index+uint32(Pext(occ, mask))] = lineAttacks(sq, line1, occ) | lineAttacks(sq, line2, occ)
		occ = (occ - mask) & mask
		if occ == 0 {
			break
		}
	}
	return index + 1<<uint(bits.OnesCount64(mask))
}

// lineAttacks returns the squares a slider on sq sees along a full line.
// Blockers below sq cap the ray downward at the nearest one (the highest set
// bit of the low part), blockers above cap it upward at the nearest one
// (carried out by the subtraction high - low).
func lineAttacks(sq Square, line, occ uint64) uint64 {
	occ &= line
	low := occ & (bb(sq) - 1)
	high := occ &^ low
	low = uint64(1) << uint(63-bits.LeadingZeros64(low|1))
	return line & (high ^ (high - low)) &^ bb(sq)
}

// diagonalLines returns the full a1-h8 and a8-h1 direction lines through sq.
func diagonalLines(sq Square) (diag, anti uint64) {
	f, r := sq.File(), sq.Rank()
	for s := 0; s < 64; s++ {
		sf, sr := s&7, s>>3
		if sf-sr == f-r {
			diag |= 1 << uint(s)
		}
		if sf+sr == f+r {
			anti |= 1 << uint(s)
		}
	}
	return diag, anti
}

func checkSquare(sq Square) {
	if sq > 63 {
		panic("goosemg: square out of range")
	}
}

// KnightAttacks returns the knight pattern from sq.
func KnightAttacks(sq Square) uint64 {
	checkSquare(sq)
	return tables[sq].knight
}

// KingAttacks returns the king pattern from sq.
func KingAttacks(sq Square) uint64 {
	checkSquare(sq)
	return tables[sq].king
}

// BishopAttacks returns diagonal slider attacks from sq for the given occupancy.
func BishopAttacks(sq Square, occ uint64) uint64 {
	checkSquare(sq)
	t := &tables[sq]
	return sliderAttacks[t.offset[diagonal]+uint32(Pext(occ, t.mask[diagonal]))]
}

// RookAttacks returns orthogonal slider attacks from sq for the given occupancy.
func RookAttacks(sq Square, occ uint64) uint64 {
	checkSquare(sq)
	t := &tables[sq]
	return sliderAttacks[t.offset[orthogonal]+uint32(Pext(occ, t.mask[orthogonal]))]
}

// QueenAttacks is the union of bishop and rook attacks.
func QueenAttacks(sq Square, occ uint64) uint64 {
	return BishopAttacks(sq, occ) | RookAttacks(sq, occ)
}

// pieceAttacks dispatches on a non-pawn piece type.
func pieceAttacks(t PieceType, sq Square, occ uint64) uint64 {
	switch t {
	case Knight:
		return KnightAttacks(sq)
	case Bishop:
		return BishopAttacks(sq, occ)
	case Rook:
		return RookAttacks(sq, occ)
	case Queen:
		return QueenAttacks(sq, occ)
	case King:
		return KingAttacks(sq)
	default:
		panic("goosemg: no attack pattern for piece type")
	}
}
