package goosemg

import "math/bits"

// Square indexes the board from a1 = 0 to h8 = 63, seen from the side to move.
type Square uint8

const (
	A1 Square = 0
	C1 Square = 2
	D1 Square = 3
	E1 Square = 4
	F1 Square = 5
	G1 Square = 6
	H1 Square = 7
	A8 Square = 56
	H8 Square = 63
)

// File returns 0..7 for a..h.
func (sq Square) File() int { return int(sq & 7) }

// Rank returns 0..7 for ranks 1..8.
func (sq Square) Rank() int { return int(sq >> 3) }

// Mirror returns the square reflected across the board's horizontal axis,
// which is where a square lands after the position is rotated.
func (sq Square) Mirror() Square { return sq ^ 56 }

func (sq Square) String() string {
	if sq > 63 {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// Bitboard masks
const (
	FileA uint64 = 0x0101010101010101
	FileH uint64 = 0x8080808080808080
	Rank1 uint64 = 0x00000000000000ff
	Rank3 uint64 = 0x0000000000ff0000
	Rank8 uint64 = 0xff00000000000000
)

// Direction offsets in square indices.
const (
	North = 8
	East  = 1
	South = -North
	West  = -East
)

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// lsb returns the lowest set square. The mask must not be empty.
func lsb(mask uint64) Square {
	if mask == 0 {
		panic("goosemg: lsb of empty bitboard")
	}
	return Square(bits.TrailingZeros64(mask))
}

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) Square {
	sq := Square(bits.TrailingZeros64(*mask))
	*mask &= *mask - 1
	return sq
}

func moreThanOne(mask uint64) bool { return mask&(mask-1) != 0 }

// Single-step shifts. East/west steps drop the edge file first so nothing wraps.
func shiftN(b uint64) uint64 { return b << 8 }
func shiftS(b uint64) uint64 { return b >> 8 }
func shiftE(b uint64) uint64 { return (b &^ FileH) << 1 }
func shiftW(b uint64) uint64 { return (b &^ FileA) >> 1 }

func shiftNE(b uint64) uint64 { return shiftN(shiftE(b)) }
func shiftNW(b uint64) uint64 { return shiftN(shiftW(b)) }
func shiftSE(b uint64) uint64 { return shiftS(shiftE(b)) }
func shiftSW(b uint64) uint64 { return shiftS(shiftW(b)) }

// rotate mirrors a bitboard top to bottom. Files are preserved.
func rotate(b uint64) uint64 { return bits.ReverseBytes64(b) }

// Pext gathers the bits of x selected by mask into the low bits of the
// result (software equivalent of the BMI2 PEXT instruction).
func Pext(x, mask uint64) uint64 {
	var res uint64
	for i := uint(0); mask != 0; i++ {
		bit := mask & -mask
		if x&bit != 0 {
			res |= 1 << i
		}
		mask ^= bit
	}
	return res
}

// Pdep scatters the low bits of x into the positions selected by mask
// (software equivalent of the BMI2 PDEP instruction).
func Pdep(x, mask uint64) uint64 {
	var res uint64
	for ; x != 0 && mask != 0; x >>= 1 {
		bit := mask & -mask
		if x&1 != 0 {
			res |= bit
		}
		mask ^= bit
	}
	return res
}

// pextLow is Pext restricted to the n lowest bits of mask.
func pextLow(x, mask uint64, n int) uint64 {
	var res uint64
	for i := 0; i < n && mask != 0; i++ {
		bit := mask & -mask
		if x&bit != 0 {
			res |= 1 << uint(i)
		}
		mask ^= bit
	}
	return res
}
