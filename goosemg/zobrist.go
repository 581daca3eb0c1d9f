package goosemg

import "math/rand"

// Zobrist keys for (owner, piece type, square) and for every metadata value.
// The position is always seen from the side to move, so the owner index is
// 0 for the mover and 1 for the opponent; the black-to-move bit in the
// metadata keeps the two orientations of one board apart.
var zobristPiece [2][7][64]uint64
var zobristMeta [1 << metaBits]uint64

// Initialize Zobrist keys (called on package init)
func init() {
	initZobrist()
}

func initZobrist() {
	// Use a fixed seed so hashes are stable across runs
	rnd := rand.New(rand.NewSource(0xC0DE))

	for side := 0; side < 2; side++ {
		for t := Pawn; t <= King; t++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[side][t][sq] = rnd.Uint64()
			}
		}
	}
	for m := range zobristMeta {
		zobristMeta[m] = rnd.Uint64()
	}
}

// Hash returns the Zobrist key of the position.
func (p Position) Hash() uint64 {
	key := zobristMeta[p.Meta()]

	own := p.Own
	for own != 0 {
		sq := popLSB(&own)
		key ^= zobristPiece[0][p.PieceAt(sq)][sq]
	}
	theirs := p.Theirs()
	for theirs != 0 {
		sq := popLSB(&theirs)
		key ^= zobristPiece[1][p.PieceAt(sq)][sq]
	}
	return key
}
