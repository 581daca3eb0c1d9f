package goosemg

// Move packs a move into 16 bits.
type Move uint16

// Bitfield layout within Move (from LSB to MSB)
const (
	moveStartShift = 0  // 6 bits
	moveEndShift   = 6  // 6 bits
	movePieceShift = 12 // 3 bits
	moveCastleBit  = 1 << 15
)

// NewMove constructs a Move. piece is the type that ends up on end, which is
// the moving piece except on promotion.
func NewMove(start, end Square, piece PieceType, castling bool) Move {
	m := Move(start&0x3F)<<moveStartShift |
		Move(end&0x3F)<<moveEndShift |
		Move(piece&7)<<movePieceShift
	if castling {
		m |= moveCastleBit
	}
	return m
}

// Start returns the source square.
func (m Move) Start() Square { return Square(m >> moveStartShift & 0x3F) }

// End returns the destination square.
func (m Move) End() Square { return Square(m >> moveEndShift & 0x3F) }

// Piece returns the piece type placed on the destination.
func (m Move) Piece() PieceType { return PieceType(m >> movePieceShift & 7) }

// Castling reports whether this is a castling king move.
func (m Move) Castling() bool { return m&moveCastleBit != 0 }

// String renders the move in the mover's frame as the resulting piece letter
// followed by both squares, e.g. "Pe2e4", "Ke1g1" or "Qe7e8" for a queen
// promotion. Use the notation package for real-orientation text.
func (m Move) String() string {
	return string(" PNBRQK?"[m.Piece()]) + m.Start().String() + m.End().String()
}

// MaxMoves bounds the number of legal moves in any reachable position (218).
const MaxMoves = 256

// MoveList is a fixed-capacity list of moves.
type MoveList struct {
	moves [MaxMoves]Move
	n     int
}

func (l *MoveList) add(m Move) {
	l.moves[l.n] = m
	l.n++
}

// Len returns the number of moves.
func (l *MoveList) Len() int { return l.n }

// At returns the i-th move.
func (l *MoveList) At(i int) Move { return l.moves[i] }

// Moves returns the moves as a slice backed by the list.
func (l *MoveList) Moves() []Move { return l.moves[:l.n] }

// Reset empties the list.
func (l *MoveList) Reset() { l.n = 0 }

// Contains reports whether m is in the list.
func (l *MoveList) Contains(m Move) bool {
	for _, x := range l.moves[:l.n] {
		if x == m {
			return true
		}
	}
	return false
}
