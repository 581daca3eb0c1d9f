package notation

import (
	"strings"

	"github.com/Oliverans/GoosePackedMG/goosemg"
)

// realSquare converts a square of pos's rotated board to real orientation.
// The mapping is its own inverse.
func realSquare(pos goosemg.Position, sq goosemg.Square) goosemg.Square {
	if pos.BlackToMove() {
		return sq.Mirror()
	}
	return sq
}

// FormatUCI renders m, legal in pos, in long algebraic form ("e2e4",
// "e7e8q"). Castling is written as the king's two-square move.
func FormatUCI(pos goosemg.Position, m goosemg.Move) string {
	var sb strings.Builder
	sb.WriteString(realSquare(pos, m.Start()).String())
	sb.WriteString(realSquare(pos, m.End()).String())
	if pos.PieceAt(m.Start()) == goosemg.Pawn && m.Piece() != goosemg.Pawn {
		sb.WriteByte(pieceLetters[m.Piece()] | 0x20)
	}
	return sb.String()
}

// ParseUCI resolves long algebraic text against the legal moves of pos.
func ParseUCI(pos goosemg.Position, text string) (goosemg.Move, error) {
	p := &parser{in: text}
	for i := 0; i < 2; i++ {
		if f := p.next(); f < 'a' || f > 'h' {
			return 0, p.errorf("invalid file")
		}
		if r := p.next(); r < '1' || r > '8' {
			return 0, p.errorf("invalid rank")
		}
	}
	if !p.done() {
		switch p.next() {
		case 'n', 'b', 'r', 'q':
		default:
			return 0, p.errorf("invalid promotion piece; must be one of nbrq")
		}
	}
	if !p.done() {
		return 0, p.errorAt(p.off, "trailing characters after move")
	}

	l := pos.Generate()
	for _, m := range l.Moves() {
		if FormatUCI(pos, m) == text {
			return m, nil
		}
	}
	return 0, p.errorAt(0, "illegal move")
}
