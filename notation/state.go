package notation

import "github.com/Oliverans/GoosePackedMG/goosemg"

// Play applies m, legal in s, and advances the move counters: the half-move
// clock resets on pawn moves and captures, and the full-move number grows
// after black moves.
func Play(s State, m goosemg.Move) State {
	reset := s.Pos.PieceAt(m.Start()) == goosemg.Pawn || s.Pos.PieceAt(m.End()) != goosemg.None
	next := State{
		Pos:            s.Pos.Apply(m),
		HalfmoveClock:  s.HalfmoveClock + 1,
		FullmoveNumber: s.FullmoveNumber,
	}
	if reset {
		next.HalfmoveClock = 0
	}
	if s.SideToMove() == Black {
		next.FullmoveNumber++
	}
	return next
}
