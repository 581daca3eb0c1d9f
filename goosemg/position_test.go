package goosemg_test

import (
	"strings"
	"testing"

	"github.com/Oliverans/GoosePackedMG/goosemg"
	"github.com/Oliverans/GoosePackedMG/notation"
)

func TestInitialPositionAccessors(t *testing.T) {
	pos := mustPos(t, notation.StartFEN)
	if got := pos.Occupied(); got != 0xffff00000000ffff {
		t.Fatalf("occupied: got %#x", got)
	}
	if pos.Own != 0xffff {
		t.Fatalf("own: got %#x want %#x", pos.Own, 0xffff)
	}
	checks := []struct {
		sq   goosemg.Square
		want goosemg.PieceType
	}{
		{goosemg.A1, goosemg.Rook},
		{goosemg.E1, goosemg.King},
		{goosemg.D1, goosemg.Queen},
		{goosemg.Square(12), goosemg.Pawn}, // e2
		{goosemg.Square(28), goosemg.None}, // e4
		{goosemg.H8, goosemg.Rook},
	}
	for _, c := range checks {
		if got := pos.PieceAt(c.sq); got != c.want {
			t.Errorf("PieceAt(%s): got %v want %v", c.sq, got, c.want)
		}
	}
	if got := pos.Pieces(goosemg.Pawn); got != 0x00ff00000000ff00 {
		t.Fatalf("pawns: got %#x", got)
	}
	if got := pos.Meta() & goosemg.MetaCastling; got != goosemg.MetaCastling {
		t.Fatalf("castling: got %#x want %#x", got, goosemg.MetaCastling)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	pos := mustPos(t, kiwipeteFEN)
	occ := pos.Occupied()
	for m := goosemg.Meta(0); m < 1<<9; m++ {
		p := pos.SetMeta(m)
		if got := p.Meta(); got != m {
			t.Fatalf("meta: got %#x want %#x", got, m)
		}
		if p.Occupied() != occ {
			t.Fatalf("meta %#x changed occupancy", m)
		}
		// metadata squares never read as pieces
		for sq := goosemg.Square(0); sq < 64; sq++ {
			if occ&(1<<sq) == 0 && p.PieceAt(sq) != goosemg.None {
				t.Fatalf("meta %#x: square %s reads %v", m, sq, p.PieceAt(sq))
			}
		}
	}
}

func TestFlipInvolution(t *testing.T) {
	for _, fen := range []string{notation.StartFEN, kiwipeteFEN, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"} {
		pos := mustPos(t, fen)
		if got := pos.Flip().Flip(); got != pos {
			t.Fatalf("%s: Flip(Flip(p)) != p", fen)
		}
		if pos.Flip().BlackToMove() == pos.BlackToMove() {
			t.Fatalf("%s: Flip kept the side to move", fen)
		}
	}
}

func TestKnightDanceReturnsHome(t *testing.T) {
	start := mustPos(t, notation.StartFEN)
	pos := start
	for _, text := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
		m, err := notation.ParseUCI(pos, text)
		if err != nil {
			t.Fatalf("ParseUCI(%s): %v", text, err)
		}
		pos = pos.Apply(m)
	}
	if pos != start {
		t.Fatalf("position after knight dance differs from start")
	}
	if pos.Hash() != start.Hash() {
		t.Fatalf("hash after knight dance differs from start")
	}
}

// play applies UCI moves from fen and returns the resulting position.
func play(t *testing.T, fen string, moves ...string) goosemg.Position {
	t.Helper()
	pos := mustPos(t, fen)
	for _, text := range moves {
		m, err := notation.ParseUCI(pos, text)
		if err != nil {
			t.Fatalf("ParseUCI(%s): %v", text, err)
		}
		pos = pos.Apply(m)
	}
	return pos
}

// boardFEN drops the move counters, which Apply does not track.
func boardFEN(pos goosemg.Position) string {
	f := strings.Fields(notation.FormatFEN(notation.State{Pos: pos, FullmoveNumber: 1}))
	return strings.Join(f[:4], " ")
}

func TestApplyTransitions(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		moves []string
		want  string
	}{
		{"double push sets en passant", notation.StartFEN, []string{"e2e4"},
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3"},
		{"black double push", notation.StartFEN, []string{"e2e4", "c7c5"},
			"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6"},
		{"en passant clears victim", "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", []string{"e5d6"},
			"k7/8/3P4/8/8/8/8/7K b - -"},
		{"white castles kingside", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"e1g1"},
			"r3k2r/8/8/8/8/8/8/R4RK1 b kq -"},
		{"black castles queenside", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", []string{"e8c8"},
			"2kr3r/8/8/8/8/8/8/R3K2R w KQ -"},
		{"rook move drops one right", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"h1h2"},
			"r3k2r/8/8/8/8/8/7R/R3K3 b Qkq -"},
		{"rook capture drops opponent right", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"a1a8"},
			"R3k2r/8/8/8/8/8/8/4K2R b Kk -"},
		{"promotion", "1n5k/P7/8/8/8/8/8/7K w - - 0 1", []string{"a7b8q"},
			"1Q5k/8/8/8/8/8/8/7K b - -"},
	}
	for _, tc := range cases {
		if got := boardFEN(play(t, tc.fen, tc.moves...)); got != tc.want {
			t.Errorf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestHashTransposition(t *testing.T) {
	a := play(t, notation.StartFEN, "g1f3", "g8f6", "b1c3")
	b := play(t, notation.StartFEN, "b1c3", "g8f6", "g1f3")
	if a != b || a.Hash() != b.Hash() {
		t.Fatalf("transposed positions differ")
	}
	c := play(t, notation.StartFEN, "b1c3", "b8c6", "g1f3")
	if a.Hash() == c.Hash() {
		t.Fatalf("distinct positions share a hash")
	}
	// same board, other side to move
	if mustPos(t, notation.StartFEN).Hash() == mustPos(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1").Hash() {
		t.Fatalf("side to move does not affect the hash")
	}
}

func TestPlacementRoundTrip(t *testing.T) {
	for _, fen := range []string{kiwipeteFEN, "r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1"} {
		pos := mustPos(t, fen)
		again := goosemg.NewPosition(pos.Placement(), metaAsWhite(pos))
		if again != pos {
			t.Fatalf("%s: NewPosition(Placement()) differs", fen)
		}
	}
}

// metaAsWhite converts a position's metadata to the white-as-own convention
// NewPosition expects.
func metaAsWhite(pos goosemg.Position) goosemg.Meta {
	m := pos.Meta()
	if !pos.BlackToMove() {
		return m
	}
	c := m & goosemg.MetaCastling
	c = (c<<2 | c>>2) & goosemg.MetaCastling
	return m&^goosemg.MetaCastling | c
}

func TestMoveString(t *testing.T) {
	m := goosemg.NewMove(goosemg.Square(12), goosemg.Square(28), goosemg.Pawn, false)
	if got := m.String(); got != "Pe2e4" {
		t.Fatalf("String: got %q want %q", got, "Pe2e4")
	}
	if m.Start() != 12 || m.End() != 28 || m.Piece() != goosemg.Pawn || m.Castling() {
		t.Fatalf("fields did not round trip: %s", m)
	}
	c := goosemg.NewMove(goosemg.E1, goosemg.G1, goosemg.King, true)
	if !c.Castling() || c.End() != goosemg.G1 {
		t.Fatalf("castling move fields: %s", c)
	}
}
