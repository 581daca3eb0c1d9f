package notation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/Oliverans/GoosePackedMG/goosemg"
	"github.com/Oliverans/GoosePackedMG/notation"
)

const kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		notation.StartFEN,
		kiwipeteFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
		"4k3/8/8/8/8/8/8/R3K3 b Q - 37 80",
	}
	for _, fen := range fens {
		s, err := notation.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := notation.FormatFEN(s); got != fen {
			t.Errorf("round trip: got %q want %q", got, fen)
		}
	}
}

func TestFENFields(t *testing.T) {
	s, err := notation.ParseFEN("4k3/8/8/8/8/8/8/R3K3 b Q - 37 80")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if s.SideToMove() != notation.Black {
		t.Fatalf("side to move: got %v want b", s.SideToMove())
	}
	if s.HalfmoveClock != 37 || s.FullmoveNumber != 80 {
		t.Fatalf("clocks: got %d %d want 37 80", s.HalfmoveClock, s.FullmoveNumber)
	}
	// white's queenside right is the opponent's from black's side
	if m := s.Pos.Meta(); m&goosemg.MetaCastling != goosemg.MetaOppQueenside {
		t.Fatalf("castling bits: got %#x want %#x", m&goosemg.MetaCastling, goosemg.MetaOppQueenside)
	}
}

func TestFENOptionalClocks(t *testing.T) {
	for _, fen := range []string{"8/8/8/8/8/8/8/K6k w - -", "8/8/8/8/8/8/8/K6k w - - 0"} {
		s, err := notation.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got, want := notation.FormatFEN(s), "8/8/8/8/8/8/8/K6k w - - 0 1"; got != want {
			t.Fatalf("FormatFEN: got %q want %q", got, want)
		}
	}
}

func TestFENErrors(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		// offset of the first occurrence of at, plus delta; -1 for a
		// board-level error reported at offset 0
		at    string
		delta int
	}{
		{"bad piece", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1", "X", 0},
		{"long rank", "rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "ppppppppp", 8},
		{"short rank", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "ppppppp/", 7},
		{"skip nine", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "9", 0},
		{"side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", " x", 1},
		{"castling letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkz - 0 1", "z", 0},
		{"castling without rook", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN1 w KQkq - 0 1", "KQkq", 0},
		{"en passant rank", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e3 0 1", "e3", 1},
		{"en passant without pawn", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e6 0 1", "e6", 1},
		{"halfmove range", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 101 1", "101", 2},
		{"fullmove zero", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0", "- 0 0", 4},
		{"trailing", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 x", " x", 0},
		{"no black king", "8/8/8/8/8/8/8/K7 w - - 0 1", "", -1},
		{"two white kings", "k7/8/8/8/8/8/8/K6K w - - 0 1", "", -1},
		{"pawn on back rank", "P3k3/8/8/8/8/8/8/4K3 w - - 0 1", "", -1},
		{"opponent in check", "4k3/4R3/8/8/8/8/8/4K3 w - - 0 1", "", -1},
		{"adjacent kings", "8/8/8/8/8/8/8/Kk6 w - - 0 1", "", -1},
		{"adjacent kings black to move", "8/8/8/8/8/8/1k6/K7 b - - 0 1", "", -1},
	}
	for _, tc := range cases {
		_, err := notation.ParseFEN(tc.fen)
		var pe *notation.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%s: got %v, want *ParseError", tc.name, err)
			continue
		}
		want := 0
		if tc.delta >= 0 {
			want = strings.Index(tc.fen, tc.at) + tc.delta
		}
		if pe.Offset != want {
			t.Errorf("%s: offset got %d want %d (%s)", tc.name, pe.Offset, want, pe.Msg)
		}
	}
}

func TestParseErrorRendersCaret(t *testing.T) {
	_, err := notation.ParseFEN("8/8/8/8/8/8/8/K6k q - - 0 1")
	if err == nil {
		t.Fatalf("expected error")
	}
	lines := strings.Split(err.Error(), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected three lines, got %q", err.Error())
	}
	caret := strings.Index(lines[2], "^") - strings.Index(lines[1], "8")
	if caret != strings.Index("8/8/8/8/8/8/8/K6k q - - 0 1", "q") {
		t.Fatalf("caret misplaced:\n%s", err.Error())
	}
}

func TestMustParseFENPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	notation.MustParseFEN("not a fen")
}
