package notation_test

import (
	"errors"
	"testing"

	"github.com/Oliverans/GoosePackedMG/notation"
)

func TestUCIRoundTrip(t *testing.T) {
	for _, fen := range sanPositions {
		pos := notation.MustParseFEN(fen).Pos
		l := pos.Generate()
		for _, m := range l.Moves() {
			text := notation.FormatUCI(pos, m)
			got, err := notation.ParseUCI(pos, text)
			if err != nil {
				t.Fatalf("%s: ParseUCI(%q): %v", fen, text, err)
			}
			if got != m {
				t.Fatalf("%s: ParseUCI(%q) got %s want %s", fen, text, got, m)
			}
		}
	}
}

func TestFormatUCIBlackToMove(t *testing.T) {
	pos := notation.MustParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1").Pos
	m, err := notation.ParseUCI(pos, "e7e5")
	if err != nil {
		t.Fatalf("ParseUCI: %v", err)
	}
	// the board is stored from black's side, so e7 is e2 internally
	if m.Start().String() != "e2" || m.End().String() != "e4" {
		t.Fatalf("internal squares: got %s %s", m.Start(), m.End())
	}
	if got := notation.FormatUCI(pos, m); got != "e7e5" {
		t.Fatalf("FormatUCI: got %q want %q", got, "e7e5")
	}
}

func TestParseUCIErrors(t *testing.T) {
	pos := notation.MustParseFEN(notation.StartFEN).Pos
	cases := []struct {
		text   string
		offset int
	}{
		{"e2e5", 0},
		{"i2e4", 0},
		{"e2e0", 3},
		{"e2e4x", 4},
		{"e2e4qq", 5},
		{"e2", 2},
	}
	for _, tc := range cases {
		_, err := notation.ParseUCI(pos, tc.text)
		var pe *notation.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParseUCI(%q): got %v, want *ParseError", tc.text, err)
			continue
		}
		if pe.Offset != tc.offset {
			t.Errorf("ParseUCI(%q): offset got %d want %d (%s)", tc.text, pe.Offset, tc.offset, pe.Msg)
		}
	}
}
