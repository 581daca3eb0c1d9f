package crosscheck_test

import (
	"testing"

	"github.com/Oliverans/GoosePackedMG/internal/crosscheck"
	"github.com/Oliverans/GoosePackedMG/notation"
)

func TestAgreesWithOracle(t *testing.T) {
	cases := []struct {
		fen   string
		depth int
	}{
		{notation.StartFEN, 3},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3},
		{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 3},
		{"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 2},
		{"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", 2},
	}
	for _, tc := range cases {
		s := notation.MustParseFEN(tc.fen)
		if r := crosscheck.Check(s, tc.depth); !r.OK() {
			t.Errorf("%s depth %d: %s", tc.fen, tc.depth, r)
		}
	}
}

func TestCompareReportsDifferences(t *testing.T) {
	got := map[string]uint64{"e2e4": 20, "d2d4": 21, "a2a5": 1}
	want := map[string]uint64{"e2e4": 20, "d2d4": 20, "g1f3": 20}
	r := crosscheck.Compare(got, want)
	if r.OK() {
		t.Fatalf("expected differences")
	}
	if len(r.Missing) != 1 || r.Missing[0] != "g1f3" {
		t.Fatalf("missing: got %v", r.Missing)
	}
	if len(r.Extra) != 1 || r.Extra[0] != "a2a5" {
		t.Fatalf("extra: got %v", r.Extra)
	}
	if len(r.Mismatched) != 1 || r.Mismatched[0] != (crosscheck.Mismatch{Move: "d2d4", Got: 21, Want: 20}) {
		t.Fatalf("mismatched: got %v", r.Mismatched)
	}
	if r.Nodes != 42 || r.Oracle != 60 {
		t.Fatalf("totals: got %d %d want 42 60", r.Nodes, r.Oracle)
	}
}
