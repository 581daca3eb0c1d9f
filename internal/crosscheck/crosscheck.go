// Package crosscheck compares perft divide counts against an independent
// move generator.
package crosscheck

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Oliverans/GoosePackedMG/goosemg"
	"github.com/Oliverans/GoosePackedMG/notation"
)

// Mismatch is a root move whose subtree counts disagree.
type Mismatch struct {
	Move      string
	Got, Want uint64
}

// Report lists every difference between two divides, each slice sorted by
// move text.
type Report struct {
	Missing    []string // moves only the oracle generates
	Extra      []string // moves only we generate
	Mismatched []Mismatch
	Nodes      uint64
	Oracle     uint64
}

// OK reports whether the divides agree.
func (r Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0 && len(r.Mismatched) == 0
}

func (r Report) String() string {
	if r.OK() {
		return fmt.Sprintf("ok: %d nodes", r.Nodes)
	}
	return fmt.Sprintf("nodes %d, oracle %d, missing %v, extra %v, mismatched %v",
		r.Nodes, r.Oracle, r.Missing, r.Extra, r.Mismatched)
}

// Divide counts the leaves under each root move of s, keyed by UCI text.
func Divide(s notation.State, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	for m, n := range goosemg.PerftDivide(s.Pos, depth) {
		out[notation.FormatUCI(s.Pos, m)] = n
	}
	return out
}

// OracleDivide is Divide computed by dragontoothmg from the FEN text.
func OracleDivide(fen string, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	b := dragontoothmg.ParseFen(fen)
	for _, m := range b.GenerateLegalMoves() {
		undo := b.Apply(m)
		out[m.String()] = oraclePerft(&b, depth-1)
		undo()
	}
	return out
}

func oraclePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := b.Apply(m)
		nodes += oraclePerft(b, depth-1)
		undo()
	}
	return nodes
}

// Compare diffs our divide against the oracle's.
func Compare(got, want map[string]uint64) Report {
	var r Report
	for _, mv := range sortedKeys(want) {
		n, ok := got[mv]
		r.Oracle += want[mv]
		switch {
		case !ok:
			r.Missing = append(r.Missing, mv)
		case n != want[mv]:
			r.Mismatched = append(r.Mismatched, Mismatch{Move: mv, Got: n, Want: want[mv]})
		}
	}
	for _, mv := range sortedKeys(got) {
		r.Nodes += got[mv]
		if _, ok := want[mv]; !ok {
			r.Extra = append(r.Extra, mv)
		}
	}
	return r
}

// Check runs both generators on s to depth and compares them.
func Check(s notation.State, depth int) Report {
	return Compare(Divide(s, depth), OracleDivide(notation.FormatFEN(s), depth))
}

func sortedKeys(m map[string]uint64) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
