// Package epd reads perft suites: one FEN per line followed by expected
// leaf counts, e.g.
//
//	rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 ;D1 20 ;D2 400
//
// Blank lines and lines starting with # are skipped. Files ending in .zst
// are decompressed on the fly.
package epd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/exp/slices"

	"github.com/Oliverans/GoosePackedMG/notation"
)

// Expect is one expected leaf count.
type Expect struct {
	Depth int
	Nodes uint64
}

// Entry is a parsed suite line. Expects are sorted by depth.
type Entry struct {
	Line    int
	State   notation.State
	Expects []Expect
}

// FEN returns the canonical FEN of the entry's position.
func (e Entry) FEN() string { return notation.FormatFEN(e.State) }

// LineError reports a malformed suite line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("epd: line %d: %v", e.Line, e.Err) }

func (e *LineError) Unwrap() error { return e.Err }

// Open reads a suite file, decompressing it when the name ends in .zst.
func Open(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("epd: %s: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}
	return Parse(r)
}

// Parse reads suite lines from r.
func Parse(r io.Reader) ([]Entry, error) {
	var out []Entry
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		e, err := parseLine(text)
		if err != nil {
			return nil, &LineError{Line: line, Err: err}
		}
		e.Line = line
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseLine(text string) (Entry, error) {
	fields := strings.Split(text, ";")
	state, err := notation.ParseFEN(strings.TrimSpace(fields[0]))
	if err != nil {
		return Entry{}, err
	}
	e := Entry{State: state}
	seen := make(map[int]bool)
	for _, f := range fields[1:] {
		parts := strings.Fields(f)
		if len(parts) == 0 {
			continue
		}
		if len(parts) != 2 || len(parts[0]) < 2 || parts[0][0] != 'D' {
			return Entry{}, fmt.Errorf("malformed count %q, want D<depth> <nodes>", strings.TrimSpace(f))
		}
		depth, err := strconv.Atoi(parts[0][1:])
		if err != nil || depth < 1 {
			return Entry{}, fmt.Errorf("invalid depth %q", parts[0])
		}
		nodes, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return Entry{}, fmt.Errorf("invalid node count %q", parts[1])
		}
		if seen[depth] {
			return Entry{}, fmt.Errorf("depth %d listed twice", depth)
		}
		seen[depth] = true
		e.Expects = append(e.Expects, Expect{Depth: depth, Nodes: nodes})
	}
	slices.SortFunc(e.Expects, func(a, b Expect) bool { return a.Depth < b.Depth })
	return e, nil
}
