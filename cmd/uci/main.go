package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Oliverans/GoosePackedMG/internal/perftrun"
	"github.com/Oliverans/GoosePackedMG/notation"
)

func main() {
	uciLoop(os.Stdin, os.Stdout)
}

// uciLoop speaks the position-handling subset of UCI plus "go perft N",
// "d" (show the position) and "moves" (list legal moves in SAN). There is no
// search, so a plain "go" answers "bestmove (none)".
func uciLoop(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	state := notation.MustParseFEN(notation.StartFEN)
	runner := &perftrun.Runner{}

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Fprintln(out, "id name GoosePackedMG")
			fmt.Fprintln(out, "id author Goose")
			fmt.Fprintln(out, "uciok")
		case "isready":
			fmt.Fprintln(out, "readyok")
		case "ucinewgame":
			state = notation.MustParseFEN(notation.StartFEN)
		case "quit":
			return
		case "position":
			next, err := parsePosition(tokens[1:])
			if err != nil {
				fmt.Fprintf(out, "info string %v\n", strings.ReplaceAll(err.Error(), "\n", " "))
				continue
			}
			state = next
		case "go":
			if len(tokens) < 3 || strings.ToLower(tokens[1]) != "perft" {
				fmt.Fprintln(out, "info string search is not supported")
				fmt.Fprintln(out, "bestmove (none)")
				continue
			}
			depth, err := strconv.Atoi(tokens[2])
			if err != nil || depth < 1 {
				fmt.Fprintln(out, "info string Malformed go perft depth")
				continue
			}
			goPerft(out, runner, state, depth)
		case "d":
			fmt.Fprintf(out, "Fen: %s\n", notation.FormatFEN(state))
			fmt.Fprintf(out, "Key: %016x\n", state.Pos.Hash())
			fmt.Fprintf(out, "Status: %s\n", state.Pos.Status())
		case "moves":
			l := state.Pos.Generate()
			sans := make([]string, 0, l.Len())
			for _, m := range l.Moves() {
				sans = append(sans, notation.FormatSAN(state.Pos, m))
			}
			slices.Sort(sans)
			fmt.Fprintln(out, strings.Join(sans, " "))
		default:
			fmt.Fprintf(out, "info string Unknown command: %s\n", tokens[0])
		}
	}
}

// parsePosition handles "startpos [moves ...]" and "fen <fen> [moves ...]".
// Moves may be given in UCI or SAN form.
func parsePosition(args []string) (notation.State, error) {
	if len(args) == 0 {
		return notation.State{}, fmt.Errorf("Malformed position command")
	}
	var state notation.State
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		state = notation.MustParseFEN(notation.StartFEN)
	case "fen":
		n := len(rest)
		for i, tok := range rest {
			if strings.ToLower(tok) == "moves" {
				n = i
				break
			}
		}
		var err error
		if state, err = notation.ParseFEN(strings.Join(rest[:n], " ")); err != nil {
			return notation.State{}, err
		}
		rest = rest[n:]
	default:
		return notation.State{}, fmt.Errorf("Invalid position subcommand")
	}

	if len(rest) == 0 {
		return state, nil
	}
	if strings.ToLower(rest[0]) != "moves" {
		return notation.State{}, fmt.Errorf("expected moves, got %q", rest[0])
	}
	for _, text := range rest[1:] {
		m, err := notation.ParseUCI(state.Pos, strings.ToLower(text))
		if err != nil {
			if m, err = notation.ParseSAN(state.Pos, text); err != nil {
				return notation.State{}, fmt.Errorf("Move %s not found for position %s", text, notation.FormatFEN(state))
			}
		}
		state = notation.Play(state, m)
	}
	return state, nil
}

// goPerft prints a divide in the "move: nodes" form GUIs and perft
// debuggers expect.
func goPerft(out io.Writer, runner *perftrun.Runner, state notation.State, depth int) {
	start := time.Now()
	div, err := runner.Divide(context.Background(), state.Pos, depth)
	if err != nil {
		fmt.Fprintf(out, "info string %v\n", err)
		return
	}
	byText := make(map[string]uint64, len(div))
	var total uint64
	for m, n := range div {
		byText[notation.FormatUCI(state.Pos, m)] = n
		total += n
	}
	keys := maps.Keys(byText)
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s: %d\n", k, byText[k])
	}
	fmt.Fprintf(out, "\nNodes searched: %d\n", total)
	fmt.Fprintf(out, "info string time %d ms\n", time.Since(start).Milliseconds())
}
