package notation

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/Oliverans/GoosePackedMG/goosemg"
)

// StartFEN is the FEN string for the standard initial chess position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Color is the real color of a side.
type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == Black {
		return "b"
	}
	return "w"
}

// State is a packed position plus the move counters FEN carries and the
// packed board has no room for.
type State struct {
	Pos            goosemg.Position
	HalfmoveClock  int
	FullmoveNumber int
}

// SideToMove returns the real color of the side to move.
func (s State) SideToMove() Color {
	if s.Pos.BlackToMove() {
		return Black
	}
	return White
}

// pieceFromByte converts a FEN letter of either case to its piece type.
func pieceFromByte(c byte) goosemg.PieceType {
	switch c | 0x20 {
	case 'p':
		return goosemg.Pawn
	case 'n':
		return goosemg.Knight
	case 'b':
		return goosemg.Bishop
	case 'r':
		return goosemg.Rook
	case 'q':
		return goosemg.Queen
	case 'k':
		return goosemg.King
	default:
		return goosemg.None
	}
}

// pieceLetters maps piece types to upper-case FEN letters.
const pieceLetters = "-PNBRQK-"

func square(file, rank int) goosemg.Square { return goosemg.Square(rank*8 + file) }

// MustParseFEN is ParseFEN that panics on invalid input.
func MustParseFEN(fen string) State {
	s, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return s
}

// ParseFEN parses a FEN string. The half-move clock and full-move number are
// optional and default to 0 and 1. Any failure is returned as a *ParseError
// pointing at the offending byte; parsing stops at the first problem.
func ParseFEN(fen string) (State, error) {
	p := &parser{in: fen}
	var pl goosemg.Placement

	// 1. Piece placement, rank 8 first
	rank, file := 7, 0
	for {
		c := p.next()
		if c == ' ' || c == 0 {
			if rank != 0 || file != 8 {
				return State{}, p.errorf("board description ends early")
			}
			if c == 0 {
				return State{}, p.errorf("expected space before side to move")
			}
			break
		}
		switch {
		case c == '/':
			if file != 8 {
				return State{}, p.errorf("rank %d has %d squares, want 8", rank+1, file)
			}
			if rank == 0 {
				return State{}, p.errorf("more than 8 ranks")
			}
			rank, file = rank-1, 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
			if file > 8 {
				return State{}, p.errorf("rank description is more than 8 squares")
			}
		case c == '0' || c == '9':
			return State{}, p.errorf("invalid rank skip amount")
		default:
			t := pieceFromByte(c)
			if t == goosemg.None {
				return State{}, p.errorf("invalid piece %q; must be one of PNBRQK", c)
			}
			if file >= 8 {
				return State{}, p.errorf("rank description is more than 8 squares")
			}
			sq := square(file, rank)
			pl.Pieces[sq] = t
			if c&0x20 == 0 {
				pl.White |= 1 << sq
			}
			file++
		}
	}

	// 2. Side to move
	var meta goosemg.Meta
	black := false
	switch p.next() {
	case 'w':
	case 'b':
		black = true
		meta |= goosemg.MetaBlackToMove
	default:
		return State{}, p.errorf("expected w or b for side to move")
	}
	if p.next() != ' ' {
		return State{}, p.errorf("expected space before castling rights")
	}

	// 3. Castling rights, white as own
	if p.peek() == '-' {
		p.next()
	} else {
		if p.peek() == ' ' || p.done() {
			return State{}, p.errorAt(p.off, "expected castling rights")
		}
		for p.peek() != ' ' && !p.done() {
			c := p.next()
			var right goosemg.Meta
			var king, rook goosemg.Square
			switch c {
			case 'K':
				right, king, rook = goosemg.MetaOwnKingside, goosemg.E1, goosemg.H1
			case 'Q':
				right, king, rook = goosemg.MetaOwnQueenside, goosemg.E1, goosemg.A1
			case 'k':
				right, king, rook = goosemg.MetaOppKingside, goosemg.E1.Mirror(), goosemg.H8
			case 'q':
				right, king, rook = goosemg.MetaOppQueenside, goosemg.E1.Mirror(), goosemg.A8
			default:
				return State{}, p.errorf("expected one of KQkq for castling rights")
			}
			if meta&right != 0 {
				return State{}, p.errorf("repeated castling right %q", c)
			}
			white := c&0x20 == 0
			if !hasPiece(pl, king, goosemg.King, white) || !hasPiece(pl, rook, goosemg.Rook, white) {
				return State{}, p.errorf("castling right %q without king and rook on their home squares", c)
			}
			meta |= right
		}
	}
	if p.next() != ' ' {
		return State{}, p.errorf("expected space before en passant square")
	}

	// 4. En passant target square
	if p.peek() == '-' {
		p.next()
	} else {
		epFile := int(p.next()) - 'a'
		if epFile < 0 || epFile >= 8 {
			return State{}, p.errorf("invalid file in en passant square")
		}
		epRank := int(p.next()) - '1'
		if epRank < 0 || epRank >= 8 {
			return State{}, p.errorf("invalid rank in en passant square")
		}

		// the pawn that just double-pushed sits one rank past the target,
		// with the target and its start square empty
		validRank, dir := 5, -1
		if black {
			validRank, dir = 2, 1
		}
		if epRank != validRank {
			return State{}, p.errorf("invalid en passant square; not on rank %d", validRank+1)
		}
		if !hasPiece(pl, square(epFile, epRank+dir), goosemg.Pawn, black) ||
			pl.Pieces[square(epFile, epRank)] != goosemg.None ||
			pl.Pieces[square(epFile, epRank-dir)] != goosemg.None {
			return State{}, p.errorf("invalid en passant square; no pawn could have double-pushed")
		}
		meta |= goosemg.MetaEnPassant | goosemg.Meta(epFile)
	}

	// 5. and 6. Half-move clock and full-move number are optional
	s := State{FullmoveNumber: 1}
	if !p.done() {
		if p.next() != ' ' {
			return State{}, p.errorf("expected space before half-move clock")
		}
		n, ok := p.number()
		if !ok {
			return State{}, p.errorAt(p.off, "expected half-move clock")
		}
		if n > 100 {
			return State{}, p.errorf("half-move clock must be in range 0..100")
		}
		s.HalfmoveClock = n
	}
	if !p.done() {
		if p.next() != ' ' {
			return State{}, p.errorf("expected space before full-move number")
		}
		n, ok := p.number()
		if !ok {
			return State{}, p.errorAt(p.off, "expected full-move number")
		}
		if n < 1 {
			return State{}, p.errorf("full-move number must be at least 1")
		}
		s.FullmoveNumber = n
	}
	if !p.done() {
		return State{}, p.errorAt(p.off, "trailing characters after fen")
	}

	if err := validatePlacement(pl); err != "" {
		return State{}, p.errorAt(0, "%s", err)
	}

	s.Pos = goosemg.NewPosition(pl, meta)
	if s.Pos.Flip().InCheck() {
		return State{}, p.errorAt(0, "side not to move is in check")
	}
	// Checkers ignores the enemy king, so touching kings are caught here
	kings := s.Pos.Pieces(goosemg.King)
	own := kings & s.Pos.Own
	if goosemg.KingAttacks(goosemg.Square(bits.TrailingZeros64(own)))&kings&^own != 0 {
		return State{}, p.errorAt(0, "kings are adjacent")
	}
	return s, nil
}

func hasPiece(pl goosemg.Placement, sq goosemg.Square, t goosemg.PieceType, white bool) bool {
	return pl.Pieces[sq] == t && (pl.White&(1<<sq) != 0) == white
}

// validatePlacement checks the counts a legal game can reach. It returns an
// empty string when the board is acceptable.
func validatePlacement(pl goosemg.Placement) string {
	var kings, pieces [2]int
	for sq, t := range pl.Pieces {
		if t == goosemg.None {
			continue
		}
		side := 1
		if pl.White&(1<<uint(sq)) != 0 {
			side = 0
		}
		pieces[side]++
		if t == goosemg.King {
			kings[side]++
		}
		if t == goosemg.Pawn && (sq < 8 || sq >= 56) {
			return "pawn on first or eighth rank"
		}
	}
	for side, name := range [2]string{"white", "black"} {
		if kings[side] != 1 {
			return name + " must have exactly one king"
		}
		if pieces[side] > 16 {
			return name + " has more than 16 pieces"
		}
	}
	return ""
}

// FormatFEN produces the canonical six-field FEN of s.
func FormatFEN(s State) string {
	var sb strings.Builder
	pl := s.Pos.Placement()
	meta := s.Pos.Meta()
	black := s.Pos.BlackToMove()

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := square(file, rank)
			t := pl.Pieces[sq]
			if t == goosemg.None {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			c := pieceLetters[t]
			if pl.White&(1<<sq) == 0 {
				c |= 0x20
			}
			sb.WriteByte(c)
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// 2. Side to move
	sb.WriteByte(' ')
	sb.WriteString(s.SideToMove().String())

	// 3. Castling rights, stored relative to the side to move
	wk, wq := goosemg.MetaOwnKingside, goosemg.MetaOwnQueenside
	bk, bq := goosemg.MetaOppKingside, goosemg.MetaOppQueenside
	if black {
		wk, wq, bk, bq = bk, bq, wk, wq
	}
	sb.WriteByte(' ')
	if meta&goosemg.MetaCastling == 0 {
		sb.WriteByte('-')
	}
	for i, right := range [4]goosemg.Meta{wk, wq, bk, bq} {
		if meta&right != 0 {
			sb.WriteByte("KQkq"[i])
		}
	}

	// 4. En passant square
	sb.WriteByte(' ')
	if sq, ok := meta.EnPassant(); ok {
		if black {
			sq = sq.Mirror()
		}
		sb.WriteString(sq.String())
	} else {
		sb.WriteByte('-')
	}

	// 5. and 6. Clocks
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.FullmoveNumber))
	return sb.String()
}
