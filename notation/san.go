package notation

import (
	"strings"

	"github.com/Oliverans/GoosePackedMG/goosemg"
)

// FormatSAN renders m, legal in pos, in standard algebraic notation.
// Disambiguation is computed against the legal moves only, so a pinned piece
// never forces a qualifier. A check or mate suffix is appended.
func FormatSAN(pos goosemg.Position, m goosemg.Move) string {
	var sb strings.Builder
	writeSAN(&sb, pos, m)

	child := pos.Apply(m)
	if child.InCheck() {
		if child.Status() == goosemg.Checkmate {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('+')
		}
	}
	return sb.String()
}

func writeSAN(sb *strings.Builder, pos goosemg.Position, m goosemg.Move) {
	if m.Castling() {
		if m.End() > m.Start() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
		return
	}

	piece := pos.PieceAt(m.Start())
	capture := pos.PieceAt(m.End()) != goosemg.None
	from, to := realSquare(pos, m.Start()), realSquare(pos, m.End())

	if piece == goosemg.Pawn {
		if from.File() != to.File() {
			sb.WriteByte(from.String()[0])
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if m.Piece() != goosemg.Pawn {
			sb.WriteByte('=')
			sb.WriteByte(pieceLetters[m.Piece()])
		}
		return
	}

	sb.WriteByte(pieceLetters[piece])

	// another piece of the same type reaching the same square needs a
	// qualifier: the file if that tells them apart, else the rank, else both
	var needed, sameFile, sameRank bool
	l := pos.Generate()
	for _, o := range l.Moves() {
		if o == m || o.End() != m.End() || o.Start() == m.Start() || pos.PieceAt(o.Start()) != piece {
			continue
		}
		needed = true
		if o.Start().File() == m.Start().File() {
			sameFile = true
		}
		if o.Start().Rank() == m.Start().Rank() {
			sameRank = true
		}
	}
	if sameRank || needed && !sameFile {
		sb.WriteByte(from.String()[0])
	}
	if sameFile {
		sb.WriteByte(from.String()[1])
	}

	if capture {
		sb.WriteByte('x')
	}
	sb.WriteString(to.String())
}

// sanPattern is what SAN text pins down about a move; -1 leaves a
// coordinate open.
type sanPattern struct {
	piece              goosemg.PieceType
	fromFile, fromRank int
	to                 goosemg.Square
	promotion          goosemg.PieceType
	castle             int // 0 none, 1 kingside, 2 queenside
}

// ParseSAN resolves standard algebraic notation against the legal moves of
// pos. Check and mate suffixes are accepted but not verified, and a missing
// capture mark is tolerated.
func ParseSAN(pos goosemg.Position, text string) (goosemg.Move, error) {
	p := &parser{in: text}
	pat, err := parseSANPattern(p)
	if err != nil {
		return 0, err
	}

	var found goosemg.Move
	matches := 0
	l := pos.Generate()
	for _, m := range l.Moves() {
		if pat.matches(pos, m) {
			found = m
			matches++
		}
	}
	switch {
	case matches == 0:
		return 0, p.errorAt(0, "no legal move matches")
	case matches > 1:
		return 0, p.errorAt(0, "ambiguous move, %d legal moves match", matches)
	}
	return found, nil
}

func parseSANPattern(p *parser) (sanPattern, *ParseError) {
	pat := sanPattern{fromFile: -1, fromRank: -1}

	// castling, with letter O or digit zero
	if c := p.peek(); c == 'O' || c == '0' {
		p.next()
		for _, want := range []byte{'-', c} {
			if p.next() != want {
				return pat, p.errorf("expected %c", want)
			}
		}
		pat.castle = 1
		if p.peek() == '-' {
			p.next()
			if p.next() != c {
				return pat, p.errorf("expected %c", c)
			}
			pat.castle = 2
		}
		return pat, p.suffix()
	}

	pat.piece = goosemg.Pawn
	switch c := p.peek(); c {
	case 'N', 'B', 'R', 'Q', 'K':
		p.next()
		pat.piece = pieceFromByte(c)
	}

	// up to two qualifier coordinates, an optional capture mark, then the
	// destination; with no second square the first one was the destination
	file, rank := -1, -1
	if c := p.peek(); c >= 'a' && c <= 'h' {
		file = int(p.next() - 'a')
	}
	if c := p.peek(); c >= '1' && c <= '8' {
		rank = int(p.next() - '1')
	}
	capture := false
	if p.peek() == 'x' {
		p.next()
		capture = true
	}
	if c := p.peek(); c >= 'a' && c <= 'h' {
		pat.fromFile, pat.fromRank = file, rank
		file = int(p.next() - 'a')
		r := p.next()
		if r < '1' || r > '8' {
			return pat, p.errorf("invalid rank")
		}
		rank = int(r - '1')
	} else if file < 0 || rank < 0 || capture {
		return pat, p.errorAt(p.off, "expected destination square")
	}
	pat.to = square(file, rank)

	if pat.piece == goosemg.Pawn && (rank == 0 || rank == 7) {
		if p.next() != '=' {
			return pat, p.errorf("expected = and promotion piece")
		}
		switch c := p.next(); c {
		case 'N', 'B', 'R', 'Q':
			pat.promotion = pieceFromByte(c)
		default:
			return pat, p.errorf("invalid promotion piece; must be one of NBRQ")
		}
	} else if p.peek() == '=' {
		p.next()
		return pat, p.errorf("promotion only on the last rank")
	}
	return pat, p.suffix()
}

// suffix consumes an optional check or mate mark and requires the end of input.
func (p *parser) suffix() *ParseError {
	if c := p.peek(); c == '+' || c == '#' {
		p.next()
	}
	if !p.done() {
		return p.errorAt(p.off, "trailing characters after move")
	}
	return nil
}

func (pat sanPattern) matches(pos goosemg.Position, m goosemg.Move) bool {
	if pat.castle != 0 {
		return m.Castling() && (pat.castle == 1) == (m.End() > m.Start())
	}
	if m.Castling() || pos.PieceAt(m.Start()) != pat.piece {
		return false
	}
	from, to := realSquare(pos, m.Start()), realSquare(pos, m.End())
	if to != pat.to {
		return false
	}
	if pat.fromFile >= 0 && from.File() != pat.fromFile {
		return false
	}
	// a pawn move without a file qualifier is a push
	if pat.piece == goosemg.Pawn && pat.fromFile < 0 && from.File() != to.File() {
		return false
	}
	if pat.fromRank >= 0 && from.Rank() != pat.fromRank {
		return false
	}
	if pat.promotion != goosemg.None {
		return m.Piece() == pat.promotion
	}
	return true
}
