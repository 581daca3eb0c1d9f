package notation

import (
	"fmt"
	"strings"
)

// ParseError reports malformed FEN, UCI or SAN text. Offset is the byte
// index in Input where parsing stopped.
type ParseError struct {
	Input  string
	Offset int
	Msg    string
}

// Error renders the message followed by the input and a caret under the
// offending byte.
func (e *ParseError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s at offset %d\n", e.Msg, e.Offset)
	fmt.Fprintf(&sb, "  | %s\n", e.Input)
	fmt.Fprintf(&sb, "  | %s^", strings.Repeat(" ", e.Offset))
	return sb.String()
}

// parser walks an input string one byte at a time. peek and next return 0
// past the end.
type parser struct {
	in  string
	off int
}

func (p *parser) peek() byte {
	if p.off >= len(p.in) {
		return 0
	}
	return p.in[p.off]
}

func (p *parser) next() byte {
	c := p.peek()
	p.off++
	return c
}

func (p *parser) done() bool { return p.off >= len(p.in) }

// errorf blames the byte most recently consumed.
func (p *parser) errorf(format string, args ...interface{}) *ParseError {
	return p.errorAt(p.off-1, format, args...)
}

func (p *parser) errorAt(off int, format string, args ...interface{}) *ParseError {
	if off > len(p.in) {
		off = len(p.in)
	}
	if off < 0 {
		off = 0
	}
	return &ParseError{Input: p.in, Offset: off, Msg: fmt.Sprintf(format, args...)}
}

// number consumes a run of decimal digits, saturating large values. ok is
// false when there are none.
func (p *parser) number() (n int, ok bool) {
	start := p.off
	for c := p.peek(); c >= '0' && c <= '9'; c = p.peek() {
		if n < 1<<20 {
			n = n*10 + int(c-'0')
		}
		p.off++
	}
	return n, p.off > start
}
