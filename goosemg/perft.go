package goosemg

// Perft counts the leaf nodes of the legal move tree to the given depth. At
// depth 1 the move list length is returned without applying the moves.
func Perft(p Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	var l MoveList
	p.GenerateInto(&l)
	if depth == 1 {
		return uint64(l.n)
	}

	var nodes uint64
	for _, m := range l.moves[:l.n] {
		nodes += Perft(p.Apply(m), depth-1)
	}
	return nodes
}

// PerftDivide returns a map from each legal root move to the number of leaf nodes
// reachable from that move at the given depth. Useful for debugging.
func PerftDivide(p Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	l := p.Generate()
	for _, m := range l.Moves() {
		result[m] = Perft(p.Apply(m), depth-1)
	}
	return result
}
