package model

// Policy picks the AI's move for a turn. It must not mutate the board.
type Policy interface {
	ComputeMove(pieces []*Piece, b *Board) (Move, bool)
}

// GreedyPolicy walks the roster in order and plays the first piece that can move,
// preferring that piece's capture over its simple step. There is no look-ahead.
type GreedyPolicy struct{}

func (GreedyPolicy) ComputeMove(pieces []*Piece, b *Board) (Move, bool) {
	for _, piece := range pieces {
		from, ok := b.IndexOf(piece.ID)
		if !ok {
			continue
		}
		dirs := ForwardDeltas(piece.Side)
		if move, ok := FindCaptureMove(b, from, dirs); ok {
			return move, true
		}
		if move, ok := FindSimpleMove(b, from, dirs); ok {
			return move, true
		}
	}
	return Move{}, false
}
