package model

// allDeltas are every index offset a player may request, in ascending order.
var allDeltas = []int{-18, -14, -9, -7, 7, 9, 14, 18}

// ClassifyMove only looks at the index distance between origin and target.
func ClassifyMove(from, to int) MoveKind {
	switch abs(to - from) {
	case 7, 9:
		return MoveSimple
	case 14, 18:
		return MoveCapture
	}
	return MoveIllegal
}

// ForwardDeltas are the single-step offsets towards the opponent's home rows.
func ForwardDeltas(side Side) []int {
	if side == SideBlack {
		return []int{7, 9}
	}
	return []int{-7, -9}
}

// onDiagonal guards the index delta against wrapping across a row edge.
func onDiagonal(from, to, steps int) bool {
	fromRow, fromCol := rowCol(from)
	toRow, toCol := rowCol(to)
	return abs(toRow-fromRow) == steps && abs(toCol-fromCol) == steps
}

// ResolveMove validates a move of the piece standing on from and returns it fully
// described. A capture is legal only when the jumped cell holds an opposing piece.
func ResolveMove(b *Board, from, to int) (Move, bool) {
	piece := b.PieceAt(from)
	if piece == nil || !b.IsDark(to) || !b.IsEmpty(to) {
		return Move{}, false
	}
	switch ClassifyMove(from, to) {
	case MoveSimple:
		if !onDiagonal(from, to, 1) {
			return Move{}, false
		}
		return Move{PieceID: piece.ID, From: from, To: to, Captured: noCapture}, true
	case MoveCapture:
		if !onDiagonal(from, to, 2) {
			return Move{}, false
		}
		jumped := (from + to) / 2
		victim := b.PieceAt(jumped)
		if victim == nil || victim.Side != piece.Side.Opponent() {
			return Move{}, false
		}
		return Move{PieceID: piece.ID, From: from, To: to, Captured: jumped}, true
	}
	return Move{}, false
}

// FindSimpleMove returns the first legal single step along dirs.
func FindSimpleMove(b *Board, from int, dirs []int) (Move, bool) {
	for _, d := range dirs {
		if move, ok := ResolveMove(b, from, from+d); ok && !move.IsCapture() {
			return move, true
		}
	}
	return Move{}, false
}

// FindCaptureMove returns the first legal jump along dirs.
func FindCaptureMove(b *Board, from int, dirs []int) (Move, bool) {
	for _, d := range dirs {
		if move, ok := ResolveMove(b, from, from+2*d); ok && move.IsCapture() {
			return move, true
		}
	}
	return Move{}, false
}

// LegalTargets lists every cell the piece on from could be moved to by a player.
func LegalTargets(b *Board, from int) []int {
	targets := []int{}
	for _, d := range allDeltas {
		if _, ok := ResolveMove(b, from, from+d); ok {
			targets = append(targets, from+d)
		}
	}
	return targets
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
