package model

import "fmt"

type MoveKind int

const (
	MoveIllegal MoveKind = iota
	MoveSimple
	MoveCapture
)

// noCapture marks a Move that does not jump a piece.
const noCapture = -1

type Move struct {
	PieceID  string `json:"pieceId"`
	From     int    `json:"from"`
	To       int    `json:"to"`
	Captured int    `json:"captured"`
}

func (m Move) IsCapture() bool {
	return m.Captured != noCapture
}

// Notation uses draughts square numbers, "21-17" for a step and "21x14" for a jump.
func (m Move) Notation() string {
	sep := "-"
	if m.IsCapture() {
		sep = "x"
	}
	return fmt.Sprintf("%d%s%d", squareNumber(m.From), sep, squareNumber(m.To))
}

type Ply struct {
	Side     Side   `json:"side"`
	Move     Move   `json:"move"`
	Notation string `json:"notation"`
}
