package model

import (
	"fmt"
	"strings"
)

const (
	boardSize = 8
	numCells  = boardSize * boardSize
)

type Piece struct {
	ID   string `json:"id"`
	Side Side   `json:"side"`
}

type Cell struct {
	Index int    `json:"index"`
	Dark  bool   `json:"dark"`
	Piece *Piece `json:"piece"`
}

// Board is the fixed 64-cell grid in row-major order. It only tracks occupancy;
// rosters are kept in sync by Game.
type Board struct {
	cells [numCells]Cell
}

func newBoard() *Board {
	b := &Board{}
	for i := range b.cells {
		row, col := rowCol(i)
		b.cells[i] = Cell{Index: i, Dark: (row+col)%2 == 1}
	}
	return b
}

func rowCol(index int) (int, int) {
	return index / boardSize, index % boardSize
}

// squareNumber is the 1..32 draughts numbering of a dark cell.
func squareNumber(index int) int {
	return index/2 + 1
}

func InBounds(index int) bool {
	return index >= 0 && index < numCells
}

func (b *Board) CellAt(index int) Cell {
	return b.cells[index]
}

func (b *Board) IsDark(index int) bool {
	return InBounds(index) && b.cells[index].Dark
}

func (b *Board) IsEmpty(index int) bool {
	return InBounds(index) && b.cells[index].Piece == nil
}

func (b *Board) PieceAt(index int) *Piece {
	if !InBounds(index) {
		return nil
	}
	return b.cells[index].Piece
}

// Place puts a piece on an empty dark cell and reports whether it did.
func (b *Board) Place(index int, piece *Piece) bool {
	if !b.IsDark(index) || !b.IsEmpty(index) {
		return false
	}
	b.cells[index].Piece = piece
	return true
}

func (b *Board) Remove(index int) *Piece {
	if !InBounds(index) {
		return nil
	}
	piece := b.cells[index].Piece
	b.cells[index].Piece = nil
	return piece
}

func (b *Board) IndexOf(pieceID string) (int, bool) {
	for i := range b.cells {
		if b.cells[i].Piece != nil && b.cells[i].Piece.ID == pieceID {
			return i, true
		}
	}
	return -1, false
}

func (b *Board) Cells() []Cell {
	cells := make([]Cell, numCells)
	copy(cells, b.cells[:])
	return cells
}

func (b *Board) String() string {
	return renderCells(b.cells[:])
}

// renderCells draws the grid with the first cell index of each row on the left:
// r/b are pieces, _ an empty dark cell, . a light cell.
func renderCells(cells []Cell) string {
	var sb strings.Builder
	sb.WriteString("    ")
	for col := 0; col < boardSize; col++ {
		fmt.Fprintf(&sb, " %d", col)
	}
	sb.WriteString("\n")
	for row := 0; row < boardSize; row++ {
		fmt.Fprintf(&sb, "%3d ", row*boardSize)
		for col := 0; col < boardSize; col++ {
			cell := cells[row*boardSize+col]
			switch {
			case cell.Piece != nil && cell.Piece.Side == SideRed:
				sb.WriteString(" r")
			case cell.Piece != nil:
				sb.WriteString(" b")
			case cell.Dark:
				sb.WriteString(" _")
			default:
				sb.WriteString(" .")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
