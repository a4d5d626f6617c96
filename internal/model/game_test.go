package model

import (
	"fmt"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T) (*Game, *QueueScheduler) {
	t.Helper()
	q := NewQueueScheduler()
	settings := DefaultGameSettings()
	settings.Scheduler = q
	return NewGame("game-1", "player-1", settings), q
}

// clearBoard empties the board and both rosters so a test can build a position.
func clearBoard(g *Game) {
	g.board = newBoard()
	g.red = nil
	g.black = nil
}

func put(g *Game, index int, side Side) *Piece {
	piece := &Piece{ID: fmt.Sprintf("%s-%d", side, index), Side: side}
	if !g.board.Place(index, piece) {
		panic(fmt.Sprintf("cannot place %s on %d", side, index))
	}
	if side == SideRed {
		g.red = append(g.red, piece)
	} else {
		g.black = append(g.black, piece)
	}
	return piece
}

func pieceID(t *testing.T, g *Game, index int) string {
	t.Helper()
	piece := g.State().Board[index].Piece
	require.NotNil(t, piece, "no piece on %d", index)
	return piece.ID
}

func TestNewGameStartsWithRedToMove(t *testing.T) {
	g, q := newTestGame(t)

	state := g.State()
	require.Equal(t, SideRed, state.ToMove)
	require.False(t, state.AIThinking)
	require.Nil(t, state.Selected)
	require.Nil(t, state.Resolve)
	require.Equal(t, 12, state.RedCount)
	require.Equal(t, 12, state.BlackCount)
	require.Empty(t, state.MoveHistory)
	require.Equal(t, SideRed, g.Owner.Side)
	require.Equal(t, 0, q.Size())
}

func TestPlayerMoveThenAIRepliesOnce(t *testing.T) {
	g, q := newTestGame(t)

	require.True(t, g.TrySelect(pieceID(t, g, 42)))
	require.Equal(t, []int{33, 35}, g.State().LegalMoves)
	require.True(t, g.TryMove(33))

	state := g.State()
	require.Equal(t, SideBlack, state.ToMove, spew.Sdump(state.MoveHistory))
	require.True(t, state.AIThinking)
	require.Nil(t, state.Selected)
	require.Nil(t, state.Board[42].Piece)
	require.Equal(t, SideRed, state.Board[33].Piece.Side)
	require.Equal(t, 1, q.Size())

	// input is ignored while the AI turn is pending
	require.False(t, g.TrySelect(pieceID(t, g, 44)))
	require.False(t, g.TryMove(35))

	require.Equal(t, 1, q.RunPending())

	state = g.State()
	require.Equal(t, SideRed, state.ToMove)
	require.False(t, state.AIThinking)
	require.Len(t, state.MoveHistory, 2)
	require.Equal(t, "22-17", state.MoveHistory[0].Notation)
	require.Equal(t, SideBlack, state.MoveHistory[1].Side)
	require.Equal(t, "9-13", state.MoveHistory[1].Notation)
	require.Nil(t, state.Board[17].Piece)
	require.Equal(t, SideBlack, state.Board[24].Piece.Side)
	require.Equal(t, 24, state.LastMove.To)
	require.Nil(t, state.Resolve)
	require.Equal(t, 0, q.Size())
}

func TestIllegalTargetsLeaveStateUnchanged(t *testing.T) {
	g, q := newTestGame(t)
	id := pieceID(t, g, 42)
	require.True(t, g.TrySelect(id))
	before := g.State()

	for _, target := range []int{26, 34, 49, 24, -1, 64, 100} {
		require.False(t, g.TryMove(target), "target %d", target)
	}

	after := g.State()
	require.Equal(t, before.Board, after.Board)
	require.Equal(t, SideRed, after.ToMove)
	require.Equal(t, id, *after.Selected)
	require.Equal(t, 0, q.Size())
}

func TestMoveWithoutSelectionIsIgnored(t *testing.T) {
	g, q := newTestGame(t)

	require.False(t, g.TryMove(33))
	require.Equal(t, SideRed, g.State().ToMove)
	require.Equal(t, 0, q.Size())
}

func TestSelectRejectsOpponentAndUnknownPieces(t *testing.T) {
	g, _ := newTestGame(t)

	require.False(t, g.TrySelect(pieceID(t, g, 17)))
	require.False(t, g.TrySelect("missing"))
	require.Nil(t, g.State().Selected)
}

func TestSelectSamePieceTwiceKeepsSelection(t *testing.T) {
	g, _ := newTestGame(t)
	var events []EventType
	g.Subscribe("test", ObserverFunc(func(e Event) { events = append(events, e.Type) }))
	id := pieceID(t, g, 44)

	require.True(t, g.TrySelect(id))
	require.True(t, g.TrySelect(id))
	require.Equal(t, id, *g.State().Selected)
	require.Equal(t, []EventType{EventSelect}, events)
}

func TestSelectingAnotherPieceReplacesSelection(t *testing.T) {
	g, _ := newTestGame(t)
	first := pieceID(t, g, 42)
	second := pieceID(t, g, 44)

	require.True(t, g.TrySelect(first))
	require.True(t, g.TrySelect(second))
	state := g.State()
	require.Equal(t, second, *state.Selected)
	require.Equal(t, []int{35, 37}, state.LegalMoves)
}

func TestCaptureRemovesExactlyOnePiece(t *testing.T) {
	g, _ := newTestGame(t)
	clearBoard(g)
	red := put(g, 42, SideRed)
	put(g, 33, SideBlack)
	put(g, 1, SideBlack)

	require.True(t, g.TrySelect(red.ID))
	require.True(t, g.TryMove(24))

	state := g.State()
	require.Nil(t, state.Board[33].Piece)
	require.Nil(t, state.Board[42].Piece)
	require.Equal(t, red.ID, state.Board[24].Piece.ID)
	require.Equal(t, 1, state.BlackCount)
	require.Equal(t, 1, state.RedCount)
	require.Equal(t, SideBlack, state.ToMove)
	require.Equal(t, "22x13", state.LastMove.Notation())
	require.Equal(t, 33, state.LastMove.Captured)
}

func TestCaptureNeedsOpposingPieceInBetween(t *testing.T) {
	g, q := newTestGame(t)
	clearBoard(g)
	red := put(g, 42, SideRed)
	put(g, 33, SideRed)
	put(g, 1, SideBlack)

	require.True(t, g.TrySelect(red.ID))
	require.False(t, g.TryMove(24))
	require.Equal(t, 2, g.State().RedCount)
	require.Equal(t, 0, q.Size())
}

func TestPlayerWinsWhenLastBlackPieceIsCaptured(t *testing.T) {
	g, q := newTestGame(t)
	clearBoard(g)
	red := put(g, 42, SideRed)
	put(g, 33, SideBlack)
	var events []EventType
	g.Subscribe("test", ObserverFunc(func(e Event) { events = append(events, e.Type) }))

	require.True(t, g.TrySelect(red.ID))
	require.True(t, g.TryMove(24))
	require.False(t, g.IsOver(), "winner is checked after the AI turn")

	require.Equal(t, 1, q.RunPending())
	state := g.State()
	require.NotNil(t, state.Resolve)
	require.Equal(t, Outcome{Result: ResultPlayerWon, Reason: ReasonNoPieces}, *state.Resolve)
	require.Equal(t, []EventType{EventSelect, EventMove, EventGameOver}, events)

	// terminal: nothing is accepted any more
	require.False(t, g.TrySelect(red.ID))
	require.False(t, g.TryMove(15))
	require.Equal(t, 0, q.Size())
}

func TestPlayerLosesWhenLastRedPieceIsCaptured(t *testing.T) {
	g, q := newTestGame(t)
	clearBoard(g)
	red := put(g, 44, SideRed)
	put(g, 26, SideBlack)

	require.True(t, g.TrySelect(red.ID))
	require.True(t, g.TryMove(35))
	require.Equal(t, 1, q.RunPending())

	state := g.State()
	require.Equal(t, 0, state.RedCount)
	require.Equal(t, SideBlack, state.Board[44].Piece.Side)
	require.Equal(t, Outcome{Result: ResultPlayerLost, Reason: ReasonNoPieces}, *state.Resolve)
	require.Equal(t, SideRed, state.ToMove)
}

func TestAIWithoutMovesLosesTheGame(t *testing.T) {
	g, q := newTestGame(t)
	clearBoard(g)
	red := put(g, 42, SideRed)
	put(g, 56, SideBlack)

	require.True(t, g.TrySelect(red.ID))
	require.True(t, g.TryMove(33))
	require.Equal(t, 1, q.RunPending())

	state := g.State()
	require.Equal(t, Outcome{Result: ResultPlayerWon, Reason: ReasonAIBlocked}, *state.Resolve)
	require.Equal(t, 1, state.BlackCount)
	require.Equal(t, 1, state.RedCount)
}

func TestBlockedPlayerKeepsTheTurn(t *testing.T) {
	g, q := newTestGame(t)
	clearBoard(g)
	put(g, 26, SideBlack)
	put(g, 49, SideBlack)
	put(g, 42, SideBlack)
	runner := put(g, 44, SideRed)
	put(g, 56, SideRed)

	require.True(t, g.TrySelect(runner.ID))
	require.True(t, g.TryMove(35))
	require.Equal(t, 1, q.RunPending())

	state := g.State()
	require.Equal(t, 1, state.RedCount)
	require.Nil(t, state.Resolve, spew.Sdump(state.MoveHistory))
	require.Equal(t, SideRed, state.ToMove)
	require.False(t, g.IsOver())
}

func TestTurnAlternatesOnEveryMove(t *testing.T) {
	g, q := newTestGame(t)

	for round := 0; round < 4; round++ {
		state := g.State()
		require.Equal(t, SideRed, state.ToMove, "round %d", round)
		moved := false
		for _, piece := range g.red {
			require.True(t, g.TrySelect(piece.ID))
			targets := g.State().LegalMoves
			if len(targets) == 0 {
				continue
			}
			require.True(t, g.TryMove(targets[0]))
			moved = true
			break
		}
		require.True(t, moved, "round %d", round)
		require.Equal(t, SideBlack, g.State().ToMove)
		require.Len(t, g.State().MoveHistory, 2*round+1)

		require.Equal(t, 1, q.RunPending())
		require.Len(t, g.State().MoveHistory, 2*round+2)
	}
}

func TestResetOrphansPendingAITurn(t *testing.T) {
	g, q := newTestGame(t)
	var events []EventType
	g.Subscribe("test", ObserverFunc(func(e Event) { events = append(events, e.Type) }))

	require.True(t, g.TrySelect(pieceID(t, g, 42)))
	require.True(t, g.TryMove(33))
	g.Reset()
	require.Equal(t, 1, q.RunPending())

	state := g.State()
	require.Equal(t, SideRed, state.ToMove)
	require.False(t, state.AIThinking)
	require.Empty(t, state.MoveHistory)
	require.Equal(t, SideRed, state.Board[42].Piece.Side)
	require.Nil(t, state.Board[24].Piece)
	require.Equal(t, []EventType{EventSelect, EventMove, EventReset}, events)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	g, _ := newTestGame(t)
	count := 0
	g.Subscribe("a", ObserverFunc(func(Event) { count++ }))
	require.Equal(t, 1, g.Observers())

	require.True(t, g.TrySelect(pieceID(t, g, 42)))
	g.Unsubscribe("a")
	require.True(t, g.TrySelect(pieceID(t, g, 44)))

	require.Equal(t, 1, count)
	require.Equal(t, 0, g.Observers())
}

func TestEventCarriesStateAfterChange(t *testing.T) {
	g, _ := newTestGame(t)
	var last Event
	g.Subscribe("a", ObserverFunc(func(e Event) { last = e }))

	require.True(t, g.TrySelect(pieceID(t, g, 42)))
	require.True(t, g.TryMove(35))

	require.Equal(t, EventMove, last.Type)
	require.Equal(t, SideBlack, last.State.ToMove)
	require.True(t, last.State.AIThinking)
	require.Equal(t, SideRed, last.State.Board[35].Piece.Side)
}
