package service

import (
	"testing"

	"github.com/FlavioCraftsCode/Jogo-de-Damas/internal/model"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*GameService, *GameManager, *model.QueueScheduler) {
	t.Helper()
	q := model.NewQueueScheduler()
	settings := model.DefaultGameSettings()
	settings.Scheduler = q
	gm := NewGameManager(settings)
	return NewGameService(gm), gm, q
}

func TestCreateAndFetchGame(t *testing.T) {
	gs, gm, _ := newTestService(t)

	gameID, err := gs.CreateGame("alice")
	require.NoError(t, err)
	require.NotEmpty(t, gameID)
	require.Equal(t, 1, gm.Size())

	state, err := gs.GetGameState(gameID)
	require.NoError(t, err)
	require.Equal(t, gameID, state.ID)
	require.Equal(t, model.SideRed, state.ToMove)

	require.ErrorIs(t, gm.CreateGame(gameID, "bob"), ErrGameExists)
}

func TestUnknownGame(t *testing.T) {
	gs, _, _ := newTestService(t)

	_, err := gs.GetGameState("missing")
	require.ErrorIs(t, err, ErrGameNotFound)
	_, err = gs.HandleMove("missing", "alice", 33)
	require.ErrorIs(t, err, ErrGameNotFound)
	require.ErrorIs(t, gs.Subscribe("missing", "s", model.ObserverFunc(func(model.Event) {})), ErrGameNotFound)
}

func TestOnlyOwnerSendsIntents(t *testing.T) {
	gs, _, _ := newTestService(t)
	gameID, err := gs.CreateGame("alice")
	require.NoError(t, err)
	state, err := gs.GetGameState(gameID)
	require.NoError(t, err)
	pieceID := state.Board[42].Piece.ID

	_, err = gs.HandleSelect(gameID, "mallory", pieceID)
	require.ErrorIs(t, err, ErrNotOwner)
	_, err = gs.HandleReset(gameID, "mallory")
	require.ErrorIs(t, err, ErrNotOwner)
	require.ErrorIs(t, gs.DeleteGame(gameID, "mallory"), ErrNotOwner)

	state, err = gs.HandleSelect(gameID, "alice", pieceID)
	require.NoError(t, err)
	require.Equal(t, pieceID, *state.Selected)
}

func TestMoveAndAIReplyThroughService(t *testing.T) {
	gs, _, q := newTestService(t)
	gameID, err := gs.CreateGame("alice")
	require.NoError(t, err)
	state, err := gs.GetGameState(gameID)
	require.NoError(t, err)

	var events []model.EventType
	require.NoError(t, gs.Subscribe(gameID, "watcher", model.ObserverFunc(func(e model.Event) {
		events = append(events, e.Type)
	})))

	_, err = gs.HandleSelect(gameID, "alice", state.Board[42].Piece.ID)
	require.NoError(t, err)
	state, err = gs.HandleMove(gameID, "alice", 33)
	require.NoError(t, err)
	require.Equal(t, model.SideBlack, state.ToMove)

	require.Equal(t, 1, q.RunPending())
	state, err = gs.GetGameState(gameID)
	require.NoError(t, err)
	require.Equal(t, model.SideRed, state.ToMove)
	require.Equal(t, []model.EventType{model.EventSelect, model.EventMove, model.EventMove}, events)

	gs.Unsubscribe(gameID, "watcher")
	_, err = gs.HandleReset(gameID, "alice")
	require.NoError(t, err)
	require.Len(t, events, 3)
}

func TestIllegalMoveIsNotAnError(t *testing.T) {
	gs, _, _ := newTestService(t)
	gameID, err := gs.CreateGame("alice")
	require.NoError(t, err)

	state, err := gs.HandleMove(gameID, "alice", 33)
	require.NoError(t, err)
	require.Equal(t, model.SideRed, state.ToMove)
	require.Empty(t, state.MoveHistory)
}

func TestDeleteGame(t *testing.T) {
	gs, gm, _ := newTestService(t)
	gameID, err := gs.CreateGame("alice")
	require.NoError(t, err)

	require.NoError(t, gs.DeleteGame(gameID, "alice"))
	require.Equal(t, 0, gm.Size())
	require.ErrorIs(t, gs.DeleteGame(gameID, "alice"), ErrGameNotFound)
}
