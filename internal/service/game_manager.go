// service/game_manager.go
package service

import (
	"errors"
	"sync"

	"github.com/FlavioCraftsCode/Jogo-de-Damas/internal/model"
	"github.com/rs/zerolog/log"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
	ErrNotOwner     = errors.New("player does not own this game")
)

type GameManager struct {
	games    map[string]*model.Game
	settings model.GameSettings
	mu       sync.RWMutex
}

func NewGameManager(settings model.GameSettings) *GameManager {
	return &GameManager{
		games:    make(map[string]*model.Game),
		settings: settings,
	}
}

func (gm *GameManager) CreateGame(gameID string, playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	gm.games[gameID] = model.NewGame(gameID, playerID, gm.settings)
	log.Info().Str("game_id", gameID).Str("player_id", playerID).Msg("game created")
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) RemoveGame(gameID string, playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	game, exists := gm.games[gameID]
	if !exists {
		return ErrGameNotFound
	}
	if game.Owner.ID != playerID {
		return ErrNotOwner
	}

	delete(gm.games, gameID)
	log.Info().Str("game_id", gameID).Msg("game removed")
	return nil
}

func (gm *GameManager) Size() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

// ownedGame returns the game only if playerID created it; only the owner sends intents.
func (gm *GameManager) ownedGame(gameID string, playerID string) (*model.Game, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	if game.Owner.ID != playerID {
		return nil, ErrNotOwner
	}
	return game, nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	return game.State(), nil
}

func (gm *GameManager) SelectPiece(gameID string, playerID string, pieceID string) (model.GameState, error) {
	game, err := gm.ownedGame(gameID, playerID)
	if err != nil {
		return model.GameState{}, err
	}

	game.TrySelect(pieceID)
	return game.State(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, target int) (model.GameState, error) {
	game, err := gm.ownedGame(gameID, playerID)
	if err != nil {
		return model.GameState{}, err
	}

	game.TryMove(target)
	return game.State(), nil
}

func (gm *GameManager) ResetGame(gameID string, playerID string) (model.GameState, error) {
	game, err := gm.ownedGame(gameID, playerID)
	if err != nil {
		return model.GameState{}, err
	}

	game.Reset()
	return game.State(), nil
}

// Subscribe lets anyone watch a game; spectators receive the same events as the owner.
func (gm *GameManager) Subscribe(gameID string, subscriberID string, observer model.Observer) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	game.Subscribe(subscriberID, observer)
	return nil
}

func (gm *GameManager) Unsubscribe(gameID string, subscriberID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}

	game.Unsubscribe(subscriberID)
}
