package service

import (
	"fmt"

	"github.com/FlavioCraftsCode/Jogo-de-Damas/internal/model"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(playerID string) (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID, playerID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) DeleteGame(gameID string, playerID string) error {
	return gs.gameManager.RemoveGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleSelect(gameID string, playerID string, pieceID string) (model.GameState, error) {
	return gs.gameManager.SelectPiece(gameID, playerID, pieceID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, target int) (model.GameState, error) {
	return gs.gameManager.MakeMove(gameID, playerID, target)
}

func (gs *GameService) HandleReset(gameID string, playerID string) (model.GameState, error) {
	return gs.gameManager.ResetGame(gameID, playerID)
}

func (gs *GameService) Subscribe(gameID string, subscriberID string, observer model.Observer) error {
	return gs.gameManager.Subscribe(gameID, subscriberID, observer)
}

func (gs *GameService) Unsubscribe(gameID string, subscriberID string) {
	gs.gameManager.Unsubscribe(gameID, subscriberID)
}
