package controller

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/FlavioCraftsCode/Jogo-de-Damas/internal/model"
	"github.com/FlavioCraftsCode/Jogo-de-Damas/internal/service"
	"github.com/FlavioCraftsCode/Jogo-de-Damas/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// messageWriter is the part of a websocket connection the observer writes to.
type messageWriter interface {
	WriteJSON(v interface{}) error
}

// connObserver pushes game events to one connection. Events arrive from the AI timer
// goroutine as well as the read loop, so writes are serialized.
type connObserver struct {
	conn    messageWriter
	mu      sync.Mutex
	lastSeq uint64
}

func (o *connObserver) Notify(e model.Event) {
	msgType := ws.MessageTypeGameState
	if e.Type == model.EventGameOver {
		msgType = ws.MessageTypeGameOver
	}
	if err := o.pushState(msgType, e.State); err != nil {
		log.Warn().Err(err).Str("game_id", e.State.ID).Msg("failed to push state")
	}
}

// pushState writes a snapshot unless a newer one already went out on this connection.
func (o *connObserver) pushState(msgType ws.MessageType, state model.GameState) error {
	msg, err := ws.NewMessage(msgType, state)
	if err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if state.Seq < o.lastSeq {
		return nil
	}
	o.lastSeq = state.Seq
	return o.conn.WriteJSON(msg)
}

func (o *connObserver) send(msgType ws.MessageType, payload any) error {
	msg, err := ws.NewMessage(msgType, payload)
	if err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.conn.WriteJSON(msg)
}

func (o *connObserver) sendError(errorMsg string) {
	if err := o.send(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg}); err != nil {
		log.Warn().Err(err).Msg("failed to send error")
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("wsGameID").(string)
	playerID, _ := c.Locals("wsPlayerID").(string)
	subscriberID := uuid.New().String()
	observer := &connObserver{conn: c}
	logger := log.With().Str("game_id", gameID).Str("player_id", playerID).Logger()

	if err := wsc.gameService.Subscribe(gameID, subscriberID, observer); err != nil {
		logger.Warn().Err(err).Msg("failed to subscribe")
		observer.sendError(err.Error())
		c.Close()
		return
	}
	defer wsc.gameService.Unsubscribe(gameID, subscriberID)
	logger.Info().Msg("websocket connected")

	if state, err := wsc.gameService.GetGameState(gameID); err == nil {
		if err := observer.pushState(ws.MessageTypeGameState, state); err != nil {
			logger.Warn().Err(err).Msg("failed to send initial state")
		}
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug().Err(err).Msg("read error")
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			observer.sendError("malformed message")
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			logger.Debug().Err(err).Str("type", string(msg.Type)).Msg("handle error")
			observer.sendError(err.Error())
		}
	}
	logger.Info().Msg("websocket disconnected")
}

// handleMessage turns an inbound message into an intent. Rejected intents are silent:
// the resulting state change, if any, reaches the client through its observer.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeSelect:
		var payload ws.SelectPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleSelect(gameID, playerID, payload.PieceID)
		return err

	case ws.MessageTypeMove:
		var payload ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, payload.Target)
		return err

	case ws.MessageTypeReset:
		_, err := wsc.gameService.HandleReset(gameID, playerID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
