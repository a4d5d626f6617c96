package model

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Result string

const (
	ResultPlayerWon  Result = "player_won"
	ResultPlayerLost Result = "player_lost"
)

const (
	ReasonNoPieces  = "no_pieces"
	ReasonAIBlocked = "ai_blocked"
)

type Outcome struct {
	Result Result `json:"result"`
	Reason string `json:"reason"`
}

type GameSettings struct {
	AIDelay   time.Duration
	Scheduler Scheduler
	Policy    Policy
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		AIDelay:   500 * time.Millisecond,
		Scheduler: TimerScheduler{},
		Policy:    GreedyPolicy{},
	}
}

// Game owns the whole state of one human-vs-AI session. Every intent is applied
// atomically under mu; observers are notified after mu is released.
type Game struct {
	ID         string
	Owner      Player
	mu         sync.Mutex
	board      *Board
	red        []*Piece
	black      []*Piece
	turns      *TurnController
	policy     Policy
	selected   string
	history    []Ply
	lastMove   *Move
	resolve    *Outcome
	redClock   *Clock
	blackClock *Clock
	observers  *GameObservers
	outbox     []Event
	seq        uint64

	// deliverMu is held from draining the outbox until the last observer returns.
	deliverMu sync.Mutex
}

// GameState is a snapshot of a game. Seq grows with every emitted event, so a
// consumer can tell an older snapshot from a newer one.
type GameState struct {
	ID          string   `json:"id"`
	Seq         uint64   `json:"seq"`
	Board       []Cell   `json:"board"`
	ToMove      Side     `json:"toMove"`
	AIThinking  bool     `json:"aiThinking"`
	Selected    *string  `json:"selected"`
	LegalMoves  []int    `json:"legalMoves"`
	RedCount    int      `json:"redCount"`
	BlackCount  int      `json:"blackCount"`
	MoveHistory []Ply    `json:"moveHistory"`
	LastMove    *Move    `json:"lastMove"`
	Resolve     *Outcome `json:"resolve"`
	RedTimeMs   int64    `json:"redTimeMs"`
	BlackTimeMs int64    `json:"blackTimeMs"`
}

// Render draws the board of this snapshot as text.
func (s GameState) Render() string {
	return renderCells(s.Board)
}

func NewGame(id string, ownerID string, settings GameSettings) *Game {
	if settings.Scheduler == nil {
		settings.Scheduler = TimerScheduler{}
	}
	if settings.Policy == nil {
		settings.Policy = GreedyPolicy{}
	}
	g := &Game{
		ID:         id,
		Owner:      Player{ID: ownerID, Side: SideRed},
		policy:     settings.Policy,
		redClock:   NewClock(),
		blackClock: NewClock(),
		observers:  NewGameObservers(),
	}
	g.turns = NewTurnController(settings.Scheduler, settings.AIDelay, g.runAITurn)
	g.setup()
	return g
}

// setup lays out black on the dark cells of rows 0-2 and red on rows 5-7.
func (g *Game) setup() {
	g.board = newBoard()
	g.red = make([]*Piece, 0, 12)
	g.black = make([]*Piece, 0, 12)
	for i := 0; i < numCells; i++ {
		if !g.board.IsDark(i) {
			continue
		}
		row, _ := rowCol(i)
		switch {
		case row < 3:
			piece := &Piece{ID: uuid.New().String(), Side: SideBlack}
			g.board.Place(i, piece)
			g.black = append(g.black, piece)
		case row > 4:
			piece := &Piece{ID: uuid.New().String(), Side: SideRed}
			g.board.Place(i, piece)
			g.red = append(g.red, piece)
		}
	}
	g.selected = ""
	g.history = make([]Ply, 0)
	g.lastMove = nil
	g.resolve = nil
	g.redClock.Reset()
	g.blackClock.Reset()
	g.redClock.Start()
}

func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) IsOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.resolve != nil
}

// TrySelect selects a piece of the side to move. Anything else is ignored.
func (g *Game) TrySelect(pieceID string) bool {
	defer g.flush()
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolve != nil || g.turns.Pending() {
		return false
	}
	index, ok := g.board.IndexOf(pieceID)
	if !ok || g.board.PieceAt(index).Side != g.turns.Current() {
		return false
	}
	if g.selected == pieceID {
		return true
	}
	g.selected = pieceID
	g.emit(EventSelect)
	return true
}

// TryMove moves the selected piece to target. Illegal targets leave the game untouched.
func (g *Game) TryMove(target int) bool {
	defer g.flush()
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolve != nil || g.selected == "" {
		return false
	}
	if !g.board.IsDark(target) || !g.board.IsEmpty(target) {
		return false
	}
	from, ok := g.board.IndexOf(g.selected)
	if !ok {
		g.selected = ""
		return false
	}
	move, ok := ResolveMove(g.board, from, target)
	if !ok {
		log.Debug().Str("game_id", g.ID).Int("from", from).Int("to", target).Msg("rejected move")
		return false
	}
	g.applyMove(move)
	g.selected = ""
	g.switchTurn()
	g.emit(EventMove)
	return true
}

// Reset starts a fresh game. An AI task scheduled before the reset becomes a no-op.
func (g *Game) Reset() {
	defer g.flush()
	g.mu.Lock()
	defer g.mu.Unlock()

	g.setup()
	g.turns.reset()
	log.Info().Str("game_id", g.ID).Msg("game reset")
	g.emit(EventReset)
}

func (g *Game) runAITurn(generation int) {
	defer g.flush()
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.turns.claim(generation) || g.resolve != nil {
		return
	}
	move, moved := g.policy.ComputeMove(g.black, g.board)
	if moved {
		g.applyMove(move)
		g.switchTurn()
		g.emit(EventMove)
	}
	if g.checkWinner() {
		return
	}
	if !moved {
		g.finish(ResultPlayerWon, ReasonAIBlocked)
	}
}

func (g *Game) checkWinner() bool {
	switch {
	case len(g.red) == 0:
		g.finish(ResultPlayerLost, ReasonNoPieces)
		return true
	case len(g.black) == 0:
		g.finish(ResultPlayerWon, ReasonNoPieces)
		return true
	}
	return false
}

func (g *Game) finish(result Result, reason string) {
	g.resolve = &Outcome{Result: result, Reason: reason}
	g.selected = ""
	g.redClock.Stop()
	g.blackClock.Stop()
	log.Info().Str("game_id", g.ID).Str("result", string(result)).Str("reason", reason).Msg("game over")
	g.emit(EventGameOver)
}

func (g *Game) applyMove(move Move) {
	if move.IsCapture() {
		g.removePiece(move.Captured)
	}
	piece := g.board.Remove(move.From)
	g.board.Place(move.To, piece)
	g.history = append(g.history, Ply{
		Side:     piece.Side,
		Move:     move,
		Notation: move.Notation(),
	})
	g.lastMove = &move
	log.Debug().Str("game_id", g.ID).Str("side", string(piece.Side)).Str("move", move.Notation()).Msg("move applied")
}

// removePiece clears the cell and the owning roster together.
func (g *Game) removePiece(index int) {
	piece := g.board.Remove(index)
	if piece == nil {
		return
	}
	isPiece := func(p *Piece) bool { return p.ID == piece.ID }
	if piece.Side == SideRed {
		g.red = slices.DeleteFunc(g.red, isPiece)
	} else {
		g.black = slices.DeleteFunc(g.black, isPiece)
	}
}

func (g *Game) switchTurn() {
	g.clockFor(g.turns.Current()).Stop()
	g.turns.Switch()
	g.clockFor(g.turns.Current()).Start()
}

func (g *Game) clockFor(side Side) *Clock {
	if side == SideRed {
		return g.redClock
	}
	return g.blackClock
}

func (g *Game) snapshot() GameState {
	state := GameState{
		ID:          g.ID,
		Seq:         g.seq,
		Board:       g.board.Cells(),
		ToMove:      g.turns.Current(),
		AIThinking:  g.turns.Pending(),
		LegalMoves:  []int{},
		RedCount:    len(g.red),
		BlackCount:  len(g.black),
		MoveHistory: slices.Clone(g.history),
		RedTimeMs:   g.redClock.Used().Milliseconds(),
		BlackTimeMs: g.blackClock.Used().Milliseconds(),
	}
	if g.selected != "" {
		selected := g.selected
		state.Selected = &selected
		if from, ok := g.board.IndexOf(selected); ok {
			state.LegalMoves = LegalTargets(g.board, from)
		}
	}
	if g.lastMove != nil {
		lastMove := *g.lastMove
		state.LastMove = &lastMove
	}
	if g.resolve != nil {
		resolve := *g.resolve
		state.Resolve = &resolve
	}
	return state
}
