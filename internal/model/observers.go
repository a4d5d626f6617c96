package model

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type EventType string

const (
	EventSelect   EventType = "select"
	EventMove     EventType = "move"
	EventGameOver EventType = "gameOver"
	EventReset    EventType = "reset"
)

// Event tells the presentation layer what changed, with the state right after the change.
type Event struct {
	Type  EventType `json:"type"`
	State GameState `json:"state"`
}

type Observer interface {
	Notify(Event)
}

type ObserverFunc func(Event)

func (f ObserverFunc) Notify(e Event) {
	f(e)
}

// The observers for a specific game
type GameObservers struct {
	observers map[string]Observer // subscriber id -> observer
	mu        sync.RWMutex
}

func NewGameObservers() *GameObservers {
	return &GameObservers{
		observers: make(map[string]Observer),
	}
}

func (o *GameObservers) add(id string, observer Observer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers[id] = observer
}

func (o *GameObservers) remove(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.observers, id)
}

func (o *GameObservers) size() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.observers)
}

func (o *GameObservers) broadcast(e Event) {
	o.mu.RLock()
	active := make([]Observer, 0, len(o.observers))
	for _, observer := range o.observers {
		active = append(active, observer)
	}
	o.mu.RUnlock()

	for _, observer := range active {
		observer.Notify(e)
	}
}

// Subscribe registers an observer under id, replacing any previous one with that id.
func (g *Game) Subscribe(id string, observer Observer) {
	g.observers.add(id, observer)
	log.Debug().Str("game_id", g.ID).Str("subscriber", id).Msg("observer subscribed")
}

func (g *Game) Unsubscribe(id string) {
	g.observers.remove(id)
	log.Debug().Str("game_id", g.ID).Str("subscriber", id).Msg("observer unsubscribed")
}

func (g *Game) Observers() int {
	return g.observers.size()
}

func (g *Game) emit(t EventType) {
	g.seq++
	g.outbox = append(g.outbox, Event{Type: t, State: g.snapshot()})
}

// flush delivers queued events outside the game lock. Flushes are serialized and
// each drains everything queued so far, so observers see events in emit order.
// Observers must not call back into the game that notifies them.
func (g *Game) flush() {
	g.deliverMu.Lock()
	defer g.deliverMu.Unlock()

	g.mu.Lock()
	events := g.outbox
	g.outbox = nil
	g.mu.Unlock()

	for _, e := range events {
		g.observers.broadcast(e)
	}
}
