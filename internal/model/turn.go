package model

import "time"

// TurnController alternates red and black. Entering black's turn schedules exactly one
// AI task; the task carries the generation it was scheduled in so a reset can orphan it.
type TurnController struct {
	current    Side
	pending    bool
	generation int
	delay      time.Duration
	scheduler  Scheduler
	onAITurn   func(generation int)
}

func NewTurnController(scheduler Scheduler, delay time.Duration, onAITurn func(generation int)) *TurnController {
	return &TurnController{
		current:   SideRed,
		delay:     delay,
		scheduler: scheduler,
		onAITurn:  onAITurn,
	}
}

func (tc *TurnController) Current() Side {
	return tc.current
}

// Pending reports whether an AI task is scheduled but has not started yet.
func (tc *TurnController) Pending() bool {
	return tc.pending
}

// Switch flips the turn without checking that the mover had any move.
func (tc *TurnController) Switch() {
	tc.current = tc.current.Opponent()
	if tc.current == SideBlack && !tc.pending {
		tc.pending = true
		generation := tc.generation
		tc.scheduler.Schedule(tc.delay, func() {
			tc.onAITurn(generation)
		})
	}
}

// claim marks the pending AI task as started. It returns false for a task scheduled
// before the last reset.
func (tc *TurnController) claim(generation int) bool {
	if generation != tc.generation || !tc.pending {
		return false
	}
	tc.pending = false
	return true
}

func (tc *TurnController) reset() {
	tc.current = SideRed
	tc.pending = false
	tc.generation++
}
