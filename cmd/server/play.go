package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/FlavioCraftsCode/Jogo-de-Damas/internal/model"
	"github.com/google/uuid"
)

var errMoveSyntax = errors.New(`expected "<from> <to>" cell indices, e.g. "42 33"`)

// play runs a single terminal game. The queue scheduler is the event loop: the AI task
// queued by a player move is drained before the next line is read.
func play(in io.Reader, out io.Writer, aiDelay time.Duration) error {
	q := model.NewQueueScheduler()
	settings := model.DefaultGameSettings()
	settings.Scheduler = q
	settings.AIDelay = aiDelay
	game := model.NewGame(uuid.New().String(), "local", settings)

	fmt.Fprintln(out, "You are red (r), the AI is black (b). Type quit to leave.")
	fmt.Fprint(out, game.State().Render())

	printed := 0
	scanner := bufio.NewScanner(in)
	for !game.IsOver() {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" {
			return nil
		}
		from, to, err := parseMove(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if !playerTurn(game, from, to) {
			fmt.Fprintln(out, "illegal move")
			continue
		}

		time.Sleep(aiDelay)
		q.RunPending()

		state := game.State()
		for _, ply := range state.MoveHistory[printed:] {
			who := "you"
			if ply.Side == model.SideBlack {
				who = "ai"
			}
			fmt.Fprintf(out, "%s: %s\n", who, ply.Notation)
		}
		printed = len(state.MoveHistory)
		fmt.Fprint(out, state.Render())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if resolve := game.State().Resolve; resolve != nil {
		switch resolve.Result {
		case model.ResultPlayerWon:
			fmt.Fprintln(out, "You won!")
		case model.ResultPlayerLost:
			fmt.Fprintln(out, "You lost!")
		}
	}
	return nil
}

func parseMove(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, errMoveSyntax
	}
	from, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, errMoveSyntax
	}
	to, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errMoveSyntax
	}
	return from, to, nil
}

func playerTurn(game *model.Game, from, to int) bool {
	if !model.InBounds(from) {
		return false
	}
	piece := game.State().Board[from].Piece
	if piece == nil || !game.TrySelect(piece.ID) {
		return false
	}
	return game.TryMove(to)
}
