package model

// Side is one of the two piece sets. The human always plays red and the AI black.
type Side string

const (
	SideRed   Side = "red"
	SideBlack Side = "black"
)

func (s Side) Opponent() Side {
	if s == SideRed {
		return SideBlack
	}
	return SideRed
}

// Player is the human who created a game and is allowed to send intents to it.
type Player struct {
	ID   string `json:"id"`
	Side Side   `json:"side"`
}
