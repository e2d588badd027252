package domain

import "fmt"

// ActionType tags the four legal Hanabi moves.
type ActionType int

const (
	ActionPlay ActionType = iota
	ActionDiscard
	ActionColourHint
	ActionRankHint
)

func (t ActionType) String() string {
	switch t {
	case ActionPlay:
		return "play"
	case ActionDiscard:
		return "discard"
	case ActionColourHint:
		return "colour_hint"
	case ActionRankHint:
		return "rank_hint"
	}
	return "unknown"
}

// Action describes one move. Only the fields relevant to its Type are
// populated: Pos for plays and discards; Receiver plus Colour or Rank and
// the Targets slot mask for hints.
type Action struct {
	Type     ActionType
	Actor    int
	Pos      int
	Receiver int
	Colour   Colour
	Rank     int
	Targets  []bool
}

// NewPlay builds a play action for the actor's hand slot pos.
func NewPlay(actor, pos int) Action {
	return Action{Type: ActionPlay, Actor: actor, Pos: pos}
}

// NewDiscard builds a discard action for the actor's hand slot pos.
func NewDiscard(actor, pos int) Action {
	return Action{Type: ActionDiscard, Actor: actor, Pos: pos}
}

// NewColourHint builds a colour hint targeting every slot set in targets.
func NewColourHint(actor, receiver int, colour Colour, targets []bool) Action {
	return Action{Type: ActionColourHint, Actor: actor, Receiver: receiver, Colour: colour, Targets: targets}
}

// NewRankHint builds a rank hint targeting every slot set in targets.
func NewRankHint(actor, receiver int, rank int, targets []bool) Action {
	return Action{Type: ActionRankHint, Actor: actor, Receiver: receiver, Rank: rank, Targets: targets}
}

func (a Action) String() string {
	switch a.Type {
	case ActionPlay, ActionDiscard:
		return fmt.Sprintf("%s slot %d by seat %d", a.Type, a.Pos, a.Actor)
	case ActionColourHint:
		return fmt.Sprintf("colour hint %s to seat %d by seat %d", a.Colour, a.Receiver, a.Actor)
	case ActionRankHint:
		return fmt.Sprintf("rank hint %d to seat %d by seat %d", a.Rank, a.Receiver, a.Actor)
	}
	return "unknown action"
}
