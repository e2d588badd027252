package nakama

import (
	"fmt"

	"hanabi/internal/app"
	"hanabi/internal/domain"
)

// MatchLabel is the queryable JSON label kept current on every match.
type MatchLabel struct {
	Game  string `json:"game"`
	Open  int    `json:"open"`
	State string `json:"state"`
}

// WireCard is the JSON shape of one card. Rank 0 marks an empty slot, in
// which case Colour is omitted.
type WireCard struct {
	Colour string `json:"colour,omitempty"`
	Rank   int    `json:"rank"`
}

func toWireCard(c domain.Card) WireCard {
	if c.Empty() {
		return WireCard{}
	}
	return WireCard{Colour: c.Colour.String(), Rank: c.Rank}
}

func toWireCards(cards []domain.Card) []WireCard {
	out := make([]WireCard, len(cards))
	for i, c := range cards {
		out[i] = toWireCard(c)
	}
	return out
}

func toWireHands(hands [][]domain.Card) [][]WireCard {
	out := make([][]WireCard, len(hands))
	for i, hand := range hands {
		out[i] = toWireCards(hand)
	}
	return out
}

func parseColour(name string) (domain.Colour, error) {
	for c := 0; c < domain.NumColours; c++ {
		if domain.Colour(c).String() == name {
			return domain.Colour(c), nil
		}
	}
	return 0, fmt.Errorf("unknown colour %q", name)
}

// PlayCardRequest asks to play the sender's card at the given slot.
type PlayCardRequest struct {
	Pos int `json:"pos"`
}

// DiscardCardRequest asks to discard the sender's card at the given slot.
type DiscardCardRequest struct {
	Pos int `json:"pos"`
}

// GiveHintRequest asks to hint another seat. Exactly one of Colour or
// Rank is set; the server derives the slot mask from the receiver's hand.
type GiveHintRequest struct {
	Receiver int    `json:"receiver"`
	Colour   string `json:"colour,omitempty"`
	Rank     int    `json:"rank,omitempty"`
}

// PlayerState is one seat's public standing in the snapshot broadcast.
type PlayerState struct {
	UserID      string `json:"user_id"`
	Seat        int    `json:"seat"`
	IsOwner     bool   `json:"is_owner"`
	IsBot       bool   `json:"is_bot"`
	DisplayName string `json:"display_name"`
}

// MatchStateSnapshot is broadcast whenever the seating changes.
type MatchStateSnapshot struct {
	Seats     []string      `json:"seats"`
	OwnerSeat int           `json:"owner_seat"`
	Tick      int64         `json:"tick"`
	Players   []PlayerState `json:"players"`
}

type GameStartedEvent struct {
	Players    []string `json:"players"`
	HandSize   int      `json:"hand_size"`
	HintTokens int      `json:"hint_tokens"`
	Lives      int      `json:"lives"`
	DeckSize   int      `json:"deck_size"`
	FirstSeat  int      `json:"first_seat"`
}

// HandDealtEvent carries the table as one viewer sees it. The viewer's
// own hand arrives as empty slots.
type HandDealtEvent struct {
	Seat  int          `json:"seat"`
	Hands [][]WireCard `json:"hands"`
}

type WireAction struct {
	Type     string `json:"type"`
	Actor    int    `json:"actor"`
	Pos      int    `json:"pos,omitempty"`
	Receiver int    `json:"receiver,omitempty"`
	Colour   string `json:"colour,omitempty"`
	Rank     int    `json:"rank,omitempty"`
	Targets  []bool `json:"targets,omitempty"`
}

func toWireAction(a domain.Action) WireAction {
	w := WireAction{Type: a.Type.String(), Actor: a.Actor}
	switch a.Type {
	case domain.ActionPlay, domain.ActionDiscard:
		w.Pos = a.Pos
	case domain.ActionColourHint:
		w.Receiver = a.Receiver
		w.Colour = a.Colour.String()
		w.Targets = a.Targets
	case domain.ActionRankHint:
		w.Receiver = a.Receiver
		w.Rank = a.Rank
		w.Targets = a.Targets
	}
	return w
}

type ActionAppliedEvent struct {
	Action     WireAction `json:"action"`
	Order      int        `json:"order"`
	Fireworks  []int      `json:"fireworks"`
	HintTokens int        `json:"hint_tokens"`
	Lives      int        `json:"lives"`
	DeckSize   int        `json:"deck_size"`
	NextPlayer int        `json:"next_player"`
	Score      int        `json:"score"`
	Revealed   *WireCard  `json:"revealed,omitempty"`
}

func toActionAppliedEvent(p app.ActionAppliedPayload) ActionAppliedEvent {
	ev := ActionAppliedEvent{
		Action:     toWireAction(p.Action),
		Order:      p.Order,
		Fireworks:  p.Fireworks[:],
		HintTokens: p.HintTokens,
		Lives:      p.Lives,
		DeckSize:   p.DeckSize,
		NextPlayer: p.NextPlayer,
		Score:      p.Score,
	}
	if p.Revealed != nil {
		card := toWireCard(*p.Revealed)
		ev.Revealed = &card
	}
	return ev
}

type CardDrawnEvent struct {
	Seat int      `json:"seat"`
	Pos  int      `json:"pos"`
	Card WireCard `json:"card"`
}

type GameEndedEvent struct {
	Score     int    `json:"score"`
	Fireworks []int  `json:"fireworks"`
	Reason    string `json:"reason"`
}

// GameErrorEvent reports a rejected request back to its sender only.
type GameErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
