package bot

import (
	"math/rand"

	"hanabi/internal/domain"
)

// CasualBot plays legal moves without any belief modelling. It hints or
// discards at random and only plays when a play is the last legal option,
// which makes it a gentle filler for mixed tables and a useful baseline
// in simulations.
type CasualBot struct {
	rng *rand.Rand
}

// NewCasualBot builds the casual strategy around the given rng.
func NewCasualBot(rng *rand.Rand) *CasualBot {
	return &CasualBot{rng: rng}
}

func (b *CasualBot) OnEvent(event interface{}) {}

// CalculateMove picks a random legal action for the seat.
func (b *CasualBot) CalculateMove(state *domain.State, seat int) (domain.Action, error) {
	if state.HintTokens > 0 && b.rng.Intn(2) == 0 {
		if a, ok := b.randomHint(state, seat); ok {
			return a, nil
		}
	}

	if state.HintTokens < domain.MaxHintTokens {
		if pos, ok := b.randomSlot(state, seat); ok {
			return domain.NewDiscard(seat, pos), nil
		}
	}
	if pos, ok := b.randomSlot(state, seat); ok {
		return domain.NewPlay(seat, pos), nil
	}
	if a, ok := b.randomHint(state, seat); ok {
		return a, nil
	}
	return domain.Action{}, ErrNoMove
}

func (b *CasualBot) randomSlot(state *domain.State, seat int) (int, bool) {
	hand := state.Hand(seat)
	var occupied []int
	for pos, card := range hand {
		if !card.Empty() {
			occupied = append(occupied, pos)
		}
	}
	if len(occupied) == 0 {
		return 0, false
	}
	return occupied[b.rng.Intn(len(occupied))], true
}

func (b *CasualBot) randomHint(state *domain.State, seat int) (domain.Action, bool) {
	others := b.rng.Perm(len(state.Players))
	for _, receiver := range others {
		if receiver == seat {
			continue
		}
		hand := state.Hand(receiver)
		var occupied []int
		for pos, card := range hand {
			if !card.Empty() {
				occupied = append(occupied, pos)
			}
		}
		if len(occupied) == 0 {
			continue
		}
		card := hand[occupied[b.rng.Intn(len(occupied))]]
		if b.rng.Intn(2) == 0 {
			return domain.NewColourHint(seat, receiver, card.Colour, colourMask(hand, card.Colour)), true
		}
		return domain.NewRankHint(seat, receiver, card.Rank, rankMask(hand, card.Rank)), true
	}
	return domain.Action{}, false
}
