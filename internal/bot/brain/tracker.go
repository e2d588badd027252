package brain

import (
	"hanabi/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Tracker rebuilds the belief state for one seat from the authoritative
// snapshot chain. Each Sync replays exactly the actions taken since the
// previous call, validating every replayed hint and maintaining the
// shared ledger, so the policy layer always decides from current beliefs.
//
// A snapshot that cannot be interpreted is logged and skipped: the agent
// plays on with partial belief rather than aborting the whole replay.
type Tracker struct {
	Self    int
	Players []*PlayerModel
	Ledger  *Ledger

	HandSize  int
	lastOrder int
	seeded    bool
	opening   *domain.State
	log       runtime.Logger
}

// NewTracker builds a tracker for the given seat. The logger records
// tolerated replay degradations.
func NewTracker(self int, log runtime.Logger) *Tracker {
	return &Tracker{Self: self, log: log}
}

// SelfModel returns the model of the tracker's own seat.
func (t *Tracker) SelfModel() *PlayerModel {
	return t.Players[t.Self]
}

// Model returns the model for any seat, or nil when out of range.
func (t *Tracker) Model(seat int) *PlayerModel {
	if seat < 0 || seat >= len(t.Players) {
		return nil
	}
	return t.Players[seat]
}

// Sync advances the belief state to match the given snapshot. The first
// call seeds every player model from the opening deal and replays the
// entire history; later calls replay only the rotation since the last
// synced order, locating each action's bracketing snapshots on the chain.
func (t *Tracker) Sync(current *domain.State) {
	// A snapshot rooted in a different opening deal belongs to a new
	// game. Reseed; replaying across games corrupts every belief.
	if t.seeded && current.StateAt(0) != t.opening {
		t.seeded = false
	}
	if !t.seeded {
		t.seed(current)
	}

	var pending []*domain.State
	for s := current; s != nil && s.Order > t.lastOrder; s = s.Previous {
		pending = append(pending, s)
	}

	for i := len(pending) - 1; i >= 0; i-- {
		after := pending[i]
		if after.Action == nil || after.Previous == nil {
			t.log.Warn("Sync: snapshot at order %d has no replayable action, skipping", after.Order)
			continue
		}
		t.interpret(after.Action, after.Previous, after)
	}
	t.lastOrder = current.Order
}

// seed builds the ledger and one model per seat from the opening deal,
// then registers what every viewer saw: each opening hand is observed by
// every other seat. The tracker's own hand is the one deal it cannot see,
// so it cannot know what others removed for it.
func (t *Tracker) seed(current *domain.State) {
	opening := current.StateAt(0)
	if opening == nil {
		t.log.Warn("seed: opening snapshot unreachable, seeding from the current state")
		opening = current
	}

	t.HandSize = 0
	if len(opening.Hands) > 0 {
		t.HandSize = len(opening.Hands[0])
	}

	t.Ledger = NewLedger()
	t.Players = make([]*PlayerModel, len(opening.Players))
	for seat, name := range opening.Players {
		var hand []domain.Card
		if seat != t.Self {
			hand = opening.Hand(seat)
		}
		t.Players[seat] = NewPlayerModel(seat, name, t.HandSize, hand)
	}

	for _, visible := range t.Players {
		if visible.Seat == t.Self {
			continue
		}
		hand := opening.Hand(visible.Seat)
		for _, viewer := range t.Players {
			if viewer.Seat == visible.Seat {
				continue
			}
			for _, card := range hand {
				viewer.ObserveCard(card)
			}
		}
	}

	t.seeded = true
	t.opening = opening
	t.lastOrder = opening.Order
}

// interpret dispatches one replayed action to its handler. before is the
// snapshot the actor acted from, after the snapshot the action produced.
func (t *Tracker) interpret(a *domain.Action, before, after *domain.State) {
	if a.Actor < 0 || a.Actor >= len(t.Players) {
		t.log.Warn("interpret: action at order %d names unknown seat %d, skipping", after.Order, a.Actor)
		return
	}

	switch a.Type {
	case domain.ActionDiscard:
		t.applyDiscard(a, before, after)
	case domain.ActionPlay:
		t.applyPlay(a, before, after)
	case domain.ActionColourHint, domain.ActionRankHint:
		t.applyHint(a, before, after)
	default:
		t.log.Warn("interpret: unrecognized action %v at order %d, skipping", a.Type, after.Order)
	}
}

// applyDiscard identifies the discarded card from the post-action discard
// top, retires it from the ledger, and turns the slot over.
func (t *Tracker) applyDiscard(a *domain.Action, before, after *domain.State) {
	card, ok := after.DiscardTop()
	if !ok {
		t.log.Warn("applyDiscard: no discard visible after order %d, skipping", after.Order)
		return
	}
	t.retireCard(card, a, before, after)
}

// applyPlay identifies the played card by diffing the firework tops. An
// unchanged board means the play failed and the card burned a life; it is
// then found atop the discard pile instead.
func (t *Tracker) applyPlay(a *domain.Action, before, after *domain.State) {
	var card domain.Card
	found := false
	for c := 0; c < domain.NumColours; c++ {
		if after.Fireworks[c] != before.Fireworks[c] {
			card = domain.Card{Colour: domain.Colour(c), Rank: after.Fireworks[c]}
			found = true
			break
		}
	}
	if !found {
		top, ok := after.DiscardTop()
		if !ok {
			t.log.Warn("applyPlay: failed play with empty discard after order %d, skipping", after.Order)
			return
		}
		card = top
	}
	t.retireCard(card, a, before, after)
}

// retireCard does the shared play/discard bookkeeping: the card leaves
// circulation, its former holder finally sees it, and the vacated slot is
// refilled from the deck when one is available.
func (t *Tracker) retireCard(card domain.Card, a *domain.Action, before, after *domain.State) {
	t.Ledger.Remove(card.Colour, card.Rank)

	actor := t.Players[a.Actor]
	actor.ObserveCard(card)
	actor.ReplaceSlot(a.Pos)

	if after.GameOver() {
		return
	}

	if actor.Seat == t.Self {
		// The replacement is invisible to us; we only learn whether the
		// slot refilled at all.
		if before.DeckSize == 0 {
			actor.MarkSlotEmpty(a.Pos)
		}
		return
	}

	newHand := after.Hand(actor.Seat)
	if a.Pos < 0 || a.Pos >= len(newHand) {
		t.log.Warn("retireCard: slot %d out of range for seat %d at order %d", a.Pos, actor.Seat, after.Order)
		return
	}
	actor.Hand = newHand

	drawn := newHand[a.Pos]
	if drawn.Empty() {
		actor.MarkSlotEmpty(a.Pos)
		return
	}
	for _, viewer := range t.Players {
		if viewer.Seat == actor.Seat {
			continue
		}
		viewer.ObserveCard(drawn)
	}
}

// applyHint reconstructs the hint record, verifies it, scores the
// hinter's intentionality and narrows the receiver's beliefs. Hints from
// a seat already marked untrustworthy are ignored outright. Hints to our
// own seat are trusted unconditionally; we cannot check our own hand.
func (t *Tracker) applyHint(a *domain.Action, before, after *domain.State) {
	hinter := t.Players[a.Actor]
	if !hinter.Trustworthy {
		return
	}

	h := HintFromAction(a)
	if h == nil || a.Receiver < 0 || a.Receiver >= len(t.Players) || a.Receiver == a.Actor {
		t.log.Warn("applyHint: malformed hint at order %d, skipping", after.Order)
		return
	}
	receiver := t.Players[a.Receiver]

	if a.Receiver == t.Self {
		receiver.RecordHint(h)
		t.applyHintToBeliefs(receiver, h)
		return
	}

	hand := before.Hand(a.Receiver)
	if len(h.Targets) != len(hand) {
		t.log.Warn("applyHint: target mask length %d does not fit hand of %d at order %d, skipping",
			len(h.Targets), len(hand), after.Order)
		return
	}
	for pos, card := range hand {
		if h.Matches(card) != h.Targets[pos] {
			hinter.MarkUntrustworthy()
			return
		}
	}

	class := ClassifyHint(h, hand, BoardFrom(before), t.Ledger)
	hinter.ScoreIntent(class.IntentIncrement())

	receiver.RecordHint(h)
	t.applyHintToBeliefs(receiver, h)
}

// applyHintToBeliefs narrows every targeted slot's belief.
func (t *Tracker) applyHintToBeliefs(receiver *PlayerModel, h *Hint) {
	for pos := range h.Targets {
		if !h.Covers(pos) || pos >= len(receiver.Beliefs) {
			continue
		}
		if h.Mode == HintColour {
			receiver.Beliefs[pos].ApplyColourHint(h.Colour)
		} else {
			receiver.Beliefs[pos].ApplyRankHint(h.Rank)
		}
	}
}
