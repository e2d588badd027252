package brain

import "hanabi/internal/domain"

// HintMode distinguishes colour hints from rank hints.
type HintMode int

const (
	HintColour HintMode = iota
	HintRank
)

// Hint records one hint as replayed from history. It is never mutated
// after creation except that a target flag is cleared when the referenced
// slot's card is replaced, since the claim about that slot is moot from
// then on.
type Hint struct {
	Mode     HintMode
	Colour   domain.Colour
	Rank     int
	Targets  []bool
	Hinter   int
	Receiver int
}

// HintFromAction lifts a replayed hint action into a Hint record.
// Returns nil for non-hint actions.
func HintFromAction(a *domain.Action) *Hint {
	h := &Hint{
		Targets:  append([]bool{}, a.Targets...),
		Hinter:   a.Actor,
		Receiver: a.Receiver,
	}
	switch a.Type {
	case domain.ActionColourHint:
		h.Mode = HintColour
		h.Colour = a.Colour
	case domain.ActionRankHint:
		h.Mode = HintRank
		h.Rank = a.Rank
	default:
		return nil
	}
	return h
}

// Matches reports whether the hint's value applies to the card.
func (h *Hint) Matches(card domain.Card) bool {
	if card.Empty() {
		return false
	}
	if h.Mode == HintColour {
		return card.Colour == h.Colour
	}
	return card.Rank == h.Rank
}

// Covers reports whether the hint still targets the slot.
func (h *Hint) Covers(pos int) bool {
	return pos >= 0 && pos < len(h.Targets) && h.Targets[pos]
}

// DropTarget narrows the mask after the slot's card has been replaced.
func (h *Hint) DropTarget(pos int) {
	if pos >= 0 && pos < len(h.Targets) {
		h.Targets[pos] = false
	}
}

// HintClass is the interpreter's judgement of a hint's intent.
type HintClass int

const (
	// HintAmbiguous carries information without an obvious follow-up.
	HintAmbiguous HintClass = iota
	// HintPlayable marks every targeted card as sitting one above its chain.
	HintPlayable
	// HintUseless marks every targeted card as dead weight, safe to discard.
	HintUseless
)

// IntentIncrement maps the classification to its intentionality score.
func (c HintClass) IntentIncrement() float64 {
	switch c {
	case HintPlayable, HintUseless:
		return 1.0
	}
	return 0.5
}

// ClassifyHint judges a hint against the receiver's actual hand at hint
// time. Playable beats useless when a mask somehow satisfies both.
func ClassifyHint(h *Hint, hand []domain.Card, board Board, ledger *Ledger) HintClass {
	playable, useless := true, true
	targeted := 0

	for pos, card := range hand {
		if !h.Covers(pos) || card.Empty() {
			continue
		}
		targeted++
		if card.Rank != board.PlayableRank(card.Colour) {
			playable = false
		}
		if !CardDead(card, board, ledger) {
			useless = false
		}
	}

	if targeted == 0 {
		return HintAmbiguous
	}
	if playable {
		return HintPlayable
	}
	if useless {
		return HintUseless
	}
	return HintAmbiguous
}

// CardDead reports whether the card can never be played: its chain has
// already passed it, or a rank below it has been exhausted from the
// ledger so the chain can never reach it.
func CardDead(card domain.Card, board Board, ledger *Ledger) bool {
	if card.Empty() {
		return true
	}
	if card.Rank <= board[card.Colour] {
		return true
	}
	for r := board[card.Colour] + 1; r < card.Rank; r++ {
		if ledger.Exhausted(card.Colour, r) {
			return true
		}
	}
	return false
}
