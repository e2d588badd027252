package brain

import "hanabi/internal/domain"

// NeutralIntent is the starting intentionality score for every seat.
const NeutralIntent = 0.5

// PlayerModel aggregates everything the tracker knows about one seat: its
// visible hand (absent for the tracker's own seat), one belief per hand
// slot, the per-player potential grid bounding those beliefs, the hints
// it has received and its running trust scores.
type PlayerModel struct {
	Seat int
	Name string

	// Hand mirrors the seat's true cards. Nil for the tracker's own seat,
	// which is the one hand the tracker can never see.
	Hand []domain.Card

	Beliefs   []*CardBelief
	Potential Grid
	Empty     []bool // slots with no card left after the deck ran dry

	// Trustworthy is permanent once falsified. Intent is the running
	// intentionality average in [0,1].
	Trustworthy bool
	Intent      float64

	Hints []*Hint
}

// NewPlayerModel builds a seat model from the full spread. hand is nil
// for the tracker's own seat.
func NewPlayerModel(seat int, name string, handSize int, hand []domain.Card) *PlayerModel {
	p := &PlayerModel{
		Seat:        seat,
		Name:        name,
		Hand:        hand,
		Potential:   SpreadGrid(),
		Beliefs:     make([]*CardBelief, handSize),
		Empty:       make([]bool, handSize),
		Trustworthy: true,
		Intent:      NeutralIntent,
	}
	for i := range p.Beliefs {
		p.Beliefs[i] = NewCardBelief(p.Potential)
	}
	return p
}

// ObserveCard accounts for one physically seen card: the potential grid
// and every slot belief drop a copy of that identity. Call exactly once
// per observer per physical card; double counting corrupts the grid.
func (p *PlayerModel) ObserveCard(card domain.Card) {
	if card.Empty() {
		return
	}
	p.Potential.Dec(card.Colour, card.Rank)
	for _, b := range p.Beliefs {
		b.Remove(card.Colour, card.Rank)
	}
}

// ReplaceSlot installs a fresh belief seeded from the current potential
// grid and voids every recorded hint claim about the old card.
func (p *PlayerModel) ReplaceSlot(pos int) {
	if pos < 0 || pos >= len(p.Beliefs) {
		return
	}
	p.Beliefs[pos] = NewCardBelief(p.Potential)
	p.Empty[pos] = false
	for _, h := range p.Hints {
		h.DropTarget(pos)
	}
}

// MarkSlotEmpty flags a slot that could not be refilled.
func (p *PlayerModel) MarkSlotEmpty(pos int) {
	if pos >= 0 && pos < len(p.Empty) {
		p.Empty[pos] = true
	}
}

// RecordHint appends a hint this seat received.
func (p *PlayerModel) RecordHint(h *Hint) {
	p.Hints = append(p.Hints, h)
}

// ScoreIntent folds one observation into the running average, weighing
// the newest observation equally against the entire prior history.
func (p *PlayerModel) ScoreIntent(inc float64) {
	p.Intent = (p.Intent + inc) / 2
}

// MarkUntrustworthy permanently disqualifies the seat's hints.
func (p *PlayerModel) MarkUntrustworthy() {
	p.Trustworthy = false
}

// HintedAt reports whether the slot is still covered by a recorded hint
// whose hinter satisfies the predicate.
func (p *PlayerModel) HintedAt(pos int, trusted func(hinter int) bool) bool {
	for _, h := range p.Hints {
		if h.Covers(pos) && trusted(h.Hinter) {
			return true
		}
	}
	return false
}
