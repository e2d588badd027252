package brain

import "hanabi/internal/domain"

// Ledger counts every card not yet played or discarded. One ledger is
// shared by all player models of a single tracker; counts only ever go
// down, and a cell at zero permanently excludes that identity.
type Ledger struct {
	Counts Grid
}

// NewLedger starts from the full deck spread.
func NewLedger() *Ledger {
	return &Ledger{Counts: SpreadGrid()}
}

// Remove takes one copy of the identity out of circulation.
func (l *Ledger) Remove(colour domain.Colour, rank int) {
	l.Counts.Dec(colour, rank)
}

// Count returns how many copies of the identity remain unplayed.
func (l *Ledger) Count(colour domain.Colour, rank int) int {
	return l.Counts.Count(colour, rank)
}

// Exhausted reports whether every copy of the identity has been played or
// discarded.
func (l *Ledger) Exhausted(colour domain.Colour, rank int) bool {
	return l.Counts.Count(colour, rank) == 0
}
