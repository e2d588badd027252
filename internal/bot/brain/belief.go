package brain

import (
	"errors"

	"hanabi/internal/domain"
)

// ErrExhaustedBelief is returned when a belief is queried for a
// probability but holds no remaining mass. That state is unreachable
// through correct tracking, so callers should surface it as a defect.
var ErrExhaustedBelief = errors.New("card belief has no remaining mass")

// CardBelief tracks every identity one specific hand slot could still be,
// as a count grid bounded by what the slot's holder could hold. Cells
// inconsistent with received hints are zeroed; cells drop as matching
// cards are seen elsewhere.
type CardBelief struct {
	Counts      Grid
	KnownColour bool
	Colour      domain.Colour
	KnownRank   bool
	Rank        int
}

// NewCardBelief seeds a fresh belief from the holder's potential grid.
func NewCardBelief(potential Grid) *CardBelief {
	b := &CardBelief{Counts: potential}
	b.promote()
	return b
}

// ApplyColourHint zeroes every cell of a different colour.
func (b *CardBelief) ApplyColourHint(colour domain.Colour) {
	for c := 0; c < domain.NumColours; c++ {
		if domain.Colour(c) == colour {
			continue
		}
		for r := 0; r < domain.NumRanks; r++ {
			b.Counts[c][r] = 0
		}
	}
	b.KnownColour = true
	b.Colour = colour
	b.promote()
}

// ApplyRankHint zeroes every cell of a different rank.
func (b *CardBelief) ApplyRankHint(rank int) {
	for c := 0; c < domain.NumColours; c++ {
		for r := 0; r < domain.NumRanks; r++ {
			if r != rank-1 {
				b.Counts[c][r] = 0
			}
		}
	}
	b.KnownRank = true
	b.Rank = rank
	b.promote()
}

// Remove accounts for one publicly seen copy of the identity. Floored at
// zero: several beliefs may independently witness the same physical card.
func (b *CardBelief) Remove(colour domain.Colour, rank int) {
	b.Counts.Dec(colour, rank)
	b.promote()
}

// TotalMass is the number of concrete cards the slot could still be.
func (b *CardBelief) TotalMass() int {
	return b.Counts.Total()
}

// promote resolves a dimension once only one of its values keeps mass.
// A colour hint can pin the rank this way, and vice versa.
func (b *CardBelief) promote() {
	colours, ranks := 0, 0
	lastColour := domain.Colour(0)
	lastRank := 0

	for c := 0; c < domain.NumColours; c++ {
		for r := 0; r < domain.NumRanks; r++ {
			if b.Counts[c][r] > 0 {
				colours++
				lastColour = domain.Colour(c)
				break
			}
		}
	}
	for r := 0; r < domain.NumRanks; r++ {
		for c := 0; c < domain.NumColours; c++ {
			if b.Counts[c][r] > 0 {
				ranks++
				lastRank = r + 1
				break
			}
		}
	}

	if colours == 1 && !b.KnownColour {
		b.KnownColour = true
		b.Colour = lastColour
	}
	if ranks == 1 && !b.KnownRank {
		b.KnownRank = true
		b.Rank = lastRank
	}
}

// IsUseless reports whether every identity the slot could still be is
// already unplayable: nothing with mass sits above its chain while copies
// remain in the ledger. A belief whose candidates are all exhausted in
// the ledger is vacuously useless.
func (b *CardBelief) IsUseless(board Board, ledger *Ledger) bool {
	for c := 0; c < domain.NumColours; c++ {
		colour := domain.Colour(c)
		for r := board[c] + 1; r <= domain.NumRanks; r++ {
			if b.Counts[c][r-1] > 0 && ledger.Count(colour, r) > 0 {
				return false
			}
		}
	}
	return true
}

// SafetyProbability is the share of remaining mass sitting exactly one
// above the slot colour's chain. Zero total mass signals a tracking
// defect and is surfaced as ErrExhaustedBelief instead of a division.
func (b *CardBelief) SafetyProbability(board Board) (float64, error) {
	total := b.TotalMass()
	if total == 0 {
		return 0, ErrExhaustedBelief
	}

	safe := 0
	for c := 0; c < domain.NumColours; c++ {
		next := board.PlayableRank(domain.Colour(c))
		if next <= domain.NumRanks {
			safe += b.Counts[c][next-1]
		}
	}
	return float64(safe) / float64(total), nil
}
