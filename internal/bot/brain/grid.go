package brain

import "hanabi/internal/domain"

// Grid counts cards per (colour, rank). Rank r lives at index r-1.
type Grid [domain.NumColours][domain.NumRanks]int

// SpreadGrid returns the full-deck frequency grid.
func SpreadGrid() Grid {
	var g Grid
	for c := 0; c < domain.NumColours; c++ {
		for r := 0; r < domain.NumRanks; r++ {
			g[c][r] = domain.CardSpread[r]
		}
	}
	return g
}

// Count returns the remaining count for the identity.
func (g *Grid) Count(colour domain.Colour, rank int) int {
	if rank < 1 || rank > domain.NumRanks {
		return 0
	}
	return g[colour][rank-1]
}

// Dec decrements the identity's count, floored at zero.
func (g *Grid) Dec(colour domain.Colour, rank int) {
	if rank < 1 || rank > domain.NumRanks {
		return
	}
	if g[colour][rank-1] > 0 {
		g[colour][rank-1]--
	}
}

// Total sums every cell.
func (g *Grid) Total() int {
	total := 0
	for c := range g {
		for _, n := range g[c] {
			total += n
		}
	}
	return total
}

// Board is the top successfully played rank per colour, 0 for an
// unstarted chain.
type Board [domain.NumColours]int

// BoardFrom extracts the firework heights from a snapshot.
func BoardFrom(s *domain.State) Board {
	return Board(s.Fireworks)
}

// PlayableRank is the rank that would extend the colour's chain.
func (b Board) PlayableRank(colour domain.Colour) int {
	return b[colour] + 1
}
