package domain

import (
	"fmt"
	"math/rand"
)

// Colour identifies one of the five firework chains.
type Colour int

const (
	Blue Colour = iota
	Green
	Red
	White
	Yellow
)

const (
	// NumColours is the number of firework chains in a standard deck.
	NumColours = 5
	// NumRanks is the highest card rank; ranks run 1..NumRanks.
	NumRanks = 5
)

// CardSpread is the number of copies of each rank within one colour,
// indexed by rank-1.
var CardSpread = [NumRanks]int{3, 2, 2, 2, 1}

func (c Colour) String() string {
	switch c {
	case Blue:
		return "blue"
	case Green:
		return "green"
	case Red:
		return "red"
	case White:
		return "white"
	case Yellow:
		return "yellow"
	}
	return "unknown"
}

// Card is a single Hanabi card. Rank runs 1..5; the zero value marks an
// empty hand slot after the deck has run dry.
type Card struct {
	Colour Colour
	Rank   int
}

// Empty reports whether the slot holds no card.
func (c Card) Empty() bool {
	return c.Rank == 0
}

func (c Card) String() string {
	if c.Empty() {
		return "empty"
	}
	return fmt.Sprintf("%s %d", c.Colour, c.Rank)
}

// NewDeck returns the full 50-card deck in colour/rank order.
func NewDeck() []Card {
	deck := make([]Card, 0, 50)
	for c := 0; c < NumColours; c++ {
		for r := 1; r <= NumRanks; r++ {
			for n := 0; n < CardSpread[r-1]; n++ {
				deck = append(deck, Card{Colour: Colour(c), Rank: r})
			}
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
