package domain

// State is an immutable snapshot of the table after a given number of
// actions. Snapshots chain backward through Previous, so any earlier
// position can be reached by walking the chain, and the action that
// produced each snapshot travels with it.
type State struct {
	Order      int      // number of actions applied so far
	Players    []string // user IDs in seat order
	Hands      [][]Card
	Fireworks  [NumColours]int // top successfully played rank per colour, 0 = none
	Discards   []Card          // discard pile, oldest first
	HintTokens int
	Lives      int
	NextPlayer int
	DeckSize   int
	FinalOrder int     // order at which the final round completes; -1 until the deck empties
	Action     *Action // action that produced this snapshot; nil for the opening deal
	Previous   *State
}

// Hand returns a copy of the given seat's hand.
func (s *State) Hand(seat int) []Card {
	if seat < 0 || seat >= len(s.Hands) {
		return nil
	}
	out := make([]Card, len(s.Hands[seat]))
	copy(out, s.Hands[seat])
	return out
}

// DiscardTop returns the most recently discarded card.
func (s *State) DiscardTop() (Card, bool) {
	if len(s.Discards) == 0 {
		return Card{}, false
	}
	return s.Discards[len(s.Discards)-1], true
}

// FinalRound reports whether the deck has run dry and the closing round
// has begun.
func (s *State) FinalRound() bool {
	return s.FinalOrder >= 0
}

// GameOver reports whether no further actions are legal.
func (s *State) GameOver() bool {
	if s.Lives <= 0 {
		return true
	}
	if s.FinalOrder >= 0 && s.Order >= s.FinalOrder {
		return true
	}
	return s.Score() == NumColours*NumRanks
}

// Score is the sum of the firework tops.
func (s *State) Score() int {
	total := 0
	for _, top := range s.Fireworks {
		total += top
	}
	return total
}

// StateAt walks the chain backward to the snapshot with the given order.
// Returns nil when the order is not on the chain.
func (s *State) StateAt(order int) *State {
	for t := s; t != nil; t = t.Previous {
		if t.Order == order {
			return t
		}
	}
	return nil
}

// PreviousAction returns the most recent action the given seat took at or
// before this snapshot, or nil if the seat has not acted yet.
func (s *State) PreviousAction(seat int) *Action {
	for t := s; t != nil; t = t.Previous {
		if t.Action != nil && t.Action.Actor == seat {
			return t.Action
		}
	}
	return nil
}

// clone copies the snapshot with fresh hand and discard slices, ready to
// be mutated into the successor state.
func (s *State) clone() *State {
	next := &State{
		Order:      s.Order,
		Players:    s.Players,
		Hands:      make([][]Card, len(s.Hands)),
		Fireworks:  s.Fireworks,
		Discards:   make([]Card, len(s.Discards)),
		HintTokens: s.HintTokens,
		Lives:      s.Lives,
		NextPlayer: s.NextPlayer,
		DeckSize:   s.DeckSize,
		FinalOrder: s.FinalOrder,
	}
	for i, hand := range s.Hands {
		next.Hands[i] = make([]Card, len(hand))
		copy(next.Hands[i], hand)
	}
	copy(next.Discards, s.Discards)
	return next
}
