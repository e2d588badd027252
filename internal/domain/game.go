package domain

import "errors"

const (
	// MaxHintTokens is the hint token ceiling; discarding at the ceiling is illegal.
	MaxHintTokens = 8
	// StartLives is the number of life tokens at deal time.
	StartLives = 3
	// MinPlayers and MaxPlayers bound the table size.
	MinPlayers = 2
	MaxPlayers = 5
)

var (
	ErrTooFewPlayers  = errors.New("not enough players to deal")
	ErrTooManyPlayers = errors.New("too many players to deal")
	ErrShortDeck      = errors.New("deck too small to deal opening hands")
	ErrGameOver       = errors.New("game is over")
	ErrNotYourTurn    = errors.New("actor is not the next player")
	ErrInvalidSlot    = errors.New("hand slot out of range or empty")
	ErrNoHintTokens   = errors.New("no hint tokens remaining")
	ErrMaxHintTokens  = errors.New("cannot discard at the hint token ceiling")
	ErrSelfHint       = errors.New("cannot hint your own hand")
	ErrBadHintTarget  = errors.New("hint receiver out of range")
	ErrEmptyHint      = errors.New("hint matches no card in the receiver's hand")
	ErrFalseHint      = errors.New("hint mask does not match the receiver's hand")
)

// HandSize returns the number of hand slots for a table of the given size.
func HandSize(numPlayers int) int {
	if numPlayers > 3 {
		return 4
	}
	return 5
}

// Game owns the authoritative snapshot chain and the undealt deck.
type Game struct {
	Current  *State
	Deck     []Card
	HandSize int
}

// NewGame deals opening hands from an already shuffled deck and returns
// the game holding the first snapshot.
func NewGame(players []string, deck []Card) (*Game, error) {
	if len(players) < MinPlayers {
		return nil, ErrTooFewPlayers
	}
	if len(players) > MaxPlayers {
		return nil, ErrTooManyPlayers
	}

	handSize := HandSize(len(players))
	if len(deck) < handSize*len(players) {
		return nil, ErrShortDeck
	}

	state := &State{
		Players:    append([]string{}, players...),
		Hands:      make([][]Card, len(players)),
		HintTokens: MaxHintTokens,
		Lives:      StartLives,
		FinalOrder: -1,
	}

	idx := 0
	for seat := range players {
		state.Hands[seat] = make([]Card, handSize)
		copy(state.Hands[seat], deck[idx:idx+handSize])
		idx += handSize
	}

	remaining := make([]Card, len(deck)-idx)
	copy(remaining, deck[idx:])
	state.DeckSize = len(remaining)

	return &Game{Current: state, Deck: remaining, HandSize: handSize}, nil
}

// Apply validates one action against the current snapshot, applies it and
// appends the successor snapshot to the chain.
func (g *Game) Apply(a Action) (*State, error) {
	cur := g.Current
	if cur.GameOver() {
		return nil, ErrGameOver
	}
	if a.Actor != cur.NextPlayer {
		return nil, ErrNotYourTurn
	}

	next := cur.clone()

	switch a.Type {
	case ActionPlay:
		card, err := g.takeCard(cur, a.Actor, a.Pos)
		if err != nil {
			return nil, err
		}
		if card.Rank == cur.Fireworks[card.Colour]+1 {
			next.Fireworks[card.Colour] = card.Rank
			// completing a chain refunds a hint token
			if card.Rank == NumRanks && next.HintTokens < MaxHintTokens {
				next.HintTokens++
			}
		} else {
			next.Lives--
			next.Discards = append(next.Discards, card)
		}
		g.draw(next, a.Actor, a.Pos)

	case ActionDiscard:
		if cur.HintTokens >= MaxHintTokens {
			return nil, ErrMaxHintTokens
		}
		card, err := g.takeCard(cur, a.Actor, a.Pos)
		if err != nil {
			return nil, err
		}
		next.Discards = append(next.Discards, card)
		next.HintTokens++
		g.draw(next, a.Actor, a.Pos)

	case ActionColourHint, ActionRankHint:
		if err := g.checkHint(cur, a); err != nil {
			return nil, err
		}
		next.HintTokens--

	default:
		return nil, errors.New("unknown action type")
	}

	copied := a
	if a.Targets != nil {
		copied.Targets = append([]bool{}, a.Targets...)
	}

	next.Order = cur.Order + 1
	next.NextPlayer = (a.Actor + 1) % len(cur.Players)
	next.Action = &copied
	next.Previous = cur
	g.Current = next
	return next, nil
}

// takeCard fetches the card about to leave the actor's hand.
func (g *Game) takeCard(cur *State, actor, pos int) (Card, error) {
	if actor < 0 || actor >= len(cur.Hands) {
		return Card{}, ErrInvalidSlot
	}
	hand := cur.Hands[actor]
	if pos < 0 || pos >= len(hand) || hand[pos].Empty() {
		return Card{}, ErrInvalidSlot
	}
	return hand[pos], nil
}

// draw refills the slot from the deck. When the last card leaves the deck
// the closing round is scheduled: every seat gets exactly one more turn.
func (g *Game) draw(next *State, actor, pos int) {
	if len(g.Deck) == 0 {
		next.Hands[actor][pos] = Card{}
		return
	}
	next.Hands[actor][pos] = g.Deck[0]
	g.Deck = g.Deck[1:]
	next.DeckSize = len(g.Deck)
	if next.DeckSize == 0 && next.FinalOrder < 0 {
		next.FinalOrder = next.Order + 1 + len(next.Players)
	}
}

// checkHint enforces hint legality: a token must be available and the mask
// must exactly cover the matching cards in the receiver's hand.
func (g *Game) checkHint(cur *State, a Action) error {
	if cur.HintTokens <= 0 {
		return ErrNoHintTokens
	}
	if a.Receiver < 0 || a.Receiver >= len(cur.Hands) {
		return ErrBadHintTarget
	}
	if a.Receiver == a.Actor {
		return ErrSelfHint
	}

	hand := cur.Hands[a.Receiver]
	if len(a.Targets) != len(hand) {
		return ErrFalseHint
	}

	any := false
	for i, card := range hand {
		match := false
		if !card.Empty() {
			if a.Type == ActionColourHint {
				match = card.Colour == a.Colour
			} else {
				match = card.Rank == a.Rank
			}
		}
		if match != a.Targets[i] {
			return ErrFalseHint
		}
		if match {
			any = true
		}
	}
	if !any {
		return ErrEmptyHint
	}
	return nil
}
