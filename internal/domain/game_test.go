package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestGame(t *testing.T, players int, seed int64) *Game {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	deck := ShuffleDeck(rng, NewDeck())
	g, err := NewGame(seatNames(players), deck)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func seatNames(n int) []string {
	names := []string{"u0", "u1", "u2", "u3", "u4"}
	return names[:n]
}

func TestNewDeckSpread(t *testing.T) {
	deck := NewDeck()
	if len(deck) != 50 {
		t.Fatalf("deck size = %d, want 50", len(deck))
	}

	counts := map[Card]int{}
	for _, c := range deck {
		counts[c]++
	}
	for c := 0; c < NumColours; c++ {
		for r := 1; r <= NumRanks; r++ {
			got := counts[Card{Colour: Colour(c), Rank: r}]
			if got != CardSpread[r-1] {
				t.Errorf("copies of %s %d = %d, want %d", Colour(c), r, got, CardSpread[r-1])
			}
		}
	}
}

func TestDealHandSizes(t *testing.T) {
	cases := []struct {
		players  int
		handSize int
	}{
		{2, 5}, {3, 5}, {4, 4}, {5, 4},
	}
	for _, tc := range cases {
		g := newTestGame(t, tc.players, 7)
		if g.HandSize != tc.handSize {
			t.Errorf("%d players: hand size = %d, want %d", tc.players, g.HandSize, tc.handSize)
		}
		for seat := 0; seat < tc.players; seat++ {
			if len(g.Current.Hands[seat]) != tc.handSize {
				t.Errorf("%d players: seat %d dealt %d cards", tc.players, seat, len(g.Current.Hands[seat]))
			}
		}
		wantDeck := 50 - tc.players*tc.handSize
		if g.Current.DeckSize != wantDeck {
			t.Errorf("%d players: deck size = %d, want %d", tc.players, g.Current.DeckSize, wantDeck)
		}
	}
}

func TestDealRejectsBadTableSize(t *testing.T) {
	deck := NewDeck()
	if _, err := NewGame(seatNames(1), deck); !errors.Is(err, ErrTooFewPlayers) {
		t.Errorf("1 player: err = %v, want ErrTooFewPlayers", err)
	}
	if _, err := NewGame([]string{"a", "b", "c", "d", "e", "f"}, deck); !errors.Is(err, ErrTooManyPlayers) {
		t.Errorf("6 players: err = %v, want ErrTooManyPlayers", err)
	}
}

func TestApplyEnforcesTurnOrder(t *testing.T) {
	g := newTestGame(t, 3, 11)
	if _, err := g.Apply(NewDiscard(1, 0)); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("out-of-turn action: err = %v, want ErrNotYourTurn", err)
	}
}

func TestSuccessfulPlayRaisesFirework(t *testing.T) {
	g := newTestGame(t, 2, 3)
	// Force a known hand so the play is predictable.
	g.Current.Hands[0][0] = Card{Colour: Red, Rank: 1}

	st, err := g.Apply(NewPlay(0, 0))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if st.Fireworks[Red] != 1 {
		t.Errorf("red firework = %d, want 1", st.Fireworks[Red])
	}
	if st.Lives != StartLives {
		t.Errorf("lives = %d, want %d", st.Lives, StartLives)
	}
	if st.Hands[0][0].Empty() {
		t.Errorf("slot not refilled from deck")
	}
	if st.NextPlayer != 1 {
		t.Errorf("next player = %d, want 1", st.NextPlayer)
	}
}

func TestFailedPlayBurnsLifeAndDiscards(t *testing.T) {
	g := newTestGame(t, 2, 3)
	bad := Card{Colour: Red, Rank: 4}
	g.Current.Hands[0][0] = bad

	st, err := g.Apply(NewPlay(0, 0))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if st.Lives != StartLives-1 {
		t.Errorf("lives = %d, want %d", st.Lives, StartLives-1)
	}
	top, ok := st.DiscardTop()
	if !ok || top != bad {
		t.Errorf("discard top = %v (%v), want %v", top, ok, bad)
	}
	if st.Fireworks[Red] != 0 {
		t.Errorf("red firework = %d, want 0", st.Fireworks[Red])
	}
}

func TestCompletedChainRefundsHintToken(t *testing.T) {
	g := newTestGame(t, 2, 3)
	g.Current.Fireworks[White] = 4
	g.Current.HintTokens = 5
	g.Current.Hands[0][0] = Card{Colour: White, Rank: 5}

	st, err := g.Apply(NewPlay(0, 0))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if st.HintTokens != 6 {
		t.Errorf("hint tokens = %d, want 6", st.HintTokens)
	}
}

func TestDiscardRegainsTokenAndRejectsAtCeiling(t *testing.T) {
	g := newTestGame(t, 2, 5)
	if _, err := g.Apply(NewDiscard(0, 0)); !errors.Is(err, ErrMaxHintTokens) {
		t.Fatalf("discard at ceiling: err = %v, want ErrMaxHintTokens", err)
	}

	g.Current.HintTokens = 4
	st, err := g.Apply(NewDiscard(0, 2))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if st.HintTokens != 5 {
		t.Errorf("hint tokens = %d, want 5", st.HintTokens)
	}
	if _, ok := st.DiscardTop(); !ok {
		t.Errorf("discard pile empty after discard")
	}
}

func TestHintLegality(t *testing.T) {
	g := newTestGame(t, 2, 9)
	hand := g.Current.Hands[1]

	// Truthful, complete colour mask.
	targets := make([]bool, len(hand))
	colour := hand[0].Colour
	for i, c := range hand {
		targets[i] = c.Colour == colour
	}
	st, err := g.Apply(NewColourHint(0, 1, colour, targets))
	if err != nil {
		t.Fatalf("legal hint rejected: %v", err)
	}
	if st.HintTokens != MaxHintTokens-1 {
		t.Errorf("hint tokens = %d, want %d", st.HintTokens, MaxHintTokens-1)
	}

	// A mask that lies about slot 0 must be rejected.
	g2 := newTestGame(t, 2, 9)
	lying := make([]bool, len(hand))
	for i, c := range hand {
		lying[i] = c.Colour == colour
	}
	lying[0] = !lying[0]
	if _, err := g2.Apply(NewColourHint(0, 1, colour, lying)); !errors.Is(err, ErrFalseHint) {
		t.Errorf("false hint: err = %v, want ErrFalseHint", err)
	}

	// A value absent from the hand cannot be hinted.
	g3 := newTestGame(t, 2, 9)
	absent := 0
	for r := 1; r <= NumRanks; r++ {
		found := false
		for _, c := range g3.Current.Hands[1] {
			if c.Rank == r {
				found = true
			}
		}
		if !found {
			absent = r
			break
		}
	}
	if absent != 0 {
		empty := make([]bool, len(hand))
		if _, err := g3.Apply(NewRankHint(0, 1, absent, empty)); !errors.Is(err, ErrEmptyHint) {
			t.Errorf("empty hint: err = %v, want ErrEmptyHint", err)
		}
	}

	// Self hints are illegal.
	g4 := newTestGame(t, 2, 9)
	if _, err := g4.Apply(NewColourHint(0, 0, colour, targets)); !errors.Is(err, ErrSelfHint) {
		t.Errorf("self hint: err = %v, want ErrSelfHint", err)
	}

	// No hint without tokens.
	g5 := newTestGame(t, 2, 9)
	g5.Current.HintTokens = 0
	if _, err := g5.Apply(NewColourHint(0, 1, colour, targets)); !errors.Is(err, ErrNoHintTokens) {
		t.Errorf("tokenless hint: err = %v, want ErrNoHintTokens", err)
	}
}

func TestLivesExhaustedEndsGame(t *testing.T) {
	g := newTestGame(t, 2, 13)
	g.Current.Lives = 1
	g.Current.Hands[0][0] = Card{Colour: Green, Rank: 5}

	st, err := g.Apply(NewPlay(0, 0))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !st.GameOver() {
		t.Fatalf("game should be over with zero lives")
	}
	if _, err := g.Apply(NewDiscard(1, 0)); !errors.Is(err, ErrGameOver) {
		t.Errorf("action after game over: err = %v, want ErrGameOver", err)
	}
}

func TestFinalRoundAfterDeckEmpties(t *testing.T) {
	g := newTestGame(t, 2, 17)
	g.Current.HintTokens = 0 // force discards
	g.Deck = g.Deck[:1]
	g.Current.DeckSize = 1

	st, err := g.Apply(NewDiscard(0, 0))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !st.FinalRound() {
		t.Fatalf("final round should start when the last card is drawn")
	}
	if st.FinalOrder != st.Order+2 {
		t.Errorf("final order = %d, want %d (one more turn per seat)", st.FinalOrder, st.Order+2)
	}

	// Each seat takes its closing turn; slots no longer refill.
	st, err = g.Apply(NewDiscard(1, 0))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !st.Hands[1][0].Empty() {
		t.Errorf("slot should stay empty after the deck runs dry")
	}
	st, err = g.Apply(NewDiscard(0, 1))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !st.GameOver() {
		t.Errorf("game should end after the closing round")
	}
}

func TestStateChainWalk(t *testing.T) {
	g := newTestGame(t, 3, 21)
	g.Current.HintTokens = 2
	for i := 0; i < 2; i++ {
		if _, err := g.Apply(NewDiscard(i, 0)); err != nil {
			t.Fatalf("Apply %d: %v", i, err)
		}
	}

	root := g.Current.StateAt(0)
	if root == nil || root.Order != 0 {
		t.Fatalf("StateAt(0) = %+v", root)
	}
	if root.Action != nil {
		t.Errorf("opening snapshot should carry no action")
	}

	prev := g.Current.PreviousAction(1)
	if prev == nil || prev.Type != ActionDiscard || prev.Actor != 1 {
		t.Errorf("PreviousAction(1) = %+v", prev)
	}
	if g.Current.PreviousAction(2) != nil {
		t.Errorf("seat 2 has not acted yet")
	}
}
