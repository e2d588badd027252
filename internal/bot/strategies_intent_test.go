package bot

import (
	"math/rand"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"

	"hanabi/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Debug(format string, v ...interface{}) {}
func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}
func (l noopLogger) WithField(key string, v interface{}) runtime.Logger { return l }
func (l noopLogger) WithFields(fields map[string]interface{}) runtime.Logger {
	return l
}
func (noopLogger) Fields() map[string]interface{} { return nil }

func newTestBot(seed int64) *IntentBot {
	return NewIntentBot(DefaultTuning, rand.New(rand.NewSource(seed)), noopLogger{})
}

// opening hand-builds a deal snapshot without going through the engine, so
// tests can pin fireworks and token counts directly.
func opening(players []string, hands [][]domain.Card, tokens int) *domain.State {
	return &domain.State{
		Players:    players,
		Hands:      hands,
		HintTokens: tokens,
		Lives:      domain.StartLives,
		DeckSize:   20,
		FinalOrder: -1,
	}
}

// afterHint appends a hint snapshot to a hand-built chain.
func afterHint(prev *domain.State, a domain.Action) *domain.State {
	return &domain.State{
		Order:      prev.Order + 1,
		Players:    prev.Players,
		Hands:      prev.Hands,
		Fireworks:  prev.Fireworks,
		Discards:   prev.Discards,
		HintTokens: prev.HintTokens - 1,
		Lives:      prev.Lives,
		NextPlayer: (a.Actor + 1) % len(prev.Players),
		DeckSize:   prev.DeckSize,
		FinalOrder: prev.FinalOrder,
		Action:     &a,
		Previous:   prev,
	}
}

func TestSafePlayAfterRankHint(t *testing.T) {
	// On an untouched board every rank-1 card is playable, so a rank-1
	// hint makes the covered slot a certainty.
	deck := []domain.Card{
		{Colour: domain.Red, Rank: 1}, {Colour: domain.Blue, Rank: 3},
		{Colour: domain.Green, Rank: 4}, {Colour: domain.White, Rank: 3},
		{Colour: domain.Yellow, Rank: 4},
		{Colour: domain.Blue, Rank: 4}, {Colour: domain.Green, Rank: 3},
		{Colour: domain.White, Rank: 2}, {Colour: domain.Yellow, Rank: 2},
		{Colour: domain.Green, Rank: 5},
		{Colour: domain.White, Rank: 5}, {Colour: domain.Yellow, Rank: 5},
	}
	g, err := domain.NewGame([]string{"p0", "p1"}, deck)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if _, err := g.Apply(domain.NewColourHint(0, 1, domain.Blue, []bool{true, false, false, false, false})); err != nil {
		t.Fatalf("opening hint: %v", err)
	}
	if _, err := g.Apply(domain.NewRankHint(1, 0, 1, []bool{true, false, false, false, false})); err != nil {
		t.Fatalf("rank hint: %v", err)
	}

	b := newTestBot(1)
	a, err := b.CalculateMove(g.Current, 0)
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if a.Type != domain.ActionPlay || a.Pos != 0 {
		t.Fatalf("action = %v, want play of slot 0", a)
	}
}

func TestFinalRoundGamblesOnBestSlot(t *testing.T) {
	hands := [][]domain.Card{
		{{Colour: domain.Red, Rank: 1}, {Colour: domain.Blue, Rank: 3}, {Colour: domain.Green, Rank: 4}, {Colour: domain.White, Rank: 3}, {Colour: domain.Yellow, Rank: 4}},
		{{Colour: domain.Blue, Rank: 4}, {Colour: domain.Green, Rank: 3}, {Colour: domain.White, Rank: 4}, {Colour: domain.Yellow, Rank: 3}, {Colour: domain.Green, Rank: 5}},
	}
	st := opening([]string{"p0", "p1"}, hands, domain.MaxHintTokens)
	st.DeckSize = 0
	st.FinalOrder = 5

	b := newTestBot(2)
	a, err := b.CalculateMove(st, 0)
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if a.Type != domain.ActionPlay {
		t.Fatalf("action = %v, want a gamble play in the final round", a)
	}
}

func TestTrustedHintBacksRiskyPlay(t *testing.T) {
	// Seat 1 earns trust by twice hinting seat 2 at the playable red 2,
	// then hints our rank-1 slot. With red already at 1 the slot is 12/15
	// playable: below the safe threshold, above the trusted one.
	hands := [][]domain.Card{
		{{Colour: domain.Green, Rank: 1}, {Colour: domain.Blue, Rank: 3}, {Colour: domain.Green, Rank: 4}, {Colour: domain.White, Rank: 3}, {Colour: domain.Yellow, Rank: 4}},
		{{Colour: domain.Blue, Rank: 4}, {Colour: domain.Green, Rank: 3}, {Colour: domain.White, Rank: 4}, {Colour: domain.Yellow, Rank: 3}, {Colour: domain.Green, Rank: 5}},
		{{Colour: domain.Red, Rank: 2}, {Colour: domain.Blue, Rank: 3}, {Colour: domain.White, Rank: 4}, {Colour: domain.Yellow, Rank: 3}, {Colour: domain.Blue, Rank: 5}},
	}
	st := opening([]string{"p0", "p1", "p2"}, hands, domain.MaxHintTokens)
	st.Fireworks[domain.Red] = 1

	mask2 := []bool{true, false, false, false, false}
	st = afterHint(st, domain.NewRankHint(1, 2, 2, mask2))
	st = afterHint(st, domain.NewRankHint(1, 2, 2, mask2))
	st = afterHint(st, domain.NewRankHint(1, 0, 1, []bool{true, false, false, false, false}))

	b := newTestBot(3)
	a, err := b.CalculateMove(st, 0)
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if a.Type != domain.ActionPlay || a.Pos != 0 {
		t.Fatalf("action = %v, want trusted play of slot 0", a)
	}

	hinter := b.trackers[0].Model(1)
	if hinter.Intent != 0.875 {
		t.Errorf("hinter intent = %v, want 0.875", hinter.Intent)
	}
}

func TestLowTokensPreferDiscardOverHint(t *testing.T) {
	// Every chain sits at 1, so a hinted rank-1 slot is provably useless.
	// Seat 1 holds a playable green 2, but at one token the ladder should
	// take the token back first.
	hands := [][]domain.Card{
		{{Colour: domain.Blue, Rank: 1}, {Colour: domain.Blue, Rank: 3}, {Colour: domain.Green, Rank: 4}, {Colour: domain.White, Rank: 3}, {Colour: domain.Yellow, Rank: 4}},
		{{Colour: domain.Green, Rank: 2}, {Colour: domain.Blue, Rank: 4}, {Colour: domain.White, Rank: 4}, {Colour: domain.Yellow, Rank: 3}, {Colour: domain.Blue, Rank: 5}},
	}
	st := opening([]string{"p0", "p1"}, hands, 2)
	st.Fireworks = [domain.NumColours]int{1, 1, 1, 1, 1}
	st = afterHint(st, domain.NewRankHint(1, 0, 1, []bool{true, false, false, false, false}))

	b := newTestBot(4)
	a, err := b.CalculateMove(st, 0)
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if a.Type != domain.ActionDiscard || a.Pos != 0 {
		t.Fatalf("action = %v, want discard of the useless slot 0", a)
	}
}

func TestAmpleTokensPreferPlayableHint(t *testing.T) {
	hands := [][]domain.Card{
		{{Colour: domain.Blue, Rank: 1}, {Colour: domain.Blue, Rank: 3}, {Colour: domain.Green, Rank: 4}, {Colour: domain.White, Rank: 3}, {Colour: domain.Yellow, Rank: 4}},
		{{Colour: domain.Green, Rank: 2}, {Colour: domain.Blue, Rank: 4}, {Colour: domain.White, Rank: 4}, {Colour: domain.Yellow, Rank: 3}, {Colour: domain.Blue, Rank: 5}},
	}
	st := opening([]string{"p0", "p1"}, hands, 6)
	st.Fireworks = [domain.NumColours]int{1, 1, 1, 1, 1}
	st = afterHint(st, domain.NewRankHint(1, 0, 1, []bool{true, false, false, false, false}))

	b := newTestBot(5)
	a, err := b.CalculateMove(st, 0)
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}

	// Rank 2 and colour green both single out the playable green 2;
	// either is a valid pick.
	rank2 := a.Type == domain.ActionRankHint && a.Rank == 2
	green := a.Type == domain.ActionColourHint && a.Colour == domain.Green
	if a.Receiver != 1 || (!rank2 && !green) {
		t.Fatalf("action = %v, want a hint singling out seat 1's green 2", a)
	}
	if !a.Targets[0] {
		t.Fatalf("hint should cover the playable green 2 in slot 0")
	}
}

func TestSpareLivesBackPlayWithoutTrustedHinter(t *testing.T) {
	// Seat 1 has hinted the playable red 2 only once, so its intent score
	// of 0.75 falls short of trust. The 12/15 slot should be played
	// anyway while lives remain, and held back on the last life.
	build := func(lives int) *domain.State {
		hands := [][]domain.Card{
			{{Colour: domain.Green, Rank: 1}, {Colour: domain.Blue, Rank: 3}, {Colour: domain.Green, Rank: 4}, {Colour: domain.White, Rank: 3}, {Colour: domain.Yellow, Rank: 4}},
			{{Colour: domain.Blue, Rank: 4}, {Colour: domain.Green, Rank: 3}, {Colour: domain.White, Rank: 4}, {Colour: domain.Yellow, Rank: 3}, {Colour: domain.Green, Rank: 5}},
			{{Colour: domain.Red, Rank: 2}, {Colour: domain.Blue, Rank: 3}, {Colour: domain.White, Rank: 4}, {Colour: domain.Yellow, Rank: 3}, {Colour: domain.Blue, Rank: 5}},
		}
		st := opening([]string{"p0", "p1", "p2"}, hands, domain.MaxHintTokens)
		st.Lives = lives
		st.Fireworks[domain.Red] = 1
		st = afterHint(st, domain.NewRankHint(1, 2, 2, []bool{true, false, false, false, false}))
		st = afterHint(st, domain.NewRankHint(1, 0, 1, []bool{true, false, false, false, false}))
		return st
	}

	b := newTestBot(8)
	a, err := b.CalculateMove(build(3), 0)
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if a.Type != domain.ActionPlay || a.Pos != 0 {
		t.Fatalf("action = %v, want play of slot 0 with lives to spare", a)
	}
	if got := b.trackers[0].Model(1).Intent; got != 0.75 {
		t.Errorf("hinter intent = %v, want 0.75", got)
	}

	b = newTestBot(8)
	a, err = b.CalculateMove(build(1), 0)
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if a.Type == domain.ActionPlay {
		t.Fatalf("action = %v, must not risk the last life on an unbacked slot", a)
	}
}

func TestHintJudgedOnItsWholeMask(t *testing.T) {
	// A rank-2 hint would cover both the playable green 2 and the red 2
	// stuck behind an empty red chain, which settles nothing. Only the
	// colour hint singles out the playable card.
	hands := [][]domain.Card{
		{{Colour: domain.Blue, Rank: 3}, {Colour: domain.Green, Rank: 4}, {Colour: domain.White, Rank: 3}, {Colour: domain.Yellow, Rank: 4}, {Colour: domain.Blue, Rank: 4}},
		{{Colour: domain.Green, Rank: 2}, {Colour: domain.Red, Rank: 2}, {Colour: domain.Red, Rank: 3}, {Colour: domain.White, Rank: 4}, {Colour: domain.Yellow, Rank: 3}},
	}
	st := opening([]string{"p0", "p1"}, hands, 6)
	st.Fireworks[domain.Green] = 1

	b := newTestBot(9)
	a, err := b.CalculateMove(st, 0)
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if a.Type != domain.ActionColourHint || a.Receiver != 1 || a.Colour != domain.Green {
		t.Fatalf("action = %v, want a green colour hint at seat 1", a)
	}
	if !a.Targets[0] || a.Targets[1] {
		t.Fatalf("mask = %v, must cover the green 2 and not the red 2", a.Targets)
	}
}

func TestUselessMaskOfferedAsHint(t *testing.T) {
	// The yellow chain already passed rank 1, so both yellow 1s are dead
	// weight. The whole-mask hint frees them for discarding.
	hands := [][]domain.Card{
		{{Colour: domain.Blue, Rank: 3}, {Colour: domain.Green, Rank: 4}, {Colour: domain.White, Rank: 3}, {Colour: domain.Yellow, Rank: 4}, {Colour: domain.Blue, Rank: 4}},
		{{Colour: domain.Yellow, Rank: 1}, {Colour: domain.Yellow, Rank: 1}, {Colour: domain.Blue, Rank: 3}, {Colour: domain.White, Rank: 4}, {Colour: domain.Red, Rank: 3}},
	}
	st := opening([]string{"p0", "p1"}, hands, 6)
	st.Fireworks[domain.Yellow] = 1

	b := newTestBot(14)
	a, err := b.CalculateMove(st, 0)
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}

	yellow := a.Type == domain.ActionColourHint && a.Colour == domain.Yellow
	rank1 := a.Type == domain.ActionRankHint && a.Rank == 1
	if a.Receiver != 1 || (!yellow && !rank1) {
		t.Fatalf("action = %v, want a hint marking seat 1's dead yellow 1s", a)
	}
	if !a.Targets[0] || !a.Targets[1] || a.Targets[2] || a.Targets[3] || a.Targets[4] {
		t.Fatalf("mask = %v, want exactly the two yellow slots", a.Targets)
	}
}

func TestRandomHintPicksUnknownDimension(t *testing.T) {
	// Nothing on seat 1 is playable or useless, so the ladder falls
	// through to the random hint. Every slot already knows its rank, so
	// only colour hints carry information.
	hands := [][]domain.Card{
		{{Colour: domain.Blue, Rank: 3}, {Colour: domain.Green, Rank: 4}, {Colour: domain.White, Rank: 3}, {Colour: domain.Yellow, Rank: 4}, {Colour: domain.Blue, Rank: 4}},
		{{Colour: domain.Red, Rank: 2}, {Colour: domain.Red, Rank: 3}, {Colour: domain.White, Rank: 4}, {Colour: domain.Yellow, Rank: 3}, {Colour: domain.Blue, Rank: 5}},
	}
	st := opening([]string{"p0", "p1"}, hands, domain.MaxHintTokens)
	st = afterHint(st, domain.NewRankHint(0, 1, 2, []bool{true, false, false, false, false}))
	st = afterHint(st, domain.NewRankHint(0, 1, 3, []bool{false, true, false, true, false}))
	st = afterHint(st, domain.NewRankHint(0, 1, 4, []bool{false, false, true, false, false}))
	st = afterHint(st, domain.NewRankHint(0, 1, 5, []bool{false, false, false, false, true}))

	b := newTestBot(15)
	a, err := b.CalculateMove(st, 0)
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if a.Type != domain.ActionColourHint || a.Receiver != 1 {
		t.Fatalf("action = %v, want a colour hint at seat 1", a)
	}
}

func TestBestSlotBreaksTiesRandomly(t *testing.T) {
	b := newTestBot(16)
	probs := []float64{0.7, 0.7, 0.1}

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		pos, p, ok := b.bestSlot(probs)
		if !ok || p != 0.7 || (pos != 0 && pos != 1) {
			t.Fatalf("bestSlot = (%d, %v, %v)", pos, p, ok)
		}
		seen[pos] = true
	}
	if !seen[0] || !seen[1] {
		t.Fatalf("tie between slots 0 and 1 always resolved the same way")
	}
}

func TestNoTokensFallsBackToRandomDiscard(t *testing.T) {
	hands := [][]domain.Card{
		{{Colour: domain.Blue, Rank: 1}, {Colour: domain.Blue, Rank: 3}, {Colour: domain.Green, Rank: 4}, {Colour: domain.White, Rank: 3}, {Colour: domain.Yellow, Rank: 4}},
		{{Colour: domain.Green, Rank: 2}, {Colour: domain.Blue, Rank: 4}, {Colour: domain.White, Rank: 4}, {Colour: domain.Yellow, Rank: 3}, {Colour: domain.Blue, Rank: 5}},
	}
	st := opening([]string{"p0", "p1"}, hands, 0)

	b := newTestBot(6)
	a, err := b.CalculateMove(st, 0)
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if a.Type != domain.ActionDiscard {
		t.Fatalf("action = %v, want a random discard with no tokens left", a)
	}
}
