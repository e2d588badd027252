package bot

import (
	"math/rand"
	"testing"

	"hanabi/internal/domain"
)

// playOut drives one full game with every seat on the given brain and
// fails on the first illegal action. The engine is the referee here: any
// drift between the belief model and the real table surfaces as an
// apply error.
func playOut(t *testing.T, b Brain, players []string, seed int64) *domain.State {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	deck := domain.ShuffleDeck(rng, domain.NewDeck())

	g, err := domain.NewGame(players, deck)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	for turn := 0; turn < 300; turn++ {
		if g.Current.GameOver() {
			return g.Current
		}
		seat := g.Current.NextPlayer
		a, err := b.CalculateMove(g.Current, seat)
		if err != nil {
			t.Fatalf("turn %d seat %d: CalculateMove: %v", turn, seat, err)
		}
		if _, err := g.Apply(a); err != nil {
			t.Fatalf("turn %d seat %d: illegal action %v: %v", turn, seat, a, err)
		}
	}
	t.Fatalf("game did not finish within 300 turns")
	return nil
}

func TestIntentBotsFinishAGame(t *testing.T) {
	for _, tc := range []struct {
		name    string
		players []string
	}{
		{"two seats", []string{"p0", "p1"}},
		{"four seats", []string{"p0", "p1", "p2", "p3"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBot(11)
			final := playOut(t, b, tc.players, 11)

			score := final.Score()
			if score < 0 || score > domain.NumColours*domain.NumRanks {
				t.Fatalf("score = %d out of range", score)
			}
		})
	}
}

func TestSameBrainSurvivesRematch(t *testing.T) {
	// A rematch deals a brand-new deck on a brand-new snapshot chain. The
	// brain must start from fresh beliefs instead of aiming game-one
	// hints at game-two hands.
	b := newTestBot(17)
	playOut(t, b, []string{"p0", "p1"}, 17)
	playOut(t, b, []string{"p0", "p1"}, 18)
}

func TestCasualBotsFinishAGame(t *testing.T) {
	b := NewCasualBot(rand.New(rand.NewSource(13)))
	final := playOut(t, b, []string{"p0", "p1", "p2"}, 13)
	if !final.GameOver() {
		t.Fatalf("final state not terminal")
	}
}

func TestFactoryLevels(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, ok := NewBrain(BotCasual, DefaultTuning, rng, noopLogger{}).(*CasualBot); !ok {
		t.Fatalf("casual level should build a CasualBot")
	}
	if _, ok := NewBrain(BotIntent, DefaultTuning, rng, noopLogger{}).(*IntentBot); !ok {
		t.Fatalf("intent level should build an IntentBot")
	}
}
