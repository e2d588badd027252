package bot

import (
	"errors"
	"math/rand"

	"github.com/heroiclabs/nakama-common/runtime"

	"hanabi/internal/bot/brain"
	"hanabi/internal/domain"
)

// ErrNoMove is returned when no legal action exists for the seat.
var ErrNoMove = errors.New("bot: no legal move available")

// IntentBot plays from a belief model of every hand and a running
// intentionality score per team mate. It keeps one tracker per seat it is
// asked to play, so a single brain can drive several seats in the same
// match without the trackers contaminating each other.
//
// The decision ladder, most to least confident:
//
//  1. play a card that is almost certainly safe
//  2. in the final round with lives to spare, gamble on the best card
//  3. play a hinted card backed by a trusted hinter, or any promising
//     card when a spare life covers the risk
//  4. give a hint whose whole mask is playable or useless at once
//  5. discard a card known to be useless
//  6. hint a random card on a dimension its holder does not know
//  7. discard at random, or play at random when discarding is illegal
//
// When hint tokens run low the ladder prefers the token-regaining rungs:
// 5 moves ahead of 4 and the random discard ahead of the random hint.
type IntentBot struct {
	tuning   Tuning
	rng      *rand.Rand
	log      runtime.Logger
	trackers map[int]*brain.Tracker
}

// NewIntentBot builds the strategy with the given thresholds. The caller
// owns the rng; sharing one across bots serializes their randomness.
func NewIntentBot(tuning Tuning, rng *rand.Rand, log runtime.Logger) *IntentBot {
	return &IntentBot{
		tuning:   tuning,
		rng:      rng,
		log:      log,
		trackers: make(map[int]*brain.Tracker),
	}
}

// OnEvent is a no-op: the intent strategy reads everything it needs from
// the snapshot chain at decision time.
func (b *IntentBot) OnEvent(event interface{}) {}

// CalculateMove syncs the seat's tracker to the snapshot and walks the
// decision ladder.
func (b *IntentBot) CalculateMove(state *domain.State, seat int) (domain.Action, error) {
	tr, ok := b.trackers[seat]
	if !ok {
		tr = brain.NewTracker(seat, b.log)
		b.trackers[seat] = tr
	}
	tr.Sync(state)

	me := tr.SelfModel()
	board := brain.BoardFrom(state)

	probs := b.slotProbabilities(me, board)

	if pos, p, ok := b.bestSlot(probs); ok && p > b.tuning.SafePlayThreshold {
		return domain.NewPlay(seat, pos), nil
	}

	if state.FinalRound() && state.Lives > 1 {
		if pos, p, ok := b.bestSlot(probs); ok && p > 0 {
			return domain.NewPlay(seat, pos), nil
		}
	}

	if pos, ok := b.trustedPlay(tr, me, probs, state.Lives); ok {
		return domain.NewPlay(seat, pos), nil
	}

	canHint := state.HintTokens > 0
	canDiscard := state.HintTokens < domain.MaxHintTokens
	lowTokens := state.HintTokens <= b.tuning.LowHintTokenMark

	tryHint := func() (domain.Action, bool) {
		if !canHint {
			return domain.Action{}, false
		}
		return b.informativeHint(tr, seat, board)
	}
	tryDiscard := func() (domain.Action, bool) {
		if !canDiscard {
			return domain.Action{}, false
		}
		return b.uselessDiscard(tr, me, seat, board)
	}

	first, second := tryHint, tryDiscard
	if lowTokens {
		first, second = tryDiscard, tryHint
	}
	if a, ok := first(); ok {
		return a, nil
	}
	if a, ok := second(); ok {
		return a, nil
	}

	if !lowTokens && canHint {
		if a, ok := b.randomHint(tr, seat); ok {
			return a, nil
		}
	}
	if canDiscard {
		if a, ok := b.randomDiscard(me, seat); ok {
			return a, nil
		}
	}
	if canHint {
		if a, ok := b.randomHint(tr, seat); ok {
			return a, nil
		}
	}
	if pos, _, ok := b.bestSlot(probs); ok {
		return domain.NewPlay(seat, pos), nil
	}
	if pos, ok := b.anySlot(me); ok {
		return domain.NewPlay(seat, pos), nil
	}
	return domain.Action{}, ErrNoMove
}

// slotProbabilities computes the safety probability for each own slot.
// Empty or mass-exhausted slots carry a negative sentinel.
func (b *IntentBot) slotProbabilities(me *brain.PlayerModel, board brain.Board) []float64 {
	probs := make([]float64, len(me.Beliefs))
	for pos, belief := range me.Beliefs {
		probs[pos] = -1
		if me.Empty[pos] {
			continue
		}
		p, err := belief.SafetyProbability(board)
		if err != nil {
			b.log.Warn("slot %d belief exhausted: %v", pos, err)
			continue
		}
		probs[pos] = p
	}
	return probs
}

// bestSlot returns the slot with the highest probability, if any slot has
// a usable belief at all. Exact ties resolve uniformly at random.
func (b *IntentBot) bestSlot(probs []float64) (int, float64, bool) {
	best, bestP, ties := -1, -1.0, 0
	for pos, p := range probs {
		switch {
		case p > bestP:
			best, bestP, ties = pos, p, 1
		case p == bestP && p >= 0:
			ties++
			if b.rng.Intn(ties) == 0 {
				best = pos
			}
		}
	}
	if best < 0 || bestP < 0 {
		return 0, 0, false
	}
	return best, bestP, true
}

// trustedPlay looks for the most promising slot above the lower play
// threshold that a trusted team mate has hinted at. Trust requires a
// clean record and an intentionality score above the threshold. When no
// slot has trusted backing but a life can be spared, the whole
// above-threshold set qualifies instead.
func (b *IntentBot) trustedPlay(tr *brain.Tracker, me *brain.PlayerModel, probs []float64, lives int) (int, bool) {
	trusted := func(hinter int) bool {
		m := tr.Model(hinter)
		return m != nil && m.Trustworthy && m.Intent >= b.tuning.TrustScoreThreshold
	}

	candidates := make([]float64, len(probs))
	found := false
	for pos, p := range probs {
		candidates[pos] = -1
		if p > b.tuning.TrustedPlayThreshold && me.HintedAt(pos, trusted) {
			candidates[pos] = p
			found = true
		}
	}
	if !found && lives > 1 {
		for pos, p := range probs {
			if p > b.tuning.TrustedPlayThreshold {
				candidates[pos] = p
				found = true
			}
		}
	}
	if !found {
		return 0, false
	}
	pos, _, ok := b.bestSlot(candidates)
	return pos, ok
}

// informativeHint builds, for every team mate and every colour and rank,
// the hint covering all matching cards, keeps only the ones whose whole
// mask is immediately playable or immediately useless, and picks one at
// random. A hint whose every covered slot already knows the hinted
// dimension carries no information and is dropped.
func (b *IntentBot) informativeHint(tr *brain.Tracker, seat int, board brain.Board) (domain.Action, bool) {
	var candidates []domain.Action
	for _, m := range tr.Players {
		if m.Seat == seat || m.Hand == nil {
			continue
		}
		for c := 0; c < domain.NumColours; c++ {
			colour := domain.Colour(c)
			a := domain.NewColourHint(seat, m.Seat, colour, colourMask(m.Hand, colour))
			if b.hintWorthGiving(a, m, board, tr.Ledger) {
				candidates = append(candidates, a)
			}
		}
		for r := 1; r <= domain.NumRanks; r++ {
			a := domain.NewRankHint(seat, m.Seat, r, rankMask(m.Hand, r))
			if b.hintWorthGiving(a, m, board, tr.Ledger) {
				candidates = append(candidates, a)
			}
		}
	}
	if len(candidates) == 0 {
		return domain.Action{}, false
	}
	return candidates[b.rng.Intn(len(candidates))], true
}

// hintWorthGiving judges a candidate hint by its full mask: it must tell
// at least one covered slot something new, and the covered cards must be
// playable as a set or useless as a set. An empty mask fails both gates.
func (b *IntentBot) hintWorthGiving(a domain.Action, m *brain.PlayerModel, board brain.Board, ledger *brain.Ledger) bool {
	h := brain.HintFromAction(&a)
	if h == nil {
		return false
	}

	informative := false
	for pos := range h.Targets {
		if !h.Covers(pos) || pos >= len(m.Beliefs) {
			continue
		}
		belief := m.Beliefs[pos]
		if h.Mode == brain.HintColour && !belief.KnownColour {
			informative = true
		}
		if h.Mode == brain.HintRank && !belief.KnownRank {
			informative = true
		}
	}
	if !informative {
		return false
	}

	switch brain.ClassifyHint(h, m.Hand, board, ledger) {
	case brain.HintPlayable, brain.HintUseless:
		return true
	}
	return false
}

// uselessDiscard discards the first own slot whose belief proves the card
// can never score.
func (b *IntentBot) uselessDiscard(tr *brain.Tracker, me *brain.PlayerModel, seat int, board brain.Board) (domain.Action, bool) {
	for pos, belief := range me.Beliefs {
		if me.Empty[pos] {
			continue
		}
		if belief.IsUseless(board, tr.Ledger) {
			return domain.NewDiscard(seat, pos), true
		}
	}
	return domain.Action{}, false
}

// randomHint tries a bounded number of random receiver/card draws and
// hints the drawn card on a dimension its holder does not know yet,
// flipping a coin only when both are unknown. Drawing the hint from an
// actual card keeps the target mask non-empty and truthful; a card whose
// colour and rank are both known already is skipped as zero information.
func (b *IntentBot) randomHint(tr *brain.Tracker, seat int) (domain.Action, bool) {
	others := make([]*brain.PlayerModel, 0, len(tr.Players))
	for _, m := range tr.Players {
		if m.Seat != seat && m.Hand != nil {
			others = append(others, m)
		}
	}
	if len(others) == 0 {
		return domain.Action{}, false
	}

	for i := 0; i < b.tuning.RandomHintAttempts; i++ {
		m := others[b.rng.Intn(len(others))]
		pos := b.rng.Intn(len(m.Hand))
		card := m.Hand[pos]
		if card.Empty() || pos >= len(m.Beliefs) {
			continue
		}
		belief := m.Beliefs[pos]

		colour := domain.NewColourHint(seat, m.Seat, card.Colour, colourMask(m.Hand, card.Colour))
		rank := domain.NewRankHint(seat, m.Seat, card.Rank, rankMask(m.Hand, card.Rank))
		switch {
		case belief.KnownColour && belief.KnownRank:
			continue
		case belief.KnownColour:
			return rank, true
		case belief.KnownRank:
			return colour, true
		case b.rng.Intn(2) == 0:
			return colour, true
		default:
			return rank, true
		}
	}
	return domain.Action{}, false
}

// randomDiscard throws away a uniformly chosen occupied slot.
func (b *IntentBot) randomDiscard(me *brain.PlayerModel, seat int) (domain.Action, bool) {
	occupied := occupiedSlots(me)
	if len(occupied) == 0 {
		return domain.Action{}, false
	}
	return domain.NewDiscard(seat, occupied[b.rng.Intn(len(occupied))]), true
}

// anySlot returns an arbitrary occupied slot for the last-resort play.
func (b *IntentBot) anySlot(me *brain.PlayerModel) (int, bool) {
	occupied := occupiedSlots(me)
	if len(occupied) == 0 {
		return 0, false
	}
	return occupied[b.rng.Intn(len(occupied))], true
}

func occupiedSlots(me *brain.PlayerModel) []int {
	var slots []int
	for pos := range me.Beliefs {
		if !me.Empty[pos] {
			slots = append(slots, pos)
		}
	}
	return slots
}

func colourMask(hand []domain.Card, colour domain.Colour) []bool {
	mask := make([]bool, len(hand))
	for pos, card := range hand {
		mask[pos] = !card.Empty() && card.Colour == colour
	}
	return mask
}

func rankMask(hand []domain.Card, rank int) []bool {
	mask := make([]bool, len(hand))
	for pos, card := range hand {
		mask[pos] = !card.Empty() && card.Rank == rank
	}
	return mask
}
