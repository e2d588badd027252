package app

import (
	"errors"
	"math/rand"
	"time"

	"hanabi/internal/domain"
)

// Service contains the Hanabi use-cases operating on domain state.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrNotInLobby    = errors.New("match not in lobby")
	ErrNotPlaying    = errors.New("match not in playing phase")
	ErrTooFewPlayers = errors.New("not enough players to start")
	ErrUnknownSeat   = errors.New("seat not found")
)

// StartGame deals a fresh table for the provided players. It expects a
// list of userIDs in seat order; empty strings mark empty seats and are
// skipped. Each player receives a view of every hand but their own.
func (s *Service) StartGame(playerIDs []string) (*domain.Game, []Event, error) {
	var seats []string
	for _, userID := range playerIDs {
		if userID == "" {
			continue
		}
		seats = append(seats, userID)
	}
	if len(seats) < MinPlayersToStartGame {
		return nil, nil, ErrTooFewPlayers
	}

	deck := domain.ShuffleDeck(s.rng, domain.NewDeck())

	game, err := domain.NewGame(seats, deck)
	if err != nil {
		return nil, nil, err
	}
	st := game.Current

	events := make([]Event, 0, len(seats)+1)
	events = append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			Players:    st.Players,
			HandSize:   game.HandSize,
			HintTokens: st.HintTokens,
			Lives:      st.Lives,
			DeckSize:   st.DeckSize,
			FirstSeat:  st.NextPlayer,
		},
	})
	for seat, userID := range seats {
		events = append(events, Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				Viewer: userID,
				Seat:   seat,
				Hands:  redactedHands(st, seat),
			},
			Recipients: []string{userID},
		})
	}

	return game, events, nil
}

// PlayerAction validates and applies one action, emitting the resulting
// events. The engine is the sole judge of legality; the caller only maps
// the error onto its transport.
func (s *Service) PlayerAction(game *domain.Game, a domain.Action) ([]Event, error) {
	before := game.Current
	next, err := game.Apply(a)
	if err != nil {
		return nil, err
	}

	payload := ActionAppliedPayload{
		Action:     a,
		Order:      next.Order,
		Fireworks:  next.Fireworks,
		HintTokens: next.HintTokens,
		Lives:      next.Lives,
		DeckSize:   next.DeckSize,
		NextPlayer: next.NextPlayer,
		Score:      next.Score(),
	}
	if a.Type == domain.ActionPlay || a.Type == domain.ActionDiscard {
		card := before.Hands[a.Actor][a.Pos]
		payload.Revealed = &card
	}

	events := []Event{{Kind: EventActionApplied, Payload: payload}}

	if a.Type == domain.ActionPlay || a.Type == domain.ActionDiscard {
		if drawn := next.Hands[a.Actor][a.Pos]; !drawn.Empty() {
			events = append(events, Event{
				Kind:       EventCardDrawn,
				Payload:    CardDrawnPayload{Seat: a.Actor, Pos: a.Pos, Card: drawn},
				Recipients: everyoneExcept(next.Players, a.Actor),
			})
		}
	}

	if next.GameOver() {
		events = append(events, Event{
			Kind: EventGameEnded,
			Payload: GameEndedPayload{
				Score:     next.Score(),
				Fireworks: next.Fireworks,
				Reason:    endReason(next),
			},
		})
	}
	return events, nil
}

// redactedHands copies the table hands with the viewer's own slots zeroed.
func redactedHands(st *domain.State, viewer int) [][]domain.Card {
	hands := make([][]domain.Card, len(st.Hands))
	for seat := range st.Hands {
		hands[seat] = make([]domain.Card, len(st.Hands[seat]))
		if seat != viewer {
			copy(hands[seat], st.Hands[seat])
		}
	}
	return hands
}

func everyoneExcept(players []string, seat int) []string {
	out := make([]string, 0, len(players)-1)
	for i, userID := range players {
		if i != seat {
			out = append(out, userID)
		}
	}
	return out
}

func endReason(st *domain.State) string {
	switch {
	case st.Lives <= 0:
		return "lives_exhausted"
	case st.Score() == domain.NumColours*domain.NumRanks:
		return "perfect"
	default:
		return "deck_exhausted"
	}
}
