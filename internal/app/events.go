package app

import "hanabi/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventPlayerJoined  EventKind = "player_joined"
	EventPlayerLeft    EventKind = "player_left"
	EventGameStarted   EventKind = "game_started"
	EventHandDealt     EventKind = "hand_dealt"
	EventActionApplied EventKind = "action_applied"
	EventCardDrawn     EventKind = "card_drawn"
	EventGameEnded     EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type PlayerJoinedPayload struct {
	UserID string
	Seat   int
}

type PlayerLeftPayload struct {
	UserID string
}

type GameStartedPayload struct {
	Players    []string
	HandSize   int
	HintTokens int
	Lives      int
	DeckSize   int
	FirstSeat  int
}

// HandDealtPayload carries the table as one viewer sees it: every hand but
// their own. The viewer's own slots are zeroed cards.
type HandDealtPayload struct {
	Viewer string
	Seat   int
	Hands  [][]domain.Card
}

type ActionAppliedPayload struct {
	Action     domain.Action
	Order      int
	Fireworks  [domain.NumColours]int
	HintTokens int
	Lives      int
	DeckSize   int
	NextPlayer int
	Score      int
	// Revealed is the identity of the played or discarded card, which is
	// public the moment it leaves the hand.
	Revealed *domain.Card
}

// CardDrawnPayload is sent to everyone except the drawer, who must not
// learn their own replacement card.
type CardDrawnPayload struct {
	Seat int
	Pos  int
	Card domain.Card
}

type GameEndedPayload struct {
	Score     int
	Fireworks [domain.NumColours]int
	Reason    string
}
