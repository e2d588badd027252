package bot

import "hanabi/internal/domain"

// Brain is the interface all bot strategies implement. CalculateMove is
// invoked once per turn with the authoritative snapshot; the returned
// action is handed back to the engine for legality enforcement.
type Brain interface {
	CalculateMove(state *domain.State, seat int) (domain.Action, error)
	OnEvent(event interface{})
}
