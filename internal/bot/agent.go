package bot

import "hanabi/internal/domain"

// Agent represents an autonomous bot player occupying one seat.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// PlayAtSeat asks the agent to calculate its move for the given seat.
func (a *Agent) PlayAtSeat(state *domain.State, seat int) (domain.Action, error) {
	return a.Strategy.CalculateMove(state, seat)
}

// OnGameEvent notifies the agent of a game event.
func (a *Agent) OnGameEvent(event interface{}) {
	a.Strategy.OnEvent(event)
}
