package bot

import (
	"guandan/internal/domain"
)

// Agent represents an autonomous bot player bound to a seat identity.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// PlayAtSeat asks the agent to calculate its move for the given seat.
func (a *Agent) PlayAtSeat(round *domain.Round, seat int) (Move, error) {
	move, err := a.Strategy.CalculateMove(round, seat)
	if err != nil {
		return Move{Pass: true}, err
	}
	return move, nil
}

// OnRoundEvent notifies the agent of a round event.
func (a *Agent) OnRoundEvent(event interface{}) {
	a.Strategy.OnEvent(event)
}
