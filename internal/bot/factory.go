package bot

import (
	"math/rand"

	"github.com/heroiclabs/nakama-common/runtime"
)

// BotLevel selects the strategy a seat is filled with.
type BotLevel int

const (
	// BotCasual plays random legal moves.
	BotCasual BotLevel = iota
	// BotIntent plays from belief grids and team-mate trust.
	BotIntent
)

// NewBrain builds the strategy for the given level. Unknown levels fall
// back to the intent strategy.
func NewBrain(level BotLevel, tuning Tuning, rng *rand.Rand, log runtime.Logger) Brain {
	switch level {
	case BotCasual:
		return NewCasualBot(rng)
	default:
		return NewIntentBot(tuning, rng, log)
	}
}

// NewAgent builds the agent for a pooled bot user, falling back to the
// intent strategy for user IDs outside the pool.
func NewAgent(userID string, tuning Tuning, rng *rand.Rand, log runtime.Logger) *Agent {
	identity, ok := GetBotConfig(userID)
	if !ok {
		identity = BotIdentity{UserID: userID, DisplayName: userID, Level: "intent"}
	}
	return &Agent{
		ID:       userID,
		Name:     identity.DisplayName,
		Strategy: NewBrain(LevelOf(identity), tuning, rng, log),
	}
}
