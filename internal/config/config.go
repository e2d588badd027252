package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"hanabi/internal/bot"
)

type GameConfig struct {
	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before adding a bot to a solo human lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	// BotTurnDelaySeconds paces bot moves so humans can follow the table.
	BotTurnDelaySeconds int `json:"bot_turn_delay_seconds"`

	// Policy thresholds. Zero values fall back to the built-in defaults.
	SafePlayThreshold    float64 `json:"safe_play_threshold"`
	TrustedPlayThreshold float64 `json:"trusted_play_threshold"`
	TrustScoreThreshold  float64 `json:"trust_score_threshold"`
	LowHintTokenMark     int     `json:"low_hint_token_mark"`
	RandomHintAttempts   int     `json:"random_hint_attempts"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetTurnDurationSeconds returns the configured turn clock, or a safe default.
func GetTurnDurationSeconds() int {
	if cfg == nil || cfg.TurnDurationSeconds <= 0 {
		return 30
	}
	return cfg.TurnDurationSeconds
}

// GetBotAutoFillDelaySeconds returns the solo-lobby fill delay, or a safe default.
func GetBotAutoFillDelaySeconds() int {
	if cfg == nil || cfg.BotAutoFillDelaySeconds <= 0 {
		return 10
	}
	return cfg.BotAutoFillDelaySeconds
}

// GetBotTurnDelaySeconds returns the bot pacing delay, or a safe default.
func GetBotTurnDelaySeconds() int {
	if cfg == nil || cfg.BotTurnDelaySeconds <= 0 {
		return 2
	}
	return cfg.BotTurnDelaySeconds
}

// GetTuning folds the configured thresholds over the built-in defaults.
func GetTuning() bot.Tuning {
	t := bot.DefaultTuning
	if cfg == nil {
		return t
	}
	if cfg.SafePlayThreshold > 0 {
		t.SafePlayThreshold = cfg.SafePlayThreshold
	}
	if cfg.TrustedPlayThreshold > 0 {
		t.TrustedPlayThreshold = cfg.TrustedPlayThreshold
	}
	if cfg.TrustScoreThreshold > 0 {
		t.TrustScoreThreshold = cfg.TrustScoreThreshold
	}
	if cfg.LowHintTokenMark > 0 {
		t.LowHintTokenMark = cfg.LowHintTokenMark
	}
	if cfg.RandomHintAttempts > 0 {
		t.RandomHintAttempts = cfg.RandomHintAttempts
	}
	return t
}
