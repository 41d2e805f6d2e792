package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type BetTier struct {
	ID      string `json:"id"`
	BaseBet int64  `json:"base_bet"`
}

type GameConfig struct {
	DefaultTier         string    `json:"default_tier"`
	Tiers               []BetTier `json:"tiers"`
	StartLevel          int       `json:"start_level"`
	WelcomeBonus        int64     `json:"welcome_bonus"`
	TurnDurationSeconds int       `json:"turn_duration_seconds"`
	// BotTurnDelaySeconds paces bot moves so they read as deliberate play.
	BotTurnDelaySeconds int `json:"bot_turn_delay_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before
	// filling empty seats with bots in a solo human lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	SkillOfferCount         int `json:"skill_offer_count"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

const (
	defaultBaseBet       = 100
	defaultStartLevel    = 2
	defaultWelcomeBonus  = 100
	defaultSkillOffers   = 3
	defaultAutoFillDelay = 5
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

// GetBaseBet returns the base bet for a given tier ID, or the default if
// not found.
func GetBaseBet(tierID string) int64 {
	if cfg == nil {
		return defaultBaseBet
	}

	target := tierID
	if target == "" {
		target = cfg.DefaultTier
	}

	for _, tier := range cfg.Tiers {
		if tier.ID == target {
			return tier.BaseBet
		}
	}

	for _, tier := range cfg.Tiers {
		if tier.ID == cfg.DefaultTier {
			return tier.BaseBet
		}
	}

	return defaultBaseBet
}

// GetStartLevel returns the level rank new tables start at.
func GetStartLevel() int {
	if cfg == nil || cfg.StartLevel == 0 {
		return defaultStartLevel
	}
	return cfg.StartLevel
}

// GetWelcomeBonus returns the starter coin grant for new accounts.
func GetWelcomeBonus() int64 {
	if cfg == nil || cfg.WelcomeBonus == 0 {
		return defaultWelcomeBonus
	}
	return cfg.WelcomeBonus
}

// GetBotAutoFillDelay returns the seconds to wait before filling a solo
// lobby with bots.
func GetBotAutoFillDelay() int {
	if cfg == nil || cfg.BotAutoFillDelaySeconds == 0 {
		return defaultAutoFillDelay
	}
	return cfg.BotAutoFillDelaySeconds
}

// GetSkillOfferCount returns how many skills each seat is offered at round
// start.
func GetSkillOfferCount() int {
	if cfg == nil || cfg.SkillOfferCount == 0 {
		return defaultSkillOffers
	}
	return cfg.SkillOfferCount
}
