package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// BotIdentity is one entry of the bot profile pool.
type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarIndex int    `json:"avatar_index"`
}

var (
	botIdentities []BotIdentity
	botIDMap      map[string]bool
	loadOnce      sync.Once
	loadErr       error
)

var defaultIdentities = []BotIdentity{
	{UserID: "bot-north", Username: "north_wind", DisplayName: "North Wind"},
	{UserID: "bot-east", Username: "east_river", DisplayName: "East River"},
	{UserID: "bot-south", Username: "south_gate", DisplayName: "South Gate"},
	{UserID: "bot-west", Username: "west_lake", DisplayName: "West Lake"},
}

// LoadIdentities loads the bot profiles from the given path. Missing or
// malformed files fall back to the built-in pool.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		if err := json.Unmarshal(data, &botIdentities); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		botIDMap = make(map[string]bool, len(botIdentities))
		for _, identity := range botIdentities {
			if identity.UserID != "" {
				botIDMap[identity.UserID] = true
			}
		}
	})
	return loadErr
}

// IsBot reports whether the user ID belongs to the bot pool, loaded or
// built-in.
func IsBot(userID string) bool {
	if botIDMap[userID] {
		return true
	}
	for _, identity := range defaultIdentities {
		if identity.UserID == userID {
			return true
		}
	}
	return false
}

// GetBotIdentity returns an identity for a bot by index (mod pool size).
func GetBotIdentity(index int) BotIdentity {
	pool := botIdentities
	if len(pool) == 0 {
		pool = defaultIdentities
	}
	return pool[index%len(pool)]
}
