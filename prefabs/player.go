package prefabs

import (
	"fmt"

	"github.com/milk9111/platformer/obj"
	"gopkg.in/yaml.v3"
)

const PlayerFile = "player.yaml"

// LoadPlayerConfig reads player.yaml on top of the default tuning.
func LoadPlayerConfig() (obj.PlayerConfig, error) {
	data, err := Load(PlayerFile)
	if err != nil {
		return obj.PlayerConfig{}, fmt.Errorf("prefabs: load %s: %w", PlayerFile, err)
	}
	cfg, err := ParsePlayerConfig(data)
	if err != nil {
		return obj.PlayerConfig{}, fmt.Errorf("prefabs: %s: %w", PlayerFile, err)
	}
	return cfg, nil
}

// ParsePlayerConfig decodes tuning overrides. Keys that are absent keep
// their default value.
func ParsePlayerConfig(data []byte) (obj.PlayerConfig, error) {
	cfg := obj.DefaultPlayerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return obj.PlayerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return obj.PlayerConfig{}, err
	}
	return cfg, nil
}
