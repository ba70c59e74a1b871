package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadHorde loads the horde configuration.
// Search order: customPath -> ~/.horde/configs/horde.yaml -> ./configs/horde.yaml -> embedded default.
// Files overlay the built-in defaults, so they only need the keys they change.
func LoadHorde(customPath string) (HordeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return HordeConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseHorde(data)
		if err != nil {
			return HordeConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("horde.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseHorde(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "horde.yaml")); err == nil {
		if cfg, err := parseHorde(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseHorde(defaultHordeYAML)
	if err != nil {
		return DefaultHordeConfig(), nil
	}
	return cfg, nil
}

func parseHorde(data []byte) (HordeConfig, error) {
	cfg := DefaultHordeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return HordeConfig{}, err
	}
	cfg.Normalize()
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".horde", "configs", filename)
}
