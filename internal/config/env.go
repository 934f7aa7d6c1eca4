package config

import (
	"log"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvConfigPath    = "SNAKE_CONFIG"
	EnvFPS           = "SNAKE_FPS"
	EnvGridWidth     = "SNAKE_GRID_WIDTH"
	EnvGridHeight    = "SNAKE_GRID_HEIGHT"
	EnvEndOnDeath    = "SNAKE_END_ON_DEATH"
	EnvSpectatorAddr = "SNAKE_SPECTATOR_ADDR"
)

// LoadEnv loads .env style files into the process environment. Variables that
// are already set win.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("No env file loaded: %v", err)
	}
}

// ReadEnv parses an env file without touching the process environment.
func ReadEnv(path string) (map[string]string, error) {
	return godotenv.Read(path)
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvFPS); ok {
		setPositive(&c.Settings.FramesPerSecond, v)
	}
	if v, ok := lookup(EnvGridWidth); ok {
		setPositive32(&c.Settings.GridWidth, v)
	}
	if v, ok := lookup(EnvGridHeight); ok {
		setPositive32(&c.Settings.GridHeight, v)
	}
	if v, ok := lookup(EnvEndOnDeath); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Policy.EndOnDeath = b
		}
	}
}

// MapLookup adapts a map to the lookup signature ApplyEnv takes.
func MapLookup(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}
