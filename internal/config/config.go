// Package config reads and writes the game's settings file.
//
// The file is line oriented: "Key: value". Lines starting with '-' and lines
// with unknown keys or unparsable values are ignored. A missing file is not an
// error; defaults are used instead.
package config

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"snake/internal/domain"
)

const DefaultPath = "snake_config.txt"

const (
	KeyFramesPerSecond = "FramePerSeconds"
	KeyScreenWidth     = "ScreenWidth"
	KeyScreenHeight    = "ScreenHeight"
	KeyGridWidth       = "GridWidth"
	KeyGridHeight      = "GridHeight"
	KeyHighestScore    = "HighestScore"
	KeyEndOnDeath      = "EndOnDeath"
	KeyAsyncFood       = "AsyncFood"
	KeyRevalidateFood  = "RevalidateFood"
)

type Policy struct {
	EndOnDeath     bool
	AsyncFood      bool
	RevalidateFood bool
}

type Config struct {
	Settings     domain.GameSettings
	HighestScore int
	Policy       Policy
}

func Default() Config {
	tuning := domain.DefaultTuning()
	return Config{
		Settings:     domain.DefaultGameSettings(),
		HighestScore: 0,
		Policy: Policy{
			EndOnDeath:     tuning.EndOnDeath,
			AsyncFood:      tuning.AsyncFood,
			RevalidateFood: tuning.RevalidateFood,
		},
	}
}

// Tuning returns the default tuning with this config's policy switches.
func (c Config) Tuning() domain.Tuning {
	t := domain.DefaultTuning()
	t.EndOnDeath = c.Policy.EndOnDeath
	t.AsyncFood = c.Policy.AsyncFood
	t.RevalidateFood = c.Policy.RevalidateFood
	return t
}

// Load reads path, falling back to defaults for anything missing.
func Load(path string) Config {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("Could not open config file %s: %v, using default values", path, err)
		return Default()
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		log.Printf("Config file %s read failed: %v, using values read so far", path, err)
	}
	return cfg
}

func Parse(r io.Reader) (Config, error) {
	cfg := Default()

	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if value == "" {
			continue
		}

		cfg.set(key, value)
	}

	if !cfg.Settings.Validate() {
		cfg.Settings = domain.DefaultGameSettings()
	}
	return cfg, s.Err()
}

func (c *Config) set(key, value string) {
	switch key {
	case KeyFramesPerSecond:
		setPositive(&c.Settings.FramesPerSecond, value)
	case KeyScreenWidth:
		setPositive(&c.Settings.ScreenWidth, value)
	case KeyScreenHeight:
		setPositive(&c.Settings.ScreenHeight, value)
	case KeyGridWidth:
		setPositive32(&c.Settings.GridWidth, value)
	case KeyGridHeight:
		setPositive32(&c.Settings.GridHeight, value)
	case KeyHighestScore:
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			c.HighestScore = n
		}
	case KeyEndOnDeath:
		setBool(&c.Policy.EndOnDeath, value)
	case KeyAsyncFood:
		setBool(&c.Policy.AsyncFood, value)
	case KeyRevalidateFood:
		setBool(&c.Policy.RevalidateFood, value)
	}
}

func setPositive(dst *int, value string) {
	if n, err := strconv.Atoi(value); err == nil && n > 0 {
		*dst = n
	}
}

func setPositive32(dst *int32, value string) {
	if n, err := strconv.ParseInt(value, 10, 32); err == nil && n > 0 {
		*dst = int32(n)
	}
}

func setBool(dst *bool, value string) {
	if b, err := strconv.ParseBool(value); err == nil {
		*dst = b
	}
}

// Save writes the settings and the high score, replacing the file.
func Save(path string, cfg Config) error {
	var b strings.Builder
	if err := Write(&b, cfg); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

func Write(w io.Writer, cfg Config) error {
	s := cfg.Settings
	_, err := fmt.Fprintf(w,
		"Game Settings:\n"+
			"--------------\n"+
			"%s: %d\n%s: %d\n%s: %d\n%s: %d\n%s: %d\n"+
			"%s: %t\n%s: %t\n%s: %t\n\n\n"+
			"Game Score:\n"+
			"------------\n"+
			"%s: %d\n",
		KeyFramesPerSecond, s.FramesPerSecond,
		KeyScreenWidth, s.ScreenWidth,
		KeyScreenHeight, s.ScreenHeight,
		KeyGridWidth, s.GridWidth,
		KeyGridHeight, s.GridHeight,
		KeyEndOnDeath, cfg.Policy.EndOnDeath,
		KeyAsyncFood, cfg.Policy.AsyncFood,
		KeyRevalidateFood, cfg.Policy.RevalidateFood,
		KeyHighestScore, cfg.HighestScore,
	)
	return err
}

// RecordScore raises the high score and reports whether it changed.
func (c *Config) RecordScore(score int) bool {
	if score <= c.HighestScore {
		return false
	}
	c.HighestScore = score
	return true
}
