package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"snake/internal/config"
)

const (
	uiWindow   = "window"
	uiTerminal = "term"
)

type options struct {
	configPath    string
	ui            string
	debug         bool
	spectatorAddr string
	endOnDeath    bool
	syncFood      bool
	seed          uint64
	mute          bool

	set map[string]bool
}

// parseOptions reads flags. Defaults for the config path and spectator
// address come from the environment, so .env must be loaded first.
func parseOptions(args []string, getenv func(string) string, output io.Writer) (options, error) {
	var o options

	configDefault := getenv(config.EnvConfigPath)
	if configDefault == "" {
		configDefault = config.DefaultPath
	}

	fs := flag.NewFlagSet("snake", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&o.configPath, "config", configDefault, "settings file")
	fs.StringVar(&o.ui, "ui", uiWindow, "frontend: window or term")
	fs.BoolVar(&o.debug, "debug", false, "write logs to "+logDir+"/"+logFileName)
	fs.StringVar(&o.spectatorAddr, "spectate", getenv(config.EnvSpectatorAddr), "serve spectators on this address, e.g. :8080")
	fs.BoolVar(&o.endOnDeath, "end-on-death", false, "end the session when the snake dies")
	fs.BoolVar(&o.syncFood, "sync-food", false, "place food on the loop goroutine")
	fs.Uint64Var(&o.seed, "seed", 0, "random seed, 0 picks one from the clock")
	fs.BoolVar(&o.mute, "mute", false, "disable sound")

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	if o.ui != uiWindow && o.ui != uiTerminal {
		return o, fmt.Errorf("unknown -ui %q, want %s or %s", o.ui, uiWindow, uiTerminal)
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		o.set[f.Name] = true
	})
	return o, nil
}

// apply lets explicitly set flags override the loaded config.
func (o options) apply(cfg *config.Config) {
	if o.set["end-on-death"] {
		cfg.Policy.EndOnDeath = o.endOnDeath
	}
	if o.set["sync-food"] {
		cfg.Policy.AsyncFood = !o.syncFood
	}
}

func defaultGetenv(key string) string {
	return os.Getenv(key)
}
