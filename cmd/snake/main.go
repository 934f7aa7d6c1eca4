package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"snake/internal/app"
	"snake/internal/audio"
	"snake/internal/config"
	"snake/internal/network"
	"snake/internal/ui/graphics"
	"snake/internal/ui/terminal"

	"github.com/gdamore/tcell/v2"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log.SetFlags(log.Ltime | log.Lshortfile)

	config.LoadEnv()

	opts, err := parseOptions(args, defaultGetenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	if logFile := setupLogging(logDir, opts.debug, opts.ui == uiTerminal); logFile != nil {
		defer logFile.Close()
	}

	// the file keeps only what it said plus the new high score; env and flag
	// overrides apply to this run only
	fileCfg := config.Load(opts.configPath)
	cfg := fileCfg
	cfg.ApplyEnv(os.LookupEnv)
	opts.apply(&cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listeners := []app.Listener{app.LogListener{}}
	if !opts.mute {
		player := audio.NewPlayer(0.4)
		if err := player.Init(); err != nil {
			log.Printf("Audio disabled: %v", err)
		} else {
			defer player.Close()
		}
		listeners = append(listeners, player)
	}

	sessionCfg := app.Config{
		Settings:  cfg.Settings,
		Tuning:    cfg.Tuning(),
		Seed:      opts.seed,
		Listeners: listeners,
	}

	var res app.Result
	if opts.ui == uiTerminal {
		res, err = runTerminal(ctx, sessionCfg, opts.spectatorAddr)
	} else {
		res, err = runWindow(ctx, sessionCfg, opts.spectatorAddr)
	}
	if err != nil {
		log.Printf("Session failed: %v", err)
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		return 1
	}

	fmt.Println("Game has terminated successfully!")
	if fileCfg.RecordScore(res.Score) {
		fmt.Println("Congrats, a New Score Has been achieved.!")
	}
	fmt.Printf("Score: %d\n", res.Score)
	fmt.Printf("Size: %d\n", res.Size)

	if err := config.Save(opts.configPath, fileCfg); err != nil {
		log.Printf("Failed to save config: %v", err)
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
	}
	return 0
}

// runWindow keeps ebiten on the main goroutine and plays the session on
// another one.
func runWindow(ctx context.Context, cfg app.Config, spectatorAddr string) (app.Result, error) {
	eng := graphics.NewEngine(cfg.Settings)
	cfg.Renderer = eng
	cfg.Input = eng.Input()

	sess, err := app.NewSession(ctx, cfg)
	if err != nil {
		return app.Result{}, err
	}

	type outcome struct {
		res app.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := playSession(ctx, sess, spectatorAddr)
		done <- outcome{res, err}
	}()

	uiErr := eng.Run(sess.Done())
	if uiErr != nil {
		sess.Stop()
	}
	o := <-done
	return o.res, errors.Join(uiErr, o.err)
}

func runTerminal(ctx context.Context, cfg app.Config, spectatorAddr string) (app.Result, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return app.Result{}, fmt.Errorf("terminal unavailable: %w", err)
	}
	if err := screen.Init(); err != nil {
		return app.Result{}, fmt.Errorf("terminal init failed: %w", err)
	}

	keys := terminal.NewKeySource(screen)
	keysDone := make(chan struct{})
	go func() {
		defer close(keysDone)
		keys.Run()
	}()

	cfg.Renderer = terminal.NewRenderer(screen)
	cfg.Input = keys

	sess, err := app.NewSession(ctx, cfg)
	if err != nil {
		screen.Fini()
		<-keysDone
		return app.Result{}, err
	}

	res, err := playSession(ctx, sess, spectatorAddr)

	screen.Fini()
	<-keysDone
	return res, err
}

// playSession runs the session and, when an address is given, a spectator
// server that lives exactly as long as the session.
func playSession(ctx context.Context, sess *app.Session, spectatorAddr string) (app.Result, error) {
	if spectatorAddr == "" {
		return sess.Run()
	}

	srv := network.NewServer(spectatorAddr, sess)
	srvCtx, cancel := context.WithCancel(ctx)
	srvDone := make(chan struct{})
	go func() {
		defer close(srvDone)
		if err := srv.Run(srvCtx); err != nil {
			log.Printf("Spectator server stopped: %v", err)
		}
	}()

	res, err := sess.Run()
	cancel()
	<-srvDone
	return res, err
}
