package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/xwordclient/config"
	"github.com/domino14/xwordclient/game"
	"github.com/domino14/xwordclient/presentation"
	"github.com/domino14/xwordclient/protocol"
	"github.com/domino14/xwordclient/scriptengine"
	"github.com/domino14/xwordclient/shell"
	"github.com/domino14/xwordclient/tray"
)

var (
	GitVersion string
)

//go:embed engine.lua
var standInEngine string

func main() {
	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := cfg.AdjustRelativePaths(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: colorable.NewColorableStderr(), TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
	log.Info().Str("version", GitVersion).Interface("config", cfg.SanitizedSettings()).Msg("loaded config")

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("client stopped")
		pprof.StopCPUProfile()
		os.Exit(1)
	}
	log.Info().Msg("client shutting down")
}

func run(cfg *config.Config) error {
	dim := cfg.GetInt(config.ConfigBoardDim)
	s := game.NewSession(dim)
	s.SetHintDuration(cfg.GetDuration(config.ConfigHintDisplayDuration))
	s.SetMaxMessages(cfg.GetInt(config.ConfigMaxLogMsgs))
	s.SetGodMode(cfg.GetBool(config.ConfigGodMode))

	color := cfg.GetBool(config.ConfigColorOutput) && isatty.IsTerminal(os.Stdout.Fd())

	b := presentation.NewBroadcaster()
	views := b.Subscribe()
	s.AddObserver(b)
	a := protocol.NewAdapter(s)

	sc, err := shell.NewShellController(cfg, a, presentation.NewTextBoard(dim, tray.Size, color))
	if err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case <-sig:
			log.Info().Msg("got quit signal...")
		case <-ctx.Done():
		}
		cancel()
		a.Close()
		b.Close()
		return nil
	})
	g.Go(func() error {
		return sc.Loop(ctx, sig)
	})
	g.Go(func() error {
		return sc.Watch(ctx, views)
	})
	g.Go(func() error {
		d := scriptengine.NewDriver(a)
		var err error
		if path := cfg.GetString(config.ConfigEngineScript); path != "" {
			log.Info().Str("script", path).Msg("starting engine")
			err = d.RunFile(ctx, path)
		} else {
			log.Info().Msg("starting the stand-in engine")
			err = d.RunString(ctx, standInEngine)
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err == nil {
			log.Info().Msg("engine finished")
			// nobody is left to answer the client
			a.Close()
		}
		return err
	})

	return g.Wait()
}
