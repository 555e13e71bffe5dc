package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lumenfield/litcollect/internal/audio"
	"github.com/lumenfield/litcollect/internal/config"
	"github.com/lumenfield/litcollect/internal/data"
	"github.com/lumenfield/litcollect/internal/game"
	"github.com/lumenfield/litcollect/internal/scripting"
	"github.com/lumenfield/litcollect/internal/system"
	"github.com/lumenfield/litcollect/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printSection(title string) {
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", max(3, 45-len(title))))
}

func printStat(label string, count int) {
	num := fmt.Sprintf("%d", count)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", max(3, 42-len(label)-len(num))), num)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main loop ──────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/game.toml"
	if p := os.Getenv("LITCOLLECT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Load data and scripts
	printSection("data")
	rig, err := data.LoadLightRig(cfg.Paths.Lights)
	if err != nil {
		return fmt.Errorf("load light rig: %w", err)
	}
	printStat("lights", rig.Count())

	luaEngine, err := scripting.NewEngine(cfg.Paths.Scripts, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK("lua scripts loaded")
	printStat("initial items", cfg.Spawn.InitialCount)
	printStat("max population", cfg.Trickle.MaxPopulation)
	if w := cfg.CapacityWarning(); w != "" {
		fmt.Printf("  \033[31m!\033[0m %s\n", w)
	}

	// 4. Terminal
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()

	commands := make(chan system.Command, 64)
	extent := max(cfg.Spawn.Radius, cfg.Trickle.RangeMax, -cfg.Trickle.RangeMin)
	ui := tui.New(screen, commands, extent)
	ui.ResetRelease = cfg.Display.ResetRelease

	// 5. Game
	ctrl, err := game.New(game.Deps{
		Config:   cfg,
		Log:      log,
		Lights:   rig.Pair(),
		Roller:   luaEngine,
		Sink:     ui,
		Commands: commands,
		Trigger:  system.NewEdge(ui.ResetHeld),
	})
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	defer ctrl.Close()

	var chime *audio.Chime
	if cfg.Audio.Enabled {
		chime = audio.Open(ctrl.Bus(), log)
	} else {
		chime = audio.Silent(ctrl.Bus(), log)
	}
	chime.Enable()
	defer chime.Close()

	// 6. Run
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Timing.TickRate)
	defer ticker.Stop()

	events := ui.Events()
	ctrl.Start()
	log.Info("game loop started", zap.Duration("tick", cfg.Timing.TickRate))

	last := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !ui.Handle(ev) {
				log.Info("quit requested", zap.Int("score", ctrl.Score()), zap.Int("dropped_moves", ui.Dropped()))
				return nil
			}
		case now := <-ticker.C:
			ctrl.Tick(now.Sub(last))
			last = now
			ui.Draw(ctrl)
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()), zap.Int("score", ctrl.Score()))
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	// The terminal belongs to the UI; logs go to a file unless none is set.
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
