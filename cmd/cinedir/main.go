package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cinedir/engine/internal/audio"
	"github.com/cinedir/engine/internal/camera"
	"github.com/cinedir/engine/internal/config"
	"github.com/cinedir/engine/internal/data"
	"github.com/cinedir/engine/internal/director"
	"github.com/cinedir/engine/internal/scene"
	"github.com/cinedir/engine/internal/scripting"
	"github.com/cinedir/engine/internal/tween"
	"github.com/cinedir/engine/internal/vfx"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            cinedir  v0.1.0                \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      scripted cinematic direction         \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main host logic ───────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/cinedir.toml"
	if p := os.Getenv("CINEDIR_CONFIG"); p != "" {
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

	printBanner()
	printSection("assets")

	// 3. Load the scene graph
	root, err := data.LoadSceneFile(cfg.Assets.SceneFile)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	meshes := 0
	root.EachMesh(func(*scene.Node) { meshes++ })
	printStat("meshes", meshes)

	// 4. Load Lua stories
	stories, err := scripting.NewEngine(cfg.Assets.StoryDir, log)
	if err != nil {
		return fmt.Errorf("stories: %w", err)
	}
	defer stories.Close()
	printOK("stories loaded")

	story := cfg.Assets.DefaultStory
	if len(os.Args) > 1 {
		story = os.Args[1]
	}
	if !stories.HasStory(story) {
		return fmt.Errorf("story %q not found in %s", story, cfg.Assets.StoryDir)
	}
	cmds, err := stories.RunStory(story)
	if err != nil {
		return fmt.Errorf("run story: %w", err)
	}
	printStat("commands", len(cmds))
	fmt.Println()

	// 5. Wire the direction engine
	var backend audio.Backend
	if cfg.Audio.Enabled {
		backend = audio.NewOtoBackend(cfg.Audio.SampleRate, log)
	} else {
		backend = audio.NullBackend{}
	}

	deps := &director.Deps{
		Tween:   tween.NewRunner(cfg.Engine.TweenStep),
		Synth:   audio.NewSynth(backend, cfg.Audio.SampleRate, log),
		Physics: director.NewPhysicsWorld(),
		Log:     log,
	}
	engine := director.New(deps, director.Options{
		CancelOnStop: cfg.Engine.CancelOnStop,
	})

	var vfxMu sync.Mutex
	var vfxState vfx.State

	ctx := &director.Context{
		Scene:  root,
		Camera: camera.New(),
		GetVFX: func() vfx.State {
			vfxMu.Lock()
			defer vfxMu.Unlock()
			return vfxState
		},
		SetVFX: func(s vfx.State) {
			vfxMu.Lock()
			vfxState = s
			vfxMu.Unlock()
		},
		OnTaskStart: func(t *director.Task) {
			log.Info("task start",
				zap.String("id", t.ID),
				zap.String("kind", string(t.Command.Kind)))
		},
		OnTaskComplete: func(t *director.Task) {
			log.Info("task done",
				zap.String("id", t.ID),
				zap.String("status", string(t.Status())))
		},
		OnAllComplete: func() {
			log.Info("sequence complete")
		},
	}
	engine.SetContext(ctx)
	engine.AddCommands(cmds)

	// 6. Run, stopping cleanly on SIGINT/SIGTERM
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-shutdownCh
		log.Info("shutdown signal", zap.String("signal", sig.String()))
		engine.Stop()
	}()

	printSection("ready")
	printReady(fmt.Sprintf("running story %q", story))
	fmt.Println()

	engine.Execute()
	return nil
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
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
