package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	tterm "github.com/vovakirdan/tui-snake/internal/platform/term"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const (
	backendTea   = "tea"
	backendTcell = "tcell"
)

var (
	flagConfig     string
	flagDifficulty string
	flagBackend    string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play Snake",
	Long: `Start playing Snake. Without a variant an interactive menu is shown.

Controls:
  Arrows/WASD/HJKL  - Turn
  P/Space           - Pause
  R                 - Restart (after game over)
  Esc/B             - Back to menu (paused or game over)
  Q/Ctrl+C          - Quit

Variants:
  snake         - Edges wrap around to the opposite side
  snake_walled  - Hitting an edge ends the game

Difficulty options:
  easy   - Slower base speed, speeds up with score
  normal - Default speeds
  hard   - Faster base speed, speeds up with score
  fixed  - No speed-up, stays at the base delay

Backends:
  tea    - Bubble Tea (default, includes menus and scoreboard)
  tcell  - tcell renderer driven by a timer loop

Examples:
  snake play
  snake play snake_walled --difficulty hard
  snake play snake --backend tcell
  snake play --config ./my-snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagBackend, "backend", backendTea, "Frontend: tea or tcell")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name stored with your scores (default: local)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if flagBackend != backendTea && flagBackend != backendTcell {
		return fmt.Errorf("unknown backend %q (want tea or tcell)", flagBackend)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return unknownVariant(gameID)
		}
	} else if flagBackend == backendTcell {
		gameID = registry.List()[0].ID
	}

	gameCfg, source, err := config.LoadSnake(flagConfig)
	if err != nil {
		return err
	}

	logOut, closeLog, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer closeLog()

	logger, err := newLogger(logOut)
	if err != nil {
		return err
	}
	logger.Debug("loaded config", "source", source)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if flagBackend == backendTcell {
		config.ApplySnakePreset(&gameCfg, preset)
		return playTcell(gameID, gameCfg, store, logger)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}

	// A variant given on the command line is played once.
	if gameID != "" {
		_, err := playTea(gameID, gameCfg, preset, store, cfg, logger)
		return err
	}
	return menuLoop(gameCfg, preset, store, cfg, logger)
}

// menuLoop alternates between the menu, the scoreboard and games until the
// player quits.
func menuLoop(gameCfg config.SnakeConfig, preset config.DifficultyPreset, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, logger)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		chosen := preset
		if chosen == "" {
			selected, err := tui.RunDifficultySelector(registry.Title(menuResult.GameID), cfg)
			if err != nil {
				return err
			}
			if selected == nil {
				continue
			}
			chosen = *selected
		}

		backToMenu, err := playTea(menuResult.GameID, gameCfg, chosen, store, cfg, logger)
		if err != nil {
			return err
		}
		if !backToMenu {
			return nil
		}
	}
}

// playTea runs one variant in Bubble Tea and reports whether the player asked
// to go back to the menu.
func playTea(gameID string, base config.SnakeConfig, preset config.DifficultyPreset, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (bool, error) {
	gameCfg := base
	config.ApplySnakePreset(&gameCfg, preset)

	game, err := registry.Create(gameID, gameCfg)
	if err != nil {
		return false, err
	}
	logger.Info("game started", "game", gameID, "difficulty", string(preset), "backend", backendTea)

	opts := []tui.ModelOption{tui.WithLogger(logger)}
	if flagPlayer != "" {
		opts = append(opts, tui.WithPlayer(flagPlayer))
	}
	return tui.Run(game, store, cfg, opts...)
}

// playTcell runs one variant on a tcell screen until the player quits or the
// process is interrupted.
func playTcell(gameID string, gameCfg config.SnakeConfig, store *storage.Store, logger *log.Logger) error {
	game, err := registry.Create(gameID, gameCfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("game started", "game", gameID, "backend", backendTcell)
	frontend := tterm.New(screen, game, tterm.Options{
		Store:  store,
		Player: flagPlayer,
		Seed:   flagSeed,
		Logger: logger,
	})
	return frontend.Run(ctx)
}
