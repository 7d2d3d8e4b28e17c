package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iamasit07/vier-gewinnt/internal/config"
	"github.com/iamasit07/vier-gewinnt/internal/domain"
	"github.com/iamasit07/vier-gewinnt/internal/repository/sqlite"
	"github.com/iamasit07/vier-gewinnt/internal/service/game"
	"github.com/iamasit07/vier-gewinnt/internal/transport/tui"
)

// localSessionID keys the terminal player's state in the local database.
const localSessionID = "local"

var (
	flagDBPath     string
	flagMode       string
	flagDifficulty string
	flagLanguage   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal. Board, scores and settings are kept in a
local SQLite database and restored on the next start.

Controls:
  ←/→        - Move the cursor
  Enter      - Drop a disk
  1-7        - Drop in that column
  m / d / l  - Switch mode, difficulty, language
  n          - New game
  x          - Reset scores
  h          - Recent games
  q/Ctrl+C   - Quit

Examples:
  connect4 play
  connect4 play --mode ai --difficulty easy
  connect4 play --language en --db ./connect4.db`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDBPath, "db", "", "Path to the local database (default from SQLITE_PATH)")
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Game mode: friend or ai")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Computer strength: easy, medium, hard")
	playCmd.Flags().StringVar(&flagLanguage, "language", "", "Language: de or en")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg := config.LoadConfig()
	dbPath := flagDBPath
	if dbPath == "" {
		dbPath = cfg.SQLitePath
	}

	store, err := sqlite.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	session := game.NewSession(localSessionID, store, game.Options{
		BotMoveDelay:  cfg.BotMoveDelay,
		WinResetDelay: cfg.WinResetDelay,
		History:       store,
	})
	defer session.Close()

	ctx := cmd.Context()
	if err := session.Load(ctx); err != nil {
		return fmt.Errorf("loading saved game: %w", err)
	}

	if flagMode != "" {
		mode := domain.Mode(flagMode)
		if !mode.Valid() {
			return fmt.Errorf("unknown mode %q (want friend or ai)", flagMode)
		}
		// switching mode starts a new game; keep the saved one otherwise
		if mode != session.Snapshot().Mode {
			session.SetMode(ctx, mode)
		}
	}
	if flagDifficulty != "" {
		if !session.SetDifficulty(ctx, domain.Difficulty(flagDifficulty)) {
			return fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", flagDifficulty)
		}
	}
	if flagLanguage != "" {
		if !session.SetLanguage(ctx, flagLanguage) {
			return fmt.Errorf("unknown language %q (want de or en)", flagLanguage)
		}
	}

	return tui.Run(session, store)
}
