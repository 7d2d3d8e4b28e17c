package main

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
	"github.com/iamasit07/vier-gewinnt/internal/service/bot"
)

var (
	flagBoard           string
	flagAnalyzeDiff     string
	flagAnalyzeSeed     int64
	bestStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#43A047"))
	illegalColumnMarker = "-"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Show how the computer rates a position",
	Long: `Print the board, the search value of every column and the column the
computer would play. The computer plays O (player 2).

The board is given top row first: '.' empty, 'X' player 1, 'O' player 2.
Rows may be separated by '/' or newlines.

Examples:
  connect4 analyze --board "......./......./......./......./......./...X..."
  connect4 analyze --board "$(cat position.txt)" --difficulty medium`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&flagBoard, "board", strings.Repeat(".", domain.Rows*domain.Columns), "Position to analyse")
	analyzeCmd.Flags().StringVar(&flagAnalyzeDiff, "difficulty", string(domain.DifficultyHard), "Computer strength: easy, medium, hard")
	analyzeCmd.Flags().Int64Var(&flagAnalyzeSeed, "seed", 0, "RNG seed for easy (0 = random based on time)")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	board, err := domain.ParseBoard(flagBoard)
	if err != nil {
		return err
	}
	difficulty := domain.Difficulty(flagAnalyzeDiff)
	if !difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", flagAnalyzeDiff)
	}

	seed := flagAnalyzeSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return analyze(cmd.OutOrStdout(), board, difficulty, rand.New(rand.NewSource(seed)))
}

func analyze(w io.Writer, board domain.Board, difficulty domain.Difficulty, rng *rand.Rand) error {
	if board.HasWinningLine() {
		return fmt.Errorf("game is already decided")
	}
	if board.IsFull() {
		return fmt.Errorf("board is full")
	}

	scores := bot.ScoreColumns(board, difficulty)
	move := bot.ChooseMove(board, difficulty, rng)

	fmt.Fprintln(w, board.String())
	fmt.Fprintln(w, "1234567")
	fmt.Fprintln(w)

	for _, cs := range scores {
		value := illegalColumnMarker
		if cs.Legal {
			value = fmt.Sprint(cs.Score)
		}
		line := fmt.Sprintf("column %d: %s", cs.Column+1, value)
		if cs.Column == move {
			line = bestStyle.Render(line + "  <")
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\n%s plays column %d\n", difficulty, move+1)
	return nil
}
