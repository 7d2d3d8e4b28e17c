// connect4 runs Vier gewinnt: a browser and SSH game server, a local
// terminal game and a position analyser.
//
// Usage:
//
//	connect4 serve                - Start the HTTP/WebSocket server (and SSH with --ssh)
//	connect4 play                 - Play in this terminal
//	connect4 analyze --board ...  - Score every column of a position
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var flagLogLevel string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "connect4",
	Short: "Vier gewinnt - Connect Four against a friend or the computer",
	Long: `Vier gewinnt is Connect Four for the browser and the terminal.

Available commands:
  serve    - Start the web server (optionally with SSH)
  play     - Play directly in this terminal
  analyze  - Show how the computer rates a position

Examples:
  connect4 serve
  connect4 serve --ssh :23234
  connect4 play --mode ai --difficulty hard
  connect4 analyze --board "......./......./......./......./......./...X..."`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := godotenv.Load(); err != nil {
			if err := godotenv.Load("../.env"); err != nil {
				log.Debug("no .env file found")
			}
		}
		if flagLogLevel == "" {
			return nil
		}
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(analyzeCmd)
}
