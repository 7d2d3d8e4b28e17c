package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
	"github.com/iamasit07/vier-gewinnt/internal/locale"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#1E5AA8")).
			Padding(0, 2)

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#1E5AA8")).
			Padding(0, 1)

	player1Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#E53935")).Bold(true)
	player2Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FDD835")).Bold(true)
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	lastStyle    = lipgloss.NewStyle().Underline(true)

	statusStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF7043")).Bold(true)
)

const (
	diskRune  = "●"
	emptyRune = "·"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHistory {
		return m.historyView()
	}

	labels := m.snap.Labels
	var b strings.Builder

	b.WriteString(titleStyle.Render("Vier gewinnt"))
	b.WriteString("\n\n")
	b.WriteString(m.scoreLine())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.settingsLine()))
	b.WriteString("\n\n")
	b.WriteString(m.cursorLine())
	b.WriteString("\n")
	b.WriteString(boardStyle.Render(m.boardView()))
	b.WriteString("\n")

	status := m.snap.Message
	if m.snap.Thinking {
		status += " …"
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")

	if m.confirming {
		b.WriteString(warnStyle.Render(fmt.Sprintf("%s (y/n)", labels.ConfirmReset)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) scoreLine() string {
	return fmt.Sprintf("%s %s %d  :  %d %s %s",
		player1Style.Render(diskRune), m.snap.Player1Name, m.snap.Scores["1"],
		m.snap.Scores["2"], m.snap.Player2Name, player2Style.Render(diskRune))
}

func (m Model) settingsLine() string {
	labels := m.snap.Labels
	line := labels.ModeName(m.snap.Mode)
	if m.snap.Mode == domain.ModeAI {
		line += " · " + labels.DifficultyName(m.snap.Difficulty)
	}
	return line + " · " + strings.ToUpper(string(m.snap.Language))
}

// cursorLine marks the selected column above the board.
func (m Model) cursorLine() string {
	var b strings.Builder
	b.WriteString("  ")
	for c := 0; c < domain.Columns; c++ {
		if c == m.cursor {
			style := player1Style
			if m.snap.CurrentPlayer == domain.Player2 {
				style = player2Style
			}
			b.WriteString(style.Render("▼"))
		} else {
			b.WriteString(" ")
		}
		b.WriteString(" ")
	}
	return b.String()
}

func (m Model) boardView() string {
	var b strings.Builder
	for r, row := range m.snap.Board {
		for c, cell := range row {
			b.WriteString(renderCell(domain.PlayerID(cell), m.isLastMove(r, c)))
			if c < len(row)-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	for c := 1; c <= domain.Columns; c++ {
		b.WriteString(dimStyle.Render(fmt.Sprint(c)))
		if c < domain.Columns {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func (m Model) isLastMove(row, col int) bool {
	return m.snap.LastMove != nil && m.snap.LastMove.Row == row && m.snap.LastMove.Column == col
}

func renderCell(p domain.PlayerID, last bool) string {
	var s string
	switch p {
	case domain.Player1:
		s = player1Style.Render(diskRune)
	case domain.Player2:
		s = player2Style.Render(diskRune)
	default:
		return emptyStyle.Render(emptyRune)
	}
	if last {
		return lastStyle.Render(s)
	}
	return s
}

func (m Model) historyView() string {
	labels := m.snap.Labels
	var b strings.Builder

	b.WriteString(titleStyle.Render(labels.History))
	b.WriteString("\n\n")

	switch {
	case m.historyErr != nil:
		b.WriteString(warnStyle.Render(m.historyErr.Error()))
	case len(m.games) == 0:
		b.WriteString(dimStyle.Render(labels.NoHistory))
	default:
		b.WriteString(historyTable(labels, m.games).View())
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("h/esc"))
	return b.String()
}

func historyTable(labels locale.Labels, games []domain.GameRecord) table.Model {
	columns := []table.Column{
		{Title: labels.Finished, Width: 16},
		{Title: labels.Result, Width: 22},
		{Title: labels.Moves, Width: 6},
	}

	rows := make([]table.Row, 0, len(games))
	for _, g := range games {
		result := labels.Draw
		if g.Winner != domain.Empty {
			result = labels.WinStatus(g.Winner, g.Mode)
		}
		rows = append(rows, table.Row{
			g.FinishedAt.Local().Format("2006-01-02 15:04"),
			result,
			fmt.Sprint(g.TotalMoves),
		})
	}

	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(false),
	)
}
