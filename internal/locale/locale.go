// Package locale holds the display strings for every supported language.
package locale

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
)

//go:embed labels.yaml
var labelsYAML []byte

// Labels is the label set for one language.
type Labels struct {
	Player1      string `yaml:"player1" json:"player1"`
	Player2      string `yaml:"player2" json:"player2"`
	AI           string `yaml:"ai" json:"ai"`
	NewGame      string `yaml:"newGame" json:"newGame"`
	ResetScores  string `yaml:"resetScores" json:"resetScores"`
	VsPlayer     string `yaml:"vsPlayer" json:"vsPlayer"`
	VsAI         string `yaml:"vsAI" json:"vsAI"`
	Easy         string `yaml:"easy" json:"easy"`
	Medium       string `yaml:"medium" json:"medium"`
	Hard         string `yaml:"hard" json:"hard"`
	ConfirmReset string `yaml:"confirmReset" json:"confirmReset"`
	Turn         string `yaml:"turn" json:"-"`
	Next         string `yaml:"next" json:"-"`
	Wins         string `yaml:"wins" json:"-"`
	Draw         string `yaml:"draw" json:"draw"`
	History      string `yaml:"history" json:"history"`
	NoHistory    string `yaml:"noHistory" json:"noHistory"`
	Result       string `yaml:"result" json:"result"`
	Moves        string `yaml:"moves" json:"moves"`
	Finished     string `yaml:"finished" json:"finished"`
	Yes          string `yaml:"yes" json:"yes"`
	No           string `yaml:"no" json:"no"`
}

var (
	catalog  map[domain.Language]Labels
	matcher  language.Matcher
	ordering []domain.Language
)

func init() {
	raw := map[string]Labels{}
	if err := yaml.Unmarshal(labelsYAML, &raw); err != nil {
		panic(fmt.Sprintf("locale: embedded labels are broken: %v", err))
	}

	catalog = make(map[domain.Language]Labels, len(raw))
	// German first: it is the default and the matcher falls back to the first tag.
	ordering = []domain.Language{domain.LanguageDE, domain.LanguageEN}
	tags := make([]language.Tag, 0, len(ordering))
	for _, lang := range ordering {
		l, ok := raw[string(lang)]
		if !ok {
			panic(fmt.Sprintf("locale: no labels for %q", lang))
		}
		catalog[lang] = l
		tags = append(tags, language.Make(string(lang)))
	}
	matcher = language.NewMatcher(tags)
}

// Supported lists the languages with a label set, default first.
func Supported() []domain.Language {
	return append([]domain.Language(nil), ordering...)
}

// For returns the label set of lang, falling back to German.
func For(lang domain.Language) Labels {
	if l, ok := catalog[lang]; ok {
		return l
	}
	return catalog[domain.LanguageDE]
}

// Normalize maps a language code or tag ("en", "de-AT", "en_US") to a
// supported language. ok is false when the base language is not supported.
func Normalize(code string) (domain.Language, bool) {
	code = strings.TrimSpace(strings.ReplaceAll(code, "_", "-"))
	if code == "" {
		return "", false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	lang := domain.Language(base.String())
	if _, ok := catalog[lang]; !ok {
		return "", false
	}
	return lang, true
}

// Negotiate picks the best supported language for an Accept-Language header.
func Negotiate(acceptLanguage string) domain.Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return domain.LanguageDE
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return domain.LanguageDE
	}
	return ordering[idx]
}

// PlayerName is the display name of player. Player 2 is the computer in ai mode.
func (l Labels) PlayerName(player domain.PlayerID, mode domain.Mode) string {
	if player == domain.Player1 {
		return l.Player1
	}
	if mode == domain.ModeAI {
		return l.AI
	}
	return l.Player2
}

func (l Labels) DifficultyName(d domain.Difficulty) string {
	switch d {
	case domain.DifficultyEasy:
		return l.Easy
	case domain.DifficultyMedium:
		return l.Medium
	}
	return l.Hard
}

func (l Labels) ModeName(m domain.Mode) string {
	if m == domain.ModeAI {
		return l.VsAI
	}
	return l.VsPlayer
}

// TurnStatus is the status line at the start of a game.
func (l Labels) TurnStatus(player domain.PlayerID, mode domain.Mode) string {
	return fmt.Sprintf(l.Turn, l.PlayerName(player, mode))
}

// NextStatus is the status line after a move passed the turn on.
func (l Labels) NextStatus(player domain.PlayerID, mode domain.Mode) string {
	return fmt.Sprintf(l.Next, l.PlayerName(player, mode))
}

func (l Labels) WinStatus(player domain.PlayerID, mode domain.Mode) string {
	return fmt.Sprintf(l.Wins, l.PlayerName(player, mode))
}
