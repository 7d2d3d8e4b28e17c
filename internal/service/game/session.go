package game

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
	"github.com/iamasit07/vier-gewinnt/internal/locale"
	"github.com/iamasit07/vier-gewinnt/internal/service/bot"
	"github.com/iamasit07/vier-gewinnt/pkg/uid"
)

// StateStore keeps the encoded State of each player under a session id.
// Load returns domain.ErrStateNotFound when nothing is stored.
type StateStore interface {
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Save(ctx context.Context, sessionID string, data []byte) error
	Delete(ctx context.Context, sessionID string) error
}

// HistoryRepository receives finished games.
type HistoryRepository interface {
	SaveGame(ctx context.Context, record domain.GameRecord) error
	ListGames(ctx context.Context, sessionID string, limit int) ([]domain.GameRecord, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type Options struct {
	BotMoveDelay  time.Duration
	WinResetDelay time.Duration
	AfterFunc     AfterFunc
	// Seed fixes the easy opponent's choices; 0 seeds from the clock.
	Seed    int64
	History HistoryRepository
	Logger  *log.Logger
}

func (o Options) withDefaults() Options {
	if o.AfterFunc == nil {
		o.AfterFunc = realAfterFunc
	}
	if o.Logger == nil {
		o.Logger = log.WithPrefix("SESSION")
	}
	return o
}

type statusKind int

const (
	statusTurn statusKind = iota // start of a game
	statusNext                   // after a move
	statusWin
)

// Move is the last disk placed.
type Move struct {
	Row    int             `json:"row"`
	Column int             `json:"column"`
	Player domain.PlayerID `json:"player"`
}

// Session is one player's game: board, scores and settings. Every change
// is written to the store before the method returns.
type Session struct {
	ID string

	mu         sync.Mutex
	game       *domain.Game
	gameID     string
	startedAt  time.Time
	scores     Scores
	mode       domain.Mode
	difficulty domain.Difficulty
	language   domain.Language
	status     statusKind
	outcome    domain.GameStatus
	lastMove   *Move
	lastActive time.Time

	// timer callbacks carry the generation they were scheduled under;
	// a stale one does nothing
	pendingBot   Timer
	pendingReset Timer
	botGen       uint64
	resetGen     uint64

	listeners map[int]func(Snapshot)
	nextID    int

	store  StateStore
	opts   Options
	rng    *rand.Rand
	logger *log.Logger
}

// NewSession builds a session holding the default state. Call Load to pick
// up what the store has.
func NewSession(id string, store StateStore, opts Options) *Session {
	opts = opts.withDefaults()
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		ID:        id,
		store:     store,
		opts:      opts,
		rng:       rand.New(rand.NewSource(seed)),
		listeners: make(map[int]func(Snapshot)),
		logger:    opts.Logger.With("session", shortID(id)),
	}
	s.applyState(DefaultState())
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (s *Session) applyState(st State) {
	s.game = domain.ResumeGame(st.Board, st.CurrentPlayer)
	s.gameID = uid.GenerateGameID()
	s.startedAt = time.Now()
	s.scores = st.Scores.Clone()
	s.mode = st.Mode
	s.difficulty = st.Difficulty
	s.language = st.Language
	s.status = statusTurn
	if s.game.MoveCount > 0 {
		s.status = statusNext
	}
	s.outcome = ""
	s.lastMove = nil
	s.lastActive = time.Now()
}

func (s *Session) stateLocked() State {
	return State{
		Mode:          s.mode,
		Difficulty:    s.difficulty,
		Scores:        s.scores.Clone(),
		Language:      s.language,
		Board:         s.game.Board,
		CurrentPlayer: s.game.CurrentPlayer,
	}
}

// Load replaces the session state with the stored one. Missing or broken
// fields keep their defaults; a store failure leaves the defaults in place
// and is returned.
func (s *Session) Load(ctx context.Context) error {
	data, err := s.store.Load(ctx, s.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.applyState(DefaultState())
		if errors.Is(err, domain.ErrStateNotFound) {
			return nil
		}
		return err
	}

	st, fallbacks := DecodeState(data)
	if len(fallbacks) > 0 {
		s.logger.Debug("stored state used defaults", "fields", fallbacks)
	}
	s.applyState(st)

	// A stored finished board is left over from the pause before the reset.
	if s.game.IsFinished() {
		s.game.Reset()
		s.status = statusTurn
		s.persistLocked(ctx)
	}
	s.scheduleBotLocked()
	return nil
}

// MakeMove plays column for the human whose turn it is. Illegal moves, moves
// after the game ended and clicks during the computer's turn are ignored.
// It reports whether a disk was placed.
func (s *Session) MakeMove(ctx context.Context, column int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == domain.ModeAI && s.game.CurrentPlayer == bot.AIPlayer {
		return false
	}
	return s.playLocked(ctx, column)
}

func (s *Session) playLocked(ctx context.Context, column int) bool {
	player := s.game.CurrentPlayer
	row, err := s.game.MakeMove(column)
	if err != nil {
		s.logger.Debug("move ignored", "column", column, "err", err)
		return false
	}
	s.lastActive = time.Now()
	s.lastMove = &Move{Row: row, Column: column, Player: player}

	switch s.game.Status {
	case domain.StatusWon:
		s.scores[player]++
		s.status = statusWin
		s.outcome = domain.StatusWon
		s.logger.Info("game won", "winner", int(player), "moves", s.game.MoveCount)
		s.recordLocked(domain.ReasonConnectFour)
		s.persistLocked(ctx)
		s.scheduleResetLocked()
	case domain.StatusDraw:
		s.outcome = domain.StatusDraw
		s.logger.Info("game drawn, starting over")
		s.recordLocked(domain.ReasonDraw)
		s.resetLocked(ctx)
		// keep the outcome visible on the fresh board
		s.outcome = domain.StatusDraw
	default:
		s.status = statusNext
		s.outcome = ""
		s.persistLocked(ctx)
		s.scheduleBotLocked()
	}

	s.notifyLocked()
	return true
}

// scheduleBotLocked queues the computer's reply when it is its turn.
func (s *Session) scheduleBotLocked() {
	if s.mode != domain.ModeAI || s.game.CurrentPlayer != bot.AIPlayer || s.game.IsFinished() {
		return
	}
	if s.pendingBot != nil {
		return
	}
	s.botGen++
	gen := s.botGen
	s.pendingBot = s.opts.AfterFunc(s.opts.BotMoveDelay, func() { s.botMove(gen) })
}

func (s *Session) botMove(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.botGen {
		return
	}
	s.pendingBot = nil
	// settings may have changed while the timer was pending
	if s.mode != domain.ModeAI || s.game.CurrentPlayer != bot.AIPlayer || s.game.IsFinished() {
		return
	}

	column := bot.ChooseMove(s.game.Board, s.difficulty, s.rng)
	if column < 0 {
		return
	}
	s.logger.Debug("computer move", "column", column, "difficulty", s.difficulty)
	s.playLocked(context.Background(), column)
}

func (s *Session) scheduleResetLocked() {
	s.stopResetLocked()
	s.resetGen++
	gen := s.resetGen
	s.pendingReset = s.opts.AfterFunc(s.opts.WinResetDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.resetGen {
			return
		}
		s.pendingReset = nil
		if !s.game.IsFinished() {
			return
		}
		s.resetLocked(context.Background())
		s.notifyLocked()
	})
}

func (s *Session) stopBotLocked() {
	s.botGen++
	if s.pendingBot != nil {
		s.pendingBot.Stop()
		s.pendingBot = nil
	}
}

func (s *Session) stopResetLocked() {
	s.resetGen++
	if s.pendingReset != nil {
		s.pendingReset.Stop()
		s.pendingReset = nil
	}
}

// SetMode switches between friend and ai and starts a new game.
func (s *Session) SetMode(ctx context.Context, mode domain.Mode) bool {
	if !mode.Valid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = mode
	s.resetLocked(ctx)
	s.notifyLocked()
	return true
}

func (s *Session) SetDifficulty(ctx context.Context, difficulty domain.Difficulty) bool {
	if !difficulty.Valid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.difficulty = difficulty
	s.persistLocked(ctx)
	s.notifyLocked()
	return true
}

// SetLanguage accepts a language code or tag; unsupported ones are ignored.
func (s *Session) SetLanguage(ctx context.Context, code string) bool {
	lang, ok := locale.Normalize(code)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.language = lang
	s.persistLocked(ctx)
	s.notifyLocked()
	return true
}

// ResetGame clears the board. Scores are kept.
func (s *Session) ResetGame(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked(ctx)
	s.notifyLocked()
}

func (s *Session) resetLocked(ctx context.Context) {
	s.stopBotLocked()
	s.stopResetLocked()
	s.game.Reset()
	s.gameID = uid.GenerateGameID()
	s.startedAt = time.Now()
	s.status = statusTurn
	s.outcome = ""
	s.lastMove = nil
	s.lastActive = time.Now()
	s.persistLocked(ctx)
}

func (s *Session) ResetScores(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scores = NewScores()
	s.persistLocked(ctx)
	s.notifyLocked()
}

// Forget deletes the stored state and starts from the defaults.
func (s *Session) Forget(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopBotLocked()
	s.stopResetLocked()
	s.applyState(DefaultState())
	s.notifyLocked()
	return s.store.Delete(ctx, s.ID)
}

func (s *Session) persistLocked(ctx context.Context) {
	data, err := EncodeState(s.stateLocked())
	if err != nil {
		s.logger.Error("encoding state", "err", err)
		return
	}
	if err := s.store.Save(ctx, s.ID, data); err != nil {
		s.logger.Error("saving state", "err", err)
	}
}

// recordLocked hands the finished game to the history in the background so
// a slow database never delays the next move.
func (s *Session) recordLocked(reason string) {
	if s.opts.History == nil {
		return
	}
	finished := time.Now()
	record := domain.GameRecord{
		GameID:          s.gameID,
		SessionID:       s.ID,
		Mode:            s.mode,
		Winner:          s.game.Winner,
		Reason:          reason,
		TotalMoves:      s.game.MoveCount,
		DurationSeconds: int(finished.Sub(s.startedAt).Seconds()),
		CreatedAt:       s.startedAt,
		FinishedAt:      finished,
		Board:           s.game.Board.Ints(),
	}
	if s.mode == domain.ModeAI {
		record.Difficulty = s.difficulty
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.opts.History.SaveGame(ctx, record); err != nil {
			s.logger.Error("saving game", "game", record.GameID, "err", err)
			return
		}
		s.logger.Debug("game saved", "game", record.GameID)
	}()
}

// Subscribe registers fn to receive a Snapshot after every change. fn runs
// with the session locked and must not call back into it.
func (s *Session) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Session) notifyLocked() {
	if len(s.listeners) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, fn := range s.listeners {
		fn(snap)
	}
}

// Close stops pending timers. The stored state is kept.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopBotLocked()
	s.stopResetLocked()
}

func (s *Session) idleSince() (time.Time, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive, len(s.listeners)
}

// State returns a copy of the persisted part of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}
