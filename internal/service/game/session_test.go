package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
	"github.com/iamasit07/vier-gewinnt/internal/repository/memory"
)

// manualClock collects deferred calls until the test fires them.
type manualClock struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

func (c *manualClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, delay: d, fn: fn}
	c.pending = append(c.pending, t)
	return t
}

// Pending counts timers that are neither fired nor stopped.
func (c *manualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Fire runs every live timer once.
func (c *manualClock) Fire() {
	c.mu.Lock()
	due := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, t := range due {
		c.mu.Lock()
		live := !t.stopped
		t.stopped = true
		c.mu.Unlock()
		if live {
			t.fn()
		}
	}
}

// Last returns the most recently scheduled timer, fired or not.
func (c *manualClock) Last() *manualTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending[len(c.pending)-1]
}

type recordingHistory struct {
	games chan domain.GameRecord
}

func newRecordingHistory() *recordingHistory {
	return &recordingHistory{games: make(chan domain.GameRecord, 8)}
}

func (h *recordingHistory) SaveGame(_ context.Context, record domain.GameRecord) error {
	h.games <- record
	return nil
}

func (h *recordingHistory) ListGames(context.Context, string, int) ([]domain.GameRecord, error) {
	return nil, nil
}

func (h *recordingHistory) DeleteOlderThan(context.Context, int) (int64, error) {
	return 0, nil
}

func (h *recordingHistory) next(t *testing.T) domain.GameRecord {
	t.Helper()
	select {
	case rec := <-h.games:
		return rec
	case <-time.After(2 * time.Second):
		t.Fatal("no game recorded")
		return domain.GameRecord{}
	}
}

type failingStore struct{}

func (failingStore) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("store unavailable")
}
func (failingStore) Save(context.Context, string, []byte) error { return errors.New("store unavailable") }
func (failingStore) Delete(context.Context, string) error       { return nil }

type fixture struct {
	session *Session
	store   *memory.StateStore
	clock   *manualClock
	history *recordingHistory
}

func newFixture(t *testing.T, stored *State) *fixture {
	t.Helper()
	store := memory.NewStateStore()
	if stored != nil {
		data, err := EncodeState(*stored)
		require.NoError(t, err)
		require.NoError(t, store.Save(context.Background(), "s1", data))
	}
	f := &fixture{
		store:   store,
		clock:   &manualClock{},
		history: newRecordingHistory(),
	}
	f.session = NewSession("s1", store, Options{
		BotMoveDelay:  600 * time.Millisecond,
		WinResetDelay: 2 * time.Second,
		AfterFunc:     f.clock.AfterFunc,
		Seed:          7,
		History:       f.history,
	})
	require.NoError(t, f.session.Load(context.Background()))
	return f
}

func (f *fixture) stored(t *testing.T) State {
	t.Helper()
	data, err := f.store.Load(context.Background(), "s1")
	require.NoError(t, err)
	st, fallbacks := DecodeState(data)
	require.Empty(t, fallbacks)
	return st
}

func parseBoard(t *testing.T, s string) domain.Board {
	t.Helper()
	b, err := domain.ParseBoard(s)
	require.NoError(t, err)
	return b
}

func TestLoadDefaults(t *testing.T) {
	f := newFixture(t, nil)

	snap := f.session.Snapshot()
	assert.Equal(t, domain.ModeFriend, snap.Mode)
	assert.Equal(t, domain.DifficultyHard, snap.Difficulty)
	assert.Equal(t, domain.LanguageDE, snap.Language)
	assert.Equal(t, domain.Player1, snap.CurrentPlayer)
	assert.Equal(t, map[string]int{"1": 0, "2": 0}, snap.Scores)
	assert.Equal(t, "Spieler 1 ist am Zug", snap.Message)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, snap.ValidColumns)
	assert.False(t, snap.Thinking)
}

func TestLoadStoreFailureKeepsDefaults(t *testing.T) {
	s := NewSession("s1", failingStore{}, Options{AfterFunc: (&manualClock{}).AfterFunc})
	err := s.Load(context.Background())
	assert.Error(t, err)
	assert.Equal(t, DefaultState(), s.State())

	// moves still work even though nothing can be saved
	assert.True(t, s.MakeMove(context.Background(), 3))
}

func TestFriendMovePersists(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.True(t, f.session.MakeMove(ctx, 3))

	snap := f.session.Snapshot()
	assert.Equal(t, domain.Player2, snap.CurrentPlayer)
	assert.Equal(t, "Spieler 2 ist dran", snap.Message)
	require.NotNil(t, snap.LastMove)
	assert.Equal(t, Move{Row: 5, Column: 3, Player: domain.Player1}, *snap.LastMove)

	st := f.stored(t)
	assert.Equal(t, domain.Player1, st.Board[5][3])
	assert.Equal(t, domain.Player2, st.CurrentPlayer)
	assert.Zero(t, f.clock.Pending())
}

func TestIllegalMovesIgnored(t *testing.T) {
	stored := DefaultState()
	stored.Board = parseBoard(t, `
		X......
		O......
		X......
		O......
		X......
		O......`)
	f := newFixture(t, &stored)
	ctx := context.Background()

	before := f.session.State()
	assert.False(t, f.session.MakeMove(ctx, 0))
	assert.False(t, f.session.MakeMove(ctx, -1))
	assert.False(t, f.session.MakeMove(ctx, 7))
	assert.Equal(t, before, f.session.State())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, f.session.Snapshot().ValidColumns)
}

func TestWinScoresAndResetsAfterDelay(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	for _, col := range []int{0, 1, 0, 1, 0, 1} {
		require.True(t, f.session.MakeMove(ctx, col))
	}
	require.True(t, f.session.MakeMove(ctx, 0))

	snap := f.session.Snapshot()
	assert.Equal(t, domain.StatusWon, snap.Status)
	assert.Equal(t, domain.Player1, snap.Winner)
	assert.Equal(t, "Spieler 1 gewinnt!", snap.Message)
	assert.Equal(t, map[string]int{"1": 1, "2": 0}, snap.Scores)
	assert.Empty(t, snap.ValidColumns)

	// no moves while the winning board is shown
	assert.False(t, f.session.MakeMove(ctx, 3))

	rec := f.history.next(t)
	assert.Equal(t, domain.Player1, rec.Winner)
	assert.Equal(t, domain.ReasonConnectFour, rec.Reason)
	assert.Equal(t, 7, rec.TotalMoves)
	assert.Equal(t, "s1", rec.SessionID)
	assert.Len(t, rec.GameID, 32)

	assert.Equal(t, 1, f.clock.Pending())
	f.clock.Fire()

	snap = f.session.Snapshot()
	assert.Equal(t, domain.StatusActive, snap.Status)
	assert.Equal(t, domain.Player1, snap.CurrentPlayer)
	assert.Equal(t, map[string]int{"1": 1, "2": 0}, snap.Scores)
	assert.Equal(t, domain.NewBoard().Ints(), snap.Board)

	st := f.stored(t)
	assert.Equal(t, 1, st.Scores[domain.Player1])
	assert.Equal(t, domain.NewBoard(), st.Board)
}

func TestDrawResetsImmediately(t *testing.T) {
	stored := DefaultState()
	stored.Board = parseBoard(t, `
		XXOOXX.
		OOXXOOX
		XXOOXXO
		OOXXOOX
		XXOOXXO
		OOXXOOX`)
	stored.CurrentPlayer = domain.Player2
	f := newFixture(t, &stored)
	ctx := context.Background()

	require.True(t, f.session.MakeMove(ctx, 6))

	snap := f.session.Snapshot()
	assert.Equal(t, domain.StatusActive, snap.Status)
	assert.Equal(t, domain.StatusDraw, snap.Outcome)
	assert.Equal(t, "Unentschieden", snap.Message)
	assert.Equal(t, domain.NewBoard().Ints(), snap.Board)
	assert.Equal(t, map[string]int{"1": 0, "2": 0}, snap.Scores)
	assert.Zero(t, f.clock.Pending())

	rec := f.history.next(t)
	assert.Equal(t, domain.Empty, rec.Winner)
	assert.Equal(t, domain.ReasonDraw, rec.Reason)
	assert.Equal(t, domain.Columns*domain.Rows, rec.TotalMoves)

	assert.Equal(t, domain.NewBoard(), f.stored(t).Board)
}

func TestAIMoveFollowsHumanMove(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.True(t, f.session.SetMode(ctx, domain.ModeAI))
	require.True(t, f.session.SetDifficulty(ctx, domain.DifficultyMedium))
	require.True(t, f.session.MakeMove(ctx, 3))

	snap := f.session.Snapshot()
	assert.True(t, snap.Thinking)
	assert.Equal(t, domain.Player2, snap.CurrentPlayer)
	assert.Equal(t, "Algorithmus ist dran", snap.Message)

	// clicks during the computer's turn are ignored
	assert.False(t, f.session.MakeMove(ctx, 0))

	require.Equal(t, 1, f.clock.Pending())
	f.clock.Fire()

	snap = f.session.Snapshot()
	assert.False(t, snap.Thinking)
	assert.Equal(t, domain.Player1, snap.CurrentPlayer)
	require.NotNil(t, snap.LastMove)
	assert.Equal(t, domain.Player2, snap.LastMove.Player)

	st := f.stored(t)
	assert.Equal(t, 2, st.Board.MoveCount())
	assert.Equal(t, domain.Player1, st.CurrentPlayer)
}

func TestAIBlocksImmediateThreat(t *testing.T) {
	stored := DefaultState()
	stored.Mode = domain.ModeAI
	stored.Difficulty = domain.DifficultyHard
	stored.Board = parseBoard(t, `
		.......
		.......
		.......
		.....X.
		.....XO
		O..X.XO`)
	stored.CurrentPlayer = domain.Player2
	f := newFixture(t, &stored)

	// a pending computer turn is picked up on load
	require.Equal(t, 1, f.clock.Pending())
	f.clock.Fire()

	st := f.session.State()
	assert.Equal(t, domain.Player2, st.Board[2][5])
}

func TestSetModeCancelsPendingAIMove(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.True(t, f.session.SetMode(ctx, domain.ModeAI))
	require.True(t, f.session.MakeMove(ctx, 3))
	require.Equal(t, 1, f.clock.Pending())

	require.True(t, f.session.SetMode(ctx, domain.ModeFriend))
	assert.Zero(t, f.clock.Pending())
	assert.Equal(t, domain.NewBoard(), f.session.State().Board)
	assert.Equal(t, domain.ModeFriend, f.stored(t).Mode)

	assert.False(t, f.session.SetMode(ctx, domain.Mode("online")))
}

func TestLoadResetsFinishedBoard(t *testing.T) {
	stored := DefaultState()
	stored.Board = parseBoard(t, `
		.......
		.......
		.......
		.......
		OOO....
		XXXX...`)
	stored.Scores[domain.Player1] = 3
	f := newFixture(t, &stored)

	st := f.session.State()
	assert.Equal(t, domain.NewBoard(), st.Board)
	assert.Equal(t, 3, st.Scores[domain.Player1])
	assert.Equal(t, domain.NewBoard(), f.stored(t).Board)
}

func TestSettings(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.True(t, f.session.MakeMove(ctx, 2))

	assert.True(t, f.session.SetLanguage(ctx, "en-US"))
	assert.False(t, f.session.SetLanguage(ctx, "fr"))
	assert.True(t, f.session.SetDifficulty(ctx, domain.DifficultyEasy))
	assert.False(t, f.session.SetDifficulty(ctx, domain.Difficulty("impossible")))

	snap := f.session.Snapshot()
	assert.Equal(t, domain.LanguageEN, snap.Language)
	assert.Equal(t, "Player 2's turn", snap.Message)
	assert.Equal(t, "Player 1", snap.Player1Name)

	st := f.stored(t)
	assert.Equal(t, domain.LanguageEN, st.Language)
	assert.Equal(t, domain.DifficultyEasy, st.Difficulty)
	// difficulty and language leave the board alone
	assert.Equal(t, 1, st.Board.MoveCount())
}

func TestResetGameKeepsScores(t *testing.T) {
	stored := DefaultState()
	stored.Scores[domain.Player2] = 4
	f := newFixture(t, &stored)
	ctx := context.Background()

	require.True(t, f.session.MakeMove(ctx, 0))
	f.session.ResetGame(ctx)

	st := f.stored(t)
	assert.Equal(t, domain.NewBoard(), st.Board)
	assert.Equal(t, domain.Player1, st.CurrentPlayer)
	assert.Equal(t, 4, st.Scores[domain.Player2])

	f.session.ResetScores(ctx)
	assert.Equal(t, NewScores(), f.stored(t).Scores)
}

func TestForget(t *testing.T) {
	stored := DefaultState()
	stored.Language = domain.LanguageEN
	f := newFixture(t, &stored)

	require.NoError(t, f.session.Forget(context.Background()))
	assert.Equal(t, DefaultState(), f.session.State())
	_, err := f.store.Load(context.Background(), "s1")
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}

func TestSubscribe(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	var got []Snapshot
	unsubscribe := f.session.Subscribe(func(s Snapshot) { got = append(got, s) })

	f.session.MakeMove(ctx, 4)
	f.session.MakeMove(ctx, 7) // ignored, no notification
	require.Len(t, got, 1)
	assert.Equal(t, domain.Player2, got[0].CurrentPlayer)

	unsubscribe()
	f.session.MakeMove(ctx, 4)
	assert.Len(t, got, 1)
}

func TestReloadRoundTrip(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.True(t, f.session.SetLanguage(ctx, "en"))
	require.True(t, f.session.MakeMove(ctx, 3))
	require.True(t, f.session.MakeMove(ctx, 3))

	reloaded := NewSession("s1", f.store, Options{AfterFunc: f.clock.AfterFunc})
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, f.session.State(), reloaded.State())
}

// A timer callback that was already waiting for the lock when its game was
// reset must not act on the next game.
func TestStaleAIMoveCallbackIsIgnored(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.True(t, f.session.SetMode(ctx, domain.ModeAI))
	require.True(t, f.session.MakeMove(ctx, 3))
	stale := f.clock.Last()

	f.session.ResetGame(ctx)
	require.True(t, f.session.MakeMove(ctx, 2))
	require.Equal(t, 1, f.clock.Pending())

	stale.fn()

	snap := f.session.Snapshot()
	assert.True(t, snap.Thinking)
	assert.Equal(t, domain.Player2, snap.CurrentPlayer)
	assert.Equal(t, 1, f.session.State().Board.MoveCount())

	f.clock.Fire()

	snap = f.session.Snapshot()
	assert.False(t, snap.Thinking)
	assert.Equal(t, domain.Player1, snap.CurrentPlayer)
	assert.Equal(t, 2, f.session.State().Board.MoveCount())
}

func TestStaleWinResetCallbackIsIgnored(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	win := func() {
		for _, col := range []int{0, 1, 0, 1, 0, 1, 0} {
			require.True(t, f.session.MakeMove(ctx, col))
		}
	}

	win()
	stale := f.clock.Last()
	f.session.ResetGame(ctx)
	win()

	stale.fn()
	assert.Equal(t, domain.StatusWon, f.session.Snapshot().Status)

	f.clock.Fire()
	assert.Equal(t, domain.StatusActive, f.session.Snapshot().Status)
}
