package game

import (
	"context"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
	"github.com/iamasit07/vier-gewinnt/internal/service/bot"
)

// Service is the entry point the transports use (facade)
type Service struct {
	Sessions *SessionManager
	History  HistoryRepository
}

func NewService(sessions *SessionManager, history HistoryRepository) *Service {
	return &Service{
		Sessions: sessions,
		History:  history,
	}
}

func (s *Service) HistoryEnabled() bool {
	return s.History != nil
}

// Games lists the finished games of a session, newest first.
func (s *Service) Games(ctx context.Context, sessionID string, limit int) ([]domain.GameRecord, error) {
	if s.History == nil {
		return nil, nil
	}
	return s.History.ListGames(ctx, sessionID, limit)
}

// Analysis scores every column of the session's board at its difficulty.
func (s *Service) Analysis(ctx context.Context, sessionID string) ([domain.Columns]bot.ColumnScore, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return [domain.Columns]bot.ColumnScore{}, err
	}
	st := session.State()
	return bot.ScoreColumns(st.Board, st.Difficulty), nil
}
