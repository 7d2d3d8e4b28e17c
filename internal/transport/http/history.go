package http

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
	"github.com/iamasit07/vier-gewinnt/internal/service/game"
	"github.com/iamasit07/vier-gewinnt/internal/transport/http/middleware"
)

type HistoryHandler struct {
	Service *game.Service
}

func NewHistoryHandler(svc *game.Service) *HistoryHandler {
	return &HistoryHandler{Service: svc}
}

// GetHistory lists the finished games of the caller's session.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	if !h.Service.HistoryEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "History is not configured"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	games, err := h.Service.Games(c.Request.Context(), middleware.SessionID(c), limit)
	if err != nil {
		log.Error("fetching history", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}
	if games == nil {
		games = []domain.GameRecord{}
	}
	c.JSON(http.StatusOK, games)
}
