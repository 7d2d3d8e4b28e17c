package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
	"github.com/iamasit07/vier-gewinnt/internal/locale"
	"github.com/iamasit07/vier-gewinnt/internal/service/game"
	"github.com/iamasit07/vier-gewinnt/internal/transport/http/middleware"
)

type GameHandler struct {
	Service *game.Service
}

func NewGameHandler(svc *game.Service) *GameHandler {
	return &GameHandler{Service: svc}
}

// session resolves the caller's session. A brand-new session starts in the
// browser's preferred language.
func (h *GameHandler) session(c *gin.Context) (*game.Session, bool) {
	sessionID := middleware.SessionID(c)
	session, err := h.Service.Sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		log.Error("resolving session", "err", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No session"})
		return nil, false
	}

	if middleware.IsNewSession(c) {
		if lang := locale.Negotiate(c.GetHeader("Accept-Language")); lang != session.State().Language {
			session.SetLanguage(c.Request.Context(), string(lang))
		}
	}
	return session, true
}

func (h *GameHandler) GetState(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// MakeMove drops a disk for the human player. Illegal moves leave the state
// unchanged and still answer with the current snapshot.
func (h *GameHandler) MakeMove(c *gin.Context) {
	var req struct {
		Column *int `json:"column"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Column == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	session, ok := h.session(c)
	if !ok {
		return
	}
	session.MakeMove(c.Request.Context(), *req.Column)
	c.JSON(http.StatusOK, session.Snapshot())
}

type valueRequest struct {
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty"`
	Language   string `json:"language"`
}

func (h *GameHandler) SetMode(c *gin.Context) {
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	session, ok := h.session(c)
	if !ok {
		return
	}
	session.SetMode(c.Request.Context(), domain.Mode(req.Mode))
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *GameHandler) SetDifficulty(c *gin.Context) {
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	session, ok := h.session(c)
	if !ok {
		return
	}
	session.SetDifficulty(c.Request.Context(), domain.Difficulty(req.Difficulty))
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *GameHandler) SetLanguage(c *gin.Context) {
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	session, ok := h.session(c)
	if !ok {
		return
	}
	session.SetLanguage(c.Request.Context(), req.Language)
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *GameHandler) ResetGame(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.ResetGame(c.Request.Context())
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *GameHandler) ResetScores(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.ResetScores(c.Request.Context())
	c.JSON(http.StatusOK, session.Snapshot())
}

// GetAnalysis scores every column of the current board at the session's
// difficulty.
func (h *GameHandler) GetAnalysis(c *gin.Context) {
	scores, err := h.Service.Analysis(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyse board"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": scores})
}

// GetLabels returns the label set for a language. "auto" picks one from the
// Accept-Language header.
func GetLabels(c *gin.Context) {
	code := c.Param("lang")
	var lang domain.Language
	if code == "auto" {
		lang = locale.Negotiate(c.GetHeader("Accept-Language"))
	} else {
		var ok bool
		lang, ok = locale.Normalize(code)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unsupported language"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"language": lang, "labels": locale.For(lang)})
}
