package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
	"github.com/iamasit07/vier-gewinnt/internal/service/game"
	"github.com/iamasit07/vier-gewinnt/internal/transport/http/middleware"
)

// Handler upgrades requests to sockets that mirror one session.
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Upgrader       websocket.Upgrader
	logger         *log.Logger
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager, allowedOrigins []string) *Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: log.WithPrefix("WS"),
	}
}

// HandleWebSocket upgrades the connection. The session comes from the
// session middleware; a cookie it just issued is passed on in the upgrade
// response.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	var header http.Header
	if cookies := c.Writer.Header().Values("Set-Cookie"); len(cookies) > 0 {
		header = http.Header{"Set-Cookie": cookies}
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, header)
	if err != nil {
		h.logger.Warn("upgrade failed", "err", err)
		return
	}

	session, err := h.SessionManager.Get(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.Error("resolving session", "err", err)
		conn.WriteJSON(errorMessage("No session"))
		conn.Close()
		return
	}

	h.handleConnection(newClient(sessionID, conn), session)
}

func (h *Handler) handleConnection(client *Client, session *game.Session) {
	h.ConnManager.Add(client)
	go client.writePump()

	unsubscribe := session.Subscribe(func(s game.Snapshot) {
		client.Send(stateMessage(s))
	})

	defer func() {
		unsubscribe()
		h.ConnManager.Remove(client)
		client.Close()
		h.logger.Debug("connection closed", "session", client.SessionID)
	}()

	h.logger.Debug("connection opened", "session", client.SessionID, "tabs", h.ConnManager.Count(client.SessionID))
	client.Send(stateMessage(session.Snapshot()))

	client.conn.SetReadLimit(4096)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("client disconnected unexpectedly", "err", err)
			}
			return
		}
		client.conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Debug("invalid message format", "err", err)
			client.Send(errorMessage("Invalid message format"))
			continue
		}

		if errMsg := processMessage(context.Background(), session, msg); errMsg != "" {
			client.Send(errorMessage(errMsg))
		}
	}
}

// processMessage applies one client frame. Frames that are well formed but
// not allowed right now (a full column, the computer's turn) change nothing
// and are not errors. It returns a message only for malformed frames.
func processMessage(ctx context.Context, session *game.Session, msg ClientMessage) string {
	switch msg.Type {
	case TypeMakeMove:
		if msg.Column == nil {
			return "column is required"
		}
		session.MakeMove(ctx, *msg.Column)
	case TypeSetMode:
		session.SetMode(ctx, domain.Mode(msg.Value))
	case TypeSetDifficulty:
		session.SetDifficulty(ctx, domain.Difficulty(msg.Value))
	case TypeSetLanguage:
		session.SetLanguage(ctx, msg.Value)
	case TypeResetGame:
		session.ResetGame(ctx)
	case TypeResetScores:
		session.ResetScores(ctx)
	default:
		return "unknown message type"
	}
	return ""
}
