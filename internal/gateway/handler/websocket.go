package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/msto63/taxwise/internal/calculator"
	"github.com/msto63/taxwise/internal/income"
	"github.com/msto63/taxwise/pkg/core/apperror"
	"github.com/msto63/taxwise/pkg/core/logging"
)

const (
	wsReadTimeout  = 120 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// WebSocket upgrader with permissive settings for local development
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler serves live calculations over a WebSocket
type WebSocketHandler struct {
	calc    *calculator.Service
	reports *ReportStore
	logger  *logging.Logger

	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool
}

// NewWebSocketHandler creates a new WebSocket handler. Results are added
// to reports when it is not nil so they can be fetched over REST.
func NewWebSocketHandler(calc *calculator.Service, reports *ReportStore, logger *logging.Logger) *WebSocketHandler {
	if logger == nil {
		logger = logging.New("http-websocket")
	}
	return &WebSocketHandler{
		calc:    calc,
		reports: reports,
		logger:  logger,
		conns:   make(map[*websocket.Conn]struct{}),
	}
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string          `json:"type"`    // "calculate", "format", "ping"
	Payload json.RawMessage `json:"payload"` // Message-specific payload
}

// WSResponse represents a WebSocket response
type WSResponse struct {
	Type    string      `json:"type"`    // "result", "formatted", "error", "pong"
	Payload interface{} `json:"payload"` // Response-specific payload
}

// WSFormattedPayload echoes the regrouped input
type WSFormattedPayload struct {
	Input     string `json:"input"`
	Formatted string `json:"formatted"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	if !h.track(conn) {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		return
	}
	defer h.untrack(conn)
	h.handleConnection(r.Context(), conn)
}

// Close sends a going-away frame to every open connection and closes it.
// Connections upgraded after Close are refused the same way.
func (h *WebSocketHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for conn := range h.conns {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		delete(h.conns, conn)
	}
}

// Active returns the number of open connections
func (h *WebSocketHandler) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *WebSocketHandler) track(conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.conns[conn] = struct{}{}
	return true
}

func (h *WebSocketHandler) untrack(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// handleConnection serves one connection until the peer closes it
func (h *WebSocketHandler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	h.logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", "error", err)
			} else {
				h.logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		if err := h.dispatch(ctx, conn, msg); err != nil {
			h.logger.Warn("WebSocket write failed", "error", err)
			return
		}
	}
}

func (h *WebSocketHandler) dispatch(ctx context.Context, conn *websocket.Conn, msg WSMessage) error {
	switch msg.Type {
	case "ping":
		return h.send(conn, WSResponse{Type: "pong"})

	case "format":
		var req CalculateRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return h.sendError(conn, string(apperror.CodeInvalidInput), "Invalid format payload")
		}
		return h.send(conn, WSResponse{Type: "formatted", Payload: WSFormattedPayload{
			Input:     string(req.MonthlyIncome),
			Formatted: income.FormatLive(string(req.MonthlyIncome)),
		}})

	case "calculate":
		var req CalculateRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return h.sendError(conn, string(apperror.CodeInvalidInput), "Invalid calculate payload")
		}
		rep, err := h.calc.Calculate(ctx, string(req.MonthlyIncome))
		if err != nil {
			return h.sendError(conn, string(apperror.CodeOf(err)), apperror.MessageOf(err))
		}
		if h.reports != nil {
			h.reports.Set(rep.ID.String(), rep)
		}
		return h.send(conn, WSResponse{Type: "result", Payload: calculator.NewResponse(rep)})

	default:
		return h.sendError(conn, "UNKNOWN_TYPE", "Unknown message type: "+msg.Type)
	}
}

func (h *WebSocketHandler) send(conn *websocket.Conn, resp WSResponse) error {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(resp)
}

func (h *WebSocketHandler) sendError(conn *websocket.Conn, code, message string) error {
	return h.send(conn, WSResponse{
		Type:    "error",
		Payload: WSErrorPayload{Code: code, Message: message},
	})
}
