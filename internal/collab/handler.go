package collab

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/researchpartner/api/internal/service"
)

// TokenVerifier authenticates a websocket connection. Satisfied by
// AuthService.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

type joinPayload struct {
	PaperID string `json:"paperId"`
}

type notePayload struct {
	PaperID string          `json:"paperId"`
	Note    json.RawMessage `json:"note"`
}

type typingPayload struct {
	PaperID  string `json:"paperId"`
	UserName string `json:"userName"`
}

type presencePayload struct {
	SocketID  string `json:"socketId"`
	UserCount int    `json:"userCount"`
}

// Handler upgrades /ws requests and runs the room event loop for each
// connection.
type Handler struct {
	hub      *Hub
	verifier TokenVerifier
}

func NewHandler(hub *Hub, verifier TokenVerifier) *Handler {
	return &Handler{hub: hub, verifier: verifier}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := tokenFromRequest(r)
	if token == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	userID, err := h.verifier.VerifyToken(token)
	if err != nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	websocket.Handler(func(conn *websocket.Conn) {
		h.serve(conn, userID)
	}).ServeHTTP(w, r)
}

func tokenFromRequest(r *http.Request) string {
	if token := strings.TrimSpace(r.URL.Query().Get("token")); token != "" {
		return token
	}

	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func (h *Handler) serve(conn *websocket.Conn, userID string) {
	defer func() { _ = conn.Close() }()

	c := &client{
		id:     uuid.NewString(),
		userID: userID,
		enc:    json.NewEncoder(conn),
	}

	defer func() {
		for paperID, count := range h.hub.leaveAll(c) {
			if count > 0 {
				h.hub.broadcast(paperID, c, "user-left", presencePayload{SocketID: c.id, UserCount: count})
			}
		}
	}()

	decoder := json.NewDecoder(conn)
	for {
		var f frame
		if err := decoder.Decode(&f); err != nil {
			if !errors.Is(err, io.EOF) {
				slog.Debug("websocket read ended", "socket_id", c.id, "error", err)
			}
			return
		}

		h.dispatch(c, f)
	}
}

func (h *Handler) dispatch(c *client, f frame) {
	switch f.Event {
	case "join-paper":
		var p joinPayload
		if err := json.Unmarshal(f.Payload, &p); err != nil || p.PaperID == "" {
			return
		}
		count := h.hub.join(p.PaperID, c)
		h.hub.broadcast(p.PaperID, c, "user-joined", presencePayload{SocketID: c.id, UserCount: count})

	case "leave-paper":
		var p joinPayload
		if err := json.Unmarshal(f.Payload, &p); err != nil || p.PaperID == "" {
			return
		}
		count := h.hub.leave(p.PaperID, c)
		if count > 0 {
			h.hub.broadcast(p.PaperID, c, "user-left", presencePayload{SocketID: c.id, UserCount: count})
		}

	case "send-note":
		var p notePayload
		if err := json.Unmarshal(f.Payload, &p); err != nil || p.PaperID == "" {
			return
		}
		h.hub.broadcast(p.PaperID, c, "receive-note", p.Note)

	case "typing":
		var p typingPayload
		if err := json.Unmarshal(f.Payload, &p); err != nil || p.PaperID == "" {
			return
		}
		h.hub.broadcast(p.PaperID, c, "user-typing", map[string]string{"userName": p.UserName})

	case "stop-typing":
		var p typingPayload
		if err := json.Unmarshal(f.Payload, &p); err != nil || p.PaperID == "" {
			return
		}
		h.hub.broadcast(p.PaperID, c, "user-stop-typing", struct{}{})

	default:
		slog.Debug("unknown websocket event", "event", f.Event, "socket_id", c.id)
	}
}

var _ TokenVerifier = (*service.AuthService)(nil)
