package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rishtahub/rishta_backend/internal/middleware"
	"github.com/rishtahub/rishta_backend/internal/realtime"
	"github.com/rishtahub/rishta_backend/internal/services"
	"github.com/rishtahub/rishta_backend/pkg/errors"
	"github.com/rishtahub/rishta_backend/pkg/logger"
)

const (
	readDeadline = 90 * time.Second // allows two or three missed 30s heartbeats
	readLimit    = int64(8 << 10)
)

// Websocket frame actions.
const (
	actionJoin   = "chat.join"
	actionLeave  = "chat.leave"
	actionSend   = "chat.send"
	actionSeen   = "chat.seen"
	actionTyping = "chat.typing"
	actionDelete = "chat.delete"
	actionEdit   = "chat.edit"
)

type inboundFrame struct {
	Action    string `json:"action"`
	PeerID    uint   `json:"peerId,omitempty"`
	SenderID  uint   `json:"senderId,omitempty"`
	MessageID uint   `json:"messageId,omitempty"`
	Content   string `json:"content,omitempty"`
	Type      string `json:"type,omitempty"`
}

type errorFrame struct {
	Event string `json:"event"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

// WSHandler upgrades authenticated clients, wires them into the hub and
// presence tracker, and dispatches chat frames into the chat gate.
type WSHandler struct {
	hub      *realtime.Hub
	presence *realtime.Presence
	chat     *services.ChatService
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *realtime.Hub, presence *realtime.Presence, chat *services.ChatService) *WSHandler {
	return &WSHandler{
		hub:      hub,
		presence: presence,
		chat:     chat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// TODO: restrict origins once the web client's domains are final
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *WSHandler) Register(r gin.IRoutes) {
	r.GET("/ws", h.Handle)
}

func (h *WSHandler) Handle(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, errors.New(errors.ErrCodeNotAuthenticated, "not authenticated"))
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	conn := realtime.NewConnection(userID, ws)
	h.hub.Attach(conn)
	h.presence.SetOnline(userID)
	logger.Info("User connected", "user_id", userID, "online", h.presence.Count())

	go h.readLoop(conn, ws)
}

func (h *WSHandler) readLoop(conn *realtime.Connection, ws *websocket.Conn) {
	userID := conn.UserID

	defer func() {
		h.hub.Detach(conn)
		// A replaced session must not mark the user offline while the
		// replacement is still attached.
		if !h.hub.HasUser(userID) {
			h.presence.SetOffline(userID)
		}
		logger.Info("User disconnected", "user_id", userID)
	}()

	ws.SetReadLimit(readLimit)
	_ = ws.SetReadDeadline(time.Now().Add(readDeadline))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(readDeadline))
	})

	for {
		var frame inboundFrame
		if err := ws.ReadJSON(&frame); err != nil {
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(readDeadline))

		h.dispatch(conn, frame)
	}
}

func (h *WSHandler) dispatch(conn *realtime.Connection, frame inboundFrame) {
	ctx := context.Background()
	userID := conn.UserID

	switch frame.Action {
	case actionJoin:
		if frame.PeerID == 0 {
			h.sendError(conn, errors.New(errors.ErrCodeValidationFailed, "peerId is required"))
			return
		}
		h.hub.Subscribe(realtime.PairTopic(userID, frame.PeerID), conn)
		h.hub.Subscribe(realtime.TypingTopic(userID, frame.PeerID), conn)

	case actionLeave:
		if frame.PeerID == 0 {
			return
		}
		h.hub.Unsubscribe(realtime.PairTopic(userID, frame.PeerID), conn)
		h.hub.Unsubscribe(realtime.TypingTopic(userID, frame.PeerID), conn)

	case actionSend:
		_, err := h.chat.SendMessage(ctx, services.SendMessageInput{
			SenderID:        frame.SenderID,
			AuthenticatedID: userID,
			ReceiverID:      frame.PeerID,
			Content:         frame.Content,
			Type:            frame.Type,
		})
		if err != nil {
			h.sendError(conn, err)
		}

	case actionSeen:
		if _, err := h.chat.MarkSeen(ctx, frame.MessageID, userID); err != nil {
			h.sendError(conn, err)
		}

	case actionTyping:
		if frame.PeerID == 0 {
			return
		}
		h.chat.Typing(ctx, userID, frame.PeerID)

	case actionDelete:
		if _, err := h.chat.DeleteMessage(ctx, frame.MessageID, userID); err != nil {
			h.sendError(conn, err)
		}

	case actionEdit:
		if _, err := h.chat.EditMessage(ctx, frame.MessageID, userID, frame.Content); err != nil {
			h.sendError(conn, err)
		}

	default:
		h.sendError(conn, errors.New(errors.ErrCodeValidationFailed, "unknown action"))
	}
}

func (h *WSHandler) sendError(conn *realtime.Connection, err error) {
	frame := errorFrame{
		Event: "error",
		Code:  errors.Code(err),
		Error: err.Error(),
	}
	if appErr, ok := err.(*errors.AppError); ok {
		frame.Error = appErr.Message
	}

	payload, marshalErr := json.Marshal(frame)
	if marshalErr != nil {
		return
	}
	_ = conn.Send(payload)
}
