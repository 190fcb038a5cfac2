package ws

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// FeedHandler serves GET /ws/questions: clients subscribe and receive
// question change events. The only inbound message understood is ping.
type FeedHandler struct {
	hub    *Hub
	logger zerolog.Logger
}

func NewFeedHandler(hub *Hub, logger zerolog.Logger) *FeedHandler {
	return &FeedHandler{
		hub:    hub,
		logger: logger.With().Str("component", "question_feed").Logger(),
	}
}

func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn := NewConnection(raw, h.logger)
	id := h.hub.Register(conn)
	go conn.WritePump()

	conn.ReadPump(func(msg Message) error {
		switch msg.Type {
		case TypePing:
			return conn.Send(Message{Type: TypePong, RequestID: msg.RequestID})
		default:
			return conn.SendError(msg.RequestID, httperrors.ErrCodeUnknownMessageType,
				fmt.Sprintf("Unknown message type: %s", msg.Type))
		}
	})

	h.hub.Unregister(id)
}
