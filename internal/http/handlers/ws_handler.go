// Realtime conversation transport.
//
// This file exposes the websocket endpoint:
//   - GET /conversations/{id}/ws
//
// The socket is one-directional per concern: the server pushes committed
// messages from the conversation feed down the wire, and accepts "send"
// frames up the wire which go through the exact same service path as the
// REST endpoint. Read flags for incoming messages are settled by the feed
// itself, so a connected client never has to ack reads explicitly.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/pawmatch/go-dating-backend/internal/http/middleware"
	"github.com/pawmatch/go-dating-backend/internal/realtime"
	"github.com/pawmatch/go-dating-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1 << 10,
	WriteBufferSize: 4 << 10,
	// Browser clients connect cross-origin from the app frontend; CORS
	// posture is enforced at the router level.
	CheckOrigin: func(*http.Request) bool { return true },
}

// wsInbound is the single frame type clients may send.
type wsInbound struct {
	Action  string `json:"action"` // "send"
	Content string `json:"content"`
}

// wsError is pushed down the socket when an inbound frame is rejected.
type wsError struct {
	Type string `json:"type"` // always "error"
	Code string `json:"code"`
}

// ConversationSocket godoc
// @ID          conversationSocket
// @Summary     Live conversation stream
// @Description Upgrades to a websocket that pushes the match's new messages as JSON and accepts {"action":"send","content":...} frames.
// @Tags        Conversations
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Match ID (UUID)"        format(uuid)
//
// @Success     101  {string}  string  "Switching Protocols"
// @Failure     403  {object}  handlers.ErrorResponse  "Not a participant"
// @Failure     404  {object}  handlers.ErrorResponse  "Match not found"
// @Router      /conversations/{id}/ws [get]
func (h *Handlers) ConversationSocket(c *gin.Context) {
	matchID := c.Param("id")
	uid := userID(c)

	// Authorize before upgrading; Open also settles pending read flags so
	// the socket starts from a clean state.
	if _, err := h.Conversations.Open(c.Request.Context(), matchID, uid); err != nil {
		failService(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote its own response.
		return
	}

	lg := middleware.LoggerFrom(c)
	feed := realtime.NewFeed(h.Hub, h.Conversations, matchID, uid)
	wsConnections.Inc()

	defer func() {
		feed.Close()
		_ = conn.Close()
		wsConnections.Dec()
	}()

	ctx := c.Request.Context()

	// All outbound frames funnel through one channel drained by a single
	// goroutine: gorilla/websocket allows at most one concurrent writer per
	// connection.
	out := make(chan any, 16)
	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		for frame := range out {
			if err := conn.WriteJSON(frame); err != nil {
				lg.Debug().Err(err).Str("match_id", matchID).Msg("ws write failed")
				_ = conn.Close() // unblock the read loop
				return
			}
		}
	}()

	// Pump committed feed messages onto the outbound channel.
	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		for {
			msg, ok := feed.Next(ctx)
			if !ok {
				return
			}
			select {
			case out <- msg:
			case <-writeDone:
				return
			}
		}
	}()

	enqueue := func(frame any) {
		select {
		case out <- frame:
		case <-writeDone:
		}
	}

	// Reader: accept "send" frames until the client disconnects.
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var in wsInbound
		if err := json.Unmarshal(raw, &in); err != nil || in.Action != "send" {
			enqueue(wsError{Type: "error", Code: ErrCodeBadRequest})
			continue
		}
		if _, err := h.Conversations.Send(ctx, matchID, uid, in.Content); err != nil {
			enqueue(wsError{Type: "error", Code: wsSendErrorCode(err)})
			continue
		}
		messagesTotal.Inc()
	}

	// Stop the feed first so the pump drains out, then retire the writer.
	feed.Close()
	<-pumpDone
	close(out)
	<-writeDone
}

// wsSendErrorCode maps send failures to the shared error code taxonomy.
func wsSendErrorCode(err error) string {
	switch {
	case errors.Is(err, services.ErrEmptyMessage):
		return ErrCodeEmptyMessage
	case errors.Is(err, services.ErrMessageTooLong):
		return ErrCodeMessageTooLong
	case errors.Is(err, services.ErrNotParticipant):
		return ErrCodeNotParticipant
	case errors.Is(err, services.ErrMatchNotFound):
		return ErrCodeNotFound
	default:
		return ErrCodeInternal
	}
}
