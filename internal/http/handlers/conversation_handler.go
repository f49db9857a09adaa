// Conversation HTTP handlers.
//
// This file exposes the post-match messaging endpoints:
//   - GET  /conversations                  (overview, ordered by activity)
//   - GET  /conversations/{id}             (open one; marks incoming as read)
//   - POST /conversations/{id}/messages    (send)
//
// The realtime counterpart of these endpoints lives in ws_handler.go.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SendMessageRequest is the JSON payload for sending a chat message.
type SendMessageRequest struct {
	// Content is the message text. Whitespace-only content is rejected.
	Content string `json:"content" binding:"required" example:"Pochi would love a walk in Yoyogi park!"`
}

// ListConversations godoc
// @ID          listConversations
// @Summary     List conversations
// @Description Returns the user's conversation overview: counterpart card, last message, unread count, and a relative activity label, ordered by most recent activity.
// @Tags        Conversations
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {array}   services.ConversationSummary
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /conversations [get]
func (h *Handlers) ListConversations(c *gin.Context) {
	out, err := h.Conversations.List(c.Request.Context(), userID(c))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

// OpenConversation godoc
// @ID          openConversation
// @Summary     Open a conversation
// @Description Returns the full history of a match grouped by calendar day and marks every unread incoming message as read.
// @Tags        Conversations
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Match ID (UUID)"        format(uuid)
//
// @Success     200  {object}  services.Conversation
// @Failure     403  {object}  handlers.ErrorResponse  "Not a participant"
// @Failure     404  {object}  handlers.ErrorResponse  "Match not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /conversations/{id} [get]
func (h *Handlers) OpenConversation(c *gin.Context) {
	conv, err := h.Conversations.Open(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, conv)
}

// SendMessage godoc
// @ID          sendMessage
// @Summary     Send a chat message
// @Description Appends a message to the conversation and fans it out to connected participants.
// @Tags        Conversations
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Match ID (UUID)"        format(uuid)
// @Param       body       body    handlers.SendMessageRequest  true  "Message payload"
//
// @Success     201  {object}  domain.Message
// @Failure     400  {object}  handlers.ErrorResponse  "Empty or oversized message"
// @Failure     403  {object}  handlers.ErrorResponse  "Not a participant"
// @Failure     404  {object}  handlers.ErrorResponse  "Match not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /conversations/{id}/messages [post]
func (h *Handlers) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeEmptyMessage, "content required")
		return
	}

	msg, err := h.Conversations.Send(c.Request.Context(), c.Param("id"), userID(c), req.Content)
	if err != nil {
		failService(c, err)
		return
	}
	messagesTotal.Inc()
	ok(c, http.StatusCreated, msg)
}
