// Discovery HTTP handlers.
//
// This file exposes the candidate queue endpoint:
//   - GET /discovery/queue
//
// The queue is computed fresh per request; the client consumes it locally,
// card by card, and reports decisions through the swipe endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawmatch/go-dating-backend/internal/services"
	"github.com/pawmatch/go-dating-backend/internal/utils"
)

// QueueResponse is the payload of GET /discovery/queue.
//
// EmptyPool distinguishes "nobody matches your filter" from a queue the user
// has merely swiped through; clients present the two states differently.
type QueueResponse struct {
	Cards     []services.ProfileCard `json:"cards"`
	EmptyPool bool                   `json:"empty_pool"`
}

// GetQueue godoc
// @ID          getDiscoveryQueue
// @Summary     Get the swipe candidate queue
// @Description Builds the current user's candidate queue: complete opposite-gender profiles they have not swiped on yet, newest members first.
// @Tags        Discovery
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       limit      query   int     false "Trim the queue to at most this many cards"
//
// @Success     200  {object}  handlers.QueueResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Profile not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /discovery/queue [get]
func (h *Handlers) GetQueue(c *gin.Context) {
	q, err := h.Discovery.BuildQueue(c.Request.Context(), userID(c))
	if err != nil {
		failService(c, err)
		return
	}
	cards := q.Cards()
	if cards == nil {
		cards = []services.ProfileCard{}
	}
	// Optional client-side cap below the configured queue size.
	if limit := utils.AtoiDefault(c.Query("limit"), 0); limit > 0 && limit < len(cards) {
		cards = cards[:limit]
	}
	ok(c, http.StatusOK, QueueResponse{Cards: cards, EmptyPool: q.EmptyPool()})
}
