// Swipe HTTP handlers.
//
// This file exposes the swipe decision endpoints:
//   - POST /swipes/like
//   - POST /swipes/pass
//   - GET  /admirers
//
// Replayed swipes are success-shaped: liking the same profile twice returns
// the same "no new match" response as the first time the reciprocal was
// missing, and a repeated pass is a 204 either way. Clients can retry freely.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawmatch/go-dating-backend/internal/services"
)

// SwipeRequest is the JSON payload for both swipe endpoints.
type SwipeRequest struct {
	// TargetID is the profile being swiped on.
	TargetID string `json:"target_id" binding:"required" example:"4f3a2b1c-5d6e-7f80-9a0b-1c2d3e4f5a6b"`
}

// Like godoc
// @ID          likeProfile
// @Summary     Like a profile
// @Description Records a like and reports whether it completed a mutual match. Replaying a like is harmless and returns matched=false.
// @Tags        Swipes
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.SwipeRequest  true  "Swipe payload"
//
// @Success     200  {object}  services.SwipeResult
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request / self swipe"
// @Failure     404  {object}  handlers.ErrorResponse  "Target profile not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /swipes/like [post]
func (h *Handlers) Like(c *gin.Context) {
	var req SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "target_id required")
		return
	}

	res, err := h.Swipes.Like(c.Request.Context(), userID(c), req.TargetID)
	if err != nil {
		// A replayed like is not a failure: respond as if the like landed
		// and no new match resulted.
		if errors.Is(err, services.ErrDuplicateLike) {
			ok(c, http.StatusOK, &services.SwipeResult{Matched: false})
			return
		}
		failService(c, err)
		return
	}
	swipesTotal.WithLabelValues("like").Inc()
	if res.Matched {
		matchesTotal.Inc()
	}
	ok(c, http.StatusOK, res)
}

// Pass godoc
// @ID          passProfile
// @Summary     Pass on a profile
// @Description Records a pass, permanently removing the profile from the user's queue. Replays are no-ops.
// @Tags        Swipes
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.SwipeRequest  true  "Swipe payload"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request / self swipe"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /swipes/pass [post]
func (h *Handlers) Pass(c *gin.Context) {
	var req SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "target_id required")
		return
	}

	if err := h.Swipes.Pass(c.Request.Context(), userID(c), req.TargetID); err != nil {
		failService(c, err)
		return
	}
	swipesTotal.WithLabelValues("pass").Inc()
	noContent(c)
}

// Admirers godoc
// @ID          listAdmirers
// @Summary     List admirers
// @Description Returns cards for users who liked the current user but are not matched with them yet, newest like first.
// @Tags        Swipes
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {array}   services.ProfileCard
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admirers [get]
func (h *Handlers) Admirers(c *gin.Context) {
	cards, err := h.Swipes.Admirers(c.Request.Context(), userID(c))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, cards)
}
