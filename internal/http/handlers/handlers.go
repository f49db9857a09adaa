// Handler wiring shared by all endpoint files.
//
// Handlers are transport-thin: they authenticate, validate and bind input,
// call application services, and translate results (including the service
// error sentinels) into HTTP responses.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pawmatch/go-dating-backend/internal/realtime"
	"github.com/pawmatch/go-dating-backend/internal/services"
	"github.com/pawmatch/go-dating-backend/internal/storage"
)

// Handlers groups the HTTP endpoints for profiles, discovery, swipes, and
// conversations. It depends directly on the concrete services; the services
// themselves are the seam for testing.
type Handlers struct {
	Profiles      *services.ProfileService
	Discovery     *services.DiscoveryService
	Swipes        *services.SwipeService
	Conversations *services.ConversationService
	Hub           *realtime.Hub
	Store         storage.Storage
}

// New constructs a Handlers instance bound to the given services.
func New(
	profiles *services.ProfileService,
	discovery *services.DiscoveryService,
	swipes *services.SwipeService,
	conversations *services.ConversationService,
	hub *realtime.Hub,
	store storage.Storage,
) *Handlers {
	return &Handlers{
		Profiles:      profiles,
		Discovery:     discovery,
		Swipes:        swipes,
		Conversations: conversations,
		Hub:           hub,
		Store:         store,
	}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

// failService maps a service error sentinel to its HTTP status and stable
// code. Unknown errors become opaque 500s; the underlying message is never
// leaked to the client.
func failService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProfileNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "profile not found")
	case errors.Is(err, services.ErrMatchNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "match not found")
	case errors.Is(err, services.ErrSelfSwipe):
		fail(c, http.StatusBadRequest, ErrCodeSelfSwipe, "cannot swipe on your own profile")
	case errors.Is(err, services.ErrNotParticipant):
		fail(c, http.StatusForbidden, ErrCodeNotParticipant, "you are not part of this conversation")
	case errors.Is(err, services.ErrEmptyMessage):
		fail(c, http.StatusBadRequest, ErrCodeEmptyMessage, "message must not be empty")
	case errors.Is(err, services.ErrMessageTooLong):
		fail(c, http.StatusBadRequest, ErrCodeMessageTooLong, "message is too long")
	case errors.Is(err, services.ErrProfileExists):
		fail(c, http.StatusConflict, ErrCodeProfileExists, "profile already registered")
	case errors.Is(err, services.ErrInvalidGender),
		errors.Is(err, services.ErrInvalidDisplayName):
		fail(c, http.StatusBadRequest, ErrCodeInvalidProfile, err.Error())
	case errors.Is(err, services.ErrInvalidDogSize),
		errors.Is(err, services.ErrDogAgeMonths):
		fail(c, http.StatusBadRequest, ErrCodeInvalidDog, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}
