package realtime

import (
	"context"
	"sync"

	"github.com/pawmatch/go-dating-backend/internal/domain"
)

// ReadMarker marks a single received message as read on behalf of a reader.
// Implemented by the conversation service.
type ReadMarker interface {
	MarkIncomingRead(ctx context.Context, matchID, readerID, messageID string) error
}

// Feed is the per-viewer view of a live conversation. It wraps a hub
// subscription with the two client-side behaviors of an open chat screen:
// each message is appended exactly once even if the transport replays it, and
// counterpart messages are marked read the moment they arrive, since the
// viewer is looking at the conversation.
type Feed struct {
	matchID  string
	viewerID string
	sub      *Subscription
	marker   ReadMarker

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewFeed opens a live feed on matchID for viewerID. marker may be nil when
// arrival-time read marking is not wanted.
func NewFeed(hub *Hub, marker ReadMarker, matchID, viewerID string) *Feed {
	return &Feed{
		matchID:  matchID,
		viewerID: viewerID,
		sub:      hub.Subscribe(matchID),
		marker:   marker,
		seen:     make(map[string]struct{}),
	}
}

// Next blocks until the next message arrives or the feed shuts down. The
// second result is false when the underlying subscription is closed.
//
// Duplicate deliveries of a message id are swallowed. A counterpart message
// is marked read before being returned; a failed mark is ignored — the open
// handler will settle the flag on the next full load.
func (f *Feed) Next(ctx context.Context) (domain.Message, bool) {
	for {
		select {
		case <-ctx.Done():
			return domain.Message{}, false
		case msg, ok := <-f.sub.C:
			if !ok {
				return domain.Message{}, false
			}
			if f.duplicate(msg.ID) {
				continue
			}
			if f.marker != nil && msg.SenderID != f.viewerID {
				_ = f.marker.MarkIncomingRead(ctx, f.matchID, f.viewerID, msg.ID)
				msg.IsRead = true
			}
			return msg, true
		}
	}
}

// Close releases the underlying subscription.
func (f *Feed) Close() { f.sub.Close() }

func (f *Feed) duplicate(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.seen[id]; ok {
		return true
	}
	f.seen[id] = struct{}{}
	return false
}
