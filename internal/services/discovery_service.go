// Package services – DiscoveryService
//
// This file implements the DiscoveryService, which builds the swipeable
// candidate queue for a user. It derives the pool filter from the user's own
// profile (opposite gender unless the user's gender is "other"), excludes
// everyone the user has already swiped on, and projects the survivors into
// display-ready cards.
//
// The queue is finite, forward-only, and not restartable: once a candidate
// has been consumed it does not reappear within the same queue. An empty pool
// (nobody matched the filter) is a distinct state from an exhausted queue
// (the pool had candidates and the user paged through them all); callers
// present the two differently.
//
// Failure policy: if the store is unreachable the whole build fails closed —
// no partial queues.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pawmatch/go-dating-backend/internal/domain"
	"github.com/pawmatch/go-dating-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DiscoveryService computes candidate queues over the profile store.
type DiscoveryService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// QueueSize caps how many candidates a single queue holds. <= 0 means
	// no cap.
	QueueSize int

	// ResolveURL maps stored image references to display URLs. Identity
	// when nil.
	ResolveURL func(string) string

	// Now is a clock seam for age computation in tests. time.Now when nil.
	Now func() time.Time
}

// Queue is a forward-only sequence of candidate cards. It is a per-session
// object: consumption is strictly sequential and a passed candidate cannot
// reappear.
type Queue struct {
	cards     []ProfileCard
	pos       int
	emptyPool bool
}

// Next returns the next candidate and advances the queue. The second result
// is false when the queue has no candidates left.
func (q *Queue) Next() (ProfileCard, bool) {
	if q.pos >= len(q.cards) {
		return ProfileCard{}, false
	}
	c := q.cards[q.pos]
	q.pos++
	return c, true
}

// Peek returns the next candidate without consuming it.
func (q *Queue) Peek() (ProfileCard, bool) {
	if q.pos >= len(q.cards) {
		return ProfileCard{}, false
	}
	return q.cards[q.pos], true
}

// Remaining reports how many candidates have not been consumed yet.
func (q *Queue) Remaining() int { return len(q.cards) - q.pos }

// Cards returns the full queue contents in order. Intended for transports
// that ship the queue to a client which then consumes it locally. The result
// is a copy: callers may re-slice or mutate it without disturbing the
// queue's own cursor.
func (q *Queue) Cards() []ProfileCard {
	if len(q.cards) == 0 {
		return nil
	}
	out := make([]ProfileCard, len(q.cards))
	copy(out, q.cards)
	return out
}

// EmptyPool reports whether the pool itself had no candidates. False for a
// queue that merely ran out after consumption.
func (q *Queue) EmptyPool() bool { return q.emptyPool }

// Exhausted reports whether a non-empty queue has been fully consumed.
func (q *Queue) Exhausted() bool { return !q.emptyPool && q.pos >= len(q.cards) }

// BuildQueue assembles the candidate queue for userID.
//
// Pool rules:
//   - only complete profiles;
//   - opposite owner gender, or no gender filter when the user's gender is
//     "other";
//   - never the user themselves, anyone they liked, or anyone they passed.
//
// Returns ErrProfileNotFound when the requesting user has no profile. Any
// store failure aborts the build; no partial results are returned.
func (s *DiscoveryService) BuildQueue(ctx context.Context, userID string) (*Queue, error) {
	tr := otel.Tracer("services/DiscoveryService")
	ctx, span := tr.Start(ctx, "BuildQueue",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	me, err := repo.GetProfile(ctx, s.DB, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	liked, err := repo.ListLikedIDs(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	passed, err := repo.ListPassedIDs(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}

	exclude := make([]string, 0, len(liked)+len(passed)+1)
	exclude = append(exclude, userID)
	exclude = append(exclude, liked...)
	exclude = append(exclude, passed...)

	filter := repo.CandidateFilter{
		Gender:     oppositeGender(me.Gender),
		ExcludeIDs: exclude,
		Limit:      s.QueueSize,
	}
	pool, err := repo.ListCandidates(ctx, s.DB, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	q := &Queue{emptyPool: len(pool) == 0}
	for _, p := range pool {
		q.cards = append(q.cards, newProfileCard(p, p.Dogs, now, s.ResolveURL))
	}
	span.SetAttributes(attribute.Int("queue.size", len(q.cards)))
	return q, nil
}

// oppositeGender maps an owner gender to the pool filter. "other" (and any
// unknown value) yields no gender restriction.
func oppositeGender(gender string) string {
	switch gender {
	case domain.GenderMale:
		return domain.GenderFemale
	case domain.GenderFemale:
		return domain.GenderMale
	}
	return ""
}

func (s *DiscoveryService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
