// Package services – SwipeService
//
// This file implements the SwipeService, which records swipe decisions and
// detects mutual interest. A like inserts the directional edge, checks the
// reciprocal direction, and — when both directions exist — creates the match
// on the canonical pair inside the same transaction.
//
// Idempotence is structural, not procedural: both the like table and the
// match table carry unique indexes, so replays and racing double-creations
// lose on the constraint instead of producing extra rows. The service remaps
// a losing match insert to "already matched, proceed as success"; a losing
// like insert surfaces as ErrDuplicateLike for the handler to no-op.
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

// SwipeService implements the like/pass/match use-cases.
type SwipeService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// ResolveURL maps stored image references to display URLs for the
	// matched-profile card. Identity when nil.
	ResolveURL func(string) string

	// Now is a clock seam for tests. time.Now when nil.
	Now func() time.Time
}

// SwipeResult is the discriminated outcome of a like: either "no match yet,
// keep swiping" or "matched" with everything the caller needs to open the
// new conversation.
type SwipeResult struct {
	Matched bool         `json:"matched"`
	MatchID string       `json:"match_id,omitempty"`
	Profile *ProfileCard `json:"profile,omitempty"`
}

// Like records a like from likerID to likedID and reports whether it
// completed a mutual match.
//
// Semantics:
//   - likerID == likedID is rejected with ErrSelfSwipe.
//   - likedID must have a profile; otherwise ErrProfileNotFound.
//   - A replayed like returns ErrDuplicateLike and writes nothing. Handlers
//     treat this as success with no new match.
//   - When the reciprocal like exists, the match is created on the canonical
//     pair. If a concurrent completion got there first, the existing match is
//     loaded and returned as a normal "matched" result.
//
// The like insert, reciprocal check, and match insert run in one transaction
// so a crash cannot leave a mutual pair without its match.
func (s *SwipeService) Like(ctx context.Context, likerID, likedID string) (*SwipeResult, error) {
	tr := otel.Tracer("services/SwipeService")
	ctx, span := tr.Start(ctx, "Like",
		trace.WithAttributes(
			attribute.String("swipe.liker_id", likerID),
			attribute.String("swipe.liked_id", likedID),
		),
	)
	defer span.End()

	if likerID == likedID {
		return nil, ErrSelfSwipe
	}

	liked, err := repo.GetProfile(ctx, s.DB, likedID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	res := &SwipeResult{}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.CreateLike(ctx, tx, likerID, likedID); err != nil {
			if isDuplicate(err) {
				return ErrDuplicateLike
			}
			return err
		}

		reciprocal, err := repo.LikeExists(ctx, tx, likedID, likerID)
		if err != nil {
			return err
		}
		if !reciprocal {
			return nil
		}

		m, err := repo.CreateMatch(ctx, tx, likerID, likedID)
		if err != nil {
			if !isDuplicate(err) {
				return err
			}
			// Lost the race against the other direction's completion:
			// the match row exists, load it and proceed as success.
			m, err = repo.GetMatchByPair(ctx, tx, likerID, likedID)
			if err != nil {
				return err
			}
		}
		res.Matched = true
		res.MatchID = m.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Matched {
		dogs, err := repo.ListDogsByOwner(ctx, s.DB, likedID)
		if err != nil {
			// The match is committed; a card without dog details beats
			// failing the whole swipe.
			dogs = nil
		}
		card := newProfileCard(*liked, dogs, s.now(), s.ResolveURL)
		res.Profile = &card
	}
	span.SetAttributes(attribute.Bool("swipe.matched", res.Matched))
	return res, nil
}

// Pass records a pass (dislike) from passerID to passedID, permanently
// excluding the profile from the passer's future queues. Replays are no-ops;
// a pass never creates a match and has no reciprocal semantics.
func (s *SwipeService) Pass(ctx context.Context, passerID, passedID string) error {
	tr := otel.Tracer("services/SwipeService")
	ctx, span := tr.Start(ctx, "Pass",
		trace.WithAttributes(
			attribute.String("swipe.passer_id", passerID),
			attribute.String("swipe.passed_id", passedID),
		),
	)
	defer span.End()

	if passerID == passedID {
		return ErrSelfSwipe
	}
	if _, err := repo.CreatePass(ctx, s.DB, passerID, passedID); err != nil {
		if isDuplicate(err) {
			return nil
		}
		return err
	}
	return nil
}

// Admirers returns cards for users who liked userID and are not matched with
// them yet — the "who likes me" screen. Ordered by like recency.
func (s *SwipeService) Admirers(ctx context.Context, userID string) ([]ProfileCard, error) {
	tr := otel.Tracer("services/SwipeService")
	ctx, span := tr.Start(ctx, "Admirers",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	likerIDs, err := repo.ListLikerIDs(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	if len(likerIDs) == 0 {
		return []ProfileCard{}, nil
	}

	matches, err := repo.ListMatchesForUser(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	matched := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		matched[m.Counterpart(userID)] = struct{}{}
	}

	pending := likerIDs[:0]
	for _, id := range likerIDs {
		if _, ok := matched[id]; !ok {
			pending = append(pending, id)
		}
	}
	if len(pending) == 0 {
		return []ProfileCard{}, nil
	}

	profiles, err := repo.ListProfilesByIDs(ctx, s.DB, pending)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	now := s.now()
	out := make([]ProfileCard, 0, len(pending))
	for _, id := range pending { // preserve like recency order
		p, ok := byID[id]
		if !ok {
			continue
		}
		dogs, err := repo.ListDogsByOwner(ctx, s.DB, id)
		if err != nil {
			return nil, err
		}
		out = append(out, newProfileCard(p, dogs, now, s.ResolveURL))
	}
	return out, nil
}

func (s *SwipeService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
