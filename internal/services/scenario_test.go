package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pawmatch/go-dating-backend/internal/domain"
)

// TestEndToEndFlow walks the whole product loop on one database: two owners
// register, complete onboarding, find each other in discovery, like, match,
// and chat with read tracking.
func TestEndToEndFlow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	profiles := &ProfileService{DB: db}
	discovery := &DiscoveryService{DB: db}
	swipes := &SwipeService{DB: db}
	pub := &capturePublisher{}
	convos := &ConversationService{DB: db, Publisher: pub}

	// Onboarding for both sides.
	taro := registerInput("taro")
	taro.DisplayName = "taro yamada"
	taro.Gender = domain.GenderMale
	for _, in := range []RegisterInput{taro, registerInput("hanako")} {
		if _, err := profiles.Register(ctx, in); err != nil {
			t.Fatalf("register %s: %v", in.ID, err)
		}
		if _, err := profiles.AddDog(ctx, in.ID, dogInput("Pochi")); err != nil {
			t.Fatalf("add dog for %s: %v", in.ID, err)
		}
		if err := profiles.SubmitVerification(ctx, in.ID, "verifications/"+in.ID+".jpg"); err != nil {
			t.Fatalf("verify %s: %v", in.ID, err)
		}
	}

	// Each side sees exactly the other in discovery.
	q, err := discovery.BuildQueue(ctx, "taro")
	if err != nil {
		t.Fatalf("taro queue: %v", err)
	}
	card, ok := q.Next()
	if !ok || card.ID != "hanako" {
		t.Fatalf("taro's queue = (%q, %v), want hanako", card.ID, ok)
	}
	if card.DogName != "Pochi" {
		t.Fatalf("card dog = %q, want Pochi", card.DogName)
	}

	// One-directional like: no match yet, hanako sees an admirer.
	res, err := swipes.Like(ctx, "taro", "hanako")
	if err != nil || res.Matched {
		t.Fatalf("first like = (%+v, %v), want unmatched", res, err)
	}
	admirers, err := swipes.Admirers(ctx, "hanako")
	if err != nil || len(admirers) != 1 || admirers[0].ID != "taro" {
		t.Fatalf("admirers = (%+v, %v), want taro", admirers, err)
	}

	// Reciprocal like completes the match; the liked profile no longer
	// appears in either queue.
	res, err = swipes.Like(ctx, "hanako", "taro")
	if err != nil || !res.Matched {
		t.Fatalf("reciprocal like = (%+v, %v), want matched", res, err)
	}
	matchID := res.MatchID
	if q, err := discovery.BuildQueue(ctx, "hanako"); err != nil || !q.EmptyPool() {
		t.Fatalf("hanako's queue after match should be empty, got %v/%v", q.Remaining(), err)
	}

	// Chat: send, list with unread, open to read, list again.
	if _, err := convos.Send(ctx, matchID, "taro", "hi! Pochi says hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(pub.msgs) != 1 {
		t.Fatalf("published = %d, want 1", len(pub.msgs))
	}

	list, err := convos.List(ctx, "hanako")
	if err != nil || len(list) != 1 {
		t.Fatalf("list = (%+v, %v), want one conversation", list, err)
	}
	if list[0].UnreadCount != 1 {
		t.Fatalf("unread = %d, want 1", list[0].UnreadCount)
	}

	conv, err := convos.Open(ctx, matchID, "hanako")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(conv.Days) != 1 || len(conv.Days[0].Messages) != 1 {
		t.Fatalf("history = %+v, want a single message today", conv.Days)
	}

	list, err = convos.List(ctx, "hanako")
	if err != nil || list[0].UnreadCount != 0 {
		t.Fatalf("unread after open = %d (%v), want 0", list[0].UnreadCount, err)
	}

	// Replays stay idempotent at every step.
	if _, err := swipes.Like(ctx, "taro", "hanako"); !errors.Is(err, ErrDuplicateLike) {
		t.Fatalf("replayed like err = %v, want ErrDuplicateLike", err)
	}
	var matches int64
	db.Model(&domain.Match{}).Count(&matches)
	if matches != 1 {
		t.Fatalf("matches = %d, want exactly 1", matches)
	}
}
