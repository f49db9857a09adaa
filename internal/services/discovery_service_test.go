package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pawmatch/go-dating-backend/internal/domain"
	"github.com/pawmatch/go-dating-backend/internal/repo"
)

func TestBuildQueue_OppositeGenderAndExclusions(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	seedProfile(t, db, "me", domain.GenderMale, base)
	seedProfile(t, db, "f1", domain.GenderFemale, base.Add(1*time.Hour))
	seedProfile(t, db, "f2", domain.GenderFemale, base.Add(2*time.Hour))
	seedProfile(t, db, "f3", domain.GenderFemale, base.Add(3*time.Hour))
	seedProfile(t, db, "m1", domain.GenderMale, base.Add(4*time.Hour)) // same gender, excluded

	ctx := context.Background()
	if _, err := repo.CreateLike(ctx, db, "me", "f1"); err != nil {
		t.Fatalf("seed like: %v", err)
	}
	if _, err := repo.CreatePass(ctx, db, "me", "f2"); err != nil {
		t.Fatalf("seed pass: %v", err)
	}

	svc := &DiscoveryService{DB: db}
	q, err := svc.BuildQueue(ctx, "me")
	if err != nil {
		t.Fatalf("BuildQueue: %v", err)
	}
	if q.Remaining() != 1 {
		t.Fatalf("Remaining = %d, want 1", q.Remaining())
	}
	card, ok := q.Next()
	if !ok || card.ID != "f3" {
		t.Fatalf("Next = (%q, %v), want f3", card.ID, ok)
	}
	if _, ok := q.Next(); ok {
		t.Fatalf("queue should be exhausted")
	}
	if !q.Exhausted() || q.EmptyPool() {
		t.Fatalf("Exhausted/EmptyPool = %v/%v, want true/false", q.Exhausted(), q.EmptyPool())
	}
}

func TestBuildQueue_OtherGenderSeesEveryone(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	seedProfile(t, db, "me", domain.GenderOther, base)
	seedProfile(t, db, "a", domain.GenderMale, base.Add(time.Hour))
	seedProfile(t, db, "b", domain.GenderFemale, base.Add(2*time.Hour))
	seedProfile(t, db, "c", domain.GenderOther, base.Add(3*time.Hour))

	svc := &DiscoveryService{DB: db}
	q, err := svc.BuildQueue(context.Background(), "me")
	if err != nil {
		t.Fatalf("BuildQueue: %v", err)
	}
	if q.Remaining() != 3 {
		t.Fatalf("Remaining = %d, want 3", q.Remaining())
	}
}

func TestBuildQueue_ExcludesIncompleteAndSelf(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	seedProfile(t, db, "me", domain.GenderFemale, base)
	incomplete := seedProfile(t, db, "m1", domain.GenderMale, base.Add(time.Hour))
	if err := db.Model(incomplete).Update("is_complete", false).Error; err != nil {
		t.Fatalf("mark incomplete: %v", err)
	}

	svc := &DiscoveryService{DB: db}
	q, err := svc.BuildQueue(context.Background(), "me")
	if err != nil {
		t.Fatalf("BuildQueue: %v", err)
	}
	if !q.EmptyPool() {
		t.Fatalf("EmptyPool = false, want true")
	}
	if q.Exhausted() {
		t.Fatalf("an empty pool is not an exhausted queue")
	}
}

func TestBuildQueue_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := &DiscoveryService{DB: db}
	if _, err := svc.BuildQueue(context.Background(), "ghost"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestBuildQueue_QueueSizeCapAndCards(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	seedProfile(t, db, "me", domain.GenderMale, base)
	for i, id := range []string{"f1", "f2", "f3"} {
		seedProfile(t, db, id, domain.GenderFemale, base.Add(time.Duration(i+1)*time.Hour))
	}
	seedDog(t, db, "f3", "Hachi")

	svc := &DiscoveryService{
		DB:         db,
		QueueSize:  2,
		ResolveURL: func(ref string) string { return "https://cdn.example.com/" + ref },
		Now:        func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) },
	}
	q, err := svc.BuildQueue(context.Background(), "me")
	if err != nil {
		t.Fatalf("BuildQueue: %v", err)
	}
	if q.Remaining() != 2 {
		t.Fatalf("Remaining = %d, want 2 (capped)", q.Remaining())
	}

	// Newest first: f3 leads and carries its dog's resolved photo.
	card, _ := q.Peek()
	if card.ID != "f3" {
		t.Fatalf("first card = %q, want f3", card.ID)
	}
	if card.DogName != "Hachi" {
		t.Fatalf("DogName = %q, want Hachi", card.DogName)
	}
	if card.DogPhotoURL != "https://cdn.example.com/dogs/Hachi.jpg" {
		t.Fatalf("DogPhotoURL = %q", card.DogPhotoURL)
	}
	if card.Age != 29 { // born 1995-03-10, as of 2024-06-15
		t.Fatalf("Age = %d, want 29", card.Age)
	}
}

func TestQueue_CardsIsACopy(t *testing.T) {
	q := &Queue{cards: []ProfileCard{{ID: "a"}, {ID: "b"}}}

	cards := q.Cards()
	cards[0].ID = "mutated"

	got, ok := q.Next()
	if !ok || got.ID != "a" {
		t.Fatalf("Next after caller mutation = (%q, %v), want a", got.ID, ok)
	}
	if q.Remaining() != 1 {
		t.Fatalf("Remaining = %d, want 1", q.Remaining())
	}
}

func TestQueue_ForwardOnly(t *testing.T) {
	q := &Queue{cards: []ProfileCard{{ID: "a"}, {ID: "b"}}}

	first, _ := q.Next()
	second, _ := q.Next()
	if first.ID != "a" || second.ID != "b" {
		t.Fatalf("consumption order = %q,%q", first.ID, second.ID)
	}
	if _, ok := q.Peek(); ok {
		t.Fatalf("Peek after exhaustion should report empty")
	}
	if got := q.Remaining(); got != 0 {
		t.Fatalf("Remaining = %d, want 0", got)
	}
}
