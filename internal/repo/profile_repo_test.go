package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/pawmatch/go-dating-backend/internal/domain"
)

func TestCreateAndGetProfile(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p := seedProfile(t, db, "u1", domain.GenderMale, true)

	got, err := GetProfile(ctx, db, "u1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.DisplayName != p.DisplayName || got.Gender != domain.GenderMale {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}

	if _, err := GetProfile(ctx, db, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestListCandidates_Filters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedProfile(t, db, "f1", domain.GenderFemale, true)
	seedProfile(t, db, "f2", domain.GenderFemale, true)
	seedProfile(t, db, "f3", domain.GenderFemale, false) // incomplete, never shown
	seedProfile(t, db, "m1", domain.GenderMale, true)

	got, err := ListCandidates(ctx, db, CandidateFilter{
		Gender:     domain.GenderFemale,
		ExcludeIDs: []string{"f2"},
	})
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	if len(got) != 1 || got[0].ID != "f1" {
		t.Fatalf("expected only f1, got %+v", got)
	}
}

func TestListCandidates_NoGenderFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedProfile(t, db, "f1", domain.GenderFemale, true)
	seedProfile(t, db, "m1", domain.GenderMale, true)
	seedProfile(t, db, "o1", domain.GenderOther, true)

	got, err := ListCandidates(ctx, db, CandidateFilter{ExcludeIDs: []string{"o1"}})
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected unfiltered pool minus exclusions, got %+v", got)
	}
}

func TestListCandidates_Limit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		seedProfile(t, db, id, domain.GenderFemale, true)
	}

	got, err := ListCandidates(ctx, db, CandidateFilter{Limit: 2})
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("limit not applied: %d results", len(got))
	}
}

func TestUpdateProfile_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := UpdateProfile(context.Background(), db, "missing", map[string]any{"bio": "hi"})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDogs_CreateListCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedProfile(t, db, "u1", domain.GenderMale, false)

	first := &domain.Dog{
		OwnerID: "u1", Name: "Pochi", Breed: "Shiba Inu",
		Gender: "male", Size: domain.SizeSmall,
		AgeYears: 2, AgeMonths: 3,
		PhotoURLs: domain.StringList{"dogs/u1/pochi.jpg"},
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	if err := CreateDog(ctx, db, first); err != nil {
		t.Fatalf("CreateDog: %v", err)
	}
	second := &domain.Dog{
		OwnerID: "u1", Name: "Hana", Breed: "Toy Poodle",
		Gender: "female", Size: domain.SizeSmall,
		AgeYears: 1, AgeMonths: 0,
		CreatedAt: time.Now().UTC(),
	}
	if err := CreateDog(ctx, db, second); err != nil {
		t.Fatalf("CreateDog: %v", err)
	}

	dogs, err := ListDogsByOwner(ctx, db, "u1")
	if err != nil {
		t.Fatalf("ListDogsByOwner: %v", err)
	}
	if len(dogs) != 2 || dogs[0].Name != "Pochi" {
		t.Fatalf("expected creation order with Pochi first, got %+v", dogs)
	}
	if dogs[0].PrimaryPhoto() != "dogs/u1/pochi.jpg" {
		t.Fatalf("primary photo lost: %+v", dogs[0])
	}

	total, err := CountDogs(ctx, db, "u1")
	if err != nil || total != 2 {
		t.Fatalf("CountDogs = %d, %v; want 2", total, err)
	}
}

func TestVerification_CreateAndHas(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedProfile(t, db, "u1", domain.GenderFemale, false)

	ok, err := HasVerification(ctx, db, "u1")
	if err != nil || ok {
		t.Fatalf("HasVerification before submit = %v, %v; want false", ok, err)
	}

	if _, err := CreateVerification(ctx, db, "u1", "verifications/u1/id.jpg"); err != nil {
		t.Fatalf("CreateVerification: %v", err)
	}

	ok, err = HasVerification(ctx, db, "u1")
	if err != nil || !ok {
		t.Fatalf("HasVerification after submit = %v, %v; want true", ok, err)
	}

	// one submission per profile
	if _, err := CreateVerification(ctx, db, "u1", "verifications/u1/id2.jpg"); err == nil {
		t.Fatal("expected unique violation on second submission")
	}
}
