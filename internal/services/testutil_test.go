package services

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pawmatch/go-dating-backend/internal/domain"
	"github.com/pawmatch/go-dating-backend/internal/repo"
)

// newTestDB opens a throwaway SQLite database with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("svc_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// seedProfile inserts a complete profile. created controls pool ordering.
func seedProfile(t *testing.T, db *gorm.DB, id, gender string, created time.Time) *domain.Profile {
	t.Helper()
	p := &domain.Profile{
		ID:          id,
		DisplayName: "user-" + id,
		DateOfBirth: time.Date(1995, 3, 10, 0, 0, 0, 0, time.UTC),
		Gender:      gender,
		Prefecture:  "Tokyo",
		City:        "Shibuya",
		IsComplete:  true,
		CreatedAt:   created,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed profile %s: %v", id, err)
	}
	return p
}

// seedDog inserts a dog with one photo for the owner.
func seedDog(t *testing.T, db *gorm.DB, ownerID, name string) *domain.Dog {
	t.Helper()
	d := &domain.Dog{
		ID:        ownerID + "-dog-" + name,
		OwnerID:   ownerID,
		Name:      name,
		Breed:     "Shiba Inu",
		Gender:    domain.GenderMale,
		Size:      domain.SizeSmall,
		AgeYears:  2,
		PhotoURLs: domain.StringList{"dogs/" + name + ".jpg"},
		CreatedAt: time.Now().UTC(),
	}
	if err := db.Create(d).Error; err != nil {
		t.Fatalf("seed dog %s: %v", name, err)
	}
	return d
}

// seedMatch inserts a match for the pair in canonical order.
func seedMatch(t *testing.T, db *gorm.DB, id, a, b string, created time.Time) *domain.Match {
	t.Helper()
	u1, u2 := domain.CanonicalPair(a, b)
	m := &domain.Match{ID: id, User1ID: u1, User2ID: u2, CreatedAt: created}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed match %s: %v", id, err)
	}
	return m
}

// seedMessage inserts a message with an explicit timestamp.
func seedMessage(t *testing.T, db *gorm.DB, id, matchID, senderID, content string, created time.Time) *domain.Message {
	t.Helper()
	msg := &domain.Message{
		ID:        id,
		MatchID:   matchID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: created,
	}
	if err := db.Create(msg).Error; err != nil {
		t.Fatalf("seed message %s: %v", id, err)
	}
	return msg
}
