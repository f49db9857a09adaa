// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Match model.
//
// Matches are always written in canonical order (domain.CanonicalPair) under
// a unique pair index. CreateMatch is therefore insert-or-conflict: when two
// mutual-like completions race, exactly one insert wins and the loser gets a
// constraint violation to treat as "already exists".
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawmatch/go-dating-backend/internal/domain"
)

// CreateMatch inserts the match row for the unordered pair {a, b}, storing
// the ids in canonical order. A duplicate pair fails on the unique index; the
// raw gorm error is propagated for the service layer to classify.
func CreateMatch(ctx context.Context, db *gorm.DB, a, b string) (*domain.Match, error) {
	u1, u2 := domain.CanonicalPair(a, b)
	m := &domain.Match{
		ID:        uuid.NewString(),
		User1ID:   u1,
		User2ID:   u2,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// GetMatch fetches a match by id, or ErrNotFound if missing.
func GetMatch(ctx context.Context, db *gorm.DB, id string) (*domain.Match, error) {
	var m domain.Match
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMatchByPair fetches the match for the unordered pair {a, b}, or
// ErrNotFound when the two users are not matched.
func GetMatchByPair(ctx context.Context, db *gorm.DB, a, b string) (*domain.Match, error) {
	u1, u2 := domain.CanonicalPair(a, b)
	var m domain.Match
	err := db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", u1, u2).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMatchesForUser returns all matches involving userID, most recently
// active first (falling back to creation time for matches without messages).
func ListMatchesForUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Match, error) {
	var out []domain.Match
	err := db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("COALESCE(last_message_at, created_at) desc").
		Find(&out).Error
	return out, err
}

// TouchLastMessage advances the match's last-activity timestamp. It is an
// ordering hint only: senders ignore a failure here because the message row
// is already committed and visible.
//
// The update is monotonic. Concurrent senders can reach this out of commit
// order, so an older timestamp never overwrites a newer one.
func TouchLastMessage(ctx context.Context, db *gorm.DB, matchID string, at time.Time) error {
	at = at.UTC()
	res := db.WithContext(ctx).
		Model(&domain.Match{}).
		Where("id = ? AND (last_message_at IS NULL OR last_message_at < ?)", matchID, at).
		Update("last_message_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Zero rows means either a stale touch (fine) or a missing match;
		// keep the not-found signal for the latter.
		var n int64
		if err := db.WithContext(ctx).Model(&domain.Match{}).Where("id = ?", matchID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}
