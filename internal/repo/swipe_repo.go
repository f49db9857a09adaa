// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the directional
// swipe edges: likes and passes.
//
// Both tables carry a unique index on the ordered pair, so "insert" is the
// conflict check: a duplicate swipe surfaces as a constraint violation rather
// than a read-then-write race. Callers (services) translate that violation
// into their idempotence semantics.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawmatch/go-dating-backend/internal/domain"
)

// CreateLike inserts a like edge from likerID to likedID. A duplicate ordered
// pair fails on the unique index; the raw gorm error is propagated for the
// service layer to classify.
func CreateLike(ctx context.Context, db *gorm.DB, likerID, likedID string) (*domain.Like, error) {
	l := &domain.Like{
		ID:        uuid.NewString(),
		LikerID:   likerID,
		LikedID:   likedID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

// LikeExists reports whether a like edge exists for the ordered pair
// (likerID, likedID). Used to detect the reciprocal direction.
func LikeExists(ctx context.Context, db *gorm.DB, likerID, likedID string) (bool, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("liker_id = ? AND liked_id = ?", likerID, likedID).
		Count(&total).Error
	return total > 0, err
}

// ListLikedIDs returns the ids userID has liked, for discovery exclusion.
func ListLikedIDs(ctx context.Context, db *gorm.DB, userID string) ([]string, error) {
	var out []string
	err := db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("liker_id = ?", userID).
		Pluck("liked_id", &out).Error
	return out, err
}

// ListLikerIDs returns the ids of users who liked userID, newest first.
// Feeds the admirers screen.
func ListLikerIDs(ctx context.Context, db *gorm.DB, userID string) ([]string, error) {
	var out []string
	err := db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("liked_id = ?", userID).
		Order("created_at desc").
		Pluck("liker_id", &out).Error
	return out, err
}

// CreatePass inserts a pass edge from passerID to passedID. Duplicates fail
// on the unique index, same as likes.
func CreatePass(ctx context.Context, db *gorm.DB, passerID, passedID string) (*domain.Pass, error) {
	p := &domain.Pass{
		ID:        uuid.NewString(),
		PasserID:  passerID,
		PassedID:  passedID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListPassedIDs returns the ids userID has passed on, for discovery exclusion.
func ListPassedIDs(ctx context.Context, db *gorm.DB, userID string) ([]string, error) {
	var out []string
	err := db.WithContext(ctx).
		Model(&domain.Pass{}).
		Where("passer_id = ?", userID).
		Pluck("passed_id", &out).Error
	return out, err
}
