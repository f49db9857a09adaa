// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for profiles, dogs,
// and identity-verification submissions.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a record is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawmatch/go-dating-backend/internal/domain"
)

// CandidateFilter narrows the discovery pool query. Only complete profiles
// are ever returned; the filter adds the gender restriction and the ids the
// current user must never see again (self, liked, passed).
type CandidateFilter struct {
	// Gender restricts the pool to one owner gender. Empty means no gender
	// restriction (used when the requesting user's gender is "other").
	Gender string
	// ExcludeIDs lists profile ids removed from the pool.
	ExcludeIDs []string
	// Limit caps the result size; <= 0 means no cap.
	Limit int
}

// CreateProfile inserts a new profile row. The caller supplies the id, which
// matches the auth provider's user id rather than a generated UUID.
func CreateProfile(ctx context.Context, db *gorm.DB, p *domain.Profile) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(p).Error
}

// GetProfile fetches a single profile by id, or ErrNotFound if missing.
func GetProfile(ctx context.Context, db *gorm.DB, id string) (*domain.Profile, error) {
	var p domain.Profile
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListCandidates returns complete profiles matching the filter, ordered by
// creation time descending so new members surface first. The requesting
// user's own id is expected to be part of filter.ExcludeIDs.
func ListCandidates(ctx context.Context, db *gorm.DB, f CandidateFilter) ([]domain.Profile, error) {
	q := db.WithContext(ctx).
		Preload("Dogs").
		Where("is_complete = ?", true).
		Order("created_at desc")
	if f.Gender != "" {
		q = q.Where("gender = ?", f.Gender)
	}
	if len(f.ExcludeIDs) > 0 {
		q = q.Where("id NOT IN ?", f.ExcludeIDs)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []domain.Profile
	err := q.Find(&out).Error
	return out, err
}

// ListProfilesByIDs fetches the given profiles in one query. Missing ids are
// silently absent from the result; callers decide whether that matters.
func ListProfilesByIDs(ctx context.Context, db *gorm.DB, ids []string) ([]domain.Profile, error) {
	if len(ids) == 0 {
		return []domain.Profile{}, nil
	}
	var out []domain.Profile
	err := db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

// UpdateProfile applies the given column updates to a profile. If no rows are
// affected (profile missing), it returns ErrNotFound.
func UpdateProfile(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetProfileComplete flips the completion flag. Used once registration has
// produced a profile, at least one dog, and a verification submission.
func SetProfileComplete(ctx context.Context, db *gorm.DB, id string, complete bool) error {
	return UpdateProfile(ctx, db, id, map[string]any{"is_complete": complete})
}

// CreateDog inserts a new dog row owned by ownerID with a generated UUID.
func CreateDog(ctx context.Context, db *gorm.DB, d *domain.Dog) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(d).Error
}

// ListDogsByOwner returns the owner's dogs in creation order, so the first
// registered dog stays the primary one shown on cards.
func ListDogsByOwner(ctx context.Context, db *gorm.DB, ownerID string) ([]domain.Dog, error) {
	var out []domain.Dog
	err := db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at asc, id asc").
		Find(&out).Error
	return out, err
}

// CountDogs returns the number of dogs owned by ownerID.
func CountDogs(ctx context.Context, db *gorm.DB, ownerID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Dog{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error
	return total, err
}

// CreateVerification records an identity-document submission for profileID.
// A second submission for the same profile fails on the unique index.
func CreateVerification(ctx context.Context, db *gorm.DB, profileID, documentURL string) (*domain.VerificationSubmission, error) {
	v := &domain.VerificationSubmission{
		ID:          uuid.NewString(),
		ProfileID:   profileID,
		DocumentURL: documentURL,
		SubmittedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// HasVerification reports whether profileID has submitted identity documents.
func HasVerification(ctx context.Context, db *gorm.DB, profileID string) (bool, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.VerificationSubmission{}).
		Where("profile_id = ?", profileID).
		Count(&total).Error
	return total > 0, err
}
