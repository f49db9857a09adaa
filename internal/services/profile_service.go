// Package services – ProfileService
//
// This file implements the ProfileService, which owns onboarding: profile
// registration, dog registration, and the identity verification submission.
// The profile completion flag is recomputed after every onboarding write —
// a profile enters the discovery pool only once the profile itself, at least
// one dog, and a verification submission all exist.
package services

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/pawmatch/go-dating-backend/internal/domain"
	"github.com/pawmatch/go-dating-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ProfileService implements the onboarding use-cases.
type ProfileService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// NameLocale selects the casing rules for display-name normalization.
	// English when unset.
	NameLocale language.Tag
}

// RegisterInput is the payload for profile registration. ID is the caller's
// authenticated user id and becomes the profile's primary key.
type RegisterInput struct {
	ID          string
	DisplayName string
	DateOfBirth time.Time
	Gender      string
	Prefecture  string
	City        string
	Bio         string
	AvatarURL   string
}

// DogInput is the payload for registering a dog under a profile.
type DogInput struct {
	Name         string
	Breed        string
	Gender       string
	Size         string
	AgeYears     int
	AgeMonths    int
	Bio          string
	IsVaccinated bool
	IsNeutered   bool
	Temperament  []string
	PhotoURLs    []string
}

// Register creates the owner profile for input.ID.
//
// Validation: the gender must be one of male/female/other; a blank display
// name is rejected as invalid. Re-registering an existing id returns
// ErrProfileExists. The display name is case-normalized per NameLocale.
func (s *ProfileService) Register(ctx context.Context, input RegisterInput) (*domain.Profile, error) {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "Register",
		trace.WithAttributes(attribute.String("user.id", input.ID)),
	)
	defer span.End()

	name := strings.TrimSpace(input.DisplayName)
	if name == "" {
		return nil, ErrInvalidDisplayName
	}
	if !validOwnerGender(input.Gender) {
		return nil, ErrInvalidGender
	}

	p := &domain.Profile{
		ID:          input.ID,
		DisplayName: cases.Title(s.nameLocale()).String(name),
		DateOfBirth: input.DateOfBirth,
		Gender:      input.Gender,
		Prefecture:  strings.TrimSpace(input.Prefecture),
		City:        strings.TrimSpace(input.City),
		Bio:         input.Bio,
		AvatarURL:   input.AvatarURL,
	}
	if err := repo.CreateProfile(ctx, s.DB, p); err != nil {
		if isDuplicate(err) {
			return nil, ErrProfileExists
		}
		return nil, err
	}
	return p, nil
}

// AddDog registers a dog under ownerID and recomputes the owner's completion
// flag in the same transaction.
//
// Validation: dog gender male/female only, size small/medium/large, and the
// month component of the age in [0,11].
func (s *ProfileService) AddDog(ctx context.Context, ownerID string, input DogInput) (*domain.Dog, error) {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "AddDog",
		trace.WithAttributes(attribute.String("user.id", ownerID)),
	)
	defer span.End()

	if input.Gender != domain.GenderMale && input.Gender != domain.GenderFemale {
		return nil, ErrInvalidGender
	}
	switch input.Size {
	case domain.SizeSmall, domain.SizeMedium, domain.SizeLarge:
	default:
		return nil, ErrInvalidDogSize
	}
	if input.AgeMonths < 0 || input.AgeMonths > 11 {
		return nil, ErrDogAgeMonths
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidDisplayName
	}

	var dog *domain.Dog
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetProfile(ctx, tx, ownerID); err != nil {
			if isNotFound(err) {
				return ErrProfileNotFound
			}
			return err
		}
		d := &domain.Dog{
			OwnerID:      ownerID,
			Name:         name,
			Breed:        strings.TrimSpace(input.Breed),
			Gender:       input.Gender,
			Size:         input.Size,
			AgeYears:     input.AgeYears,
			AgeMonths:    input.AgeMonths,
			Bio:          input.Bio,
			IsVaccinated: input.IsVaccinated,
			IsNeutered:   input.IsNeutered,
			Temperament:  input.Temperament,
			PhotoURLs:    input.PhotoURLs,
		}
		if err := repo.CreateDog(ctx, tx, d); err != nil {
			return err
		}
		dog = d
		return s.recomputeCompletion(ctx, tx, ownerID)
	})
	if err != nil {
		return nil, err
	}
	return dog, nil
}

// SubmitVerification records the identity document submission for profileID
// and recomputes the completion flag. Re-submitting is a no-op: the first
// submission stands.
func (s *ProfileService) SubmitVerification(ctx context.Context, profileID, documentURL string) error {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "SubmitVerification",
		trace.WithAttributes(attribute.String("user.id", profileID)),
	)
	defer span.End()

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetProfile(ctx, tx, profileID); err != nil {
			if isNotFound(err) {
				return ErrProfileNotFound
			}
			return err
		}
		if _, err := repo.CreateVerification(ctx, tx, profileID, documentURL); err != nil && !isDuplicate(err) {
			return err
		}
		return s.recomputeCompletion(ctx, tx, profileID)
	})
}

// Get returns the profile with its dogs loaded.
func (s *ProfileService) Get(ctx context.Context, profileID string) (*domain.Profile, []domain.Dog, error) {
	p, err := repo.GetProfile(ctx, s.DB, profileID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, ErrProfileNotFound
		}
		return nil, nil, err
	}
	dogs, err := repo.ListDogsByOwner(ctx, s.DB, profileID)
	if err != nil {
		return nil, nil, err
	}
	return p, dogs, nil
}

// Update applies partial edits to a profile. Gender changes go through the
// same enum validation as registration.
func (s *ProfileService) Update(ctx context.Context, profileID string, updates map[string]any) error {
	if g, ok := updates["gender"].(string); ok && !validOwnerGender(g) {
		return ErrInvalidGender
	}
	if name, ok := updates["display_name"].(string); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return ErrInvalidDisplayName
		}
		updates["display_name"] = cases.Title(s.nameLocale()).String(name)
	}
	if err := repo.UpdateProfile(ctx, s.DB, profileID, updates); err != nil {
		if isNotFound(err) {
			return ErrProfileNotFound
		}
		return err
	}
	return nil
}

// recomputeCompletion derives and stores the completion flag: profile row
// plus at least one dog plus a verification submission.
func (s *ProfileService) recomputeCompletion(ctx context.Context, tx *gorm.DB, profileID string) error {
	dogs, err := repo.CountDogs(ctx, tx, profileID)
	if err != nil {
		return err
	}
	verified, err := repo.HasVerification(ctx, tx, profileID)
	if err != nil {
		return err
	}
	return repo.SetProfileComplete(ctx, tx, profileID, dogs > 0 && verified)
}

func (s *ProfileService) nameLocale() language.Tag {
	if s.NameLocale == language.Und {
		return language.English
	}
	return s.NameLocale
}

func validOwnerGender(g string) bool {
	switch g {
	case domain.GenderMale, domain.GenderFemale, domain.GenderOther:
		return true
	}
	return false
}
