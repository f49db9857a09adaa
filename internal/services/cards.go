// Package services – profile cards
//
// ProfileCard is the display projection shared by discovery, the admirers
// list, and conversation counterparts: the owner plus their primary dog,
// with the age computed and image references resolved to displayable URLs.
package services

import (
	"time"

	"github.com/pawmatch/go-dating-backend/internal/domain"
)

// ProfileCard is a flattened, display-ready view of a profile. The dog
// fields come from the owner's first registered dog and are empty when the
// profile has no dogs (possible only for cards built outside discovery,
// since incomplete profiles never enter the pool).
type ProfileCard struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Age         int    `json:"age"`
	Prefecture  string `json:"prefecture"`
	City        string `json:"city"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`

	DogName     string `json:"dog_name,omitempty"`
	DogBreed    string `json:"dog_breed,omitempty"`
	DogPhotoURL string `json:"dog_photo_url,omitempty"`
}

// newProfileCard builds a card from a profile and its (possibly empty) dog
// list. resolve maps raw storage references to display URLs; identity is used
// when nil.
func newProfileCard(p domain.Profile, dogs []domain.Dog, now time.Time, resolve func(string) string) ProfileCard {
	if resolve == nil {
		resolve = func(ref string) string { return ref }
	}
	card := ProfileCard{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Age:         p.Age(now),
		Prefecture:  p.Prefecture,
		City:        p.City,
		Bio:         p.Bio,
		AvatarURL:   resolve(p.AvatarURL),
	}
	if len(dogs) > 0 {
		primary := dogs[0]
		card.DogName = primary.Name
		card.DogBreed = primary.Breed
		if ref := primary.PrimaryPhoto(); ref != "" {
			card.DogPhotoURL = resolve(ref)
		}
	}
	return card
}
