// Package domain defines the persistence models for profiles, dogs, likes,
// matches, and messages. These types are mapped with GORM and form the core
// data layer of the matchmaking application.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Owner gender values stored on Profile.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Dog size classes stored on Dog.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// StringList is a []string persisted as a JSON text column. It is used for
// dog temperament tags and ordered photo references, where a join table would
// be overkill for display-only data.
type StringList []string

// Value implements driver.Valuer by encoding the list as JSON. A nil list is
// stored as an empty JSON array so reads never produce NULL.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for text and blob representations.
func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(l))
	case []byte:
		return json.Unmarshal(v, (*[]string)(l))
	default:
		return fmt.Errorf("domain: cannot scan %T into StringList", src)
	}
}

// Profile represents a dog owner's account-level profile. A profile owns zero
// or more dogs and becomes visible in discovery only once IsComplete is set.
//
// Fields:
//   - ID: stable UUID primary key (char(36)), equal to the auth provider's
//     user id.
//   - DisplayName: public name shown on cards and in conversations.
//   - DateOfBirth: used to derive the displayed age (see Age).
//   - Gender: "male", "female", or "other" (enforced by DB constraint).
//     Drives the opposite-gender discovery pool.
//   - Prefecture / City: coarse region shown on candidate cards.
//   - Bio: free-text self description.
//   - AvatarURL: storage reference for the owner photo; resolved for display
//     at the storage boundary.
//   - IsComplete: true only after profile, at least one dog, and an identity
//     verification submission all exist. Incomplete profiles never enter the
//     discovery pool.
type Profile struct {
	ID          string         `json:"id"            gorm:"type:char(36);primaryKey"`
	DisplayName string         `json:"display_name"  gorm:"type:varchar(64);not null"`
	DateOfBirth time.Time      `json:"date_of_birth" gorm:"not null"`
	Gender      string         `json:"gender"        gorm:"type:varchar(8);not null;check:gender IN ('male','female','other');index:idx_pool,priority:1"`
	Prefecture  string         `json:"prefecture"    gorm:"type:varchar(32);not null"`
	City        string         `json:"city"          gorm:"type:varchar(64);not null"`
	Bio         string         `json:"bio"           gorm:"type:text"`
	AvatarURL   string         `json:"avatar_url"    gorm:"type:varchar(512)"`
	IsComplete  bool           `json:"is_complete"   gorm:"not null;default:false;index:idx_pool,priority:2"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"             gorm:"index"`

	// Dogs are exclusively owned; the first dog's first photo is the
	// primary display photo on discovery cards.
	Dogs []Dog `json:"dogs,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
}

// TableName returns the database table name for Profile.
func (Profile) TableName() string { return "profiles" }

// Age derives the owner's age in whole years at the given instant, adjusted
// down by one when the current month/day precedes the birth month/day.
func (p Profile) Age(now time.Time) int {
	age := now.Year() - p.DateOfBirth.Year()
	if now.Month() < p.DateOfBirth.Month() ||
		(now.Month() == p.DateOfBirth.Month() && now.Day() < p.DateOfBirth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// Dog represents a dog record owned by exactly one profile.
//
// Fields:
//   - AgeYears / AgeMonths: dog age split into whole years plus months in
//     [0,11] (enforced by DB constraint).
//   - Temperament: free tag set ("friendly", "shy", ...).
//   - PhotoURLs: ordered storage references; the first entry is the primary
//     display photo.
type Dog struct {
	ID           string         `json:"id"           gorm:"type:char(36);primaryKey"`
	OwnerID      string         `json:"owner_id"     gorm:"type:char(36);not null;index"`
	Name         string         `json:"name"         gorm:"type:varchar(64);not null"`
	Breed        string         `json:"breed"        gorm:"type:varchar(64);not null"`
	Gender       string         `json:"gender"       gorm:"type:varchar(8);not null;check:gender IN ('male','female')"`
	Size         string         `json:"size"         gorm:"type:varchar(8);not null;check:size IN ('small','medium','large')"`
	AgeYears     int            `json:"age_years"    gorm:"not null"`
	AgeMonths    int            `json:"age_months"   gorm:"not null;check:age_months BETWEEN 0 AND 11"`
	Bio          string         `json:"bio"          gorm:"type:text"`
	IsVaccinated bool           `json:"is_vaccinated" gorm:"not null;default:false"`
	IsNeutered   bool           `json:"is_neutered"  gorm:"not null;default:false"`
	Temperament  StringList     `json:"temperament"  gorm:"type:text"`
	PhotoURLs    StringList     `json:"photo_urls"   gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-"            gorm:"index"`

	// Owner is the parent profile. Dogs are cascade-deleted with it.
	Owner Profile `json:"-" gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Dog.
func (Dog) TableName() string { return "dogs" }

// PrimaryPhoto returns the first photo reference, or "" when the dog has no
// photos yet.
func (d Dog) PrimaryPhoto() string {
	if len(d.PhotoURLs) == 0 {
		return ""
	}
	return d.PhotoURLs[0]
}

// Like is a directional interest edge from LikerID to LikedID. At most one
// row may exist per ordered pair (unique index); likes are never edited or
// removed. There is deliberately no soft-delete column: the uniqueness of the
// live row is what makes re-liking idempotent.
type Like struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	LikerID   string    `json:"liker_id"  gorm:"type:char(36);not null;index;uniqueIndex:ux_like_pair,priority:1"`
	LikedID   string    `json:"liked_id"  gorm:"type:char(36);not null;index;uniqueIndex:ux_like_pair,priority:2"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Like.
func (Like) TableName() string { return "likes" }

// Pass is a directional rejection edge from PasserID to PassedID. Passed
// profiles are excluded from the passer's future discovery queues. Like Like,
// it is append-only with a unique ordered pair.
type Pass struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	PasserID  string    `json:"passer_id" gorm:"type:char(36);not null;index;uniqueIndex:ux_pass_pair,priority:1"`
	PassedID  string    `json:"passed_id" gorm:"type:char(36);not null;uniqueIndex:ux_pass_pair,priority:2"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Pass.
func (Pass) TableName() string { return "passes" }

// Match is the confirmed mutual-interest pairing of two profiles. The pair is
// stored in canonical order (User1ID < User2ID, see CanonicalPair) under a
// unique index, so concurrent double-creation collapses to a single row: the
// losing insert fails on the constraint and is treated as success by callers.
//
// LastMessageAt is an ordering hint updated on every new message; it is not
// correctness-critical and may lag behind the newest message briefly.
type Match struct {
	ID            string     `json:"id"              gorm:"type:char(36);primaryKey"`
	User1ID       string     `json:"user1_id"        gorm:"type:char(36);not null;index;uniqueIndex:ux_match_pair,priority:1"`
	User2ID       string     `json:"user2_id"        gorm:"type:char(36);not null;index;uniqueIndex:ux_match_pair,priority:2"`
	CreatedAt     time.Time  `json:"created_at"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
}

// TableName returns the database table name for Match.
func (Match) TableName() string { return "matches" }

// CanonicalPair orders two profile ids so the lexicographically smaller one
// comes first. All match reads and writes must go through this ordering; it
// is the sole concurrency-safety mechanism guarding against duplicate rows
// for the same unordered pair.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// HasParticipant reports whether userID is one of the two matched profiles.
func (m Match) HasParticipant(userID string) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// Counterpart returns the other participant's id. The caller must have
// verified participation first; for a non-participant it returns "".
func (m Match) Counterpart(userID string) string {
	switch userID {
	case m.User1ID:
		return m.User2ID
	case m.User2ID:
		return m.User1ID
	}
	return ""
}

// LastActivity returns LastMessageAt when set, otherwise the match creation
// time. Conversation lists are ordered by this value descending.
func (m Match) LastActivity() time.Time {
	if m.LastMessageAt != nil {
		return *m.LastMessageAt
	}
	return m.CreatedAt
}

// Message is a single chat message within a match. SenderID must be one of
// the match participants (enforced in the service layer). IsRead transitions
// false to true exactly once, when the recipient opens the conversation or
// receives the message on a live feed; it never reverts.
type Message struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	MatchID   string    `json:"match_id"   gorm:"type:char(36);not null;index:idx_match_msgs,priority:1"`
	SenderID  string    `json:"sender_id"  gorm:"type:char(36);not null;index"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	IsRead    bool      `json:"is_read"    gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_match_msgs,priority:2"`
	UpdatedAt time.Time `json:"updated_at"`

	// Match is the parent pairing. Messages are cascade-deleted with it.
	Match Match `json:"-" gorm:"foreignKey:MatchID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// VerificationSubmission records that a profile submitted an identity
// document. Its existence is one of the three prerequisites for the profile
// completion flag; the review workflow itself lives outside this service.
type VerificationSubmission struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	ProfileID   string    `json:"profile_id"   gorm:"type:char(36);not null;uniqueIndex"`
	DocumentURL string    `json:"document_url" gorm:"type:varchar(512);not null"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// TableName returns the database table name for VerificationSubmission.
func (VerificationSubmission) TableName() string { return "verification_submissions" }
