// Profile and onboarding HTTP handlers.
//
// This file exposes the onboarding endpoints:
//   - POST  /profiles                      (register)
//   - GET   /profiles/me                   (own profile with dogs)
//   - PATCH /profiles/me                   (partial update)
//   - POST  /profiles/me/dogs              (register a dog)
//   - POST  /profiles/me/verification      (submit identity document)
//   - POST  /uploads                       (image upload)
//
// Completion is derived server-side: once a profile has at least one dog and
// a verification submission, it enters the discovery pool automatically.
package handlers

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawmatch/go-dating-backend/internal/services"
)

// RegisterProfileRequest is the JSON payload for profile registration.
type RegisterProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required,min=1,max=64" example:"Hanako"`
	DateOfBirth string `json:"date_of_birth" binding:"required" example:"1996-04-02"`
	Gender      string `json:"gender" binding:"required" example:"female"`
	Prefecture  string `json:"prefecture" binding:"required" example:"Tokyo"`
	City        string `json:"city" binding:"required" example:"Setagaya"`
	Bio         string `json:"bio" example:"Weekend dog park regular."`
	AvatarURL   string `json:"avatar_url" example:"avatars/u123.jpg"`
}

// RegisterDogRequest is the JSON payload for registering a dog.
type RegisterDogRequest struct {
	Name         string   `json:"name" binding:"required,min=1,max=64" example:"Pochi"`
	Breed        string   `json:"breed" binding:"required" example:"Shiba Inu"`
	Gender       string   `json:"gender" binding:"required" example:"male"`
	Size         string   `json:"size" binding:"required" example:"small"`
	AgeYears     int      `json:"age_years" binding:"min=0" example:"3"`
	AgeMonths    int      `json:"age_months" example:"4"`
	Bio          string   `json:"bio" example:"Chases every ball, returns none."`
	IsVaccinated bool     `json:"is_vaccinated" example:"true"`
	IsNeutered   bool     `json:"is_neutered" example:"false"`
	Temperament  []string `json:"temperament" example:"friendly,energetic"`
	PhotoURLs    []string `json:"photo_urls" example:"dogs/pochi-1.jpg"`
}

// SubmitVerificationRequest is the JSON payload for identity verification.
type SubmitVerificationRequest struct {
	DocumentURL string `json:"document_url" binding:"required" example:"verifications/u123.jpg"`
}

// ProfileResponse bundles a profile with its dogs for the "me" endpoint.
type ProfileResponse struct {
	Profile any `json:"profile"`
	Dogs    any `json:"dogs"`
}

// UploadResponse is the payload of POST /uploads.
type UploadResponse struct {
	// Ref is the storage reference to persist on profiles and dogs.
	Ref string `json:"ref" example:"dogs/7a8d9f4c/pochi.jpg"`
	// URL is the resolved display URL for immediate rendering.
	URL string `json:"url" example:"/files/dogs/7a8d9f4c/pochi.jpg"`
}

// RegisterProfile godoc
// @ID          registerProfile
// @Summary     Register a profile
// @Description Creates the owner profile for the current user. The profile stays out of discovery until a dog and a verification submission exist.
// @Tags        Profiles
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.RegisterProfileRequest  true  "Registration payload"
//
// @Success     201  {object}  domain.Profile
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failure"
// @Failure     409  {object}  handlers.ErrorResponse  "Profile already exists"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /profiles [post]
func (h *Handlers) RegisterProfile(c *gin.Context) {
	var req RegisterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidProfile, "date_of_birth must be YYYY-MM-DD")
		return
	}

	p, err := h.Profiles.Register(c.Request.Context(), services.RegisterInput{
		ID:          userID(c),
		DisplayName: req.DisplayName,
		DateOfBirth: dob,
		Gender:      req.Gender,
		Prefecture:  req.Prefecture,
		City:        req.City,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, p)
}

// GetMyProfile godoc
// @ID          getMyProfile
// @Summary     Get own profile
// @Description Returns the current user's profile together with their dogs.
// @Tags        Profiles
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object}  handlers.ProfileResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Profile not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /profiles/me [get]
func (h *Handlers) GetMyProfile(c *gin.Context) {
	p, dogs, err := h.Profiles.Get(c.Request.Context(), userID(c))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ProfileResponse{Profile: p, Dogs: dogs})
}

// UpdateMyProfile godoc
// @ID          updateMyProfile
// @Summary     Update own profile
// @Description Applies a partial update to the current user's profile. Only whitelisted fields are editable.
// @Tags        Profiles
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    map[string]any  true  "Fields to update"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failure"
// @Failure     404  {object}  handlers.ErrorResponse  "Profile not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /profiles/me [patch]
func (h *Handlers) UpdateMyProfile(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil || len(body) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	// Whitelist editable columns; everything else is dropped silently.
	allowed := map[string]struct{}{
		"display_name": {}, "gender": {}, "prefecture": {},
		"city": {}, "bio": {}, "avatar_url": {},
	}
	updates := make(map[string]any, len(body))
	for k, v := range body {
		if _, ok := allowed[k]; ok {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "no editable fields in body")
		return
	}

	if err := h.Profiles.Update(c.Request.Context(), userID(c), updates); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// RegisterDog godoc
// @ID          registerDog
// @Summary     Register a dog
// @Description Adds a dog under the current user's profile and recomputes the completion flag.
// @Tags        Profiles
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.RegisterDogRequest  true  "Dog payload"
//
// @Success     201  {object}  domain.Dog
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failure"
// @Failure     404  {object}  handlers.ErrorResponse  "Profile not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /profiles/me/dogs [post]
func (h *Handlers) RegisterDog(c *gin.Context) {
	var req RegisterDogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	dog, err := h.Profiles.AddDog(c.Request.Context(), userID(c), services.DogInput{
		Name:         req.Name,
		Breed:        req.Breed,
		Gender:       req.Gender,
		Size:         req.Size,
		AgeYears:     req.AgeYears,
		AgeMonths:    req.AgeMonths,
		Bio:          req.Bio,
		IsVaccinated: req.IsVaccinated,
		IsNeutered:   req.IsNeutered,
		Temperament:  req.Temperament,
		PhotoURLs:    req.PhotoURLs,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, dog)
}

// SubmitVerification godoc
// @ID          submitVerification
// @Summary     Submit identity verification
// @Description Records an identity-document submission for the current user. Re-submission is a no-op.
// @Tags        Profiles
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.SubmitVerificationRequest  true  "Verification payload"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Profile not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /profiles/me/verification [post]
func (h *Handlers) SubmitVerification(c *gin.Context) {
	var req SubmitVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "document_url required")
		return
	}

	if err := h.Profiles.SubmitVerification(c.Request.Context(), userID(c), req.DocumentURL); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// Upload godoc
// @ID          uploadImage
// @Summary     Upload an image
// @Description Stores an uploaded image (avatar, dog photo, or verification document) and returns the storage reference to persist.
// @Tags        Profiles
// @Accept      multipart/form-data
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       kind       formData string false "Image kind: avatar|dog|verification" default(dog)
// @Param       file       formData file   true  "Image file"
//
// @Success     201  {object}  handlers.UploadResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or invalid file"
// @Failure     500  {object}  handlers.ErrorResponse  "Storage failure"
// @Router      /uploads [post]
func (h *Handlers) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "file required")
		return
	}

	kind := c.PostForm("kind")
	switch kind {
	case "avatar", "dog", "verification":
	case "":
		kind = "dog"
	default:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "kind must be avatar, dog, or verification")
		return
	}

	ext := strings.ToLower(path.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unsupported image type")
		return
	}

	src, err := file.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable upload")
		return
	}
	defer src.Close()

	ref := fmt.Sprintf("%ss/%s/%s%s", kind, userID(c), uuid.NewString(), ext)
	contentType := file.Header.Get("Content-Type")
	if err := h.Store.Save(c.Request.Context(), ref, src, contentType); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeUploadFailed, "could not store upload")
		return
	}

	ok(c, http.StatusCreated, UploadResponse{Ref: ref, URL: h.Store.URL(ref)})
}
