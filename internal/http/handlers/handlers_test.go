package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pawmatch/go-dating-backend/internal/services"
	"github.com/pawmatch/go-dating-backend/internal/storage"
)

func Test_userID_Resolution(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Context value wins
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("userID", "ctx-user")
	c.Request.Header.Set("X-User-ID", "header-user")
	if got := userID(c); got != "ctx-user" {
		t.Fatalf("expected ctx-user, got %q", got)
	}

	// Header fallback
	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.Header.Set("X-User-ID", "  header-user  ")
	if got := userID(c2); got != "header-user" {
		t.Fatalf("expected trimmed header value, got %q", got)
	}

	// Demo fallback when neither is present
	c3, _ := gin.CreateTestContext(httptest.NewRecorder())
	c3.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if got := userID(c3); got != "demo-user" {
		t.Fatalf("expected demo-user, got %q", got)
	}
}

func Test_failService_Mapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{services.ErrProfileNotFound, http.StatusNotFound, ErrCodeNotFound},
		{services.ErrMatchNotFound, http.StatusNotFound, ErrCodeNotFound},
		{services.ErrSelfSwipe, http.StatusBadRequest, ErrCodeSelfSwipe},
		{services.ErrNotParticipant, http.StatusForbidden, ErrCodeNotParticipant},
		{services.ErrEmptyMessage, http.StatusBadRequest, ErrCodeEmptyMessage},
		{services.ErrMessageTooLong, http.StatusBadRequest, ErrCodeMessageTooLong},
		{services.ErrProfileExists, http.StatusConflict, ErrCodeProfileExists},
		{services.ErrInvalidGender, http.StatusBadRequest, ErrCodeInvalidProfile},
		{services.ErrInvalidDisplayName, http.StatusBadRequest, ErrCodeInvalidProfile},
		{services.ErrInvalidDogSize, http.StatusBadRequest, ErrCodeInvalidDog},
		{services.ErrDogAgeMonths, http.StatusBadRequest, ErrCodeInvalidDog},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		failService(c, tc.err)

		if w.Code != tc.status {
			t.Fatalf("%v: status=%d want %d", tc.err, w.Code, tc.status)
		}
		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%v: json: %v", tc.err, err)
		}
		if resp.Code != tc.code {
			t.Fatalf("%v: code=%q want %q", tc.err, resp.Code, tc.code)
		}
	}

	// Unknown errors are opaque 500s; the message never leaks.
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	failService(c, assertableError("secret db detail"))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("unknown error status=%d", w.Code)
	}
	if strings.Contains(w.Body.String(), "secret") {
		t.Fatalf("internal detail leaked: %s", w.Body.String())
	}
}

type assertableError string

func (e assertableError) Error() string { return string(e) }

func Test_wsSendErrorCode(t *testing.T) {
	if got := wsSendErrorCode(services.ErrEmptyMessage); got != ErrCodeEmptyMessage {
		t.Fatalf("empty: %q", got)
	}
	if got := wsSendErrorCode(services.ErrMessageTooLong); got != ErrCodeMessageTooLong {
		t.Fatalf("too long: %q", got)
	}
	if got := wsSendErrorCode(services.ErrNotParticipant); got != ErrCodeNotParticipant {
		t.Fatalf("not participant: %q", got)
	}
	if got := wsSendErrorCode(services.ErrMatchNotFound); got != ErrCodeNotFound {
		t.Fatalf("not found: %q", got)
	}
	if got := wsSendErrorCode(assertableError("boom")); got != ErrCodeInternal {
		t.Fatalf("unknown: %q", got)
	}
}

func uploadRequest(t *testing.T, filename, kind string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if kind != "" {
		if err := mw.WriteField("kind", kind); err != nil {
			t.Fatalf("write kind: %v", err)
		}
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("not-really-an-image")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/uploads", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-User-ID", "u-upload")
	return req
}

func TestUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store, err := storage.New(storage.Config{Type: "local", BasePath: t.TempDir()})
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	h := &Handlers{Store: store}

	r := gin.New()
	r.POST("/uploads", h.Upload)

	// Happy path: stored under the user's prefix, URL resolvable.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "pochi.jpg", "dog"))
	if w.Code != http.StatusCreated {
		t.Fatalf("upload = %d body=%s", w.Code, w.Body.String())
	}
	var resp UploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.HasPrefix(resp.Ref, "dogs/u-upload/") || !strings.HasSuffix(resp.Ref, ".jpg") {
		t.Fatalf("unexpected ref %q", resp.Ref)
	}
	if resp.URL != "/files/"+resp.Ref {
		t.Fatalf("unexpected url %q", resp.URL)
	}
	exists, err := store.Exists(context.Background(), resp.Ref)
	if err != nil || !exists {
		t.Fatalf("stored file missing: exists=%v err=%v", exists, err)
	}

	// Unknown kind rejected
	w = httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "pochi.jpg", "meme"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad kind = %d", w.Code)
	}

	// Unsupported extension rejected
	w = httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "pochi.gif", "dog"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad ext = %d", w.Code)
	}

	// Missing file rejected
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/uploads", nil)
	req.Header.Set("X-User-ID", "u-upload")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing file = %d", w.Code)
	}
}
