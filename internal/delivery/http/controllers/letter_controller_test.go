package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"participationletters/internal/delivery/http/helpers"
	"participationletters/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeLetterService implements domain.LetterService for handler tests.
type fakeLetterService struct {
	generateErr error
	ensureErr   error
	created     bool
	lastReq     *domain.LetterRequest
	calls       int
}

func (f *fakeLetterService) Generate(ctx context.Context, req domain.LetterRequest) (*domain.GeneratedLetter, error) {
	f.calls++
	f.lastReq = &req
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	path := domain.LetterPath(req.UserID, req.EventID, req.EventName)
	return domain.NewGeneratedLetter(req.UserID, req.EventID, req.EventName, "https://storage.test/event-letters/"+path), nil
}

func (f *fakeLetterService) EnsureBucket(ctx context.Context) (bool, error) {
	if f.ensureErr != nil {
		return false, f.ensureErr
	}
	created := !f.created
	f.created = true
	return created, nil
}

const validLetterBody = `{"userId":"u1","userName":"Ada","eventId":"e1","eventName":"Spring Meetup","eventDate":"2025-04-12"}`

func TestLetterController_GenerateLetter(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		svcErr      error
		wantStatus  int
		wantURL     string
		wantError   string
		wantMissing []string
		wantCalls   int
	}{
		{
			name:       "success",
			body:       validLetterBody,
			wantStatus: http.StatusOK,
			wantURL:    "https://storage.test/event-letters/event_letters/u1/e1/Spring_Meetup_letter.pdf",
			wantCalls:  1,
		},
		{
			name:        "missing fields",
			body:        `{"userId":"u1","eventId":"e1"}`,
			wantStatus:  http.StatusBadRequest,
			wantError:   "Missing required fields",
			wantMissing: []string{"userName", "eventName", "eventDate"},
		},
		{
			name:       "malformed date surfaces as server error",
			body:       strings.Replace(validLetterBody, "2025-04-12", "2024-13-40", 1),
			svcErr:     fmt.Errorf("render letter: %w: eventDate %q must be YYYY-MM-DD", domain.ErrInvalidDate, "2024-13-40"),
			wantStatus: http.StatusInternalServerError,
			wantError:  `eventDate "2024-13-40" must be YYYY-MM-DD`,
			wantCalls:  1,
		},
		{
			name:       "downstream error message is exposed",
			body:       validLetterBody,
			svcErr:     errors.New("upload letter: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "upload letter: connection refused",
			wantCalls:  1,
		},
		{
			name:        "service validation error maps to bad request",
			body:        validLetterBody,
			svcErr:      &domain.ValidationError{Fields: []string{"userName"}},
			wantStatus:  http.StatusBadRequest,
			wantError:   "Missing required fields",
			wantMissing: []string{"userName"},
			wantCalls:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeLetterService{generateErr: tt.svcErr}
			ctrl := NewLetterController(testLogger, svc)

			req := httptest.NewRequest(http.MethodPost, "/generate-letter", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			ctrl.GenerateLetter(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCalls, svc.calls)
			if tt.wantStatus == http.StatusOK {
				var resp GenerateLetterResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.True(t, resp.Success)
				assert.Equal(t, tt.wantURL, resp.LetterURL)
				assert.Equal(t, "Letter generated successfully", resp.Message)
				assert.Equal(t, "Ada", svc.lastReq.UserName)
				return
			}
			var resp helpers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tt.wantError)
			assert.Equal(t, tt.wantMissing, resp.MissingFields)
		})
	}
}

func TestLetterController_CreateBucket(t *testing.T) {
	svc := &fakeLetterService{}
	ctrl := NewLetterController(testLogger, svc)

	messages := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		ctrl.CreateBucket(w, httptest.NewRequest(http.MethodGet, "/create-bucket", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var resp helpers.MessageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		messages = append(messages, resp.Message)
	}
	assert.Equal(t, []string{"Bucket created successfully", "Bucket already exists"}, messages)
}

func TestLetterController_CreateBucket_Error(t *testing.T) {
	ctrl := NewLetterController(testLogger, &fakeLetterService{ensureErr: errors.New("ensure bucket: access denied")})

	w := httptest.NewRecorder()
	ctrl.CreateBucket(w, httptest.NewRequest(http.MethodGet, "/create-bucket", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp helpers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ensure bucket: access denied", resp.Error)
}
