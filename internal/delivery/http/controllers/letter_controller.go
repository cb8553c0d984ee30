package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"participationletters/internal/delivery/http/helpers"
	"participationletters/internal/domain"
)

type LetterController struct {
	Logger  *slog.Logger
	Service domain.LetterService
}

func NewLetterController(logger *slog.Logger, svc domain.LetterService) *LetterController {
	return &LetterController{
		Logger:  logger,
		Service: svc,
	}
}

// GenerateLetterResponse is the success body for POST /generate-letter (200).
type GenerateLetterResponse struct {
	Success   bool   `json:"success"`
	LetterURL string `json:"letterUrl"`
	Message   string `json:"message"`
}

// GenerateLetter godoc
// @Summary Generate a participation letter
// @Description Renders the participation letter PDF, uploads it to the letters bucket and records its metadata under (userId, eventId). Generating again for the same pair uploads again and replaces the record.
// @Tags letters
// @Accept json
// @Produce json
// @Param body body domain.LetterRequest true "Letter parameters (eventDate as YYYY-MM-DD)"
// @Success 200 {object} controllers.GenerateLetterResponse
// @Failure 400 {object} helpers.ErrorResponse "Missing required fields"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /generate-letter [post]
func (c *LetterController) GenerateLetter(w http.ResponseWriter, r *http.Request) {
	var req domain.LetterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	letter, err := c.Service.Generate(r.Context(), req)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			helpers.WriteValidationError(w, verr)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, GenerateLetterResponse{
		Success:   true,
		LetterURL: letter.LetterURL,
		Message:   "Letter generated successfully",
	})
}

// CreateBucket godoc
// @Summary Ensure the letters bucket exists
// @Description Creates the letters bucket as publicly readable if it does not exist. Idempotent.
// @Tags admin
// @Produce json
// @Success 200 {object} helpers.MessageResponse "Bucket created successfully | Bucket already exists"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /create-bucket [get]
func (c *LetterController) CreateBucket(w http.ResponseWriter, r *http.Request) {
	created, err := c.Service.EnsureBucket(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	msg := "Bucket already exists"
	if created {
		msg = "Bucket created successfully"
	}
	helpers.WriteJSON(w, http.StatusOK, helpers.MessageResponse{Success: true, Message: msg})
}
