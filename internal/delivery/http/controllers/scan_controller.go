package controllers

import (
	"log/slog"
	"net/http"

	"participationletters/internal/delivery/http/helpers"
	"participationletters/internal/domain"
)

type ScanController struct {
	Logger  *slog.Logger
	Service domain.ScannerService
}

func NewScanController(logger *slog.Logger, svc domain.ScannerService) *ScanController {
	return &ScanController{
		Logger:  logger,
		Service: svc,
	}
}

// CheckRegistrationEndedResponse is the success body for GET /check-registration-ended (200).
type CheckRegistrationEndedResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Report  *domain.ScanReport `json:"report"`
}

// CheckRegistrationEnded godoc
// @Summary Generate letters for events whose registration ended
// @Description Scans active events whose registration window has closed and generates a letter for every participant without one. Individual failures are reported per participant and do not stop the scan.
// @Tags letters
// @Produce json
// @Success 200 {object} controllers.CheckRegistrationEndedResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /check-registration-ended [get]
func (c *ScanController) CheckRegistrationEnded(w http.ResponseWriter, r *http.Request) {
	report, err := c.Service.Scan(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	msg := "Registration check completed"
	if report.Interrupted != "" {
		msg = "Registration check interrupted"
	}
	helpers.WriteJSON(w, http.StatusOK, CheckRegistrationEndedResponse{
		Success: true,
		Message: msg,
		Report:  report,
	})
}
