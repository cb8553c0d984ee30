package http

import (
	"log/slog"
	"net/http"

	_ "participationletters/docs"
	"participationletters/internal/delivery/http/controllers"
	"participationletters/internal/delivery/http/middleware"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(letters *controllers.LetterController, scans *controllers.ScanController, health *controllers.HealthController) *http.ServeMux {
	mux := http.NewServeMux()

	// Letters
	mux.HandleFunc("POST /generate-letter", letters.GenerateLetter)
	mux.HandleFunc("GET /create-bucket", letters.CreateBucket)

	// Scheduler trigger
	mux.HandleFunc("GET /check-registration-ended", scans.CheckRegistrationEnded)

	// Probes
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /ready", health.Ready)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with request id, request logging and CORS.
func NewHandler(logger *slog.Logger, allowedOrigins []string, mux *http.ServeMux) http.Handler {
	return middleware.RequestID(middleware.LoggingMiddleware(logger, middleware.CORS(allowedOrigins, mux)))
}
