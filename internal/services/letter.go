package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"participationletters/internal/domain"
)

type letterService struct {
	logger         *slog.Logger
	renderer       domain.LetterRenderer
	store          domain.ArtifactStore
	letterRepo     domain.LetterRepository
	now            func() time.Time
	contextTimeout time.Duration
}

// NewLetterService returns a LetterService that renders, uploads and records letters.
// A non-positive timeout leaves the caller's context deadline unchanged.
func NewLetterService(
	logger *slog.Logger,
	renderer domain.LetterRenderer,
	store domain.ArtifactStore,
	letterRepo domain.LetterRepository,
	timeout time.Duration,
) domain.LetterService {
	return &letterService{
		logger:         logger,
		renderer:       renderer,
		store:          store,
		letterRepo:     letterRepo,
		now:            time.Now,
		contextTimeout: timeout,
	}
}

// Generate validates req, renders the PDF, uploads it and upserts the letter record, in that order.
// An upload that succeeds is not removed if the record write fails.
func (s *letterService) Generate(ctx context.Context, req domain.LetterRequest) (*domain.GeneratedLetter, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	body, err := s.renderer.Render(req, s.now())
	if err != nil {
		return nil, fmt.Errorf("render letter: %w", err)
	}

	path := domain.LetterPath(req.UserID, req.EventID, req.EventName)
	if err := s.store.Upload(ctx, path, body, domain.LetterContentType); err != nil {
		return nil, fmt.Errorf("upload letter: %w", err)
	}

	letter := domain.NewGeneratedLetter(req.UserID, req.EventID, req.EventName, s.store.PublicURL(path))
	if err := s.letterRepo.Upsert(ctx, letter); err != nil {
		return nil, fmt.Errorf("save letter record: %w", err)
	}
	s.logger.InfoContext(ctx, "letter generated", "user_id", req.UserID, "event_id", req.EventID, "path", path)
	return letter, nil
}

// EnsureBucket makes sure the store's bucket exists and is public.
func (s *letterService) EnsureBucket(ctx context.Context) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	created, err := s.store.EnsureBucket(ctx, s.store.Bucket())
	if err != nil {
		return false, fmt.Errorf("ensure bucket: %w", err)
	}
	return created, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
