package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"participationletters/internal/domain"
)

// Defaults used when a participant or event lacks a display name.
const (
	defaultParticipantName = "User"
	defaultEventTitle      = "Event"
)

type scannerService struct {
	logger          *slog.Logger
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	letterRepo      domain.LetterRepository
	letters         domain.LetterService
	emails          domain.EmailService
	now             func() time.Time
	contextTimeout  time.Duration
}

// NewScannerService returns a ScannerService. emails may be nil to disable letter-ready notices.
func NewScannerService(
	logger *slog.Logger,
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	letterRepo domain.LetterRepository,
	letters domain.LetterService,
	emails domain.EmailService,
	timeout time.Duration,
) domain.ScannerService {
	return &scannerService{
		logger:          logger,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		letterRepo:      letterRepo,
		letters:         letters,
		emails:          emails,
		now:             time.Now,
		contextTimeout:  timeout,
	}
}

// Scan generates a letter for every participant of every active event whose
// registration has ended and who has no letter yet. Participants are processed
// one at a time; a failure is recorded in the report and the scan moves on.
// When ctx ends mid-scan the partial report is returned with Interrupted set.
func (s *scannerService) Scan(ctx context.Context) (*domain.ScanReport, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListRegistrationEnded(ctx, domain.EventStatusActive, s.now())
	if err != nil {
		return nil, fmt.Errorf("list events with ended registration: %w", err)
	}

	report := &domain.ScanReport{
		EventsScanned: len(events),
		Results:       []domain.ScanOutcome{},
	}
events:
	for _, ev := range events {
		if s.interrupted(ctx, report) {
			break
		}
		participants, err := s.participantRepo.ListByEventID(ctx, ev.ID)
		if err != nil {
			s.logger.ErrorContext(ctx, "list participants failed", "event_id", ev.ID, "err", err)
			report.Add(domain.ScanOutcome{EventID: ev.ID, Status: domain.ScanStatusFailed, Error: err.Error()})
			continue
		}
		for _, p := range participants {
			if s.interrupted(ctx, report) {
				break events
			}
			report.Add(s.processParticipant(ctx, ev, p))
		}
	}

	s.logger.InfoContext(ctx, "registration scan completed",
		"events", report.EventsScanned,
		"generated", report.Generated,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"interrupted", report.Interrupted != "",
	)
	return report, nil
}

// interrupted marks the report when ctx is done so the outcomes gathered so
// far are still returned.
func (s *scannerService) interrupted(ctx context.Context, report *domain.ScanReport) bool {
	err := ctx.Err()
	if err == nil {
		return false
	}
	report.Interrupted = err.Error()
	s.logger.WarnContext(ctx, "registration scan interrupted", "processed", len(report.Results), "err", err)
	return true
}

func (s *scannerService) processParticipant(ctx context.Context, ev *domain.Event, p *domain.Participant) (out domain.ScanOutcome) {
	out = domain.ScanOutcome{UserID: p.ID, EventID: ev.ID}
	defer func() {
		if r := recover(); r != nil {
			out.Status = domain.ScanStatusFailed
			out.LetterURL = ""
			out.Error = fmt.Sprintf("panic: %v", r)
			s.logger.ErrorContext(ctx, "letter generation panicked", "user_id", p.ID, "event_id", ev.ID, "panic", r)
		}
	}()

	_, err := s.letterRepo.GetByUserAndEvent(ctx, p.ID, ev.ID)
	if err == nil {
		out.Status = domain.ScanStatusSkipped
		return out
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return s.failed(ctx, out, fmt.Errorf("check existing letter: %w", err))
	}

	req := letterRequestFor(ev, p)
	letter, err := s.letters.Generate(ctx, req)
	if err != nil {
		return s.failed(ctx, out, err)
	}
	out.Status = domain.ScanStatusGenerated
	out.LetterURL = letter.LetterURL
	s.logger.InfoContext(ctx, "generated letter", "user_id", p.ID, "event_id", ev.ID)

	s.notify(ctx, p, req, letter)
	return out
}

func (s *scannerService) failed(ctx context.Context, out domain.ScanOutcome, err error) domain.ScanOutcome {
	s.logger.ErrorContext(ctx, "letter generation failed", "user_id", out.UserID, "event_id", out.EventID, "err", err)
	out.Status = domain.ScanStatusFailed
	out.Error = err.Error()
	return out
}

// notify sends the letter-ready email. Failures are logged only.
func (s *scannerService) notify(ctx context.Context, p *domain.Participant, req domain.LetterRequest, letter *domain.GeneratedLetter) {
	if s.emails == nil || p.Email == "" {
		return
	}
	err := s.emails.SendLetterReady(ctx, &domain.LetterReadyEmailData{
		Email:     p.Email,
		Name:      req.UserName,
		EventName: req.EventName,
		LetterURL: letter.LetterURL,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "letter-ready email failed", "user_id", p.ID, "event_id", req.EventID, "err", err)
	}
}

func letterRequestFor(ev *domain.Event, p *domain.Participant) domain.LetterRequest {
	name := p.Name
	if name == "" {
		name = defaultParticipantName
	}
	title := ev.Title
	if title == "" {
		title = defaultEventTitle
	}
	return domain.LetterRequest{
		UserID:    p.ID,
		UserName:  name,
		EventID:   ev.ID,
		EventName: title,
		EventDate: ev.EventDateTime.Format(domain.EventDateLayout),
	}
}
