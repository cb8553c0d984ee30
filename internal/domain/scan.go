package domain

import "context"

// Scan outcome statuses.
const (
	ScanStatusGenerated = "generated"
	ScanStatusSkipped   = "skipped"
	ScanStatusFailed    = "failed"
)

// ScanOutcome is the result of processing one (participant, event) pair.
// UserID is empty when the failure happened before participants could be listed.
// swagger:model ScanOutcome
type ScanOutcome struct {
	UserID    string `json:"userId,omitempty"`
	EventID   string `json:"eventId"`
	Status    string `json:"status"`
	LetterURL string `json:"letterUrl,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ScanReport aggregates the outcomes of one registration-expiry scan.
// swagger:model ScanReport
type ScanReport struct {
	EventsScanned int           `json:"eventsScanned"`
	Generated     int           `json:"generated"`
	Skipped       int           `json:"skipped"`
	Failed        int           `json:"failed"`
	Results       []ScanOutcome `json:"results"`
	// Interrupted holds the reason the scan stopped early (deadline or
	// cancellation); Results then cover only the pairs processed before it.
	Interrupted string `json:"interrupted,omitempty"`
}

// Add records an outcome and bumps the matching counter.
func (r *ScanReport) Add(o ScanOutcome) {
	switch o.Status {
	case ScanStatusGenerated:
		r.Generated++
	case ScanStatusSkipped:
		r.Skipped++
	case ScanStatusFailed:
		r.Failed++
	}
	r.Results = append(r.Results, o)
}

// ScannerService finds events whose registration ended and generates missing letters.
type ScannerService interface {
	Scan(ctx context.Context) (*ScanReport, error)
}
