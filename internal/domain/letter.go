package domain

import (
	"context"
	"strings"
	"time"
)

// LetterContentType is the MIME type of every uploaded letter.
const LetterContentType = "application/pdf"

// EventDateLayout is the wire format of LetterRequest.EventDate.
const EventDateLayout = "2006-01-02"

// LetterRequest carries everything needed to produce one participation letter.
// swagger:model LetterRequest
type LetterRequest struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	EventID   string `json:"eventId"`
	EventName string `json:"eventName"`
	// EventDate is a calendar date in YYYY-MM-DD form.
	EventDate string `json:"eventDate"`
}

// MissingFields returns the JSON names of required fields that are empty or whitespace.
func (r LetterRequest) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"userId", r.UserID},
		{"userName", r.UserName},
		{"eventId", r.EventID},
		{"eventName", r.EventName},
		{"eventDate", r.EventDate},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Validate returns a *ValidationError naming every missing field, or nil.
func (r LetterRequest) Validate() error {
	if missing := r.MissingFields(); len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// LetterPath returns the object storage key for a user's letter for an event.
func LetterPath(userID, eventID, eventName string) string {
	return "event_letters/" + userID + "/" + eventID + "/" + strings.ReplaceAll(eventName, " ", "_") + "_letter.pdf"
}

// GeneratedLetter is the stored metadata for a letter that was uploaded.
// EventDate and GeneratedDate are both stamped by the store when the record is written.
// swagger:model GeneratedLetter
type GeneratedLetter struct {
	UserID        string    `json:"userId"`
	EventID       string    `json:"eventId"`
	EventName     string    `json:"eventName"`
	EventDate     time.Time `json:"eventDate"`
	GeneratedDate time.Time `json:"generatedDate"`
	LetterURL     string    `json:"letterUrl"`
}

// NewGeneratedLetter returns a record for the given key and URL. Timestamps are set by the repository.
func NewGeneratedLetter(userID, eventID, eventName, letterURL string) *GeneratedLetter {
	return &GeneratedLetter{
		UserID:    userID,
		EventID:   eventID,
		EventName: eventName,
		LetterURL: letterURL,
	}
}

// LetterRepository stores letter metadata keyed by (userID, eventID).
type LetterRepository interface {
	// Upsert writes the record, replacing any existing one for the same key,
	// and fills EventDate and GeneratedDate from the store clock.
	Upsert(ctx context.Context, letter *GeneratedLetter) error
	GetByUserAndEvent(ctx context.Context, userID, eventID string) (*GeneratedLetter, error)
}

// LetterRenderer produces the PDF bytes of a letter.
type LetterRenderer interface {
	Render(req LetterRequest, today time.Time) ([]byte, error)
}

// ArtifactStore uploads blobs to its configured bucket and resolves their public URLs.
type ArtifactStore interface {
	// Bucket is the name of the bucket Upload writes to.
	Bucket() string
	// EnsureBucket creates the named bucket as publicly readable if it does not exist.
	EnsureBucket(ctx context.Context, name string) (created bool, err error)
	Upload(ctx context.Context, path string, body []byte, contentType string) error
	PublicURL(path string) string
}

// LetterService generates letters and provisions their storage.
type LetterService interface {
	Generate(ctx context.Context, req LetterRequest) (*GeneratedLetter, error)
	EnsureBucket(ctx context.Context) (created bool, err error)
}
