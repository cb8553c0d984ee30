package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"participationletters/internal/domain"
)

// displayDateLayout renders dates as "DD Month YYYY".
const displayDateLayout = "02 January 2006"

const (
	letterTitle    = "Event Participation Letter"
	confirmation   = "This letter confirms your registration for the following event:"
	closingText    = "Please keep this letter as confirmation of your registration. We look forward to your participation."
	signOff        = "Sincerely,"
	signature      = "Event Organizers"
	lineHeight     = 10.0
	detailFillGray = 240
)

type letterRenderer struct {
	compress bool
}

// NewLetterRenderer returns a LetterRenderer producing a single-template A4 letter.
func NewLetterRenderer() domain.LetterRenderer {
	return &letterRenderer{compress: true}
}

// Render lays out the letter for req, dated today. The event date must be YYYY-MM-DD.
func (r *letterRenderer) Render(req domain.LetterRequest, today time.Time) ([]byte, error) {
	eventDate, err := time.Parse(domain.EventDateLayout, req.EventDate)
	if err != nil {
		return nil, fmt.Errorf("%w: eventDate %q must be YYYY-MM-DD: %v", domain.ErrInvalidDate, req.EventDate, err)
	}

	// The core fonts only cover Windows-1252; anything else would print as "."
	userName, err := encodeText("userName", req.UserName)
	if err != nil {
		return nil, err
	}
	eventName, err := encodeText("eventName", req.EventName)
	if err != nil {
		return nil, err
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(r.compress)
	doc.SetTitle(letterTitle, false)
	doc.SetCreator("participationletters", false)

	doc.SetHeaderFunc(func() {
		doc.SetFont("Arial", "B", 16)
		doc.CellFormat(0, lineHeight, letterTitle, "", 1, "C", false, 0, "")
		doc.Ln(20)
	})
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont("Arial", "I", 8)
		doc.CellFormat(0, lineHeight, fmt.Sprintf("Page %d/{nb}", doc.PageNo()), "", 0, "C", false, 0, "")
	})
	doc.AliasNbPages("")
	doc.AddPage()

	doc.SetFont("Arial", "", 12)
	doc.CellFormat(0, lineHeight, "Date: "+today.Format(displayDateLayout), "", 1, "", false, 0, "")
	doc.Ln(10)

	doc.CellFormat(0, lineHeight, "Dear "+userName+",", "", 1, "", false, 0, "")
	doc.Ln(5)

	doc.MultiCell(0, lineHeight, confirmation, "", "", false)
	doc.Ln(5)

	doc.SetFillColor(detailFillGray, detailFillGray, detailFillGray)
	for _, row := range []string{
		"Event Name: " + eventName,
		"Event Date: " + eventDate.Format(displayDateLayout),
		"Participant: " + userName,
	} {
		doc.CellFormat(0, lineHeight, row, "1", 1, "L", true, 0, "")
	}
	doc.Ln(10)

	doc.MultiCell(0, lineHeight, closingText, "", "", false)
	doc.Ln(10)
	doc.CellFormat(0, lineHeight, signOff, "", 1, "", false, 0, "")
	doc.Ln(5)
	doc.CellFormat(0, lineHeight, signature, "", 1, "", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render letter pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeText converts a request field to the Windows-1252 bytes the core
// fonts expect, failing on the first character they cannot print.
func encodeText(field, value string) (string, error) {
	for _, r := range value {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return "", fmt.Errorf("%w: %s contains %q, which the letter font cannot print", domain.ErrInvalidInput, field, r)
		}
	}
	out, err := charmap.Windows1252.NewEncoder().String(value)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, field, err)
	}
	return out, nil
}
