package usecase

import (
	"regexp"
	"strings"

	domainRecord "github.com/nextplot/nextplot-gw/domains/record"
)

// Record completion states.
const (
	StatusDraft           = "draft"
	StatusPending         = "pending"
	StatusPendingOCR      = "pending-ocr"
	StatusPendingDeedList = "pending-deedlist"
	StatusFinalized       = "finalized"
)

// e.g. "deed 3 plots": a declared deed count without the actual numbers.
var patternDeedCount = regexp.MustCompile(`(?i)\bdeed\s+(\d+)\s*plots\b`)

// FinalizePayload is the input of the status derivation.
type FinalizePayload struct {
	Code   string
	DeedNo string
	Text   string
}

// CheckFinalize derives the completion status of a record. Missing CODE
// demotes to draft; a missing deed number is either pending-deedlist (the
// text declares a deed count) or pending-ocr; both fields present finalize.
func CheckFinalize(p FinalizePayload) domainRecord.StatusReport {
	code := strings.TrimSpace(p.Code)
	deed := strings.TrimSpace(p.DeedNo)

	status := StatusPending
	var notes []string

	if code == "" {
		status = StatusDraft
		notes = append(notes, "Missing CODE -> Draft")
	}

	if deed == "" {
		if patternDeedCount.MatchString(p.Text) {
			status = StatusPendingDeedList
			notes = append(notes, "Declared deed count but missing numbers -> Pending-DeedList")
		} else {
			if status != StatusDraft {
				status = StatusPendingOCR
			}
			notes = append(notes, "Missing deed number -> Pending-OCR")
		}
	}

	if status == StatusPending && code != "" && deed != "" {
		status = StatusFinalized
		notes = append(notes, "Ready to finalize")
	}

	return domainRecord.StatusReport{Status: status, Notes: notes}
}
