package pipeline

import (
	"context"
	"regexp"
	"time"

	"go.uber.org/zap"

	"leetfolio/internal"
	"leetfolio/internal/leetcode"
	"leetfolio/internal/metrics"
)

// SubmissionSource is the structured primary stage, normally the LeetCode
// GraphQL client.
type SubmissionSource interface {
	SubmissionDetails(ctx context.Context, submissionID string) (*leetcode.SubmissionDetails, error)
}

// Orchestrator runs the two-stage extraction: primary query first, page scan
// second. The primary is authoritative but has been observed to return stale
// or corrupted payloads, so its output goes through the same validators as the
// fallback before it is trusted.
type Orchestrator struct {
	primary SubmissionSource
	settle  time.Duration
	log     *zap.Logger
}

func NewOrchestrator(primary SubmissionSource, settle time.Duration, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{primary: primary, settle: settle, log: log}
}

var submissionIDPattern = regexp.MustCompile(`/submissions/(?:detail/)?(\d+)`)

// ParseSubmissionID extracts the numeric submission identifier from a page
// location. Empty when the location carries none.
func ParseSubmissionID(pageURL string) string {
	if m := submissionIDPattern.FindStringSubmatch(pageURL); m != nil {
		return m[1]
	}
	return ""
}

// submissionLink is the canonical path template. Never the page's current
// path, which may differ from the canonical one.
func submissionLink(id string) string {
	return "/submissions/detail/" + id + "/"
}

// Capture produces one normalized record for the submission on pageURL, or an
// aggregate failure carrying both stage reasons.
func (o *Orchestrator) Capture(ctx context.Context, pageURL string, load PageLoader) (internal.ExtractedRecord, error) {
	id := ParseSubmissionID(pageURL)
	if id == "" {
		return internal.ExtractedRecord{}, internal.Failf(internal.KindInvalidInput, "no submission id in page location %q", pageURL)
	}

	metrics.CaptureAttempts.Inc()

	details, primaryErr := o.primary.SubmissionDetails(ctx, id)
	if primaryErr == nil {
		switch {
		case !PlausibleCode(details.Code):
			primaryErr = internal.Failf(internal.KindUpstreamError, "primary returned implausible code")
		case !PlausibleLanguageLabel(details.Lang):
			primaryErr = internal.Failf(internal.KindUpstreamError, "primary returned implausible language %q", details.Lang)
		}
	}

	if primaryErr == nil {
		return internal.ExtractedRecord{
			Name:           StripOrdinalPrefix(details.Title),
			Code:           details.Code,
			Language:       LanguageName(details.Lang),
			SubmissionLink: submissionLink(id),
		}, nil
	}

	// Deliberate degrade path: every primary failure falls through to the
	// page scan, none terminates the capture on its own.
	o.log.Warn("primary extraction failed, scanning page",
		zap.String("submissionId", id),
		zap.Error(primaryErr))
	metrics.PrimaryFailures.Inc()
	metrics.FallbackScans.Inc()

	page, fallbackErr := NewFallbackExtractor(o.settle, load).Extract()
	if fallbackErr != nil {
		metrics.CaptureFailures.Inc()
		return internal.ExtractedRecord{}, internal.Failf(internal.KindAggregateFailure,
			"primary: %v; fallback: %v", primaryErr, fallbackErr)
	}

	return internal.ExtractedRecord{
		Name:           StripOrdinalPrefix(page.Title),
		Code:           page.Code,
		Language:       page.Language,
		SubmissionLink: submissionLink(id),
	}, nil
}
