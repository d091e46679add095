package internal

import (
	"errors"
	"fmt"
)

type FailureKind string

const (
	KindInvalidInput        FailureKind = "invalid_input"
	KindNotFound            FailureKind = "not_found"
	KindAuthRequired        FailureKind = "authentication_required"
	KindRateLimited         FailureKind = "rate_limited"
	KindUpstreamUnavailable FailureKind = "upstream_unavailable"
	KindUpstreamError       FailureKind = "upstream_error"
	KindMissingField        FailureKind = "missing_field"
	KindNetworkError        FailureKind = "network_error"
	KindPageStructure       FailureKind = "page_structure"
	KindAggregateFailure    FailureKind = "aggregate_failure"
)

// Failure is a value-carrying outcome for every non-success path in the
// capture pipeline and the store. The kind drives control flow (degrade vs
// surface), the message is kept verbatim for diagnostics.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f *Failure) Error() string {
	return string(f.Kind) + ": " + f.Message
}

func Failf(kind FailureKind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the failure kind carried by err, or "" for foreign errors.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}
