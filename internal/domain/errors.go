package domain

import (
	"errors"
	"fmt"
)

// RuleReason tags a BusinessRuleError with the specific circulation rule
// that rejected the operation. Callers surface the tag to the end user.
type RuleReason string

const (
	ReasonReferenceOnly        RuleReason = "REFERENCE_ONLY"
	ReasonBorrowerAtCap        RuleReason = "BORROWER_AT_CAP"
	ReasonNoCopiesAvailable    RuleReason = "NO_COPIES_AVAILABLE"
	ReasonAlreadyReturned      RuleReason = "ALREADY_RETURNED"
	ReasonRenewalLimitExceeded RuleReason = "RENEWAL_LIMIT_EXCEEDED"
	ReasonCannotRenewOverdue   RuleReason = "CANNOT_RENEW_OVERDUE"
	ReasonNoFineDue            RuleReason = "NO_FINE_DUE"
)

// BusinessRuleError rejects an operation that violates a circulation rule.
// It is a caller error, never retried.
type BusinessRuleError struct {
	Reason  RuleReason
	Message string
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", e.Reason, e.Message)
}

func NewBusinessRuleError(reason RuleReason, format string, args ...any) *BusinessRuleError {
	return &BusinessRuleError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// IsBusinessRuleViolation reports whether err carries the given reason tag.
func IsBusinessRuleViolation(err error, reason RuleReason) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre) && bre.Reason == reason
}

// NotFoundError indicates an unknown book, loan or borrower id.
type NotFoundError struct {
	Entity string
	ID     int32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

// InvalidArgumentError rejects malformed caller input, e.g. an unknown
// enum value. Unknown values are never silently replaced by a default.
type InvalidArgumentError struct {
	Field string
	Value string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid value %q for %s", e.Value, e.Field)
}

var (
	// ErrVersionConflict is returned by the store when a CAS update lost the
	// race against a concurrent writer. Internal; the inventory ledger
	// retries it and never surfaces it directly.
	ErrVersionConflict = errors.New("book was modified by another transaction")

	// ErrRetryExhausted is surfaced after the bounded CAS retry loop fails.
	// Transient infrastructure condition, retryable by the caller.
	ErrRetryExhausted = errors.New("inventory update retries exhausted")

	// ErrInvariantViolation marks a programming-error-class inconsistency
	// (negative copy count, available+issued != total). The operation is
	// aborted before any state is persisted.
	ErrInvariantViolation = errors.New("inventory invariant violation")
)
