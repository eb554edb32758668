package service

import (
	"time"

	"schoolhub-backend/internal/config"
	"schoolhub-backend/internal/domain"
)

// BorrowPolicy is the pure decision logic for issuing and renewing:
// role-based caps, the reference-only flag and due-date computation.
// It reads state handed to it and never touches persistence.
type BorrowPolicy struct {
	maxBooksPerStudent int64
	maxBooksPerTeacher int64
	maxRenewalCount    int32
	defaultBorrowDays  int32
}

func NewBorrowPolicy(cfg config.LibraryConfig) BorrowPolicy {
	return BorrowPolicy{
		maxBooksPerStudent: int64(cfg.MaxBooksPerStudent),
		maxBooksPerTeacher: int64(cfg.MaxBooksPerTeacher),
		maxRenewalCount:    int32(cfg.MaxRenewalCount),
		defaultBorrowDays:  int32(cfg.DefaultBorrowDays),
	}
}

// BorrowCap returns the concurrent-loan limit for a role.
func (p BorrowPolicy) BorrowCap(role domain.BorrowerRole) int64 {
	if role == domain.BorrowerRoleTeacher {
		return p.maxBooksPerTeacher
	}
	return p.maxBooksPerStudent
}

// MaxRenewals returns the renewal cap per loan.
func (p BorrowPolicy) MaxRenewals() int32 {
	return p.maxRenewalCount
}

// CanIssue decides whether another loan of book is allowed for a borrower
// with activeLoans outstanding. Returns nil on allow, or a rule error
// carrying the denial reason.
func (p BorrowPolicy) CanIssue(book *domain.Book, role domain.BorrowerRole, activeLoans int64) error {
	if book.IsReferenceOnly {
		return domain.NewBusinessRuleError(domain.ReasonReferenceOnly,
			"book %q is reference only and cannot be issued", book.Title)
	}
	if book.AvailableCopies <= 0 {
		return domain.NewBusinessRuleError(domain.ReasonNoCopiesAvailable,
			"book %q is not available for issue", book.Title)
	}
	if limit := p.BorrowCap(role); activeLoans >= limit {
		return domain.NewBusinessRuleError(domain.ReasonBorrowerAtCap,
			"borrower has reached the maximum limit of %d books", limit)
	}
	return nil
}

// ComputeDueDate derives the due date from the issue date and the book's
// borrow window; a zero maxBorrowDays falls back to the configured default.
func (p BorrowPolicy) ComputeDueDate(issueDate time.Time, maxBorrowDays int32) time.Time {
	days := maxBorrowDays
	if days <= 0 {
		days = p.defaultBorrowDays
	}
	return issueDate.AddDate(0, 0, int(days))
}

// RenewalDays resolves the due-date extension for a renewal.
func (p BorrowPolicy) RenewalDays(additionalDays, maxBorrowDays int32) int32 {
	if additionalDays > 0 {
		return additionalDays
	}
	if maxBorrowDays > 0 {
		return maxBorrowDays
	}
	return p.defaultBorrowDays
}
