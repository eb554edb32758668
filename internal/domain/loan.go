package domain

import "time"

type LoanStatus string

const (
	LoanStatusIssued   LoanStatus = "ISSUED"
	LoanStatusRenewed  LoanStatus = "RENEWED"
	LoanStatusReturned LoanStatus = "RETURNED"
	LoanStatusOverdue  LoanStatus = "OVERDUE"
	LoanStatusDamaged  LoanStatus = "DAMAGED"
	LoanStatusLost     LoanStatus = "LOST"
)

func ParseLoanStatus(s string) (LoanStatus, error) {
	switch LoanStatus(s) {
	case LoanStatusIssued, LoanStatusRenewed, LoanStatusReturned,
		LoanStatusOverdue, LoanStatusDamaged, LoanStatusLost:
		return LoanStatus(s), nil
	}
	return "", &InvalidArgumentError{Field: "status", Value: s}
}

// Outstanding reports whether the loaned copy is still out of the library.
// Exactly these statuses count against a book's IssuedCopies.
func (s LoanStatus) Outstanding() bool {
	return s == LoanStatusIssued || s == LoanStatusRenewed || s == LoanStatusOverdue
}

// Terminal loans accept no further transitions.
func (s LoanStatus) Terminal() bool {
	return s == LoanStatusReturned || s == LoanStatusDamaged || s == LoanStatusLost
}

// LoanRecord is one issue event and its lifecycle through eventual
// return, loss or damage. Records are never deleted (audit trail).
type LoanRecord struct {
	ID      int32 `json:"id"`
	OwnerID int32 `json:"owner_id"`
	BookID  int32 `json:"book_id"`

	// Exactly one of StudentID / TeacherID is set, never both.
	StudentID *int32 `json:"student_id,omitempty"`
	TeacherID *int32 `json:"teacher_id,omitempty"`

	IssueDate  time.Time  `json:"issue_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`

	Status      LoanStatus `json:"status"`
	DaysOverdue int32      `json:"days_overdue"`

	LateFeeCents   int64 `json:"late_fee_cents"`
	DamageFeeCents int64 `json:"damage_fee_cents"`
	FineCollected  bool  `json:"fine_collected"`

	RenewalCount    int32      `json:"renewal_count"`
	LastRenewalDate *time.Time `json:"last_renewal_date,omitempty"`

	ConditionOnIssue  BookCondition `json:"condition_on_issue"`
	ConditionOnReturn BookCondition `json:"condition_on_return,omitempty"`

	IssueRemarks  string `json:"issue_remarks,omitempty"`
	ReturnRemarks string `json:"return_remarks,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// BorrowerID returns the borrower reference regardless of role.
func (l *LoanRecord) BorrowerID() int32 {
	if l.StudentID != nil {
		return *l.StudentID
	}
	if l.TeacherID != nil {
		return *l.TeacherID
	}
	return 0
}

func (l *LoanRecord) BorrowerRole() BorrowerRole {
	if l.StudentID != nil {
		return BorrowerRoleStudent
	}
	return BorrowerRoleTeacher
}

// CirculationStatistics is recomputed on demand from loan records; there
// is no stored aggregate to drift from the ledger.
type CirculationStatistics struct {
	TotalIssues    int64 `json:"total_issues"`
	ActiveIssues   int64 `json:"active_issues"`
	ReturnedIssues int64 `json:"returned_issues"`
	OverdueIssues  int64 `json:"overdue_issues"`
	LostBooks      int64 `json:"lost_books"`
	DamagedBooks   int64 `json:"damaged_books"`

	TotalLateFeesCents     int64 `json:"total_late_fees_cents"`
	TotalDamageFeesCents   int64 `json:"total_damage_fees_cents"`
	TotalPendingFinesCents int64 `json:"total_pending_fines_cents"`
	IssuesWithPendingFines int64 `json:"issues_with_pending_fines"`
	TotalRenewals          int64 `json:"total_renewals"`

	IssuesByStatus map[LoanStatus]int64 `json:"issues_by_status"`
}
