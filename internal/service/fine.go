package service

import "schoolhub-backend/internal/domain"

// Fine computation is pure; both the state machine and the read-side
// statistics use it, so there is no stored fine aggregate to drift.

// LateFeeCents computes the accrued late fee for a number of overdue days.
func LateFeeCents(daysOverdue int32, perDayCents int64) int64 {
	if daysOverdue <= 0 {
		return 0
	}
	return int64(daysOverdue) * perDayCents
}

// TotalFineCents is the sum of the loan's late and damage components.
func TotalFineCents(loan *domain.LoanRecord) int64 {
	return loan.LateFeeCents + loan.DamageFeeCents
}

// PendingFineCents is the uncollected portion of the total fine.
func PendingFineCents(loan *domain.LoanRecord) int64 {
	if loan.FineCollected {
		return 0
	}
	return TotalFineCents(loan)
}
