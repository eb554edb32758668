package jobs

import (
	"context"
	"time"

	"schoolhub-backend/internal/logger"
)

// SweepOverdueLoans recomputes overdue status and accrued late fees for
// every outstanding loan past its due date. Safe to run repeatedly.
func (jr *JobRunner) SweepOverdueLoans() {
	jr.runWithRecovery("SweepOverdueLoans", func() {
		ctx := context.Background()

		updated, err := jr.circulation.SweepOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to sweep overdue loans", "error", err)
			return
		}
		logger.Info("Marked loans as overdue", "count", updated)
	})
}

// SendOverdueNotices notifies borrowers of overdue loans, in-app and by
// email. Runs after the sweep so fees are current.
func (jr *JobRunner) SendOverdueNotices() {
	jr.runWithRecovery("SendOverdueNotices", func() {
		ctx := context.Background()

		sent, err := jr.circulation.SendOverdueNotices(ctx)
		if err != nil {
			logger.Error("Failed to send overdue notices", "error", err)
			return
		}
		logger.Info("Sent overdue notices", "count", sent)
	})
}
