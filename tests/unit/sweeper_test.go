package unit

import (
	"context"
	"testing"

	"schoolhub-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCirculationService_SweepOverdue(t *testing.T) {
	ctx := context.Background()

	book := &domain.Book{ID: 1, Title: "Physics", LateFeePerDayCents: 500, TotalCopies: 1, IssuedCopies: 1, Version: 2}

	t.Run("Marks Past Due Loans And Is Idempotent", func(t *testing.T) {
		f := newCirculationFixture(day(20))
		loans := []domain.LoanRecord{
			{ID: 10, BookID: 1, StudentID: ptr(7), DueDate: day(14), Status: domain.LoanStatusIssued},
			{ID: 11, BookID: 1, StudentID: ptr(8), DueDate: day(18), Status: domain.LoanStatusRenewed},
		}
		f.loanRepo.On("ListOutstandingDueBefore", ctx, day(20)).Return(loans, nil)
		f.bookRepo.On("GetByID", ctx, int32(1)).Return(book, nil)
		f.loanRepo.On("Update", ctx, mock.AnythingOfType("*domain.LoanRecord")).Return(nil)

		updated, err := f.svc.SweepOverdue(ctx, day(20))
		assert.NoError(t, err)
		assert.Equal(t, 2, updated)
		assert.Equal(t, domain.LoanStatusOverdue, loans[0].Status)
		assert.Equal(t, int32(6), loans[0].DaysOverdue)
		assert.Equal(t, int64(3000), loans[0].LateFeeCents)
		assert.Equal(t, int32(2), loans[1].DaysOverdue)
		assert.Equal(t, int64(1000), loans[1].LateFeeCents)

		// A second sweep with the same date finds nothing to change
		updated, err = f.svc.SweepOverdue(ctx, day(20))
		assert.NoError(t, err)
		assert.Equal(t, 0, updated)
		f.loanRepo.AssertNumberOfCalls(t, "Update", 2)
	})

	t.Run("Later Sweep Re-Accrues", func(t *testing.T) {
		f := newCirculationFixture(day(25))
		loans := []domain.LoanRecord{
			{ID: 10, BookID: 1, StudentID: ptr(7), DueDate: day(14),
				Status: domain.LoanStatusOverdue, DaysOverdue: 6, LateFeeCents: 3000},
		}
		f.loanRepo.On("ListOutstandingDueBefore", ctx, day(25)).Return(loans, nil)
		f.bookRepo.On("GetByID", ctx, int32(1)).Return(book, nil)
		f.loanRepo.On("Update", ctx, mock.AnythingOfType("*domain.LoanRecord")).Return(nil)

		updated, err := f.svc.SweepOverdue(ctx, day(25))
		assert.NoError(t, err)
		assert.Equal(t, 1, updated)
		assert.Equal(t, int32(11), loans[0].DaysOverdue)
		assert.Equal(t, int64(5500), loans[0].LateFeeCents)
	})
}

func TestCirculationService_SendOverdueNotices(t *testing.T) {
	ctx := context.Background()
	f := newCirculationFixture(day(20))

	book := &domain.Book{ID: 1, Title: "Physics"}
	borrower := &domain.Borrower{ID: 7, Name: "Amy", Email: "amy@test.com", Role: domain.BorrowerRoleStudent}
	loans := []domain.LoanRecord{
		{ID: 10, OwnerID: 1, BookID: 1, StudentID: ptr(7), DueDate: day(14),
			Status: domain.LoanStatusOverdue, DaysOverdue: 6, LateFeeCents: 3000},
	}

	f.loanRepo.On("ListOutstandingDueBefore", ctx, day(20)).Return(loans, nil)
	f.borrowerRepo.On("GetByID", ctx, int32(7)).Return(borrower, nil)
	f.bookRepo.On("GetByID", ctx, int32(1)).Return(book, nil)
	f.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
	f.emailSvc.On("SendOverdueNotice", ctx, "amy@test.com", "Amy", "Physics", int32(6), int64(3000)).Return(nil)

	sent, err := f.svc.SendOverdueNotices(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	f.noteRepo.AssertNumberOfCalls(t, "Create", 1)
}
