package repos

import (
	"context"
	"testing"
	"time"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func loanRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "owner_id", "book_id", "student_id", "teacher_id", "issue_date", "due_date", "return_date",
		"status", "days_overdue", "late_fee_cents", "damage_fee_cents", "fine_collected", "renewal_count",
		"last_renewal_date", "condition_on_issue", "condition_on_return", "issue_remarks", "return_remarks",
		"created_on", "updated_on",
	})
}

func TestLoanRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		issued := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		due := issued.AddDate(0, 0, 14)
		rows := loanRows().AddRow(
			10, 1, 2, 7, nil, issued, due, nil,
			"ISSUED", 0, 0, 0, false, 0, nil, "GOOD", nil, "", "",
			time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM book_loans WHERE id = \\$1").
			WithArgs(int32(10)).
			WillReturnRows(rows)

		loan, err := repo.GetByID(ctx, 10)
		assert.NoError(t, err)
		assert.NotNil(t, loan)
		assert.Equal(t, int32(10), loan.ID)
		assert.Equal(t, domain.LoanStatusIssued, loan.Status)
		assert.NotNil(t, loan.StudentID)
		assert.Equal(t, int32(7), *loan.StudentID)
		assert.Nil(t, loan.TeacherID)
		// NULL condition_on_return stays empty
		assert.Equal(t, domain.BookCondition(""), loan.ConditionOnReturn)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM book_loans WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnRows(loanRows())

		loan, err := repo.GetByID(ctx, 99)
		assert.Error(t, err)
		assert.Nil(t, loan)
		var notFound *domain.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestLoanRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		studentID := int32(7)
		issued := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		loan := &domain.LoanRecord{
			OwnerID: 1, BookID: 2, StudentID: &studentID,
			IssueDate: issued, DueDate: issued.AddDate(0, 0, 14),
			Status: domain.LoanStatusIssued, ConditionOnIssue: domain.BookConditionGood,
		}

		mock.ExpectQuery("INSERT INTO book_loans").
			WithArgs(loan.OwnerID, loan.BookID, loan.StudentID, loan.TeacherID, loan.IssueDate, loan.DueDate,
				loan.Status, loan.DaysOverdue, loan.LateFeeCents, loan.DamageFeeCents, loan.FineCollected,
				loan.RenewalCount, loan.ConditionOnIssue, loan.ConditionOnReturn,
				loan.IssueRemarks, loan.ReturnRemarks, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))

		err := repo.Create(ctx, loan)
		assert.NoError(t, err)
		assert.Equal(t, int32(10), loan.ID)
	})
}

func TestLoanRepository_CountActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	t.Run("Counts Student Column", func(t *testing.T) {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM book_loans WHERE student_id = \\$1").
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		count, err := repo.CountActive(ctx, 7, domain.BorrowerRoleStudent)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("Counts Teacher Column", func(t *testing.T) {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM book_loans WHERE teacher_id = \\$1").
			WithArgs(int32(9)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		count, err := repo.CountActive(ctx, 9, domain.BorrowerRoleTeacher)
		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})
}

func TestLoanRepository_ListOutstandingDueBefore(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	asOf := time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC)
	issued := asOf.AddDate(0, 0, -20)
	due := issued.AddDate(0, 0, 14)

	rows := loanRows().AddRow(
		10, 1, 2, 7, nil, issued, due, nil,
		"ISSUED", 0, 0, 0, false, 0, nil, "GOOD", nil, "", "",
		time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM book_loans").
		WithArgs(asOf).
		WillReturnRows(rows)

	loans, err := repo.ListOutstandingDueBefore(ctx, asOf)
	assert.NoError(t, err)
	assert.Len(t, loans, 1)
	assert.Equal(t, int32(10), loans[0].ID)
}
