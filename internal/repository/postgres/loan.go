package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/repository"
)

const loanColumns = `id, owner_id, book_id, student_id, teacher_id, issue_date, due_date, return_date,
	status, days_overdue, late_fee_cents, damage_fee_cents, fine_collected, renewal_count, last_renewal_date,
	condition_on_issue, condition_on_return, issue_remarks, return_remarks, created_on, updated_on`

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, l *domain.LoanRecord) error {
	query := `INSERT INTO book_loans (owner_id, book_id, student_id, teacher_id, issue_date, due_date,
	              status, days_overdue, late_fee_cents, damage_fee_cents, fine_collected, renewal_count,
	              condition_on_issue, condition_on_return, issue_remarks, return_remarks, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	          RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		l.OwnerID, l.BookID, l.StudentID, l.TeacherID, l.IssueDate, l.DueDate,
		l.Status, l.DaysOverdue, l.LateFeeCents, l.DamageFeeCents, l.FineCollected, l.RenewalCount,
		l.ConditionOnIssue, l.ConditionOnReturn, l.IssueRemarks, l.ReturnRemarks, now, now,
	).Scan(&l.ID)
}

func (r *loanRepository) GetByID(ctx context.Context, id int32) (*domain.LoanRecord, error) {
	query := `SELECT ` + loanColumns + ` FROM book_loans WHERE id = $1`
	l, err := scanLoan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "LoanRecord", ID: id}
		}
		return nil, err
	}
	return l, nil
}

func (r *loanRepository) Update(ctx context.Context, l *domain.LoanRecord) error {
	query := `UPDATE book_loans
	          SET due_date=$1, return_date=$2, status=$3, days_overdue=$4, late_fee_cents=$5,
	              damage_fee_cents=$6, fine_collected=$7, renewal_count=$8, last_renewal_date=$9,
	              condition_on_return=$10, return_remarks=$11, updated_on=$12
	          WHERE id=$13`
	res, err := r.db.ExecContext(ctx, query,
		l.DueDate, l.ReturnDate, l.Status, l.DaysOverdue, l.LateFeeCents,
		l.DamageFeeCents, l.FineCollected, l.RenewalCount, l.LastRenewalDate,
		l.ConditionOnReturn, l.ReturnRemarks, time.Now(), l.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &domain.NotFoundError{Entity: "LoanRecord", ID: l.ID}
	}
	return nil
}

func (r *loanRepository) List(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.LoanRecord, int32, error) {
	offset := (page - 1) * pageSize
	where := `WHERE owner_id = $1`
	args := []interface{}{ownerID}
	argIdx := 2
	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM book_loans `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sqlStr := `SELECT ` + loanColumns + ` FROM book_loans ` + where +
		fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	loans, err := collectLoans(rows)
	return loans, count, err
}

func (r *loanRepository) ListByBorrower(ctx context.Context, borrowerID int32, role domain.BorrowerRole) ([]domain.LoanRecord, error) {
	column := "student_id"
	if role == domain.BorrowerRoleTeacher {
		column = "teacher_id"
	}
	query := `SELECT ` + loanColumns + ` FROM book_loans WHERE ` + column + ` = $1 ORDER BY issue_date DESC`
	return r.queryLoans(ctx, query, borrowerID)
}

func (r *loanRepository) ListByBook(ctx context.Context, bookID int32) ([]domain.LoanRecord, error) {
	query := `SELECT ` + loanColumns + ` FROM book_loans WHERE book_id = $1 ORDER BY issue_date DESC`
	return r.queryLoans(ctx, query, bookID)
}

func (r *loanRepository) CountActive(ctx context.Context, borrowerID int32, role domain.BorrowerRole) (int64, error) {
	column := "student_id"
	if role == domain.BorrowerRoleTeacher {
		column = "teacher_id"
	}
	query := `SELECT count(*) FROM book_loans WHERE ` + column + ` = $1 AND status IN ('ISSUED', 'RENEWED')`
	var count int64
	err := r.db.QueryRowContext(ctx, query, borrowerID).Scan(&count)
	return count, err
}

func (r *loanRepository) ListOutstandingDueBefore(ctx context.Context, asOf time.Time) ([]domain.LoanRecord, error) {
	query := `SELECT ` + loanColumns + ` FROM book_loans
	          WHERE status IN ('ISSUED', 'RENEWED', 'OVERDUE') AND due_date < $1
	          ORDER BY due_date`
	return r.queryLoans(ctx, query, asOf)
}

func (r *loanRepository) ListDueOn(ctx context.Context, ownerID int32, day time.Time) ([]domain.LoanRecord, error) {
	query := `SELECT ` + loanColumns + ` FROM book_loans
	          WHERE owner_id = $1 AND status IN ('ISSUED', 'RENEWED') AND due_date = $2`
	return r.queryLoans(ctx, query, ownerID, day)
}

func (r *loanRepository) ListOverdue(ctx context.Context, ownerID int32) ([]domain.LoanRecord, error) {
	query := `SELECT ` + loanColumns + ` FROM book_loans
	          WHERE owner_id = $1 AND status = 'OVERDUE' ORDER BY due_date`
	return r.queryLoans(ctx, query, ownerID)
}

func (r *loanRepository) ListWithPendingFines(ctx context.Context, ownerID int32) ([]domain.LoanRecord, error) {
	query := `SELECT ` + loanColumns + ` FROM book_loans
	          WHERE owner_id = $1 AND fine_collected = FALSE
	            AND (late_fee_cents > 0 OR damage_fee_cents > 0)
	          ORDER BY updated_on DESC`
	return r.queryLoans(ctx, query, ownerID)
}

func (r *loanRepository) ListAll(ctx context.Context, ownerID int32) ([]domain.LoanRecord, error) {
	query := `SELECT ` + loanColumns + ` FROM book_loans WHERE owner_id = $1`
	return r.queryLoans(ctx, query, ownerID)
}

func (r *loanRepository) queryLoans(ctx context.Context, query string, args ...interface{}) ([]domain.LoanRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLoans(rows)
}

func scanLoan(row rowScanner) (*domain.LoanRecord, error) {
	l := &domain.LoanRecord{}
	var conditionOnReturn sql.NullString
	err := row.Scan(&l.ID, &l.OwnerID, &l.BookID, &l.StudentID, &l.TeacherID, &l.IssueDate, &l.DueDate,
		&l.ReturnDate, &l.Status, &l.DaysOverdue, &l.LateFeeCents, &l.DamageFeeCents, &l.FineCollected,
		&l.RenewalCount, &l.LastRenewalDate, &l.ConditionOnIssue, &conditionOnReturn,
		&l.IssueRemarks, &l.ReturnRemarks, &l.CreatedOn, &l.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if conditionOnReturn.Valid {
		l.ConditionOnReturn = domain.BookCondition(conditionOnReturn.String)
	}
	return l, nil
}

func collectLoans(rows *sql.Rows) ([]domain.LoanRecord, error) {
	var loans []domain.LoanRecord
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, *l)
	}
	return loans, rows.Err()
}
