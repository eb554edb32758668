package service

import (
	"context"
	"time"

	"schoolhub-backend/internal/domain"
)

// IssueRequest carries the inputs of a book issue. Exactly one of
// StudentID / TeacherID must be set.
type IssueRequest struct {
	OwnerID   int32
	BookID    int32
	StudentID *int32
	TeacherID *int32
	// IssueDate defaults to today when zero.
	IssueDate time.Time
	// Condition defaults to GOOD when empty.
	Condition domain.BookCondition
	Remarks   string
}

// ReturnRequest carries the inputs of a book return.
type ReturnRequest struct {
	LoanID int32
	// ReturnDate defaults to today when zero.
	ReturnDate time.Time
	// Condition defaults to GOOD when empty.
	Condition domain.BookCondition
	// DamageFeeCents > 0 marks the returned copy damaged.
	DamageFeeCents int64
	Remarks        string
}

type CirculationService interface {
	IssueBook(ctx context.Context, req IssueRequest) (*domain.LoanRecord, error)
	ReturnBook(ctx context.Context, req ReturnRequest) (*domain.LoanRecord, error)
	RenewBook(ctx context.Context, loanID int32, additionalDays int32) (*domain.LoanRecord, error)
	MarkLost(ctx context.Context, loanID int32, remarks string) (*domain.LoanRecord, error)
	MarkDamaged(ctx context.Context, loanID int32, damageFeeCents int64, remarks string) (*domain.LoanRecord, error)
	CollectFine(ctx context.Context, loanID int32) (*domain.LoanRecord, error)

	// SweepOverdue recomputes overdue status and accrued late fees for all
	// outstanding loans past due as of asOf. Idempotent for a fixed asOf;
	// returns the number of loans whose stored state changed.
	SweepOverdue(ctx context.Context, asOf time.Time) (int, error)

	// SendOverdueNotices records an in-app notification and sends an email
	// for every currently overdue loan; returns the number of notices sent.
	SendOverdueNotices(ctx context.Context) (int, error)

	GetLoan(ctx context.Context, loanID int32) (*domain.LoanRecord, error)
	ListLoans(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.LoanRecord, int32, error)
	BorrowerHistory(ctx context.Context, borrowerID int32, role domain.BorrowerRole) ([]domain.LoanRecord, error)
	CanBorrowerIssueMore(ctx context.Context, borrowerID int32, role domain.BorrowerRole) (bool, error)
	ListOverdueLoans(ctx context.Context, ownerID int32) ([]domain.LoanRecord, error)
	ListLoansDueOn(ctx context.Context, ownerID int32, day time.Time) ([]domain.LoanRecord, error)
	ListPendingFines(ctx context.Context, ownerID int32) ([]domain.LoanRecord, error)
	GetStatistics(ctx context.Context, ownerID int32) (*domain.CirculationStatistics, error)
}

type CatalogService interface {
	AddBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id int32) (*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	RemoveBook(ctx context.Context, id int32) error
	ListBooks(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Book, int32, error)
	SearchBooks(ctx context.Context, ownerID int32, query, category string, page, pageSize int32) ([]domain.Book, int32, error)
}

type EmailService interface {
	SendIssueConfirmation(ctx context.Context, email, name, bookTitle string, dueDate time.Time) error
	SendReturnConfirmation(ctx context.Context, email, name, bookTitle string, fineCents int64) error
	SendOverdueNotice(ctx context.Context, email, name, bookTitle string, daysOverdue int32, pendingFineCents int64) error
}
