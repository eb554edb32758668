package repository

import (
	"context"
	"time"

	"schoolhub-backend/internal/domain"
)

// Repositories only ever return non-deleted rows; tenant scoping
// (owner_id) is applied in the store layer so the services stay free
// of deletion and tenancy concerns.

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id int32) (*domain.Book, error)
	// Update persists catalog fields only; copy counts and version go
	// through UpdateCounts exclusively.
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Book, int32, error)
	Search(ctx context.Context, ownerID int32, query, category string, page, pageSize int32) ([]domain.Book, int32, error)

	// UpdateCounts is the compare-and-swap mutation backing the inventory
	// ledger: the write succeeds only if the stored version still equals
	// expectedVersion, and increments the version. A lost race returns
	// domain.ErrVersionConflict.
	UpdateCounts(ctx context.Context, id int32, expectedVersion int64, counts domain.BookCounts) error
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.LoanRecord) error
	GetByID(ctx context.Context, id int32) (*domain.LoanRecord, error)
	Update(ctx context.Context, loan *domain.LoanRecord) error
	List(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.LoanRecord, int32, error)
	ListByBorrower(ctx context.Context, borrowerID int32, role domain.BorrowerRole) ([]domain.LoanRecord, error)
	ListByBook(ctx context.Context, bookID int32) ([]domain.LoanRecord, error)

	// CountActive counts loans in ISSUED or RENEWED for the borrower; the
	// borrow-cap check reads it immediately before issuing (best effort,
	// see the concurrency notes on the circulation service).
	CountActive(ctx context.Context, borrowerID int32, role domain.BorrowerRole) (int64, error)

	// ListOutstandingDueBefore feeds the overdue sweeper: loans in ISSUED,
	// RENEWED or OVERDUE whose due date is strictly before asOf.
	ListOutstandingDueBefore(ctx context.Context, asOf time.Time) ([]domain.LoanRecord, error)
	ListDueOn(ctx context.Context, ownerID int32, day time.Time) ([]domain.LoanRecord, error)
	ListOverdue(ctx context.Context, ownerID int32) ([]domain.LoanRecord, error)
	ListWithPendingFines(ctx context.Context, ownerID int32) ([]domain.LoanRecord, error)
	ListAll(ctx context.Context, ownerID int32) ([]domain.LoanRecord, error)
}

type BorrowerRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Borrower, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, borrowerID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, borrowerID int32) error
}
