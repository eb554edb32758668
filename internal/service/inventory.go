package service

import (
	"context"
	"errors"
	"fmt"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/logger"
	"schoolhub-backend/internal/repository"
)

// InventoryLedger owns the per-title copy counts. Every mutation is an
// optimistic read-modify-write against the book's version column,
// retried a bounded number of times on conflict; no lock is held across
// a whole circulation operation.
type InventoryLedger struct {
	books         repository.BookRepository
	retryAttempts int
}

func NewInventoryLedger(books repository.BookRepository, retryAttempts int) *InventoryLedger {
	if retryAttempts <= 0 {
		retryAttempts = 3
	}
	return &InventoryLedger{books: books, retryAttempts: retryAttempts}
}

// DecrementAvailable moves one copy from available to issued. Fails with
// a NO_COPIES_AVAILABLE rule error when no copy is free at the time of
// the attempt.
func (il *InventoryLedger) DecrementAvailable(ctx context.Context, bookID int32) error {
	return il.mutate(ctx, bookID, func(b *domain.Book) (domain.BookCounts, error) {
		if b.AvailableCopies <= 0 {
			return domain.BookCounts{}, domain.NewBusinessRuleError(domain.ReasonNoCopiesAvailable,
				"book %q has no available copies", b.Title)
		}
		return domain.BookCounts{
			TotalCopies:     b.TotalCopies,
			AvailableCopies: b.AvailableCopies - 1,
			IssuedCopies:    b.IssuedCopies + 1,
			Status:          copyCountStatus(b.Status, b.AvailableCopies-1),
		}, nil
	})
}

// IncrementAvailable moves one copy from issued back to available.
func (il *InventoryLedger) IncrementAvailable(ctx context.Context, bookID int32) error {
	return il.mutate(ctx, bookID, func(b *domain.Book) (domain.BookCounts, error) {
		return domain.BookCounts{
			TotalCopies:     b.TotalCopies,
			AvailableCopies: b.AvailableCopies + 1,
			IssuedCopies:    b.IssuedCopies - 1,
			Status:          copyCountStatus(b.Status, b.AvailableCopies+1),
		}, nil
	})
}

// RemoveLostCopy retires a lost copy: the issued count and the total
// stock shrink together so available+issued==total keeps holding.
func (il *InventoryLedger) RemoveLostCopy(ctx context.Context, bookID int32) error {
	return il.mutate(ctx, bookID, func(b *domain.Book) (domain.BookCounts, error) {
		return domain.BookCounts{
			TotalCopies:     b.TotalCopies - 1,
			AvailableCopies: b.AvailableCopies,
			IssuedCopies:    b.IssuedCopies - 1,
			Status:          copyCountStatus(b.Status, b.AvailableCopies),
		}, nil
	})
}

// restoreLostCopy is the compensating inverse of RemoveLostCopy, used
// when the loan write fails after the ledger already committed.
func (il *InventoryLedger) restoreLostCopy(ctx context.Context, bookID int32) error {
	return il.mutate(ctx, bookID, func(b *domain.Book) (domain.BookCounts, error) {
		return domain.BookCounts{
			TotalCopies:     b.TotalCopies + 1,
			AvailableCopies: b.AvailableCopies,
			IssuedCopies:    b.IssuedCopies + 1,
			Status:          copyCountStatus(b.Status, b.AvailableCopies),
		}, nil
	})
}

// mutate runs the CAS loop: read the book, derive the next counts,
// write guarded by the version read. A version conflict retries the
// whole read-modify-write; anything else surfaces immediately.
func (il *InventoryLedger) mutate(ctx context.Context, bookID int32, next func(*domain.Book) (domain.BookCounts, error)) error {
	for attempt := 1; attempt <= il.retryAttempts; attempt++ {
		book, err := il.books.GetByID(ctx, bookID)
		if err != nil {
			return err
		}
		if err := checkInvariants(book.TotalCopies, book.AvailableCopies, book.IssuedCopies); err != nil {
			logger.Error("Inventory invariant violated before mutation", "book_id", bookID, "error", err)
			return err
		}

		counts, err := next(book)
		if err != nil {
			return err
		}
		if err := checkInvariants(counts.TotalCopies, counts.AvailableCopies, counts.IssuedCopies); err != nil {
			logger.Error("Inventory mutation would violate invariants", "book_id", bookID, "error", err)
			return err
		}

		err = il.books.UpdateCounts(ctx, bookID, book.Version, counts)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return err
		}
		logger.Debug("Inventory CAS conflict, retrying", "book_id", bookID, "attempt", attempt)
	}
	return fmt.Errorf("%w: book %d after %d attempts", domain.ErrRetryExhausted, bookID, il.retryAttempts)
}

// copyCountStatus derives the stock status after a copy-count change.
// DAMAGED/LOST flags set outside circulation are preserved.
func copyCountStatus(current domain.BookStatus, available int32) domain.BookStatus {
	if current == domain.BookStatusDamaged || current == domain.BookStatusLost ||
		current == domain.BookStatusUnderRepair || current == domain.BookStatusOutOfPrint {
		return current
	}
	if available > 0 {
		return domain.BookStatusAvailable
	}
	return domain.BookStatusIssued
}

// checkInvariants guards the hard inventory invariants. Violations are
// programming errors, never clamped.
func checkInvariants(total, available, issued int32) error {
	if available < 0 || issued < 0 || total < 0 {
		return fmt.Errorf("%w: negative count (total=%d available=%d issued=%d)",
			domain.ErrInvariantViolation, total, available, issued)
	}
	if available+issued != total {
		return fmt.Errorf("%w: available(%d) + issued(%d) != total(%d)",
			domain.ErrInvariantViolation, available, issued, total)
	}
	return nil
}
