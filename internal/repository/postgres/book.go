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

const bookColumns = `id, owner_id, isbn, accession_number, title, author, publisher, category, shelf_number,
	total_copies, available_copies, issued_copies, price_cents, max_borrow_days, late_fee_per_day_cents,
	is_reference_only, status, condition, version, created_on, updated_on`

type bookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *domain.Book) error {
	query := `INSERT INTO library_books (owner_id, isbn, accession_number, title, author, publisher, category,
	              shelf_number, total_copies, available_copies, issued_copies, price_cents, max_borrow_days,
	              late_fee_per_day_cents, is_reference_only, status, condition, version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	          RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		b.OwnerID, b.ISBN, b.AccessionNumber, b.Title, b.Author, b.Publisher, b.Category,
		b.ShelfNumber, b.TotalCopies, b.AvailableCopies, b.IssuedCopies, b.PriceCents, b.MaxBorrowDays,
		b.LateFeePerDayCents, b.IsReferenceOnly, b.Status, b.Condition, b.Version, now, now,
	).Scan(&b.ID)
}

func (r *bookRepository) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM library_books WHERE id = $1 AND deleted_on IS NULL`
	b, err := scanBook(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "Book", ID: id}
		}
		return nil, err
	}
	return b, nil
}

func (r *bookRepository) Update(ctx context.Context, b *domain.Book) error {
	query := `UPDATE library_books
	          SET isbn=$1, accession_number=$2, title=$3, author=$4, publisher=$5, category=$6, shelf_number=$7,
	              price_cents=$8, max_borrow_days=$9, late_fee_per_day_cents=$10, is_reference_only=$11,
	              condition=$12, updated_on=$13
	          WHERE id=$14 AND deleted_on IS NULL`
	res, err := r.db.ExecContext(ctx, query,
		b.ISBN, b.AccessionNumber, b.Title, b.Author, b.Publisher, b.Category, b.ShelfNumber,
		b.PriceCents, b.MaxBorrowDays, b.LateFeePerDayCents, b.IsReferenceOnly,
		b.Condition, time.Now(), b.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &domain.NotFoundError{Entity: "Book", ID: b.ID}
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE library_books SET deleted_on = $1 WHERE id = $2 AND deleted_on IS NULL`, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &domain.NotFoundError{Entity: "Book", ID: id}
	}
	return nil
}

// UpdateCounts writes a new copy-count snapshot guarded by the version
// column. Zero rows affected means another writer got there first.
func (r *bookRepository) UpdateCounts(ctx context.Context, id int32, expectedVersion int64, counts domain.BookCounts) error {
	query := `UPDATE library_books
	          SET total_copies=$1, available_copies=$2, issued_copies=$3, status=$4,
	              version=version+1, updated_on=$5
	          WHERE id=$6 AND version=$7 AND deleted_on IS NULL`
	res, err := r.db.ExecContext(ctx, query,
		counts.TotalCopies, counts.AvailableCopies, counts.IssuedCopies, counts.Status,
		time.Now(), id, expectedVersion)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}

func (r *bookRepository) List(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Book, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM library_books WHERE owner_id = $1 AND deleted_on IS NULL`, ownerID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + bookColumns + ` FROM library_books
	          WHERE owner_id = $1 AND deleted_on IS NULL
	          ORDER BY title LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, ownerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	return books, count, err
}

func (r *bookRepository) Search(ctx context.Context, ownerID int32, query, category string, page, pageSize int32) ([]domain.Book, int32, error) {
	offset := (page - 1) * pageSize
	where := `WHERE owner_id = $1 AND deleted_on IS NULL`
	args := []interface{}{ownerID}
	argIdx := 2

	if query != "" {
		where += fmt.Sprintf(" AND (title ILIKE $%d OR author ILIKE $%d OR isbn = $%d)", argIdx, argIdx, argIdx+1)
		args = append(args, "%"+query+"%", query)
		argIdx += 2
	}
	if category != "" {
		where += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM library_books `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sqlStr := `SELECT ` + bookColumns + ` FROM library_books ` + where +
		fmt.Sprintf(" ORDER BY title LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	return books, count, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBook(row rowScanner) (*domain.Book, error) {
	b := &domain.Book{}
	err := row.Scan(&b.ID, &b.OwnerID, &b.ISBN, &b.AccessionNumber, &b.Title, &b.Author, &b.Publisher,
		&b.Category, &b.ShelfNumber, &b.TotalCopies, &b.AvailableCopies, &b.IssuedCopies, &b.PriceCents,
		&b.MaxBorrowDays, &b.LateFeePerDayCents, &b.IsReferenceOnly, &b.Status, &b.Condition, &b.Version,
		&b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func collectBooks(rows *sql.Rows) ([]domain.Book, error) {
	var books []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}
