package postgres

import (
	"context"
	"database/sql"
	"errors"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/repository"
)

type borrowerRepository struct {
	db *sql.DB
}

func NewBorrowerRepository(db *sql.DB) repository.BorrowerRepository {
	return &borrowerRepository{db: db}
}

func (r *borrowerRepository) GetByID(ctx context.Context, id int32) (*domain.Borrower, error) {
	b := &domain.Borrower{}
	query := `SELECT id, owner_id, name, email, role, created_on
	          FROM borrowers WHERE id = $1 AND deleted_on IS NULL`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.OwnerID, &b.Name, &b.Email, &b.Role, &b.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "Borrower", ID: id}
		}
		return nil, err
	}
	return b, nil
}
