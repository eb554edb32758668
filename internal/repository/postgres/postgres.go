package postgres

import (
	"database/sql"

	"schoolhub-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BookRepository
	repository.LoanRepository
	repository.BorrowerRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		BookRepository:         NewBookRepository(db),
		LoanRepository:         NewLoanRepository(db),
		BorrowerRepository:     NewBorrowerRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
