package service

import (
	"context"
	"fmt"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/logger"
	"schoolhub-backend/internal/repository"
)

type catalogService struct {
	bookRepo repository.BookRepository
}

func NewCatalogService(bookRepo repository.BookRepository) CatalogService {
	return &catalogService{bookRepo: bookRepo}
}

func (s *catalogService) AddBook(ctx context.Context, book *domain.Book) error {
	if book.ISBN == "" {
		return &domain.InvalidArgumentError{Field: "isbn", Value: ""}
	}
	if book.Title == "" {
		return &domain.InvalidArgumentError{Field: "title", Value: ""}
	}
	if book.TotalCopies <= 0 {
		return &domain.InvalidArgumentError{Field: "total_copies", Value: "must be positive"}
	}

	// A new catalog entry starts with every copy on the shelf.
	book.AvailableCopies = book.TotalCopies
	book.IssuedCopies = 0
	book.Version = 1
	book.Status = domain.BookStatusAvailable
	if book.Condition == "" {
		book.Condition = domain.BookConditionGood
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return err
	}
	logger.Info("Book added to catalog", "book_id", book.ID, "isbn", book.ISBN, "copies", book.TotalCopies)
	return nil
}

func (s *catalogService) GetBook(ctx context.Context, id int32) (*domain.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

func (s *catalogService) UpdateBook(ctx context.Context, book *domain.Book) error {
	// Copy counts are owned by the inventory ledger and ignored here.
	return s.bookRepo.Update(ctx, book)
}

func (s *catalogService) RemoveBook(ctx context.Context, id int32) error {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if book.IssuedCopies > 0 {
		return fmt.Errorf("book %q still has %d issued copies", book.Title, book.IssuedCopies)
	}
	return s.bookRepo.Delete(ctx, id)
}

func (s *catalogService) ListBooks(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Book, int32, error) {
	return s.bookRepo.List(ctx, ownerID, page, pageSize)
}

func (s *catalogService) SearchBooks(ctx context.Context, ownerID int32, query, category string, page, pageSize int32) ([]domain.Book, int32, error) {
	if category != "" {
		if _, err := domain.ParseBookCategory(category); err != nil {
			return nil, 0, err
		}
	}
	return s.bookRepo.Search(ctx, ownerID, query, category, page, pageSize)
}
