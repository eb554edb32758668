package unit

import (
	"context"
	"time"

	"schoolhub-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockBookRepo
type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) Create(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}
func (m *MockBookRepo) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookRepo) Update(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}
func (m *MockBookRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBookRepo) List(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Book, int32, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]domain.Book), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookRepo) Search(ctx context.Context, ownerID int32, query, category string, page, pageSize int32) ([]domain.Book, int32, error) {
	args := m.Called(ctx, ownerID, query, category, page, pageSize)
	return args.Get(0).([]domain.Book), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookRepo) UpdateCounts(ctx context.Context, id int32, expectedVersion int64, counts domain.BookCounts) error {
	args := m.Called(ctx, id, expectedVersion, counts)
	return args.Error(0)
}

// MockLoanRepo
type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, loan *domain.LoanRecord) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) GetByID(ctx context.Context, id int32) (*domain.LoanRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanRecord), args.Error(1)
}
func (m *MockLoanRepo) Update(ctx context.Context, loan *domain.LoanRecord) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) List(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.LoanRecord, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.LoanRecord), args.Get(1).(int32), args.Error(2)
}
func (m *MockLoanRepo) ListByBorrower(ctx context.Context, borrowerID int32, role domain.BorrowerRole) ([]domain.LoanRecord, error) {
	args := m.Called(ctx, borrowerID, role)
	return args.Get(0).([]domain.LoanRecord), args.Error(1)
}
func (m *MockLoanRepo) ListByBook(ctx context.Context, bookID int32) ([]domain.LoanRecord, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).([]domain.LoanRecord), args.Error(1)
}
func (m *MockLoanRepo) CountActive(ctx context.Context, borrowerID int32, role domain.BorrowerRole) (int64, error) {
	args := m.Called(ctx, borrowerID, role)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockLoanRepo) ListOutstandingDueBefore(ctx context.Context, asOf time.Time) ([]domain.LoanRecord, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.LoanRecord), args.Error(1)
}
func (m *MockLoanRepo) ListDueOn(ctx context.Context, ownerID int32, day time.Time) ([]domain.LoanRecord, error) {
	args := m.Called(ctx, ownerID, day)
	return args.Get(0).([]domain.LoanRecord), args.Error(1)
}
func (m *MockLoanRepo) ListOverdue(ctx context.Context, ownerID int32) ([]domain.LoanRecord, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.LoanRecord), args.Error(1)
}
func (m *MockLoanRepo) ListWithPendingFines(ctx context.Context, ownerID int32) ([]domain.LoanRecord, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.LoanRecord), args.Error(1)
}
func (m *MockLoanRepo) ListAll(ctx context.Context, ownerID int32) ([]domain.LoanRecord, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.LoanRecord), args.Error(1)
}

// MockBorrowerRepo
type MockBorrowerRepo struct {
	mock.Mock
}

func (m *MockBorrowerRepo) GetByID(ctx context.Context, id int32) (*domain.Borrower, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrower), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, borrowerID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, borrowerID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, borrowerID int32) error {
	args := m.Called(ctx, id, borrowerID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendIssueConfirmation(ctx context.Context, email, name, bookTitle string, dueDate time.Time) error {
	args := m.Called(ctx, email, name, bookTitle, dueDate)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnConfirmation(ctx context.Context, email, name, bookTitle string, fineCents int64) error {
	args := m.Called(ctx, email, name, bookTitle, fineCents)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueNotice(ctx context.Context, email, name, bookTitle string, daysOverdue int32, pendingFineCents int64) error {
	args := m.Called(ctx, email, name, bookTitle, daysOverdue, pendingFineCents)
	return args.Error(0)
}

// fixedClock pins Today() so due-date math is deterministic
type fixedClock struct {
	today time.Time
}

func (c fixedClock) Today() time.Time {
	return c.today
}
