package service

import (
	"context"
	"fmt"
	"time"

	"schoolhub-backend/internal/config"
	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/logger"
	"schoolhub-backend/internal/repository"
	"schoolhub-backend/internal/utils"
)

type circulationService struct {
	loanRepo     repository.LoanRepository
	bookRepo     repository.BookRepository
	borrowerRepo repository.BorrowerRepository
	noteRepo     repository.NotificationRepository
	emailSvc     EmailService
	ledger       *InventoryLedger
	policy       BorrowPolicy
	clock        Clock

	defaultLateFeePerDayCents int64
}

func NewCirculationService(
	loanRepo repository.LoanRepository,
	bookRepo repository.BookRepository,
	borrowerRepo repository.BorrowerRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	clock Clock,
	cfg config.LibraryConfig,
) CirculationService {
	return &circulationService{
		loanRepo:                  loanRepo,
		bookRepo:                  bookRepo,
		borrowerRepo:              borrowerRepo,
		noteRepo:                  noteRepo,
		emailSvc:                  emailSvc,
		ledger:                    NewInventoryLedger(bookRepo, cfg.InventoryRetryAttempts),
		policy:                    NewBorrowPolicy(cfg),
		clock:                     clock,
		defaultLateFeePerDayCents: cfg.DefaultLateFeePerDayCents,
	}
}

func (s *circulationService) IssueBook(ctx context.Context, req IssueRequest) (*domain.LoanRecord, error) {
	if (req.StudentID == nil) == (req.TeacherID == nil) {
		return nil, &domain.InvalidArgumentError{Field: "borrower",
			Value: "either student_id or teacher_id must be provided, not both"}
	}

	role := domain.BorrowerRoleStudent
	borrowerID := int32(0)
	if req.StudentID != nil {
		borrowerID = *req.StudentID
	} else {
		role = domain.BorrowerRoleTeacher
		borrowerID = *req.TeacherID
	}

	book, err := s.bookRepo.GetByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	borrower, err := s.borrowerRepo.GetByID(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	if borrower.Role != role {
		return nil, &domain.InvalidArgumentError{Field: "borrower",
			Value: fmt.Sprintf("borrower %d is not a %s", borrowerID, role)}
	}

	// The active-loan count is read immediately before issuing and may be
	// slightly stale under concurrency; the borrow cap is a soft business
	// rule, not a safety property. Copy counts are the hard invariant and
	// are guarded by the ledger CAS below.
	activeLoans, err := s.loanRepo.CountActive(ctx, borrowerID, role)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanIssue(book, role, activeLoans); err != nil {
		return nil, err
	}

	condition := req.Condition
	if condition == "" {
		condition = domain.BookConditionGood
	}
	issueDate := req.IssueDate
	if issueDate.IsZero() {
		issueDate = s.clock.Today()
	}

	if err := s.ledger.DecrementAvailable(ctx, req.BookID); err != nil {
		return nil, err
	}

	loan := &domain.LoanRecord{
		OwnerID:          req.OwnerID,
		BookID:           req.BookID,
		StudentID:        req.StudentID,
		TeacherID:        req.TeacherID,
		IssueDate:        issueDate,
		DueDate:          s.policy.ComputeDueDate(issueDate, book.MaxBorrowDays),
		Status:           domain.LoanStatusIssued,
		ConditionOnIssue: condition,
		IssueRemarks:     req.Remarks,
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		// Give the copy back; without the loan row the decrement must not stand.
		if cerr := s.ledger.IncrementAvailable(ctx, req.BookID); cerr != nil {
			logger.Error("Failed to compensate inventory after loan create failure",
				"book_id", req.BookID, "error", cerr)
		}
		return nil, err
	}

	logger.Info("Book issued", "loan_id", loan.ID, "book_id", book.ID,
		"borrower_id", borrowerID, "role", role, "due_date", utils.FormatDate(loan.DueDate))
	s.notify(ctx, loan, borrower, "Book Issued",
		fmt.Sprintf("%q is due on %s", book.Title, utils.FormatDate(loan.DueDate)), "BOOK_ISSUED")
	_ = s.emailSvc.SendIssueConfirmation(ctx, borrower.Email, borrower.Name, book.Title, loan.DueDate)

	return loan, nil
}

func (s *circulationService) ReturnBook(ctx context.Context, req ReturnRequest) (*domain.LoanRecord, error) {
	loan, err := s.loanRepo.GetByID(ctx, req.LoanID)
	if err != nil {
		return nil, err
	}
	if loan.Status.Terminal() {
		return nil, domain.NewBusinessRuleError(domain.ReasonAlreadyReturned,
			"loan %d has already been closed (%s)", loan.ID, loan.Status)
	}

	book, err := s.bookRepo.GetByID(ctx, loan.BookID)
	if err != nil {
		return nil, err
	}

	returnDate := req.ReturnDate
	if returnDate.IsZero() {
		returnDate = s.clock.Today()
	}
	condition := req.Condition
	if condition == "" {
		condition = domain.BookConditionGood
	}

	prior := *loan

	daysOverdue := utils.DaysBetween(loan.DueDate, returnDate)
	if daysOverdue > 0 {
		loan.DaysOverdue = int32(daysOverdue)
		loan.LateFeeCents = LateFeeCents(int32(daysOverdue), s.lateFeePerDay(book))
		loan.Status = domain.LoanStatusOverdue
	} else {
		loan.DaysOverdue = 0
		loan.LateFeeCents = 0
		loan.Status = domain.LoanStatusReturned
	}
	// Damage takes precedence in the recorded status; the late fee stays
	// as an independent component.
	if req.DamageFeeCents > 0 {
		loan.DamageFeeCents = req.DamageFeeCents
		loan.Status = domain.LoanStatusDamaged
	}
	loan.ReturnDate = &returnDate
	loan.ConditionOnReturn = condition
	loan.ReturnRemarks = req.Remarks

	// Return and inventory increment are one atomic unit: the ledger moves
	// first, and a failed loan write rolls the copy back out.
	if err := s.ledger.IncrementAvailable(ctx, loan.BookID); err != nil {
		return nil, err
	}
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		if cerr := s.ledger.DecrementAvailable(ctx, loan.BookID); cerr != nil {
			logger.Error("Failed to compensate inventory after loan return failure",
				"book_id", loan.BookID, "error", cerr)
		}
		*loan = prior
		return nil, err
	}

	logger.Info("Book returned", "loan_id", loan.ID, "book_id", book.ID,
		"status", loan.Status, "days_overdue", loan.DaysOverdue, "late_fee_cents", loan.LateFeeCents)
	if borrower, berr := s.borrowerRepo.GetByID(ctx, loan.BorrowerID()); berr == nil {
		s.notify(ctx, loan, borrower, "Book Returned",
			fmt.Sprintf("%q was returned with status %s", book.Title, loan.Status), "BOOK_RETURNED")
		_ = s.emailSvc.SendReturnConfirmation(ctx, borrower.Email, borrower.Name, book.Title, PendingFineCents(loan))
	}

	return loan, nil
}

func (s *circulationService) RenewBook(ctx context.Context, loanID int32, additionalDays int32) (*domain.LoanRecord, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status.Terminal() {
		return nil, domain.NewBusinessRuleError(domain.ReasonAlreadyReturned,
			"loan %d has already been closed (%s)", loan.ID, loan.Status)
	}
	// The renewal count, not the status, is the real gate: a RENEWED loan
	// may renew again until the cap is reached.
	if loan.RenewalCount >= s.policy.MaxRenewals() {
		return nil, domain.NewBusinessRuleError(domain.ReasonRenewalLimitExceeded,
			"loan %d has reached the maximum renewal limit of %d", loan.ID, s.policy.MaxRenewals())
	}
	today := s.clock.Today()
	if loan.Status == domain.LoanStatusOverdue || today.After(loan.DueDate) {
		return nil, domain.NewBusinessRuleError(domain.ReasonCannotRenewOverdue,
			"loan %d is overdue and cannot be renewed", loan.ID)
	}

	book, err := s.bookRepo.GetByID(ctx, loan.BookID)
	if err != nil {
		return nil, err
	}

	days := s.policy.RenewalDays(additionalDays, book.MaxBorrowDays)
	loan.DueDate = loan.DueDate.AddDate(0, 0, int(days))
	loan.RenewalCount++
	loan.LastRenewalDate = &today
	loan.Status = domain.LoanStatusRenewed

	// No inventory effect: the copy does not change hands.
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	logger.Info("Book renewed", "loan_id", loan.ID, "renewal_count", loan.RenewalCount,
		"due_date", utils.FormatDate(loan.DueDate))
	return loan, nil
}

func (s *circulationService) MarkLost(ctx context.Context, loanID int32, remarks string) (*domain.LoanRecord, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status.Terminal() {
		return nil, domain.NewBusinessRuleError(domain.ReasonAlreadyReturned,
			"loan %d has already been closed (%s)", loan.ID, loan.Status)
	}
	book, err := s.bookRepo.GetByID(ctx, loan.BookID)
	if err != nil {
		return nil, err
	}

	prior := *loan
	loan.Status = domain.LoanStatusLost
	loan.DamageFeeCents = book.PriceCents // replacement cost
	loan.ReturnRemarks = remarks

	// The copy is gone: it never returns to available, so the issued count
	// and the total stock shrink together.
	if err := s.ledger.RemoveLostCopy(ctx, loan.BookID); err != nil {
		return nil, err
	}
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		if cerr := s.ledger.restoreLostCopy(ctx, loan.BookID); cerr != nil {
			logger.Error("Failed to compensate inventory after mark-lost failure",
				"book_id", loan.BookID, "error", cerr)
		}
		*loan = prior
		return nil, err
	}

	logger.Info("Book marked as lost", "loan_id", loan.ID, "book_id", book.ID,
		"replacement_fee_cents", loan.DamageFeeCents)
	return loan, nil
}

func (s *circulationService) MarkDamaged(ctx context.Context, loanID int32, damageFeeCents int64, remarks string) (*domain.LoanRecord, error) {
	if damageFeeCents < 0 {
		return nil, &domain.InvalidArgumentError{Field: "damage_fee_cents",
			Value: fmt.Sprintf("%d", damageFeeCents)}
	}
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status.Terminal() {
		return nil, domain.NewBusinessRuleError(domain.ReasonAlreadyReturned,
			"loan %d has already been closed (%s)", loan.ID, loan.Status)
	}

	prior := *loan
	loan.Status = domain.LoanStatusDamaged
	loan.DamageFeeCents = damageFeeCents
	loan.ConditionOnReturn = domain.BookConditionDamaged
	loan.ReturnRemarks = remarks

	// The damaged copy comes back on the shelf, flagged by its condition.
	if err := s.ledger.IncrementAvailable(ctx, loan.BookID); err != nil {
		return nil, err
	}
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		if cerr := s.ledger.DecrementAvailable(ctx, loan.BookID); cerr != nil {
			logger.Error("Failed to compensate inventory after mark-damaged failure",
				"book_id", loan.BookID, "error", cerr)
		}
		*loan = prior
		return nil, err
	}

	logger.Info("Book marked as damaged", "loan_id", loan.ID, "damage_fee_cents", damageFeeCents)
	return loan, nil
}

func (s *circulationService) CollectFine(ctx context.Context, loanID int32) (*domain.LoanRecord, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.FineCollected {
		return nil, domain.NewBusinessRuleError(domain.ReasonNoFineDue,
			"fine for loan %d has already been collected", loan.ID)
	}
	total := TotalFineCents(loan)
	if total <= 0 {
		return nil, domain.NewBusinessRuleError(domain.ReasonNoFineDue,
			"loan %d has no fine to collect", loan.ID)
	}

	// Records that payment happened; this is an idempotency guard, not a
	// monetary transaction.
	loan.FineCollected = true
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	logger.Info("Fine collected", "loan_id", loan.ID, "amount_cents", total)
	return loan, nil
}

// SweepOverdue re-derives overdue status and accrued late fees for every
// outstanding loan past its due date. Re-running with the same asOf
// recomputes the same values; loans already current are left untouched.
func (s *circulationService) SweepOverdue(ctx context.Context, asOf time.Time) (int, error) {
	asOf = utils.Midnight(asOf)
	loans, err := s.loanRepo.ListOutstandingDueBefore(ctx, asOf)
	if err != nil {
		return 0, err
	}

	feeCache := make(map[int32]int64)
	updated := 0
	for i := range loans {
		loan := &loans[i]

		perDay, ok := feeCache[loan.BookID]
		if !ok {
			book, err := s.bookRepo.GetByID(ctx, loan.BookID)
			if err != nil {
				logger.Error("Failed to load book during overdue sweep",
					"loan_id", loan.ID, "book_id", loan.BookID, "error", err)
				continue
			}
			perDay = s.lateFeePerDay(book)
			feeCache[loan.BookID] = perDay
		}

		daysOverdue := int32(utils.DaysBetween(loan.DueDate, asOf))
		if daysOverdue <= 0 {
			continue
		}
		lateFee := LateFeeCents(daysOverdue, perDay)
		if loan.Status == domain.LoanStatusOverdue &&
			loan.DaysOverdue == daysOverdue && loan.LateFeeCents == lateFee {
			continue
		}

		loan.Status = domain.LoanStatusOverdue
		loan.DaysOverdue = daysOverdue
		loan.LateFeeCents = lateFee
		if err := s.loanRepo.Update(ctx, loan); err != nil {
			logger.Error("Failed to persist overdue loan during sweep", "loan_id", loan.ID, "error", err)
			continue
		}
		updated++
	}

	logger.Info("Overdue sweep completed", "as_of", utils.FormatDate(asOf),
		"scanned", len(loans), "updated", updated)
	return updated, nil
}

func (s *circulationService) SendOverdueNotices(ctx context.Context) (int, error) {
	loans, err := s.loanRepo.ListOutstandingDueBefore(ctx, s.clock.Today())
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range loans {
		loan := &loans[i]
		borrower, err := s.borrowerRepo.GetByID(ctx, loan.BorrowerID())
		if err != nil {
			logger.Error("Failed to load borrower for overdue notice", "loan_id", loan.ID, "error", err)
			continue
		}
		book, err := s.bookRepo.GetByID(ctx, loan.BookID)
		if err != nil {
			logger.Error("Failed to load book for overdue notice", "loan_id", loan.ID, "error", err)
			continue
		}

		s.notify(ctx, loan, borrower, "Book Overdue",
			fmt.Sprintf("%q is %d day(s) overdue", book.Title, loan.DaysOverdue), "BOOK_OVERDUE")
		if err := s.emailSvc.SendOverdueNotice(ctx, borrower.Email, borrower.Name,
			book.Title, loan.DaysOverdue, PendingFineCents(loan)); err != nil {
			logger.Error("Failed to send overdue notice", "loan_id", loan.ID, "error", err)
			continue
		}
		sent++
	}

	logger.Info("Overdue notices sent", "count", sent)
	return sent, nil
}

func (s *circulationService) GetLoan(ctx context.Context, loanID int32) (*domain.LoanRecord, error) {
	return s.loanRepo.GetByID(ctx, loanID)
}

func (s *circulationService) ListLoans(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.LoanRecord, int32, error) {
	if status != "" {
		if _, err := domain.ParseLoanStatus(status); err != nil {
			return nil, 0, err
		}
	}
	return s.loanRepo.List(ctx, ownerID, status, page, pageSize)
}

func (s *circulationService) BorrowerHistory(ctx context.Context, borrowerID int32, role domain.BorrowerRole) ([]domain.LoanRecord, error) {
	return s.loanRepo.ListByBorrower(ctx, borrowerID, role)
}

func (s *circulationService) CanBorrowerIssueMore(ctx context.Context, borrowerID int32, role domain.BorrowerRole) (bool, error) {
	active, err := s.loanRepo.CountActive(ctx, borrowerID, role)
	if err != nil {
		return false, err
	}
	return active < s.policy.BorrowCap(role), nil
}

func (s *circulationService) ListOverdueLoans(ctx context.Context, ownerID int32) ([]domain.LoanRecord, error) {
	return s.loanRepo.ListOverdue(ctx, ownerID)
}

func (s *circulationService) ListLoansDueOn(ctx context.Context, ownerID int32, day time.Time) ([]domain.LoanRecord, error) {
	return s.loanRepo.ListDueOn(ctx, ownerID, utils.Midnight(day))
}

func (s *circulationService) ListPendingFines(ctx context.Context, ownerID int32) ([]domain.LoanRecord, error) {
	return s.loanRepo.ListWithPendingFines(ctx, ownerID)
}

func (s *circulationService) GetStatistics(ctx context.Context, ownerID int32) (*domain.CirculationStatistics, error) {
	loans, err := s.loanRepo.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats := &domain.CirculationStatistics{
		IssuesByStatus: make(map[domain.LoanStatus]int64),
	}
	for i := range loans {
		loan := &loans[i]
		stats.TotalIssues++
		stats.IssuesByStatus[loan.Status]++
		switch loan.Status {
		case domain.LoanStatusIssued, domain.LoanStatusRenewed:
			stats.ActiveIssues++
		case domain.LoanStatusReturned:
			stats.ReturnedIssues++
		case domain.LoanStatusOverdue:
			stats.OverdueIssues++
		case domain.LoanStatusLost:
			stats.LostBooks++
		case domain.LoanStatusDamaged:
			stats.DamagedBooks++
		}
		stats.TotalLateFeesCents += loan.LateFeeCents
		stats.TotalDamageFeesCents += loan.DamageFeeCents
		stats.TotalRenewals += int64(loan.RenewalCount)
		if pending := PendingFineCents(loan); pending > 0 {
			stats.TotalPendingFinesCents += pending
			stats.IssuesWithPendingFines++
		}
	}
	return stats, nil
}

func (s *circulationService) lateFeePerDay(book *domain.Book) int64 {
	if book.LateFeePerDayCents > 0 {
		return book.LateFeePerDayCents
	}
	return s.defaultLateFeePerDayCents
}

// notify writes a best-effort in-app notification; failures are logged
// and never fail the circulation operation.
func (s *circulationService) notify(ctx context.Context, loan *domain.LoanRecord, borrower *domain.Borrower, title, message, noteType string) {
	note := &domain.Notification{
		OwnerID:    loan.OwnerID,
		BorrowerID: borrower.ID,
		Title:      title,
		Message:    message,
		Attributes: map[string]string{
			"type":    noteType,
			"loan_id": fmt.Sprintf("%d", loan.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to create notification", "loan_id", loan.ID, "error", err)
	}
}
