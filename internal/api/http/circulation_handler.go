package http

import (
	"encoding/json"
	"net/http"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/service"
)

// CirculationHandler serves the loan lifecycle endpoints
type CirculationHandler struct {
	circulation service.CirculationService
}

// NewCirculationHandler creates a new circulation handler
func NewCirculationHandler(circulation service.CirculationService) *CirculationHandler {
	return &CirculationHandler{circulation: circulation}
}

type issueBookRequest struct {
	OwnerID   int32  `json:"owner_id"`
	BookID    int32  `json:"book_id"`
	StudentID *int32 `json:"student_id,omitempty"`
	TeacherID *int32 `json:"teacher_id,omitempty"`
	IssueDate string `json:"issue_date,omitempty"`
	Condition string `json:"condition,omitempty"`
	Remarks   string `json:"remarks,omitempty"`
}

// IssueBook handles POST /api/v1/loans
func (h *CirculationHandler) IssueBook(w http.ResponseWriter, r *http.Request) {
	var req issueBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.InvalidArgumentError{Field: "body", Value: err.Error()})
		return
	}

	issueDate, err := optionalDate("issue_date", req.IssueDate)
	if err != nil {
		writeError(w, err)
		return
	}
	condition, err := domain.ParseBookCondition(req.Condition)
	if err != nil {
		writeError(w, err)
		return
	}

	loan, err := h.circulation.IssueBook(r.Context(), service.IssueRequest{
		OwnerID:   req.OwnerID,
		BookID:    req.BookID,
		StudentID: req.StudentID,
		TeacherID: req.TeacherID,
		IssueDate: issueDate,
		Condition: condition,
		Remarks:   req.Remarks,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

type returnBookRequest struct {
	ReturnDate     string `json:"return_date,omitempty"`
	Condition      string `json:"condition,omitempty"`
	DamageFeeCents int64  `json:"damage_fee_cents,omitempty"`
	Remarks        string `json:"remarks,omitempty"`
}

// ReturnBook handles POST /api/v1/loans/{id}/return
func (h *CirculationHandler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req returnBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.InvalidArgumentError{Field: "body", Value: err.Error()})
		return
	}

	returnDate, err := optionalDate("return_date", req.ReturnDate)
	if err != nil {
		writeError(w, err)
		return
	}
	condition, err := domain.ParseBookCondition(req.Condition)
	if err != nil {
		writeError(w, err)
		return
	}

	loan, err := h.circulation.ReturnBook(r.Context(), service.ReturnRequest{
		LoanID:         loanID,
		ReturnDate:     returnDate,
		Condition:      condition,
		DamageFeeCents: req.DamageFeeCents,
		Remarks:        req.Remarks,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

type renewBookRequest struct {
	AdditionalDays int32 `json:"additional_days,omitempty"`
}

// RenewBook handles POST /api/v1/loans/{id}/renew
func (h *CirculationHandler) RenewBook(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req renewBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.InvalidArgumentError{Field: "body", Value: err.Error()})
		return
	}

	loan, err := h.circulation.RenewBook(r.Context(), loanID, req.AdditionalDays)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

type remarksRequest struct {
	Remarks string `json:"remarks,omitempty"`
}

// MarkLost handles POST /api/v1/loans/{id}/lost
func (h *CirculationHandler) MarkLost(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req remarksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.InvalidArgumentError{Field: "body", Value: err.Error()})
		return
	}

	loan, err := h.circulation.MarkLost(r.Context(), loanID, req.Remarks)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

type markDamagedRequest struct {
	DamageFeeCents int64  `json:"damage_fee_cents"`
	Remarks        string `json:"remarks,omitempty"`
}

// MarkDamaged handles POST /api/v1/loans/{id}/damaged
func (h *CirculationHandler) MarkDamaged(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req markDamagedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.InvalidArgumentError{Field: "body", Value: err.Error()})
		return
	}

	loan, err := h.circulation.MarkDamaged(r.Context(), loanID, req.DamageFeeCents, req.Remarks)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

// CollectFine handles POST /api/v1/loans/{id}/fine
func (h *CirculationHandler) CollectFine(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	loan, err := h.circulation.CollectFine(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

// GetLoan handles GET /api/v1/loans/{id}
func (h *CirculationHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	loan, err := h.circulation.GetLoan(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

type loanListResponse struct {
	Loans      []domain.LoanRecord `json:"loans"`
	TotalCount int32               `json:"total_count"`
}

// ListLoans handles GET /api/v1/loans with optional status filter
func (h *CirculationHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	ownerID, err := queryOwnerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize, err := pagination(r)
	if err != nil {
		writeError(w, err)
		return
	}

	loans, total, err := h.circulation.ListLoans(r.Context(), ownerID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loanListResponse{Loans: loans, TotalCount: total})
}

// BorrowerLoans handles GET /api/v1/borrowers/{id}/loans
func (h *CirculationHandler) BorrowerLoans(w http.ResponseWriter, r *http.Request) {
	borrowerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	role, err := domain.ParseBorrowerRole(r.URL.Query().Get("role"))
	if err != nil {
		writeError(w, err)
		return
	}

	loans, err := h.circulation.BorrowerHistory(r.Context(), borrowerID, role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loanListResponse{Loans: loans, TotalCount: int32(len(loans))})
}

type canIssueResponse struct {
	CanIssue bool `json:"can_issue"`
}

// CanIssueMore handles GET /api/v1/borrowers/{id}/can-issue
func (h *CirculationHandler) CanIssueMore(w http.ResponseWriter, r *http.Request) {
	borrowerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	role, err := domain.ParseBorrowerRole(r.URL.Query().Get("role"))
	if err != nil {
		writeError(w, err)
		return
	}

	ok, err := h.circulation.CanBorrowerIssueMore(r.Context(), borrowerID, role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, canIssueResponse{CanIssue: ok})
}

// ListOverdue handles GET /api/v1/loans/overdue
func (h *CirculationHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	ownerID, err := queryOwnerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	loans, err := h.circulation.ListOverdueLoans(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loanListResponse{Loans: loans, TotalCount: int32(len(loans))})
}

// ListDueOn handles GET /api/v1/loans/due?date=yyyy-mm-dd
func (h *CirculationHandler) ListDueOn(w http.ResponseWriter, r *http.Request) {
	ownerID, err := queryOwnerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	day, err := queryDate(r, "date")
	if err != nil {
		writeError(w, err)
		return
	}
	if day.IsZero() {
		writeError(w, &domain.InvalidArgumentError{Field: "date", Value: ""})
		return
	}

	loans, err := h.circulation.ListLoansDueOn(r.Context(), ownerID, day)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loanListResponse{Loans: loans, TotalCount: int32(len(loans))})
}

// ListPendingFines handles GET /api/v1/loans/fines/pending
func (h *CirculationHandler) ListPendingFines(w http.ResponseWriter, r *http.Request) {
	ownerID, err := queryOwnerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	loans, err := h.circulation.ListPendingFines(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loanListResponse{Loans: loans, TotalCount: int32(len(loans))})
}

// Statistics handles GET /api/v1/circulation/statistics
func (h *CirculationHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	ownerID, err := queryOwnerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	stats, err := h.circulation.GetStatistics(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
