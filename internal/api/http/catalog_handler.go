package http

import (
	"encoding/json"
	"net/http"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/service"
)

// CatalogHandler serves the book catalog endpoints
type CatalogHandler struct {
	catalog service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// AddBook handles POST /api/v1/books
func (h *CatalogHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var book domain.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		writeError(w, &domain.InvalidArgumentError{Field: "body", Value: err.Error()})
		return
	}
	if book.Category != "" {
		if _, err := domain.ParseBookCategory(string(book.Category)); err != nil {
			writeError(w, err)
			return
		}
	}

	if err := h.catalog.AddBook(r.Context(), &book); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

// GetBook handles GET /api/v1/books/{id}
func (h *CatalogHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	book, err := h.catalog.GetBook(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// UpdateBook handles PUT /api/v1/books/{id}
func (h *CatalogHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var book domain.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		writeError(w, &domain.InvalidArgumentError{Field: "body", Value: err.Error()})
		return
	}
	book.ID = id

	if err := h.catalog.UpdateBook(r.Context(), &book); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// RemoveBook handles DELETE /api/v1/books/{id}
func (h *CatalogHandler) RemoveBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.catalog.RemoveBook(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type bookListResponse struct {
	Books      []domain.Book `json:"books"`
	TotalCount int32         `json:"total_count"`
}

// ListBooks handles GET /api/v1/books
func (h *CatalogHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
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

	books, total, err := h.catalog.ListBooks(r.Context(), ownerID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookListResponse{Books: books, TotalCount: total})
}

// SearchBooks handles GET /api/v1/books/search
func (h *CatalogHandler) SearchBooks(w http.ResponseWriter, r *http.Request) {
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

	q := r.URL.Query()
	books, total, err := h.catalog.SearchBooks(r.Context(), ownerID, q.Get("q"), q.Get("category"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookListResponse{Books: books, TotalCount: total})
}
