package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"schoolhub-backend/internal/service"
)

// NewRouter builds the HTTP router with all API routes registered
func NewRouter(circulation service.CirculationService, catalog service.CatalogService, notifications service.NotificationService) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware)
	router.Use(LoggingMiddleware)

	circulationHandler := NewCirculationHandler(circulation)
	catalogHandler := NewCatalogHandler(catalog)
	notificationHandler := NewNotificationHandler(notifications)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Loan lifecycle. Fixed paths register before the {id} routes so that
	// "overdue" and "due" are not swallowed as loan ids.
	api.HandleFunc("/loans/overdue", circulationHandler.ListOverdue).Methods("GET")
	api.HandleFunc("/loans/due", circulationHandler.ListDueOn).Methods("GET")
	api.HandleFunc("/loans/fines/pending", circulationHandler.ListPendingFines).Methods("GET")
	api.HandleFunc("/loans", circulationHandler.IssueBook).Methods("POST")
	api.HandleFunc("/loans", circulationHandler.ListLoans).Methods("GET")
	api.HandleFunc("/loans/{id:[0-9]+}", circulationHandler.GetLoan).Methods("GET")
	api.HandleFunc("/loans/{id:[0-9]+}/return", circulationHandler.ReturnBook).Methods("POST")
	api.HandleFunc("/loans/{id:[0-9]+}/renew", circulationHandler.RenewBook).Methods("POST")
	api.HandleFunc("/loans/{id:[0-9]+}/lost", circulationHandler.MarkLost).Methods("POST")
	api.HandleFunc("/loans/{id:[0-9]+}/damaged", circulationHandler.MarkDamaged).Methods("POST")
	api.HandleFunc("/loans/{id:[0-9]+}/fine", circulationHandler.CollectFine).Methods("POST")

	// Borrower views
	api.HandleFunc("/borrowers/{id:[0-9]+}/loans", circulationHandler.BorrowerLoans).Methods("GET")
	api.HandleFunc("/borrowers/{id:[0-9]+}/can-issue", circulationHandler.CanIssueMore).Methods("GET")
	api.HandleFunc("/borrowers/{id:[0-9]+}/notifications", notificationHandler.List).Methods("GET")
	api.HandleFunc("/borrowers/{id:[0-9]+}/notifications/{note_id:[0-9]+}/read", notificationHandler.MarkAsRead).Methods("POST")

	// Statistics
	api.HandleFunc("/circulation/statistics", circulationHandler.Statistics).Methods("GET")

	// Catalog
	api.HandleFunc("/books/search", catalogHandler.SearchBooks).Methods("GET")
	api.HandleFunc("/books", catalogHandler.AddBook).Methods("POST")
	api.HandleFunc("/books", catalogHandler.ListBooks).Methods("GET")
	api.HandleFunc("/books/{id:[0-9]+}", catalogHandler.GetBook).Methods("GET")
	api.HandleFunc("/books/{id:[0-9]+}", catalogHandler.UpdateBook).Methods("PUT")
	api.HandleFunc("/books/{id:[0-9]+}", catalogHandler.RemoveBook).Methods("DELETE")

	// Liveness probe
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	return router
}
