package http

import (
	"net/http"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/service"
)

// NotificationHandler serves borrower in-app notifications
type NotificationHandler struct {
	notifications service.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type notificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	TotalCount    int32                 `json:"total_count"`
}

// List handles GET /api/v1/borrowers/{id}/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	borrowerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := queryInt32(r, "limit", 20)
	if err != nil {
		writeError(w, err)
		return
	}
	offset, err := queryInt32(r, "offset", 0)
	if err != nil {
		writeError(w, err)
		return
	}

	notes, total, err := h.notifications.ListNotifications(r.Context(), borrowerID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notificationListResponse{Notifications: notes, TotalCount: total})
}

// MarkAsRead handles POST /api/v1/borrowers/{id}/notifications/{note_id}/read
func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	borrowerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	noteID, err := pathID(r, "note_id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.notifications.MarkAsRead(r.Context(), noteID, borrowerID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
