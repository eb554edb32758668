package domain

import "time"

// Notification is an in-app notice for a borrower (overdue reminders,
// issue and return confirmations). Delivery formatting lives in the
// email service; this row is the durable record.
type Notification struct {
	ID         int32             `json:"id"`
	OwnerID    int32             `json:"owner_id"`
	BorrowerID int32             `json:"borrower_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Attributes map[string]string `json:"attributes,omitempty"`
	IsRead     bool              `json:"is_read"`
	CreatedOn  time.Time         `json:"created_on"`
}
