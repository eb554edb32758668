package service

import (
	"context"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/repository"
)

type NotificationService interface {
	ListNotifications(ctx context.Context, borrowerID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, borrowerID int32) error
}

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) ListNotifications(ctx context.Context, borrowerID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.noteRepo.List(ctx, borrowerID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, borrowerID int32) error {
	return s.noteRepo.MarkAsRead(ctx, id, borrowerID)
}
