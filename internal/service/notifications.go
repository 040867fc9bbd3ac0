package service

import (
	"context"
	"errors"
	"fmt"

	"mentorship-service/api"
	"mentorship-service/pkg/response"
)

func (s *Service) ListNotifications(ctx context.Context, userID string) ([]*api.NotificationResponse, error) {
	const op = "service.ListNotifications"

	notifications, err := s.store.ListNotifications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		result = append(result, &api.NotificationResponse{
			ID:        notification.ID,
			UserID:    notification.UserID,
			Message:   notification.Message,
			BookingID: notification.BookingID,
			Read:      notification.Read,
			CreatedAt: notification.CreatedAt,
		})
	}

	return result, nil
}

func (s *Service) MarkNotificationRead(ctx context.Context, id string) error {
	const op = "service.MarkNotificationRead"

	err := s.store.MarkNotificationRead(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
