// Package notification sends applicant facing SMS events through Pub/Sub;
// the downstream notification service owns the actual delivery.
package notification

import (
	"context"
	"encoding/json"
	"time"

	"pesanet/kopa_lending/internal/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate *validator.Validate = validator.New()

// MessagePublisher is satisfied by pubsub.Publisher.
type MessagePublisher interface {
	Publish(ctx context.Context, data []byte, attributes map[string]string) error
}

// SmsNotification is the envelope the notification service consumes.
type SmsNotification struct {
	NotificationID string `json:"notification_id" validate:"required"`
	EventType      string `json:"event_type" validate:"required"`
	UserID         string `json:"user_id" validate:"required"`
	// PhoneNumber may be empty; the notification service resolves the
	// number from the user when it is.
	PhoneNumber string    `json:"phone_number"`
	Message     string    `json:"message" validate:"required"`
	CreatedAt   time.Time `json:"created_at"`
}

type NotificationService struct {
	publisher MessagePublisher
}

func NewNotificationService(publisher MessagePublisher) *NotificationService {
	return &NotificationService{publisher: publisher}
}

// Send is best effort. A failed notification never fails the operation that
// triggered it; the error is logged and swallowed by callers.
func (s *NotificationService) Send(ctx context.Context, eventType, userID, phoneNumber, message string) error {
	notification := SmsNotification{
		NotificationID: uuid.NewString(),
		EventType:      eventType,
		UserID:         userID,
		PhoneNumber:    phoneNumber,
		Message:        message,
		CreatedAt:      time.Now(),
	}

	if err := validate.Struct(notification); err != nil {
		logger.Warn(ctx, "dropping malformed %s notification for user %s: %v", eventType, userID, err)
		return err
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	attributes := map[string]string{
		"event_type": eventType,
		"user_id":    userID,
	}
	if err := s.publisher.Publish(ctx, payload, attributes); err != nil {
		logger.Error(ctx, "failed to publish %s notification for user %s: %v", eventType, userID, err)
		return err
	}
	return nil
}
