// Package retry re-publishes status events whose Kafka delivery failed.
// Events carry a published flag in Mongo; the sweep picks up every unset
// flag inside the lookback window, publishes in parallel and flips the
// flags in bulk.
package retry

import (
	"context"
	"encoding/json"
	"sync"

	"pesanet/kopa_lending/configs"
	"pesanet/kopa_lending/internal/pkg/kafka/producer"
	"pesanet/kopa_lending/internal/pkg/logger"
	"pesanet/kopa_lending/internal/pkg/models"
)

type StatusEventsRepo interface {
	UnpublishedEventsSince(ctx context.Context, lookbackHours int32) ([]models.PaymentStatusEvent, error)
	MarkPublished(ctx context.Context, eventIDs []string) ([]string, error)
}

type RetryResponse struct {
	SuccessIDs []string `json:"success_ids"`
	FailedIDs  []string `json:"failed_ids"`
	ErrorMsg   string   `json:"error_msg,omitempty"`
}

func (r *RetryResponse) SetError(err error) {
	if err != nil {
		r.ErrorMsg = err.Error()
	}
}

type RetryService struct {
	events      StatusEventsRepo
	publisher   producer.EventPublisher
	workerCount int
}

func NewRetryService(events StatusEventsRepo, publisher producer.EventPublisher, workerCount int) *RetryService {
	if workerCount <= 0 {
		workerCount = 4
	}
	return &RetryService{
		events:      events,
		publisher:   publisher,
		workerCount: workerCount,
	}
}

// RetryUnpublishedEvents publishes every flagged event from the lookback
// window and reports per event outcome. A publish failure leaves the flag
// unset so the next sweep picks the event up again.
func (s *RetryService) RetryUnpublishedEvents(ctx context.Context) *RetryResponse {
	response := &RetryResponse{
		SuccessIDs: []string{},
		FailedIDs:  []string{},
	}

	events, err := s.events.UnpublishedEventsSince(ctx, int32(configs.KAFKA_RETRY_DURATION))
	if err != nil {
		logger.Error(ctx, "failed to load unpublished events: %v", err)
		response.SetError(err)
		return response
	}
	if len(events) == 0 {
		logger.Info(ctx, "no unpublished events to retry")
		return response
	}

	eventChan := make(chan models.PaymentStatusEvent, len(events))
	successChan := make(chan string, len(events))
	failureChan := make(chan string, len(events))

	var wg sync.WaitGroup
	for i := 0; i < s.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.publishWorker(ctx, eventChan, successChan, failureChan)
		}()
	}

	for _, event := range events {
		eventChan <- event
	}
	close(eventChan)
	wg.Wait()
	close(successChan)
	close(failureChan)

	for id := range successChan {
		response.SuccessIDs = append(response.SuccessIDs, id)
	}
	for id := range failureChan {
		response.FailedIDs = append(response.FailedIDs, id)
	}

	if len(response.SuccessIDs) > 0 {
		failedUpdateIDs, err := s.events.MarkPublished(ctx, response.SuccessIDs)
		if err != nil {
			logger.Error(ctx, "failed to update published flags: %v", err)
			response.SetError(err)
		} else if len(failedUpdateIDs) > 0 {
			logger.Warn(ctx, "some events failed the published flag update: %v", failedUpdateIDs)
		}
	}

	logger.Info(ctx, "event retry completed: %d published, %d failed",
		len(response.SuccessIDs), len(response.FailedIDs))
	return response
}

func (s *RetryService) publishWorker(
	ctx context.Context,
	eventChan <-chan models.PaymentStatusEvent,
	successChan chan<- string,
	failureChan chan<- string,
) {
	for event := range eventChan {
		select {
		case <-ctx.Done():
			return
		default:
		}

		payload, err := json.Marshal(event)
		if err != nil {
			logger.Error(ctx, "failed to encode event %s: %v", event.EventID, err)
			failureChan <- event.EventID
			continue
		}

		if err := s.publisher.Publish(ctx, event.UserID, payload); err != nil {
			logger.Error(ctx, "failed to publish event %s: %v", event.EventID, err)
			failureChan <- event.EventID
			continue
		}
		successChan <- event.EventID
	}
}
