package store

import (
	"context"
	"time"

	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/db"
	"pesanet/kopa_lending/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
)

// StatusEventsRepository persists every status event before it is published
// to Kafka, so the retry sweep can re-send the ones that failed.
type StatusEventsRepository struct {
	repo *MongoRepository[models.PaymentStatusEvent]
}

func NewStatusEventsRepository() *StatusEventsRepository {
	collection := db.MDB.Database.Collection(consts.StatusEventsCollection)
	mrepo := NewMongoRepository[models.PaymentStatusEvent](collection)
	return &StatusEventsRepository{repo: mrepo}
}

func (r *StatusEventsRepository) InsertEvent(ctx context.Context, event models.PaymentStatusEvent) error {
	_, err := r.repo.Create(event)
	return err
}

// LatestStatusForSubject returns the most recent recorded status for an
// application or payment.
func (r *StatusEventsRepository) LatestStatusForSubject(ctx context.Context, subjectID string) (string, error) {
	event, err := r.repo.ReadLatest(bson.M{"subjectId": subjectID}, "occurredAt")
	if err != nil {
		return "", err
	}
	return event.Status, nil
}

// UnpublishedEventsSince returns events not yet flagged as published within
// the lookback window.
func (r *StatusEventsRepository) UnpublishedEventsSince(ctx context.Context, lookbackHours int32) ([]models.PaymentStatusEvent, error) {
	cutoff := time.Now().Add(-time.Duration(lookbackHours) * time.Hour)
	filter := bson.M{
		"publishedToKafka": false,
		"occurredAt":       bson.M{"$gte": cutoff},
	}
	return r.repo.FindAll(filter)
}

// MarkPublished flags the given events as delivered; returns the ids it
// could not update.
func (r *StatusEventsRepository) MarkPublished(ctx context.Context, eventIDs []string) ([]string, error) {
	var failed []string
	for _, id := range eventIDs {
		err := r.repo.Update(bson.M{"eventId": id}, bson.M{"publishedToKafka": true})
		if err != nil {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, consts.ErrorServer
	}
	return nil, nil
}
