package store

import (
	"context"
	"time"

	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/db"
	"pesanet/kopa_lending/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
)

type PaymentsRepository struct {
	repo *MongoRepository[models.Payment]
}

func NewPaymentsRepository() *PaymentsRepository {
	collection := db.MDB.Database.Collection(consts.PaymentsCollection)
	mrepo := NewMongoRepository[models.Payment](collection)
	return &PaymentsRepository{repo: mrepo}
}

func (r *PaymentsRepository) PaymentByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment, err := r.repo.Read(bson.M{"paymentId": paymentID})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentsRepository) PaymentsByLoan(ctx context.Context, loanID string) ([]models.Payment, error) {
	return r.repo.FindAll(bson.M{"loanId": loanID})
}

func (r *PaymentsRepository) PaymentsByUser(ctx context.Context, userID string) ([]models.Payment, error) {
	return r.repo.FindAll(bson.M{"userId": userID})
}

// PaymentsByUserBetween filters on processedAt within [start, end].
func (r *PaymentsRepository) PaymentsByUserBetween(ctx context.Context, userID string, start, end time.Time) ([]models.Payment, error) {
	filter := bson.M{
		"userId":      userID,
		"processedAt": bson.M{"$gte": start, "$lte": end},
	}
	return r.repo.FindAll(filter)
}

func (r *PaymentsRepository) InsertPayment(ctx context.Context, payment models.Payment) error {
	if _, err := r.repo.Create(payment); err != nil {
		return err
	}
	hub.Notify(TopicPayments)
	return nil
}

func (r *PaymentsRepository) UpdatePaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus, failureReason string) error {
	update := bson.M{"status": status}
	if status == models.PaymentStatusFailed {
		update["failureReason"] = failureReason
	} else {
		update["failureReason"] = ""
	}
	if status == models.PaymentStatusSuccess {
		update["processedAt"] = time.Now()
	}
	if err := r.repo.Update(bson.M{"paymentId": paymentID}, update); err != nil {
		return err
	}
	hub.Notify(TopicPayments)
	return nil
}

// ReplaceAllForUser swaps the user's cached payments for the remote list.
func (r *PaymentsRepository) ReplaceAllForUser(ctx context.Context, userID string, payments []models.Payment) error {
	if err := r.repo.DeleteMany(bson.M{"userId": userID}); err != nil {
		return err
	}
	for i := range payments {
		payments[i].UserID = userID
		if _, err := r.repo.Create(payments[i]); err != nil {
			return err
		}
	}
	hub.Notify(TopicPayments)
	return nil
}
