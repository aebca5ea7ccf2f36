package store

import (
	"context"
	"time"

	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/db"
	"pesanet/kopa_lending/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PendingPaymentsRepository guards against duplicate in-flight payments for
// the same loan. Rows expire via the TTL index on createdAt.
type PendingPaymentsRepository struct {
	repo *MongoRepository[models.PendingPaymentTransaction]
}

func NewPendingPaymentsRepository() *PendingPaymentsRepository {
	collection := db.MDB.Database.Collection(consts.PendingPaymentsCollection)
	mrepo := NewMongoRepository[models.PendingPaymentTransaction](collection)
	return &PendingPaymentsRepository{repo: mrepo}
}

// Begin registers an in-flight payment. The unique index on loanId rejects a
// second insert for the same loan, so two concurrent payments cannot both
// pass the guard; the duplicate maps to ErrorTransactionInProgress.
func (r *PendingPaymentsRepository) Begin(ctx context.Context, userID, loanID, paymentID string) error {
	_, err := r.repo.Create(models.PendingPaymentTransaction{
		PaymentID: paymentID,
		LoanID:    loanID,
		UserID:    userID,
		CreatedAt: time.Now(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return consts.ErrorTransactionInProgress
	}
	return err
}

func (r *PendingPaymentsRepository) Finish(ctx context.Context, paymentID string) error {
	return r.repo.Delete(bson.M{"paymentId": paymentID})
}
