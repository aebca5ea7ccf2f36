package store

import (
	"context"
	"time"

	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/db"
	"pesanet/kopa_lending/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
)

type PaymentDashboardRepository struct {
	repo *MongoRepository[models.PaymentDashboard]
}

func NewPaymentDashboardRepository() *PaymentDashboardRepository {
	collection := db.MDB.Database.Collection(consts.PaymentDashboardCollection)
	mrepo := NewMongoRepository[models.PaymentDashboard](collection)
	return &PaymentDashboardRepository{repo: mrepo}
}

func (r *PaymentDashboardRepository) DashboardByUser(ctx context.Context, userID string) (*models.PaymentDashboard, error) {
	dashboard, err := r.repo.Read(bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (r *PaymentDashboardRepository) UpsertDashboard(ctx context.Context, dashboard models.PaymentDashboard) error {
	dashboard.UpdatedAt = time.Now()
	return r.repo.Upsert(bson.M{"userId": dashboard.UserID}, dashboard)
}

// RecordSuccessfulPayment folds one payment into the cached dashboard so the
// UI reflects it before the next remote sync.
func (r *PaymentDashboardRepository) RecordSuccessfulPayment(ctx context.Context, userID string, amount float64, at time.Time) error {
	dashboard, err := r.DashboardByUser(ctx, userID)
	if err != nil {
		dashboard = &models.PaymentDashboard{UserID: userID}
	}
	dashboard.TotalPaid += amount
	dashboard.PaymentsThisMonth++
	dashboard.LastPaymentAt = &at
	return r.UpsertDashboard(ctx, *dashboard)
}
