package store

import (
	"context"
	"time"

	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/db"
	"pesanet/kopa_lending/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FormDataRepository caches the static reference data behind the loan
// application forms. A single document per form keyed by a fixed id.
type FormDataRepository struct {
	repo *MongoRepository[models.CashLoanFormData]
}

const cashFormKey = "cash_loan_form"

func NewFormDataRepository() *FormDataRepository {
	collection := db.MDB.Database.Collection(consts.FormDataCollection)
	mrepo := NewMongoRepository[models.CashLoanFormData](collection)
	return &FormDataRepository{repo: mrepo}
}

func (r *FormDataRepository) CashLoanFormData(ctx context.Context) (*models.CashLoanFormData, error) {
	formData, err := r.repo.Read(bson.M{"formKey": cashFormKey})
	if err != nil {
		return nil, err
	}
	return &formData, nil
}

func (r *FormDataRepository) SaveCashLoanFormData(ctx context.Context, formData models.CashLoanFormData) error {
	formData.FetchedAt = time.Now()
	doc := bson.M{
		"formKey":          cashFormKey,
		"repaymentPeriods": formData.RepaymentPeriods,
		"industries":       formData.Industries,
		"minLoanAmount":    formData.MinLoanAmount,
		"maxLoanAmount":    formData.MaxLoanAmount,
		"fetchedAt":        formData.FetchedAt,
	}
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := db.MDB.Database.Collection(consts.FormDataCollection)
	_, err := collection.UpdateOne(ctxTimeout, bson.M{"formKey": cashFormKey}, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	return err
}
