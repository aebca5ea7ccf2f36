package store

import (
	"context"
	"time"

	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/db"
	"pesanet/kopa_lending/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Draft repositories keep at most one draft per user per loan type; every
// save overwrites the previous one. Last write wins when two callers race.

// stampCashDraft normalises a draft before persistence. Whatever status the
// caller set, a saved draft is a DRAFT.
func stampCashDraft(draft models.CashLoanApplication) models.CashLoanApplication {
	draft.Status = models.ApplicationStatusDraft
	draft.UpdatedAt = time.Now()
	return draft
}

func stampPayGoDraft(draft models.PayGoLoanApplication) models.PayGoLoanApplication {
	draft.Status = models.ApplicationStatusDraft
	draft.UpdatedAt = time.Now()
	return draft
}

type CashDraftsRepository struct {
	repo *MongoRepository[models.CashLoanApplication]
}

func NewCashDraftsRepository() *CashDraftsRepository {
	collection := db.MDB.Database.Collection(consts.CashDraftsCollection)
	mrepo := NewMongoRepository[models.CashLoanApplication](collection)
	return &CashDraftsRepository{repo: mrepo}
}

func (r *CashDraftsRepository) SaveDraft(ctx context.Context, draft models.CashLoanApplication) error {
	draft = stampCashDraft(draft)
	if err := r.repo.Upsert(bson.M{"userId": draft.UserID}, draft); err != nil {
		return err
	}
	hub.Notify(TopicApplications)
	return nil
}

func (r *CashDraftsRepository) DraftByUser(ctx context.Context, userID string) (*models.CashLoanApplication, error) {
	draft, err := r.repo.Read(bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *CashDraftsRepository) DeleteDraft(ctx context.Context, userID string) error {
	if err := r.repo.Delete(bson.M{"userId": userID}); err != nil {
		return err
	}
	hub.Notify(TopicApplications)
	return nil
}

type PayGoDraftsRepository struct {
	repo *MongoRepository[models.PayGoLoanApplication]
}

func NewPayGoDraftsRepository() *PayGoDraftsRepository {
	collection := db.MDB.Database.Collection(consts.PayGoDraftsCollection)
	mrepo := NewMongoRepository[models.PayGoLoanApplication](collection)
	return &PayGoDraftsRepository{repo: mrepo}
}

func (r *PayGoDraftsRepository) SaveDraft(ctx context.Context, draft models.PayGoLoanApplication) error {
	draft = stampPayGoDraft(draft)
	if err := r.repo.Upsert(bson.M{"userId": draft.UserID}, draft); err != nil {
		return err
	}
	hub.Notify(TopicApplications)
	return nil
}

func (r *PayGoDraftsRepository) DraftByUser(ctx context.Context, userID string) (*models.PayGoLoanApplication, error) {
	draft, err := r.repo.Read(bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *PayGoDraftsRepository) DeleteDraft(ctx context.Context, userID string) error {
	if err := r.repo.Delete(bson.M{"userId": userID}); err != nil {
		return err
	}
	hub.Notify(TopicApplications)
	return nil
}
