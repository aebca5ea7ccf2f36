package store

import (
	"context"
	"time"

	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/db"
	"pesanet/kopa_lending/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
)

type LoansRepository struct {
	repo *MongoRepository[models.Loan]
}

func NewLoansRepository() *LoansRepository {
	collection := db.MDB.Database.Collection(consts.LoansCollection)
	mrepo := NewMongoRepository[models.Loan](collection)
	return &LoansRepository{repo: mrepo}
}

func (r *LoansRepository) LoanByID(ctx context.Context, loanID string) (*models.Loan, error) {
	loan, err := r.repo.Read(bson.M{"loanId": loanID})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *LoansRepository) LoansByUser(ctx context.Context, userID string) ([]models.Loan, error) {
	return r.repo.FindAll(bson.M{"userId": userID})
}

func (r *LoansRepository) ActiveLoansByUser(ctx context.Context, userID string) ([]models.Loan, error) {
	return r.repo.FindAll(bson.M{"userId": userID, "status": models.LoanStatusActive})
}

func (r *LoansRepository) LoanHistoryPage(ctx context.Context, userID string, page, pageSize int64) ([]models.Loan, error) {
	return r.repo.FindPage(bson.M{"userId": userID}, "updatedAt", page, pageSize)
}

// ReplaceAllForUser swaps the user's cached loans for the remote list. The
// remote list is authoritative at sync time.
func (r *LoansRepository) ReplaceAllForUser(ctx context.Context, userID string, loans []models.Loan) error {
	if err := r.repo.DeleteMany(bson.M{"userId": userID}); err != nil {
		return err
	}
	now := time.Now()
	for i := range loans {
		loans[i].UserID = userID
		loans[i].UpdatedAt = now
		if _, err := r.repo.Create(loans[i]); err != nil {
			return err
		}
	}
	hub.Notify(TopicLoans)
	return nil
}

func (r *LoansRepository) UpsertLoan(ctx context.Context, loan models.Loan) error {
	loan.UpdatedAt = time.Now()
	if err := r.repo.Upsert(bson.M{"loanId": loan.LoanID}, loan); err != nil {
		return err
	}
	hub.Notify(TopicLoans)
	return nil
}
