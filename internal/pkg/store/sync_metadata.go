package store

import (
	"context"
	"time"

	"pesanet/kopa_lending/configs"
	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type syncRecord struct {
	SyncType     string    `bson:"syncType"`
	LastSyncedAt time.Time `bson:"lastSyncedAt"`
}

// SyncGate decides whether a cached entity class is stale enough to refresh
// from the backend. One timestamp per sync type, kept in sync_metadata.
type SyncGate struct {
	repo *MongoRepository[syncRecord]
	now  func() time.Time
}

func NewSyncGate() *SyncGate {
	collection := db.MDB.Database.Collection(consts.SyncMetadataCollection)
	return &SyncGate{
		repo: NewMongoRepository[syncRecord](collection),
		now:  time.Now,
	}
}

func syncInterval(syncType consts.SyncType) time.Duration {
	switch syncType {
	case consts.SyncTypeLoans:
		if configs.LOAN_SYNC_INTERVAL_MINUTES > 0 {
			return time.Duration(configs.LOAN_SYNC_INTERVAL_MINUTES) * time.Minute
		}
		return consts.LoanSyncInterval
	case consts.SyncTypePayments:
		if configs.PAYMENT_SYNC_INTERVAL_MINS > 0 {
			return time.Duration(configs.PAYMENT_SYNC_INTERVAL_MINS) * time.Minute
		}
		return consts.PaymentSyncInterval
	case consts.SyncTypeDashboard:
		if configs.DASHBOARD_SYNC_INTERVAL_MINS > 0 {
			return time.Duration(configs.DASHBOARD_SYNC_INTERVAL_MINS) * time.Minute
		}
		return consts.DashboardSyncInterval
	default:
		return consts.FormDataSyncInterval
	}
}

// ShouldSync is true when nothing was ever synced for the type, or the last
// sync is older than the type's interval. Lookup failures report stale so a
// broken metadata record can never pin the cache forever.
func (g *SyncGate) ShouldSync(ctx context.Context, userID string, syncType consts.SyncType) bool {
	record, err := g.repo.Read(bson.M{"syncType": key(userID, syncType)})
	if err == mongo.ErrNoDocuments {
		return true
	}
	if err != nil {
		return true
	}
	return g.now().Sub(record.LastSyncedAt) >= syncInterval(syncType)
}

func (g *SyncGate) MarkSynced(ctx context.Context, userID string, syncType consts.SyncType) error {
	record := syncRecord{
		SyncType:     key(userID, syncType),
		LastSyncedAt: g.now(),
	}
	return g.repo.Upsert(bson.M{"syncType": record.SyncType}, record)
}

func key(userID string, syncType consts.SyncType) string {
	return userID + ":" + string(syncType)
}
