package db

import (
	"context"
	"time"

	"pesanet/kopa_lending/configs"
	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateDbTtlIfNotExists keeps a TTL index on the pending-payment collection
// so abandoned in-flight payments expire on their own.
func CreateDbTtlIfNotExists() {
	if MDB == nil || MDB.Database == nil {
		logger.Info("Skipping TTL index setup: MongoDB is not connected")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := MDB.Database.Collection(consts.PendingPaymentsCollection)

	indexField := "createdAt"
	ttlDuration := int32(configs.PENDING_PAYMENT_TTL_IN_HOURS * 3600)

	indexesCursor, err := collection.Indexes().List(ctx)
	if err != nil {
		logger.Error("Failed to list indexes: %v", err)
	}

	indexExists := false
	for indexesCursor.Next(ctx) {

		var index bson.M
		err := indexesCursor.Decode(&index)
		if err != nil {
			logger.Error("Error decoding index information:%v", err)
		}

		expiryValue, hasExpireOption := index["expireAfterSeconds"]

		if hasExpireOption {

			expiryTime := expiryValue.(int32)
			if expiryTime != ttlDuration {
				_, err := collection.Indexes().DropOne(ctx, index["name"].(string))
				if err != nil {
					logger.Error("could not drop index: %v", err)
				}
				indexExists = false
				logger.Info("TTL index deleted.")
				break
			} else {
				indexExists = true
				logger.Info("TTL index already exists.")
				break
			}
		}
	}

	if !indexExists {
		indexModel := mongo.IndexModel{
			Keys:    bson.D{{Key: indexField, Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(ttlDuration),
		}

		_, err := collection.Indexes().CreateOne(ctx, indexModel)
		if err != nil {
			logger.Error("Failed to create TTL index:%v", err)
		} else {
			logger.Info("TTL index created successfully.")
		}
	}

	// One in-flight payment per loan; the unique index makes the guard in
	// PendingPaymentsRepository.Begin atomic under concurrent inserts.
	uniqueModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "loanId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, uniqueModel); err != nil {
		logger.Error("Failed to create unique loan index:%v", err)
	}
}
