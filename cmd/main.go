package main

import (
	"context"
	"log"
	"strconv"
	"time"

	"cloud.google.com/go/storage"

	"pesanet/kopa_lending/configs"
	"pesanet/kopa_lending/internal/app/router"
	"pesanet/kopa_lending/internal/pkg/db"
	"pesanet/kopa_lending/internal/pkg/kafka/producer"
	kafkaretry "pesanet/kopa_lending/internal/pkg/kafka/retry"
	"pesanet/kopa_lending/internal/pkg/logger"
	"pesanet/kopa_lending/internal/pkg/otel"
	"pesanet/kopa_lending/internal/pkg/pubsub"
	"pesanet/kopa_lending/internal/pkg/redis"
	"pesanet/kopa_lending/internal/pkg/store"
	"pesanet/kopa_lending/internal/pkg/utils/worker"
)

func main() {

	err := configs.LoadEnv()
	if err != nil {
		logger.Debug("Error loading .env file: %v", err)
	}
	if err := configs.LoadSyncPolicy(configs.GetEnv("SYNC_POLICY_FILE", "")); err != nil {
		logger.Warn("Error loading sync policy: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err = otel.Setup(ctx, configs.SERVICE_NAME, configs.OTEL_URL)
	if err != nil {
		logger.Error(ctx, "Error setting up OTLP: %v", err)
	}

	mdb, dbErr := db.NewMongoDB()
	if dbErr != nil {
		logger.Error(ctx, "Error connecting to MongoDB: %v", dbErr)
	}
	db.MDB = mdb
	defer mdb.Close()

	db.CreateDbTtlIfNotExists()

	kafkaProducer, err := producer.NewKafkaProducer()
	if err != nil {
		logger.Error(ctx, "failed to create Kafka producer: %v", err)
	}
	defer kafkaProducer.Close()

	pubsubPublisher, err := pubsub.NewPublisher(ctx, configs.PROJECT_ID, configs.PUBSUB_TOPIC)
	if err != nil {
		logger.Error(ctx, "failed to create Pub/Sub publisher: %v", err)
	}
	defer pubsubPublisher.Close()

	gcsClient, err := storage.NewClient(ctx)
	if err != nil {
		logger.Error(ctx, "failed to create storage client: %v", err)
	}
	defer gcsClient.Close()

	redisClient, err := redis.ConnectToRedis(ctx, configs.GetRedisConfig(), nil)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Disconnect(redisClient.Client)

	numberOfWorkers, er := strconv.Atoi(configs.WORKER_POOL)
	if er != nil {
		numberOfWorkers = 5
	}
	workerPool := worker.NewWorkerPool(numberOfWorkers)
	defer workerPool.Stop()

	// Periodic sweep for status events that never made it to Kafka.
	retryService := kafkaretry.NewRetryService(store.NewStatusEventsRepository(), kafkaProducer, numberOfWorkers)
	go func() {
		ticker := time.NewTicker(time.Duration(configs.KAFKA_RETRY_DURATION) * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				workerPool.Submit(func() {
					retryService.RetryUnpublishedEvents(ctx)
				})
			case <-ctx.Done():
				return
			}
		}
	}()

	r := router.SetupRouter(redisClient.Client, kafkaProducer, pubsubPublisher, gcsClient)

	port := configs.SERVER_PORT
	if err := r.Run(":" + port); err != nil {
		logger.Error(ctx, "Failed to run server: %v", err)
	}
}
