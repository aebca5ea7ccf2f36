package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	SERVER_PORT                  string
	SERVICE_NAME                 string
	LOG_LEVEL                    string
	OTEL_URL                     string
	WORKER_POOL                  string
	DB_URI                       string
	DB_NAME                      string
	DB_MAXPOOLSIZE               uint64
	DB_MINPOOLSIZE               uint64
	DB_MAXIDLETIME_INMINUTES     int
	LENDING_API_BASE_URL         string
	LENDING_API_KEY              string
	TIMEOUT_IN_SECONDS           int
	KAFKA_SERVER                 string
	KAFKA_SECURITY_PROTOCOL      string
	KAFKA_SASL_MECHANISM         string
	KAFKA_SASL_USERNAME          string
	KAFKA_SASL_PASSWORD          string
	KAFKA_SESSION_TIMEOUT_MS     int
	KAFKA_CLIENT_ID              string
	KAFKA_TOPIC                  string
	KAFKA_RETRY_DURATION         int
	REDIS_ADDR                   string
	REDIS_PASSWORD               string
	REDIS_DB                     int
	REDIS_ENABLE_TLS             bool
	REDIS_CONNECT_TIMEOUT_SECS   int
	REDIS_CERT_CONTENT           string
	PROJECT_ID                   string
	PUBSUB_TOPIC                 string
	BUCKET_NAME                  string
	REPORT_DIRECTORY_PATH        string
	SFTP_USER                    string
	SFTP_PASSWORD                string
	SFTP_HOST                    string
	SFTP_PORT                    string
	SFTP_REMOTE_FILE_PATH        string
	AUTH_TOKEN_TTL_MINUTES       int
	REFRESH_TOKEN_TTL_HOURS      int
	CHANGE_TOKEN_TTL_MINUTES     int
	PROFILE_CACHE_TTL_MINUTES    int
	LOAN_SYNC_INTERVAL_MINUTES   int
	PAYMENT_SYNC_INTERVAL_MINS   int
	DASHBOARD_SYNC_INTERVAL_MINS int
	PENDING_PAYMENT_TTL_IN_HOURS int
	OTP_MAX_ATTEMPTS             int
)

type RedisConfig struct {
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	EnableTLS      bool          `yaml:"enable_tls"`
	ConnectTimeout time.Duration `yaml:"connect_timeout_seconds"`
	CertContent    string        `yaml:"cert_content"`
}

// PubSubConfig represents the Pub/Sub configuration
type PubSubConfig struct {
	ProjectID string `yaml:"project_id"`
	Topic     string `yaml:"topic"`
}

// LoadEnv loads the environment variables from a .env file
func LoadEnv() error {
	err := godotenv.Load("./../.env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	LoadEnvValues()

	return nil
}

func LoadEnvValues() {
	SERVER_PORT = GetEnv("SERVER_PORT", "8080")
	SERVICE_NAME = GetEnv("SERVICE_NAME", "kopalending")
	LOG_LEVEL = GetEnv("LOG_LEVEL", "INFO")
	OTEL_URL = GetEnv("OTEL_URL", "")
	WORKER_POOL = GetEnv("WORKER_POOL", "5")

	DB_URI = GetEnv("DB_URI", "mongodb://localhost:27017")
	DB_NAME = GetEnv("DB_NAME", "KopaLending")
	DB_MAXPOOLSIZE, _ = strconv.ParseUint(GetEnv("DB_MAXPOOLSIZE", "100"), 10, 64)
	DB_MINPOOLSIZE, _ = strconv.ParseUint(GetEnv("DB_MINPOOLSIZE", "10"), 10, 64)
	DB_MAXIDLETIME_INMINUTES, _ = strconv.Atoi(GetEnv("DB_MAXIDLETIME_INMINUTES", "5"))

	LENDING_API_BASE_URL = GetEnv("LENDING_API_BASE_URL", "")
	LENDING_API_KEY = GetEnv("LENDING_API_KEY", "")
	TIMEOUT_IN_SECONDS, _ = strconv.Atoi(GetEnv("TIMEOUT_IN_SECONDS", "20"))

	KAFKA_SERVER = GetEnv("KAFKA_SERVER", "")
	KAFKA_SECURITY_PROTOCOL = GetEnv("KAFKA_SECURITY_PROTOCOL", "")
	KAFKA_SASL_MECHANISM = GetEnv("KAFKA_SASL_MECHANISM", "")
	KAFKA_SASL_USERNAME = GetEnv("KAFKA_SASL_USERNAME", "")
	KAFKA_SASL_PASSWORD = GetEnv("KAFKA_SASL_PASSWORD", "")
	KAFKA_SESSION_TIMEOUT_MS, _ = strconv.Atoi(GetEnv("KAFKA_SESSION_TIMEOUT_MS", ""))
	KAFKA_CLIENT_ID = GetEnv("KAFKA_CLIENT_ID", "")
	KAFKA_TOPIC = GetEnv("KAFKA_TOPIC", "")
	KAFKA_RETRY_DURATION, _ = strconv.Atoi(GetEnv("KAFKA_RETRY_DURATION", "12"))

	REDIS_ADDR = GetEnv("REDIS_ADDR", "localhost:6379")
	REDIS_PASSWORD = GetEnv("REDIS_PASSWORD", "")
	REDIS_DB, _ = strconv.Atoi(GetEnv("REDIS_DB", "0"))
	REDIS_ENABLE_TLS, _ = strconv.ParseBool(GetEnv("REDIS_ENABLE_TLS", "false"))
	REDIS_CONNECT_TIMEOUT_SECS, _ = strconv.Atoi(GetEnv("REDIS_CONNECT_TIMEOUT_SECONDS", "5"))
	REDIS_CERT_CONTENT = GetEnv("REDIS_CERT_CONTENT", "")

	PROJECT_ID = GetEnv("PROJECT_ID", "")
	PUBSUB_TOPIC = GetEnv("PUBSUB_TOPIC", "kopa-lending-notification-topic")

	BUCKET_NAME = GetEnv("BUCKET_NAME", "")
	REPORT_DIRECTORY_PATH = GetEnv("DIRECTORY_PATH_FOR_PAYMENT_REPORT", "/paymentReport")
	SFTP_USER = GetEnv("SFTP_USER", "")
	SFTP_PASSWORD = GetEnv("SFTP_PASSWORD", "")
	SFTP_HOST = GetEnv("SFTP_HOST", "")
	SFTP_PORT = GetEnv("SFTP_PORT", "")
	SFTP_REMOTE_FILE_PATH = GetEnv("SFTP_REMOTE_FILE_PATH", "")

	AUTH_TOKEN_TTL_MINUTES, _ = strconv.Atoi(GetEnv("AUTH_TOKEN_TTL_MINUTES", "30"))
	REFRESH_TOKEN_TTL_HOURS, _ = strconv.Atoi(GetEnv("REFRESH_TOKEN_TTL_HOURS", "720"))
	CHANGE_TOKEN_TTL_MINUTES, _ = strconv.Atoi(GetEnv("CHANGE_TOKEN_TTL_MINUTES", "10"))
	PROFILE_CACHE_TTL_MINUTES, _ = strconv.Atoi(GetEnv("PROFILE_CACHE_TTL_MINUTES", "30"))
	LOAN_SYNC_INTERVAL_MINUTES, _ = strconv.Atoi(GetEnv("LOAN_SYNC_INTERVAL_MINUTES", "15"))
	PAYMENT_SYNC_INTERVAL_MINS, _ = strconv.Atoi(GetEnv("PAYMENT_SYNC_INTERVAL_MINUTES", "5"))
	DASHBOARD_SYNC_INTERVAL_MINS, _ = strconv.Atoi(GetEnv("DASHBOARD_SYNC_INTERVAL_MINUTES", "2"))
	PENDING_PAYMENT_TTL_IN_HOURS, _ = strconv.Atoi(GetEnv("PENDING_PAYMENT_TTL_IN_HOURS", "24"))
	OTP_MAX_ATTEMPTS, _ = strconv.Atoi(GetEnv("OTP_MAX_ATTEMPTS", "5"))
}

// GetRedisConfig returns a RedisConfig struct populated from environment variables
func GetRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:           REDIS_ADDR,
		Password:       REDIS_PASSWORD,
		DB:             REDIS_DB,
		EnableTLS:      REDIS_ENABLE_TLS,
		ConnectTimeout: time.Duration(REDIS_CONNECT_TIMEOUT_SECS) * time.Second,
		CertContent:    REDIS_CERT_CONTENT,
	}
}

// GetPubSubConfig returns a PubSubConfig struct populated from environment variables
func GetPubSubConfig() PubSubConfig {
	return PubSubConfig{
		ProjectID: PROJECT_ID,
		Topic:     PUBSUB_TOPIC,
	}
}

// GetEnv fetches the value of an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}
