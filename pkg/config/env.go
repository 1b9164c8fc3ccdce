package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvAppPassword   = "APP_PASSWORD"
	EnvSessionSecret = "SESSION_SECRET"
	EnvSessionTTL    = "SESSION_TTL"

	EnvDailyQuota   = "DAILY_QUOTA"
	EnvQuotaOnSync  = "QUOTA_ON_SYNC"
	EnvPollInterval = "POLL_INTERVAL"

	EnvS3Bucket          = "S3_BUCKET"
	EnvS3Region          = "S3_REGION"
	EnvS3Endpoint        = "S3_ENDPOINT"
	EnvS3AccessKeyID     = "S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "S3_SECRET_ACCESS_KEY"
	EnvPresignTTL        = "PRESIGN_TTL"
	EnvAttachmentMaxSize = "ATTACHMENT_MAX_SIZE"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
