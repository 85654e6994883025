package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "utmforge"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultOpenAIModel       = "gpt-4o-mini"
	DefaultOpenAIBaseURL     = "https://api.openai.com"
	DefaultOpenAITemperature = 0.2
	DefaultExtractionTimeout = 60 * time.Second
	DefaultExtractionRetries = 3

	DefaultReachTimeout = 3 * time.Second

	DefaultKafkaTopic = "campaign-events"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 90 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 100 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
)
