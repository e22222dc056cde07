package config

import (
	"context"
	"crypto/rsa"
	"sync"
	"time"

	"topup-store/internal/common/enum"
	ai "topup-store/internal/pkg/ai-connector"
	database "topup-store/internal/pkg/db"
	"topup-store/internal/pkg/rabbitmq"
	"topup-store/internal/pkg/redis"
	s3aws "topup-store/internal/pkg/storage/s3"
)

// Config holds all application configuration loaded from environment variables
type Config struct {
	AppEnv        enum.EnvEnum       `env:"APP_ENV" envDefault:"development"`
	AppPort       int                `env:"APP_PORT" envDefault:"8080"`
	AppBaseURL    string             `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	CorsOrigins   []string           `env:"CORS_ORIGINS" envDefault:"*"`
	LogLevel      string             `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string             `env:"LOG_FORMAT" envDefault:"json"`
	RedisHost     string             `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int                `env:"REDIS_PORT" envDefault:"6379"`
	RedisUser     string             `env:"REDIS_USER" envDefault:"default"`
	RedisPass     string             `env:"REDIS_PASS" envDefault:""`
	RedisDB       int                `env:"REDIS_DB" envDefault:"0"`
	RedisPoolSize int                `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RabbitHost    string             `env:"RABBIT_HOST" envDefault:"localhost"`
	RabbitPort    int                `env:"RABBIT_PORT" envDefault:"5672"`
	RabbitUser    string             `env:"RABBIT_USER" envDefault:"guest"`
	RabbitPass    string             `env:"RABBIT_PASS" envDefault:"guest"`
	DBDriver      string             `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost        string             `env:"DB_HOST" envDefault:"localhost"`
	DBPort        int                `env:"DB_PORT" envDefault:"5432"`
	DBUser        string             `env:"DB_USER" envDefault:"postgres"`
	DBPass        string             `env:"DB_PASS" envDefault:""`
	DBName        string             `env:"DB_NAME" envDefault:"postgres"`
	DBSSLMode     string             `env:"DB_SSLMODE" envDefault:"disable"`
	DBCacheSec    int                `env:"DB_CACHE_SECONDS" envDefault:"60"`
	AWSAccessKey  string             `env:"AWS_ACCESS_KEY_ID" envDefault:""`
	AWSSecretKey  string             `env:"AWS_SECRET_ACCESS_KEY" envDefault:""`
	AWSRegion     string             `env:"AWS_REGION" envDefault:"ap-southeast-1"`
	AWSBucketName string             `env:"AWS_BUCKET_NAME" envDefault:"topup-receipts"`
	AWSEndpoint   string             `env:"AWS_ENDPOINT" envDefault:""`
	GeminiAPIKey  string             `env:"GEMINI_API_KEY" envDefault:""`
	GeminiModel   string             `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	WAPrivateKey  string             `env:"WA_PRIVATE_KEY_PATH" envDefault:""`
	OrderMode     enum.OrderModeEnum `env:"ORDER_MODE" envDefault:"whatsapp"`
	WhatsAppPhone string             `env:"WHATSAPP_NUMBER" envDefault:""`
	Currency      string             `env:"CURRENCY" envDefault:"IDR"`
	SessionTTLHrs int                `env:"SESSION_TTL_HOURS" envDefault:"72"`
	MaxReceiptMB  int                `env:"MAX_RECEIPT_MB" envDefault:"5"`
	AdminEmail    string             `env:"ADMIN_EMAIL" envDefault:""`
	AdminPassword string             `env:"ADMIN_PASSWORD" envDefault:""`
	JWTSecret     string             `env:"JWT_SECRET" envDefault:""`
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHrs) * time.Hour
}

func (c *Config) MaxReceiptBytes() int64 {
	return int64(c.MaxReceiptMB) << 20
}

// SetupServerDto contains dependencies for server setup
type SetupServerDto struct {
	Ctx       *context.Context
	Cancel    context.CancelFunc
	Wg        *sync.WaitGroup
	Env       *Config
	Db        *database.Database
	Rds       redis.IRedis
	Rb        *rabbitmq.ConnectionManager
	Publisher *rabbitmq.Publisher
	S3        s3aws.Is3
	Ai        *ai.AiClient
	WAKey     *rsa.PrivateKey
}
