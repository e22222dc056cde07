package main

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	config "topup-store/configs"
	"topup-store/internal/common/enum"
	ai "topup-store/internal/pkg/ai-connector"
	database "topup-store/internal/pkg/db"
	"topup-store/internal/pkg/logger"
	"topup-store/internal/pkg/rabbitmq"
	"topup-store/internal/pkg/redis"
	s3aws "topup-store/internal/pkg/storage/s3"
	"topup-store/internal/pkg/validation"
	"topup-store/internal/pkg/waflow"
	serverApp "topup-store/internal/server"

	"github.com/gin-gonic/gin"
)

// @title           Top-up Store API
// @version         1.0
// @description     Checkout, order and catalog API for the gaming top-up shop

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

// @BasePath        /api
func main() {
	logger.Setup()

	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}
	logger.SetupWithWriter(os.Stdout, env.LogFormat, env.LogLevel)

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	// Setup Redis
	redisClient, err := setupRedis(ctx, env)
	if err != nil {
		logger.Error.Println("Error setting up Redis", err)
		cancel()
		return
	}

	// Setup RabbitMQ
	rabbit, err := setupRabbitMQ(ctx, env)
	if err != nil {
		logger.Error.Println("Error setting up RabbitMQ", err)
		cancel()
		return
	}

	// Setup Database
	db, err := setupDB(env, redisClient)
	if err != nil {
		logger.Error.Println("Error setting up Database", err)
		cancel()
		return
	}

	// Setup S3
	s3Client, err := setupS3(ctx, env, redisClient)
	if err != nil {
		logger.Error.Println("Error setting up S3", err)
		cancel()
		return
	}

	// Setup AI Client (optional)
	aiClient, err := setupAI(ctx, env)
	if err != nil {
		logger.Warning.Println("Gemini unavailable, receipt review disabled:", err)
	}

	// Setup WA Flows key (optional)
	waKey := setupWAKey(env)

	if env.AppEnv == enum.PRODUCTION && env.JWTSecret == "" {
		logger.Warning.Println("JWT_SECRET is empty in production")
	}

	// Setup Server
	setupServer(&config.SetupServerDto{
		Rds:       redisClient,
		Env:       env,
		Ctx:       &ctx,
		Cancel:    cancel,
		Db:        db,
		Wg:        &wg,
		Rb:        rabbit,
		Publisher: rabbitmq.NewPublisher(ctx, rabbit),
		S3:        s3Client,
		Ai:        aiClient,
		WAKey:     waKey,
	})
}

func setupRedis(ctx context.Context, env *config.Config) (*redis.Client, error) {
	return redis.Setup(ctx, &redis.Config{
		Host:     env.RedisHost,
		Username: env.RedisUser,
		Port:     env.RedisPort,
		Password: env.RedisPass,
		DB:       env.RedisDB,
		PoolSize: env.RedisPoolSize,
	})
}

func setupRabbitMQ(ctx context.Context, env *config.Config) (*rabbitmq.ConnectionManager, error) {
	return rabbitmq.NewConnectionManager(ctx, &rabbitmq.Config{
		Username: env.RabbitUser,
		Password: env.RabbitPass,
		Host:     env.RabbitHost,
		Port:     env.RabbitPort,
	})
}

func setupDB(env *config.Config, rds *redis.Client) (*database.Database, error) {
	return database.Setup(&database.Config{
		Host:      env.DBHost,
		Port:      env.DBPort,
		User:      env.DBUser,
		Password:  env.DBPass,
		Database:  env.DBName,
		SSLMode:   env.DBSSLMode,
		Driver:    database.DriverEnum(env.DBDriver),
		Cache:     env.DBCacheSec > 0,
		Rds:       rds,
		CacheTime: time.Duration(env.DBCacheSec) * time.Second,
	})
}

func setupS3(ctx context.Context, env *config.Config, rds redis.IRedis) (s3aws.Is3, error) {
	return s3aws.NewS3Client(ctx, s3aws.S3Config{
		AWSRegion:          env.AWSRegion,
		AWSAccessKeyID:     env.AWSAccessKey,
		AWSSecretAccessKey: env.AWSSecretKey,
		Endpoint:           env.AWSEndpoint,
	}, env.AWSBucketName, rds)
}

func setupAI(ctx context.Context, env *config.Config) (*ai.AiClient, error) {
	logger.Info.Printf("Gemini API Key configured: %t, model: %s", env.GeminiAPIKey != "", env.GeminiModel)

	return ai.NewAiClient(
		ctx,
		&ai.Config{
			GeminiAPIKey: env.GeminiAPIKey,
			GeminiModel:  env.GeminiModel,
		},
	)
}

func setupWAKey(env *config.Config) *rsa.PrivateKey {
	if env.WAPrivateKey == "" {
		return nil
	}
	key, err := waflow.LoadPrivateKey(env.WAPrivateKey)
	if err != nil {
		logger.Error.Printf("Failed to load WA Flows private key: %v", err)
		return nil
	}
	logger.Info.Printf("WA Flows private key loaded from %s", env.WAPrivateKey)
	return key
}

func setupServer(payload *config.SetupServerDto) {
	rds := payload.Rds
	env := payload.Env
	ctx := payload.Ctx
	cancel := payload.Cancel
	wg := payload.Wg

	defer func() {
		cancel()
		wg.Wait()
		if payload.Ai != nil {
			_ = payload.Ai.Close()
		}
		_ = payload.Publisher.Close()
		_ = payload.Rb.Close()
		_ = payload.Db.Close()
		if rds != nil {
			_ = rds.Close()
		}
	}()

	err := validation.Setup()
	if err != nil {
		logger.Error.Println("Failed to setup validation")
		panic(err)
	}

	if env.AppEnv == enum.PRODUCTION {
		gin.SetMode(gin.ReleaseMode)
	}
	e := gin.New()
	e.Use(gin.Recovery())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", env.AppPort),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverApp.Setup(e, payload)
	if env.AppEnv != enum.DEVELOPMENT {
		if err := serverApp.InitWorker(payload); err != nil {
			logger.Error.Println("Failed to start workers:", err)
		}
	}

	go func() {
		logger.HTTP.Println("========= Server Started =========")
		logger.HTTP.Println("=========", env.AppPort, "=========")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error.Println("Server error:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case <-sigChan:
	case <-(*ctx).Done():
	}
	logger.HTTP.Println("========= Server Shutting Down =========")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
}
