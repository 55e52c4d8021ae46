package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	redisAdapter "github.com/aitbenali/medina-journeys/internal/adapters/database/redis"
	postgresStorage "github.com/aitbenali/medina-journeys/internal/adapters/database/postgres"
	"github.com/aitbenali/medina-journeys/pkg/logger"
)

type Config struct {
	Debug bool

	HTTPHost     string
	HTTPPort     string
	CookieSecure bool

	SessionTTL     time.Duration
	PaymentTimeout time.Duration
	StripeKey      string
	Currency       string

	Database *gorm.DB
	Redis    *redisAdapter.Client
}

func initConfig() {
	// .env is optional; in production secrets come from the environment.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	viper.SetDefault("http.host", "0.0.0.0")
	viper.SetDefault("http.port", "8080")
	viper.SetDefault("session.ttl", "720h")
	viper.SetDefault("payment.timeout", "15s")
	viper.SetDefault("payment.currency", "usd")

	// Secrets are only ever read from the environment.
	_ = viper.BindEnv("service.database.password", "DATABASE_PASSWORD")
	_ = viper.BindEnv("service.redis.password", "REDIS_PASSWORD")
	_ = viper.BindEnv("payment.stripe-key", "STRIPE_SECRET_KEY")
}

func Get() *Config {
	initConfig()

	err := logger.Init(logger.Config{
		Debug:     viper.GetBool("settings.debug"),
		LogToFile: viper.GetBool("settings.log-to-file"),
		LogsDir:   viper.GetString("settings.logs-dir"),
	})
	if err != nil {
		panic(err)
	}

	// Running without production secrets is not an option; stop here
	// rather than come up insecure.
	for env, key := range map[string]string{
		"DATABASE_PASSWORD": "service.database.password",
		"STRIPE_SECRET_KEY": "payment.stripe-key",
	} {
		if viper.GetString(key) == "" {
			logger.Log.Panicf("Required secret %s is not set", env)
		}
	}

	var gormConfig *gorm.Config
	if viper.GetBool("settings.debug") {
		newLogger := gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
		gormConfig = &gorm.Config{
			Logger: newLogger,
		}
	} else {
		gormConfig = &gorm.Config{}
	}

	dsn := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		viper.GetString("service.database.user"),
		viper.GetString("service.database.password"),
		viper.GetString("service.database.name"),
		viper.GetString("service.database.host"),
		viper.GetInt("service.database.port"),
		viper.GetString("service.database.sslmode"),
	)

	database, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		logger.Log.Panicf("Failed to connect to the database: %v", err)
	} else {
		logger.Log.Info("Successfully connected to the database")
	}

	errMigrate := database.AutoMigrate(postgresStorage.Migrations...)
	if errMigrate != nil {
		logger.Log.Panicf("Failed to migrate database: %v", errMigrate)
	}

	redisClient, err := redisAdapter.New(redisAdapter.Options{
		Host:     viper.GetString("service.redis.host"),
		Port:     viper.GetString("service.redis.port"),
		Password: viper.GetString("service.redis.password"),
	})
	if err != nil {
		logger.Log.Panicf("Failed to connect to redis: %v", err)
	} else {
		logger.Log.Info("Successfully connected to redis")
	}

	return &Config{
		Debug:          viper.GetBool("settings.debug"),
		HTTPHost:       viper.GetString("http.host"),
		HTTPPort:       viper.GetString("http.port"),
		CookieSecure:   viper.GetBool("http.cookie-secure"),
		SessionTTL:     viper.GetDuration("session.ttl"),
		PaymentTimeout: viper.GetDuration("payment.timeout"),
		StripeKey:      viper.GetString("payment.stripe-key"),
		Currency:       viper.GetString("payment.currency"),
		Database:       database,
		Redis:          redisClient,
	}
}
