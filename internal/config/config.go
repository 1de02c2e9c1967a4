package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port         string `mapstructure:"port"`
		Env          string `mapstructure:"env"`
		MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
	RateLimit struct {
		SubmissionWindow time.Duration `mapstructure:"submission_window"`
		SubmissionMax    int           `mapstructure:"submission_max"`
		GeneralWindow    time.Duration `mapstructure:"general_window"`
		GeneralMax       int           `mapstructure:"general_max"`
	} `mapstructure:"rate_limit"`
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func LoadConfig(path string) (cfg Config, err error) {

	if err = godotenv.Load(path + "/.env"); err != nil {
		log.Println("warning: .env file not found, use environment only.")
	}

	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read environment only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("app.port", "5000")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.max_body_bytes", 10*1024)
	viper.SetDefault("rate_limit.submission_window", 15*time.Minute)
	viper.SetDefault("rate_limit.general_window", time.Minute)
	viper.SetDefault("rate_limit.general_max", 20)

	viper.BindEnv("app.port", "APP_PORT")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("app.max_body_bytes", "APP_MAX_BODY_BYTES")
	viper.BindEnv("db.dsn", "DB_DSN")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	viper.BindEnv("tracing.otlp_endpoint", "OTLP_ENDPOINT")
	viper.BindEnv("rate_limit.submission_window", "RATE_LIMIT_SUBMISSION_WINDOW")
	viper.BindEnv("rate_limit.submission_max", "RATE_LIMIT_SUBMISSION_MAX")
	viper.BindEnv("rate_limit.general_window", "RATE_LIMIT_GENERAL_WINDOW")
	viper.BindEnv("rate_limit.general_max", "RATE_LIMIT_GENERAL_MAX")

	if err = viper.Unmarshal(&cfg); err != nil {
		return
	}

	// The submission ceiling defaults by environment: strict in production,
	// relaxed everywhere else so manual testing is not throttled.
	if cfg.RateLimit.SubmissionMax == 0 {
		if cfg.IsProduction() {
			cfg.RateLimit.SubmissionMax = 5
		} else {
			cfg.RateLimit.SubmissionMax = 100
		}
	}

	return cfg, nil
}
