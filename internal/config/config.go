package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Port       uint16 `env:"PORT" envDefault:"8080"`
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Secret     string `env:"SECRET,required"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL"`
	RabbitmqURL   string `env:"RABBITMQ_URL,required"`

	RabbitmqCVExchange      string `env:"RABBITMQ_CV_EXCHANGE" envDefault:"cv"`
	RabbitmqCVUploadedQueue string `env:"RABBITMQ_CV_UPLOADED_QUEUE" envDefault:"cv-uploaded"`
	RabbitmqCVAnalyzedQueue string `env:"RABBITMQ_CV_ANALYZED_QUEUE" envDefault:"cv-analyzed"`

	BcryptHasherCost                  int `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetValidDurationMinutes int `env:"PASSWORD_RESET_VALID_DURATION_MINUTES" envDefault:"30"`

	AwsRegion                     string  `env:"AWS_REGION,required"`
	AwsAccessKey                  string  `env:"AWS_ACCESS_KEY,required"`
	AwsSecretKey                  string  `env:"AWS_SECRET_KEY,required"`
	AwsEmailSender                string  `env:"AWS_EMAIL_SENDER,required"`
	AwsEmailPasswordResetTemplate string  `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE,required"`
	AwsEmailPasswordResetBaseUrl  url.URL `env:"AWS_EMAIL_PASSWORD_RESET_BASE_URL,required"`
	AwsS3Bucket                   string  `env:"AWS_S3_BUCKET,required"`

	GeminiAPIKey string `env:"GEMINI_API_KEY,required"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("could not load configuration: %w", err)
	}
	return config, nil
}
