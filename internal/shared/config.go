package shared

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string `envconfig:"APP_ENV" default:"prod"`
	HTTPAddr       string `envconfig:"HTTP_ADDR" default:":8080"`
	MetricsAddr    string `envconfig:"METRICS_ADDR" default:":9100"`
	MySQLDSN       string `envconfig:"MYSQL_DSN" default:"root:root@tcp(localhost:3306)/hotels?parseTime=true&charset=utf8mb4&loc=UTC"`
	MigrateOnStart bool   `envconfig:"MIGRATE_ON_START" default:"true"`

	RedisAddr string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPass string        `envconfig:"REDIS_PASSWORD"`
	RedisDB   int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"15m"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	JWTExpire time.Duration `envconfig:"JWT_EXPIRE" default:"720h"`

	GeocoderBase string  `envconfig:"GEOCODER_BASE_URL" default:"https://www.mapquestapi.com/geocoding/v1"`
	GeocoderKey  string  `envconfig:"GEOCODER_API_KEY"`
	GeocoderRPS  float64 `envconfig:"GEOCODER_RPS" default:"5"`

	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY"`
	MinioUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	PhotoBucket    string `envconfig:"PHOTO_BUCKET" default:"hotel-photos"`
	MaxFileUpload  int64  `envconfig:"MAX_FILE_UPLOAD" default:"1000000"`

	RateLimitPerMinute int           `envconfig:"RATE_LIMIT_PER_MINUTE" default:"100"`
	RequestTimeout     time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`

	SeedDir     string `envconfig:"SEED_DIR" default:"_data"`
	SeedWorkers int    `envconfig:"SEED_WORKERS" default:"8"`
}

// Load reads the environment. Missing optional secrets only produce warnings.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty; login and protected routes will fail")
	}
	if c.GeocoderKey == "" {
		log.Warn().Msg("GEOCODER_API_KEY is empty")
	}
	return c, nil
}

func (c Config) IsDev() bool { return c.AppEnv == "dev" || c.AppEnv == "development" }
