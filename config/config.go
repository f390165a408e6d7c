package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	RootDomain   string
	AppSubdomain string
	AppURL       string

	PostgresURI string
	RedisAddr   string
	MongoURI    string
	MongoDB     string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	WSAllowedOrigins []string

	Storage StorageConfig
	Vercel  VercelConfig
	SMTP    SMTPConfig
	Stripe  StripeConfig
	Vertex  VertexConfig

	DomainWorkers         int
	DomainRecheckInterval time.Duration
	SiteCacheTTL          time.Duration
	ContactRateLimit      int
}

type StorageConfig struct {
	Driver    string // gcs | s3
	GCSBucket string
	// GCSUniformAccess skips per-object ACLs on buckets with uniform access.
	GCSUniformAccess bool
	S3Bucket         string
	S3Region         string
	S3Endpoint       string
	S3AccessKey      string
	S3SecretKey      string
	PublicBaseURL    string
}

type VercelConfig struct {
	Token     string
	ProjectID string
	TeamID    string
}

func (c VercelConfig) Enabled() bool { return c.Token != "" && c.ProjectID != "" }

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func (c SMTPConfig) Enabled() bool { return c.Host != "" && c.From != "" }

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	ProPriceID    string
}

func (c StripeConfig) Enabled() bool { return c.SecretKey != "" }

type VertexConfig struct {
	ProjectID string
	Location  string
	Model     string
}

func (c VertexConfig) Enabled() bool { return c.ProjectID != "" }

// Load reads .env (when present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:     getenv("PORT", "8080"),
		Env:      getenv("GO_ENV", "production"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		RootDomain:   strings.ToLower(getenv("ROOT_DOMAIN", "localhost")),
		AppSubdomain: strings.ToLower(getenv("APP_SUBDOMAIN", "app")),
		AppURL:       strings.TrimRight(getenv("APP_URL", "http://localhost:8080"), "/"),

		PostgresURI: os.Getenv("POSTGRES_URI"),
		RedisAddr:   firstNonEmpty(os.Getenv("REDIS_ADDR"), os.Getenv("REDIS_URI"), os.Getenv("REDIS_URL")),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     getenv("MONGO_DB", "folio"),

		JWTSecret:   os.Getenv("SUPABASE_JWT_SECRET"),
		JWTIssuer:   os.Getenv("SUPABASE_JWT_ISSUER"),
		JWTAudience: os.Getenv("SUPABASE_JWT_AUDIENCE"),

		WSAllowedOrigins: getenvList("WS_ALLOWED_ORIGINS"),

		Storage: StorageConfig{
			Driver:           getenv("STORAGE_DRIVER", "gcs"),
			GCSBucket:        os.Getenv("GCS_BUCKET"),
			S3Bucket:         os.Getenv("S3_BUCKET"),
			S3Region:         getenv("S3_REGION", "auto"),
			S3Endpoint:       os.Getenv("S3_ENDPOINT"),
			S3AccessKey:      os.Getenv("S3_ACCESS_KEY"),
			S3SecretKey:      os.Getenv("S3_SECRET_KEY"),
			PublicBaseURL:    strings.TrimRight(getenv("STORAGE_PUBLIC_BASE_URL", os.Getenv("S3_PUBLIC_BASE_URL")), "/"),
			GCSUniformAccess: os.Getenv("GCS_UNIFORM_ACCESS") == "true",
		},
		Vercel: VercelConfig{
			Token:     os.Getenv("VERCEL_TOKEN"),
			ProjectID: os.Getenv("VERCEL_PROJECT_ID"),
			TeamID:    os.Getenv("VERCEL_TEAM_ID"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getenvInt("SMTP_PORT", 587),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("MAIL_FROM"),
		},
		Stripe: StripeConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
			ProPriceID:    os.Getenv("STRIPE_PRICE_PRO"),
		},
		Vertex: VertexConfig{
			ProjectID: os.Getenv("VERTEX_PROJECT_ID"),
			Location:  getenv("VERTEX_LOCATION", "us-central1"),
			Model:     os.Getenv("VERTEX_MODEL"),
		},

		DomainWorkers:         getenvInt("DOMAIN_WORKERS", 2),
		DomainRecheckInterval: getenvDuration("DOMAIN_RECHECK_INTERVAL", 5*time.Minute),
		SiteCacheTTL:          getenvDuration("SITE_CACHE_TTL", 5*time.Minute),
		ContactRateLimit:      getenvInt("CONTACT_RATE_LIMIT", 5),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// getenvList splits a comma-separated value, dropping blanks.
func getenvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
