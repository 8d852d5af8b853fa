package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Checkout     CheckoutConfig
	Email        EmailConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STITCH_APP_ENV" required:"true"`
	Port         string `envconfig:"STITCH_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STITCH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STITCH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STITCH_DB_DSN"`
	Driver string `envconfig:"STITCH_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STITCH_DB_HOST"`
	LegacyPort     int    `envconfig:"STITCH_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STITCH_DB_USER"`
	LegacyPassword string `envconfig:"STITCH_DB_PASSWORD"`
	LegacyName     string `envconfig:"STITCH_DB_NAME"`
	LegacySSLMode  string `envconfig:"STITCH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STITCH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STITCH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STITCH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STITCH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STITCH_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STITCH_REDIS_ADDR"`
	Password     string        `envconfig:"STITCH_REDIS_PASSWORD"`
	DB           int           `envconfig:"STITCH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STITCH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STITCH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STITCH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STITCH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STITCH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"STITCH_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"STITCH_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"STITCH_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	StockTopic        string `envconfig:"STITCH_PUBSUB_STOCK_TOPIC" default:"stitch-stock-events"`
	StockSubscription string `envconfig:"STITCH_PUBSUB_STOCK_SUBSCRIPTION" required:"true"`
}

// CheckoutConfig carries the business constants of the order pipeline.
// MaxOrderAmountEGP bounds the item subtotal only; the shipping fee is
// added on top of the subtotal for display and is never part of that check.
type CheckoutConfig struct {
	ShippingFeeEGP    int           `envconfig:"STITCH_CHECKOUT_SHIPPING_FEE_EGP" default:"50"`
	MaxOrderAmountEGP int           `envconfig:"STITCH_CHECKOUT_MAX_ORDER_AMOUNT_EGP" default:"10000"`
	RateLimitWindow   time.Duration `envconfig:"STITCH_CHECKOUT_RATE_LIMIT_WINDOW" default:"30m"`
	RateLimitMax      int           `envconfig:"STITCH_CHECKOUT_RATE_LIMIT_MAX_ORDERS" default:"3"`
	CartTTL           time.Duration `envconfig:"STITCH_CHECKOUT_CART_TTL" default:"24h"`
}

type EmailConfig struct {
	Endpoint   string `envconfig:"STITCH_EMAILJS_ENDPOINT" default:"https://api.emailjs.com/api/v1.0/email/send"`
	ServiceID  string `envconfig:"STITCH_EMAILJS_SERVICE_ID"`
	TemplateID string `envconfig:"STITCH_EMAILJS_TEMPLATE_ID"`
	PublicKey  string `envconfig:"STITCH_EMAILJS_PUBLIC_KEY"`
}

// Enabled reports whether the notifier has enough configuration to send.
func (e EmailConfig) Enabled() bool {
	return e.ServiceID != "" && e.TemplateID != "" && e.PublicKey != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STITCH_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
