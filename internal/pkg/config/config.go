package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Calendar  CalendarConfig
	Pricing   PricingConfig
	Payment   PaymentConfig
	Messaging MessagingConfig
	Tracing   TracingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Bangkok"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"25200"` // 7*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
	Issuer   string `envconfig:"JWT_ISSUER" default:"court-booking"`
}

// Opening hours are "HH:MM" in the booking time zone. Holidays use weekend hours.
type CalendarConfig struct {
	TimeZone     string   `envconfig:"BOOKING_TIMEZONE" default:"Asia/Bangkok"`
	WeekdayOpen  string   `envconfig:"CALENDAR_WEEKDAY_OPEN" default:"09:00"`
	WeekdayClose string   `envconfig:"CALENDAR_WEEKDAY_CLOSE" default:"22:00"`
	WeekendOpen  string   `envconfig:"CALENDAR_WEEKEND_OPEN" default:"08:00"`
	WeekendClose string   `envconfig:"CALENDAR_WEEKEND_CLOSE" default:"22:00"`
	Holidays     []string `envconfig:"CALENDAR_HOLIDAYS"`
	SlotMinutes  int      `envconfig:"CALENDAR_SLOT_MINUTES" default:"30"`
}

// Rates are minor currency units per slot, keyed by category.
// The set of keys is also the set of bookable categories.
type PricingConfig struct {
	Rates              map[string]int64 `envconfig:"PRICING_RATES" default:"badminton:15000,tennis:25000,pickleball:12000"`
	PeakStart          string           `envconfig:"PRICING_PEAK_START" default:"18:00"`
	PeakSurchargeCents int64            `envconfig:"PRICING_PEAK_SURCHARGE_CENTS" default:"5000"`
	Currency           string           `envconfig:"PRICING_CURRENCY" default:"thb"`
}

type PaymentConfig struct {
	Provider            string `envconfig:"PAYMENT_PROVIDER" default:"stripe"`
	StripeSecretKey     string `envconfig:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET"`
	OmisePublicKey      string `envconfig:"OMISE_PUBLIC_KEY"`
	OmiseSecretKey      string `envconfig:"OMISE_SECRET_KEY"`
	OmiseSourceType     string `envconfig:"OMISE_SOURCE_TYPE" default:"promptpay"`
	SuccessURL          string `envconfig:"PAYMENT_SUCCESS_URL" default:"http://localhost:3000/booking/complete"`
	CancelURL           string `envconfig:"PAYMENT_CANCEL_URL" default:"http://localhost:3000/booking"`
}

type MessagingConfig struct {
	RabbitURL          string        `envconfig:"RABBIT_URL"`
	Exchange           string        `envconfig:"RABBIT_EXCHANGE" default:"court-booking"`
	OutboxPollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"2s"`
	OutboxBatchSize    int32         `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`
	OutboxMaxAttempts  int32         `envconfig:"OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type TracingConfig struct {
	Endpoint    string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"court-booking"`
	Environment string `envconfig:"ENV" default:"dev"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Bangkok",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 25200,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
			Issuer:   "court-booking-test",
		},
		Calendar: CalendarConfig{
			TimeZone:     "Asia/Bangkok",
			WeekdayOpen:  "09:00",
			WeekdayClose: "22:00",
			WeekendOpen:  "08:00",
			WeekendClose: "22:00",
			SlotMinutes:  30,
		},
		Pricing: PricingConfig{
			Rates:              map[string]int64{"badminton": 15000, "tennis": 25000},
			PeakStart:          "18:00",
			PeakSurchargeCents: 5000,
			Currency:           "thb",
		},
		Payment: PaymentConfig{
			Provider:            "stripe",
			StripeSecretKey:     "sk_test_dummy",
			StripeWebhookSecret: "whsec_test",
			SuccessURL:          "http://localhost:3000/booking/complete",
			CancelURL:           "http://localhost:3000/booking",
		},
		Messaging: MessagingConfig{
			Exchange:           "court-booking-test",
			OutboxPollInterval: 100 * time.Millisecond,
			OutboxBatchSize:    10,
			OutboxMaxAttempts:  3,
		},
		Tracing: TracingConfig{
			ServiceName: "court-booking-test",
			Environment: "test",
		},
	}
}
