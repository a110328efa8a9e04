package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultJWTSecret = "your-super-secret-jwt-token"
	defaultDBPass    = "postgres"
)

type Config struct {
	App struct {
		Env         string
		Port        string
		FrontendURL string
		Migrate     bool

		// TrustedProxies may set X-Forwarded-For. Empty means the peer
		// address is the client address.
		TrustedProxies []string
	}
	DB struct {
		URL      string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}
	// Auth points at the managed backend's auth service. JWTSecret is the
	// secret it signs access tokens with.
	Auth struct {
		URL       string
		AnonKey   string
		JWTSecret string
	}
	Mail struct {
		SendgridKey         string
		FromEmail           string
		FromName            string
		InscripcionTemplate string
		VoucherTemplate     string
		DirectivaEmail      string
	}
	RateLimit struct {
		RPS   float64
		Burst int
	}
}

// IsDevelopment reports whether the app runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// LoadConfig loads configuration from a .env file (if any) and the environment.
// Call it once from main and pass the result down.
func LoadConfig() (*Config, error) {
	// Load .env file. It's okay if it doesn't exist, especially in production
	// where env vars are set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on system environment variables.")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8088")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("MIGRATE", "false")
	v.SetDefault("TRUSTED_PROXIES", "")

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", defaultDBPass)
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("AUTH_URL", "http://localhost:54321")
	v.SetDefault("AUTH_ANON_KEY", "")
	v.SetDefault("AUTH_JWT_SECRET", defaultJWTSecret)

	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("MAIL_FROM_EMAIL", "noreply@localhost")
	v.SetDefault("MAIL_FROM_NAME", "Club Portal")
	v.SetDefault("MAIL_TEMPLATE_INSCRIPCION", "")
	v.SetDefault("MAIL_TEMPLATE_VOUCHER", "")
	v.SetDefault("MAIL_DIRECTIVA", "")

	v.SetDefault("RATE_LIMIT_RPS", "2")
	v.SetDefault("RATE_LIMIT_BURST", "5")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	// --- App Configuration ---
	cfg.App.Env = v.GetString("APP_ENV")
	cfg.App.Port = v.GetString("PORT")
	cfg.App.FrontendURL = strings.TrimRight(v.GetString("FRONTEND_URL"), "/")
	cfg.App.Migrate = v.GetBool("MIGRATE")
	cfg.App.TrustedProxies = splitList(v.GetString("TRUSTED_PROXIES"))

	// --- Database Configuration ---
	cfg.DB.URL = v.GetString("DATABASE_URL")
	cfg.DB.Host = v.GetString("DB_HOST")
	cfg.DB.Port = v.GetString("DB_PORT")
	cfg.DB.User = v.GetString("DB_USER")
	cfg.DB.Password = v.GetString("DB_PASSWORD")
	cfg.DB.Name = v.GetString("DB_NAME")
	cfg.DB.SSLMode = v.GetString("DB_SSLMODE")

	// --- Auth service ---
	cfg.Auth.URL = strings.TrimRight(v.GetString("AUTH_URL"), "/")
	cfg.Auth.AnonKey = v.GetString("AUTH_ANON_KEY")
	cfg.Auth.JWTSecret = v.GetString("AUTH_JWT_SECRET")

	// --- Mail ---
	cfg.Mail.SendgridKey = v.GetString("SENDGRID_API_KEY")
	cfg.Mail.FromEmail = v.GetString("MAIL_FROM_EMAIL")
	cfg.Mail.FromName = v.GetString("MAIL_FROM_NAME")
	cfg.Mail.InscripcionTemplate = v.GetString("MAIL_TEMPLATE_INSCRIPCION")
	cfg.Mail.VoucherTemplate = v.GetString("MAIL_TEMPLATE_VOUCHER")
	cfg.Mail.DirectivaEmail = v.GetString("MAIL_DIRECTIVA")

	// --- Rate limiting ---
	rps, err := parseFloat(v, "RATE_LIMIT_RPS")
	if err != nil {
		return nil, err
	}
	cfg.RateLimit.RPS = rps
	burst, err := parseInt(v, "RATE_LIMIT_BURST")
	if err != nil {
		return nil, err
	}
	cfg.RateLimit.Burst = burst

	if cfg.Auth.JWTSecret == defaultJWTSecret {
		log.Println("WARNING: Using default AUTH_JWT_SECRET. Set it to the auth service's JWT secret.")
	}
	if cfg.DB.URL == "" && cfg.DB.Password == defaultDBPass && cfg.App.Env == "production" {
		log.Println("WARNING: Using default DB password in production. Please set DB_PASSWORD or DATABASE_URL.")
	}

	return cfg, nil
}

// DSN returns DATABASE_URL when set, otherwise a keyword/value DSN built from the DB_* settings.
func (c *Config) DSN() string {
	if c.DB.URL != "" {
		return c.DB.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DB.Host,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.Port,
		c.DB.SSLMode,
	)
}

// ConnectDB opens the gorm connection to the backend's Postgres database.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{}
	if cfg.IsDevelopment() {
		gormConfig.Logger = logger.Default.LogMode(logger.Info) // Log SQL queries in development
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Successfully connected to database!")
	return db, nil
}

func parseFloat(v *viper.Viper, key string) (float64, error) {
	raw := strings.TrimSpace(v.GetString(key))
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("env var %s: expected number, got '%s'", key, raw)
	}
	return f, nil
}

func parseInt(v *viper.Viper, key string) (int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("env var %s: expected integer, got '%s'", key, raw)
	}
	return n, nil
}

// splitList reads a comma-separated setting; blank entries are dropped.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
