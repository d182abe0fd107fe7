package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Redis — holds the menu and history snapshots plus the job queues
	RedisURL string `mapstructure:"REDIS_URL"`

	// Admin gate
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	JWTRefreshHours    int    `mapstructure:"JWT_REFRESH_HOURS"`
	AdminUsername      string `mapstructure:"ADMIN_USERNAME"`
	// AdminPasswordHash is a bcrypt hash — generate with cmd/genhash
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`

	// SMTP — receipt delivery by email
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`

	// Business
	PDFStoragePath string `mapstructure:"PDF_STORAGE_PATH"`
	OutletName     string `mapstructure:"OUTLET_NAME"`
	OutletTagline  string `mapstructure:"OUTLET_TAGLINE"`
	OutletAddress  string `mapstructure:"OUTLET_ADDRESS"`
	OutletPhone    string `mapstructure:"OUTLET_PHONE"`
	OutletEmail    string `mapstructure:"OUTLET_EMAIL"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("WORKER_POOL_SIZE", 2)
	viper.SetDefault("JWT_EXPIRATION_HOURS", 8)
	viper.SetDefault("JWT_REFRESH_HOURS", 24)
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("PDF_STORAGE_PATH", "/tmp/sidrabill/pdfs")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("OUTLET_NAME", "Sidra Fast Food")
	viper.SetDefault("OUTLET_TAGLINE", "Fresh & Tasty")
	viper.SetDefault("OUTLET_ADDRESS", "Near Star Palace, Behat Road, Saharanpur UP-247001")
	viper.SetDefault("OUTLET_PHONE", "9286670192")
	viper.SetDefault("OUTLET_EMAIL", "sidra.malik@gmail.com")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
