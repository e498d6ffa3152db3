package config

import (
	"log"
	"os"
	"strconv"

	"grounds-backend/internal/models"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		PortalPort         int      `mapstructure:"portal_port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	Company struct {
		Name    string `mapstructure:"name"`
		Address string `mapstructure:"address"`
		Phone   string `mapstructure:"phone"`
		Email   string `mapstructure:"email"`
		SIRET   string `mapstructure:"siret"`
	} `mapstructure:"company"`

	Archive struct {
		Enabled   bool   `mapstructure:"enabled"`
		Endpoint  string `mapstructure:"endpoint"`
		Region    string `mapstructure:"region"`
		Bucket    string `mapstructure:"bucket"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"archive"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.portal_port", 8081)
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "grounds-backend")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "grounds_db")
	v.SetDefault("company.name", "Vert Paysage")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// Override JWT secret from environment if not set
	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		if cfg.JWT.Secret == "" {
			log.Fatal("JWT_SECRET not set in config or environment")
		}
	}

	// Report archive (S3-compatible) settings from environment
	if endpoint := os.Getenv("ARCHIVE_S3_ENDPOINT"); endpoint != "" {
		cfg.Archive.Endpoint = endpoint
	}
	if bucket := os.Getenv("ARCHIVE_S3_BUCKET"); bucket != "" {
		cfg.Archive.Bucket = bucket
	}
	if key := os.Getenv("ARCHIVE_S3_ACCESS_KEY"); key != "" {
		cfg.Archive.AccessKey = key
	}
	if secret := os.Getenv("ARCHIVE_S3_SECRET_KEY"); secret != "" {
		cfg.Archive.SecretKey = secret
	}
	if cfg.Archive.Region == "" {
		cfg.Archive.Region = "auto"
	}
	cfg.Archive.Enabled = cfg.Archive.Bucket != "" && cfg.Archive.AccessKey != ""

	return &cfg
}

// CompanyInfo returns the letterhead block for PDF reports
func (c *Config) CompanyInfo() models.CompanyInfo {
	return models.CompanyInfo{
		Name:    c.Company.Name,
		Address: c.Company.Address,
		Phone:   c.Company.Phone,
		Email:   c.Company.Email,
		SIRET:   c.Company.SIRET,
	}
}
