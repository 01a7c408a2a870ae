package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Upload   UploadConfig
	Redis    RedisConfig
	Listing  ListingConfig
}

type AppConfig struct {
	Name     string
	Port     string
	Debug    bool
	LogPath  string
	APIKey   string
	Location *time.Location
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
	// CleanupSchedule is the cron expression for purging expired sessions
	CleanupSchedule string
}

type UploadConfig struct {
	MaxBytes         int64
	Dir              string
	PublicBaseURL    string
	CloudinaryURL    string
	CloudinaryFolder string
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

// ListingConfig holds the fixed page sizes of the transaction views.
type ListingConfig struct {
	AdminPageSize int
	UserPageSize  int
}

func (c RedisConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "travel-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("TIMEZONE", "Asia/Jakarta")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("SESSION_CLEANUP_SCHEDULE", "@hourly")
	viper.SetDefault("UPLOAD_MAX_BYTES", 1<<20)
	viper.SetDefault("UPLOAD_DIR", "uploads/")
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	viper.SetDefault("CLOUDINARY_FOLDER", "travel_booking")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL_SECONDS", 60)
	viper.SetDefault("ADMIN_PAGE_SIZE", 10)
	viper.SetDefault("USER_PAGE_SIZE", 5)

	// .env is optional, the process environment always wins
	if _, err := os.Stat(".env"); err == nil {
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	viper.AutomaticEnv()

	loc, err := time.LoadLocation(viper.GetString("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", viper.GetString("TIMEZONE"), err)
	}

	config := &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Port:     viper.GetString("PORT"),
			Debug:    viper.GetBool("DEBUG"),
			LogPath:  viper.GetString("LOG_PATH"),
			APIKey:   viper.GetString("API_KEY"),
			Location: loc,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours:     viper.GetInt("SESSION_EXPIRY_HOURS"),
			CleanupSchedule: viper.GetString("SESSION_CLEANUP_SCHEDULE"),
		},
		Upload: UploadConfig{
			MaxBytes:         viper.GetInt64("UPLOAD_MAX_BYTES"),
			Dir:              viper.GetString("UPLOAD_DIR"),
			PublicBaseURL:    viper.GetString("PUBLIC_BASE_URL"),
			CloudinaryURL:    viper.GetString("CLOUDINARY_URL"),
			CloudinaryFolder: viper.GetString("CLOUDINARY_FOLDER"),
		},
		Redis: RedisConfig{
			Addr:       viper.GetString("REDIS_ADDR"),
			Password:   viper.GetString("REDIS_PASSWORD"),
			DB:         viper.GetInt("REDIS_DB"),
			TTLSeconds: viper.GetInt("CACHE_TTL_SECONDS"),
		},
		Listing: ListingConfig{
			AdminPageSize: viper.GetInt("ADMIN_PAGE_SIZE"),
			UserPageSize:  viper.GetInt("USER_PAGE_SIZE"),
		},
	}

	if config.App.APIKey == "" {
		return nil, fmt.Errorf("API_KEY is required")
	}

	return config, nil
}
