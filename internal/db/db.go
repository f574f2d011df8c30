package db

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"memneo-backend/internal/config"
	"memneo-backend/pkg/logging"
)

var database *gorm.DB

// InitDBFromConfig opens the postgres connection described by the XML config
// and applies the pool settings.
func InitDBFromConfig(cfg *config.APIConfig) error {
	password, err := resolvePassword(cfg.DB.Password)
	if err != nil {
		return err
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.Username, password, cfg.DB.Names.MEMNEO, cfg.DB.SSLMode, cfg.Context.TimeZone)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DB.Pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.Pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DB.Pool.ConnMaxLifetime) * time.Second)

	database = gdb
	logging.Info("Connected to database %s on %s:%d", cfg.DB.Names.MEMNEO, cfg.DB.Host, cfg.DB.Port)
	return nil
}

// resolvePassword honours the PASSWORD TYPE attribute: plain chardata,
// an environment variable name, or an interactive terminal prompt.
func resolvePassword(pw config.DBPassword) (string, error) {
	switch pw.Type {
	case "env":
		val := os.Getenv(pw.Value)
		if val == "" {
			return "", fmt.Errorf("environment variable %s is not set", pw.Value)
		}
		return val, nil
	case "prompt":
		fmt.Print("Database password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password from terminal: %w", err)
		}
		return string(raw), nil
	default:
		return pw.Value, nil
	}
}

// GetDB returns the shared gorm handle.
func GetDB() *gorm.DB {
	return database
}
