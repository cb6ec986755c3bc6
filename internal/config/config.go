package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/openqda/qda/internal/session"
)

// Config carries the environment-provided connection settings. Credentials
// are persisted encrypted by the profile-file collaborator and arrive here
// already decrypted, through the environment.
type Config struct {
	DBType     string
	DBPath     string
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	CoderID         int64
	RefreshInterval time.Duration

	RedisAddr   string
	Compression string
}

// LoadConfig reads the environment, merging in a .env file when present.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("loading .env: %v", err)
	}

	return &Config{
		DBType:          getEnv("QDA_DB_TYPE", string(session.DBTypeSQLite)),
		DBPath:          getEnv("QDA_DB_PATH", "qda.db"),
		DBHost:          getEnv("QDA_DB_HOST", "localhost"),
		DBPort:          getEnvInt("QDA_DB_PORT", 5432),
		DBName:          getEnv("QDA_DB_NAME", "qda"),
		DBUser:          getEnv("QDA_DB_USER", "qda"),
		DBPassword:      getEnv("QDA_DB_PASSWORD", ""),
		CoderID:         int64(getEnvInt("QDA_CODER_ID", 1)),
		RefreshInterval: time.Duration(getEnvInt("QDA_REFRESH_SECONDS", 20)) * time.Second,
		RedisAddr:       getEnv("QDA_REDIS_ADDR", ""),
		Compression:     getEnv("QDA_COMPRESSION", ""),
	}
}

// Profile converts the config into a connection profile.
func (c *Config) Profile() session.Profile {
	return session.Profile{
		Type:            session.DBType(c.DBType),
		Path:            c.DBPath,
		Host:            c.DBHost,
		Port:            c.DBPort,
		Database:        c.DBName,
		User:            c.DBUser,
		Password:        c.DBPassword,
		CoderID:         c.CoderID,
		RefreshInterval: c.RefreshInterval,
	}
}

// GetDb opens the configured data source or dies trying.
func GetDb(cnf *Config) *gorm.DB {
	db, err := session.Open(cnf.Profile())
	if err != nil {
		logrus.Fatalf("error connecting to database: %v", err)
	}
	return db
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logrus.Warnf("invalid %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return parsed
}
