package config

import (
	"log"
	"os"
	"strings"
)

const (
	defaultDBPath   = "./dev.db"
	defaultPort     = "8080"
	defaultAppEnv   = "development"
	defaultS3Region = "us-east-1"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv string
	DBPath string
	Port   string

	// Report archive. Disabled when S3Bucket is empty.
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		AppEnv:      os.Getenv("APP_ENV"),
		DBPath:      os.Getenv("DB_PATH"),
		Port:        os.Getenv("PORT"),
		S3Bucket:    strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:    os.Getenv("S3_REGION"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3PathStyle: strings.EqualFold(os.Getenv("S3_PATH_STYLE"), "true"),
	}

	if cfg.AppEnv == "" {
		cfg.AppEnv = defaultAppEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.S3Region == "" {
		cfg.S3Region = defaultS3Region
	}

	if !cfg.ArchiveEnabled() && !cfg.IsDev() {
		log.Print("warning: S3_BUCKET is not set; exported reports will not be archived")
	}

	return cfg
}

// IsDev reports whether the application runs in a development environment.
func (c Config) IsDev() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

// ArchiveEnabled reports whether exported reports should be copied to S3.
func (c Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}
