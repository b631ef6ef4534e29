package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	for _, key := range []string{"APP_ENV", "DB_PATH", "PORT", "S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_PATH_STYLE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.DBPath != defaultDBPath || cfg.Port != defaultPort || cfg.AppEnv != defaultAppEnv {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.S3Region != defaultS3Region {
		t.Fatalf("S3Region=%q, want %q", cfg.S3Region, defaultS3Region)
	}
	if !cfg.IsDev() {
		t.Fatalf("expected development environment by default")
	}
	if cfg.ArchiveEnabled() {
		t.Fatalf("archive must be disabled without a bucket")
	}
}

func TestLoad_ArchiveSettings(t *testing.T) {
	chdirTemp(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("S3_BUCKET", " informes-granja ")
	t.Setenv("S3_REGION", "sa-east-1")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_PATH_STYLE", "TRUE")

	cfg := Load()

	if !cfg.ArchiveEnabled() || cfg.S3Bucket != "informes-granja" {
		t.Fatalf("expected archive enabled for bucket, got %+v", cfg)
	}
	if cfg.S3Region != "sa-east-1" || cfg.S3Endpoint != "http://localhost:9000" || !cfg.S3PathStyle {
		t.Fatalf("unexpected s3 settings: %+v", cfg)
	}
	if cfg.IsDev() {
		t.Fatalf("production must not be treated as development")
	}
}

func chdirTemp(t *testing.T) {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
