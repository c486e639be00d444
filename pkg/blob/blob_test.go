package blob

import (
	"strings"
	"testing"
)

func TestObjectName(t *testing.T) {
	name := ObjectName("products", "photo.jpg")

	if !strings.HasPrefix(name, "products/") {
		t.Errorf("ObjectName() = %q, want products/ prefix", name)
	}
	if !strings.HasSuffix(name, ".jpg") {
		t.Errorf("ObjectName() = %q, want .jpg suffix", name)
	}
	if name == ObjectName("products", "photo.jpg") {
		t.Error("ObjectName() should generate unique keys")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "minio.internal:9000")
	t.Setenv("MINIO_ACCESS_KEY", "dealhub")
	t.Setenv("MINIO_SECRET_KEY", "secret")
	t.Setenv("MINIO_BUCKET_NAME", "override-bucket")

	cfg := ConfigFromEnv("localhost:9000", false, "dealhub-media")

	if cfg.Endpoint != "minio.internal:9000" {
		t.Errorf("Endpoint = %q, want env override", cfg.Endpoint)
	}
	if cfg.AccessKey != "dealhub" || cfg.SecretKey != "secret" {
		t.Error("expected credentials from environment")
	}
	if cfg.Bucket != "override-bucket" {
		t.Errorf("Bucket = %q, want env override", cfg.Bucket)
	}
}
