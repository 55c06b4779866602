package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/EungsopYoo/sqoop/internal/dbconfig"
)

func sourceCfg(password string) *dbconfig.SourceConfig {
	return &dbconfig.SourceConfig{
		Host:     "localhost",
		Database: "shop",
		User:     "importer",
		Password: password,
	}
}

func TestResolveLiteralPassword(t *testing.T) {
	got, err := ResolvePassword(sourceCfg("hunter2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hunter2" {
		t.Errorf("password = %q", got)
	}
}

func TestResolveEnvReference(t *testing.T) {
	t.Setenv("SQOOP_TEST_PW", "from-env")
	got, err := ResolvePassword(sourceCfg("env:SQOOP_TEST_PW"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-env" {
		t.Errorf("password = %q", got)
	}
}

func TestResolveEnvReferenceUnset(t *testing.T) {
	if _, err := ResolvePassword(sourceCfg("env:SQOOP_TEST_PW_UNSET")); err == nil {
		t.Error("expected error for unset environment variable")
	}
}

func TestResolveFromSecretsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.yaml")
	content := "passwords:\n  importer@localhost/shop: s3cret\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(FileEnvVar, path)

	got, err := ResolvePassword(sourceCfg(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "s3cret" {
		t.Errorf("password = %q", got)
	}
}

func TestResolveRejectsInsecureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.yaml")
	if err := os.WriteFile(path, []byte("passwords: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(FileEnvVar, path)

	_, err := ResolvePassword(sourceCfg(""))
	if err == nil || !strings.Contains(err.Error(), "insecure permissions") {
		t.Errorf("error = %v, want insecure permissions", err)
	}
}

func TestResolveMissingFile(t *testing.T) {
	t.Setenv(FileEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))

	got, err := ResolvePassword(sourceCfg(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("password = %q, want empty", got)
	}
}
