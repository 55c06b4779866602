// Package secrets resolves source database passwords kept outside the
// main configuration file, so config files can be committed without
// leaking credentials.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/EungsopYoo/sqoop/internal/dbconfig"
)

const (
	// DefaultSecretsFile is the default secrets filename under the home directory.
	DefaultSecretsFile = ".sqoop-secrets.yaml"
	// FileEnvVar overrides the secrets file location.
	FileEnvVar = "SQOOP_SECRETS_FILE"
	// EnvPrefix marks a password value as an environment variable reference.
	EnvPrefix = "env:"
)

// File is the on-disk secrets layout: passwords keyed by
// "user@host/database".
type File struct {
	Passwords map[string]string `yaml:"passwords"`
}

// Path returns the location of the secrets file.
func Path() string {
	if envPath := os.Getenv(FileEnvVar); envPath != "" {
		return envPath
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DefaultSecretsFile
	}
	return filepath.Join(homeDir, DefaultSecretsFile)
}

// Key returns the lookup key for a source database.
func Key(cfg *dbconfig.SourceConfig) string {
	return fmt.Sprintf("%s@%s/%s", cfg.User, cfg.Host, cfg.Database)
}

// ResolvePassword resolves the password for a source database.
//
// A literal password in the config is used as-is. A value of the form
// "env:VAR" is read from the environment. An empty value falls back to
// the secrets file; a missing file resolves to an empty password.
func ResolvePassword(cfg *dbconfig.SourceConfig) (string, error) {
	if ref, ok := strings.CutPrefix(cfg.Password, EnvPrefix); ok {
		value := os.Getenv(ref)
		if value == "" {
			return "", fmt.Errorf("environment variable %s referenced by source.password is not set", ref)
		}
		return value, nil
	}
	if cfg.Password != "" {
		return cfg.Password, nil
	}

	file, err := load(Path())
	if err != nil {
		return "", err
	}
	if file == nil {
		return "", nil
	}
	return file.Passwords[Key(cfg)], nil
}

// load reads the secrets file. A missing file is not an error; a file
// readable by other users is rejected.
func load(path string) (*File, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("checking secrets file: %w", err)
	}
	if mode := info.Mode().Perm(); mode&0o077 != 0 {
		return nil, fmt.Errorf("secrets file %s has insecure permissions (%04o), run: chmod 600 %s",
			path, mode, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading secrets file: %w", err)
	}
	file := &File{}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("parsing secrets file: %w", err)
	}
	return file, nil
}
