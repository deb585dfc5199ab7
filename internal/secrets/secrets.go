// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads service credentials from two places: a dotenv file
// (KEY=value lines) and a directory of plain-text files where each filename
// is the key name and the trimmed contents are the value. Directory entries
// win over the dotenv file.
//
// Recognised keys: OXYLABS_USERNAME, OXYLABS_PASSWORD, WEB_UNBLOCK_USERNAME,
// WEB_UNBLOCK_PASSWORD, CROSSREF_MAILTO, SEMANTIC_SCHOLAR_API_KEY.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Credential key names.
const (
	OxylabsUsername    = "OXYLABS_USERNAME"
	OxylabsPassword    = "OXYLABS_PASSWORD"
	WebUnblockUsername = "WEB_UNBLOCK_USERNAME"
	WebUnblockPassword = "WEB_UNBLOCK_PASSWORD"
	CrossrefMailto     = "CROSSREF_MAILTO"
	SemanticScholarKey = "SEMANTIC_SCHOLAR_API_KEY"
	DefaultEnvFile     = ".env"
	DefaultSecretsDir  = ".secrets"
)

// Load merges the dotenv file at envFile with the key files in dir. Missing
// files or directories are not errors. Unreadable key files are logged and
// skipped. A dotenv file that exists but cannot be parsed is an error.
func Load(envFile, dir string, log *zap.Logger) (map[string]string, error) {
	if log == nil {
		log = zap.NewNop()
	}

	secrets, err := loadEnvFile(envFile)
	if err != nil {
		return nil, err
	}

	fromDir, err := loadDir(dir, log)
	if err != nil {
		return nil, err
	}
	for k, v := range fromDir {
		secrets[k] = v
	}
	return secrets, nil
}

func loadEnvFile(path string) (map[string]string, error) {
	secrets := make(map[string]string)
	if path == "" {
		return secrets, nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return secrets, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	for k, v := range env {
		if v = strings.TrimSpace(v); v != "" {
			secrets[k] = v
		}
	}
	return secrets, nil
}

func loadDir(dir string, log *zap.Logger) (map[string]string, error) {
	secrets := make(map[string]string)
	if dir == "" {
		return secrets, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return secrets, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", zap.String("key", name), zap.Error(err))
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}
