package sheets

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/itaoit/itstock-backend/pkg/config"
	"google.golang.org/api/option"
)

// Source identifies where the service-account credentials were resolved from.
type Source string

const (
	SourceEmbedded Source = "embedded"
	SourceEnv      Source = "env"
	SourceFile     Source = "file"
)

// fallbackCredentialPaths are probed when the configured file is absent.
var fallbackCredentialPaths = []string{
	"./service_account.json",
	"/mnt/data/service_account.json",
}

var errNoCredentials = fmt.Errorf("no service account credentials found in embedded config, environment, or file")

// ResolveCredentials walks the ranked credential sources and returns the
// client option for the first one that yields usable service-account JSON.
// Sources are checked in order: embedded base64 blob, environment JSON
// (raw or base64), local file. The result is resolved once at startup and
// reused for the process lifetime.
func ResolveCredentials(cfg config.SheetsConfig) (option.ClientOption, Source, error) {
	if raw := strings.TrimSpace(cfg.EmbeddedCredentialsB64); raw != "" {
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, "", fmt.Errorf("decoding embedded credentials: %w", err)
		}
		return option.WithCredentialsJSON(decoded), SourceEmbedded, nil
	}

	if raw := strings.TrimSpace(cfg.CredentialsJSON); raw != "" {
		blob, err := credentialBytes(raw)
		if err != nil {
			return nil, "", fmt.Errorf("decoding credentials from environment: %w", err)
		}
		return option.WithCredentialsJSON(blob), SourceEnv, nil
	}

	paths := make([]string, 0, 1+len(fallbackCredentialPaths))
	if trimmed := strings.TrimSpace(cfg.CredentialsFile); trimmed != "" {
		paths = append(paths, trimmed)
	}
	paths = append(paths, fallbackCredentialPaths...)
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return option.WithCredentialsFile(path), SourceFile, nil
		}
	}

	return nil, "", errNoCredentials
}

// credentialBytes accepts either raw JSON or a base64-encoded JSON blob.
func credentialBytes(raw string) ([]byte, error) {
	if strings.HasPrefix(raw, "{") {
		return []byte(raw), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}
