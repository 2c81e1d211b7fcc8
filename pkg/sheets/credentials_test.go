package sheets

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/itaoit/itstock-backend/pkg/config"
)

const fakeServiceAccount = `{"type":"service_account","project_id":"itstock-test"}`

func TestResolveCredentialsPrefersEmbedded(t *testing.T) {
	cfg := config.SheetsConfig{
		EmbeddedCredentialsB64: base64.StdEncoding.EncodeToString([]byte(fakeServiceAccount)),
		CredentialsJSON:        fakeServiceAccount,
	}

	_, source, err := ResolveCredentials(cfg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if source != SourceEmbedded {
		t.Fatalf("expected embedded source to win, got %s", source)
	}
}

func TestResolveCredentialsEnvRawJSON(t *testing.T) {
	cfg := config.SheetsConfig{CredentialsJSON: fakeServiceAccount}

	_, source, err := ResolveCredentials(cfg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if source != SourceEnv {
		t.Fatalf("expected env source, got %s", source)
	}
}

func TestResolveCredentialsEnvBase64(t *testing.T) {
	cfg := config.SheetsConfig{
		CredentialsJSON: base64.StdEncoding.EncodeToString([]byte(fakeServiceAccount)),
	}

	_, source, err := ResolveCredentials(cfg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if source != SourceEnv {
		t.Fatalf("expected env source, got %s", source)
	}
}

func TestResolveCredentialsFallsBackToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sa.json")
	if err := os.WriteFile(path, []byte(fakeServiceAccount), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg := config.SheetsConfig{CredentialsFile: path}
	_, source, err := ResolveCredentials(cfg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if source != SourceFile {
		t.Fatalf("expected file source, got %s", source)
	}
}

func TestResolveCredentialsNoneConfigured(t *testing.T) {
	cfg := config.SheetsConfig{CredentialsFile: filepath.Join(t.TempDir(), "missing.json")}
	if _, _, err := ResolveCredentials(cfg); err == nil {
		t.Fatalf("expected error when no source is available")
	}
}

func TestResolveCredentialsBadEnvBase64(t *testing.T) {
	cfg := config.SheetsConfig{CredentialsJSON: "%%%not-base64%%%"}
	if _, _, err := ResolveCredentials(cfg); err == nil {
		t.Fatalf("expected error for undecodable env credentials")
	}
}
