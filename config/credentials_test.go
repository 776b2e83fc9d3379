package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestPlainTextCredentialsRoundTrip(t *testing.T) {
	dataDir := t.TempDir()

	store := NewCredentialStore(SecurityPlainText, "")
	store.SetAPIKey("sk-ant-test-key")
	if err := store.Save(dataDir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewCredentialStore(SecurityPlainText, "")
	if err := reloaded.Load(dataDir); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := reloaded.APIKey(); got != "sk-ant-test-key" {
		t.Errorf("APIKey = %q, want %q", got, "sk-ant-test-key")
	}
}

func TestPlainTextCredentialsFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	dataDir := t.TempDir()

	store := NewCredentialStore(SecurityPlainText, "")
	store.SetAPIKey("sk-ant-test-key")
	if err := store.Save(dataDir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(filepath.Join(dataDir, "credentials.toml"))
	if err != nil {
		t.Fatalf("stat credentials file: %v", err)
	}
	if perms := info.Mode().Perm(); perms != 0600 {
		t.Errorf("credentials file mode = %o, want 0600", perms)
	}
}

func TestLoadMissingCredentialsFile(t *testing.T) {
	store := NewCredentialStore(SecurityPlainText, "")
	if err := store.Load(t.TempDir()); err != nil {
		t.Fatalf("Load on empty dir: %v", err)
	}
	if store.APIKey() != "" {
		t.Errorf("APIKey on fresh store = %q, want empty", store.APIKey())
	}
}

func TestDeleteAPIKey(t *testing.T) {
	dataDir := t.TempDir()

	store := NewCredentialStore(SecurityPlainText, "")
	store.SetAPIKey("sk-ant-test-key")
	store.Save(dataDir)

	store.DeleteAPIKey()
	if err := store.Save(dataDir); err != nil {
		t.Fatalf("Save after delete: %v", err)
	}

	reloaded := NewCredentialStore(SecurityPlainText, "")
	if err := reloaded.Load(dataDir); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.APIKey() != "" {
		t.Error("deleted key survived the round trip")
	}
}

func TestUnknownSecurityMethod(t *testing.T) {
	store := NewCredentialStore(SecurityMethod("vault"), "")
	if err := store.Load(t.TempDir()); err == nil {
		t.Error("Load should reject an unknown security method")
	}
	if err := store.Save(t.TempDir()); err == nil {
		t.Error("Save should reject an unknown security method")
	}
}
