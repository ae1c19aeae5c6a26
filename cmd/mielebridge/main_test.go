package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestGetConfigPath verifies the config path environment override.
func TestGetConfigPath(t *testing.T) {
	t.Setenv("MIELE_CONFIG", "")
	if got := getConfigPath(); got != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", got, defaultConfigPath)
	}

	t.Setenv("MIELE_CONFIG", "/etc/miele/bridge.yaml")
	if got := getConfigPath(); got != "/etc/miele/bridge.yaml" {
		t.Errorf("getConfigPath() = %q, want /etc/miele/bridge.yaml", got)
	}
}

// TestRun_MalformedConfig verifies run fails when the config file exists
// but cannot be parsed.
func TestRun_MalformedConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("gateway: [not a mapping"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("MIELE_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with a malformed config file")
	}
}

// TestRun_InvalidCredentials verifies run fails when the configured
// credentials are not hex strings.
func TestRun_InvalidCredentials(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
gateway:
  group_id: "not-hex"
  group_key: "also-not-hex"

mqtt:
  enabled: false

influxdb:
  enabled: false

logging:
  level: info
  format: json
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("MIELE_CONFIG", configPath)
	t.Setenv("GROUP_ID", "")
	t.Setenv("GROUP_KEY", "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with non-hex credentials")
	}
}
