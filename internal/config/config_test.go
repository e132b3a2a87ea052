package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/canopy/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080

[database]
host = "localhost"
name = "canopy"
user = "canopy"
password = "canopy"

[storage]
container_name = "documents"
connection_string = "UseDevelopmentStorage=true"

[api]
base_path = "/api"
max_upload_size = "25MB"

[api.pagination]
default_page_size = 25
max_page_size = 50

[sessions]
load_concurrency = 8
max_documents = 16

[metrics]
enabled = true
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "db.staging"

[sessions]
max_documents = 4
`

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad(t *testing.T) {
	dir := inTempDir(t)
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"server port", cfg.Server.Port, 8080},
		{"database name", cfg.Database.Name, "canopy"},
		{"storage container", cfg.Storage.ContainerName, "documents"},
		{"upload size", cfg.API.MaxUploadSizeBytes(), int64(25 * 1024 * 1024)},
		{"request body default", cfg.API.MaxRequestBodyBytes(), int64(1024 * 1024)},
		{"page size", cfg.API.Pagination.DefaultPageSize, 25},
		{"load concurrency", cfg.Sessions.LoadConcurrency, 8},
		{"event buffer default", cfg.Sessions.EventBuffer, 16},
		{"metrics path default", cfg.Metrics.Path, "/metrics"},
		{"auth disabled", cfg.Auth.Enabled, false},
		{"shutdown", cfg.ShutdownTimeoutDuration(), 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := inTempDir(t)
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	t.Setenv(config.EnvCanopyEnv, "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port = %d, want 9090 from overlay", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.staging" {
		t.Errorf("database host = %s, want db.staging", cfg.Database.Host)
	}
	if cfg.Database.Name != "canopy" {
		t.Errorf("database name = %s, want canopy from base", cfg.Database.Name)
	}
	if cfg.Sessions.MaxDocuments != 4 {
		t.Errorf("max documents = %d, want 4", cfg.Sessions.MaxDocuments)
	}
	if cfg.Sessions.LoadConcurrency != 8 {
		t.Errorf("load concurrency = %d, want 8 from base", cfg.Sessions.LoadConcurrency)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := inTempDir(t)
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)

	t.Setenv("CANOPY_VERSION", "2.0.0")
	t.Setenv("CANOPY_SERVER_PORT", "3000")
	t.Setenv("CANOPY_SESSIONS_EVENT_BUFFER", "64")
	t.Setenv("CANOPY_METRICS_PATH", "/internal/metrics")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Version != "2.0.0" {
		t.Errorf("version = %s, want 2.0.0", cfg.Version)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Sessions.EventBuffer != 64 {
		t.Errorf("event buffer = %d, want 64", cfg.Sessions.EventBuffer)
	}
	if cfg.Metrics.Path != "/internal/metrics" {
		t.Errorf("metrics path = %s", cfg.Metrics.Path)
	}
}

func TestLoadWithoutConfigFile(t *testing.T) {
	inTempDir(t)

	t.Setenv("CANOPY_DB_NAME", "canopy")
	t.Setenv("CANOPY_DB_USER", "canopy")
	t.Setenv("CANOPY_STORAGE_SERVICE_URL", "https://canopy.blob.core.windows.net")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("base path = %s, want /api", cfg.API.BasePath)
	}
	if cfg.Env() != "local" {
		t.Errorf("Env() = %s, want local", cfg.Env())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "malformed toml",
			content: "[server\nport = ",
			wantErr: "parse config",
		},
		{
			name:    "invalid upload size",
			content: baseConfig + "\n",
			env:     map[string]string{"CANOPY_API_MAX_UPLOAD_SIZE": "lots"},
			wantErr: "invalid max_upload_size",
		},
		{
			name:    "invalid request body size",
			content: baseConfig,
			env:     map[string]string{"CANOPY_API_MAX_REQUEST_BODY": "0B"},
			wantErr: "invalid max_request_body",
		},
		{
			name:    "request body above upload size",
			content: baseConfig,
			env:     map[string]string{"CANOPY_API_MAX_REQUEST_BODY": "100MB"},
			wantErr: "exceeds max_upload_size",
		},
		{
			name:    "auth enabled without issuer",
			content: baseConfig,
			env:     map[string]string{"CANOPY_AUTH_ENABLED": "true"},
			wantErr: "issuer_url required",
		},
		{
			name:    "invalid server port",
			content: baseConfig,
			env:     map[string]string{"CANOPY_SERVER_PORT": "70000"},
			wantErr: "invalid port",
		},
		{
			name:    "invalid shutdown timeout",
			content: baseConfig,
			env:     map[string]string{"CANOPY_SHUTDOWN_TIMEOUT": "eventually"},
			wantErr: "invalid shutdown_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := inTempDir(t)
			writeConfig(t, dir, config.BaseConfigFile, tt.content)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 8443}
	if got := cfg.Addr(); got != "127.0.0.1:8443" {
		t.Errorf("Addr() = %s, want 127.0.0.1:8443", got)
	}
}
