package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/gradebook/internal/config"
	"github.com/JaimeStill/gradebook/pkg/database"
	"github.com/JaimeStill/gradebook/pkg/storage"
)

const baseConfig = `
log_level = "debug"
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "15m"

[database]
driver = "pgx"
host = "localhost"
port = 5432
name = "gradebook"
user = "gradebook"
password = "gradebook"

[storage]
provider = "filesystem"
root = "data/uploads"

[api]
base_path = "/api"
max_upload_size = "5MB"

[api.pagination]
default_page_size = 25
max_page_size = 50

[api.staff]
password = "gradebook-staff"
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "prodhost"
`

const minimalConfig = `
[database]
driver = "sqlite"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != database.DriverPostgres {
		t.Errorf("database driver: got %s, want pgx", cfg.Database.Driver)
	}
	if cfg.Database.Name != "gradebook" {
		t.Errorf("database name: got %s, want gradebook", cfg.Database.Name)
	}
	if cfg.Storage.Provider != storage.ProviderFilesystem {
		t.Errorf("storage provider: got %s, want filesystem", cfg.Storage.Provider)
	}
	if cfg.API.Pagination.DefaultPageSize != 25 {
		t.Errorf("default page size: got %d, want 25", cfg.API.Pagination.DefaultPageSize)
	}
	if cfg.API.Staff.Password != "gradebook-staff" {
		t.Errorf("staff password: got %s, want gradebook-staff", cfg.API.Staff.Password)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("level: got %s, want DEBUG", cfg.Level())
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.prod.toml", overlayConfig)
	chdir(t, dir)
	t.Setenv(config.EnvGradebookEnv, "prod")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "prodhost" {
		t.Errorf("database host: got %s, want prodhost", cfg.Database.Host)
	}
	if cfg.Database.Name != "gradebook" {
		t.Errorf("database name should survive overlay, got %s", cfg.Database.Name)
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	t.Setenv("GRADEBOOK_SERVER_PORT", "7070")
	t.Setenv("GRADEBOOK_DB_DRIVER", "sqlite")
	t.Setenv("GRADEBOOK_DB_PATH", "override.db")
	t.Setenv("GRADEBOOK_STAFF_PASSWORD", "from-env")
	t.Setenv("GRADEBOOK_LOG_LEVEL", "warn")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("server port: got %d, want 7070", cfg.Server.Port)
	}
	if cfg.Database.Driver != database.DriverSQLite || cfg.Database.Path != "override.db" {
		t.Errorf("database: got %s %s, want sqlite override.db", cfg.Database.Driver, cfg.Database.Path)
	}
	if cfg.API.Staff.Password != "from-env" {
		t.Errorf("staff password: got %s, want from-env", cfg.API.Staff.Password)
	}
	if cfg.Level() != slog.LevelWarn {
		t.Errorf("level: got %s, want WARN", cfg.Level())
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, minimalConfig)
	writeConfig(t, dir, config.DotEnvFile, "GRADEBOOK_DB_PATH=dotenv.db\nGRADEBOOK_SERVER_PORT=6060\n")
	chdir(t, dir)

	t.Setenv("GRADEBOOK_SERVER_PORT", "5050")
	t.Cleanup(func() { os.Unsetenv("GRADEBOOK_DB_PATH") })

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Database.Path != "dotenv.db" {
		t.Errorf("database path: got %s, want dotenv.db", cfg.Database.Path)
	}
	if cfg.Server.Port != 5050 {
		t.Errorf("server port: got %d, want process env 5050 over .env", cfg.Server.Port)
	}
}

func TestLoadNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("GRADEBOOK_DB_DRIVER", "sqlite")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port default: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("base path default: got %s, want /api", cfg.API.BasePath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level default: got %s, want info", cfg.LogLevel)
	}
	if !cfg.API.Staff.UsesDefault() {
		t.Error("staff secret should fall back to the default password")
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed toml", "server = [", "parse config"},
		{"postgres without name", "[database]\ndriver = \"pgx\"\nuser = \"u\"\n", "name required"},
		{"bad log level", "log_level = \"loud\"\n[database]\ndriver = \"sqlite\"\n", "invalid log_level"},
		{"bad upload size", "[database]\ndriver = \"sqlite\"\n[api]\nmax_upload_size = \"lots\"\n", "invalid max_upload_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, config.BaseConfigFile, tt.content)
			chdir(t, dir)

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestEnv(t *testing.T) {
	cfg := &config.Config{}
	if got := cfg.Env(); got != "local" {
		t.Errorf("Env() default: got %s, want local", got)
	}

	t.Setenv(config.EnvGradebookEnv, "prod")
	if got := cfg.Env(); got != "prod" {
		t.Errorf("Env(): got %s, want prod", got)
	}
}

func TestShutdownTimeoutDuration(t *testing.T) {
	cfg := &config.Config{ShutdownTimeout: "45s"}
	if got := cfg.ShutdownTimeoutDuration(); got != 45*time.Second {
		t.Errorf("got %v, want 45s", got)
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"127.0.0.1", 9000, "127.0.0.1:9000"},
		{"::1", 9000, "[::1]:9000"},
		{"", 8080, ":8080"},
	}

	for _, tt := range tests {
		cfg := &config.ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr(): got %s, want %s", got, tt.want)
		}
	}
}

func TestServerTimeoutDefaults(t *testing.T) {
	cfg := &config.ServerConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if got := cfg.ReadHeaderTimeoutDuration(); got != 10*time.Second {
		t.Errorf("read header timeout: got %v, want 10s", got)
	}
	if got := cfg.WriteTimeoutDuration(); got != 2*time.Minute {
		t.Errorf("write timeout: got %v, want 2m", got)
	}
}

func TestMaxUploadSizeBytes(t *testing.T) {
	tests := []struct {
		size string
		want int64
	}{
		{"5MB", 5 * 1024 * 1024},
		{"512KB", 512 * 1024},
		{"garbage", 10 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			cfg := &config.APIConfig{MaxUploadSize: tt.size}
			if got := cfg.MaxUploadSizeBytes(); got != tt.want {
				t.Errorf("MaxUploadSizeBytes(): got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestServerValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.ServerConfig
		wantErr string
	}{
		{"invalid port", config.ServerConfig{Port: 70000}, "invalid port"},
		{"invalid read timeout", config.ServerConfig{ReadTimeout: "soon"}, "invalid read_timeout"},
		{"zero shutdown timeout", config.ServerConfig{ShutdownTimeout: "0s"}, "invalid shutdown_timeout: must be positive"},
		{"negative header timeout", config.ServerConfig{ReadHeaderTimeout: "-1s"}, "invalid read_header_timeout"},
		{"defaults", config.ServerConfig{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
