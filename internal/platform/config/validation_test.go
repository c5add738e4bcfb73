package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{Name: "records-service", Version: "1.0.0", Environment: "local"},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxRequestSize:  DefaultMaxRequestSize,
		},
		Log: LogConfig{Level: "info", Format: "json"},
		Container: ContainerConfig{
			Name: "records",
			Stores: []StoreConfig{
				{Name: "main", Type: "sqlite", Path: "/var/lib/records/main.sqlite"},
				{Name: "cache", Type: "memory", Entities: []string{"session"}},
			},
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing app name", mutate: func(c *Config) { c.App.Name = "" }, wantErr: "app.name is required"},
		{name: "unknown environment", mutate: func(c *Config) { c.App.Environment = "staging" }, wantErr: "app.environment must be one of"},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "server.port is required"},
		{name: "port too high", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "server.port must be at most 65535"},
		{name: "short read timeout", mutate: func(c *Config) { c.Server.ReadTimeout = time.Millisecond }, wantErr: "server.read_timeout must be at least"},
		{name: "missing host", mutate: func(c *Config) { c.Server.Host = "" }, wantErr: "server.host is required"},
		{name: "trace level", mutate: func(c *Config) { c.Log.Level = "trace" }},
		{name: "pretty format", mutate: func(c *Config) { c.Log.Format = "pretty" }},
		{name: "unknown level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "log.level must be one of"},
		{
			name:    "log file without path",
			mutate:  func(c *Config) { c.Log.File = LogFileConfig{Enabled: true} },
			wantErr: "log.file.path is required when enabled is true",
		},
		{
			name:    "log file too large",
			mutate:  func(c *Config) { c.Log.File = LogFileConfig{Path: "x.log", MaxSizeMB: 4096} },
			wantErr: "log.file.max_size must be at most 1024",
		},
		{
			name:    "telemetry without endpoint",
			mutate:  func(c *Config) { c.Telemetry = TelemetryConfig{Enabled: true, ServiceName: "svc"} },
			wantErr: "telemetry.endpoint is required when enabled is true",
		},
		{
			name: "telemetry with bad endpoint",
			mutate: func(c *Config) {
				c.Telemetry = TelemetryConfig{Enabled: true, ServiceName: "svc", Endpoint: "not a url"}
			},
			wantErr: "telemetry.endpoint must be a valid URL",
		},
		{
			name: "telemetry enabled",
			mutate: func(c *Config) {
				c.Telemetry = TelemetryConfig{Enabled: true, ServiceName: "svc", Endpoint: "http://collector:4317", SamplingRate: 0.5}
			},
		},
		{name: "sampling above one", mutate: func(c *Config) { c.Telemetry.SamplingRate = 1.5 }, wantErr: "telemetry.sampling_rate must be at most 1"},
		{name: "missing container name", mutate: func(c *Config) { c.Container.Name = "" }, wantErr: "container.name is required"},
		{name: "no stores", mutate: func(c *Config) { c.Container.Stores = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_Stores(t *testing.T) {
	tests := []struct {
		name    string
		stores  []StoreConfig
		wantErr string
	}{
		{name: "memory", stores: []StoreConfig{{Name: "a", Type: "memory"}}},
		{name: "badger in memory", stores: []StoreConfig{{Name: "a", Type: "badger"}}},
		{name: "sqlite", stores: []StoreConfig{{Name: "a", Type: "sqlite", Path: "a.sqlite"}}},
		{name: "postgres", stores: []StoreConfig{{Name: "a", Type: "postgres", DSN: "postgres://localhost/db"}}},
		{
			name:    "sqlite without path",
			stores:  []StoreConfig{{Name: "a", Type: "sqlite"}},
			wantErr: "container.stores[0].path is required when type is sqlite",
		},
		{
			name:    "postgres without dsn",
			stores:  []StoreConfig{{Name: "a", Type: "postgres"}},
			wantErr: "container.stores[0].dsn is required when type is postgres",
		},
		{name: "unknown type", stores: []StoreConfig{{Name: "a", Type: "mongo"}}, wantErr: "container.stores[0].type must be one of"},
		{name: "unnamed", stores: []StoreConfig{{Type: "memory"}}, wantErr: "container.stores[0].name is required"},
		{
			name:    "blank entity",
			stores:  []StoreConfig{{Name: "a", Type: "memory", Entities: []string{""}}},
			wantErr: "container.stores[0].entities[0] is required",
		},
		{
			name:    "duplicate names",
			stores:  []StoreConfig{{Name: "a", Type: "memory"}, {Name: "a", Type: "memory", Entities: []string{"x"}}},
			wantErr: "container.stores must have unique name values",
		},
		{
			name:    "two catch-all stores",
			stores:  []StoreConfig{{Name: "a", Type: "memory"}, {Name: "b", Type: "memory"}},
			wantErr: "container.stores may contain at most one store without entities",
		},
		{
			name: "entity hosted twice",
			stores: []StoreConfig{
				{Name: "a", Type: "memory", Entities: []string{"note"}},
				{Name: "b", Type: "memory", Entities: []string{"tag", "note"}},
			},
			wantErr: `container.stores list entity "note" in more than one store`,
		},
		{
			name: "entity routed only to dedicated stores",
			stores: []StoreConfig{
				{Name: "a", Type: "memory", Entities: []string{"note"}},
				{Name: "b", Type: "memory", Entities: []string{"tag"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Container.Stores = tt.stores

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_ReportsEveryField(t *testing.T) {
	err := (&Config{App: AppConfig{Environment: "nowhere"}}).Validate()
	require.Error(t, err)

	for _, want := range []string{"app.name", "app.version", "app.environment", "server is required", "container is required"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestFieldPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Config.server.port", "server.port"},
		{"Config.container.stores[0].type", "container.stores[0].type"},
		{"Config", "Config"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldPath(tt.in))
		})
	}
}
