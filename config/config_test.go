package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"DATABASE_DRIVER", "DATABASE_URL", "SQLITE_PATH", "PROJECTS_DIR",
		"PUBLIC_BASE_URL", "STRICT_SELECTION", "JWT_SECRET", "JWT_EXPIRATION", "ENVIRONMENT", "PORT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "app.db", cfg.SQLitePath)
	assert.Equal(t, "projects", cfg.ProjectsDir)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.StrictSelection)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.NotEmpty(t, cfg.JWTSecret, "development gets a default secret")
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_DRIVER", "POSTGRES")
	t.Setenv("DATABASE_URL", "postgres://localhost/proofsheet")
	t.Setenv("PUBLIC_BASE_URL", "https://studio.example.com/")
	t.Setenv("STRICT_SELECTION", "false")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.False(t, cfg.StrictSelection)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, "https://studio.example.com/select/abc", cfg.ClientURL("abc"))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DatabaseDriver: DriverSQLite,
			SQLitePath:     "app.db",
			ProjectsDir:    "projects",
			JWTSecret:      "secret",
			JWTExpiration:  time.Hour,
			MaxUploadFiles: 10,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "postgres without url", mutate: func(c *Config) { c.DatabaseDriver = DriverPostgres }, wantErr: "DATABASE_URL"},
		{name: "unknown driver", mutate: func(c *Config) { c.DatabaseDriver = "mysql" }, wantErr: "unsupported"},
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "JWT_SECRET"},
		{name: "missing projects dir", mutate: func(c *Config) { c.ProjectsDir = "" }, wantErr: "PROJECTS_DIR"},
		{name: "zero upload limit", mutate: func(c *Config) { c.MaxUploadFiles = 0 }, wantErr: "MAX_UPLOAD_FILES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
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
