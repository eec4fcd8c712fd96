package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"SLT_APP_ENV":                  os.Getenv("SLT_APP_ENV"),
		"SLT_APP_PORT":                 os.Getenv("SLT_APP_PORT"),
		"SLT_DATABASE_TYPE":            os.Getenv("SLT_DATABASE_TYPE"),
		"SLT_DATABASE_PATH":            os.Getenv("SLT_DATABASE_PATH"),
		"SLT_DATABASE_HOST":            os.Getenv("SLT_DATABASE_HOST"),
		"SLT_DATABASE_PORT":            os.Getenv("SLT_DATABASE_PORT"),
		"SLT_DATABASE_USER":            os.Getenv("SLT_DATABASE_USER"),
		"SLT_DATABASE_PASSWORD":        os.Getenv("SLT_DATABASE_PASSWORD"),
		"SLT_DATABASE_DBNAME":          os.Getenv("SLT_DATABASE_DBNAME"),
		"SLT_DATABASE_WINDOWS_AUTH":    os.Getenv("SLT_DATABASE_WINDOWS_AUTH"),
		"SLT_AUTH_DEV_FALLBACK_ENABLED": os.Getenv("SLT_AUTH_DEV_FALLBACK_ENABLED"),
		"SLT_AUTH_DEV_USER":            os.Getenv("SLT_AUTH_DEV_USER"),
		"SLT_STORAGE_BACKEND":          os.Getenv("SLT_STORAGE_BACKEND"),
		"SLT_STORAGE_BUCKET":           os.Getenv("SLT_STORAGE_BUCKET"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "sltrack-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "3001", cfg.App.Port)
		assert.Equal(t, "sqlite", cfg.Database.Type)
		assert.Equal(t, "sltrack.db", cfg.Database.Path)
		assert.Equal(t, "jdoe", cfg.Auth.DevUser)
		assert.Equal(t, "local", cfg.Storage.Backend)
		assert.Contains(t, cfg.Storage.AllowedExtensions, ".pdf")
		assert.False(t, cfg.App.IsProduction())
	})

	t.Run("loads sqlserver settings from environment", func(t *testing.T) {
		clearEnv()
		os.Setenv("SLT_DATABASE_TYPE", "sqlserver")
		os.Setenv("SLT_DATABASE_HOST", "sql.corp.local")
		os.Setenv("SLT_DATABASE_PORT", "14330")
		os.Setenv("SLT_DATABASE_USER", "sltrack")
		os.Setenv("SLT_DATABASE_PASSWORD", "secret")
		os.Setenv("SLT_DATABASE_DBNAME", "SLTrackProd")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "sqlserver", cfg.Database.Type)
		assert.Equal(t, "sql.corp.local", cfg.Database.Host)
		assert.Equal(t, 14330, cfg.Database.Port)
		assert.Equal(t, "sltrack", cfg.Database.User)
		assert.Equal(t, "SLTrackProd", cfg.Database.DBName)
	})

	t.Run("rejects unknown database type", func(t *testing.T) {
		clearEnv()
		os.Setenv("SLT_DATABASE_TYPE", "oracle")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.type")
	})

	t.Run("sqlserver without credentials requires windows auth", func(t *testing.T) {
		clearEnv()
		os.Setenv("SLT_DATABASE_TYPE", "sqlserver")
		os.Setenv("SLT_DATABASE_HOST", "sql.corp.local")

		_, err := Load()
		require.Error(t, err)

		os.Setenv("SLT_DATABASE_WINDOWS_AUTH", "true")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Database.WindowsAuth)
	})

	t.Run("s3 backend requires bucket", func(t *testing.T) {
		clearEnv()
		os.Setenv("SLT_STORAGE_BACKEND", "s3")

		_, err := Load()
		require.Error(t, err)

		os.Setenv("SLT_STORAGE_BUCKET", "sltrack-attachments")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "sltrack-attachments", cfg.Storage.Bucket)
	})

	t.Run("dev fallback fails closed in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("SLT_APP_ENV", "production")
		os.Setenv("SLT_AUTH_DEV_FALLBACK_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dev_fallback_enabled")
	})

	t.Run("unknown env counts as production", func(t *testing.T) {
		clearEnv()
		os.Setenv("SLT_APP_ENV", "prod") // typo'd value must not open the fallback

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.App.IsProduction())
	})
}
