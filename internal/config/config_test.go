package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"APP_NAME":           "groupie",
		"APP_ENV":            "development",
		"HTTP_PORT":          "8080",
		"JWT_ACCESS_SECRET":  "access",
		"JWT_REFRESH_SECRET": "refresh",
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envFrom(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, "groupie", cfg.App.AppName)
	assert.Equal(t, "migrations", cfg.App.MigrationsDir)
	assert.Equal(t, "disable", cfg.Database.DBSSLMode)
	assert.Equal(t, int32(10), cfg.Database.PoolMaxConns)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiresIn)
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.JWT.BcryptCost)
	assert.True(t, cfg.App.SeedOnStart)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_InvalidBcryptCost(t *testing.T) {
	env := baseEnv()
	env["BCRYPT_COST"] = "2"

	_, err := FromEnv(envFrom(env))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BCRYPT_COST")
}

func TestFromEnv_SeedOnStart(t *testing.T) {
	env := baseEnv()
	env["SEED_ON_START"] = "false"

	cfg, err := FromEnv(envFrom(env))
	require.NoError(t, err)
	assert.False(t, cfg.App.SeedOnStart)

	env["SEED_ON_START"] = "maybe"
	_, err = FromEnv(envFrom(env))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEED_ON_START")
}

func TestFromEnv_MissingRequired(t *testing.T) {
	env := baseEnv()
	delete(env, "APP_NAME")
	delete(env, "JWT_ACCESS_SECRET")

	_, err := FromEnv(envFrom(env))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
}

func TestFromEnv_InvalidDuration(t *testing.T) {
	env := baseEnv()
	env["JWT_ACCESS_EXPIRES_IN"] = "soon"

	_, err := FromEnv(envFrom(env))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidEnv))
	assert.Contains(t, err.Error(), "JWT_ACCESS_EXPIRES_IN")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	env := baseEnv()
	env["DB_HOST"] = "db"
	env["DB_PORT"] = "5432"
	env["DB_NAME"] = "groupie"
	env["DB_USER"] = "postgres"
	env["DB_PASSWORD"] = "secret"

	cfg, err := FromEnv(envFrom(env))
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=postgres password=secret dbname=groupie sslmode=disable", cfg.Database.DSN())

	env["DATABASE_URL"] = "postgres://u:p@h:1/d"
	cfg, err = FromEnv(envFrom(env))
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@h:1/d", cfg.Database.DSN())
}
