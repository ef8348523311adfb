package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "buildledger", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "buildledger", cfg.JWT.Issuer)
	assert.NotZero(t, cfg.JWT.AccessTokenExpiration)
	assert.NotZero(t, cfg.HTTP.ShutdownTimeout)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("BL_DATABASE_HOST", "db.internal")
	t.Setenv("BL_APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "9090", cfg.App.Port)
}

func TestValidateProductionRequiresSecret(t *testing.T) {
	cfg := &Config{
		App:      AppConfig{Env: "production"},
		Database: DatabaseConfig{DBName: "x"},
	}
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = "super-secret"
	assert.NoError(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p",
		DBName: "d", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=u password=p dbname=d sslmode=disable",
		c.DSN())
}
