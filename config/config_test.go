package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testConfigYAML = `
env:
  serviceName: signin-test
  log:
    level: info
http:
  port: 9000
secretKey:
  access: from-file
auth:
  accessTokenTTL: 10m
`

func writeConfig(t *testing.T, dir string) {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testConfigYAML), 0o600))
}

func TestLoadWithEnv_FileValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir)
	t.Chdir(dir)

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "signin-test", cfg.Env.ServiceName)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, "from-file", cfg.SecretKey.Access)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 10*time.Minute, cfg.Auth.AccessTokenTTL)
}

func TestLoadWithEnv_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir)
	t.Chdir(dir)
	t.Setenv("SECRETKEY_ACCESS", "from-env")
	t.Setenv("AUTH_ACCESSTOKENTTL", "45m")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.SecretKey.Access)
	assert.Equal(t, 45*time.Minute, cfg.Auth.AccessTokenTTL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file config.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	require.NotNil(t, cfg.Database)
	assert.False(t, cfg.Database.AutoMigrate)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Auth.BcryptCost)
	assert.Equal(t, defaultAccessTokenTTL, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, defaultLookupTimeout, cfg.Auth.LookupTimeout)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Auth.HashConcurrency)
}

func TestApplyDefaults_KeepsValidValues(t *testing.T) {
	auth := &AuthConfig{
		BcryptCost:      bcrypt.MinCost,
		AccessTokenTTL:  time.Hour,
		LookupTimeout:   time.Second,
		HashConcurrency: 2,
	}
	auth.applyDefaults()

	assert.Equal(t, bcrypt.MinCost, auth.BcryptCost)
	assert.Equal(t, time.Hour, auth.AccessTokenTTL)
	assert.Equal(t, time.Second, auth.LookupTimeout)
	assert.Equal(t, 2, auth.HashConcurrency)
}

func TestApplyDefaults_ClampsOutOfRangeCost(t *testing.T) {
	auth := &AuthConfig{BcryptCost: bcrypt.MaxCost + 1}
	auth.applyDefaults()

	assert.Equal(t, bcrypt.DefaultCost, auth.BcryptCost)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SIGNIN_TEST_DOTENV=loaded\n"), 0o600))
	t.Setenv("SIGNIN_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("SIGNIN_TEST_DOTENV"))

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "loaded", os.Getenv("SIGNIN_TEST_DOTENV"))

	require.NoError(t, loadEnvFile(filepath.Join(dir, "missing.env")))
}
