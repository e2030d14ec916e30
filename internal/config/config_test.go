package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
driver:
  executablePath: /usr/local/bin/geckodriver
  executableName: geckodriver
  port: 0
  commPort: 2828
  binaryPath: /opt/firefox/firefox
  extraArgs: ["--log=debug"]
  downloadUrl: https://github.com/mozilla/geckodriver/releases
  startupTimeout: 30s
  shutdownTimeout: 2s
log:
  level: debug
`

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/geckodriver", cfg.Driver.ExecutablePath)
	assert.Equal(t, 2828, cfg.Driver.CommPort)
	assert.Equal(t, "debug", cfg.Log.Level)

	svc, err := cfg.ServiceConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, svc.StartupTimeout)
	assert.Equal(t, 2*time.Second, svc.ShutdownTimeout)
	assert.Equal(t, []string{"--log=debug"}, svc.ExtraArgs)
}

func TestLoadFromBytesExpandsEnv(t *testing.T) {
	t.Setenv("TEST_DRIVER_PATH", "/tmp/chromedriver")

	cfg, err := LoadFromBytes([]byte("driver:\n  executablePath: ${TEST_DRIVER_PATH}\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/chromedriver", cfg.Driver.ExecutablePath)
}

func TestServiceConfigBadDuration(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("driver:\n  startupTimeout: soon\n"))
	require.NoError(t, err)

	_, err = cfg.ServiceConfig()
	assert.Error(t, err)
}

func TestLoadFromBytesRejectsBadYAML(t *testing.T) {
	_, err := LoadFromBytes([]byte("driver: [not a mapping"))
	assert.Error(t, err)
}
