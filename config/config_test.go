package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConf_Defaults(t *testing.T) {
	cnf, err := NewConf()
	require.NoError(t, err)

	assert.Nil(t, cnf.Latitude)
	assert.Nil(t, cnf.Longitude)
	assert.Zero(t, cnf.Height)
	assert.False(t, cnf.UseGeolocation)
	assert.Equal(t, "http://ip-api.com/json/", cnf.GeolocationUrl)
	assert.Equal(t, 5*time.Second, cnf.GeolocationTimeout)
	assert.Equal(t, time.Second, cnf.PollInterval)
	assert.Equal(t, "info", cnf.LogLevel)
	assert.Empty(t, cnf.MetricsAddr)
	assert.False(t, cnf.TelegramEnabled())
	assert.False(t, cnf.MQTTEnabled())
	assert.Equal(t, "sunlight-watch", cnf.MQTTClientID)
	assert.Equal(t, "sunlight", cnf.MQTTTopicPrefix)
}

func TestNewConf_CustomEnv(t *testing.T) {
	t.Setenv("LATITUDE", "43.649329")
	t.Setenv("LONGITUDE", "41.426829")
	t.Setenv("HEIGHT", "2070")
	t.Setenv("USE_GEOLOCATION", "true")
	t.Setenv("POLL_INTERVAL", "1m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("METRICS_ADDR", ":9100")
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200")
	t.Setenv("MQTT_BROKER", "tcp://localhost:1883")

	cnf, err := NewConf()
	require.NoError(t, err)

	require.NotNil(t, cnf.Latitude)
	require.NotNil(t, cnf.Longitude)
	assert.InDelta(t, 43.649329, *cnf.Latitude, 1e-9)
	assert.InDelta(t, 41.426829, *cnf.Longitude, 1e-9)
	assert.InDelta(t, 2070.0, cnf.Height, 1e-9)
	assert.True(t, cnf.UseGeolocation)
	assert.Equal(t, time.Minute, cnf.PollInterval)
	assert.Equal(t, "debug", cnf.LogLevel)
	assert.Equal(t, ":9100", cnf.MetricsAddr)
	assert.True(t, cnf.TelegramEnabled())
	assert.True(t, cnf.MQTTEnabled())
}

func TestNewConf_InvalidLatitude(t *testing.T) {
	t.Setenv("LATITUDE", "north")
	_, err := NewConf()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Latitude")
}

func TestNewConf_InvalidPollInterval(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "often")
	_, err := NewConf()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PollInterval")
}

func TestNewConf_TelegramNeedsBoth(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	_, err := NewConf()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_CHAT_ID")
}
