package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("STATE_GRACE_PERIOD", "")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 5*time.Second, cfg.GracePeriod)
}

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("STATE_GRACE_PERIOD", "250ms")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 250*time.Millisecond, cfg.GracePeriod)
}

func TestNew_RejectsUnknownLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	t.Setenv("STATE_GRACE_PERIOD", "")

	_, err := New()
	assert.Error(t, err)
}

func TestNew_RejectsMalformedGracePeriod(t *testing.T) {
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("STATE_GRACE_PERIOD", "soon")

	_, err := New()
	assert.Error(t, err)
}
