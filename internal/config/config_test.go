package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	base := Config{
		Port:            "3000",
		Env:             "development",
		SessionTTLHours: 720,
		PixProvider:     "simulado",
	}

	t.Run("valid development config", func(t *testing.T) {
		cfg := base
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := base
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive session TTL", func(t *testing.T) {
		cfg := base
		cfg.SessionTTLHours = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown pix provider", func(t *testing.T) {
		cfg := base
		cfg.PixProvider = "pagseguro"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production requires strong db password", func(t *testing.T) {
		cfg := base
		cfg.Env = "production"
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())

		cfg.DBPassword = "s0me-l0ng-random-secret"
		assert.NoError(t, cfg.Validate())
	})
}

func TestSessionTTL(t *testing.T) {
	cfg := Config{SessionTTLHours: 48}
	assert.Equal(t, 48.0, cfg.SessionTTL().Hours())
}
