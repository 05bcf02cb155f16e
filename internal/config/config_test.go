package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Load default config when no config file is present", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		assert.NoError(t, err)
		assert.NotNil(t, cfg)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)

		assert.Equal(t, "info", cfg.Logger.Level)
		assert.Equal(t, "json", cfg.Logger.Encoding)

		assert.Equal(t, 9090, cfg.Metrics.Port)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)

		assert.Equal(t, "bank-events", cfg.RabbitMQ.ExchangeName)
		assert.Equal(t, 5672, cfg.RabbitMQ.Port)

		assert.Equal(t, "http://localhost:8090", cfg.Clients.Loans.BaseURL)
		assert.Equal(t, 2*time.Second, cfg.Clients.Loans.Timeout)
		assert.Equal(t, uint32(5), cfg.Clients.Breaker.ConsecutiveFailures)
		assert.Equal(t, 30*time.Second, cfg.Clients.Breaker.Timeout)

		assert.Equal(t, "*/10 * * * *", cfg.Batch.CommunicationResendSchedule)
	})
}
