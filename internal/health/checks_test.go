package health_test

import (
	"testing"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/config"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkNames(cfg *config.Config) []string {
	var names []string
	for _, check := range health.Checks(cfg) {
		names = append(names, check.Name)
	}
	return names
}

func TestChecks(t *testing.T) {
	t.Run("Success - Mongo With Redis", func(t *testing.T) {
		cfg := &config.Config{
			Database:     config.Database{Driver: config.DriverMongo, MongoURI: "mongodb://localhost:27017"},
			RedisConnect: config.RedisConnect{Host: "localhost", Port: "6379"},
		}

		assert.Equal(t, []string{"database", "redis"}, checkNames(cfg))
	})

	t.Run("Success - Postgres Without Redis", func(t *testing.T) {
		cfg := &config.Config{
			Database:     config.Database{Driver: config.DriverPostgres, User: "app", Name: "catalog"},
			RedisConnect: config.RedisConnect{Disabled: true},
		}

		assert.Equal(t, []string{"database"}, checkNames(cfg))
	})
}

func TestNewHealthHandler(t *testing.T) {
	cfg := &config.Config{
		Database:     config.Database{Driver: config.DriverMongo, MongoURI: "mongodb://localhost:27017"},
		RedisConnect: config.RedisConnect{Disabled: true},
	}

	h, err := health.NewHealthHandler(cfg)

	require.NoError(t, err)
	assert.NotNil(t, h)
}
