package health

import (
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthMongo "github.com/hellofresh/health-go/v5/checks/mongo"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

const (
	componentName    = "catalog-cart-service"
	componentVersion = "1.0.0"
)

// Checks returns the health checks for the backends cfg enables: the configured
// store and, unless disabled, redis.
func Checks(cfg *config.Config) []health.Config {
	var checks []health.Config

	switch cfg.Database.Driver {
	case config.DriverMongo:
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: healthMongo.New(healthMongo.Config{
				DSN:               cfg.Database.MongoURI,
				TimeoutConnect:    2 * time.Second,
				TimeoutDisconnect: time.Second,
				TimeoutPing:       time.Second,
			}),
		})
	case config.DriverPostgres:
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		})
	}

	if !cfg.RedisConnect.Disabled {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		})
	}

	return checks
}

func NewHealthHandler(cfg *config.Config) (*health.Health, error) {
	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    componentName,
			Version: componentVersion,
		}),
		health.WithSystemInfo(),
		health.WithChecks(Checks(cfg)...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
