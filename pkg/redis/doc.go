// Package redis provides helpers for connecting to the Redis server that
// backs the queue store.
//
// The package wraps the go-redis client and adds:
//
//   - A `Connect` helper that retries the initial connection using the
//     supplied configuration, so workers survive a Redis that is still
//     starting up.
//   - A health-check helper to integrate Redis into liveness / readiness
//     probes.
//
// Configuration is described by the `Config` struct whose fields are
// populated from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	cfg := redis.Config{
//	    ConnectionURL:  "redis://localhost:6379/0",
//	    RetryAttempts:  3,
//	    RetryInterval:  5 * time.Second,
//	    ConnectTimeout: 30 * time.Second,
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // terminate: the queue cannot run without its store
//	}
//	defer client.Close()
//
// Register a health-check in your observability stack:
//
//	checker := redis.Healthcheck(client)
//	if err := checker(ctx); err != nil {
//	    // redis is not healthy
//	}
//
// # Errors
//
// The package defines sentinel errors (e.g. ErrRedisNotReady) that wrap the
// underlying go-redis errors using errors.Join, so callers can compare with
// errors.Is and still unwrap the cause.
package redis
