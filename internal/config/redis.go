package config

import (
	"context"
	"crypto/tls"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const defaultRedisAddr = "localhost:6379"

// RedisOptions builds client options from the environment:
//
//	REDIS_ADDR      host:port, wins over REDIS_HOST/REDIS_PORT
//	REDIS_HOST      with REDIS_PORT, used when REDIS_ADDR is unset
//	REDIS_PORT
//	REDIS_PASSWORD
//	REDIS_DB        database number, default 0
//	REDIS_TLS       "true" or "1" enables TLS
func RedisOptions() *redis.Options {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")
		if host != "" && port != "" {
			addr = host + ":" + port
		}
	}
	if addr == "" {
		addr = defaultRedisAddr
	}

	opts := &redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       envInt("REDIS_DB", 0),
	}
	if envBool("REDIS_TLS", false) {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return opts
}

// NewRedisClient connects with RedisOptions and pings the server.  It
// returns nil when Redis cannot be reached; callers then keep sessions in
// memory and skip login throttling.
func NewRedisClient() *redis.Client {
	opts := RedisOptions()
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).WithField("addr", opts.Addr).Warn("redis ping failed")
		_ = client.Close()
		return nil
	}
	return client
}
