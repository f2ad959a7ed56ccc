package cmd

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/flowdeck/flowdeck/pkg/auth"
)

// NewAuthClient builds the session client for the external auth provider.
// When a redis URL is given, session lookups are cached there.
func NewAuthClient(logger *slog.Logger, authURL, redisURL string) auth.Client {
	client := auth.NewHTTPClient(authURL)

	if redisURL == "" {
		return client
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		panic(fmt.Errorf("invalid redis URL: %w", err))
	}

	return auth.NewCachedClient(client, redis.NewClient(opts), logger)
}
