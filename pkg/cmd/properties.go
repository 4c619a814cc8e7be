package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/homespark/campaigner/pkg/properties"
)

const propertyCacheTTL = 5 * time.Minute

// NewPropertySource builds the listing source for campaign resolution. An
// empty listing API URL yields an in-memory source, useful for local
// development. A Redis URL wraps the source with a read-through cache.
func NewPropertySource(listingAPIURL, redisURL string, logger *slog.Logger) properties.Source {
	var source properties.Source
	if listingAPIURL == "" {
		source = properties.NewMemorySource()
	} else {
		source = properties.NewHTTPSource(listingAPIURL)
	}

	if redisURL == "" {
		return source
	}

	client, err := properties.NewRedisClient(redisURL)
	if err != nil {
		panic(fmt.Errorf("failed to create Redis client: %w", err))
	}

	return properties.NewCachedSource(source, client, propertyCacheTTL, logger)
}
