// Package config provides configuration management for the mrpack CLI.
package config

import "time"

// Default configuration values for mrpack.
const (
	// DefaultRegistryURL is the Modrinth API endpoint queried for
	// version and project records.
	DefaultRegistryURL = "https://api.modrinth.com/v2"

	// DefaultRegistryTimeout bounds each registry request.
	DefaultRegistryTimeout = 10 * time.Second

	// DefaultUserAgent identifies mrpack to the registry.
	DefaultUserAgent = "mrpack (github.com/jamesainslie/mrpack)"

	// DefaultCacheTTL is how long cached registry records stay valid.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultOutputFormat is the renderer used when none is selected.
	DefaultOutputFormat = "table"
)
