// Package config handles configuration for the resolver, including
// defaults, JSON overlay, environment overlay, and command-line flags.
package config

import "github.com/sozarusac/callaudio/internal/profile"

// Config holds runtime settings for the audio resolver.
//
// Fields:
//   - BaseURL: public base URL of the file-browsing API, used when the
//     resolver composes download URLs.
//   - ListPageSize: page size used for the internal directory listings
//     issued while searching.
//   - Servers: one connection profile per logical server id. Credentials
//     normally arrive via the environment overlay, not this file.
type Config struct {
	BaseURL      string
	ListPageSize int
	Servers      []profile.ServerProfile
}

// LoadDefaults populates Config with the known server fleet. Hosts and
// credentials are intentionally left empty; they must be supplied by the
// JSON file or the environment.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://apisozarusac.com/BackendArchivos"
	c.ListPageSize = 500

	c.Servers = c.Servers[:0]
	for _, id := range []string{"154", "23", "31", "126", "14", "157"} {
		c.Servers = append(c.Servers, profile.ServerProfile{
			ID:       id,
			Port:     22,
			Endpoint: profile.DefaultEndpoints[id],
		})
	}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment, and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
