package config

import (
	"encoding/json"
	"os"

	"github.com/sozarusac/callaudio/internal/flagx"
	"github.com/sozarusac/callaudio/internal/profile"
)

// jsonConfig mirrors the JSON configuration file. Server entries replace
// the default fleet entirely when present.
type jsonConfig struct {
	BaseURL      string                  `json:"base_url"`
	ListPageSize int                     `json:"list_page_size"`
	Servers      []profile.ServerProfile `json:"servers"`
}

// parseJSON loads configuration values from an optional JSON file into
// the provided Config. The file path comes from the -c/-config flags; if
// neither is set, nothing is loaded. An unreadable or malformed file is
// a startup failure and panics.
func parseJSON(config *Config) {
	path := flagx.JSONConfigFlag()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.BaseURL != "" {
		config.BaseURL = c.BaseURL
	}
	if c.ListPageSize > 0 {
		config.ListPageSize = c.ListPageSize
	}
	if len(c.Servers) > 0 {
		config.Servers = c.Servers
	}
}
