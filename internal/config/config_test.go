package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "https://apisozarusac.com/BackendArchivos", cfg.BaseURL)
	assert.Equal(t, 500, cfg.ListPageSize)
	require.Len(t, cfg.Servers, 6)

	ids := make([]string, 0, len(cfg.Servers))
	for _, s := range cfg.Servers {
		ids = append(ids, s.ID)
		assert.Equal(t, 22, s.Port)
		assert.NotEmpty(t, s.Endpoint, "server %s", s.ID)
	}
	assert.ElementsMatch(t, []string{"154", "23", "31", "126", "14", "157"}, ids)
}

func TestParseEnvFillsMissingCredentials(t *testing.T) {
	t.Setenv("CALLAUDIO_SFTP_USER", "monitor")
	t.Setenv("CALLAUDIO_SFTP_PASSWORD", "sekret")
	t.Setenv("CALLAUDIO_BASE_URL", "http://localhost:8080")

	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.Servers[0].User = "explicit"

	parseEnv(cfg)

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "explicit", cfg.Servers[0].User, "explicit credentials kept")
	assert.Equal(t, "sekret", cfg.Servers[0].Password)
	assert.Equal(t, "monitor", cfg.Servers[1].User)
	assert.Equal(t, "sekret", cfg.Servers[1].Password)
}
