package config

import (
	env "github.com/Netflix/go-env"
)

// envConfig collects the environment overlay. The fleet shares one SFTP
// account, so a single user/password pair fills in any server profile
// that did not get explicit credentials from the JSON file.
type envConfig struct {
	BaseURL      string `env:"CALLAUDIO_BASE_URL"`
	SFTPUser     string `env:"CALLAUDIO_SFTP_USER"`
	SFTPPassword string `env:"CALLAUDIO_SFTP_PASSWORD"`
}

func parseEnv(config *Config) {
	c := envConfig{}
	if _, err := env.UnmarshalFromEnviron(&c); err != nil {
		panic(err)
	}

	if c.BaseURL != "" {
		config.BaseURL = c.BaseURL
	}

	for i := range config.Servers {
		if config.Servers[i].User == "" {
			config.Servers[i].User = c.SFTPUser
		}
		if config.Servers[i].Password == "" {
			config.Servers[i].Password = c.SFTPPassword
		}
	}
}
