package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:   8080,
			Mode:   "debug",
			Images: "./images",
		},
		Theme: ThemeConfig{
			Default: ThemeDark,
		},
	}
}
