package config

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config is the full runtime configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Content ContentConfig `koanf:"content"`
	Contact ContactConfig `koanf:"contact"`
	Theme   ThemeConfig   `koanf:"theme"`
}

type ServerConfig struct {
	Port   int    `koanf:"port"`
	Mode   string `koanf:"mode"`   // gin mode: debug, release or test
	Images string `koanf:"images"` // directory served under /images; empty disables it
}

type ContentConfig struct {
	Path string `koanf:"path"` // YAML portfolio; empty uses the built-in one
}

type ContactConfig struct {
	Email string `koanf:"email"` // recipient; empty uses the profile email
}

type ThemeConfig struct {
	Default string `koanf:"default"`
}
