// internal/config/constants.go
package config

// AppName is used for the default config directory name.
const AppName = "vimb"

// DefaultConfigFileName is the config file looked up in the user config dir.
const DefaultConfigFileName = "config.toml"

// Default values for settings.
const (
	DefaultTimeoutLen = 1000 // ambiguity timeout in milliseconds
	DefaultHomePage   = "about:blank"
)
