// Package config loads the server's settings from a TOML file, with
// defaults applied for anything the file omits.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Server holds the HTTP/WebSocket transport settings.
type Server struct {
	Addr string `toml:"addr"`
}

// EventBus holds the pub/sub queue sizing (spec §4.4).
type EventBus struct {
	QueueCapacity int `toml:"queue_capacity"`
}

// Archive holds the archive-store selection and its on-disk location.
type Archive struct {
	Backend string `toml:"backend"` // "badger" or "memory"
	Dir     string `toml:"dir"`
}

// Logging holds the logger's minimum level.
type Logging struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// Config is the full server configuration.
type Config struct {
	Server   Server   `toml:"server"`
	EventBus EventBus `toml:"eventbus"`
	Archive  Archive  `toml:"archive"`
	Logging  Logging  `toml:"logging"`
}

// Default returns the configuration used when no file is given and when a
// file omits a section entirely.
func Default() Config {
	return Config{
		Server:   Server{Addr: ":8080"},
		EventBus: EventBus{QueueCapacity: 64},
		Archive:  Archive{Backend: "badger", Dir: "./checkai-archive"},
		Logging:  Logging{Level: "info"},
	}
}

// Load reads a TOML file at path and overlays it onto Default(). An
// empty path returns the defaults unchanged; any other path must exist
// and parse.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}
