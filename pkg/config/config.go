package config

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/launchpod/launchpod/pkg/db"
	"github.com/launchpod/launchpod/pkg/feed"
	"github.com/launchpod/launchpod/pkg/upload"
)

type Server struct {
	// BaseURL is used for the default channel link and generated
	// lookup links.
	BaseURL string `toml:"base_url"`
	// Port is a server port to listen to
	Port int `toml:"port"`
	// Bind a specific IP addresses for server
	// "*": bind all IP addresses which is default option
	// localhost or 127.0.0.1  bind a single IPv4 address
	BindAddress string `toml:"bind_address"`
	// SessionSecret authenticates login session cookies.
	SessionSecret string `toml:"session_secret"`
}

type Feed struct {
	// Title is the channel title of every generated feed.
	Title string `toml:"title"`
	// Language is an optional fallback language.
	Language string `toml:"language"`
}

type Config struct {
	// Server is the web server configuration
	Server Server `toml:"server"`
	// Database configuration
	Database db.Config `toml:"database"`
	// Feed holds channel defaults for generated feeds
	Feed Feed `toml:"feed"`
	// Storage configures the audio blob upload capability
	Storage upload.Config `toml:"storage"`
}

// LoadConfig loads TOML configuration from a file path
func LoadConfig(path string) (*Config, error) {
	config := Config{}
	_, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config file")
	}

	config.applyDefaults(path)

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Defaults returns the channel defaults for the feed builder.
func (c *Config) Defaults() feed.Defaults {
	return feed.Defaults{
		Title:    c.Feed.Title,
		Link:     c.Server.BaseURL,
		Language: c.Feed.Language,
	}
}

// validate runs after applyDefaults, so only settings without a
// usable default are checked here.
func (c *Config) validate() error {
	var result *multierror.Error

	if c.Storage.BucketURL != "" && c.Storage.Secret == "" {
		result = multierror.Append(result, errors.New("storage secret is required when bucket URL is set"))
	}

	return result.ErrorOrNil()
}

func (c *Config) applyDefaults(configPath string) {
	if c.Server.BaseURL == "" {
		if c.Server.Port != 0 && c.Server.Port != 80 {
			c.Server.BaseURL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
		} else {
			c.Server.BaseURL = "http://localhost"
		}
	}

	if c.Database.Dir == "" {
		c.Database.Dir = filepath.Join(filepath.Dir(configPath), "db")
	}

	if c.Feed.Title == "" {
		c.Feed.Title = feed.DefaultTitle
	}

	if c.Server.SessionSecret == "" {
		c.Server.SessionSecret = "launchpod-dev-secret"
	}
}
