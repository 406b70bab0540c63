package sieve

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/G-Node/sieve/sieve/field"
)

// Config containing all the configuration values for a service.
type Config struct {
	// Port the web server listens on.
	Port uint16 `json:"port"`
	// Database driver ("sqlite3" or "postgres") and data source.
	DBDriver string `json:"db_driver"`
	DBPath   string `json:"db_path"`
	// Length of the save queue.
	QueueSize int `json:"queue_size"`
	// Requests per second and burst allowed per client.  Zero disables rate
	// limiting.
	RateLimit float64 `json:"rate_limit"`
	RateBurst int     `json:"rate_burst"`
	// GIN server that registered users are also created on.  Leave empty to
	// keep accounts local.
	GINServer string `json:"gin_server"`
	GINToken  string `json:"gin_token"`
	// Ask the GIN server to send new users a notification email.
	GINNotify bool `json:"gin_notify"`
	// Digest algorithm for stored passwords.
	PasswordAlgorithm string `json:"password_algorithm"`
	// Roles offered on the registration form.
	Roles []string `json:"roles"`
}

// DefaultConfig returns the configuration used for unset values.
func DefaultConfig() Config {
	return Config{
		Port:              3000,
		DBDriver:          "sqlite3",
		DBPath:            "./sieve.db",
		QueueSize:         100,
		RateBurst:         4,
		PasswordAlgorithm: field.DefaultAlgorithm,
	}
}

// withDefaults fills unset values from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Port == 0 {
		c.Port = def.Port
	}
	if c.DBDriver == "" {
		c.DBDriver = def.DBDriver
	}
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.QueueSize <= 0 {
		c.QueueSize = def.QueueSize
	}
	if c.RateBurst <= 0 {
		c.RateBurst = def.RateBurst
	}
	if c.PasswordAlgorithm == "" {
		c.PasswordAlgorithm = def.PasswordAlgorithm
	}
	return c
}

// Validate checks the configuration for values the service cannot run with.
func (c Config) Validate() error {
	if _, err := field.Digest(c.PasswordAlgorithm); err != nil {
		return err
	}
	if c.GINServer != "" && c.GINToken == "" {
		return fmt.Errorf("gin_server %q configured without gin_token", c.GINServer)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("negative rate_limit %v", c.RateLimit)
	}
	return nil
}

// LoadConfig reads a JSON configuration file.  Values missing from the file
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return config, nil
}
