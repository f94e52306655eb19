package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// BindAddress is the address the server listens on (e.g. "0.0.0.0:3000")
	BindAddress string `yaml:"bind_address"`
	// SerialPort is the path to the modem's serial port (e.g. "/dev/ttyAMA0")
	SerialPort string `yaml:"serial_port"`
	// BaudRate is the baud rate for serial communication with the modem (e.g. 115200)
	BaudRate int `yaml:"baud_rate"`
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string `yaml:"log_level"`
	// ReadTimeout is the serial read timeout. A quiet read ends a response.
	ReadTimeout time.Duration `yaml:"read_timeout"`
	// PollInterval is the time between two message listings
	PollInterval time.Duration `yaml:"poll_interval"`
	// StartupTimeout bounds the initial AT handshake
	StartupTimeout time.Duration `yaml:"startup_timeout"`
}

// Level returns the slog level named by LogLevel. Unknown names log at
// info.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BindAddress = "0.0.0.0:3000"
		c.SerialPort = "/dev/ttyAMA0"
		c.BaudRate = 115200
		c.LogLevel = "info"
		c.ReadTimeout = time.Second
		c.PollInterval = 10 * time.Second
		c.StartupTimeout = 5 * time.Second
		return nil
	}
}

// WithFile loads configuration from a YAML file. Keys missing from the file
// keep their current value. An empty path is ignored.
func WithFile(path string) ConfigOption {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
		return nil
	}
}

func durationEnv(name string, dst *time.Duration) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = d
	return nil
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
			c.BindAddress = addr
		}

		if serial := os.Getenv("SERIAL_PORT"); serial != "" {
			c.SerialPort = serial
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.BaudRate = b
			}
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		if err := durationEnv("READ_TIMEOUT", &c.ReadTimeout); err != nil {
			return err
		}
		if err := durationEnv("POLL_INTERVAL", &c.PollInterval); err != nil {
			return err
		}
		return durationEnv("STARTUP_TIMEOUT", &c.StartupTimeout)
	}
}

// WithFlags loads configuration from command-line flags. Only flags set on
// the command line are applied; the first value that does not parse is
// returned as an error.
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		var err error
		fSet.Visit(func(f *flag.Flag) {
			if err != nil {
				return
			}
			v := f.Value.String()
			switch f.Name {
			case "bind-address":
				c.BindAddress = v
			case "serial-port":
				c.SerialPort = v
			case "baud-rate":
				c.BaudRate, err = strconv.Atoi(v)
			case "log-level":
				c.LogLevel = v
			case "read-timeout":
				c.ReadTimeout, err = time.ParseDuration(v)
			case "poll-interval":
				c.PollInterval, err = time.ParseDuration(v)
			case "startup-timeout":
				c.StartupTimeout, err = time.ParseDuration(v)
			}
			if err != nil {
				err = fmt.Errorf("flag -%s: %w", f.Name, err)
			}
		})
		return err
	}
}
