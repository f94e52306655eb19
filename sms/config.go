package sms

import (
	"errors"
	"log/slog"
	"time"
)

// DefaultReplyTimeout applies when Config.ReplyTimeout is zero.
const DefaultReplyTimeout = 30 * time.Second

// Config controls the manager loop.
type Config struct {
	// PollInterval is the time between two message listings.
	PollInterval time.Duration
	// TickInterval is how often the loop services requests and checks for
	// replies.
	TickInterval time.Duration
	// ReplyTimeout abandons a listing or send the modem never answers.
	ReplyTimeout time.Duration
	Logger       *slog.Logger
}

func (c *Config) setDefaults() {
	if c.PollInterval == 0 {
		c.PollInterval = 10 * time.Second
	}
	if c.TickInterval == 0 {
		c.TickInterval = 10 * time.Millisecond
	}
	if c.ReplyTimeout == 0 {
		c.ReplyTimeout = DefaultReplyTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
}

func (c *Config) validate() error {
	if c.PollInterval < 0 || c.TickInterval < 0 || c.ReplyTimeout < 0 {
		return errors.New("intervals must not be negative")
	}
	return nil
}

// ConfigBuilder assembles a Config.
type ConfigBuilder struct {
	config Config
}

func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

func (b *ConfigBuilder) WithPollInterval(d time.Duration) *ConfigBuilder {
	b.config.PollInterval = d
	return b
}

func (b *ConfigBuilder) WithTickInterval(d time.Duration) *ConfigBuilder {
	b.config.TickInterval = d
	return b
}

func (b *ConfigBuilder) WithReplyTimeout(d time.Duration) *ConfigBuilder {
	b.config.ReplyTimeout = d
	return b
}

func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.Logger = l
	return b
}

// Build applies defaults and validates the configuration.
func (b *ConfigBuilder) Build() (Config, error) {
	c := b.config
	c.setDefaults()
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
