package radio

import (
	"log/slog"
	"time"

	"i4.energy/across/gsmradio/modem"
	"i4.energy/across/gsmradio/sms"
)

type Config struct {
	Modem     modem.Config
	Messaging sms.Config
	// StartupTimeout bounds the AT handshake in New.
	StartupTimeout time.Duration
	// QueryTimeout bounds Client queries that have no deadline of their own.
	QueryTimeout time.Duration
	Logger       *slog.Logger
}

func (c *Config) setDefaults() {
	// The worker must give up on a command no later than the manager gives
	// up waiting for its reply.
	reply := c.Messaging.ReplyTimeout
	if reply == 0 {
		reply = sms.DefaultReplyTimeout
	}
	if c.Modem.ResponseTimeout == 0 || c.Modem.ResponseTimeout > reply {
		c.Modem.ResponseTimeout = reply
	}
	if c.StartupTimeout == 0 {
		c.StartupTimeout = 5 * time.Second
	}
	if c.QueryTimeout == 0 {
		c.QueryTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
}

func (c *Config) validate() error {
	if c.Modem.Dialer == nil {
		return modem.ErrNoDialer
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

func (b *ConfigBuilder) WithModem(c modem.Config) *ConfigBuilder {
	b.config.Modem = c
	return b
}

func (b *ConfigBuilder) WithMessaging(c sms.Config) *ConfigBuilder {
	b.config.Messaging = c
	return b
}

func (b *ConfigBuilder) WithStartupTimeout(d time.Duration) *ConfigBuilder {
	b.config.StartupTimeout = d
	return b
}

func (b *ConfigBuilder) WithQueryTimeout(d time.Duration) *ConfigBuilder {
	b.config.QueryTimeout = d
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
