package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"i4.energy/across/gsmradio/modem"
	"i4.energy/across/gsmradio/radio"
	"i4.energy/across/gsmradio/sms"
)

func main() {
	configFile := flag.String("config", "", "Path to a YAML configuration file")
	flag.String("serial-port", "/dev/ttyAMA0", "Serial port to connect to the modem")
	flag.Int("baud-rate", 115200, "Baud rate for serial communication")
	flag.String("bind-address", "0.0.0.0:3000", "Bind address for the HTTP server")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Duration("read-timeout", time.Second, "Serial read timeout that ends a modem response")
	flag.Duration("poll-interval", 10*time.Second, "Interval between message listings")
	flag.Duration("startup-timeout", 5*time.Second, "Time the modem has to answer AT at startup")
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithFile(*configFile), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: config.Level()}))

	modemConfig, err := modem.NewConfigBuilder().
		WithReadTimeout(config.ReadTimeout).
		WithLogger(logger.With("component", "modem")).
		WithDialer(modem.SerialDialer{
			PortName: config.SerialPort,
			Mode:     modem.SerialMode(config.BaudRate),
		}).
		Build()
	if err != nil {
		logger.Error("Failed to create modem config", "error", err)
		os.Exit(1)
	}

	smsConfig, err := sms.NewConfigBuilder().
		WithPollInterval(config.PollInterval).
		WithLogger(logger.With("component", "sms")).
		Build()
	if err != nil {
		logger.Error("Failed to create messaging config", "error", err)
		os.Exit(1)
	}

	radioConfig, err := radio.NewConfigBuilder().
		WithModem(modemConfig).
		WithMessaging(smsConfig).
		WithStartupTimeout(config.StartupTimeout).
		WithLogger(logger.With("component", "radio")).
		Build()
	if err != nil {
		logger.Error("Failed to create radio config", "error", err)
		os.Exit(1)
	}

	r, err := radio.New(context.Background(), radioConfig)
	if err != nil {
		logger.Error("Failed to start radio", "error", err, "port", config.SerialPort)
		os.Exit(1)
	}

	logger.Info("Starting GSM radio", "port", config.SerialPort, "baud_rate", config.BaudRate)

	httpServer := &http.Server{
		Addr:    config.BindAddress,
		Handler: NewServer(logger.With("component", "server"), r.Client()),
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	if ok, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		logger.Warn("Failed to notify systemd", "error", err)
	} else if ok {
		logger.Debug("Notified systemd of readiness")
	}

	// Wait for interrupt signal
	sig := <-sigChan
	logger.Info("Received shutdown signal", "signal", sig)
	daemon.SdNotify(false, daemon.SdNotifyStopping)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Closing HTTP server")
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to gracefully shutdown server", "error", err)
	}

	logger.Info("Closing modem connection")
	if err := r.Close(); err != nil {
		logger.Error("Failed to close radio", "error", err)
		os.Exit(1)
	}
}
