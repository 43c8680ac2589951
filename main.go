package main

import (
	"context"
	"flag"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdg-garage/uwapi-eve-david/agent"
	"github.com/gdg-garage/uwapi-eve-david/config"
	"github.com/gdg-garage/uwapi-eve-david/engine"
	"github.com/gdg-garage/uwapi-eve-david/ipc"
)

func main() {
	socketPath := flag.String("socket", "/tmp/eve-david.sock", "unix socket the host adapter connects to")
	configPath := flag.String("config", "config.json", "strategy config file (.json, .yaml or .toml)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	slog.Info("starting eve-david")

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Warn("using default config", "path", *configPath, "error", err)
		cfg = config.Default()
	}

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(*socketPath); err != nil {
		slog.Error("failed to clean up socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", *socketPath)
	if err != nil {
		slog.Error("failed to listen on socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}
	defer listener.Close()
	defer os.Remove(*socketPath)

	slog.Info("listening on domain socket", "path", *socketPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go handleConn(ctx, conn, *configPath, cfg)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
}

// handleConn gives every host connection its own engine and config reloader.
func handleConn(ctx context.Context, conn net.Conn, configPath string, cfg *config.Config) {
	eng, err := engine.New(cfg, config.NewReloader(configPath, cfg))
	if err != nil {
		slog.Error("failed to create engine", "error", err)
		conn.Close()
		return
	}
	c := ipc.NewConnection(conn, nil)
	a := agent.New(c, eng)
	c.RegisterHandler(ipc.TypeHello, a.HandleHello)
	c.RegisterHandler(ipc.TypeSnapshot, a.HandleSnapshot)
	if err := c.ReadLoop(ctx); err != nil {
		slog.Warn("session closed with error", "player", c.Player, "error", err)
	}
}
