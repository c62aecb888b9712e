package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/glucolink/facectl/internal/config"
	"github.com/glucolink/facectl/internal/display"
	"github.com/glucolink/facectl/internal/link"
	"github.com/glucolink/facectl/internal/logging"
	"github.com/glucolink/facectl/internal/protocol"
	"github.com/glucolink/facectl/internal/server"
)

func main() {
	configPath := flag.String("config", "facectl.toml", "path to facectl TOML config")
	flag.Parse()

	logging.ConfigureRuntime()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "facectl: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadFaceConfig(configPath)
	if err != nil {
		return err
	}
	rev, err := protocol.ParseRevision(cfg.Revision)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	state := display.NewState(rev)
	announcement := protocol.DefaultAnnouncement()
	announcement.GraphHours = uint8(cfg.GraphHours)

	session, err := link.NewSession(link.SessionConfig{
		Node:         cfg.Name,
		PhoneURL:     cfg.PhoneURL,
		Announcement: announcement,
	}, state)
	if err != nil {
		return err
	}

	srv := server.New(cfg.Name, cfg.StatusAddr, cfg.CorsOrigins, session)
	log.Info().
		Str("node", cfg.Name).
		Str("phone_url", cfg.PhoneURL).
		Str("status_addr", cfg.StatusAddr).
		Str("revision", rev.String()).
		Msg("facectl starting")

	sessionErr := make(chan error, 1)
	serverErr := make(chan error, 1)
	go func() { sessionErr <- session.Run(ctx) }()
	go func() { serverErr <- srv.Serve() }()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("node", cfg.Name).Msg("facectl shutdown")
			return nil
		case err := <-sessionErr:
			return err
		case err := <-serverErr:
			return err
		case <-ticker.C:
			snap := session.Snapshot(time.Now())
			log.Info().
				Str("node", cfg.Name).
				Bool("connected", session.Connected()).
				Str("bg", snap.BG).
				Str("time_ago", snap.TimeAgo).
				Int("graph_points", snap.Graph.Count).
				Msg("facectl heartbeat")
		}
	}
}
