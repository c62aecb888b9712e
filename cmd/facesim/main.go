package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/glucolink/facectl/internal/config"
	"github.com/glucolink/facectl/internal/logging"
	"github.com/glucolink/facectl/internal/protocol"
	"github.com/glucolink/facectl/internal/simulator"
)

func main() {
	configPath := flag.String("config", "facesim.toml", "path to facesim TOML config")
	flag.Parse()

	logging.ConfigureRuntime()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "facesim: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadSimConfig(configPath)
	if err != nil {
		return err
	}
	rev, err := protocol.ParseRevision(cfg.Revision)
	if err != nil {
		return err
	}

	sim := &simulator.Server{
		Generator: simulator.NewGenerator(rev),
		Interval:  time.Duration(cfg.IntervalMS) * time.Millisecond,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/link", gin.WrapF(sim.HandleLink))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "sim": cfg.Name})
	})

	log.Info().
		Str("sim", cfg.Name).
		Str("addr", cfg.Addr).
		Str("revision", rev.String()).
		Int64("interval_ms", cfg.IntervalMS).
		Msg("facesim serving synthetic telemetry")
	return r.Run(cfg.Addr)
}
