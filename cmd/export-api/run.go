package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apiserver "github.com/apatilgtn/Kairos-isdp-sub001/internal/api_server"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/config"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/store"
	"github.com/apatilgtn/Kairos-isdp-sub001/pkg/log"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the export api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
		defer func() { _ = logger.Sync() }()
		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Info("Starting export API service")
		defer zap.S().Info("Export API service stopped")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalf("initializing data store: %v", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if err := s.InitialMigration(); err != nil {
			zap.S().Fatalf("running initial migration: %v", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		listener, err := newListener(cfg.Service.Address)
		if err != nil {
			zap.S().Fatalf("creating listener: %s", err)
		}

		server := apiserver.New(cfg, s, listener)
		if err := server.Run(ctx); err != nil {
			zap.S().Fatalf("Error running server: %s", err)
		}

		return nil
	},
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
