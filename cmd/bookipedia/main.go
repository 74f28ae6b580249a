package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/azaliaz/bookipedia/internal/config"
	"github.com/azaliaz/bookipedia/internal/logger"
	"github.com/azaliaz/bookipedia/internal/server"
	"github.com/azaliaz/bookipedia/internal/storage"
)

func main() {
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatal(err)
	}
	log := logger.Get(cfg.Debug)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		<-c

		log.Debug().Msg("ctx cancel; catch os signal")
		cancel()
	}()

	log.Debug().Any("cfg", cfg).Send()

	var stor server.Storage
	if cfg.DBDsn != "" {
		stor, err = storage.NewPG(ctx, cfg.DBDsn)
		if err != nil {
			log.Error().Err(err).Msg("connecting to database failed")
			stor = nil
		}
	}
	if stor == nil {
		stor, err = storage.NewDB(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("opening embedded storage failed")
		}
	}

	serv := server.New(*cfg, stor)
	group, gCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return serv.Run(gCtx)
	})
	group.Go(func() error {
		<-gCtx.Done()
		return serv.ShutdownServer()
	})

	if err = group.Wait(); err != nil {
		log.Info().Str("stopping reason", err.Error()).Msg("server stopped")
		return
	}
	log.Info().Msg("server stopped")
}
