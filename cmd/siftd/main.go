package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nikmy/sift/internal/api"
	"github.com/nikmy/sift/internal/users"
	"github.com/nikmy/sift/pkg/errors"
	"github.com/nikmy/sift/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := loadConfig()
	if err != nil {
		stdlog.Panic(errors.WrapFail(err, "load config"))
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		stdlog.Panic(errors.WrapFail(err, "init logger"))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGABRT)
	defer cancel()

	usersRepo, err := users.New(ctx, log, cfg.Mongo)
	if err != nil {
		log.Panic(errors.WrapFail(err, "init users repo"))
	}

	srv := api.NewServer(cfg.API, log, usersRepo)

	stopped := make(chan struct{})
	context.AfterFunc(ctx, func() {
		stdlog.Println("Graceful shutdown...")

		sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer scancel()

		err := srv.Shutdown(sctx)
		if err != nil {
			log.Error(errors.WrapFail(err, "shutdown server"))
		}

		close(stopped)
	})

	err = srv.Serve(ctx)
	if err != nil {
		log.Warn(errors.WrapFail(err, "serve"))
	}

	<-stopped
	stdlog.Println("Shutdown complete")
}
