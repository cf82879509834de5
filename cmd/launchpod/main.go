package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/launchpod/launchpod/pkg/config"
	"github.com/launchpod/launchpod/pkg/db"
	"github.com/launchpod/launchpod/pkg/feeds"
	"github.com/launchpod/launchpod/pkg/server"
	"github.com/launchpod/launchpod/pkg/upload"
)

type Opts struct {
	ConfigPath string `long:"config" short:"c" default:"config.toml" env:"LAUNCHPOD_CONFIG_PATH"`
	Debug      bool   `long:"debug"`
	NoBanner   bool   `long:"no-banner"`
}

const banner = `
 _                           _                     _
| | __ _ _   _ _ __   ___| |__  _ __   ___   __| |
| |/ _' | | | | '_ \ / __| '_ \| '_ \ / _ \ / _' |
| | (_| | |_| | | | | (__| | | | |_) | (_) | (_| |
|_|\__,_|\__,_|_| |_|\___|_| |_| .__/ \___/ \__,_|
                               |_|
`

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: time.RFC3339,
		FullTimestamp:   true,
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)

	// Parse args
	opts := Opts{}
	_, err := flags.Parse(&opts)
	if err != nil {
		log.WithError(err).Fatal("failed to parse command line arguments")
	}

	if opts.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if !opts.NoBanner {
		log.Info(banner)
	}

	log.WithFields(log.Fields{
		"version": version,
		"commit":  commit,
		"date":    date,
	}).Info("running launchpod")

	// Load TOML file
	log.Debugf("loading configuration %q", opts.ConfigPath)
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration file")
	}

	storage, err := db.NewBadger(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}

	svc := feeds.NewFeedService(
		feeds.WithStorage(storage),
		feeds.WithDefaults(cfg.Defaults()),
		feeds.WithBaseURL(cfg.Server.BaseURL),
	)

	var handler http.Handler
	if cfg.Storage.BucketURL != "" {
		issuer, err := upload.NewIssuer(cfg.Storage)
		if err != nil {
			log.WithError(err).Fatal("failed to create upload issuer")
		}

		handler = server.MakeHandlers(svc, issuer, cfg.Server.SessionSecret)
	} else {
		log.Warn("no bucket URL configured, submissions must carry an audio link")
		handler = server.MakeHandlers(svc, nil, cfg.Server.SessionSecret)
	}

	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}

	bindAddress := cfg.Server.BindAddress
	if bindAddress == "*" {
		bindAddress = ""
	}

	srv := http.Server{
		Addr:    fmt.Sprintf("%s:%d", bindAddress, port),
		Handler: handler,
	}

	group.Go(func() error {
		log.Infof("running listener at %s", srv.Addr)
		return srv.ListenAndServe()
	})

	group.Go(func() error {
		// Shutdown web server
		defer func() {
			log.Info("shutting down web server")
			if err := srv.Shutdown(ctx); err != nil {
				log.WithError(err).Error("server shutdown failed")
			}

			if err := storage.Close(); err != nil {
				log.WithError(err).Error("failed to close database")
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-stop:
				cancel()
				return nil
			}
		}
	})

	if err := group.Wait(); err != nil && (err != context.Canceled && err != http.ErrServerClosed) {
		log.WithError(err).Error("wait error")
	}

	log.Info("gracefully stopped")
}
