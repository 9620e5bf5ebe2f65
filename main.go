package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/storyworld/storyworld/config"
	"github.com/storyworld/storyworld/log"
	"github.com/storyworld/storyworld/server"
	"github.com/storyworld/storyworld/storage"
	"github.com/storyworld/storyworld/store"
	"github.com/storyworld/storyworld/store/fs"
	"github.com/storyworld/storyworld/store/mysql"
	"github.com/storyworld/storyworld/worker"
	"go.uber.org/zap"
)

const (
	greetingBanner = `
███████ ████████  ██████  ██████  ██    ██     ██     ██  ██████  ██████  ██      ██████
██         ██    ██    ██ ██   ██  ██  ██      ██     ██ ██    ██ ██   ██ ██      ██   ██
███████    ██    ██    ██ ██████    ████       ██  █  ██ ██    ██ ██████  ██      ██   ██
     ██    ██    ██    ██ ██   ██    ██        ██ ███ ██ ██    ██ ██   ██ ██      ██   ██
███████    ██     ██████  ██   ██    ██         ███ ███   ██████  ██   ██ ███████ ██████
`
	shutdownTimeout = 30 * time.Second
)

var (
	configFile string

	rootCmd = &cobra.Command{
		Use:   "storyworld",
		Short: "Kid's Story World is a children's storybook catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(),
				syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
			defer stop()

			if configFile != "" {
				if _, err := config.ParseFile(configFile); err != nil {
					return err
				}
			}
			// Reopen the logger now that the config is final
			log.Logger = log.NewLogger()
			defer log.Logger.Sync()

			backend, err := newBackend()
			if err != nil {
				log.Error("Error opening persistence backend", zap.Error(err))
				return err
			}

			s := store.NewStore(backend)
			if err := s.Load(); err != nil {
				log.Error("Error loading collections", zap.Error(err))
				return err
			}

			// A single writer serializes every snapshot save.
			pool := worker.NewPersistPool(backend, 1)
			s.SetPersister(pool)

			localStorage, err := storage.NewLocalStorage()
			if err != nil {
				log.Error("Error preparing upload storage", zap.Error(err))
				return err
			}

			fmt.Print(greetingBanner)
			srv, err := server.StartServer(ctx, s, localStorage)
			if err != nil {
				log.Error("Error starting server", zap.Error(err))
				return err
			}
			log.Info("Server started",
				zap.String("host", config.Opts.Host),
				zap.Int("port", config.Opts.Port),
				zap.String("driver", config.Opts.Driver))

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("Forced server shutdown", zap.Error(err))
			}
			// Drain queued snapshots before closing the backend.
			pool.Close()
			if err := s.Close(); err != nil {
				log.Error("Error closing store", zap.Error(err))
			}
			log.Info("Server stopped")
			return nil
		},
	}
)

func newBackend() (store.Backend, error) {
	if config.Opts.Driver == "mysql" {
		return mysql.NewAdapter(config.Opts.MySQLDSN)
	}
	return fs.NewAdapter(config.Opts.Data)
}

func init() {
	opts, err := config.GetConfig()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (TOML)")
	rootCmd.PersistentFlags().StringVar(&opts.Host, "host", opts.Host, "host to listen on")
	rootCmd.PersistentFlags().IntVar(&opts.Port, "port", opts.Port, "port to listen on")
	rootCmd.PersistentFlags().StringVar(&opts.Data, "data", opts.Data, "data directory")
	rootCmd.PersistentFlags().StringVar(&opts.Driver, "driver", opts.Driver, "persistence driver: file or mysql")
	rootCmd.PersistentFlags().StringVar(&opts.MySQLDSN, "mysql-dsn", opts.MySQLDSN, "mysql connection string")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
