// Command checkaid runs the CheckAI chess server and its archive
// maintenance tools.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/checkai-srv/checkai/api"
	"github.com/checkai-srv/checkai/archive"
	"github.com/checkai-srv/checkai/config"
	"github.com/checkai-srv/checkai/eventbus"
	"github.com/checkai-srv/checkai/logging"
	"github.com/checkai-srv/checkai/session"
	"github.com/checkai-srv/checkai/ws"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "checkaid",
		Short: "CheckAI chess server",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml")

	root.AddCommand(serveCmd(), archiveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfigOrExit() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return cfg
}

func openArchiveStore(cfg config.Config) (archive.Store, error) {
	switch cfg.Archive.Backend {
	case "memory":
		return archive.NewMemoryStore(), nil
	default:
		return archive.OpenBadgerStore(cfg.Archive.Dir)
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP and WebSocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfigOrExit()
			if addr != "" {
				cfg.Server.Addr = addr
			}

			logger, err := logging.New(cfg.Logging.Level)
			if err != nil {
				return err
			}
			defer logger.Sync()

			store, err := openArchiveStore(cfg)
			if err != nil {
				return fmt.Errorf("open archive store: %w", err)
			}
			defer store.Close()

			bus := eventbus.New(cfg.EventBus.QueueCapacity)
			mgr := session.New(bus, store, logger)

			mux := http.NewServeMux()
			mux.Handle("/api/", api.NewRouter(mgr, logger))
			mux.Handle("/ws", ws.New(mgr, bus, logger))

			logger.Info("checkaid listening", zap.String("addr", cfg.Server.Addr))
			return http.ListenAndServe(cfg.Server.Addr, mux)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "override server.addr from the config file")
	return cmd
}

func archiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "inspect the archive store",
	}
	cmd.AddCommand(archiveListCmd(), archiveReplayCmd())
	return cmd
}

func archiveListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list every archived game",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfigOrExit()
			store, err := openArchiveStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			summaries, err := store.List()
			if err != nil {
				return err
			}
			for _, s := range summaries {
				result := "in progress"
				if s.Result != nil {
					result = *s.Result
				}
				fmt.Printf("%s  %s  %s\n", s.GameID, s.ArchivedAt.Format("2006-01-02 15:04:05"), result)
			}
			return nil
		},
	}
}

func archiveReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <game-id>",
		Short: "print the PGN of an archived game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfigOrExit()
			store, err := openArchiveStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.Replay(args[0])
			if err != nil {
				return err
			}
			fmt.Println(rec.PGN)
			return nil
		},
	}
}
