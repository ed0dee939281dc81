package main

import (
	"fmt"
	"os"

	"github.com/JUVOJustin/opencode-ddev-plugin/internal/config"
	"github.com/JUVOJustin/opencode-ddev-plugin/internal/ddev"
	"github.com/JUVOJustin/opencode-ddev-plugin/internal/logging"
	"github.com/JUVOJustin/opencode-ddev-plugin/internal/session"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "opencode-ddev",
		Short: "Run agent shell commands inside a DDEV container transparently",
	}

	root.AddCommand(
		initCmd(),
		hookCmd(),
		serveCmd(),
		statusCmd(),
		logsCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// runtime bundles the pieces every command needs: config, logger and the
// status cache. One instance per process; no package-level state.
type runtime struct {
	cfg   *config.Config
	log   zerolog.Logger
	cache *ddev.Cache
}

func newRuntime(projectDir string) (*runtime, error) {
	cfg, err := config.Load(projectDir)
	if err != nil {
		return nil, err
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = logging.DefaultLogPath()
	}
	log := logging.New(logPath, cfg.Debug)

	// The cache entry is persisted next to the session state so hook
	// processes within the cache window skip the probe. Without a state
	// dir the cache still works, it just stays process-local.
	cache := ddev.NewCache(ddev.Run, log)
	if dir, err := session.DefaultStateDir(); err == nil {
		cache = ddev.NewCacheWithStore(ddev.Run, log, ddev.NewFileCacheStore(dir))
	} else {
		log.Debug().Err(err).Msg("status cache will not persist")
	}

	return &runtime{
		cfg:   cfg,
		log:   log,
		cache: cache,
	}, nil
}

// newNotifier builds the session notifier on the persistent file store,
// so one-shot flags survive across separate hook processes.
func newNotifier(messenger session.Messenger) (*session.Notifier, session.Store, error) {
	dir, err := session.DefaultStateDir()
	if err != nil {
		return nil, nil, err
	}
	store := session.NewFileStore(dir)
	return session.NewNotifier(store, messenger), store, nil
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default plugin config into the project's .ddev directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir, err := os.Getwd()
			if err != nil {
				return err
			}

			if config.Exists(projectDir) {
				fmt.Fprintln(cmd.OutOrStdout(), "Plugin already configured for this project.")
				return nil
			}

			if err := config.Save(projectDir, config.Default()); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s/%s\n", config.Dir, config.ConfigFile)
			return nil
		},
	}
}
