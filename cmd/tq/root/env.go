package root

import (
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"taskquest/internal/config"
	"taskquest/internal/engine"
	"taskquest/internal/logging"
	"taskquest/internal/storage"
)

type appEnv struct {
	cfg      *config.Config
	log      *logrus.Logger
	svc      *engine.Service
	dataPath string
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path, cmd.Flags())
}

func resolveDataPath(cfg *config.Config) (string, error) {
	if cfg.Data.Path != "" {
		return cfg.Data.Path, nil
	}
	return storage.DefaultDataPath()
}

func openEnv(cmd *cobra.Command) (*appEnv, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = closeLog()
	}

	loc, err := cfg.Location()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	path, err := resolveDataPath(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	store := storage.NewStore(path, log.WithField("component", "store"))
	svc, err := engine.Open(cmd.Context(), store,
		engine.WithLogger(log.WithField("component", "engine")),
		engine.WithLocation(loc),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return &appEnv{cfg: cfg, log: log, svc: svc, dataPath: path}, cleanup, nil
}

func openService(cmd *cobra.Command) (*engine.Service, func(), error) {
	env, cleanup, err := openEnv(cmd)
	if err != nil {
		return nil, nil, err
	}
	return env.svc, cleanup, nil
}

func idArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("id is required")
	}
	if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
		return errors.New("id must be an integer")
	}
	return nil
}

func parseID(s string) int64 {
	id, _ := strconv.ParseInt(s, 10, 64)
	return id
}
