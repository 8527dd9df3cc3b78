package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/roveo/topo-context/workspace"
	"github.com/tliron/commonlog"
)

// Environment variables read at startup. A .env file in the working
// directory is loaded first; variables already set in the environment win.
const (
	envLogVerbosity = "TOPO_LOG_VERBOSITY"
	envLogFile      = "TOPO_LOG_FILE"
	envSimilarCache = "TOPO_SIMILAR_CACHE"
)

type config struct {
	LogVerbosity int
	LogFile      string
	SimilarCache int
}

func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := config{
		LogFile:      os.Getenv(envLogFile),
		SimilarCache: workspace.DefaultCacheSize,
	}
	var err error
	if cfg.LogVerbosity, err = envInt(envLogVerbosity, 0); err != nil {
		return config{}, err
	}
	if cfg.SimilarCache, err = envInt(envSimilarCache, workspace.DefaultCacheSize); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func envInt(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return n, nil
}

// configureLogging sends logs to the configured file, or stderr when none
// is set. Verbosity 0 keeps notices and above.
func (c config) configureLogging() {
	if c.LogFile == "" {
		commonlog.Configure(c.LogVerbosity, nil)
		return
	}
	path := c.LogFile
	commonlog.Configure(c.LogVerbosity, &path)
}

func (c config) newWorkspace() (*workspace.Workspace, error) {
	return workspace.New(workspace.Options{CacheSize: c.SimilarCache})
}
