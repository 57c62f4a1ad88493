// foldertint-plugin - folder icon recolouring service
//
// Serves the recolorer over the go-plugin RPC protocol for a file manager
// extension. The host launches this binary and calls RenderIcon and
// ResolveIconSize; settings are read from the foldertint config file and
// FOLDERTINT_* environment variables, and the config file is watched for
// changes.
//
// Usage:
//
//	foldertint-plugin --plugin-info
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/foldertint/internal/config"
	"github.com/jmylchreest/foldertint/internal/logging"
	"github.com/jmylchreest/foldertint/internal/plugin/service"
	"github.com/jmylchreest/foldertint/internal/recolor"
	"github.com/jmylchreest/foldertint/internal/viewsize"
	"github.com/jmylchreest/foldertint/pkg/plugin"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--plugin-info" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(service.Info()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// go-plugin parses JSON log lines from stderr into the host's logger.
	logger := logging.New(logging.Options{
		Name:  "foldertint-plugin",
		Level: os.Getenv(config.EnvPrefix + "LOG_LEVEL"),
		JSON:  true,
	})

	if err := run(logger); err != nil {
		logger.Error("plugin failed", "error", err)
		os.Exit(1)
	}
}

func run(logger hclog.Logger) error {
	path, err := config.DefaultPath()
	if err != nil {
		logger.Warn("no config file location, using defaults and environment", "error", err)
		path = ""
	}

	watcher, err := config.NewWatcher(path, logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	cfg := watcher.Config()
	logger.SetLevel(logging.ResolveLevel(logging.Options{Level: cfg.LogLevel}))

	rec, err := newRecolorer(cfg, logger)
	if err != nil {
		return err
	}
	svc := service.New(rec, viewsize.NewResolver(watcher, cfg.View.Table(), logger), logger)

	watcher.OnSettingChanged(func(key string) {
		cfg := watcher.Config()
		switch key {
		case config.KeyBaseDir, config.KeyReferenceColor:
			rec, err := newRecolorer(cfg, logger)
			if err != nil {
				logger.Error("keeping previous recolorer", "error", err)
				return
			}
			svc.SetRecolorer(rec)
		case config.KeyZoomTable:
			svc.SetResolver(viewsize.NewResolver(watcher, cfg.View.Table(), logger))
		case config.KeyLogLevel:
			logger.SetLevel(logging.ResolveLevel(logging.Options{Level: cfg.LogLevel}))
		}
		// Other view settings are read live through the watcher.
	})

	if path != "" {
		if err := watcher.Start(); err != nil {
			logger.Warn("not watching config for changes", "path", path, "error", err)
		}
	}

	goplugin.Serve(&goplugin.ServeConfig{
		HandshakeConfig: plugin.Handshake,
		Plugins:         plugin.PluginMap(svc),
		Logger:          logger,
	})
	return nil
}

func newRecolorer(cfg config.Config, logger hclog.Logger) (*recolor.Recolorer, error) {
	return recolor.New(recolor.Options{
		BaseDir:   cfg.BaseDir,
		Reference: cfg.ReferenceColor,
		Logger:    logger,
	})
}
