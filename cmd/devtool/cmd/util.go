package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"title-reader/config"
	"title-reader/internal/backend"
	"title-reader/internal/envutil"
	"title-reader/internal/logs"
	"title-reader/internal/titles"
)

// deps is the same object graph the server builds through fx, wired by hand
// for one-shot commands.
type deps struct {
	cfg         *config.Config
	logger      *zap.SugaredLogger
	endpoint    backend.Endpoint
	provisioner *backend.Provisioner
	launcher    *backend.Launcher
}

func loadDeps() (*deps, error) {
	cfg, err := config.NewConfig(config.NewViper())
	if err != nil {
		return nil, err
	}
	l, err := logs.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	logger := l.Sugar()

	ep := backend.NewEndpoint(cfg)
	prov := backend.NewProvisioner(cfg, logger)
	return &deps{
		cfg:         cfg,
		logger:      logger,
		endpoint:    ep,
		provisioner: prov,
		launcher:    backend.NewLauncher(cfg, ep, prov, logger),
	}, nil
}

func (d *deps) service() *titles.Service {
	return titles.NewService(titles.NewServiceParams{
		Cfg:     d.cfg,
		Backend: d.launcher,
		Fetcher: titles.NewFetcher(titles.NewChromeDriver(d.logger), d.endpoint),
		Logger:  d.logger,
	})
}

func (d *deps) close() {
	_ = d.logger.Sync()
}

// logBackendTo points a backend spawned by this command at a log file. The
// backend outlives devtool, so a pipe would break on its next write.
func (d *deps) logBackendTo(path string) (string, func(), error) {
	if path == "" {
		path = d.cfg.Browser.BinaryPath + ".log"
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", nil, err
	}
	d.launcher.SetOutput(f)
	return path, func() { _ = f.Close() }, nil
}

func addLogFileFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVar(dst, "log-file", envutil.String(os.Getenv, "BROWSER_LOG_FILE", ""),
		"File receiving a spawned backend's stdout/stderr (default <binary>.log)")
}
