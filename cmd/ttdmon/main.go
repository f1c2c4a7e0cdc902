package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/HaPhanBaoMinh/ttdmon/help"
	"github.com/HaPhanBaoMinh/ttdmon/internal/app"
	"github.com/HaPhanBaoMinh/ttdmon/internal/config"
	"github.com/HaPhanBaoMinh/ttdmon/internal/domain"
	"github.com/HaPhanBaoMinh/ttdmon/internal/export"
	"github.com/HaPhanBaoMinh/ttdmon/internal/infrastructure/mock"
	"github.com/HaPhanBaoMinh/ttdmon/internal/infrastructure/monitoring"
	"github.com/HaPhanBaoMinh/ttdmon/internal/infrastructure/ttdapi"
	"github.com/HaPhanBaoMinh/ttdmon/internal/pipeline"
)

func main() {
	var (
		useMock    bool
		configPath string
		dump       bool
		pngDir     string
	)
	flag.BoolVar(&useMock, "mock", false, "use mock repo")
	flag.StringVar(&configPath, "config", config.DefaultPath(), "path to config file")
	flag.BoolVar(&dump, "dump", false, "print units as JSON and exit")
	flag.StringVar(&pngDir, "png", "", "write one PNG chart per unit into this directory and exit")

	// overrides, applied only when set on the command line
	lookback := flag.Duration("lookback", 0, "monitoring lookback window, e.g. 24h or 72h")
	chartMode := flag.String("chart-mode", "", "chart data shape: values|timed")
	pageSize := flag.Int("page-size", 0, "units per page")
	apiURL := flag.String("api", "", "game API base URL")
	monURL := flag.String("monitoring", "", "monitoring endpoint URL")
	thumbURL := flag.String("thumbs", "", "thumbnail base URL")
	timeout := flag.Duration("timeout", 0, "per request timeout")
	logFile := flag.String("log-file", "", "log file, - for stderr")
	logLevel := flag.String("log-level", "", "log level")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lookback":
			cfg.Lookback = *lookback
		case "chart-mode":
			cfg.ChartMode = domain.ChartMode(*chartMode)
		case "page-size":
			cfg.PageSize = *pageSize
		case "api":
			cfg.APIBaseURL = *apiURL
		case "monitoring":
			cfg.MonitoringURL = *monURL
		case "thumbs":
			cfg.ThumbnailBaseURL = *thumbURL
		case "timeout":
			cfg.RequestTimeout = *timeout
		case "log-file":
			cfg.Logging.File = *logFile
		case "log-level":
			cfg.Logging.Level = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	closer, err := help.SetupLogging(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()
	help.Dbg("config: %+v", cfg)

	var repoS domain.StatsRepo
	var repoM domain.MonitoringRepo

	if useMock {
		repo := mock.New()
		repoS, repoM = repo, repo
	} else {
		repoS = ttdapi.New(cfg.APIBaseURL, cfg.RequestTimeout)
		repoM = monitoring.New(cfg.MonitoringURL, cfg.RequestTimeout)
	}

	p := pipeline.New(repoS, repoM, pipeline.Options{
		Lookback:        cfg.Lookback,
		ChartMode:       cfg.ChartMode,
		LocalTimeWindow: cfg.LocalTimeWindow,
		MaxConcurrent:   cfg.MaxConcurrent,
	})
	logrus.WithFields(logrus.Fields{
		"mock": useMock, "lookback": cfg.Lookback, "chart_mode": cfg.ChartMode,
	}).Info("starting")

	if dump || pngDir != "" {
		if err := runExport(p, dump, pngDir); err != nil {
			logrus.Error(err)
			fmt.Fprintln(os.Stderr, "ttdmon:", err)
			os.Exit(1)
		}
		return
	}

	m := app.New(p, app.Options{
		PageSize:         cfg.PageSize,
		ThumbnailBaseURL: cfg.ThumbnailBaseURL,
		Lookback:         cfg.Lookback,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}

func runExport(p *pipeline.Pipeline, dump bool, pngDir string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	units, err := p.Load(ctx)
	if err != nil {
		return err
	}
	if pngDir != "" {
		paths, err := export.WritePNGs(pngDir, units, export.PNGOptions{})
		if err != nil {
			return err
		}
		logrus.Infof("wrote %d charts to %s", len(paths), pngDir)
	}
	if dump {
		return export.WriteJSON(os.Stdout, units)
	}
	return nil
}
