package commands

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/config"
	"tableflip.dev/moodlog/pkg/gateway"
	"tableflip.dev/moodlog/pkg/logging"
	"tableflip.dev/moodlog/pkg/observability"
	"tableflip.dev/moodlog/pkg/printers"
	"tableflip.dev/moodlog/pkg/store"
)

// deps is what every command builds from config before running.
type deps struct {
	cfg        *config.Config
	configFile string
	log        *zap.SugaredLogger
	registry   *prometheus.Registry
	metrics    *observability.Metrics
	format     printers.Format
	printer    *printers.PrettyPrint

	p store.Persistence
}

func load() (*deps, error) {
	v := config.New()
	if cfgOpts.Gateway != "" {
		v.Set("gateway.url", cfgOpts.Gateway)
	}
	if logOpts.Level != "" {
		v.Set("log.level", logOpts.Level)
	}
	if logOpts.File != "" {
		v.Set("log.file", logOpts.File)
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	format, err := output.Format()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &deps{
		cfg:        cfg,
		configFile: v.ConfigFileUsed(),
		log:        log,
		registry:   reg,
		metrics:    observability.NewMetrics(reg),
		format:     format,
		printer:    printers.New(cfg.Color.Neutral),
	}, nil
}

// persistence opens the local store once.
func (d *deps) persistence() (store.Persistence, error) {
	if d.p != nil {
		return d.p, nil
	}
	p, err := store.Load(d.cfg, store.WithLogger(d.log.Named("store")))
	if err != nil {
		return nil, err
	}
	d.p = p
	return p, nil
}

// gateway talks to the configured server, or to the local store when
// gateway.url is "local". A local store is seeded on first use.
func (d *deps) gateway(ctx context.Context) (gateway.Gateway, error) {
	if d.cfg.Local() {
		p, err := d.persistence()
		if err != nil {
			return nil, err
		}
		if _, err := store.Seed(ctx, p, store.DefaultEmotions(), store.DefaultCategories()); err != nil {
			return nil, err
		}
		return store.NewLocal(p), nil
	}
	return gateway.NewClient(gateway.Options{
		BaseURL: strings.TrimSpace(d.cfg.Gateway.URL),
		Token:   d.cfg.Gateway.Token,
		Timeout: d.cfg.Gateway.Timeout,
		Rate:    d.cfg.Gateway.Rate,
		Retries: d.cfg.Gateway.Retries,
		Metrics: d.metrics,
		Log:     d.log.Named("gateway"),
	})
}

func (d *deps) app(ctx context.Context) (*app.Service, error) {
	gw, err := d.gateway(ctx)
	if err != nil {
		return nil, err
	}
	return app.NewService(app.Options{
		Gateway: gw,
		Neutral: d.cfg.Color.Neutral,
		Log:     d.log.Named("app"),
		Metrics: d.metrics,
	})
}

func (d *deps) close() {
	_ = d.log.Sync()
}
