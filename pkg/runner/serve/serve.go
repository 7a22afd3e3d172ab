// Package serve runs the HTTP API over a local store.
package serve

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"tableflip.dev/moodlog/pkg/observability"
	"tableflip.dev/moodlog/pkg/server"
	"tableflip.dev/moodlog/pkg/store"
)

type Serve struct {
	Persistence store.Persistence
	Addr        string
	Token       string
	// Seed fills an empty catalog with the default emotions and categories.
	Seed bool

	Log      *zap.SugaredLogger
	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
}

func (n *Serve) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not serve, no persistence")
	}
	log := n.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	if n.Seed {
		seeded, err := store.Seed(ctx, n.Persistence, store.DefaultEmotions(), store.DefaultCategories())
		if err != nil {
			return err
		}
		if seeded {
			log.Infow("seeded default catalog")
		}
	}

	srv, err := server.New(server.Options{
		Persistence: n.Persistence,
		Token:       n.Token,
		Log:         log.Named("server"),
		Metrics:     n.Metrics,
		Gatherer:    n.Gatherer,
	})
	if err != nil {
		return err
	}
	if n.Token == "" {
		log.Warnw("serving without a bearer token", "addr", n.Addr)
	}
	return srv.Run(ctx, n.Addr)
}
