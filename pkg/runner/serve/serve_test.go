package serve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/moodlog/pkg/config"
	"tableflip.dev/moodlog/pkg/emotion"
	"tableflip.dev/moodlog/pkg/store"
)

func TestServeSeedsAndStops(t *testing.T) {
	p, err := store.Load(&config.Config{Store: config.Store{Path: t.TempDir()}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := Serve{Persistence: p, Addr: "127.0.0.1:0", Seed: true}
	require.NoError(t, s.Do(ctx))

	defs, err := p.Catalog(context.Background(), emotion.ModeMandatory)
	require.NoError(t, err)
	assert.Len(t, defs, 5)
}

func TestServeWithoutSeedLeavesStoreEmpty(t *testing.T) {
	p, err := store.Load(&config.Config{Store: config.Store{Path: t.TempDir()}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, (&Serve{Persistence: p, Addr: "127.0.0.1:0"}).Do(ctx))

	defs, err := p.Catalog(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestServeRequiresPersistence(t *testing.T) {
	assert.Error(t, (&Serve{}).Do(context.Background()))
}
