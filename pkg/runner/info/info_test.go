package info

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/moodlog/pkg/config"
	"tableflip.dev/moodlog/pkg/printers"
	"tableflip.dev/moodlog/pkg/store"
)

func init() {
	color.NoColor = true
}

func seeded(t *testing.T) (*config.Config, store.Persistence) {
	t.Helper()
	cfg := &config.Config{Store: config.Store{Path: t.TempDir()}, Gateway: config.Gateway{URL: config.LocalGateway}}
	p, err := store.Load(cfg)
	require.NoError(t, err)
	_, err = store.Seed(context.Background(), p, store.DefaultEmotions(), store.DefaultCategories())
	require.NoError(t, err)
	return cfg, p
}

func TestInfoText(t *testing.T) {
	t.Setenv("MOODLOG_CONFIG_PATH", "")
	cfg, p := seeded(t)

	var buf bytes.Buffer
	i := Info{Config: cfg, Persistence: p, Out: &buf}
	require.NoError(t, i.Do(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "MOODLOG_CONFIG_PATH env var not set")
	assert.Contains(t, out, cfg.BasePath())
	assert.Contains(t, out, "emotions")
	assert.Contains(t, out, "records")
}

func TestInfoJSON(t *testing.T) {
	t.Setenv("MOODLOG_CONFIG_PATH", "/etc/moodlog")
	cfg, p := seeded(t)
	_, err := p.AddSelection(context.Background(), "lonely")
	require.NoError(t, err)

	var buf bytes.Buffer
	i := Info{Config: cfg, ConfigFile: "/etc/moodlog/.moodlog.yaml", Persistence: p, Format: printers.FormatJSON, Out: &buf}
	require.NoError(t, i.Do(context.Background()))

	var d Details
	require.NoError(t, json.Unmarshal(buf.Bytes(), &d))
	assert.Equal(t, "/etc/moodlog", d.ConfigPathEnv)
	assert.Equal(t, "local", d.Gateway)
	assert.Equal(t, map[string]int{
		store.BucketEmotions:   9,
		store.BucketSelections: 1,
		store.BucketCategories: 6,
		store.BucketRecords:    0,
	}, d.Buckets)
}

func TestInfoRequiresPersistence(t *testing.T) {
	assert.Error(t, (&Info{Config: &config.Config{}}).Do(context.Background()))
}
