package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/moodlog/pkg/emotion"
	"tableflip.dev/moodlog/pkg/runner/info"
	"tableflip.dev/moodlog/pkg/runner/week"
)

func localEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MOODLOG_STORE_PATH", t.TempDir())
	t.Setenv("MOODLOG_GATEWAY_URL", "local")
	t.Setenv("MOODLOG_LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRecordThenWeek(t *testing.T) {
	localEnv(t)

	out, err := run(t, "record", "happy", "--note", "first", "-c", "work", "-o", "json")
	require.NoError(t, err)
	var e emotion.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &e))
	assert.Equal(t, "happy", e.Emotion.ID)
	require.Len(t, e.Categories, 1)
	assert.Equal(t, "Work", e.Categories[0].Name)

	out, err = run(t, "week", "-o", "json")
	require.NoError(t, err)
	var v week.View
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	require.NotNil(t, v.Today)
	assert.Equal(t, "first", v.Today.Description)
	assert.Equal(t, "#FFD166", v.Days[len(v.Days)-1].ColorCode)
}

func TestSelectAndEmotions(t *testing.T) {
	localEnv(t)

	_, err := run(t, "select", "grateful", "-o", "json")
	require.NoError(t, err)

	out, err := run(t, "emotions", "-o", "json")
	require.NoError(t, err)
	var defs []emotion.Definition
	require.NoError(t, json.Unmarshal([]byte(out), &defs))
	assert.Len(t, defs, 6)

	_, err = run(t, "deselect", "grateful", "-o", "json")
	require.NoError(t, err)
	out, err = run(t, "emotions", "--all", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "id: grateful")
}

func TestInfoCountsSeededStore(t *testing.T) {
	localEnv(t)

	_, err := run(t, "categories", "-o", "json")
	require.NoError(t, err)

	out, err := run(t, "info", "-o", "json")
	require.NoError(t, err)
	var d info.Details
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, 9, d.Buckets["emotions"])
	assert.Equal(t, "local", d.Gateway)
}

func TestErrorsSurfaceInTextMode(t *testing.T) {
	localEnv(t)

	_, err := run(t, "record", "nope")
	assert.Error(t, err)

	_, err = run(t, "calendar", "--last", "3h")
	assert.Error(t, err)

	_, err = run(t, "week", "-o", "xml")
	assert.Error(t, err)
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "version", "-s")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}
