package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/moodlog/pkg/emotion"
	"tableflip.dev/moodlog/pkg/gateway"
	"tableflip.dev/moodlog/pkg/gateway/gatewaytest"
)

func seeded() *gatewaytest.Fake {
	f := gatewaytest.New()
	f.Mandatory = []emotion.Definition{
		{ID: "m1", Name: "Happy", ColorCode: "#FFD700", Mode: emotion.ModeMandatory},
		{ID: "m2", Name: "Sad", ColorCode: "#1E90FF", Mode: emotion.ModeMandatory},
	}
	f.Optional = []emotion.Definition{
		{ID: "o1", Name: "Anxious", ColorCode: "#8A2BE2", Mode: emotion.ModeOptional},
		{ID: "o2", Name: "Proud", ColorCode: "#FF8C00", Mode: emotion.ModeOptional},
	}
	return f
}

func ids(defs []emotion.Definition) []string {
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.ID)
	}
	return out
}

func TestLoadProjectsSelections(t *testing.T) {
	f := seeded()
	f.Selections = []emotion.Selection{{EmotionID: "o1", DeletionID: "d1"}}
	r := New(f, nil)

	require.NoError(t, r.Load(context.Background()))

	all, ok := r.All()
	require.True(t, ok)
	assert.Equal(t, []string{"m1", "m2", "o1", "o2"}, ids(all))

	o1, ok := r.Lookup("o1")
	require.True(t, ok)
	assert.True(t, o1.Selected)
	assert.Equal(t, "d1", o1.DeletionID)

	o2, _ := r.Lookup("o2")
	assert.False(t, o2.Selected)
	assert.Empty(t, o2.DeletionID)

	m1, _ := r.Lookup("m1")
	assert.False(t, m1.Selected)

	active, ok := r.Active()
	require.True(t, ok)
	assert.Equal(t, []string{"m1", "m2", "o1"}, ids(active))
}

func TestAbsentBeforeLoad(t *testing.T) {
	r := New(seeded(), nil)

	_, ok := r.All()
	assert.False(t, ok)
	_, ok = r.Active()
	assert.False(t, ok)

	_, err := r.Add(context.Background(), "o1")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, r.Remove(context.Background(), "d1", "o1"), ErrUnavailable)
}

func TestLoadFailureMakesCatalogAbsent(t *testing.T) {
	for _, op := range []string{gateway.OpFetchCatalog, gateway.OpFetchSelected} {
		t.Run(op, func(t *testing.T) {
			f := seeded()
			r := New(f, nil)
			require.NoError(t, r.Load(context.Background()))

			f.FailOn(op, nil)
			err := r.Load(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, gatewaytest.ErrInjected)

			_, ok := r.All()
			assert.False(t, ok)
		})
	}
}

func TestAddThenRemove(t *testing.T) {
	ctx := context.Background()
	f := seeded()
	r := New(f, nil)
	require.NoError(t, r.Load(ctx))

	sel, err := r.Add(ctx, "o2")
	require.NoError(t, err)
	assert.Equal(t, "o2", sel.EmotionID)
	assert.NotEmpty(t, sel.DeletionID)

	o2, _ := r.Lookup("o2")
	assert.True(t, o2.Selected)
	assert.Equal(t, sel.DeletionID, o2.DeletionID)

	active, _ := r.Active()
	assert.Contains(t, ids(active), "o2")

	require.NoError(t, r.Remove(ctx, sel.DeletionID, "o2"))
	o2, _ = r.Lookup("o2")
	assert.False(t, o2.Selected)
	assert.Empty(t, o2.DeletionID)
	assert.Empty(t, f.Selections)

	active, _ = r.Active()
	assert.NotContains(t, ids(active), "o2")
}

func TestAddAlreadySelectedReusesToken(t *testing.T) {
	ctx := context.Background()
	f := seeded()
	f.Selections = []emotion.Selection{{EmotionID: "o1", DeletionID: "d1"}}
	r := New(f, nil)
	require.NoError(t, r.Load(ctx))

	sel, err := r.Add(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "d1", sel.DeletionID)
	assert.Equal(t, 0, f.Calls(gateway.OpAddSelection))
}

func TestAddRejectsUnknownAndMandatory(t *testing.T) {
	ctx := context.Background()
	f := seeded()
	r := New(f, nil)
	require.NoError(t, r.Load(ctx))

	_, err := r.Add(ctx, "nope")
	assert.ErrorIs(t, err, ErrUnknownEmotion)

	_, err = r.Add(ctx, "m1")
	assert.ErrorIs(t, err, ErrNotOptional)

	assert.Equal(t, 0, f.Calls(gateway.OpAddSelection))
}

func TestFailedAddLeavesCatalogUnchanged(t *testing.T) {
	ctx := context.Background()
	f := seeded()
	r := New(f, nil)
	require.NoError(t, r.Load(ctx))
	before, _ := r.All()

	f.FailOn(gateway.OpAddSelection, nil)
	_, err := r.Add(ctx, "o1")
	require.Error(t, err)

	after, _ := r.All()
	assert.Equal(t, before, after)
}

func TestRemoveTokenMismatch(t *testing.T) {
	ctx := context.Background()
	f := seeded()
	f.Selections = []emotion.Selection{{EmotionID: "o1", DeletionID: "d1"}}
	r := New(f, nil)
	require.NoError(t, r.Load(ctx))

	assert.ErrorIs(t, r.Remove(ctx, "wrong", "o1"), ErrTokenMismatch)
	assert.ErrorIs(t, r.Remove(ctx, "d1", "o2"), ErrTokenMismatch)
	assert.ErrorIs(t, r.Remove(ctx, "", "o1"), ErrTokenMismatch)
	assert.Equal(t, 0, f.Calls(gateway.OpRemoveSelection))

	o1, _ := r.Lookup("o1")
	assert.True(t, o1.Selected)
}

func TestFailedRemoveKeepsSelection(t *testing.T) {
	ctx := context.Background()
	f := seeded()
	f.Selections = []emotion.Selection{{EmotionID: "o1", DeletionID: "d1"}}
	r := New(f, nil)
	require.NoError(t, r.Load(ctx))

	f.FailOn(gateway.OpRemoveSelection, nil)
	require.Error(t, r.Remove(ctx, "d1", "o1"))

	o1, _ := r.Lookup("o1")
	assert.True(t, o1.Selected)
	assert.Equal(t, "d1", o1.DeletionID)
}

func TestAllReturnsCopy(t *testing.T) {
	f := seeded()
	r := New(f, nil)
	require.NoError(t, r.Load(context.Background()))

	all, _ := r.All()
	all[0].Name = "mutated"

	m1, _ := r.Lookup("m1")
	assert.Equal(t, "Happy", m1.Name)
}
