package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/emotion"
)

func seededStore(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(testConfig{path: t.TempDir()})
	require.NoError(t, err)
	seeded, err := Seed(context.Background(), p, DefaultEmotions(), DefaultCategories())
	require.NoError(t, err)
	require.True(t, seeded)
	return p
}

func TestLoadRequiresPath(t *testing.T) {
	_, err := Load(testConfig{})
	assert.Error(t, err)
}

func TestSeedOnlyOnce(t *testing.T) {
	p := seededStore(t)
	seeded, err := Seed(context.Background(), p, DefaultEmotions(), nil)
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestCatalogByMode(t *testing.T) {
	ctx := context.Background()
	p := seededStore(t)

	mandatory, err := p.Catalog(ctx, emotion.ModeMandatory)
	require.NoError(t, err)
	optional, err := p.Catalog(ctx, emotion.ModeOptional)
	require.NoError(t, err)
	all, err := p.Catalog(ctx, "")
	require.NoError(t, err)

	assert.Len(t, mandatory, 5)
	assert.Len(t, optional, 4)
	assert.Len(t, all, 9)
	assert.Equal(t, "Angry", mandatory[0].Name)
	for _, d := range optional {
		assert.True(t, d.Optional())
		assert.False(t, d.Selected)
	}
}

func TestPutEmotionValidates(t *testing.T) {
	p := seededStore(t)
	assert.ErrorIs(t, p.PutEmotion(emotion.Definition{ID: "a/b"}), ErrInvalid)
	assert.ErrorIs(t, p.PutEmotion(emotion.Definition{ID: "x", Mode: "sometimes"}), ErrInvalid)
	assert.ErrorIs(t, p.PutCategory(emotion.Category{ID: ""}), ErrInvalid)
}

func TestSelections(t *testing.T) {
	ctx := context.Background()
	p := seededStore(t)

	_, err := p.AddSelection(ctx, "happy")
	assert.ErrorIs(t, err, ErrNotOptional)
	_, err = p.AddSelection(ctx, "missing")
	assert.ErrorIs(t, err, ErrUnknownEmotion)

	sel, err := p.AddSelection(ctx, "proud")
	require.NoError(t, err)
	assert.Equal(t, "proud", sel.EmotionID)
	assert.NotEmpty(t, sel.DeletionID)

	again, err := p.AddSelection(ctx, "proud")
	require.NoError(t, err)
	assert.Equal(t, sel, again)

	list, err := p.Selections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []emotion.Selection{sel}, list)

	assert.ErrorIs(t, p.RemoveSelection(ctx, "not-a-token"), ErrNotFound)
	require.NoError(t, p.RemoveSelection(ctx, sel.DeletionID))
	assert.ErrorIs(t, p.RemoveSelection(ctx, sel.DeletionID), ErrNotFound)

	list, err = p.Selections(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSaveRecordCreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	p := seededStore(t)
	day := emotion.MustDate("2024-03-05")

	created, err := p.SaveRecord(ctx, emotion.ChangeRequest{
		EmotionID:  "happy",
		Date:       day,
		Categories: []emotion.Category{{ID: "work"}},
	}, false)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "2024-03-05T00:00:00.000Z", created.Date)
	assert.Equal(t, []emotion.Category{{ID: "work", Name: "Work"}}, created.Categories)

	_, err = p.SaveRecord(ctx, emotion.ChangeRequest{EmotionID: "sad", Date: day}, false)
	assert.ErrorIs(t, err, ErrExists)

	updated, err := p.SaveRecord(ctx, emotion.ChangeRequest{
		RecordID:    created.ID,
		EmotionID:   "calm",
		Date:        day,
		Description: "better",
	}, true)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "calm", updated.SentimentState.ID)

	rows, err := p.Records(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "better", rows[0].Description)
}

func TestSaveRecordRejects(t *testing.T) {
	ctx := context.Background()
	p := seededStore(t)
	day := emotion.MustDate("2024-03-05")

	_, err := p.SaveRecord(ctx, emotion.ChangeRequest{EmotionID: "happy"}, false)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = p.SaveRecord(ctx, emotion.ChangeRequest{EmotionID: "nope", Date: day}, false)
	assert.ErrorIs(t, err, ErrUnknownEmotion)
	_, err = p.SaveRecord(ctx, emotion.ChangeRequest{EmotionID: "happy", Date: day, Categories: []emotion.Category{{ID: "nope"}}}, false)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = p.SaveRecord(ctx, emotion.ChangeRequest{EmotionID: "happy", Date: day}, true)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = p.SaveRecord(ctx, emotion.ChangeRequest{RecordID: "missing", EmotionID: "happy", Date: day}, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateMovesRecordToNewDay(t *testing.T) {
	ctx := context.Background()
	p := seededStore(t)

	created, err := p.SaveRecord(ctx, emotion.ChangeRequest{EmotionID: "happy", Date: emotion.MustDate("2024-03-04")}, false)
	require.NoError(t, err)
	_, err = p.SaveRecord(ctx, emotion.ChangeRequest{RecordID: created.ID, EmotionID: "happy", Date: emotion.MustDate("2024-03-06")}, true)
	require.NoError(t, err)

	rows, err := p.Records(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-03-06T00:00:00.000Z", rows[0].Date)
}

func TestRecordsSinceAndMonthly(t *testing.T) {
	ctx := context.Background()
	p := seededStore(t)
	for _, rec := range []struct{ day, emotion string }{
		{"2024-02-28", "sad"},
		{"2024-03-01", "happy"},
		{"2024-03-02", "happy"},
		{"2024-03-03", "calm"},
	} {
		_, err := p.SaveRecord(ctx, emotion.ChangeRequest{EmotionID: rec.emotion, Date: emotion.MustDate(rec.day)}, false)
		require.NoError(t, err)
	}

	since := emotion.MustDate("2024-03-01")
	rows, err := p.Records(ctx, &since)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-03-01T00:00:00.000Z", rows[0].Date)

	points, err := p.Monthly(ctx)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, emotion.MonthlyPoint{Month: "2024-02", EmotionID: "sad", Name: "Sad", ColorCode: "#118AB2", Count: 1}, points[0])
	assert.Equal(t, "happy", points[1].EmotionID)
	assert.Equal(t, 2, points[1].Count)
	assert.Equal(t, "calm", points[2].EmotionID)
}

func TestLocalGatewayDrivesService(t *testing.T) {
	ctx := context.Background()
	p := seededStore(t)

	svc, err := app.NewService(app.Options{Gateway: NewLocal(p)})
	require.NoError(t, err)
	require.NoError(t, svc.LoadEmotions(ctx))

	sel, err := svc.AddOptionalEmotion(ctx, "grateful")
	require.NoError(t, err)
	active, ok := svc.ActiveEmotions()
	require.True(t, ok)
	assert.Len(t, active, 6)

	current, req, err := svc.Draft(svc.Today(), "grateful", "", []emotion.Category{{ID: "family"}})
	require.NoError(t, err)
	require.NoError(t, svc.RecordEmotionState(ctx, false, current, req))

	daily, ok := svc.DailySelection()
	require.True(t, ok)
	assert.Equal(t, "grateful", daily.Emotion.ID)

	_, err = svc.FetchHistory(ctx, nil)
	require.NoError(t, err)
	daily, _ = svc.DailySelection()
	assert.NotEmpty(t, daily.RecordID)
	assert.Equal(t, []emotion.Category{{ID: "family", Name: "Family"}}, daily.Categories)

	require.NoError(t, svc.RemoveOptionalEmotion(ctx, sel.DeletionID, "grateful"))
	require.NoError(t, svc.LoadEmotions(ctx))
	active, _ = svc.ActiveEmotions()
	assert.Len(t, active, 5)
}

func TestLocalGatewayRecordsOneDayTwice(t *testing.T) {
	ctx := context.Background()
	p := seededStore(t)

	svc, err := app.NewService(app.Options{Gateway: NewLocal(p)})
	require.NoError(t, err)

	first, err := svc.Record(ctx, svc.Today(), "happy", "", nil)
	require.NoError(t, err)
	require.NotEmpty(t, first.RecordID)

	second, err := svc.Record(ctx, svc.Today(), "calm", "changed my mind", nil)
	require.NoError(t, err)
	assert.Equal(t, first.RecordID, second.RecordID)

	rows, err := p.Records(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, first.RecordID, rows[0].ID)
	assert.Equal(t, "calm", rows[0].SentimentState.ID)
	assert.Equal(t, "changed my mind", rows[0].Description)
}
