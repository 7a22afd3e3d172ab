package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/moodlog/pkg/emotion"
)

// timestampSuffix turns a stored day into the timestamp the wire carries.
const timestampSuffix = "T00:00:00.000Z"

// record is the stored form of one day. The emotion is kept by id so catalog
// edits show up in history.
type record struct {
	ID          string             `json:"id"`
	Date        emotion.Date       `json:"date"`
	Description string             `json:"description,omitempty"`
	EmotionID   string             `json:"emotionId"`
	Categories  []emotion.Category `json:"categories"`
	Updated     time.Time          `json:"updated"`
}

func recordKey(day emotion.Date) string {
	return keyFor(BucketRecords, day.String())
}

func (p *persistence) records(ctx context.Context) []record {
	var out []record
	each(ctx, p, BucketRecords, func(_ string, r record) {
		out = append(out, r)
	})
	return out
}

// Records returns the days on or after since (all days when nil), oldest
// first, with the emotion expanded from the catalog.
func (p *persistence) Records(ctx context.Context, since *emotion.Date) ([]emotion.RawEntry, error) {
	defs := make(map[string]emotion.Definition)
	each(ctx, p, BucketEmotions, func(_ string, def emotion.Definition) {
		defs[def.ID] = def
	})

	out := make([]emotion.RawEntry, 0)
	for _, r := range p.records(ctx) {
		if since != nil && r.Date.Before(*since) {
			continue
		}
		def, ok := defs[r.EmotionID]
		if !ok {
			def = emotion.Definition{ID: r.EmotionID, Name: r.EmotionID, Mode: emotion.ModeMandatory}
		}
		out = append(out, r.raw(def))
	}
	return out, ctx.Err()
}

func (r record) raw(def emotion.Definition) emotion.RawEntry {
	return emotion.RawEntry{
		ID:             r.ID,
		Date:           r.Date.String() + timestampSuffix,
		Description:    r.Description,
		Categories:     append([]emotion.Category(nil), r.Categories...),
		SentimentState: def,
	}
}

// SaveRecord creates the record for req.Date or, with isUpdate, rewrites the
// record req.RecordID (moving it when the date changed). A day holds at most
// one record.
func (p *persistence) SaveRecord(ctx context.Context, req emotion.ChangeRequest, isUpdate bool) (emotion.RawEntry, error) {
	if req.Date.IsZero() {
		return emotion.RawEntry{}, fmt.Errorf("%w: date required", ErrInvalid)
	}
	def, err := p.emotion(req.EmotionID)
	if err != nil {
		return emotion.RawEntry{}, err
	}
	cats, err := p.resolveCategories(req.Categories)
	if err != nil {
		return emotion.RawEntry{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var existing *record
	if isUpdate {
		if req.RecordID == "" {
			return emotion.RawEntry{}, fmt.Errorf("%w: record id required for update", ErrInvalid)
		}
		for _, r := range p.records(ctx) {
			if r.ID == req.RecordID {
				r := r
				existing = &r
				break
			}
		}
		if existing == nil {
			return emotion.RawEntry{}, fmt.Errorf("%w: record %q", ErrNotFound, req.RecordID)
		}
	}

	if p.d.Has(recordKey(req.Date)) && (existing == nil || !existing.Date.Equal(req.Date)) {
		return emotion.RawEntry{}, fmt.Errorf("%w: record for %s", ErrExists, req.Date)
	}

	r := record{
		ID:          uuid.NewString(),
		Date:        req.Date,
		Description: req.Description,
		EmotionID:   def.ID,
		Categories:  cats,
		Updated:     time.Now().UTC(),
	}
	if existing != nil {
		r.ID = existing.ID
	}
	if err := p.writeJSON(recordKey(r.Date), r); err != nil {
		return emotion.RawEntry{}, err
	}
	if existing != nil && !existing.Date.Equal(r.Date) {
		if err := p.d.Erase(recordKey(existing.Date)); err != nil {
			return emotion.RawEntry{}, err
		}
	}
	return r.raw(def), nil
}

// resolveCategories fills in names for categories given by id only.
func (p *persistence) resolveCategories(in []emotion.Category) ([]emotion.Category, error) {
	out := make([]emotion.Category, 0, len(in))
	for _, c := range in {
		if strings.TrimSpace(c.Name) != "" {
			out = append(out, c)
			continue
		}
		if !validID(c.ID) {
			return nil, fmt.Errorf("%w: category id %q", ErrInvalid, c.ID)
		}
		var stored emotion.Category
		if err := p.readJSON(keyFor(BucketCategories, c.ID), &stored); err != nil {
			return nil, fmt.Errorf("%w: category %q", ErrInvalid, c.ID)
		}
		out = append(out, stored)
	}
	return out, nil
}

// Monthly counts recorded days per month and emotion. Months are ascending;
// within a month the most recorded emotion comes first.
func (p *persistence) Monthly(ctx context.Context) ([]emotion.MonthlyPoint, error) {
	defs := make(map[string]emotion.Definition)
	each(ctx, p, BucketEmotions, func(_ string, def emotion.Definition) {
		defs[def.ID] = def
	})

	type bucket struct{ month, emotionID string }
	counts := make(map[bucket]int)
	for _, r := range p.records(ctx) {
		counts[bucket{month: r.Date.Format("2006-01"), emotionID: r.EmotionID}]++
	}

	out := make([]emotion.MonthlyPoint, 0, len(counts))
	for b, n := range counts {
		def := defs[b.emotionID]
		name := def.Name
		if name == "" {
			name = b.emotionID
		}
		out = append(out, emotion.MonthlyPoint{
			Month:     b.month,
			EmotionID: b.emotionID,
			Name:      name,
			ColorCode: def.ColorCode,
			Count:     n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].EmotionID < out[j].EmotionID
	})
	return out, ctx.Err()
}

func sortDefinitions(defs []emotion.Definition) {
	sort.SliceStable(defs, func(i, j int) bool {
		if defs[i].Name == defs[j].Name {
			return defs[i].ID < defs[j].ID
		}
		return defs[i].Name < defs[j].Name
	})
}

func sortCategories(cats []emotion.Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].Name == cats[j].Name {
			return cats[i].ID < cats[j].ID
		}
		return cats[i].Name < cats[j].Name
	})
}
