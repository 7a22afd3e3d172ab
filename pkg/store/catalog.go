package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/moodlog/pkg/emotion"
)

func validID(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && !strings.ContainsAny(id, `/\`) && id != "." && id != ".."
}

// Catalog returns the emotions of one mode in name order. Selection fields
// are never stored; they are projected by the client.
func (p *persistence) Catalog(ctx context.Context, mode emotion.Mode) ([]emotion.Definition, error) {
	out := make([]emotion.Definition, 0)
	each(ctx, p, BucketEmotions, func(_ string, def emotion.Definition) {
		if def.Mode == "" {
			def.Mode = emotion.ModeMandatory
		}
		if mode != "" && def.Mode != mode {
			return
		}
		out = append(out, def.Snapshot())
	})
	sortDefinitions(out)
	return out, ctx.Err()
}

// PutEmotion creates or replaces a catalog emotion.
func (p *persistence) PutEmotion(def emotion.Definition) error {
	if !validID(def.ID) {
		return fmt.Errorf("%w: emotion id %q", ErrInvalid, def.ID)
	}
	mode, err := emotion.ParseMode(string(def.Mode))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	def.Mode = mode
	return p.writeJSON(keyFor(BucketEmotions, def.ID), def.Snapshot())
}

func (p *persistence) emotion(id string) (emotion.Definition, error) {
	if !validID(id) {
		return emotion.Definition{}, fmt.Errorf("%w: %q", ErrUnknownEmotion, id)
	}
	var def emotion.Definition
	if err := p.readJSON(keyFor(BucketEmotions, id), &def); err != nil {
		if errors.Is(err, ErrNotFound) {
			return emotion.Definition{}, fmt.Errorf("%w: %q", ErrUnknownEmotion, id)
		}
		return emotion.Definition{}, err
	}
	return def, nil
}

// Selections lists the active optional selections.
func (p *persistence) Selections(ctx context.Context) ([]emotion.Selection, error) {
	out := make([]emotion.Selection, 0)
	each(ctx, p, BucketSelections, func(_ string, sel emotion.Selection) {
		out = append(out, sel)
	})
	return out, ctx.Err()
}

// AddSelection opts into an optional emotion and issues a deletion token.
// Selecting an emotion twice returns the existing token.
func (p *persistence) AddSelection(ctx context.Context, emotionID string) (emotion.Selection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	def, err := p.emotion(emotionID)
	if err != nil {
		return emotion.Selection{}, err
	}
	if !def.Optional() {
		return emotion.Selection{}, fmt.Errorf("%w: %q", ErrNotOptional, emotionID)
	}

	existing, err := p.Selections(ctx)
	if err != nil {
		return emotion.Selection{}, err
	}
	for _, sel := range existing {
		if sel.EmotionID == emotionID {
			return sel, nil
		}
	}

	sel := emotion.Selection{EmotionID: emotionID, DeletionID: uuid.NewString()}
	if err := p.writeJSON(keyFor(BucketSelections, sel.DeletionID), sel); err != nil {
		return emotion.Selection{}, err
	}
	return sel, nil
}

// RemoveSelection deletes the selection issued with deletionID.
func (p *persistence) RemoveSelection(_ context.Context, deletionID string) error {
	if _, err := uuid.Parse(deletionID); err != nil {
		return fmt.Errorf("%w: deletion id %q", ErrNotFound, deletionID)
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	key := keyFor(BucketSelections, deletionID)
	if !p.d.Has(key) {
		return fmt.Errorf("%w: deletion id %q", ErrNotFound, deletionID)
	}
	return p.d.Erase(key)
}

// Categories lists categories in name order.
func (p *persistence) Categories(ctx context.Context) ([]emotion.Category, error) {
	out := make([]emotion.Category, 0)
	each(ctx, p, BucketCategories, func(_ string, c emotion.Category) {
		out = append(out, c)
	})
	sortCategories(out)
	return out, ctx.Err()
}

// PutCategory creates or replaces a category.
func (p *persistence) PutCategory(c emotion.Category) error {
	if !validID(c.ID) {
		return fmt.Errorf("%w: category id %q", ErrInvalid, c.ID)
	}
	if strings.TrimSpace(c.Name) == "" {
		c.Name = c.ID
	}
	return p.writeJSON(keyFor(BucketCategories, c.ID), c)
}

// Seed stores defs and cats unless the catalog already has emotions. It
// reports whether anything was written.
func Seed(ctx context.Context, p Persistence, defs []emotion.Definition, cats []emotion.Category) (bool, error) {
	existing, err := p.Catalog(ctx, "")
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	for _, def := range defs {
		if err := p.PutEmotion(def); err != nil {
			return false, err
		}
	}
	for _, c := range cats {
		if err := p.PutCategory(c); err != nil {
			return false, err
		}
	}
	return true, nil
}

// DefaultEmotions is the catalog a new store starts with.
func DefaultEmotions() []emotion.Definition {
	return []emotion.Definition{
		{ID: "happy", Name: "Happy", Title: "Feeling happy", ColorCode: "#FFD166", Mode: emotion.ModeMandatory},
		{ID: "calm", Name: "Calm", Title: "Feeling calm", ColorCode: "#06D6A0", Mode: emotion.ModeMandatory},
		{ID: "sad", Name: "Sad", Title: "Feeling sad", ColorCode: "#118AB2", Mode: emotion.ModeMandatory},
		{ID: "angry", Name: "Angry", Title: "Feeling angry", ColorCode: "#EF476F", Mode: emotion.ModeMandatory},
		{ID: "tired", Name: "Tired", Title: "Feeling tired", ColorCode: "#8D99AE", Mode: emotion.ModeMandatory},
		{ID: "anxious", Name: "Anxious", Title: "Feeling anxious", ColorCode: "#9B5DE5", Mode: emotion.ModeOptional},
		{ID: "proud", Name: "Proud", Title: "Feeling proud", ColorCode: "#F77F00", Mode: emotion.ModeOptional},
		{ID: "grateful", Name: "Grateful", Title: "Feeling grateful", ColorCode: "#80B918", Mode: emotion.ModeOptional},
		{ID: "lonely", Name: "Lonely", Title: "Feeling lonely", ColorCode: "#5E548E", Mode: emotion.ModeOptional},
	}
}

// DefaultCategories is the category list a new store starts with.
func DefaultCategories() []emotion.Category {
	return []emotion.Category{
		{ID: "work", Name: "Work"},
		{ID: "family", Name: "Family"},
		{ID: "friends", Name: "Friends"},
		{ID: "health", Name: "Health"},
		{ID: "sleep", Name: "Sleep"},
		{ID: "hobby", Name: "Hobby"},
	}
}
