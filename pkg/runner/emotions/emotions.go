// Package emotions lists the emotion catalog and manages optional selections.
package emotions

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/emotion"
	"tableflip.dev/moodlog/pkg/printers"
)

type List struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	Format  printers.Format
	Out     io.Writer

	// All includes optional emotions that are not selected.
	All bool
}

func (n *List) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not list emotions, no mood service")
	}
	if err := n.App.LoadEmotions(ctx); err != nil {
		return err
	}
	var defs []emotion.Definition
	if n.All {
		defs, _ = n.App.AllEmotions()
	} else {
		defs, _ = n.App.ActiveEmotions()
	}

	if n.Format != "" && n.Format != printers.FormatText {
		return printers.Structured(n.Out, n.Format, defs)
	}
	n.Printer.TitleWithCount("Emotions", len(defs), "emotion")
	n.Printer.Emotions(defs)
	return nil
}

// Select opts into (or with Remove, out of) an optional emotion.
type Select struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	Format  printers.Format
	Out     io.Writer

	ID     string
	Remove bool
}

func (n *Select) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not change selection, no mood service")
	}
	if err := n.App.LoadEmotions(ctx); err != nil {
		return err
	}

	var sel emotion.Selection
	if n.Remove {
		def, ok := n.App.Emotion(n.ID)
		if !ok {
			return fmt.Errorf("unknown emotion %q", n.ID)
		}
		if err := n.App.RemoveOptionalEmotion(ctx, def.DeletionID, n.ID); err != nil {
			return err
		}
		sel = emotion.Selection{EmotionID: n.ID}
	} else {
		var err error
		if sel, err = n.App.AddOptionalEmotion(ctx, n.ID); err != nil {
			return err
		}
	}

	if n.Format != "" && n.Format != printers.FormatText {
		return printers.Structured(n.Out, n.Format, sel)
	}
	defs, _ := n.App.ActiveEmotions()
	n.Printer.TitleWithCount("Active emotions", len(defs), "emotion")
	n.Printer.Emotions(defs)
	return nil
}
