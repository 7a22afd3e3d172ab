package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/moodlog/pkg/config"
	"tableflip.dev/moodlog/pkg/emotion"
	"tableflip.dev/moodlog/pkg/printers"
	"tableflip.dev/moodlog/pkg/store"
)

type Info struct {
	Config *config.Config
	// ConfigFile is the file viper read, empty when none was found.
	ConfigFile  string
	Persistence store.Persistence
	Format      printers.Format
	Out         io.Writer
}

// Details is the structured form of Info.
type Details struct {
	ConfigPathEnv string         `json:"configPathEnv,omitempty" yaml:"configPathEnv,omitempty"`
	ConfigFile    string         `json:"configFile,omitempty" yaml:"configFile,omitempty"`
	StorePath     string         `json:"storePath" yaml:"storePath"`
	Gateway       string         `json:"gateway" yaml:"gateway"`
	Buckets       map[string]int `json:"buckets" yaml:"buckets"`
}

func (n *Info) Do(ctx context.Context) error {
	if n.Config == nil {
		return fmt.Errorf("can not show info, no config")
	}
	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	d := Details{
		ConfigPathEnv: os.Getenv("MOODLOG_CONFIG_PATH"),
		ConfigFile:    n.ConfigFile,
		StorePath:     n.Config.BasePath(),
		Gateway:       n.Config.Gateway.URL,
	}
	buckets, err := n.count(ctx)
	if err != nil {
		return err
	}
	d.Buckets = buckets

	if n.Format != "" && n.Format != printers.FormatText {
		return printers.Structured(out, n.Format, d)
	}

	if d.ConfigPathEnv != "" {
		fmt.Fprintln(out, "MOODLOG_CONFIG_PATH found on env, using", d.ConfigPathEnv)
	} else {
		fmt.Fprintln(out, "MOODLOG_CONFIG_PATH env var not set")
	}
	if d.ConfigFile != "" {
		fmt.Fprintln(out, "Config file:", d.ConfigFile)
	}
	fmt.Fprintln(out, "Store path: ", d.StorePath)
	fmt.Fprintln(out, "Gateway:    ", d.Gateway)

	fmt.Fprintln(out, "Buckets:")
	tbl := uitable.New()
	for _, b := range []string{store.BucketEmotions, store.BucketSelections, store.BucketCategories, store.BucketRecords} {
		tbl.AddRow("  "+b, d.Buckets[b])
	}
	tbl.RightAlign(1)
	fmt.Fprintln(out, tbl)
	return nil
}

func (n *Info) count(ctx context.Context) (map[string]int, error) {
	p := n.Persistence
	mandatory, err := p.Catalog(ctx, emotion.ModeMandatory)
	if err != nil {
		return nil, err
	}
	optional, err := p.Catalog(ctx, emotion.ModeOptional)
	if err != nil {
		return nil, err
	}
	selections, err := p.Selections(ctx)
	if err != nil {
		return nil, err
	}
	cats, err := p.Categories(ctx)
	if err != nil {
		return nil, err
	}
	records, err := p.Records(ctx, nil)
	if err != nil {
		return nil, err
	}
	return map[string]int{
		store.BucketEmotions:   len(mandatory) + len(optional),
		store.BucketSelections: len(selections),
		store.BucketCategories: len(cats),
		store.BucketRecords:    len(records),
	}, nil
}
