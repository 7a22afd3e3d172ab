// Package store is the durable backend of the moodlog service: the emotion
// catalog, optional selections with their deletion tokens, categories and
// one mood record per day, kept in a diskv tree.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/moodlog/pkg/emotion"
)

var (
	ErrNotFound       = errors.New("store: not found")
	ErrExists         = errors.New("store: already exists")
	ErrInvalid        = errors.New("store: invalid request")
	ErrUnknownEmotion = errors.New("store: unknown emotion")
	ErrNotOptional    = errors.New("store: emotion is not optional")
)

// Buckets are the top level directories of the diskv tree.
const (
	BucketEmotions   = "emotions"
	BucketSelections = "selections"
	BucketCategories = "categories"
	BucketRecords    = "records"
)

// Config locates the diskv tree.
type Config interface {
	BasePath() string
}

// Persistence is the storage contract the server and the local gateway use.
type Persistence interface {
	Catalog(ctx context.Context, mode emotion.Mode) ([]emotion.Definition, error)
	PutEmotion(def emotion.Definition) error
	Selections(ctx context.Context) ([]emotion.Selection, error)
	AddSelection(ctx context.Context, emotionID string) (emotion.Selection, error)
	RemoveSelection(ctx context.Context, deletionID string) error
	Categories(ctx context.Context) ([]emotion.Category, error)
	PutCategory(c emotion.Category) error
	Records(ctx context.Context, since *emotion.Date) ([]emotion.RawEntry, error)
	SaveRecord(ctx context.Context, req emotion.ChangeRequest, isUpdate bool) (emotion.RawEntry, error)
	Monthly(ctx context.Context) ([]emotion.MonthlyPoint, error)
	Watch(ctx context.Context) (<-chan Event, error)
}

// Option customizes Load.
type Option func(*persistence)

// WithLogger sets the logger used for unreadable keys and watcher errors.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(p *persistence) {
		if log != nil {
			p.log = log
		}
	}
}

// Load opens the diskv tree at cfg.BasePath().
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil || strings.TrimSpace(cfg.BasePath()) == "" {
		return nil, errors.New("store: base path required")
	}
	basePath := cfg.BasePath()
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	p := &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *zap.SugaredLogger

	// mu serializes read-modify-write sequences across buckets.
	mu sync.Mutex
}

func (p *persistence) readJSON(key string, v interface{}) error {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(val, v)
}

func (p *persistence) writeJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.d.Write(key, data)
}

// keys lists the keys of one bucket in lexical order.
func (p *persistence) keys(ctx context.Context, bucket string) []string {
	prefix := bucket + "/"
	var out []string
	for key := range p.d.Keys(ctx.Done()) {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// each decodes every value of bucket into a fresh T and hands it to fn.
// Unreadable values are logged and skipped.
func each[T any](ctx context.Context, p *persistence, bucket string, fn func(key string, v T)) {
	for _, key := range p.keys(ctx, bucket) {
		var v T
		if err := p.readJSON(key, &v); err != nil {
			p.log.Warnw("skipping unreadable key", "key", key, "error", err)
			continue
		}
		fn(key, v)
	}
}

func keyFor(bucket, name string) string {
	return path.Join(bucket, name)
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s/%s", strings.Join(pathKey.Path, "/"), pathKey.FileName)
}
