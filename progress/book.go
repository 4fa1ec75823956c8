package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Key is the single key the record lives under.
const Key = "zenSnapProgress"

var (
	ErrNotFound    = errors.New("progress: key not found")
	ErrStorageRead = errors.New("progress: stored record unreadable")
	// ErrCorrupt marks stored bytes that exist but do not decode.
	ErrCorrupt = errors.New("progress: stored record corrupt")
)

// KV is the key-value persistence the engine depends on.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Book reads and writes the UserProgress record.
type Book struct {
	kv     KV
	logger *zap.Logger
}

func NewBook(kv KV, logger *zap.Logger) *Book {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Book{kv: kv, logger: logger}
}

// Read returns the stored record or an error wrapping ErrStorageRead.
func (b *Book) Read(ctx context.Context) (UserProgress, error) {
	raw, err := b.kv.Get(ctx, Key)
	if err != nil {
		return Default(), fmt.Errorf("%w: %w", ErrStorageRead, err)
	}
	var p UserProgress
	if err := json.Unmarshal(raw, &p); err != nil {
		return Default(), fmt.Errorf("%w: %w: %w", ErrStorageRead, ErrCorrupt, err)
	}
	return p.sanitize(), nil
}

// Load never fails: a missing or corrupt record reads as Default.
func (b *Book) Load(ctx context.Context) UserProgress {
	p, err := b.Read(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			b.logger.Warn("progress unreadable, using defaults", zap.Error(err))
		}
		return Default()
	}
	return p
}

// Record applies a completion and writes the result back when it changed. A
// missing or corrupt record counts as Default; any other read failure aborts
// without writing so a stored record is never overwritten with less.
func (b *Book) Record(ctx context.Context, levelID, stars int) (UserProgress, error) {
	cur, err := b.Read(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrCorrupt) {
			b.logger.Error("progress not recorded, read failed", zap.Int("level", levelID), zap.Error(err))
			return UserProgress{}, err
		}
		if errors.Is(err, ErrCorrupt) {
			b.logger.Warn("replacing corrupt progress record", zap.Error(err))
		}
		cur = Default()
	}
	next, changed := cur.Apply(levelID, stars)
	if !changed {
		return next, nil
	}
	if err := b.Save(ctx, next); err != nil {
		return next, err
	}
	b.logger.Info("progress saved",
		zap.Int("level", levelID),
		zap.Int("stars", next.StarsFor(levelID)),
		zap.Int("highest", next.HighestLevel))
	return next, nil
}

func (b *Book) Save(ctx context.Context, p UserProgress) error {
	raw, err := json.Marshal(p.sanitize())
	if err != nil {
		return fmt.Errorf("progress: encode: %w", err)
	}
	if err := b.kv.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("progress: write: %w", err)
	}
	return nil
}

// Reset replaces the record with Default.
func (b *Book) Reset(ctx context.Context) error {
	return b.Save(ctx, Default())
}
