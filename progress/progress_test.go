package progress

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	cases := []struct {
		name    string
		start   UserProgress
		level   int
		stars   int
		want    UserProgress
		changed bool
	}{
		{
			name:    "first_completion_unlocks_next",
			start:   Default(),
			level:   1,
			stars:   3,
			want:    UserProgress{HighestLevel: 2, Stars: map[int]int{1: 3}},
			changed: true,
		},
		{
			name:    "worse_replay_keeps_best",
			start:   UserProgress{HighestLevel: 2, Stars: map[int]int{1: 3}},
			level:   1,
			stars:   1,
			want:    UserProgress{HighestLevel: 2, Stars: map[int]int{1: 3}},
			changed: false,
		},
		{
			name:    "better_replay_raises",
			start:   UserProgress{HighestLevel: 4, Stars: map[int]int{2: 1}},
			level:   2,
			stars:   2,
			want:    UserProgress{HighestLevel: 4, Stars: map[int]int{2: 2}},
			changed: true,
		},
		{
			name:    "level_beyond_highest_does_not_unlock",
			start:   UserProgress{HighestLevel: 2, Stars: map[int]int{}},
			level:   5,
			stars:   2,
			want:    UserProgress{HighestLevel: 2, Stars: map[int]int{5: 2}},
			changed: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, changed := c.start.Apply(c.level, c.stars)
			assert.Equal(t, c.want, got)
			assert.Equal(t, c.changed, changed)
		})
	}
}

func TestApplyDoesNotMutateReceiver(t *testing.T) {
	start := Default()
	_, _ = start.Apply(1, 3)
	assert.Equal(t, Default(), start)
}

func stores(t *testing.T) map[string]KV {
	t.Helper()
	sq, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]KV{
		"file":   NewFileStore(filepath.Join(t.TempDir(), "nested", "progress.json")),
		"sqlite": sq,
	}
}

func TestBookScenario(t *testing.T) {
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			book := NewBook(kv, nil)

			assert.Equal(t, Default(), book.Load(ctx))

			got, err := book.Record(ctx, 1, 3)
			require.NoError(t, err)
			assert.Equal(t, UserProgress{HighestLevel: 2, Stars: map[int]int{1: 3}}, got)

			got, err = book.Record(ctx, 1, 1)
			require.NoError(t, err)
			assert.Equal(t, 3, got.StarsFor(1))
			assert.Equal(t, UserProgress{HighestLevel: 2, Stars: map[int]int{1: 3}}, book.Load(ctx))

			require.NoError(t, book.Reset(ctx))
			assert.Equal(t, Default(), book.Load(ctx))
		})
	}
}

func TestLoadFallsBackOnCorruptRecord(t *testing.T) {
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, kv.Set(ctx, Key, []byte(`{"highestLevel":"three"}`)))

			book := NewBook(kv, nil)
			_, err := book.Read(ctx)
			require.ErrorIs(t, err, ErrStorageRead)
			assert.Equal(t, Default(), book.Load(ctx))
		})
	}
}

func TestLoadSanitizes(t *testing.T) {
	kv := NewFileStore(filepath.Join(t.TempDir(), "p.json"))
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, Key, []byte(`{"highestLevel":0,"stars":{"1":3,"2":9}}`)))

	got := NewBook(kv, nil).Load(ctx)
	assert.Equal(t, UserProgress{HighestLevel: 1, Stars: map[int]int{1: 3}}, got)
}

func TestFileStoreCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	ctx := context.Background()

	kv := NewFileStore(path)
	_, err := kv.Get(ctx, Key)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, Default(), NewBook(kv, nil).Load(ctx))

	require.NoError(t, kv.Set(ctx, "other", []byte(`1`)))
	raw, err := kv.Get(ctx, "other")
	require.NoError(t, err)
	assert.JSONEq(t, `1`, string(raw))
	require.Error(t, kv.Set(ctx, "bad", []byte("{")))
}

func TestOpen(t *testing.T) {
	kv, err := Open("sqlite", filepath.Join(t.TempDir(), "db", "progress.db"))
	require.NoError(t, err)
	require.NoError(t, kv.Close())

	kv, err = Open("file", filepath.Join(t.TempDir(), "progress.json"))
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, kv)

	_, err = Open("redis", "x")
	require.Error(t, err)
}

// flakyKV fails the next failGets reads with a storage error.
type flakyKV struct {
	KV
	failGets int
}

func (f *flakyKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failGets > 0 {
		f.failGets--
		return nil, errors.New("database is locked")
	}
	return f.KV.Get(ctx, key)
}

func TestRecordKeepsRecordWhenReadFails(t *testing.T) {
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			saved := UserProgress{HighestLevel: 12, Stars: map[int]int{1: 3, 2: 3, 11: 2}}
			flaky := &flakyKV{KV: kv}
			book := NewBook(flaky, nil)
			require.NoError(t, book.Save(ctx, saved))

			flaky.failGets = 1
			_, err := book.Record(ctx, 5, 1)
			require.ErrorIs(t, err, ErrStorageRead)
			assert.NotErrorIs(t, err, ErrCorrupt)

			got, err := book.Read(ctx)
			require.NoError(t, err)
			assert.Equal(t, saved, got)

			got, err = book.Record(ctx, 12, 2)
			require.NoError(t, err)
			assert.Equal(t, 13, got.HighestLevel)
			assert.Equal(t, 3, got.StarsFor(1))
		})
	}
}

func TestRecordReplacesCorruptRecord(t *testing.T) {
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, kv.Set(ctx, Key, []byte(`{"highestLevel":"three"}`)))

			got, err := NewBook(kv, nil).Record(ctx, 1, 3)
			require.NoError(t, err)
			assert.Equal(t, UserProgress{HighestLevel: 2, Stars: map[int]int{1: 3}}, got)
		})
	}
}

func TestRecordReplacesCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	ctx := context.Background()

	book := NewBook(NewFileStore(path), nil)
	got, err := book.Record(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, UserProgress{HighestLevel: 2, Stars: map[int]int{1: 2}}, got)
}
