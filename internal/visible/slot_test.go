package visible

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func slotBackends(t *testing.T) map[string]Slot {
	t.Helper()
	dir := t.TempDir()

	sqliteSlot, err := Open(BackendSQLite, filepath.Join(dir, "board.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteSlot.Close() })

	fileSlot, err := Open(BackendFile, filepath.Join(dir, "nested", "checked.json"))
	require.NoError(t, err)

	return map[string]Slot{BackendFile: fileSlot, BackendSQLite: sqliteSlot}
}

func TestSlotRoundTrip(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for name, slot := range slotBackends(t) {
		t.Run(name, func(t *testing.T) {
			empty, err := slot.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, 0, empty.Len())

			require.NoError(t, slot.Save(ctx, NewSet(1, 2)))
			require.NoError(t, slot.Save(ctx, NewSet(2, 7)))

			got, err := slot.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, []int64{2, 7}, got.Keys())
		})
	}
}

func TestFileSlotCorruptContent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "checked.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))

	got, err := NewFileSlot(path).Load(context.Background())
	require.ErrorIs(t, err, ErrCorrupt)
	require.Equal(t, 0, got.Len())
}

func TestFileSlotConcurrentSaves(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	slot := NewFileSlot(filepath.Join(dir, "checked.json"))
	ctx := context.Background()

	const workers, rounds = 8, 50
	errs := make(chan error, workers*rounds)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range rounds {
				errs <- slot.Save(ctx, NewSet(int64(w*rounds+r)))
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := slot.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files are cleaned up")

	info, err := os.Stat(slot.Path())
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSQLiteSlotReopenKeepsValue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "board.db")

	first, err := OpenSQLiteSlot(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, NewSet(42)))
	require.NoError(t, first.Close())

	second, err := OpenSQLiteSlot(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	got, err := second.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{42}, got.Keys())
}

func TestOpenUnknownBackend(t *testing.T) {
	t.Parallel()

	_, err := Open("redis", "x")
	require.Error(t, err)
}
