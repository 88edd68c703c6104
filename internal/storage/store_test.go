package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectionContract exercises the behavior every backend must share.
func collectionContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	players := store.Collection(Players)
	guilds := store.Collection(Guilds)

	_, err := players.Get(ctx, "Ada")
	require.ErrorIs(t, err, ErrNotFound)

	ids, err := players.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, players.Put(ctx, "Zoe", []byte(`{"name":"Zoe"}`)))
	require.NoError(t, players.Put(ctx, "Ada", []byte(`{"name":"Ada","xp":1}`)))
	require.NoError(t, players.Put(ctx, "Ada", []byte(`{"name":"Ada","xp":2}`)))

	b, err := players.Get(ctx, "Ada")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada","xp":2}`, string(b))

	ids, err = players.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada", "Zoe"}, ids)

	// collections do not share ids
	_, err = guilds.Get(ctx, "Ada")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, players.Delete(ctx, "Ada"))
	require.NoError(t, players.Delete(ctx, "Ada"))
	_, err = players.Get(ctx, "Ada")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, players.Put(ctx, "../escape", []byte(`{}`)), ErrInvalidID)

	require.NoError(t, PutAll(ctx, guilds, map[string][]byte{
		"b2": []byte(`{"id":"b2"}`),
		"a1": []byte(`{"id":"a1"}`),
	}))
	ids, err = guilds.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "b2"}, ids)

	err = PutAll(ctx, guilds, map[string][]byte{"": []byte(`{}`)})
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestFileStoreContract(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenFileStore(dir)
	require.NoError(t, err)
	defer store.Close()

	collectionContract(t, store)

	assert.FileExists(t, filepath.Join(dir, Guilds, "a1.json"))
	entries, err := os.ReadDir(filepath.Join(dir, Players))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "temp files are renamed away")
	}
}

func TestFileStoreIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, Players, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, Players, "sub.json"), 0o755))

	ids, err := store.Collection(Players).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSQLiteStoreContract(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "edurpg.db")
	store, err := OpenSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	collectionContract(t, store)

	// migrations are idempotent
	require.NoError(t, Migrate(ctx, store.DB()))
}

func TestSQLiteStorePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "edurpg.db")

	store, err := OpenSQLiteStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Collection(Players).Put(ctx, "Ada", []byte(`{"name":"Ada"}`)))
	require.NoError(t, store.Close())

	store, err = OpenSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer store.Close()
	b, err := store.Collection(Players).Get(ctx, "Ada")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada"}`, string(b))
}

func TestRedisStoreContract(t *testing.T) {
	addr := os.Getenv("EDURPG_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("EDURPG_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	store, err := OpenRedisStore(ctx, RedisConfig{Addr: addr, Prefix: "edurpg-test-" + uuid.NewString()[:8]})
	require.NoError(t, err)
	defer store.Close()

	collectionContract(t, store)
	t.Cleanup(func() {
		for _, c := range []string{Players, Guilds} {
			ids, _ := store.Collection(c).List(ctx)
			for _, id := range ids {
				_ = store.Collection(c).Delete(ctx, id)
			}
		}
	})
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, Config{Backend: "", DataDir: dir})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(ctx, Config{Backend: " SQLite ", SQLitePath: filepath.Join(dir, "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, Config{Backend: "redis"})
	assert.Error(t, err)

	_, err = Open(ctx, Config{Backend: "mongo"})
	assert.ErrorContains(t, err, "unknown storage backend")
}

func TestValidateID(t *testing.T) {
	for _, id := range []string{"", "  ", ".", "..", "a/b", `a\b`, "a\x00b"} {
		assert.ErrorIs(t, ValidateID(id), ErrInvalidID, "%q", id)
	}
	for _, id := range []string{"Ada", "abcd1234", "math_5", "Ada Lovelace"} {
		assert.NoError(t, ValidateID(id), "%q", id)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLiteStore(ctx, filepath.Join(t.TempDir(), "tx.db"))
	require.NoError(t, err)
	defer store.Close()

	boom := errors.New("boom")
	err = WithTx(ctx, store.DB(), func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, upsertDocument, Players, "Ada", `{}`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = store.Collection(Players).Get(ctx, "Ada")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Panics(t, func() {
		_ = WithTx(ctx, store.DB(), func(tx *sql.Tx) error { panic("bad") })
	})
	// the connection is usable after the panic
	require.NoError(t, store.Collection(Players).Put(ctx, "Ada", []byte(`{}`)))
}
