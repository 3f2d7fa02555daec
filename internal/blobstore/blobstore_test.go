package blobstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	file, err := NewFile(filepath.Join(dir, "files"))
	require.NoError(t, err)

	db, err := NewSQLite(filepath.Join(dir, "db", "tally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]Store{
		BackendMemory: NewMemory(),
		BackendFile:   file,
		BackendSQLite: db,
	}
}

func TestGetMissing(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get("absent")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSetGetOverwrite(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("meu_financeiro_db", []byte(`{"v":1}`)))
			got, err := s.Get("meu_financeiro_db")
			require.NoError(t, err)
			assert.Equal(t, `{"v":1}`, string(got))

			require.NoError(t, s.Set("meu_financeiro_db", []byte(`{"v":2}`)))
			got, err = s.Get("meu_financeiro_db")
			require.NoError(t, err)
			assert.Equal(t, `{"v":2}`, string(got), "last write wins")
		})
	}
}

func TestKeysAreIndependent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("a", []byte("one")))
			require.NoError(t, s.Set("b", []byte("two")))

			a, err := s.Get("a")
			require.NoError(t, err)
			b, err := s.Get("b")
			require.NoError(t, err)
			assert.Equal(t, "one", string(a))
			assert.Equal(t, "two", string(b))
		})
	}
}

func TestInvalidKeys(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "../escape", `a\b`, ".."} {
				assert.Error(t, s.Set(key, []byte("x")), "key %q", key)
				_, err := s.Get(key)
				assert.Error(t, err, "key %q", key)
			}
		})
	}
}

func TestMemory_CopiesValues(t *testing.T) {
	m := NewMemory()
	value := []byte("original")
	require.NoError(t, m.Set("k", value))
	value[0] = 'X'

	got, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))

	got[0] = 'Y'
	again, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(again))
}

func TestFile_Layout(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, f.Set("ledger", []byte("{}")))

	data, err := os.ReadFile(filepath.Join(dir, "ledger.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestSQLite_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.db")

	db, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.Set("ledger", []byte("persisted")))
	require.NoError(t, db.Close())

	db, err = NewSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	got, err := db.Get("ledger")
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(got))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)
	assert.NoError(t, Close(s))

	s, err = Open("FILE", filepath.Join(dir, "files"))
	require.NoError(t, err)
	assert.IsType(t, &File{}, s)

	s, err = Open("sqlite", filepath.Join(dir, "tally.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	assert.NoError(t, Close(s))

	_, err = Open("redis", "")
	assert.ErrorContains(t, err, "unknown storage backend")
}

func TestNewFile_EmptyDir(t *testing.T) {
	_, err := NewFile("")
	assert.Error(t, err)
}
