package kv

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenInMemory(t *testing.T) {
	db, err := Open(InMemoryConfig())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Set([]byte("key"), []byte("value")))

	got, err := db.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestGet_Missing(t *testing.T) {
	db, err := Open(InMemoryConfig())
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Get([]byte("missing"))
	assert.True(t, errors.Is(err, badger.ErrKeyNotFound), "err = %v", err)
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig(dir)

	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Set([]byte("dsa_progress"), []byte(`{"notes":{}}`)))
	require.NoError(t, db.Close())

	db2, err := Open(cfg)
	require.NoError(t, err)
	defer db2.Close()

	got, err := db2.Get([]byte("dsa_progress"))
	require.NoError(t, err)
	assert.Equal(t, `{"notes":{}}`, string(got))
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}

func TestLogAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := &logAdapter{logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	l.Errorf("e %d", 1)
	l.Warningf("w %d", 2)
	l.Infof("i %d", 3)
	l.Debugf("d %d", 4)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], `level=ERROR msg="e 1"`)
	assert.Contains(t, lines[1], `level=WARN msg="w 2"`)
	assert.Contains(t, lines[2], `level=DEBUG msg="i 3"`)
	assert.Contains(t, lines[3], `level=DEBUG msg="d 4"`)
}

func TestOpen_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig(t.TempDir())
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.NotEmpty(t, buf.String(), "badger logs should reach the configured logger")
}
