package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLines(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestGetLogs_NewestFirstWithLevelFilter(t *testing.T) {
	path := writeLines(t,
		`{"level":"INFO","timestamp":"2024-01-01T10:00:00Z","message":"first","module":"HTTP"}`,
		`not json`,
		`{"level":"WARN","timestamp":"2024-01-01T10:00:01Z","message":"second","module":"EXTRACTION","details":{"provider":"ollama"}}`,
		`{"level":"INFO","timestamp":"2024-01-01T10:00:02Z","message":"third","module":"HTTP"}`,
	)
	l := &ZapLogger{filePath: path}

	all, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Message)
	assert.Equal(t, "first", all[2].Message)

	warns, err := l.GetLogs("warn", 10, 0)
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Equal(t, "ollama", warns[0].Details["provider"])

	page, err := l.GetLogs("", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "second", page[0].Message)

	empty, err := l.GetLogs("", 10, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	found, err := l.GetLogById(all[1].Id)
	require.NoError(t, err)
	assert.Equal(t, "second", found.Message)

	_, err = l.GetLogById("missing")
	assert.ErrorIs(t, err, ErrLogNotFound)
}

func TestGetLogs_MissingFile(t *testing.T) {
	l := &ZapLogger{filePath: filepath.Join(t.TempDir(), "nope.log")}

	logs, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)

	nop := NewNopLogger()
	nop.Info("TEST", "ignored", nil)
	logs, err = nop.GetLogs("", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
