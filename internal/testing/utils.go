// Package testing provides utilities and helpers for testing the text scanner.
package testing

import (
	"bytes"
	"log"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-textscan/internal/scanner"
)

// Corpus is the three-line input used across scanner, API and CLI tests.
var Corpus = []string{
	"The cat inherited a trait.",
	"No match here.",
	"HERITABLE genes.",
}

// CorpusText joins lines with "\n" and terminates the last one.
func CorpusText(lines ...string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// CreateTestFS creates an in-memory filesystem holding the given files.
func CreateTestFS(t *testing.T, files map[string]string) afero.Fs {
	fs := afero.NewMemMapFs()
	for name, content := range files {
		err := afero.WriteFile(fs, name, []byte(content), 0644)
		require.NoError(t, err, "Failed to write test file %s", name)
	}
	return fs
}

// ReadTestFile returns the content of name, failing the test if it is missing.
func ReadTestFile(t *testing.T, fs afero.Fs, name string) string {
	data, err := afero.ReadFile(fs, name)
	require.NoError(t, err, "Failed to read test file %s", name)
	return string(data)
}

// SyncBuffer is a bytes.Buffer safe for the concurrent writes of background jobs.
type SyncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SyncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *SyncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// CreateTestScanner creates a scanner over fs whose diagnostics are captured in the returned buffer.
func CreateTestScanner(t *testing.T, fs afero.Fs) (*scanner.Scanner, *SyncBuffer) {
	t.Helper()
	logs := &SyncBuffer{}
	return scanner.NewScanner(fs, log.New(logs, "", 0)), logs
}
