package main

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	testutil "github.com/gcbaptista/go-textscan/internal/testing"
)

func runCLI(fs afero.Fs, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr, fs)
	return code, stdout.String(), stderr.String()
}

func TestRun_DefaultsScanOriginFile(t *testing.T) {
	fs := testutil.CreateTestFS(t, map[string]string{
		"origin.txt": testutil.CorpusText(testutil.Corpus...),
	})

	code, stdout, stderr := runCLI(fs)
	assert.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "infile: origin.txt\noutfile: origin_output.txt\nterms: [herit]\n")
	assert.Contains(t, stdout, "Done!")
	assert.Equal(t, "Line: 0 Word: inherited\nLine: 2 Word: HERITABLE\n", testutil.ReadTestFile(t, fs, "origin_output.txt"))
}

func TestRun_TermsFromFlags(t *testing.T) {
	fs := testutil.CreateTestFS(t, map[string]string{
		"book.txt": "the heir arrived\nnothing\nan Heirloom and a cat\ncats\n",
	})

	code, stdout, stderr := runCLI(fs, "-i", "book.txt", "-o", "hits.txt", "-t", "heir", "-term", "cat")
	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "terms: [heir cat]")
	assert.Equal(t, "Line: 0 Word: heir\nLine: 2 Word: Heirloom\nLine: 3 Word: cats\n", testutil.ReadTestFile(t, fs, "hits.txt"))
}

func TestRun_WordsMode(t *testing.T) {
	fs := testutil.CreateTestFS(t, map[string]string{
		"origin.txt": "banana Inheritance apple\n",
	})

	code, stdout, stderr := runCLI(fs, "-mode", "words")
	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "terms: [heritable inherit inheritance]")
	assert.Equal(t, "Inheritance\n", testutil.ReadTestFile(t, fs, "origin_output.txt"))
}

func TestRun_MemBlobOutputReadBack(t *testing.T) {
	fs := testutil.CreateTestFS(t, map[string]string{
		"origin.txt": testutil.CorpusText(testutil.Corpus...),
	})

	code, _, stderr := runCLI(fs, "-o", "mem://cli-scratch/out.txt")
	assert.Equal(t, 0, code, stderr)

	code, _, stderr = runCLI(fs, "-i", "mem://cli-scratch/out.txt", "-o", "again.txt", "-t", "inherited")
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "Line: 0 Word: inherited\n", testutil.ReadTestFile(t, fs, "again.txt"))
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"missing input", []string{"-i", "missing.txt"}, 1, "input file 'missing.txt' not found"},
		{"unknown flag", []string{"-bogus"}, 2, "flag provided but not defined"},
		{"unknown mode", []string{"-mode", "chars"}, 2, "unknown mode 'chars'"},
		{"invalid regex term", []string{"-regex", "-t", "(herit"}, 2, "invalid pattern"},
		{"output is the input", []string{"-o", "./origin.txt"}, 2, "would overwrite the input file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := testutil.CreateTestFS(t, map[string]string{"origin.txt": "heritage\n"})

			code, _, stderr := runCLI(fs, tt.args...)
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, stderr, tt.wantErr)

			exists, err := afero.Exists(fs, "origin_output.txt")
			assert.NoError(t, err)
			assert.False(t, exists, "no output should be written on failure")
		})
	}
}

func TestRun_HelpAndVersion(t *testing.T) {
	fs := afero.NewMemMapFs()

	code, stdout, _ := runCLI(fs, "-help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Usage: textscan [options]")
	assert.Contains(t, stdout, "-infile")

	code, stdout, _ = runCLI(fs, "-version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "textscan v1.0.0\n", stdout)
}
