// Package scanner streams an input file line by line, matches it against the
// configured pattern and writes match records to the output file.
package scanner

import (
	"context"
	"io"
	"log"

	"github.com/spf13/afero"

	"github.com/gcbaptista/go-textscan/config"
	"github.com/gcbaptista/go-textscan/internal/errors"
	"github.com/gcbaptista/go-textscan/internal/pattern"
	"github.com/gcbaptista/go-textscan/internal/storage"
	"github.com/gcbaptista/go-textscan/model"
)

// Logger receives the scanner's diagnostic messages. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

// Scanner runs scans against files opened through a storage.Opener.
type Scanner struct {
	opener *storage.Opener
	logger Logger
}

// NewScanner creates a scanner over fs. A nil logger falls back to the standard logger.
func NewScanner(fs afero.Fs, logger Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{
		opener: storage.NewOpener(fs),
		logger: logger,
	}
}

// Scan runs one scan described by cfg. The input is opened before the output, so a
// missing input never truncates the output file. Output written before a mid-stream
// failure stays on disk.
func (s *Scanner) Scan(ctx context.Context, cfg config.SearchConfig) (result model.ScanResult, err error) {
	if !cfg.Mode.Valid() {
		return result, errors.NewValidationError("mode", "unknown mode '"+string(cfg.Mode)+"'")
	}
	re, err := pattern.ForMode(cfg.Mode, cfg.Terms, cfg.RegexTerms)
	if err != nil {
		return result, err
	}

	s.logger.Printf("Opening %s", cfg.InputPath)
	in, err := s.opener.OpenInput(ctx, cfg.InputPath)
	if err != nil {
		return result, err
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil {
			s.logger.Printf("Warning: failed to close %s: %v", cfg.InputPath, closeErr)
		}
	}()

	s.logger.Printf("Opening %s", cfg.OutputPath)
	out, err := s.opener.CreateOutput(ctx, cfg.OutputPath)
	if err != nil {
		return result, err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = errors.NewIOError("close", cfg.OutputPath, closeErr)
		}
	}()

	s.logger.Printf("Searching %s for %s...", cfg.InputPath, re.String())

	r := &pathReader{r: in, path: cfg.InputPath}
	w := &pathWriter{w: out, path: cfg.OutputPath}
	switch cfg.Mode {
	case model.ScanModeWords:
		result, err = ScanWords(r, w, re)
	default:
		result, err = ScanLines(r, w, re)
	}
	if err != nil {
		return result, err
	}

	s.logger.Printf("Done! %d lines scanned, %d matches written to %s",
		result.LinesRead, result.Matches, cfg.OutputPath)
	return result, nil
}

// pathReader reports read failures as IOErrors naming the input.
type pathReader struct {
	r    io.Reader
	path string
}

func (p *pathReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if err != nil && err != io.EOF {
		err = errors.NewIOError("read", p.path, err)
	}
	return n, err
}

// pathWriter reports write failures as IOErrors naming the output.
type pathWriter struct {
	w    io.Writer
	path string
}

func (p *pathWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	if err != nil {
		err = errors.NewIOError("write", p.path, err)
	}
	return n, err
}
