// Package config provides configuration structures for the text scanner.
// It resolves raw command-line or request arguments into a SearchConfig with
// defaults applied.
package config

import (
	stderrors "errors"
	"path/filepath"
	"strings"

	"github.com/gcbaptista/go-textscan/internal/errors"
	"github.com/gcbaptista/go-textscan/internal/storage"
	"github.com/gcbaptista/go-textscan/model"
)

const (
	// DefaultInputPath is scanned when no input is given
	DefaultInputPath = "origin.txt"
	// DefaultOutputPath is written when no output is given
	DefaultOutputPath = "origin_output.txt"
)

// DefaultTerms returns the terms used when none are supplied for the given mode.
// Words mode matches a fixed pattern, so its defaults are only reported, never matched.
func DefaultTerms(mode model.ScanMode) []string {
	if mode == model.ScanModeWords {
		return []string{"heritable", "inherit", "inheritance"}
	}
	return []string{"herit"}
}

// SearchConfig describes one scan run.
type SearchConfig struct {
	InputPath  string         `json:"infile"`      // Path or blob URI of the file to read
	OutputPath string         `json:"outfile"`     // Path or blob URI of the file to write (truncated)
	Terms      []string       `json:"terms"`       // Search terms, in alternation order
	Mode       model.ScanMode `json:"mode"`        // "lines" (default) or "words"
	RegexTerms bool           `json:"regex_terms"` // Pass terms through as raw regex fragments instead of escaping them
}

// RawArgs holds arguments as they arrive from flags or an HTTP request, before defaulting.
type RawArgs struct {
	InFile     string   `json:"infile"`
	OutFile    string   `json:"outfile"`
	Terms      string   `json:"terms"`     // Space-separated terms
	TermList   []string `json:"term_list"` // Individually supplied terms, appended after Terms
	Mode       string   `json:"mode"`
	RegexTerms bool     `json:"regex_terms"`
}

// Resolve turns raw arguments into a validated SearchConfig. It has no side effects.
func Resolve(raw RawArgs) (SearchConfig, error) {
	cfg := SearchConfig{
		InputPath:  strings.TrimSpace(raw.InFile),
		OutputPath: strings.TrimSpace(raw.OutFile),
		Terms:      splitTerms(raw.Terms, raw.TermList),
		Mode:       model.ScanMode(strings.ToLower(strings.TrimSpace(raw.Mode))),
		RegexTerms: raw.RegexTerms,
	}
	cfg.ApplyDefaults()

	if problems := cfg.Validate(); len(problems) > 0 {
		errs := make([]error, len(problems))
		for i, p := range problems {
			errs[i] = p
		}
		return SearchConfig{}, stderrors.Join(errs...)
	}
	return cfg, nil
}

// splitTerms splits the space-separated list and appends individually supplied terms.
func splitTerms(spaced string, list []string) []string {
	terms := strings.Fields(spaced)
	for _, t := range list {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// ApplyDefaults applies default values to the search configuration
func (c *SearchConfig) ApplyDefaults() {
	if c.InputPath == "" {
		c.InputPath = DefaultInputPath
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
	}
	if c.Mode == "" {
		c.Mode = model.ScanModeLines
	}
	if len(c.Terms) == 0 {
		c.Terms = DefaultTerms(c.Mode)
	}
}

// Validate checks a defaulted configuration and returns every problem found.
func (c *SearchConfig) Validate() []*errors.ValidationError {
	var problems []*errors.ValidationError

	if !c.Mode.Valid() {
		problems = append(problems, errors.NewValidationError("mode",
			"unknown mode '"+string(c.Mode)+"' (must be 'lines' or 'words')"))
	}
	if len(c.Terms) == 0 {
		problems = append(problems, errors.NewValidationError("terms", "at least one search term is required"))
	}
	for _, term := range c.Terms {
		if strings.TrimSpace(term) == "" {
			problems = append(problems, errors.NewValidationError("terms", "search term cannot be empty or whitespace-only"))
			break
		}
	}
	if samePath(c.InputPath, c.OutputPath) {
		problems = append(problems, errors.NewValidationError("outfile",
			"output '"+c.OutputPath+"' would overwrite the input file"))
	}

	return problems
}

// samePath compares local paths in cleaned form; URIs are compared as given.
func samePath(a, b string) bool {
	if storage.IsURI(a) || storage.IsURI(b) {
		return a == b
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
