// Package pattern builds the case-insensitive matchers used by the scanner.
package pattern

import (
	"regexp"
	"strings"

	"github.com/gcbaptista/go-textscan/internal/errors"
	"github.com/gcbaptista/go-textscan/model"
)

// FixedTerm is the only term matched in words mode.
const FixedTerm = "herit"

// letterRun allows the match to extend to the whole word around a term.
const letterRun = `[A-Za-z]*`

// Source returns the uncompiled pattern for the given terms, e.g. "[A-Za-z]*(cat|dog)[A-Za-z]*".
// Unless regexTerms is set, every term is escaped so that it matches literally.
func Source(terms []string, regexTerms bool) string {
	alternatives := make([]string, len(terms))
	for i, term := range terms {
		if regexTerms {
			alternatives[i] = term
		} else {
			alternatives[i] = regexp.QuoteMeta(term)
		}
	}
	return letterRun + "(" + strings.Join(alternatives, "|") + ")" + letterRun
}

// Compile builds the case-insensitive matcher from terms.
func Compile(terms []string, regexTerms bool) (*regexp.Regexp, error) {
	if len(terms) == 0 {
		return nil, errors.NewValidationError("terms", "at least one search term is required")
	}
	re, err := regexp.Compile("(?i)" + Source(terms, regexTerms))
	if err != nil {
		return nil, errors.NewValidationError("terms", "invalid pattern: "+err.Error())
	}
	return re, nil
}

// ForMode returns the matcher a scan in mode uses. Words mode ignores terms and
// always matches FixedTerm.
func ForMode(mode model.ScanMode, terms []string, regexTerms bool) (*regexp.Regexp, error) {
	if mode == model.ScanModeWords {
		return Compile([]string{FixedTerm}, false)
	}
	return Compile(terms, regexTerms)
}
