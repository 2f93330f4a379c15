package pattern

import (
	"errors"
	"testing"

	scanerrors "github.com/gcbaptista/go-textscan/internal/errors"
	"github.com/gcbaptista/go-textscan/model"
)

func TestSource(t *testing.T) {
	tests := []struct {
		name       string
		terms      []string
		regexTerms bool
		want       string
	}{
		{"single term", []string{"herit"}, false, "[A-Za-z]*(herit)[A-Za-z]*"},
		{"alternation", []string{"cat", "dog"}, false, "[A-Za-z]*(cat|dog)[A-Za-z]*"},
		{"metacharacters escaped", []string{"a.b", "c*"}, false, `[A-Za-z]*(a\.b|c\*)[A-Za-z]*`},
		{"metacharacters passed through", []string{"a.b"}, true, "[A-Za-z]*(a.b)[A-Za-z]*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Source(tt.terms, tt.regexTerms)
			if got != tt.want {
				t.Errorf("Source(%v, %v) = %q, want %q", tt.terms, tt.regexTerms, got, tt.want)
			}
		})
	}
}

func TestCompile_CaseInsensitiveWholeWord(t *testing.T) {
	re, err := Compile([]string{"herit"}, false)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	tests := []struct {
		input string
		want  string
	}{
		{"HERITAGE", "HERITAGE"},
		{"Inherited", "Inherited"},
		{"heritable", "heritable"},
		{"The cat inherited a trait.", "inherited"},
		{"inheritance, heritage", "inheritance"},
		{"no match here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := re.FindString(tt.input)
			if got != tt.want {
				t.Errorf("FindString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompile_EscapingChangesSemantics(t *testing.T) {
	escaped, err := Compile([]string{"a.c"}, false)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	raw, err := Compile([]string{"a.c"}, true)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if escaped.MatchString("abc") {
		t.Error("Escaped term 'a.c' should not match 'abc'")
	}
	if !escaped.MatchString("a.c") {
		t.Error("Escaped term 'a.c' should match 'a.c'")
	}
	if !raw.MatchString("abc") {
		t.Error("Raw term 'a.c' should match 'abc'")
	}
}

func TestCompile_Errors(t *testing.T) {
	if _, err := Compile(nil, false); !errors.Is(err, scanerrors.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for no terms, got %v", err)
	}
	if _, err := Compile([]string{"(unclosed"}, true); !errors.Is(err, scanerrors.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for invalid regex, got %v", err)
	}
	if _, err := Compile([]string{"(unclosed"}, false); err != nil {
		t.Errorf("Escaped term should always compile, got %v", err)
	}
}

func TestForMode_WordsIgnoresTerms(t *testing.T) {
	re, err := ForMode(model.ScanModeWords, []string{"cat"}, false)
	if err != nil {
		t.Fatalf("ForMode failed: %v", err)
	}
	if re.MatchString("cat") {
		t.Error("Words mode should not match configured terms")
	}
	if !re.MatchString("Inheritance") {
		t.Error("Words mode should match the fixed term")
	}
}
