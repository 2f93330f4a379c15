package tokenizer

import (
	"sort"
	"strings"
)

// Words trims the line and splits it on runs of whitespace.
func Words(line string) []string {
	fields := strings.Fields(strings.TrimSpace(line))

	words := make([]string, 0, len(fields)) // Initialize as empty slice, not nil
	words = append(words, fields...)
	return words
}

// SortedWords returns the words of a line in byte order (case-sensitive, so
// uppercase sorts before lowercase). Duplicates are kept.
func SortedWords(line string) []string {
	words := Words(line)
	sort.Strings(words)
	return words
}
