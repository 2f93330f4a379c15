package model

import "fmt"

// ScanMode selects how input lines are matched and how records are written
type ScanMode string

const (
	// ScanModeLines records the first match of each matching line with its 0-based line number.
	ScanModeLines ScanMode = "lines"
	// ScanModeWords writes every matching whitespace-delimited word, sorted within its line.
	ScanModeWords ScanMode = "words"
)

// Valid reports whether m is a known mode
func (m ScanMode) Valid() bool {
	return m == ScanModeLines || m == ScanModeWords
}

// LineMatch is the record produced in lines mode
type LineMatch struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

// String formats the record exactly as it is written to the output file
func (m LineMatch) String() string {
	return fmt.Sprintf("Line: %d Word: %s", m.Line, m.Text)
}

// WordMatch is the record produced in words mode
type WordMatch struct {
	Word string `json:"word"`
}

func (m WordMatch) String() string {
	return m.Word
}

// ScanResult summarizes a completed scan
type ScanResult struct {
	LinesRead int `json:"lines_read"`
	Matches   int `json:"matches"`
}
