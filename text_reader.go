package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const (
	textAuto        = "auto"
	textUTF8        = "utf-8"
	textWindows1252 = "windows-1252"
	// delimiterSampleLines is a number of lines looked through to guess delimiter.
	delimiterSampleLines = 20
)

var (
	utf8BOM             = []byte("\ufeff")
	candidateDelimiters = []rune{';', '\t', ','}
)

// readText reads delimited text export as a workbook with a single sheet named after the file.
func readText(name string, r io.Reader, cfg TextConfig) (*Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	content, err := decodeText(data, cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to decode file as %s: %w", cfg.Encoding, err)
	}

	delimiter := detectDelimiter(content)
	if cfg.Delimiter != "" && cfg.Delimiter != textAuto {
		delimiter, _ = utf8.DecodeRuneInString(cfg.Delimiter)
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1 // Allow variable number of fields per record
	reader.LazyQuotes = true

	var rows []Row
	for lineNum := 1; ; lineNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", lineNum, err)
		}
		row := make(Row, len(record))
		for i, value := range record {
			row[i] = cellFromString(value, false)
		}
		rows = append(rows, row)
	}

	return &Workbook{
		FileName: name,
		Sheets:   []Sheet{{Name: strings.TrimSuffix(name, filepath.Ext(name)), Rows: padRows(rows)}},
	}, nil
}

// decodeText strips BOM and converts content to UTF-8. In "auto" mode
// not valid UTF-8 is treated as Windows-1252 which ERP exports on Windows use.
func decodeText(data []byte, encoding string) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	switch encoding {
	case textUTF8:
		return string(data), nil
	case textWindows1252:
		return decodeWindows1252(data)
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	return decodeWindows1252(data)
}

func decodeWindows1252(data []byte) (string, error) {
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), charmap.Windows1252.NewDecoder()))
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// detectDelimiter returns the candidate met most often in the first lines.
// Ties are resolved in order of candidates, so ';' wins over ',' used in Brazilian amounts.
func detectDelimiter(content string) rune {
	counts := make(map[rune]int, len(candidateDelimiters))
	lines := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for _, d := range candidateDelimiters {
			counts[d] += strings.Count(line, string(d))
		}
		lines++
		if lines >= delimiterSampleLines {
			break
		}
	}
	best := candidateDelimiters[0]
	for _, d := range candidateDelimiters[1:] {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}
