package main

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tealeg/xlsx"
)

// DateStrategy is a way to read acquisition date, chosen by the shape of the cell.
type DateStrategy int

const (
	DateUnknown DateStrategy = iota
	// DateSerial is a spreadsheet serial day number, as a number or digits-only text.
	DateSerial
	// DateDayMonthYear is "15/03/2020", optionally followed by time.
	DateDayMonthYear
	// DateISO is "2020-03-15", optionally followed by time.
	DateISO
	// DateFixedLayout is a layout forced by configuration.
	DateFixedLayout
)

const (
	dayMonthYearLayout = "2/1/2006"
	isoDateLayout      = "2006-01-02"
)

var (
	serialTextRegexp   = regexp.MustCompile(`^\d+(\.\d+)?$`)
	dayMonthYearRegexp = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	isoDateRegexp      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

func (s DateStrategy) String() string {
	switch s {
	case DateSerial:
		return "serial"
	case DateDayMonthYear:
		return "dd/mm/yyyy"
	case DateISO:
		return "iso"
	case DateFixedLayout:
		return "fixed"
	}
	return "unknown"
}

// DetectDateStrategy picks the only strategy which may read the cell.
func DetectDateStrategy(cell Cell) DateStrategy {
	switch cell.Kind {
	case CellNumber:
		return DateSerial
	case CellText:
		text := firstWord(cell.Text)
		switch {
		case serialTextRegexp.MatchString(text):
			return DateSerial
		case dayMonthYearRegexp.MatchString(text):
			return DateDayMonthYear
		case isoDateRegexp.MatchString(text):
			return DateISO
		}
	}
	return DateUnknown
}

// DateParser parses acquisition dates of one workbook.
type DateParser struct {
	// FixedLayout, if set, is the only Go time layout used for text cells.
	FixedLayout string
	// Date1904 is a workbook flag for serial dates.
	Date1904 bool
}

// Parse returns date at midnight UTC and true, or false if cell doesn't hold a date.
func (p DateParser) Parse(cell Cell) (time.Time, bool) {
	strategy := DetectDateStrategy(cell)
	if p.FixedLayout != "" && cell.Kind == CellText {
		strategy = DateFixedLayout
	}

	var t time.Time
	var err error
	switch strategy {
	case DateSerial:
		serial := cell.Number
		if cell.Kind == CellText {
			serial, err = strconv.ParseFloat(firstWord(cell.Text), 64)
			if err != nil {
				return time.Time{}, false
			}
		}
		if serial < 1 {
			return time.Time{}, false
		}
		t = xlsx.TimeFromExcelTime(serial, p.Date1904)
	case DateDayMonthYear:
		t, err = time.Parse(dayMonthYearLayout, firstWord(cell.Text))
	case DateISO:
		t, err = time.Parse(isoDateLayout, firstWord(cell.Text)[:len(isoDateLayout)])
	case DateFixedLayout:
		t, err = time.Parse(p.FixedLayout, cell.Text)
	default:
		return time.Time{}, false
	}
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

func firstWord(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " T"); i > 0 {
		return s[:i]
	}
	return s
}
