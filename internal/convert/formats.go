// Package convert holds the process-wide vocabularies and temporal format
// catalog used when converting delimited text into typed column values.
//
// Everything in this package is initialized once at program start and never
// mutated afterward, so concurrent ingestion jobs may share it without
// locking. Ordering of the format candidate lists is part of the contract:
// more specific patterns come before ambiguous ones, and the first candidate
// that parses a sample wins.
package convert

import (
	"fmt"
	"time"
)

// Kind identifies which temporal catalog a value belongs to.
type Kind int

const (
	DateKind Kind = iota
	TimeKind
	DateTimeKind
)

// String returns a short lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case DateKind:
		return "date"
	case TimeKind:
		return "time"
	case DateTimeKind:
		return "datetime"
	default:
		return "unknown"
	}
}

// Formatter encapsulates one or more textual layouts for parsing a temporal
// value. Single-layout formatters are the catalog candidates; multi-layout
// formatters act as try-all fallbacks where the layouts are mutually
// optional alternatives.
type Formatter struct {
	layouts []string
}

// NewFormatter builds a formatter from one or more Go time layouts.
// Layouts are tried in order until one parses.
func NewFormatter(layouts ...string) Formatter {
	return Formatter{layouts: layouts}
}

// Parse attempts the formatter's layouts in order and returns the first
// successful result.
func (f Formatter) Parse(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range f.layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("formatter has no layouts")
	}
	return time.Time{}, firstErr
}

// Layout returns the formatter's primary layout, for display and logging.
func (f Formatter) Layout() string {
	if len(f.layouts) == 0 {
		return ""
	}
	return f.layouts[0]
}

// IsZero reports whether the formatter has no layouts.
func (f Formatter) IsZero() bool {
	return len(f.layouts) == 0
}

// Date layouts, in detection order. Compact and zero-padded numeric patterns
// come first, then day-first and month-first patterns with month
// abbreviations, then the loose single-digit and verbose forms. Reordering
// within the list changes which pattern wins for ambiguous samples.
var dateLayouts = []string{
	"20060102",
	"01/02/2006",
	"01-02-2006",
	"01.02.2006",
	"2006-01-02",
	"2006/01/02",
	"02/Jan/2006",
	"02-Jan-2006",
	"1/2/2006",
	"1/2/06",
	"Jan/02/2006",
	"Jan-02-2006",
	"Jan/02/06",
	"Jan-02-06",
	"Jan/2/2006",
	"Jan 02, 2006",
	"Jan 2, 2006",
}

// DateTime layouts, in detection order.
var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.000",
	"01/02/2006 03:04:05 PM",
	"02-Jan-2006 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
}

// Time layouts. The compact HHMM layout is last and deliberately excluded
// from detection: a four-digit integer column would otherwise be
// misclassified as a time column. It remains available through the
// composite fallback and TimeCompact for explicit conversion.
var timeLayouts = []string{
	"15:04:05.000",
	"03:04:05 PM",
	"3:04:05 PM",
	"15:04:05",
	"03:04 PM",
	"3:04 PM",
	"1504",
}

// TimeCompact parses four-digit 24-hour times such as "0930". It is never
// chosen by detection and must be requested explicitly.
var TimeCompact = NewFormatter("1504")

// Detection candidate lists. Each entry is a single-layout formatter tried in
// order by DetectFormat.
var (
	DateFormats     = singleLayoutFormatters(dateLayouts)
	DateTimeFormats = singleLayoutFormatters(dateTimeLayouts)
	TimeFormats     = singleLayoutFormatters(timeLayouts[:len(timeLayouts)-1])
)

// Composite fallbacks, returned when no single candidate matches a sample.
// They try every catalog layout for the kind, so detection always yields a
// usable formatter and any real parse failure surfaces later, during bulk
// conversion.
var (
	DateFallback     = NewFormatter(dateLayouts...)
	DateTimeFallback = NewFormatter(dateTimeLayouts...)
	TimeFallback     = NewFormatter(timeLayouts...)
)

func singleLayoutFormatters(layouts []string) []Formatter {
	fs := make([]Formatter, len(layouts))
	for i, layout := range layouts {
		fs[i] = NewFormatter(layout)
	}
	return fs
}

// DetectFormat returns the first catalog candidate for kind that parses
// sample, or the kind's composite fallback when none do. It is pure and
// stateless: the same (kind, sample) pair always selects the same formatter.
//
// Call it once per column at the start of a bulk job and reuse the result;
// re-deriving the format per value is far too slow for large files.
func DetectFormat(kind Kind, sample string) Formatter {
	for _, f := range candidatesFor(kind) {
		if _, err := f.Parse(sample); err == nil {
			return f
		}
	}
	return FallbackFor(kind)
}

// FallbackFor returns the composite try-all formatter for kind.
func FallbackFor(kind Kind) Formatter {
	switch kind {
	case TimeKind:
		return TimeFallback
	case DateTimeKind:
		return DateTimeFallback
	default:
		return DateFallback
	}
}

func candidatesFor(kind Kind) []Formatter {
	switch kind {
	case TimeKind:
		return TimeFormats
	case DateTimeKind:
		return DateTimeFormats
	default:
		return DateFormats
	}
}
