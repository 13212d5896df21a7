package ingest

// detect.go implements the column type detection pass. Candidate types are
// tried narrowest first; a column gets the first type every sampled value
// satisfies, falling back to Category. Detection uses the restricted boolean
// vocabulary (no bare "1"/"0") and the restricted time candidate list (no
// compact HHMM) so numeric columns are not misread as booleans or times.

import (
	"strconv"
	"strings"

	"csvtable/internal/column"
	"csvtable/internal/convert"
)

// detectionOrder lists candidate types narrowest first. Category is the
// implicit final fallback and accepts anything.
var detectionOrder = []column.ColumnType{
	column.LocalDateTime,
	column.LocalTime,
	column.LocalDate,
	column.Boolean,
	column.ShortInt,
	column.Integer,
	column.LongInt,
	column.Float,
}

// DetectColumnType infers a type from sampled text values. Empty strings and
// missing-value tokens are ignored; a column with no informative samples is
// Category.
func DetectColumnType(values []string) column.ColumnType {
	informative := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || convert.IsMissing(v) {
			continue
		}
		informative = append(informative, v)
	}
	if len(informative) == 0 {
		return column.Category
	}

	for _, t := range detectionOrder {
		if allOfType(informative, t) {
			return t
		}
	}
	return column.Category
}

func allOfType(values []string, t column.ColumnType) bool {
	for _, v := range values {
		if !cellMatches(v, t) {
			return false
		}
	}
	return true
}

// cellMatches reports whether a single non-missing value satisfies the
// candidate type under detection rules.
func cellMatches(s string, t column.ColumnType) bool {
	switch t {
	case column.LocalDateTime:
		return anyCandidateParses(convert.DateTimeFormats, s)
	case column.LocalTime:
		return anyCandidateParses(convert.TimeFormats, s)
	case column.LocalDate:
		return anyCandidateParses(convert.DateFormats, s)
	case column.Boolean:
		return convert.IsBooleanForDetection(s)
	case column.ShortInt:
		_, err := strconv.ParseInt(s, 10, 16)
		return err == nil
	case column.Integer:
		_, err := strconv.ParseInt(s, 10, 32)
		return err == nil
	case column.LongInt:
		_, err := strconv.ParseInt(s, 10, 64)
		return err == nil
	case column.Float:
		_, err := strconv.ParseFloat(s, 32)
		return err == nil
	case column.Category:
		return true
	default:
		return false
	}
}

func anyCandidateParses(candidates []convert.Formatter, s string) bool {
	for _, f := range candidates {
		if _, err := f.Parse(s); err == nil {
			return true
		}
	}
	return false
}
