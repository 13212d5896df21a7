package convert

// vocab.go defines the fixed token vocabularies recognized during ingestion:
// boolean truthy/falsy strings and missing-value sentinels. Membership is
// case-sensitive and exact; "n/a" is not a missing marker and "Yes" is not a
// boolean.

import "slices"

// TrueStrings convert to boolean true during value conversion.
var TrueStrings = []string{"T", "t", "Y", "y", "TRUE", "true", "1"}

// FalseStrings convert to boolean false during value conversion.
var FalseStrings = []string{"F", "f", "N", "n", "FALSE", "false", "0"}

// TrueStringsForDetection is the stricter truthy set used while scanning a
// column to decide its type. It excludes "1" so numeric columns are not
// misclassified as boolean.
var TrueStringsForDetection = []string{"T", "t", "Y", "y", "TRUE", "true"}

// FalseStringsForDetection is the stricter falsy set used during type
// detection, excluding "0".
var FalseStringsForDetection = []string{"F", "f", "N", "n", "FALSE", "false"}

// MissingIndicators are the literal tokens understood to mean "no value",
// independent of column type.
var MissingIndicators = []string{"NaN", "*", "NA", "null"}

// IsMissing reports whether s is a recognized missing-value token.
func IsMissing(s string) bool {
	return slices.Contains(MissingIndicators, s)
}

// IsTrue reports membership in the full truthy vocabulary.
func IsTrue(s string) bool {
	return slices.Contains(TrueStrings, s)
}

// IsFalse reports membership in the full falsy vocabulary.
func IsFalse(s string) bool {
	return slices.Contains(FalseStrings, s)
}

// IsBoolean reports whether s converts to a boolean under the full
// vocabulary.
func IsBoolean(s string) bool {
	return IsTrue(s) || IsFalse(s)
}

// IsBooleanForDetection reports whether s counts as boolean during the type
// detection pass, using the restricted vocabulary.
func IsBooleanForDetection(s string) bool {
	return slices.Contains(TrueStringsForDetection, s) ||
		slices.Contains(FalseStringsForDetection, s)
}
