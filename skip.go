package autotranslate

import (
	"regexp"
	"strings"
)

// DefaultMinStringLength is the minimum trimmed length a string must have to
// be considered translatable content.
const DefaultMinStringLength = 3

// statusWords are workflow status values that look like words but are
// structural data.
var statusWords = map[string]bool{
	"archived":  true,
	"draft":     true,
	"pending":   true,
	"published": true,
}

var (
	hexIDPattern      = regexp.MustCompile(`(?i)^[a-f0-9]{24}$`)
	urlPattern        = regexp.MustCompile(`^https?://`)
	mediaPathPattern  = regexp.MustCompile(`(?i)^/\S*\.(jpg|jpeg|png|gif|webp|svg|pdf|mp4|webm|ogg|mp3|wav)$`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@][^\s.@]*\.[^\s@]+$`)
	isoDatePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)
	dateTimePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)
	percentagePattern = regexp.MustCompile(`^\d+%$`)
	integerPattern    = regexp.MustCompile(`^\d+$`)
)

// SkipPolicy decides whether a leaf string is translatable content or
// structural/opaque data. The zero value uses DefaultMinStringLength.
type SkipPolicy struct {
	// MinLength is the minimum trimmed length of a translatable string.
	// Zero means DefaultMinStringLength.
	MinLength int
}

// ShouldSkip reports whether the string at path must be excluded from
// translation. It is a pure predicate: identifiers, URLs, media file paths,
// emails, timestamps, percentages, bare integers, whitespace, short strings,
// workflow status words, and anything under an id/createdAt/updatedAt path
// are all skipped.
func (p SkipPolicy) ShouldSkip(value, path string) bool {
	switch {
	case hexIDPattern.MatchString(value):
	case urlPattern.MatchString(value):
	case mediaPathPattern.MatchString(value):
	case emailPattern.MatchString(value):
	case isoDatePattern.MatchString(value):
	case dateTimePattern.MatchString(value):
	case percentagePattern.MatchString(value):
	case integerPattern.MatchString(value):
	default:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return true
		}
		minLen := p.MinLength
		if minLen == 0 {
			minLen = DefaultMinStringLength
		}
		if len([]rune(trimmed)) < minLen {
			return true
		}
		if statusWords[strings.ToLower(value)] {
			return true
		}
		return pathSkipsTranslation(path)
	}
	return true
}

// ShouldSkip applies the default skip policy.
func ShouldSkip(value, path string) bool {
	return SkipPolicy{}.ShouldSkip(value, path)
}

// pathSkipsTranslation matches paths that address bookkeeping fields
// regardless of their value.
func pathSkipsTranslation(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, "id") ||
		strings.HasSuffix(lower, "_id") ||
		strings.Contains(lower, "createdat") ||
		strings.Contains(lower, "updatedat")
}
