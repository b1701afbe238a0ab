package dataset

import (
	"strconv"
	"strings"
	"time"
)

// DType is the semantic type inferred for a column.
type DType string

const (
	Numeric     DType = "numeric"
	Categorical DType = "categorical"
	Temporal    DType = "temporal"
	Text        DType = "text"
)

// Value is one cell. Raw always carries the original token; Num is populated
// when the token parsed as a number.
type Value struct {
	Null   bool    `json:"null,omitempty"`
	Raw    string  `json:"raw,omitempty"`
	Num    float64 `json:"num,omitempty"`
	HasNum bool    `json:"has_num,omitempty"`
}

// nullTokens are treated as missing regardless of column type.
var nullTokens = map[string]struct{}{
	"": {}, "na": {}, "n/a": {}, "null": {}, "nan": {}, "none": {}, "-": {},
}

// NewValue parses a raw cell token.
func NewValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if _, isNull := nullTokens[strings.ToLower(trimmed)]; isNull {
		return Value{Null: true}
	}
	v := Value{Raw: trimmed}
	if num, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64); err == nil {
		v.Num = num
		v.HasNum = true
	}
	return v
}

// timeLayouts covers the date formats the loader recognizes.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"Jan 2, 2006",
}

// parseTime reports whether the raw token looks like a timestamp.
func parseTime(raw string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
