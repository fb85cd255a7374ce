package rvtools

import (
	"strconv"
	"strings"
	"time"
)

// Row wraps one physical data row with its resolved column map. Each typed
// accessor declares its own default so missing or malformed cells never
// escalate past this point.
type Row struct {
	cells []string
	cols  ColumnMap
}

func NewRow(cells []string, cols ColumnMap) Row {
	return Row{cells: cells, cols: cols}
}

func (r Row) raw(f Field) (string, bool) {
	idx, ok := r.cols[f]
	if !ok || idx >= len(r.cells) {
		return "", false
	}
	return strings.TrimSpace(r.cells[idx]), true
}

// String returns the trimmed cell value, or "" when the column is absent.
func (r Row) String(f Field) string {
	v, _ := r.raw(f)
	return v
}

// OptionalString distinguishes "absent" from "present but empty".
func (r Row) OptionalString(f Field) *string {
	v, ok := r.raw(f)
	if !ok || v == "" {
		return nil
	}
	return &v
}

func (r Row) Int(f Field) int {
	return int(r.Int64(f))
}

// Int64 tolerates the thousand separators RVTools emits for MiB columns.
func (r Row) Int64(f Field) int64 {
	v, ok := r.raw(f)
	if !ok || v == "" {
		return 0
	}
	clean := strings.Map(func(c rune) rune {
		if c >= '0' && c <= '9' || c == '-' {
			return c
		}
		return -1
	}, v)
	if clean == "" || clean == "-" {
		return 0
	}
	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func (r Row) Float(f Field) float64 {
	v, ok := r.raw(f)
	if !ok || v == "" {
		return 0
	}
	clean := strings.ReplaceAll(v, ",", "")
	n, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return n
}

// Bool accepts the truthy spellings seen across export versions; anything
// else is false.
func (r Row) Bool(f Field) bool {
	v, ok := r.raw(f)
	if !ok {
		return false
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes", "enabled":
		return true
	}
	return false
}

var dateLayouts = []string{
	"2006/01/02 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04",
	"2006-01-02",
	"2006/01/02",
}

// Date parses ISO-like layouts and spreadsheet serial numbers. The second
// return reports whether a usable value was found.
func (r Row) Date(f Field) (time.Time, bool) {
	v, ok := r.raw(f)
	if !ok || v == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}

	// Excel serial date: days since 1899-12-30.
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 {
		epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
		return epoch.Add(time.Duration(serial * 24 * float64(time.Hour))), true
	}

	return time.Time{}, false
}
